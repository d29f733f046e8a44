package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LuckyFay12/shareit/internal/models"
)

const bookingColumns = `id, start_date, end_date, item_id, booker_id, status`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		booking.Start.UTC(), booking.End.UTC(), booking.ItemID, booking.BookerID, booking.Status)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusFrom переводит бронирование из ожидаемого статуса в новый.
// Условие на старый статус в WHERE закрывает гонку двух одновременных решений:
// проигравший апдейт не находит строку и получает ErrStatusConflict.
func (db *DB) UpdateBookingStatusFrom(ctx context.Context, id int64, from, to models.Status) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Запросы по арендатору. Сортировка везде по дате начала по убыванию.

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID)
}

func (db *DB) GetCurrentBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND start_date <= ? AND end_date >= ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, now.UTC(), now.UTC())
}

func (db *DB) GetPastBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND end_date < ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, now.UTC())
}

func (db *DB) GetFutureBookingsByBooker(ctx context.Context, bookerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND start_date > ?
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, bookerID, now.UTC())
}

func (db *DB) GetBookingsByBookerAndStatuses(ctx context.Context, bookerID int64, statuses []models.Status) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? AND status IN (` + placeholders(len(statuses)) + `)
              ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, append([]any{bookerID}, statusArgs(statuses)...)...)
}

// Запросы по владельцу: бронирования на любую из вещей владельца.

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID)
}

func (db *DB) GetCurrentBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? AND b.start_date <= ? AND b.end_date >= ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, now.UTC(), now.UTC())
}

func (db *DB) GetPastBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? AND b.end_date < ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, now.UTC())
}

func (db *DB) GetFutureBookingsByOwner(ctx context.Context, ownerID int64, now time.Time) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? AND b.start_date > ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, ownerID, now.UTC())
}

func (db *DB) GetBookingsByOwnerAndStatuses(ctx context.Context, ownerID int64, statuses []models.Status) ([]models.Booking, error) {
	query := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? AND b.status IN (` + placeholders(len(statuses)) + `)
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, append([]any{ownerID}, statusArgs(statuses)...)...)
}

// GetNextBooking возвращает ближайшее будущее бронирование вещи или nil.
func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time, statuses []models.Status) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND start_date > ? AND status IN (` + placeholders(len(statuses)) + `)
              ORDER BY start_date ASC LIMIT 1`
	args := append([]any{itemID, now.UTC()}, statusArgs(statuses)...)
	booking, err := scanBooking(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next booking: %w", err)
	}
	return booking, nil
}

// GetLastBooking возвращает последнее завершенное бронирование вещи или nil.
func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time, statuses []models.Status) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND end_date < ? AND status IN (` + placeholders(len(statuses)) + `)
              ORDER BY end_date DESC LIMIT 1`
	args := append([]any{itemID, now.UTC()}, statusArgs(statuses)...)
	booking, err := scanBooking(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last booking: %w", err)
	}
	return booking, nil
}

func (db *DB) GetBookingsByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND booker_id = ? ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, itemID, bookerID)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func statusArgs(statuses []models.Status) []any {
	args := make([]any, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, s)
	}
	return args
}
