package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LuckyFay12/shareit/internal/models"
)

const itemColumns = `id, name, description, available, owner_id, request_id`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Description, item.Available, item.OwnerID, item.RequestID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	item, err := scanItem(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetItemsByOwner возвращает вещи владельца, отсортированные по id
func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

// SearchItems ищет доступные вещи по подстроке в названии или описании
func (db *DB) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE available = 1
              AND (LOWER(name) LIKE '%' || LOWER(?) || '%'
                   OR LOWER(description) LIKE '%' || LOWER(?) || '%')
              ORDER BY id`
	return db.queryItems(ctx, query, text, text)
}

func (db *DB) GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Available,
			&item.OwnerID, &item.RequestID); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &item.RequestID)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
