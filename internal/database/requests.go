package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LuckyFay12/shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		request.Description, request.RequestorID, request.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var r models.ItemRequest
	query := `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &r, nil
}

func (db *DB) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requestorID)
}

// GetOtherUsersRequests возвращает запросы всех пользователей кроме указанного.
func (db *DB) GetOtherUsersRequests(ctx context.Context, userID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, requestor_id, created FROM requests
              WHERE requestor_id != ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, userID)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ItemRequest
	for rows.Next() {
		var r models.ItemRequest
		if err := rows.Scan(&r.ID, &r.Description, &r.RequestorID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
