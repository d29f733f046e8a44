package database

import (
	"context"
	"fmt"

	"github.com/LuckyFay12/shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetCommentViewsByItem возвращает отзывы вещи в порядке создания
// с присоединенными именами автора и вещи.
func (db *DB) GetCommentViewsByItem(ctx context.Context, itemID int64) ([]models.CommentView, error) {
	query := `SELECT c.id, c.text, u.name, i.name, c.created
              FROM comments c
              JOIN users u ON c.author_id = u.id
              JOIN items i ON c.item_id = i.id
              WHERE c.item_id = ?
              ORDER BY c.created, c.id`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.CommentView
	for rows.Next() {
		var c models.CommentView
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorName, &c.ItemName, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
