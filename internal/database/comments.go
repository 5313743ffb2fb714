package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/jmoiron/sqlx"
)

type commentRow struct {
	ID         int64  `db:"id"`
	ItemID     int64  `db:"item_id"`
	AuthorID   int64  `db:"author_id"`
	AuthorName string `db:"author_name"`
	Text       string `db:"text"`
	CreatedAt  string `db:"created_at"`
}

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO comments (item_id, author_id, text, created_at) VALUES (?, ?, ?, ?)`,
		comment.ItemID, comment.AuthorID, comment.Text, formatTime(comment.CreatedAt),
	)
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

// GetCommentsByItems loads comments for all itemIDs in one query, in insertion order.
func (db *DB) GetCommentsByItems(ctx context.Context, itemIDs []int64) ([]*models.Comment, error) {
	if len(itemIDs) == 0 {
		return []*models.Comment{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT c.id, c.item_id, c.author_id, u.name AS author_name, c.text, c.created_at
         FROM comments c
         JOIN users u ON u.id = c.author_id
         WHERE c.item_id IN (?)
         ORDER BY c.id ASC`,
		itemIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build comments query: %w", err)
	}

	var rows []commentRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	comments := make([]*models.Comment, 0, len(rows))
	for _, r := range rows {
		created, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &models.Comment{
			ID:         r.ID,
			ItemID:     r.ItemID,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			Text:       r.Text,
			CreatedAt:  created,
		})
	}
	return comments, nil
}
