package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository constructs a CommentRepository.
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentSelect = `SELECT cm.id, cm.event_id, cm.author_id, u.name, u.email, cm.text, cm.created
FROM comments cm
JOIN users u ON u.id = cm.author_id`

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, event_id, author_id, text, created)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.EventID, c.Author.ID, c.Text, c.Created,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID returns a single comment or ErrNotFound.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRow(ctx, commentSelect+" WHERE cm.id = $1", id).Scan(
		&c.ID, &c.EventID, &c.Author.ID, &c.Author.Name, &c.Author.Email, &c.Text, &c.Created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) queryComments(ctx context.Context, sql string, args ...any) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.EventID, &c.Author.ID, &c.Author.Name, &c.Author.Email, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// FindByEvent returns a page of an event's comments, newest first.
func (r *CommentRepository) FindByEvent(ctx context.Context, eventID string, from, size int) ([]model.Comment, error) {
	return r.queryComments(ctx,
		commentSelect+` WHERE cm.event_id = $1 ORDER BY cm.created DESC LIMIT $2 OFFSET $3`,
		eventID, size, from)
}

// FindByAuthor returns a page of a user's comments, newest first.
func (r *CommentRepository) FindByAuthor(ctx context.Context, authorID string, from, size int) ([]model.Comment, error) {
	return r.queryComments(ctx,
		commentSelect+` WHERE cm.author_id = $1 ORDER BY cm.created DESC LIMIT $2 OFFSET $3`,
		authorID, size, from)
}

// Delete removes a comment or returns ErrNotFound.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
