package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// CompilationRepository handles persistence for compilations and their
// ordered event membership.
type CompilationRepository struct {
	db *pgxpool.Pool
}

// NewCompilationRepository constructs a CompilationRepository.
func NewCompilationRepository(db *pgxpool.Pool) *CompilationRepository {
	return &CompilationRepository{db: db}
}

// Create inserts a compilation and its membership rows in one transaction.
// The caller provides events already resolved and deduplicated; position
// preserves their order.
func (r *CompilationRepository) Create(ctx context.Context, c *model.Compilation) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO compilations (id, title, pinned) VALUES ($1, $2, $3)`,
		c.ID, c.Title, c.Pinned,
	)
	if err != nil {
		return fmt.Errorf("insert compilation: %w", err)
	}
	if err = insertMembers(ctx, tx, c); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update rewrites the compilation row and replaces its membership.
func (r *CompilationRepository) Update(ctx context.Context, c *model.Compilation) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE compilations SET title = $2, pinned = $3 WHERE id = $1`,
		c.ID, c.Title, c.Pinned,
	)
	if err != nil {
		return fmt.Errorf("update compilation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM events_compilations WHERE compilation_id = $1`, c.ID,
	); err != nil {
		return fmt.Errorf("clear compilation events: %w", err)
	}
	if err = insertMembers(ctx, tx, c); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx pgx.Tx, c *model.Compilation) error {
	if len(c.Events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for pos, e := range c.Events {
		batch.Queue(
			`INSERT INTO events_compilations (compilation_id, event_id, position) VALUES ($1, $2, $3)`,
			c.ID, e.ID, pos,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert compilation events: %w", err)
	}
	return nil
}

// GetByID returns a compilation with its events in stored order.
func (r *CompilationRepository) GetByID(ctx context.Context, id string) (*model.Compilation, error) {
	var c model.Compilation
	err := r.db.QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Pinned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get compilation: %w", err)
	}
	if err := r.loadEvents(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Find returns a page of compilations, optionally restricted by the
// pinned flag, each with its events loaded.
func (r *CompilationRepository) Find(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if pinned == nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, pinned FROM compilations ORDER BY id LIMIT $1 OFFSET $2`,
			size, from)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, title, pinned FROM compilations WHERE pinned = $1 ORDER BY id LIMIT $2 OFFSET $3`,
			*pinned, size, from)
	}
	if err != nil {
		return nil, fmt.Errorf("list compilations: %w", err)
	}
	defer rows.Close()

	var compilations []model.Compilation
	for rows.Next() {
		var c model.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, fmt.Errorf("scan compilation: %w", err)
		}
		compilations = append(compilations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range compilations {
		if err := r.loadEvents(ctx, &compilations[i]); err != nil {
			return nil, err
		}
	}
	return compilations, nil
}

func (r *CompilationRepository) loadEvents(ctx context.Context, c *model.Compilation) error {
	rows, err := r.db.Query(ctx,
		eventSelect+` JOIN events_compilations ec ON ec.event_id = e.id
		 WHERE ec.compilation_id = $1 ORDER BY ec.position ASC`,
		c.ID)
	if err != nil {
		return fmt.Errorf("load compilation events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return fmt.Errorf("scan compilation event: %w", err)
		}
		c.Events = append(c.Events, *e)
	}
	return rows.Err()
}

// Delete removes a compilation or returns ErrNotFound.
func (r *CompilationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compilation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
