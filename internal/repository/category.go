package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category; a duplicate name becomes ErrDuplicateCategory.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		c.ID, c.Name,
	)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID returns a single category or ErrNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByName returns a category by its unique name or ErrNotFound.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// Find returns a page of categories ordered by id.
func (r *CategoryRepository) Find(ctx context.Context, from, size int) ([]model.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM categories ORDER BY id LIMIT $1 OFFSET $2`,
		size, from)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update renames a category; a duplicate name becomes ErrDuplicateCategory.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`,
		c.ID, c.Name,
	)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. When events still reference it the foreign
// key rejects the delete at commit time and ErrCategoryInUse is returned.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isPgCode(err, pgForeignKeyViolation) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
