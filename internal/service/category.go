package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
)

// CategoryService handles the category registry.
type CategoryService struct {
	categories CategoryStore
	log        *slog.Logger
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories CategoryStore, log *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

// List returns a page of categories.
func (s *CategoryService) List(ctx context.Context, from, size int) ([]model.CategoryDTO, error) {
	categories, err := s.categories.Find(ctx, from, size)
	if err != nil {
		return nil, err
	}
	dtos := make([]model.CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = model.CategoryDTO{ID: c.ID, Name: c.Name}
	}
	return dtos, nil
}

// GetByID returns a single category.
func (s *CategoryService) GetByID(ctx context.Context, id string) (model.CategoryDTO, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return model.CategoryDTO{}, wrapNotFound(err, "category %s", id)
	}
	return model.CategoryDTO{ID: category.ID, Name: category.Name}, nil
}

// Create adds a category; the name must be unique.
func (s *CategoryService) Create(ctx context.Context, req model.NewCategoryRequest) (model.CategoryDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 50 {
		return model.CategoryDTO{}, &ValidationError{
			Message:    "invalid category",
			Violations: []model.Violation{{Field: "name", Message: "must be 1 to 50 characters"}},
		}
	}

	category := &model.Category{ID: uuid.New().String(), Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			s.log.Warn("category creation rejected: duplicate name", slog.String("name", name))
			return model.CategoryDTO{}, Conflictf("category with name %s exists", name)
		}
		return model.CategoryDTO{}, err
	}
	s.log.Info("category created", slog.String("categoryId", category.ID))
	return model.CategoryDTO{ID: category.ID, Name: category.Name}, nil
}

// Update renames a category. Renaming to its own current name is a
// no-op success; any other collision is Conflict.
func (s *CategoryService) Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (model.CategoryDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 50 {
		return model.CategoryDTO{}, &ValidationError{
			Message:    "invalid category",
			Violations: []model.Violation{{Field: "name", Message: "must be 1 to 50 characters"}},
		}
	}

	existing, err := s.categories.GetByName(ctx, name)
	if err == nil {
		if existing.ID == id {
			return model.CategoryDTO{ID: existing.ID, Name: existing.Name}, nil
		}
		s.log.Warn("category rename rejected: duplicate name",
			slog.String("categoryId", id), slog.String("name", name))
		return model.CategoryDTO{}, Conflictf("category with name %s exists", name)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.CategoryDTO{}, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return model.CategoryDTO{}, wrapNotFound(err, "category %s", id)
	}
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return model.CategoryDTO{}, Conflictf("category with name %s exists", name)
		}
		return model.CategoryDTO{}, err
	}
	return model.CategoryDTO{ID: category.ID, Name: category.Name}, nil
}

// Delete removes a category unless events still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryInUse) {
			s.log.Warn("category delete rejected: in use", slog.String("categoryId", id))
			return Conflictf("category %s is still referenced by events", id)
		}
		return wrapNotFound(err, "category %s", id)
	}
	s.log.Info("category deleted", slog.String("categoryId", id))
	return nil
}
