package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
)

func TestCategoryServiceCreateDuplicateIsConflict(t *testing.T) {
	categories := &fakeCategoryStore{
		CreateFn: func(ctx context.Context, c *model.Category) error {
			return repository.ErrDuplicateCategory
		},
	}
	svc := NewCategoryService(categories, testLogger())

	_, err := svc.Create(context.Background(), model.NewCategoryRequest{Name: "concerts"})

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindConflict, serr.Kind)
}

func TestCategoryServiceCreateValidation(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryStore{}, testLogger())

	_, err := svc.Create(context.Background(), model.NewCategoryRequest{Name: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCategoryServiceUpdateSameNameIsNoOp(t *testing.T) {
	categories := &fakeCategoryStore{
		GetByNameFn: func(ctx context.Context, name string) (*model.Category, error) {
			return &model.Category{ID: "cat-1", Name: name}, nil
		},
		// UpdateFn unset: a write here would panic.
	}
	svc := NewCategoryService(categories, testLogger())

	got, err := svc.Update(context.Background(), "cat-1", model.UpdateCategoryRequest{Name: "concerts"})
	require.NoError(t, err)
	assert.Equal(t, "concerts", got.Name)
}

func TestCategoryServiceUpdateForeignNameIsConflict(t *testing.T) {
	categories := &fakeCategoryStore{
		GetByNameFn: func(ctx context.Context, name string) (*model.Category, error) {
			return &model.Category{ID: "cat-2", Name: name}, nil
		},
	}
	svc := NewCategoryService(categories, testLogger())

	_, err := svc.Update(context.Background(), "cat-1", model.UpdateCategoryRequest{Name: "concerts"})

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindConflict, serr.Kind)
}

func TestCategoryServiceUpdateRenames(t *testing.T) {
	var updated *model.Category
	categories := &fakeCategoryStore{
		GetByNameFn: func(ctx context.Context, name string) (*model.Category, error) {
			return nil, repository.ErrNotFound
		},
		GetByIDFn: func(ctx context.Context, id string) (*model.Category, error) {
			return &model.Category{ID: id, Name: "old"}, nil
		},
		UpdateFn: func(ctx context.Context, c *model.Category) error {
			updated = c
			return nil
		},
	}
	svc := NewCategoryService(categories, testLogger())

	got, err := svc.Update(context.Background(), "cat-1", model.UpdateCategoryRequest{Name: "concerts"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "concerts", updated.Name)
	assert.Equal(t, "concerts", got.Name)
}

func TestCategoryServiceDeleteInUseIsConflict(t *testing.T) {
	categories := &fakeCategoryStore{
		DeleteFn: func(ctx context.Context, id string) error {
			return repository.ErrCategoryInUse
		},
	}
	svc := NewCategoryService(categories, testLogger())

	err := svc.Delete(context.Background(), "cat-1")

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindConflict, serr.Kind)
}
