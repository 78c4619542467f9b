package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
)

func TestUserServiceCreateNormalizesEmail(t *testing.T) {
	var saved *model.User
	users := &fakeUserStore{
		CreateFn: func(ctx context.Context, u *model.User) error {
			saved = u
			return nil
		},
	}
	svc := NewUserService(users, testLogger())

	got, err := svc.Create(context.Background(), model.NewUserRequest{
		Email: "  Ann.Smith@Example.COM ",
		Name:  "Ann",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "ann.smith@example.com", saved.Email)
	assert.Equal(t, "ann.smith@example.com", got.Email)
	assert.NotEmpty(t, got.ID)
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, testLogger())

	_, err := svc.Create(context.Background(), model.NewUserRequest{Email: "not-an-email", Name: " "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestUserServiceCreateDuplicateEmailIsConflict(t *testing.T) {
	users := &fakeUserStore{
		CreateFn: func(ctx context.Context, u *model.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := NewUserService(users, testLogger())

	_, err := svc.Create(context.Background(), model.NewUserRequest{Email: "ann@example.com", Name: "Ann"})

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindConflict, serr.Kind)
}

func TestUserServiceDeleteMissingIsNotFound(t *testing.T) {
	users := &fakeUserStore{
		DeleteFn: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewUserService(users, testLogger())

	err := svc.Delete(context.Background(), "missing")

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindNotFound, serr.Kind)
}
