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

// UserService handles the admin user registry.
type UserService struct {
	users UserStore
	log   *slog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, log *slog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// List returns a page of users, optionally restricted to an id set.
func (s *UserService) List(ctx context.Context, ids []string, from, size int) ([]model.UserDTO, error) {
	users, err := s.users.Find(ctx, ids, from, size)
	if err != nil {
		return nil, err
	}
	dtos := make([]model.UserDTO, len(users))
	for i, u := range users {
		dtos[i] = model.UserDTO{ID: u.ID, Email: u.Email, Name: u.Name}
	}
	return dtos, nil
}

// Create registers a user. Duplicate emails are rejected as Conflict.
func (s *UserService) Create(ctx context.Context, req model.NewUserRequest) (model.UserDTO, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	v := &ValidationError{Message: "invalid user"}
	if !isValidEmail(email) {
		v.add("email", "is not a valid email address")
	}
	if strings.TrimSpace(req.Name) == "" {
		v.add("name", "is required")
	}
	if err := v.orNil(); err != nil {
		return model.UserDTO{}, err
	}

	user := &model.User{ID: uuid.New().String(), Email: email, Name: req.Name}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.Warn("user creation rejected: duplicate email", slog.String("email", email))
			return model.UserDTO{}, Conflictf("user with email %s exists", email)
		}
		return model.UserDTO{}, err
	}
	s.log.Info("user created", slog.String("userId", user.ID))
	return model.UserDTO{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return wrapNotFound(err, "user %s", userID)
	}
	s.log.Info("user deleted", slog.String("userId", userID))
	return nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
