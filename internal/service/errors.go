package service

import (
	"errors"
	"fmt"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
)

// Kind classifies a business failure so handlers can pick a status code.
type Kind int

const (
	// KindNotFound covers missing entities and ownership mismatches.
	KindNotFound Kind = iota
	// KindConflict covers state-machine violations, capacity overruns,
	// duplicates and in-use rejections.
	KindConflict
	// KindValidation covers malformed input and bad enum values.
	KindValidation
)

// Error is a classified business failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a KindConflict error.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Invalidf builds a KindValidation error.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// wrapNotFound turns the repository's ErrNotFound into a KindNotFound
// error describing the missing entity; other errors pass through.
func wrapNotFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf(format+" not found", args...)
	}
	return err
}

// ValidationError carries per-field violations for the structured
// validation envelope.
type ValidationError struct {
	Message    string
	Violations []model.Violation
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) add(field, message string) {
	e.Violations = append(e.Violations, model.Violation{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
