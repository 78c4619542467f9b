// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"time"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// EventStore is the persistence surface the services need for events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID string) (*model.Event, error)
	GetByIDInStates(ctx context.Context, id string, states []model.EventState) (*model.Event, error)
	Find(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	FindByInitiator(ctx context.Context, initiatorID string, from, size int) ([]model.Event, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Event, error)
}

// RequestStore is the persistence surface for participation requests.
type RequestStore interface {
	Create(ctx context.Context, req *model.Request) error
	GetByIDAndRequester(ctx context.Context, id, requesterID string) (*model.Request, error)
	FindByEvent(ctx context.Context, eventID string) ([]model.Request, error)
	FindByEventAndIDs(ctx context.Context, eventID string, ids []string) ([]model.Request, error)
	FindByRequester(ctx context.Context, requesterID string) ([]model.Request, error)
	CountConfirmed(ctx context.Context, eventID string) (int64, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error)
	UpdateStatus(ctx context.Context, req *model.Request) error
	SaveStatuses(ctx context.Context, requests []model.Request) error
}

// UserStore is the persistence surface for users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, ids []string, from, size int) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}

// CategoryStore is the persistence surface for categories.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	Find(ctx context.Context, from, size int) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error
}

// CompilationStore is the persistence surface for compilations.
type CompilationStore interface {
	Create(ctx context.Context, c *model.Compilation) error
	Update(ctx context.Context, c *model.Compilation) error
	GetByID(ctx context.Context, id string) (*model.Compilation, error)
	Find(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error)
	Delete(ctx context.Context, id string) error
}

// CommentStore is the persistence surface for comments.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	FindByEvent(ctx context.Context, eventID string, from, size int) ([]model.Comment, error)
	FindByAuthor(ctx context.Context, authorID string, from, size int) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// HitStore is the persistence surface of the stats service.
type HitStore interface {
	Create(ctx context.Context, h *model.EndpointHit) error
	Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error)
}

// ViewsProvider supplies aggregate view counts from the stats
// collaborator. Failures are recovered locally by the event engine.
type ViewsProvider interface {
	Views(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error)
}
