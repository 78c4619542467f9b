package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// CompilationService curates ordered selections of events.
type CompilationService struct {
	compilations CompilationStore
	events       EventStore
	tf           timefmt.Formatter
	log          *slog.Logger
}

// NewCompilationService constructs a CompilationService.
func NewCompilationService(
	compilations CompilationStore,
	events EventStore,
	tf timefmt.Formatter,
	log *slog.Logger,
) *CompilationService {
	return &CompilationService{compilations: compilations, events: events, tf: tf, log: log}
}

// List returns a page of compilations, optionally restricted by the
// pinned flag.
func (s *CompilationService) List(ctx context.Context, pinned *bool, from, size int) ([]model.CompilationDTO, error) {
	compilations, err := s.compilations.Find(ctx, pinned, from, size)
	if err != nil {
		return nil, err
	}
	dtos := make([]model.CompilationDTO, len(compilations))
	for i, c := range compilations {
		dtos[i] = s.toDTO(c)
	}
	return dtos, nil
}

// GetByID returns a single compilation.
func (s *CompilationService) GetByID(ctx context.Context, id string) (model.CompilationDTO, error) {
	compilation, err := s.compilations.GetByID(ctx, id)
	if err != nil {
		return model.CompilationDTO{}, wrapNotFound(err, "compilation %s", id)
	}
	return s.toDTO(*compilation), nil
}

// Create builds a compilation from an event id set, preserving order and
// dropping duplicates and unknown ids.
func (s *CompilationService) Create(ctx context.Context, req model.NewCompilationRequest) (model.CompilationDTO, error) {
	if req.Title == "" || len(req.Title) > 50 {
		return model.CompilationDTO{}, &ValidationError{
			Message:    "invalid compilation",
			Violations: []model.Violation{{Field: "title", Message: "must be 1 to 50 characters"}},
		}
	}

	events, err := s.resolveEvents(ctx, req.Events)
	if err != nil {
		return model.CompilationDTO{}, err
	}
	compilation := &model.Compilation{
		ID:     uuid.New().String(),
		Title:  req.Title,
		Pinned: req.Pinned,
		Events: events,
	}
	if err := s.compilations.Create(ctx, compilation); err != nil {
		return model.CompilationDTO{}, err
	}
	s.log.Info("compilation created", slog.String("compilationId", compilation.ID))
	return s.toDTO(*compilation), nil
}

// Update applies a sparse patch; a present event id set replaces the
// membership entirely.
func (s *CompilationService) Update(ctx context.Context, id string, req model.UpdateCompilationRequest) (model.CompilationDTO, error) {
	compilation, err := s.compilations.GetByID(ctx, id)
	if err != nil {
		return model.CompilationDTO{}, wrapNotFound(err, "compilation %s", id)
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > 50 {
			return model.CompilationDTO{}, &ValidationError{
				Message:    "invalid compilation",
				Violations: []model.Violation{{Field: "title", Message: "must be 1 to 50 characters"}},
			}
		}
		compilation.Title = *req.Title
	}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}
	if req.Events != nil {
		events, err := s.resolveEvents(ctx, *req.Events)
		if err != nil {
			return model.CompilationDTO{}, err
		}
		compilation.Events = events
	}

	if err := s.compilations.Update(ctx, compilation); err != nil {
		return model.CompilationDTO{}, err
	}
	return s.toDTO(*compilation), nil
}

// Delete removes a compilation.
func (s *CompilationService) Delete(ctx context.Context, id string) error {
	if err := s.compilations.Delete(ctx, id); err != nil {
		return wrapNotFound(err, "compilation %s", id)
	}
	s.log.Info("compilation deleted", slog.String("compilationId", id))
	return nil
}

func (s *CompilationService) resolveEvents(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return s.events.FindByIDs(ctx, unique)
}

func (s *CompilationService) toDTO(c model.Compilation) model.CompilationDTO {
	events := make([]model.EventShortDTO, len(c.Events))
	for i, e := range c.Events {
		events[i] = model.NewEventFullDTO(e, 0, 0, s.tf).ToShort()
	}
	return model.CompilationDTO{ID: c.ID, Title: c.Title, Pinned: c.Pinned, Events: events}
}
