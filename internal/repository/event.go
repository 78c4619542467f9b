package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*model.Event, error) {
	var e model.Event
	err := s.Scan(
		&e.ID, &e.Title, &e.Annotation, &e.Description, &e.CreatedOn,
		&e.EventDate, &e.PublishedOn, &e.Category.ID, &e.Category.Name,
		&e.Initiator.ID, &e.Initiator.Name, &e.Initiator.Email,
		&e.Location.Lat, &e.Location.Lon, &e.Paid,
		&e.ParticipantLimit, &e.RequestModeration, &e.State,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, annotation, description, created_on, event_date,
		 published_on, category_id, initiator_id, lat, lon, paid, participant_limit,
		 request_moderation, state)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.Title, e.Annotation, e.Description, e.CreatedOn, e.EventDate,
		e.PublishedOn, e.Category.ID, e.Initiator.ID, e.Location.Lat, e.Location.Lon,
		e.Paid, e.ParticipantLimit, e.RequestModeration, e.State,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Update persists every mutable event field together with the state, so a
// field patch bundled with a transition lands in one statement.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET title = $2, annotation = $3, description = $4, event_date = $5,
		 published_on = $6, category_id = $7, lat = $8, lon = $9, paid = $10,
		 participant_limit = $11, request_moderation = $12, state = $13
		 WHERE id = $1`,
		e.ID, e.Title, e.Annotation, e.Description, e.EventDate, e.PublishedOn,
		e.Category.ID, e.Location.Lat, e.Location.Lon, e.Paid,
		e.ParticipantLimit, e.RequestModeration, e.State,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, eventSelect+" WHERE e.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetByIDAndInitiator returns the event only when it is owned by the
// given initiator.
func (r *EventRepository) GetByIDAndInitiator(ctx context.Context, id, initiatorID string) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		eventSelect+" WHERE e.id = $1 AND e.initiator_id = $2", id, initiatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event by initiator: %w", err)
	}
	return e, nil
}

// GetByIDInStates returns the event only when its state is in the set.
func (r *EventRepository) GetByIDInStates(ctx context.Context, id string, states []model.EventState) (*model.Event, error) {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	e, err := scanEvent(r.db.QueryRow(ctx,
		eventSelect+" WHERE e.id = $1 AND e.state = ANY($2)", id, names))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event by states: %w", err)
	}
	return e, nil
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Find runs the composed listing query.
func (r *EventRepository) Find(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	sql, args := NewEventQuery(f).SQL()
	return r.query(ctx, sql, args...)
}

// FindByInitiator returns a page of the initiator's events in insertion order.
func (r *EventRepository) FindByInitiator(ctx context.Context, initiatorID string, from, size int) ([]model.Event, error) {
	return r.query(ctx,
		eventSelect+` WHERE e.initiator_id = $1
		 ORDER BY e.created_on ASC, e.id ASC LIMIT $2 OFFSET $3`,
		initiatorID, size, from)
}

// FindByIDs returns the named events preserving the order of ids.
// Unknown ids are skipped.
func (r *EventRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	events, err := r.query(ctx, eventSelect+" WHERE e.id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	ordered := make([]model.Event, 0, len(events))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}
