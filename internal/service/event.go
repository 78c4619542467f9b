package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// minEventLead is the minimum gap between "now" and an event's date on
// create and update.
const minEventLead = 2 * time.Hour

// EventService owns the event lifecycle and the enriched read path.
type EventService struct {
	events     EventStore
	requests   RequestStore
	users      UserStore
	categories CategoryStore
	stats      ViewsProvider
	tf         timefmt.Formatter
	log        *slog.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(
	events EventStore,
	requests RequestStore,
	users UserStore,
	categories CategoryStore,
	stats ViewsProvider,
	tf timefmt.Formatter,
	log *slog.Logger,
) *EventService {
	return &EventService{
		events:     events,
		requests:   requests,
		users:      users,
		categories: categories,
		stats:      stats,
		tf:         tf,
		log:        log,
	}
}

// Create registers a new PENDING event for the initiator.
func (s *EventService) Create(ctx context.Context, userID string, req model.NewEventRequest) (model.EventFullDTO, error) {
	if err := validateNewEvent(req); err != nil {
		return model.EventFullDTO{}, err
	}

	initiator, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "user %s", userID)
	}
	category, err := s.categories.GetByID(ctx, req.Category)
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "category %s", req.Category)
	}

	eventDate, err := s.parseEventDate(req.EventDate)
	if err != nil {
		return model.EventFullDTO{}, err
	}

	event := &model.Event{
		ID:                uuid.New().String(),
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CreatedOn:         s.tf.Now(),
		EventDate:         eventDate,
		Category:          *category,
		Initiator:         *initiator,
		Location:          *req.Location,
		Paid:              req.Paid != nil && *req.Paid,
		ParticipantLimit:  0,
		RequestModeration: req.RequestModeration == nil || *req.RequestModeration,
		State:             model.StatePending,
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}

	if err := s.events.Create(ctx, event); err != nil {
		return model.EventFullDTO{}, err
	}
	s.log.Info("event created",
		slog.String("eventId", event.ID),
		slog.String("initiatorId", userID),
	)
	return model.NewEventFullDTO(*event, 0, 0, s.tf), nil
}

// UpdateByInitiator applies a sparse patch and an optional review action
// on the initiator's own event. Published events cannot be changed.
func (s *EventService) UpdateByInitiator(ctx context.Context, eventID, userID string, req model.UpdateEventRequest) (model.EventFullDTO, error) {
	event, err := s.events.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "event %s for initiator %s", eventID, userID)
	}
	if event.State == model.StatePublished {
		s.log.Warn("rejected initiator update of published event",
			slog.String("eventId", eventID), slog.String("initiatorId", userID))
		return model.EventFullDTO{}, Conflictf("only pending or canceled events can be changed, current: %s", event.State)
	}
	return s.update(ctx, event, model.RoleInitiator, req)
}

// UpdateByAdmin applies a sparse patch and an optional publish/reject
// action on any event.
func (s *EventService) UpdateByAdmin(ctx context.Context, eventID string, req model.UpdateEventRequest) (model.EventFullDTO, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "event %s", eventID)
	}
	return s.update(ctx, event, model.RoleAdmin, req)
}

// update applies the patch and the transition atomically: everything
// lands in one Update call, nothing on failure.
func (s *EventService) update(ctx context.Context, event *model.Event, role model.ActorRole, req model.UpdateEventRequest) (model.EventFullDTO, error) {
	if err := validateEventPatch(req); err != nil {
		return model.EventFullDTO{}, err
	}

	if req.StateAction != nil {
		next, err := applyAction(role, model.StateAction(*req.StateAction), event.State)
		if err != nil {
			s.log.Warn("rejected state transition",
				slog.String("eventId", event.ID),
				slog.String("action", *req.StateAction),
				slog.String("state", string(event.State)),
				slog.String("role", string(role)),
			)
			return model.EventFullDTO{}, err
		}
		if next == model.StatePublished && event.PublishedOn == nil {
			now := s.tf.Now()
			event.PublishedOn = &now
		}
		event.State = next
	}

	if err := s.patch(ctx, event, req); err != nil {
		return model.EventFullDTO{}, err
	}

	if err := s.events.Update(ctx, event); err != nil {
		return model.EventFullDTO{}, err
	}
	enriched, err := s.enrich(ctx, []model.Event{*event}, false)
	if err != nil {
		return model.EventFullDTO{}, err
	}
	return enriched[0], nil
}

func (s *EventService) patch(ctx context.Context, event *model.Event, req model.UpdateEventRequest) error {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Annotation != nil {
		event.Annotation = *req.Annotation
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		eventDate, err := s.parseEventDate(*req.EventDate)
		if err != nil {
			return err
		}
		event.EventDate = eventDate
	}
	if req.Category != nil {
		category, err := s.categories.GetByID(ctx, *req.Category)
		if err != nil {
			return wrapNotFound(err, "category %s", *req.Category)
		}
		event.Category = *category
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}
	return nil
}

// parseEventDate reads a wire date and enforces the minimum lead time.
// A malformed date is a validation failure; a date that is too soon is a
// conflict, matching the error contract of the update endpoints.
func (s *EventService) parseEventDate(raw string) (time.Time, error) {
	eventDate, err := s.tf.Parse(raw)
	if err != nil {
		return time.Time{}, &ValidationError{
			Message:    "invalid event date",
			Violations: []model.Violation{{Field: "eventDate", Message: err.Error()}},
		}
	}
	if eventDate.Before(s.tf.Now().Add(minEventLead)) {
		return time.Time{}, Conflictf("event date must be at least %s in the future: %s", minEventLead, raw)
	}
	return eventDate, nil
}

// Query runs the filtered listing and returns enriched events. Without
// an explicit range the listing keeps upcoming events only; an inverted
// explicit range fails before any query is executed.
func (s *EventService) Query(ctx context.Context, f model.EventFilter) ([]model.EventFullDTO, error) {
	if f.RangeStart == nil && f.RangeEnd == nil {
		now := s.tf.Now()
		f.RangeStart = &now
	}
	if f.RangeStart != nil && f.RangeEnd != nil && !f.RangeStart.Before(*f.RangeEnd) {
		return nil, Invalidf("rangeStart must be before rangeEnd: start=%s, end=%s",
			s.tf.Format(*f.RangeStart), s.tf.Format(*f.RangeEnd))
	}

	events, err := s.events.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, events, f.Sort == model.SortViews)
}

// GetByIDForInitiator returns the initiator's own event, enriched.
func (s *EventService) GetByIDForInitiator(ctx context.Context, eventID, userID string) (model.EventFullDTO, error) {
	event, err := s.events.GetByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "event %s for initiator %s", eventID, userID)
	}
	enriched, err := s.enrich(ctx, []model.Event{*event}, false)
	if err != nil {
		return model.EventFullDTO{}, err
	}
	return enriched[0], nil
}

// GetPublishedByID returns the event only when it is published.
func (s *EventService) GetPublishedByID(ctx context.Context, eventID string) (model.EventFullDTO, error) {
	event, err := s.events.GetByIDInStates(ctx, eventID, []model.EventState{model.StatePublished})
	if err != nil {
		return model.EventFullDTO{}, wrapNotFound(err, "published event %s", eventID)
	}
	enriched, err := s.enrich(ctx, []model.Event{*event}, false)
	if err != nil {
		return model.EventFullDTO{}, err
	}
	return enriched[0], nil
}

// ListByInitiator returns a page of the initiator's events, any state.
func (s *EventService) ListByInitiator(ctx context.Context, userID string, from, size int) ([]model.EventShortDTO, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %s", userID)
	}
	events, err := s.events.FindByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enrich(ctx, events, false)
	if err != nil {
		return nil, err
	}
	short := make([]model.EventShortDTO, len(enriched))
	for i, dto := range enriched {
		short[i] = dto.ToShort()
	}
	return short, nil
}

// enrich attaches confirmed-request counts and view counts to a fetched
// page. View counts degrade to zero when the stats collaborator fails;
// sortByViews reorders the already-fetched page in place.
func (s *EventService) enrich(ctx context.Context, events []model.Event, sortByViews bool) ([]model.EventFullDTO, error) {
	if len(events) == 0 {
		return []model.EventFullDTO{}, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	confirmed, err := s.requests.CountConfirmedByEvents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count confirmed requests: %w", err)
	}
	views := s.views(ctx, events)

	dtos := make([]model.EventFullDTO, len(events))
	for i, e := range events {
		dtos[i] = model.NewEventFullDTO(e, confirmed[e.ID], views[e.ID], s.tf)
	}
	if sortByViews {
		sort.SliceStable(dtos, func(i, j int) bool {
			return dtos[i].Views > dtos[j].Views
		})
	}
	return dtos, nil
}

// views fetches unique view counts for the batch over
// [min createdOn, now). A stats failure is logged and degrades to an
// empty map; it never reaches the caller.
func (s *EventService) views(ctx context.Context, events []model.Event) map[string]int64 {
	minCreated := events[0].CreatedOn
	uris := make([]string, len(events))
	for i, e := range events {
		if e.CreatedOn.Before(minCreated) {
			minCreated = e.CreatedOn
		}
		uris[i] = "/events/" + e.ID
	}

	stats, err := s.stats.Views(ctx, minCreated, s.tf.Now(), uris, true)
	if err != nil {
		s.log.Error("get stats failed", slog.String("error", err.Error()))
		return nil
	}
	views := make(map[string]int64, len(stats))
	for _, st := range stats {
		views[path.Base(st.URI)] = st.Hits
	}
	return views
}

func validateNewEvent(req model.NewEventRequest) error {
	v := &ValidationError{Message: "invalid event"}
	if n := len(req.Title); n < 3 || n > 120 {
		v.add("title", "must be 3 to 120 characters")
	}
	if n := len(req.Annotation); n < 20 || n > 2000 {
		v.add("annotation", "must be 20 to 2000 characters")
	}
	if n := len(req.Description); n < 20 || n > 7000 {
		v.add("description", "must be 20 to 7000 characters")
	}
	if req.EventDate == "" {
		v.add("eventDate", "is required")
	}
	if req.Category == "" {
		v.add("category", "is required")
	}
	if req.Location == nil {
		v.add("location", "is required")
	}
	if req.ParticipantLimit != nil && *req.ParticipantLimit < 0 {
		v.add("participantLimit", "must not be negative")
	}
	return v.orNil()
}

func validateEventPatch(req model.UpdateEventRequest) error {
	v := &ValidationError{Message: "invalid event patch"}
	if req.Title != nil {
		if n := len(*req.Title); n < 3 || n > 120 {
			v.add("title", "must be 3 to 120 characters")
		}
	}
	if req.Annotation != nil {
		if n := len(*req.Annotation); n < 20 || n > 2000 {
			v.add("annotation", "must be 20 to 2000 characters")
		}
	}
	if req.Description != nil {
		if n := len(*req.Description); n < 20 || n > 7000 {
			v.add("description", "must be 20 to 7000 characters")
		}
	}
	if req.ParticipantLimit != nil && *req.ParticipantLimit < 0 {
		v.add("participantLimit", "must not be negative")
	}
	return v.orNil()
}
