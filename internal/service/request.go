package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/repository"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// RequestService manages participation requests against events.
type RequestService struct {
	requests RequestStore
	events   EventStore
	users    UserStore
	tf       timefmt.Formatter
	log      *slog.Logger
}

// NewRequestService constructs a RequestService with its dependencies.
func NewRequestService(
	requests RequestStore,
	events EventStore,
	users UserStore,
	tf timefmt.Formatter,
	log *slog.Logger,
) *RequestService {
	return &RequestService{requests: requests, events: events, users: users, tf: tf, log: log}
}

// Create files a participation request. The event must be published, the
// requester must not be the initiator, the (requester, event) pair must
// be new and the participant limit must not be exhausted. The request is
// auto-confirmed when moderation is off or the limit is zero.
func (s *RequestService) Create(ctx context.Context, userID, eventID string) (model.RequestDTO, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return model.RequestDTO{}, wrapNotFound(err, "user %s", userID)
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return model.RequestDTO{}, wrapNotFound(err, "event %s", eventID)
	}

	if event.State != model.StatePublished {
		s.log.Warn("request rejected: event not published",
			slog.String("eventId", eventID), slog.String("userId", userID),
			slog.String("state", string(event.State)))
		return model.RequestDTO{}, Conflictf("cannot join event %s: state is %s", eventID, event.State)
	}
	if event.Initiator.ID == userID {
		s.log.Warn("request rejected: initiator joins own event",
			slog.String("eventId", eventID), slog.String("userId", userID))
		return model.RequestDTO{}, Conflictf("initiator cannot request own event %s", eventID)
	}

	if event.ParticipantLimit > 0 {
		confirmed, err := s.requests.CountConfirmed(ctx, eventID)
		if err != nil {
			return model.RequestDTO{}, err
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return model.RequestDTO{}, s.limitReached(eventID, userID, confirmed, event.ParticipantLimit)
		}
	}

	status := model.RequestPending
	if !event.RequestModeration || event.ParticipantLimit == 0 {
		status = model.RequestConfirmed
	}
	request := &model.Request{
		ID:          uuid.New().String(),
		EventID:     eventID,
		RequesterID: userID,
		Status:      status,
		Created:     s.tf.Now(),
	}

	// The repository re-validates capacity under a row lock, so a race
	// between the check above and this insert still cannot overrun the
	// limit.
	if err := s.requests.Create(ctx, request); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRequest):
			s.log.Warn("request rejected: duplicate",
				slog.String("eventId", eventID), slog.String("userId", userID))
			return model.RequestDTO{}, Conflictf("request already exists, user %s, event %s", userID, eventID)
		case errors.Is(err, repository.ErrParticipantLimitReached):
			return model.RequestDTO{}, s.limitReached(eventID, userID, int64(event.ParticipantLimit), event.ParticipantLimit)
		default:
			return model.RequestDTO{}, err
		}
	}
	s.log.Info("request created",
		slog.String("requestId", request.ID),
		slog.String("eventId", eventID), slog.String("userId", userID))
	return model.NewRequestDTO(*request, s.tf), nil
}

// Cancel marks the user's own request CANCELED, whatever its prior status.
func (s *RequestService) Cancel(ctx context.Context, userID, requestID string) (model.RequestDTO, error) {
	request, err := s.requests.GetByIDAndRequester(ctx, requestID, userID)
	if err != nil {
		return model.RequestDTO{}, wrapNotFound(err, "request %s for user %s", requestID, userID)
	}
	request.Status = model.RequestCanceled
	if err := s.requests.UpdateStatus(ctx, request); err != nil {
		return model.RequestDTO{}, err
	}
	return model.NewRequestDTO(*request, s.tf), nil
}

// ListOwn returns the user's requests in events of other initiators.
func (s *RequestService) ListOwn(ctx context.Context, userID string) ([]model.RequestDTO, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %s", userID)
	}
	requests, err := s.requests.FindByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(requests), nil
}

// ListByEvent returns the requests against the initiator's own event.
func (s *RequestService) ListByEvent(ctx context.Context, ownerID, eventID string) ([]model.RequestDTO, error) {
	if _, err := s.ownedEvent(ctx, ownerID, eventID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(requests), nil
}

// UpdateStatuses confirms or rejects a batch of PENDING requests against
// the initiator's event. Statuses are computed in memory first and
// persisted in one batch, so a mid-batch failure applies nothing.
func (s *RequestService) UpdateStatuses(ctx context.Context, ownerID, eventID string, upd model.StatusUpdateRequest) (model.StatusUpdateResult, error) {
	target := model.RequestStatus(upd.Status)
	if target != model.RequestConfirmed && target != model.RequestRejected {
		return model.StatusUpdateResult{}, Invalidf("unknown target status: %s", upd.Status)
	}

	event, err := s.ownedEvent(ctx, ownerID, eventID)
	if err != nil {
		return model.StatusUpdateResult{}, err
	}

	requests, err := s.requests.FindByEventAndIDs(ctx, eventID, upd.RequestIDs)
	if err != nil {
		return model.StatusUpdateResult{}, err
	}
	result := model.StatusUpdateResult{
		ConfirmedRequests: []model.RequestDTO{},
		RejectedRequests:  []model.RequestDTO{},
	}
	if len(requests) == 0 {
		return result, nil
	}

	// Without a limit or moderation every request is admitted as-is;
	// nothing to mutate.
	if event.ParticipantLimit == 0 || !event.RequestModeration {
		result.ConfirmedRequests = s.toDTOs(requests)
		return result, nil
	}

	confirmed, err := s.requests.CountConfirmed(ctx, eventID)
	if err != nil {
		return model.StatusUpdateResult{}, err
	}
	if confirmed >= int64(event.ParticipantLimit) {
		return model.StatusUpdateResult{}, s.limitReached(eventID, ownerID, confirmed, event.ParticipantLimit)
	}

	remaining := int64(event.ParticipantLimit) - confirmed
	for i := range requests {
		request := &requests[i]
		if request.Status != model.RequestPending {
			s.log.Warn("bulk status update rejected: request not pending",
				slog.String("requestId", request.ID),
				slog.String("eventId", eventID),
				slog.String("status", string(request.Status)))
			return model.StatusUpdateResult{}, Conflictf("request %s is %s, expected PENDING", request.ID, request.Status)
		}
		if remaining > 0 && target == model.RequestConfirmed {
			request.Status = model.RequestConfirmed
			result.ConfirmedRequests = append(result.ConfirmedRequests, model.NewRequestDTO(*request, s.tf))
			remaining--
		} else {
			request.Status = model.RequestRejected
			result.RejectedRequests = append(result.RejectedRequests, model.NewRequestDTO(*request, s.tf))
		}
	}

	if err := s.requests.SaveStatuses(ctx, requests); err != nil {
		return model.StatusUpdateResult{}, err
	}
	return result, nil
}

// ownedEvent resolves the event and hides it behind NotFound when the
// caller is not its initiator.
func (s *RequestService) ownedEvent(ctx context.Context, ownerID, eventID string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, wrapNotFound(err, "event %s", eventID)
	}
	if event.Initiator.ID != ownerID {
		s.log.Warn("event access rejected: not the initiator",
			slog.String("eventId", eventID), slog.String("userId", ownerID))
		return nil, NotFoundf("event %s for initiator %s not found", eventID, ownerID)
	}
	return event, nil
}

func (s *RequestService) limitReached(eventID, actorID string, confirmed int64, limit int) error {
	s.log.Warn("participant limit reached",
		slog.String("eventId", eventID),
		slog.String("actorId", actorID),
		slog.Int64("confirmed", confirmed),
		slog.Int("limit", limit))
	return Conflictf("participant limit reached: confirmed %d, limit %d", confirmed, limit)
}

func (s *RequestService) toDTOs(requests []model.Request) []model.RequestDTO {
	dtos := make([]model.RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = model.NewRequestDTO(r, s.tf)
	}
	return dtos
}
