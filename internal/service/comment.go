package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

// CommentService manages user remarks on published events.
type CommentService struct {
	comments CommentStore
	events   EventStore
	users    UserStore
	tf       timefmt.Formatter
	log      *slog.Logger
}

// NewCommentService constructs a CommentService.
func NewCommentService(
	comments CommentStore,
	events EventStore,
	users UserStore,
	tf timefmt.Formatter,
	log *slog.Logger,
) *CommentService {
	return &CommentService{comments: comments, events: events, users: users, tf: tf, log: log}
}

// Create adds a comment to a published event on behalf of a user.
func (s *CommentService) Create(ctx context.Context, userID, eventID string, req model.NewCommentRequest) (model.CommentDTO, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" || len(text) > 2000 {
		return model.CommentDTO{}, &ValidationError{
			Message:    "invalid comment",
			Violations: []model.Violation{{Field: "text", Message: "must be 1 to 2000 characters"}},
		}
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.CommentDTO{}, wrapNotFound(err, "user %s", userID)
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return model.CommentDTO{}, wrapNotFound(err, "event %s", eventID)
	}
	if event.State != model.StatePublished {
		return model.CommentDTO{}, Conflictf("cannot comment: event is %s", event.State)
	}

	comment := &model.Comment{
		ID:      uuid.New().String(),
		EventID: event.ID,
		Author:  *author,
		Text:    text,
		Created: s.tf.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return model.CommentDTO{}, err
	}
	s.log.Info("comment created",
		slog.String("commentId", comment.ID),
		slog.String("eventId", event.ID),
	)
	return model.NewCommentDTO(*comment, s.tf), nil
}

// ListByEvent returns a page of an event's comments, newest first.
func (s *CommentService) ListByEvent(ctx context.Context, eventID string, from, size int) ([]model.CommentDTO, error) {
	if _, err := s.events.GetByIDInStates(ctx, eventID, []model.EventState{model.StatePublished}); err != nil {
		return nil, wrapNotFound(err, "event %s", eventID)
	}
	comments, err := s.comments.FindByEvent(ctx, eventID, from, size)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(comments), nil
}

// ListByAuthor returns a page of a user's own comments, newest first.
func (s *CommentService) ListByAuthor(ctx context.Context, userID string, from, size int) ([]model.CommentDTO, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %s", userID)
	}
	comments, err := s.comments.FindByAuthor(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(comments), nil
}

// Delete removes a comment by id, an admin-only operation.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return wrapNotFound(err, "comment %s", id)
	}
	s.log.Info("comment deleted", slog.String("commentId", id))
	return nil
}

func (s *CommentService) toDTOs(comments []model.Comment) []model.CommentDTO {
	dtos := make([]model.CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = model.NewCommentDTO(c, s.tf)
	}
	return dtos
}
