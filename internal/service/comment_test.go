package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

func newCommentService(comments CommentStore, events EventStore, users UserStore) *CommentService {
	return NewCommentService(comments, events, users, timefmt.UTC(), testLogger())
}

func TestCommentServiceCreate(t *testing.T) {
	createdOn := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := &fakeEventStore{
		GetByIDFn: func(ctx context.Context, id string) (*model.Event, error) {
			e := publishedEvent(id, createdOn)
			return &e, nil
		},
	}
	var saved *model.Comment
	comments := &fakeCommentStore{
		CreateFn: func(ctx context.Context, c *model.Comment) error {
			saved = c
			return nil
		},
	}
	svc := newCommentService(comments, events, existingUser("user-2"))

	got, err := svc.Create(context.Background(), "user-2", "e1", model.NewCommentRequest{Text: "  Great lineup!  "})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "Great lineup!", saved.Text)
	assert.Equal(t, "user-2", saved.Author.ID)
	assert.Equal(t, "e1", got.EventID)
	assert.NotEmpty(t, got.Created)
}

func TestCommentServiceCreateRequiresPublishedEvent(t *testing.T) {
	createdOn := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := &fakeEventStore{
		GetByIDFn: func(ctx context.Context, id string) (*model.Event, error) {
			e := publishedEvent(id, createdOn)
			e.State = model.StatePending
			return &e, nil
		},
	}
	svc := newCommentService(&fakeCommentStore{}, events, existingUser("user-2"))

	_, err := svc.Create(context.Background(), "user-2", "e1", model.NewCommentRequest{Text: "First!"})

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindConflict, serr.Kind)
}

func TestCommentServiceCreateTextBounds(t *testing.T) {
	svc := newCommentService(&fakeCommentStore{}, &fakeEventStore{}, &fakeUserStore{})

	for _, text := range []string{"", "   ", strings.Repeat("a", 2001)} {
		_, err := svc.Create(context.Background(), "user-2", "e1", model.NewCommentRequest{Text: text})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
}
