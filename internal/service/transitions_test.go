package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

func TestApplyAction(t *testing.T) {
	tests := []struct {
		name     string
		role     model.ActorRole
		action   model.StateAction
		current  model.EventState
		want     model.EventState
		wantKind Kind
		wantErr  bool
	}{
		{name: "initiator resubmits pending", role: model.RoleInitiator, action: model.ActionSendToReview, current: model.StatePending, want: model.StatePending},
		{name: "initiator resubmits canceled", role: model.RoleInitiator, action: model.ActionSendToReview, current: model.StateCanceled, want: model.StatePending},
		{name: "initiator cancels pending", role: model.RoleInitiator, action: model.ActionCancelReview, current: model.StatePending, want: model.StateCanceled},
		{name: "initiator cancels canceled", role: model.RoleInitiator, action: model.ActionCancelReview, current: model.StateCanceled, want: model.StateCanceled},
		{name: "admin publishes pending", role: model.RoleAdmin, action: model.ActionPublish, current: model.StatePending, want: model.StatePublished},
		{name: "admin rejects pending", role: model.RoleAdmin, action: model.ActionReject, current: model.StatePending, want: model.StateCanceled},
		{name: "admin rejects canceled", role: model.RoleAdmin, action: model.ActionReject, current: model.StateCanceled, want: model.StateCanceled},

		{name: "initiator resubmits published", role: model.RoleInitiator, action: model.ActionSendToReview, current: model.StatePublished, wantErr: true, wantKind: KindConflict},
		{name: "initiator cancels published", role: model.RoleInitiator, action: model.ActionCancelReview, current: model.StatePublished, wantErr: true, wantKind: KindConflict},
		{name: "admin publishes published", role: model.RoleAdmin, action: model.ActionPublish, current: model.StatePublished, wantErr: true, wantKind: KindConflict},
		{name: "admin publishes canceled", role: model.RoleAdmin, action: model.ActionPublish, current: model.StateCanceled, wantErr: true, wantKind: KindConflict},
		{name: "admin rejects published", role: model.RoleAdmin, action: model.ActionReject, current: model.StatePublished, wantErr: true, wantKind: KindConflict},

		{name: "initiator cannot publish", role: model.RoleInitiator, action: model.ActionPublish, current: model.StatePending, wantErr: true, wantKind: KindValidation},
		{name: "initiator cannot reject", role: model.RoleInitiator, action: model.ActionReject, current: model.StatePending, wantErr: true, wantKind: KindValidation},
		{name: "admin cannot send to review", role: model.RoleAdmin, action: model.ActionSendToReview, current: model.StatePending, wantErr: true, wantKind: KindValidation},
		{name: "admin cannot cancel review", role: model.RoleAdmin, action: model.ActionCancelReview, current: model.StatePending, wantErr: true, wantKind: KindValidation},
		{name: "garbage action", role: model.RoleAdmin, action: "DELETE_EVERYTHING", current: model.StatePending, wantErr: true, wantKind: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyAction(tt.role, tt.action, tt.current)
			if tt.wantErr {
				require.Error(t, err)
				var serr *Error
				require.True(t, errors.As(err, &serr))
				assert.Equal(t, tt.wantKind, serr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
