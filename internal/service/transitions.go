package service

import "github.com/desyatov-student/explore-with-me/internal/model"

// transitionKey identifies one cell of the lifecycle table: who asks for
// which action.
type transitionKey struct {
	role   model.ActorRole
	action model.StateAction
}

type transition struct {
	allowed []model.EventState
	next    model.EventState
}

// transitions is the single source of truth for the event state machine.
// Anything not listed here is rejected.
var transitions = map[transitionKey]transition{
	{model.RoleInitiator, model.ActionSendToReview}: {
		allowed: []model.EventState{model.StatePending, model.StateCanceled},
		next:    model.StatePending,
	},
	{model.RoleInitiator, model.ActionCancelReview}: {
		allowed: []model.EventState{model.StatePending, model.StateCanceled},
		next:    model.StateCanceled,
	},
	{model.RoleAdmin, model.ActionPublish}: {
		allowed: []model.EventState{model.StatePending},
		next:    model.StatePublished,
	},
	{model.RoleAdmin, model.ActionReject}: {
		allowed: []model.EventState{model.StatePending, model.StateCanceled},
		next:    model.StateCanceled,
	},
}

// applyAction resolves the next state for (role, action, current).
// An unknown action is a validation failure; a known action against a
// wrong current state is a conflict, because it is about the present
// state of the resource, not the shape of the input.
func applyAction(role model.ActorRole, action model.StateAction, current model.EventState) (model.EventState, error) {
	t, ok := transitions[transitionKey{role, action}]
	if !ok {
		return "", Invalidf("unknown state action: %s", action)
	}
	for _, s := range t.allowed {
		if s == current {
			return t.next, nil
		}
	}
	return "", Conflictf("cannot apply %s: event is %s", action, current)
}
