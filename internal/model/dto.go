package model

import "github.com/desyatov-student/explore-with-me/internal/timefmt"

// UserDTO is the admin-facing user shape.
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserShortDTO is the user shape embedded in events and comments.
type UserShortDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryDTO is the wire shape of a category.
type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventFullDTO is an event enriched with live aggregates.
type EventFullDTO struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Annotation        string       `json:"annotation"`
	Description       string       `json:"description"`
	CreatedOn         string       `json:"createdOn"`
	EventDate         string       `json:"eventDate"`
	PublishedOn       string       `json:"publishedOn,omitempty"`
	Category          CategoryDTO  `json:"category"`
	Initiator         UserShortDTO `json:"initiator"`
	Location          Location     `json:"location"`
	Paid              bool         `json:"paid"`
	ParticipantLimit  int          `json:"participantLimit"`
	RequestModeration bool         `json:"requestModeration"`
	State             string       `json:"state"`
	ConfirmedRequests int64        `json:"confirmedRequests"`
	Views             int64        `json:"views"`
}

// EventShortDTO is the listing shape of an event.
type EventShortDTO struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Annotation        string       `json:"annotation"`
	EventDate         string       `json:"eventDate"`
	Category          CategoryDTO  `json:"category"`
	Initiator         UserShortDTO `json:"initiator"`
	Paid              bool         `json:"paid"`
	ConfirmedRequests int64        `json:"confirmedRequests"`
	Views             int64        `json:"views"`
}

// NewEventFullDTO renders an event with its aggregates.
func NewEventFullDTO(e Event, confirmed, views int64, f timefmt.Formatter) EventFullDTO {
	return EventFullDTO{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Description:       e.Description,
		CreatedOn:         f.Format(e.CreatedOn),
		EventDate:         f.Format(e.EventDate),
		PublishedOn:       f.FormatPtr(e.PublishedOn),
		Category:          CategoryDTO{ID: e.Category.ID, Name: e.Category.Name},
		Initiator:         UserShortDTO{ID: e.Initiator.ID, Name: e.Initiator.Name},
		Location:          e.Location,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		State:             string(e.State),
		ConfirmedRequests: confirmed,
		Views:             views,
	}
}

// ToShort narrows a full event DTO to its listing shape.
func (d EventFullDTO) ToShort() EventShortDTO {
	return EventShortDTO{
		ID:                d.ID,
		Title:             d.Title,
		Annotation:        d.Annotation,
		EventDate:         d.EventDate,
		Category:          d.Category,
		Initiator:         d.Initiator,
		Paid:              d.Paid,
		ConfirmedRequests: d.ConfirmedRequests,
		Views:             d.Views,
	}
}

// NewEventRequest is the payload for creating an event.
type NewEventRequest struct {
	Title             string    `json:"title"`
	Annotation        string    `json:"annotation"`
	Description       string    `json:"description"`
	EventDate         string    `json:"eventDate"`
	Category          string    `json:"category"`
	Location          *Location `json:"location"`
	Paid              *bool     `json:"paid"`
	ParticipantLimit  *int      `json:"participantLimit"`
	RequestModeration *bool     `json:"requestModeration"`
}

// UpdateEventRequest is a sparse patch; nil fields are left unchanged.
// StateAction, when present, asks for a lifecycle transition on top of
// the field updates.
type UpdateEventRequest struct {
	Title             *string   `json:"title"`
	Annotation        *string   `json:"annotation"`
	Description       *string   `json:"description"`
	EventDate         *string   `json:"eventDate"`
	Category          *string   `json:"category"`
	Location          *Location `json:"location"`
	Paid              *bool     `json:"paid"`
	ParticipantLimit  *int      `json:"participantLimit"`
	RequestModeration *bool     `json:"requestModeration"`
	StateAction       *string   `json:"stateAction"`
}

// RequestDTO is the wire shape of a participation request.
type RequestDTO struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Requester string `json:"requester"`
	Status    string `json:"status"`
	Created   string `json:"created"`
}

// NewRequestDTO renders a participation request.
func NewRequestDTO(r Request, f timefmt.Formatter) RequestDTO {
	return RequestDTO{
		ID:        r.ID,
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    string(r.Status),
		Created:   f.Format(r.Created),
	}
}

// StatusUpdateRequest is the bulk moderation payload for an event's requests.
type StatusUpdateRequest struct {
	RequestIDs []string `json:"requestIds"`
	Status     string   `json:"status"`
}

// StatusUpdateResult pairs the confirmed and rejected requests of one
// bulk moderation call.
type StatusUpdateResult struct {
	ConfirmedRequests []RequestDTO `json:"confirmedRequests"`
	RejectedRequests  []RequestDTO `json:"rejectedRequests"`
}

// NewUserRequest is the admin payload for creating a user.
type NewUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewCategoryRequest is the admin payload for creating a category.
type NewCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest renames a category.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CompilationDTO is the wire shape of a compilation.
type CompilationDTO struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Pinned bool            `json:"pinned"`
	Events []EventShortDTO `json:"events"`
}

// NewCompilationRequest is the admin payload for creating a compilation.
type NewCompilationRequest struct {
	Title  string   `json:"title"`
	Pinned bool     `json:"pinned"`
	Events []string `json:"events"`
}

// UpdateCompilationRequest is a sparse compilation patch.
type UpdateCompilationRequest struct {
	Title  *string   `json:"title"`
	Pinned *bool     `json:"pinned"`
	Events *[]string `json:"events"`
}

// NewCommentRequest is the payload for commenting on an event.
type NewCommentRequest struct {
	Text string `json:"text"`
}

// CommentDTO is the wire shape of a comment.
type CommentDTO struct {
	ID      string       `json:"id"`
	EventID string       `json:"eventId"`
	Author  UserShortDTO `json:"author"`
	Text    string       `json:"text"`
	Created string       `json:"created"`
}

// NewCommentDTO renders a comment.
func NewCommentDTO(c Comment, f timefmt.Formatter) CommentDTO {
	return CommentDTO{
		ID:      c.ID,
		EventID: c.EventID,
		Author:  UserShortDTO{ID: c.Author.ID, Name: c.Author.Name},
		Text:    c.Text,
		Created: f.Format(c.Created),
	}
}

// NewHitRequest is the payload for recording a page view.
type NewHitRequest struct {
	App string `json:"app"`
	URI string `json:"uri"`
	IP  string `json:"ip"`
}

// HitDTO is the wire shape of a recorded page view.
type HitDTO struct {
	ID        string `json:"id"`
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

// ApiError is the standard error envelope.
type ApiError struct {
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Violation names one invalid field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the envelope for input-validation failures.
type ValidationErrorResponse struct {
	Message    string      `json:"message"`
	Violations []Violation `json:"violations"`
}
