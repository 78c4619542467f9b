// Package model defines the core domain types for the event management system.
package model

import "time"

// EventState is the moderation state of an event.
type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
)

// EventStateFrom parses a state name, reporting whether it is known.
func EventStateFrom(s string) (EventState, bool) {
	switch EventState(s) {
	case StatePending, StatePublished, StateCanceled:
		return EventState(s), true
	}
	return "", false
}

// StateAction is a requested lifecycle transition.
type StateAction string

const (
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
	ActionPublish      StateAction = "PUBLISH_EVENT"
	ActionReject       StateAction = "REJECT_EVENT"
)

// ActorRole tags who asked for an event update.
type ActorRole string

const (
	RoleInitiator ActorRole = "INITIATOR"
	RoleAdmin     ActorRole = "ADMIN"
)

// RequestStatus is the state of a participation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// EventSort selects the ordering of an event listing.
type EventSort string

const (
	SortEventDate EventSort = "EVENT_DATE"
	SortViews     EventSort = "VIEWS"
)

// EventSortFrom parses a sort name, reporting whether it is known.
func EventSortFrom(s string) (EventSort, bool) {
	switch EventSort(s) {
	case SortEventDate, SortViews:
		return EventSort(s), true
	}
	return "", false
}

// EventFilter carries every optional condition of an event listing.
// Empty slices mean "no filter". Zero From with Size 0 means unpaged.
type EventFilter struct {
	Text          string
	Categories    []string
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
	States        []EventState
	Users         []string
	From          int
	Size          int
}

// User is a registered participant or event initiator.
type User struct {
	ID    string
	Email string
	Name  string
}

// Category groups events; its name is unique.
type Category struct {
	ID   string
	Name string
}

// Location is the geographic position of an event.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is the central aggregate. ParticipantLimit 0 means unlimited.
type Event struct {
	ID                string
	Title             string
	Annotation        string
	Description       string
	CreatedOn         time.Time
	EventDate         time.Time
	PublishedOn       *time.Time
	Category          Category
	Initiator         User
	Location          Location
	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
	State             EventState
}

// Request is a user's application to participate in an event.
type Request struct {
	ID          string
	EventID     string
	RequesterID string
	Status      RequestStatus
	Created     time.Time
}

// Compilation is an ordered, duplicate-free selection of events.
type Compilation struct {
	ID     string
	Title  string
	Pinned bool
	Events []Event
}

// Comment is a user remark on a published event.
type Comment struct {
	ID      string
	EventID string
	Author  User
	Text    string
	Created time.Time
}

// EndpointHit is one append-only page-view record in the stats service.
type EndpointHit struct {
	ID        string
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is an on-read aggregate of hits per (app, uri).
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
