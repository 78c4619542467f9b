package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// eventSelect is the shared projection for all event reads. Category and
// initiator are always joined in; scanEvent matches this column order.
const eventSelect = `SELECT e.id, e.title, e.annotation, e.description, e.created_on,
	e.event_date, e.published_on, e.category_id, c.name, e.initiator_id, u.name, u.email,
	e.lat, e.lon, e.paid, e.participant_limit, e.request_moderation, e.state
FROM events e
JOIN categories c ON c.id = e.category_id
JOIN users u ON u.id = e.initiator_id`

// EventQuery assembles the dynamic event listing query from independent
// named predicates. Each predicate method appends one WHERE clause and
// its arguments; SQL() renders the final statement with positional
// placeholders.
type EventQuery struct {
	where  []string
	args   []any
	order  string
	limit  int
	offset int
}

// NewEventQuery translates a filter into a composed query.
func NewEventQuery(f model.EventFilter) *EventQuery {
	q := &EventQuery{}
	if f.Text != "" {
		q.Text(f.Text)
	}
	if len(f.Categories) > 0 {
		q.Categories(f.Categories)
	}
	if f.Paid != nil {
		q.Paid(*f.Paid)
	}
	if f.RangeStart != nil {
		q.StartsAfter(*f.RangeStart)
	}
	if f.RangeEnd != nil {
		q.StartsBefore(*f.RangeEnd)
	}
	if len(f.States) > 0 {
		q.States(f.States)
	}
	if len(f.Users) > 0 {
		q.Initiators(f.Users)
	}
	if f.OnlyAvailable {
		q.OnlyAvailable()
	}
	if f.Sort == model.SortEventDate {
		q.OrderByEventDate()
	}
	q.Page(f.From, f.Size)
	return q
}

func (q *EventQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Text matches the text case-insensitively as a substring of the
// annotation or the description.
func (q *EventQuery) Text(text string) {
	p := q.arg("%" + text + "%")
	q.where = append(q.where, fmt.Sprintf("(e.annotation ILIKE %s OR e.description ILIKE %s)", p, p))
}

// Categories restricts events to the given category ids.
func (q *EventQuery) Categories(ids []string) {
	q.where = append(q.where, fmt.Sprintf("e.category_id = ANY(%s)", q.arg(ids)))
}

// Paid restricts events by their paid flag.
func (q *EventQuery) Paid(paid bool) {
	q.where = append(q.where, fmt.Sprintf("e.paid = %s", q.arg(paid)))
}

// StartsAfter keeps events whose date is at or after t.
func (q *EventQuery) StartsAfter(t time.Time) {
	q.where = append(q.where, fmt.Sprintf("e.event_date >= %s", q.arg(t)))
}

// StartsBefore keeps events whose date is strictly before t.
func (q *EventQuery) StartsBefore(t time.Time) {
	q.where = append(q.where, fmt.Sprintf("e.event_date < %s", q.arg(t)))
}

// States restricts events to the given lifecycle states.
func (q *EventQuery) States(states []model.EventState) {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	q.where = append(q.where, fmt.Sprintf("e.state = ANY(%s)", q.arg(names)))
}

// Initiators restricts events to the given initiator ids.
func (q *EventQuery) Initiators(ids []string) {
	q.where = append(q.where, fmt.Sprintf("e.initiator_id = ANY(%s)", q.arg(ids)))
}

// OnlyAvailable keeps events that still accept confirmed requests.
// A zero participant limit always counts as available.
func (q *EventQuery) OnlyAvailable() {
	q.where = append(q.where,
		"(e.participant_limit = 0 OR (SELECT COUNT(*) FROM requests r"+
			" WHERE r.event_id = e.id AND r.status = 'CONFIRMED') < e.participant_limit)")
}

// OrderByEventDate sorts soonest first. Without it the listing keeps
// insertion order.
func (q *EventQuery) OrderByEventDate() {
	q.order = "e.event_date ASC"
}

// Page applies offset pagination. Size 0 leaves the query unpaged.
func (q *EventQuery) Page(from, size int) {
	q.offset = from
	q.limit = size
}

// SQL renders the composed statement and its arguments.
func (q *EventQuery) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString(eventSelect)
	if len(q.where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	order := q.order
	if order == "" {
		order = "e.created_on ASC, e.id ASC"
	}
	b.WriteString("\nORDER BY ")
	b.WriteString(order)
	if q.limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d OFFSET %d", q.limit, q.offset)
	}
	return b.String(), q.args
}
