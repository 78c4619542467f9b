package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

func TestEventQueryNoFilter(t *testing.T) {
	sql, args := NewEventQuery(model.EventFilter{}).SQL()

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY e.created_on ASC, e.id ASC")
	assert.NotContains(t, sql, "LIMIT")
	assert.Empty(t, args)
}

func TestEventQueryText(t *testing.T) {
	sql, args := NewEventQuery(model.EventFilter{Text: "concert"}).SQL()

	assert.Contains(t, sql, "(e.annotation ILIKE $1 OR e.description ILIKE $1)")
	require.Len(t, args, 1, "both ILIKE clauses reuse one argument")
	assert.Equal(t, "%concert%", args[0])
}

func TestEventQueryCategoriesAndStates(t *testing.T) {
	sql, args := NewEventQuery(model.EventFilter{
		Categories: []string{"c1", "c2"},
		States:     []model.EventState{model.StatePublished},
	}).SQL()

	assert.Contains(t, sql, "e.category_id = ANY($1)")
	assert.Contains(t, sql, "e.state = ANY($2)")
	require.Len(t, args, 2)
	assert.Equal(t, []string{"c1", "c2"}, args[0])
	assert.Equal(t, []string{"PUBLISHED"}, args[1])
}

func TestEventQueryPaid(t *testing.T) {
	paid := true
	sql, args := NewEventQuery(model.EventFilter{Paid: &paid}).SQL()

	assert.Contains(t, sql, "e.paid = $1")
	assert.Equal(t, []any{true}, args)
}

func TestEventQueryDateRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	sql, args := NewEventQuery(model.EventFilter{RangeStart: &start, RangeEnd: &end}).SQL()

	assert.Contains(t, sql, "e.event_date >= $1")
	assert.Contains(t, sql, "e.event_date < $2")
	assert.Equal(t, []any{start, end}, args)
}

func TestEventQueryInitiators(t *testing.T) {
	sql, args := NewEventQuery(model.EventFilter{Users: []string{"u1", "u2"}}).SQL()

	assert.Contains(t, sql, "e.initiator_id = ANY($1)")
	assert.Equal(t, []any{[]string{"u1", "u2"}}, args)
}

func TestEventQueryOnlyAvailableKeepsUnlimited(t *testing.T) {
	sql, args := NewEventQuery(model.EventFilter{OnlyAvailable: true}).SQL()

	assert.Contains(t, sql, "e.participant_limit = 0 OR")
	assert.Contains(t, sql, "r.status = 'CONFIRMED'")
	assert.Empty(t, args)
}

func TestEventQuerySortByEventDate(t *testing.T) {
	sql, _ := NewEventQuery(model.EventFilter{Sort: model.SortEventDate}).SQL()

	assert.Contains(t, sql, "ORDER BY e.event_date ASC")
	assert.NotContains(t, sql, "e.created_on ASC")
}

func TestEventQueryPagination(t *testing.T) {
	sql, _ := NewEventQuery(model.EventFilter{From: 20, Size: 10}).SQL()

	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
}

func TestEventQueryCombinedPlaceholdersStaySequential(t *testing.T) {
	paid := false
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sql, args := NewEventQuery(model.EventFilter{
		Text:       "expo",
		Categories: []string{"c1"},
		Paid:       &paid,
		RangeStart: &start,
		States:     []model.EventState{model.StatePublished},
		Users:      []string{"u1"},
		From:       0,
		Size:       10,
	}).SQL()

	assert.Contains(t, sql, "ILIKE $1")
	assert.Contains(t, sql, "e.category_id = ANY($2)")
	assert.Contains(t, sql, "e.paid = $3")
	assert.Contains(t, sql, "e.event_date >= $4")
	assert.Contains(t, sql, "e.state = ANY($5)")
	assert.Contains(t, sql, "e.initiator_id = ANY($6)")
	assert.Len(t, args, 6)
}
