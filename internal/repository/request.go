package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// RequestRepository handles persistence for participation requests.
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a request inside a transaction that locks the event row.
//
// The service layer has already validated state, ownership, duplicates and
// capacity, but those checks race against concurrent callers. Locking the
// event with SELECT ... FOR UPDATE and recounting confirmed requests here
// serialises admissions, so a CONFIRMED insert can never overrun the
// participant limit. The unique (event_id, requester_id) index rejects
// duplicate requests that slipped past the pre-check.
func (r *RequestRepository) Create(ctx context.Context, req *model.Request) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var limit int
	err = tx.QueryRow(ctx,
		`SELECT participant_limit FROM events WHERE id = $1 FOR UPDATE`,
		req.EventID,
	).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	if req.Status == model.RequestConfirmed && limit > 0 {
		var confirmed int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`,
			req.EventID, model.RequestConfirmed,
		).Scan(&confirmed)
		if err != nil {
			return fmt.Errorf("count confirmed requests: %w", err)
		}
		if confirmed >= limit {
			return ErrParticipantLimitReached
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO requests (id, event_id, requester_id, status, created)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.EventID, req.RequesterID, req.Status, req.Created,
	)
	if err != nil {
		if isPgCode(err, pgUniqueViolation) {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("insert request: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RequestRepository) queryRequests(ctx context.Context, sql string, args ...any) ([]model.Request, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Status, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// GetByIDAndRequester returns the request only when it belongs to the user.
func (r *RequestRepository) GetByIDAndRequester(ctx context.Context, id, requesterID string) (*model.Request, error) {
	var req model.Request
	err := r.db.QueryRow(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE id = $1 AND requester_id = $2`,
		id, requesterID,
	).Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Status, &req.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

// FindByEvent returns all requests against one event in creation order.
func (r *RequestRepository) FindByEvent(ctx context.Context, eventID string) ([]model.Request, error) {
	return r.queryRequests(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE event_id = $1 ORDER BY created ASC, id ASC`,
		eventID)
}

// FindByEventAndIDs returns the named requests of one event in creation
// order; ids that do not belong to the event are dropped.
func (r *RequestRepository) FindByEventAndIDs(ctx context.Context, eventID string, ids []string) ([]model.Request, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryRequests(ctx,
		`SELECT id, event_id, requester_id, status, created
		 FROM requests WHERE event_id = $1 AND id = ANY($2) ORDER BY created ASC, id ASC`,
		eventID, ids)
}

// FindByRequester returns the user's requests in events of other initiators.
func (r *RequestRepository) FindByRequester(ctx context.Context, requesterID string) ([]model.Request, error) {
	return r.queryRequests(ctx,
		`SELECT r.id, r.event_id, r.requester_id, r.status, r.created
		 FROM requests r JOIN events e ON e.id = r.event_id
		 WHERE r.requester_id = $1 AND e.initiator_id <> $1
		 ORDER BY r.created ASC, r.id ASC`,
		requesterID)
}

// CountConfirmed returns the number of confirmed requests for one event.
func (r *RequestRepository) CountConfirmed(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`,
		eventID, model.RequestConfirmed,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count confirmed requests: %w", err)
	}
	return n, nil
}

// CountConfirmedByEvents returns confirmed-request counts grouped by
// event id. Events without confirmed requests are absent from the map.
func (r *RequestRepository) CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	if len(eventIDs) == 0 {
		return map[string]int64{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT event_id, COUNT(*) FROM requests
		 WHERE event_id = ANY($1) AND status = $2 GROUP BY event_id`,
		eventIDs, model.RequestConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("count confirmed by events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan confirmed count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// UpdateStatus persists a single request's status.
func (r *RequestRepository) UpdateStatus(ctx context.Context, req *model.Request) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE requests SET status = $2 WHERE id = $1`,
		req.ID, req.Status,
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveStatuses persists a batch of status mutations atomically. The
// workflow engine computes the whole batch in memory first; a failure
// anywhere leaves no partial result behind.
func (r *RequestRepository) SaveStatuses(ctx context.Context, requests []model.Request) (err error) {
	if len(requests) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	batch := &pgx.Batch{}
	for _, req := range requests {
		batch.Queue(`UPDATE requests SET status = $2 WHERE id = $1`, req.ID, req.Status)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("batch update statuses: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
