package service

import (
	"context"
	"time"

	"github.com/desyatov-student/explore-with-me/internal/model"
)

// Function-field fakes for the store interfaces. Tests set only the
// methods they expect to be called; an unset method panics, which makes
// unexpected calls visible.

type fakeEventStore struct {
	CreateFn              func(ctx context.Context, e *model.Event) error
	UpdateFn              func(ctx context.Context, e *model.Event) error
	GetByIDFn             func(ctx context.Context, id string) (*model.Event, error)
	GetByIDAndInitiatorFn func(ctx context.Context, id, initiatorID string) (*model.Event, error)
	GetByIDInStatesFn     func(ctx context.Context, id string, states []model.EventState) (*model.Event, error)
	FindFn                func(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	FindByInitiatorFn     func(ctx context.Context, initiatorID string, from, size int) ([]model.Event, error)
	FindByIDsFn           func(ctx context.Context, ids []string) ([]model.Event, error)
}

func (s *fakeEventStore) Create(ctx context.Context, e *model.Event) error { return s.CreateFn(ctx, e) }
func (s *fakeEventStore) Update(ctx context.Context, e *model.Event) error { return s.UpdateFn(ctx, e) }
func (s *fakeEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *fakeEventStore) GetByIDAndInitiator(ctx context.Context, id, initiatorID string) (*model.Event, error) {
	return s.GetByIDAndInitiatorFn(ctx, id, initiatorID)
}
func (s *fakeEventStore) GetByIDInStates(ctx context.Context, id string, states []model.EventState) (*model.Event, error) {
	return s.GetByIDInStatesFn(ctx, id, states)
}
func (s *fakeEventStore) Find(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	return s.FindFn(ctx, f)
}
func (s *fakeEventStore) FindByInitiator(ctx context.Context, initiatorID string, from, size int) ([]model.Event, error) {
	return s.FindByInitiatorFn(ctx, initiatorID, from, size)
}
func (s *fakeEventStore) FindByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	return s.FindByIDsFn(ctx, ids)
}

type fakeRequestStore struct {
	CreateFn                 func(ctx context.Context, req *model.Request) error
	GetByIDAndRequesterFn    func(ctx context.Context, id, requesterID string) (*model.Request, error)
	FindByEventFn            func(ctx context.Context, eventID string) ([]model.Request, error)
	FindByEventAndIDsFn      func(ctx context.Context, eventID string, ids []string) ([]model.Request, error)
	FindByRequesterFn        func(ctx context.Context, requesterID string) ([]model.Request, error)
	CountConfirmedFn         func(ctx context.Context, eventID string) (int64, error)
	CountConfirmedByEventsFn func(ctx context.Context, eventIDs []string) (map[string]int64, error)
	UpdateStatusFn           func(ctx context.Context, req *model.Request) error
	SaveStatusesFn           func(ctx context.Context, requests []model.Request) error
}

func (s *fakeRequestStore) Create(ctx context.Context, req *model.Request) error {
	return s.CreateFn(ctx, req)
}
func (s *fakeRequestStore) GetByIDAndRequester(ctx context.Context, id, requesterID string) (*model.Request, error) {
	return s.GetByIDAndRequesterFn(ctx, id, requesterID)
}
func (s *fakeRequestStore) FindByEvent(ctx context.Context, eventID string) ([]model.Request, error) {
	return s.FindByEventFn(ctx, eventID)
}
func (s *fakeRequestStore) FindByEventAndIDs(ctx context.Context, eventID string, ids []string) ([]model.Request, error) {
	return s.FindByEventAndIDsFn(ctx, eventID, ids)
}
func (s *fakeRequestStore) FindByRequester(ctx context.Context, requesterID string) ([]model.Request, error) {
	return s.FindByRequesterFn(ctx, requesterID)
}
func (s *fakeRequestStore) CountConfirmed(ctx context.Context, eventID string) (int64, error) {
	return s.CountConfirmedFn(ctx, eventID)
}
func (s *fakeRequestStore) CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	return s.CountConfirmedByEventsFn(ctx, eventIDs)
}
func (s *fakeRequestStore) UpdateStatus(ctx context.Context, req *model.Request) error {
	return s.UpdateStatusFn(ctx, req)
}
func (s *fakeRequestStore) SaveStatuses(ctx context.Context, requests []model.Request) error {
	return s.SaveStatusesFn(ctx, requests)
}

type fakeUserStore struct {
	CreateFn  func(ctx context.Context, u *model.User) error
	GetByIDFn func(ctx context.Context, id string) (*model.User, error)
	FindFn    func(ctx context.Context, ids []string, from, size int) ([]model.User, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error { return s.CreateFn(ctx, u) }
func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *fakeUserStore) Find(ctx context.Context, ids []string, from, size int) ([]model.User, error) {
	return s.FindFn(ctx, ids, from, size)
}
func (s *fakeUserStore) Delete(ctx context.Context, id string) error { return s.DeleteFn(ctx, id) }

type fakeCategoryStore struct {
	CreateFn    func(ctx context.Context, c *model.Category) error
	GetByIDFn   func(ctx context.Context, id string) (*model.Category, error)
	GetByNameFn func(ctx context.Context, name string) (*model.Category, error)
	FindFn      func(ctx context.Context, from, size int) ([]model.Category, error)
	UpdateFn    func(ctx context.Context, c *model.Category) error
	DeleteFn    func(ctx context.Context, id string) error
}

func (s *fakeCategoryStore) Create(ctx context.Context, c *model.Category) error {
	return s.CreateFn(ctx, c)
}
func (s *fakeCategoryStore) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *fakeCategoryStore) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return s.GetByNameFn(ctx, name)
}
func (s *fakeCategoryStore) Find(ctx context.Context, from, size int) ([]model.Category, error) {
	return s.FindFn(ctx, from, size)
}
func (s *fakeCategoryStore) Update(ctx context.Context, c *model.Category) error {
	return s.UpdateFn(ctx, c)
}
func (s *fakeCategoryStore) Delete(ctx context.Context, id string) error { return s.DeleteFn(ctx, id) }

type fakeCompilationStore struct {
	CreateFn  func(ctx context.Context, c *model.Compilation) error
	UpdateFn  func(ctx context.Context, c *model.Compilation) error
	GetByIDFn func(ctx context.Context, id string) (*model.Compilation, error)
	FindFn    func(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (s *fakeCompilationStore) Create(ctx context.Context, c *model.Compilation) error {
	return s.CreateFn(ctx, c)
}
func (s *fakeCompilationStore) Update(ctx context.Context, c *model.Compilation) error {
	return s.UpdateFn(ctx, c)
}
func (s *fakeCompilationStore) GetByID(ctx context.Context, id string) (*model.Compilation, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *fakeCompilationStore) Find(ctx context.Context, pinned *bool, from, size int) ([]model.Compilation, error) {
	return s.FindFn(ctx, pinned, from, size)
}
func (s *fakeCompilationStore) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}

type fakeCommentStore struct {
	CreateFn       func(ctx context.Context, c *model.Comment) error
	GetByIDFn      func(ctx context.Context, id string) (*model.Comment, error)
	FindByEventFn  func(ctx context.Context, eventID string, from, size int) ([]model.Comment, error)
	FindByAuthorFn func(ctx context.Context, authorID string, from, size int) ([]model.Comment, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (s *fakeCommentStore) Create(ctx context.Context, c *model.Comment) error {
	return s.CreateFn(ctx, c)
}
func (s *fakeCommentStore) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	return s.GetByIDFn(ctx, id)
}
func (s *fakeCommentStore) FindByEvent(ctx context.Context, eventID string, from, size int) ([]model.Comment, error) {
	return s.FindByEventFn(ctx, eventID, from, size)
}
func (s *fakeCommentStore) FindByAuthor(ctx context.Context, authorID string, from, size int) ([]model.Comment, error) {
	return s.FindByAuthorFn(ctx, authorID, from, size)
}
func (s *fakeCommentStore) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}

type fakeViewsProvider struct {
	ViewsFn func(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error)
}

func (s *fakeViewsProvider) Views(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	return s.ViewsFn(ctx, start, end, uris, unique)
}

type fakeHitStore struct {
	CreateFn func(ctx context.Context, h *model.EndpointHit) error
	StatsFn  func(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error)
}

func (s *fakeHitStore) Create(ctx context.Context, h *model.EndpointHit) error {
	return s.CreateFn(ctx, h)
}
func (s *fakeHitStore) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]model.ViewStats, error) {
	return s.StatsFn(ctx, start, end, uris, unique)
}
