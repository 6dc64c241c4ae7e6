package service

import (
	"context"
	"time"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// Function-field mocks for the repository interfaces. Unset fields fall back
// to "not found" for reads and success for writes.

type mockUserRepo struct {
	GetFn           func(ctx context.Context, userID string) (model.Record, error)
	GetByEmailFn    func(ctx context.Context, email string) (model.Record, error)
	GetByUsernameFn func(ctx context.Context, username string) (model.Record, error)
	ListFn          func(ctx context.Context) ([]model.Record, error)
	PutFn           func(ctx context.Context, user model.Record) error
	UpdateFn        func(ctx context.Context, userID string, fields model.Record) (model.Record, error)
	DeleteFn        func(ctx context.Context, userID string) error
}

func (m *mockUserRepo) Get(ctx context.Context, userID string) (model.Record, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (model.Record, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (model.Record, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.Record, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Put(ctx context.Context, user model.Record) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, fields)
	}
	return fields, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, userID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}
	return nil
}

// counterCall records one AdjustCounter invocation.
type counterCall struct {
	UserID  string
	Counter string
	Delta   int
}

type mockProfileRepo struct {
	GetFn           func(ctx context.Context, userID string) (model.Record, error)
	CreateFn        func(ctx context.Context, profile model.Record) error
	UpdateFn        func(ctx context.Context, userID string, fields model.Record) (model.Record, error)
	AdjustCounterFn func(ctx context.Context, userID, counter string, delta int) error

	CounterCalls []counterCall
}

func (m *mockProfileRepo) Get(ctx context.Context, userID string) (model.Record, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockProfileRepo) Create(ctx context.Context, profile model.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) Update(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, fields)
	}
	return fields, nil
}

func (m *mockProfileRepo) AdjustCounter(ctx context.Context, userID, counter string, delta int) error {
	m.CounterCalls = append(m.CounterCalls, counterCall{UserID: userID, Counter: counter, Delta: delta})
	if m.AdjustCounterFn != nil {
		return m.AdjustCounterFn(ctx, userID, counter, delta)
	}
	return nil
}

type mockPostRepo struct {
	GetFn      func(ctx context.Context, postID string) (model.Record, error)
	ByAuthorFn func(ctx context.Context, authorID string) ([]model.Record, error)
}

func (m *mockPostRepo) Get(ctx context.Context, postID string) (model.Record, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, postID)
	}
	return nil, model.ErrItemNotFound
}

func (m *mockPostRepo) ByAuthor(ctx context.Context, authorID string) ([]model.Record, error) {
	if m.ByAuthorFn != nil {
		return m.ByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

type mockEngagementRepo struct {
	CommentsFn  func(ctx context.Context, postID string) ([]model.Record, error)
	ReactionsFn func(ctx context.Context, postID string) ([]model.Record, error)
	SharesFn    func(ctx context.Context, postID string) ([]model.Record, error)
}

func (m *mockEngagementRepo) CommentsByPost(ctx context.Context, postID string) ([]model.Record, error) {
	if m.CommentsFn != nil {
		return m.CommentsFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockEngagementRepo) ReactionsByPost(ctx context.Context, postID string) ([]model.Record, error) {
	if m.ReactionsFn != nil {
		return m.ReactionsFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockEngagementRepo) SharesByPost(ctx context.Context, postID string) ([]model.Record, error) {
	if m.SharesFn != nil {
		return m.SharesFn(ctx, postID)
	}
	return nil, nil
}

type mockFollowRepo struct {
	CreateFn    func(ctx context.Context, followerID, followedID string) error
	DeleteFn    func(ctx context.Context, followerID, followedID string) error
	ExistsFn    func(ctx context.Context, followerID, followedID string) (bool, error)
	FollowingFn func(ctx context.Context, followerID string) ([]model.Record, error)
	FollowersFn func(ctx context.Context, followedID string) ([]model.Record, error)
}

func (m *mockFollowRepo) Create(ctx context.Context, followerID, followedID string) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepo) Delete(ctx context.Context, followerID, followedID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, followerID, followedID)
	}
	return nil
}

func (m *mockFollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *mockFollowRepo) Following(ctx context.Context, followerID string) ([]model.Record, error) {
	if m.FollowingFn != nil {
		return m.FollowingFn(ctx, followerID)
	}
	return nil, nil
}

func (m *mockFollowRepo) Followers(ctx context.Context, followedID string) ([]model.Record, error) {
	if m.FollowersFn != nil {
		return m.FollowersFn(ctx, followedID)
	}
	return nil, nil
}

type mockBookmarkRepo struct {
	CreateFn func(ctx context.Context, userID, postID string) error
	DeleteFn func(ctx context.Context, userID, postID string) error
	ExistsFn func(ctx context.Context, userID, postID string) (bool, error)
	ByUserFn func(ctx context.Context, userID string) ([]model.Record, error)
}

func (m *mockBookmarkRepo) Create(ctx context.Context, userID, postID string) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockBookmarkRepo) Delete(ctx context.Context, userID, postID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockBookmarkRepo) Exists(ctx context.Context, userID, postID string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, userID, postID)
	}
	return false, nil
}

func (m *mockBookmarkRepo) ByUser(ctx context.Context, userID string) ([]model.Record, error) {
	if m.ByUserFn != nil {
		return m.ByUserFn(ctx, userID)
	}
	return nil, nil
}

type mockResetTokenRepo struct {
	SaveFn    func(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeFn func(ctx context.Context, token string) (string, error)

	SavedToken  string
	SavedUserID string
	SavedTTL    time.Duration
}

func (m *mockResetTokenRepo) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	m.SavedToken = token
	m.SavedUserID = userID
	m.SavedTTL = ttl
	if m.SaveFn != nil {
		return m.SaveFn(ctx, token, userID, ttl)
	}
	return nil
}

func (m *mockResetTokenRepo) Consume(ctx context.Context, token string) (string, error) {
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, token)
	}
	return "", model.ErrResetTokenInvalid
}

// mockTable implements repository.ResourceTable over an in-memory map.
type mockTable struct {
	TableSpec model.TableSpec
	Items     map[string]model.Record

	PutIfAbsentFn func(ctx context.Context, rec model.Record) error
	DeleteFn      func(ctx context.Context, id string) error
	ScanFn        func(ctx context.Context, params model.ListParams) (*model.Page, error)
}

func newMockTable(spec model.TableSpec) *mockTable {
	return &mockTable{TableSpec: spec, Items: map[string]model.Record{}}
}

func (m *mockTable) Spec() model.TableSpec { return m.TableSpec }

func (m *mockTable) Get(ctx context.Context, id string) (model.Record, error) {
	rec, ok := m.Items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	return rec, nil
}

func (m *mockTable) Put(ctx context.Context, rec model.Record) error {
	m.Items[rec.String(m.TableSpec.KeyAttr)] = rec
	return nil
}

func (m *mockTable) PutIfAbsent(ctx context.Context, rec model.Record) error {
	if m.PutIfAbsentFn != nil {
		return m.PutIfAbsentFn(ctx, rec)
	}
	id := rec.String(m.TableSpec.KeyAttr)
	if _, ok := m.Items[id]; ok {
		return model.ErrItemExists
	}
	m.Items[id] = rec
	return nil
}

func (m *mockTable) Update(ctx context.Context, id string, fields model.Record) (model.Record, error) {
	if len(fields) == 0 {
		return nil, model.Validation("No fields to update")
	}
	rec, ok := m.Items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	for k, v := range fields {
		rec[k] = v
	}
	return fields, nil
}

func (m *mockTable) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	delete(m.Items, id)
	return nil
}

func (m *mockTable) Scan(ctx context.Context, params model.ListParams) (*model.Page, error) {
	if m.ScanFn != nil {
		return m.ScanFn(ctx, params)
	}
	items := make([]model.Record, 0, len(m.Items))
	for _, rec := range m.Items {
		items = append(items, rec)
	}
	return &model.Page{Items: items, Count: len(items), ScannedCount: len(items)}, nil
}

// mockCatalog maps resources to mock tables.
type mockCatalog struct {
	Tables map[string]*mockTable
}

func (m *mockCatalog) Resource(resource string) (repository.ResourceTable, error) {
	t, ok := m.Tables[resource]
	if !ok {
		return nil, model.ErrUnknownResource
	}
	return t, nil
}
