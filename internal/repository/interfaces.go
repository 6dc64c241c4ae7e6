package repository

import (
	"context"
	"time"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

// ResourceTable is the generic single-table gateway the CRUD service runs on.
// *Table implements it; tests substitute fakes.
type ResourceTable interface {
	Spec() model.TableSpec
	Get(ctx context.Context, id string) (model.Record, error)
	Put(ctx context.Context, rec model.Record) error
	PutIfAbsent(ctx context.Context, rec model.Record) error
	Update(ctx context.Context, id string, fields model.Record) (model.Record, error)
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context, params model.ListParams) (*model.Page, error)
}

// ResourceCatalog resolves URL resources to their table gateways.
type ResourceCatalog interface {
	Resource(resource string) (ResourceTable, error)
}

type UserRepository interface {
	Get(ctx context.Context, userID string) (model.Record, error)
	GetByEmail(ctx context.Context, email string) (model.Record, error)
	GetByUsername(ctx context.Context, username string) (model.Record, error)
	List(ctx context.Context) ([]model.Record, error)
	Put(ctx context.Context, user model.Record) error
	Update(ctx context.Context, userID string, fields model.Record) (model.Record, error)
	Delete(ctx context.Context, userID string) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (model.Record, error)
	Create(ctx context.Context, profile model.Record) error
	Update(ctx context.Context, userID string, fields model.Record) (model.Record, error)
	// AdjustCounter adds delta to a derived counter. Decrements are guarded
	// store-side and silently no-op instead of driving the counter negative.
	AdjustCounter(ctx context.Context, userID, counter string, delta int) error
}

type PostRepository interface {
	Get(ctx context.Context, postID string) (model.Record, error)
	ByAuthor(ctx context.Context, authorID string) ([]model.Record, error)
}

type EngagementRepository interface {
	CommentsByPost(ctx context.Context, postID string) ([]model.Record, error)
	ReactionsByPost(ctx context.Context, postID string) ([]model.Record, error)
	SharesByPost(ctx context.Context, postID string) ([]model.Record, error)
}

type FollowRepository interface {
	// Create inserts the edge with a put-if-absent condition; an existing
	// edge yields model.ErrAlreadyFollowing.
	Create(ctx context.Context, followerID, followedID string) error
	// Delete removes the edge; an absent edge yields model.ErrNotFollowing.
	Delete(ctx context.Context, followerID, followedID string) error
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	Following(ctx context.Context, followerID string) ([]model.Record, error)
	Followers(ctx context.Context, followedID string) ([]model.Record, error)
}

type BookmarkRepository interface {
	Create(ctx context.Context, userID, postID string) error
	Delete(ctx context.Context, userID, postID string) error
	Exists(ctx context.Context, userID, postID string) (bool, error)
	ByUser(ctx context.Context, userID string) ([]model.Record, error)
}

type ResetTokenRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the userID for a token and invalidates it. Unknown or
	// expired tokens yield model.ErrResetTokenInvalid.
	Consume(ctx context.Context, token string) (string, error)
}
