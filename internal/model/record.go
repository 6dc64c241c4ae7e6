package model

import "errors"

// Record is a schemaless document as stored in DynamoDB. Handlers persist
// whatever the client sends plus a generated key and createdAt stamp, so the
// natural representation is a map rather than a fixed struct.
type Record map[string]any

// String returns the named attribute as a string, or "" if absent or not a string.
func (r Record) String(attr string) string {
	s, _ := r[attr].(string)
	return s
}

// TableSpec describes one resource table: how it appears in URLs, where it
// lives in DynamoDB, its primary key and the fields required on create.
type TableSpec struct {
	// Resource is the URL path segment, e.g. "blog-posts".
	Resource string
	// Name is the DynamoDB table name.
	Name string
	// EnvVar optionally overrides Name from the environment.
	EnvVar string
	// KeyAttr is the hash key attribute. RangeAttr is set only for
	// composite-key edge tables, which are not part of the generic CRUD family.
	KeyAttr   string
	RangeAttr string
	// Required lists attributes that must be present and non-empty on create.
	Required []string
}

// Resource name constants used for routing and side-effect dispatch.
const (
	ResourceUsers         = "users"
	ResourceUserProfiles  = "user-profiles"
	ResourceBlogPosts     = "blog-posts"
	ResourceCategories    = "categories"
	ResourcePostCategory  = "post-categories"
	ResourcePostComments  = "post-comments"
	ResourcePostReactions = "post-reactions"
	ResourcePostShares    = "post-shares"
	ResourceTags          = "tags"
	ResourceUserFollows   = "user-follows"
	ResourcePostBookmarks = "post-bookmarks"
)

// ReactionLike is the reaction type that feeds like counts.
const ReactionLike = "like"

// DefaultTables returns the full table catalog with canonical names.
func DefaultTables() []TableSpec {
	return []TableSpec{
		{Resource: ResourceUsers, Name: "Users", EnvVar: "USERS_TABLE", KeyAttr: "userId", Required: []string{"username", "email"}},
		{Resource: ResourceUserProfiles, Name: "UserProfiles", EnvVar: "USER_PROFILES_TABLE", KeyAttr: "userId"},
		{Resource: ResourceBlogPosts, Name: "BlogPosts", EnvVar: "BLOG_POSTS_TABLE", KeyAttr: "postId", Required: []string{"title", "content", "authorId"}},
		{Resource: ResourceCategories, Name: "Categories", EnvVar: "CATEGORIES_TABLE", KeyAttr: "categoryId", Required: []string{"name", "slug"}},
		{Resource: ResourcePostCategory, Name: "PostCategories", EnvVar: "POST_CATEGORIES_TABLE", KeyAttr: "postCategoryId", Required: []string{"postId", "categoryId"}},
		{Resource: ResourcePostComments, Name: "PostComments", EnvVar: "POST_COMMENTS_TABLE", KeyAttr: "commentId", Required: []string{"postId", "userId", "content"}},
		{Resource: ResourcePostReactions, Name: "PostReactions", EnvVar: "POST_REACTIONS_TABLE", KeyAttr: "reactionId", Required: []string{"postId", "userId", "reactionType"}},
		{Resource: ResourcePostShares, Name: "PostShares", EnvVar: "POST_SHARES_TABLE", KeyAttr: "shareId", Required: []string{"postId", "userId", "shareType"}},
		{Resource: ResourceTags, Name: "Tags", EnvVar: "TAGS_TABLE", KeyAttr: "tagId", Required: []string{"name", "slug"}},
		{Resource: ResourceUserFollows, Name: "UserFollows", EnvVar: "USER_FOLLOWS_TABLE", KeyAttr: "followerId", RangeAttr: "followedId"},
		{Resource: ResourcePostBookmarks, Name: "PostBookmarks", EnvVar: "POST_BOOKMARKS_TABLE", KeyAttr: "userId", RangeAttr: "postId"},
	}
}

// CRUDResources lists the resources served by the generic CRUD handler family.
// Edge tables (user-follows, post-bookmarks) and users/profiles have dedicated
// handlers.
var CRUDResources = []string{
	ResourceBlogPosts,
	ResourceCategories,
	ResourcePostCategory,
	ResourcePostComments,
	ResourcePostReactions,
	ResourcePostShares,
	ResourceTags,
}

// ListParams controls a paginated scan.
type ListParams struct {
	Limit int
	// StartKey is the opaque continuation token (the previous page's last key
	// attribute value).
	StartKey string
	// Filters are attribute equality filters applied store-side.
	Filters map[string]string
	// ContainsFilters are membership filters for list-valued attributes
	// (a post's categories), applied store-side with contains().
	ContainsFilters map[string]string
}

// DefaultListLimit and the [MinListLimit, MaxListLimit] window bound scans.
const (
	DefaultListLimit = 20
	MinListLimit     = 1
	MaxListLimit     = 100
)

// Page is one page of a scan plus the continuation token, if more may exist.
type Page struct {
	Items        []Record `json:"items"`
	Count        int      `json:"count"`
	ScannedCount int      `json:"scanned_count"`
	LastKey      string   `json:"last_evaluated_key,omitempty"`
}

// CreateResult reports a successful create. Warning carries a failed
// best-effort counter update without failing the request.
type CreateResult struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Warning  string `json:"warning,omitempty"`
}

// DeleteResult reports a successful delete.
type DeleteResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Warning string `json:"warning,omitempty"`
}

// UpdateResult reports the attributes written by a partial update.
type UpdateResult struct {
	Message string `json:"message"`
	Updated Record `json:"updated_attributes"`
}

var (
	// ErrItemNotFound is returned when a record (or a conditional update's
	// target) does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemExists is returned when a conditional put finds the key taken.
	ErrItemExists = errors.New("item already exists")

	// ErrUnknownResource is returned for a resource outside the catalog.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrDuplicateLike is returned when a user likes the same post twice.
	ErrDuplicateLike = errors.New("post already liked by this user")
)

// ValidationError is a 400-class error carrying a client-facing message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError.
func Validation(msg string) error { return &ValidationError{Msg: msg} }
