package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// ResourceService implements the generic CRUD family over the table catalog.
// Create and delete carry resource-specific side effects (derived counters on
// the author's profile) which are best-effort: a failed counter update is
// reported as a warning on an otherwise successful response, never rolled back.
type ResourceService struct {
	catalog    repository.ResourceCatalog
	profiles   repository.ProfileRepository
	posts      repository.PostRepository
	engagement repository.EngagementRepository
}

func NewResourceService(
	catalog repository.ResourceCatalog,
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	engagement repository.EngagementRepository,
) *ResourceService {
	return &ResourceService{
		catalog:    catalog,
		profiles:   profiles,
		posts:      posts,
		engagement: engagement,
	}
}

// List returns one page of a resource table.
func (s *ResourceService) List(ctx context.Context, resource string, params model.ListParams) (*model.Page, error) {
	table, err := s.catalog.Resource(resource)
	if err != nil {
		return nil, err
	}
	if params.Limit == 0 {
		params.Limit = model.DefaultListLimit
	}
	return table.Scan(ctx, params)
}

// Get fetches one record by ID.
func (s *ResourceService) Get(ctx context.Context, resource, id string) (model.Record, error) {
	table, err := s.catalog.Resource(resource)
	if err != nil {
		return nil, err
	}
	return table.Get(ctx, id)
}

// Create validates required fields, assigns a fresh UUID key and writes the
// record with a put-if-absent condition.
func (s *ResourceService) Create(ctx context.Context, resource string, payload model.Record) (*model.CreateResult, error) {
	table, err := s.catalog.Resource(resource)
	if err != nil {
		return nil, err
	}
	spec := table.Spec()

	var missing []string
	for _, attr := range spec.Required {
		if payload.String(attr) == "" {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		return nil, model.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}

	if resource == model.ResourcePostReactions {
		if err := s.checkDuplicateLike(ctx, payload); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	rec := make(model.Record, len(payload)+2)
	for k, v := range payload {
		rec[k] = v
	}
	rec[spec.KeyAttr] = id
	if rec.String("createdAt") == "" {
		rec["createdAt"] = repository.NowISO()
	}

	if err := table.PutIfAbsent(ctx, rec); err != nil {
		return nil, err
	}

	result := &model.CreateResult{
		Message:  "Item created successfully",
		ID:       id,
		Resource: resource,
	}
	result.Warning = s.afterCreate(ctx, resource, rec)
	return result, nil
}

// Update applies a partial update. The key attribute is never writable.
func (s *ResourceService) Update(ctx context.Context, resource, id string, fields model.Record) (*model.UpdateResult, error) {
	table, err := s.catalog.Resource(resource)
	if err != nil {
		return nil, err
	}
	delete(fields, table.Spec().KeyAttr)

	updated, err := table.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	return &model.UpdateResult{Message: "Item updated successfully", Updated: updated}, nil
}

// Delete removes a record after confirming it exists, then unwinds any derived
// counters the record contributed to.
func (s *ResourceService) Delete(ctx context.Context, resource, id string) (*model.DeleteResult, error) {
	table, err := s.catalog.Resource(resource)
	if err != nil {
		return nil, err
	}

	rec, err := table.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := table.Delete(ctx, id); err != nil {
		return nil, err
	}

	result := &model.DeleteResult{Message: "Item deleted successfully", ID: id}
	result.Warning = s.afterDelete(ctx, resource, rec)
	return result, nil
}

// checkDuplicateLike rejects a second like from the same user on one post.
// User IDs are matched case-insensitively: historical rows mix cases.
func (s *ResourceService) checkDuplicateLike(ctx context.Context, payload model.Record) error {
	if !strings.EqualFold(payload.String("reactionType"), model.ReactionLike) {
		return nil
	}
	reactions, err := s.engagement.ReactionsByPost(ctx, payload.String("postId"))
	if err != nil {
		return fmt.Errorf("check existing reactions: %w", err)
	}
	userID := payload.String("userId")
	for _, reaction := range reactions {
		if strings.EqualFold(reaction.String("userId"), userID) &&
			strings.EqualFold(reaction.String("reactionType"), model.ReactionLike) {
			return model.ErrDuplicateLike
		}
	}
	return nil
}

// afterCreate runs create-side counter hooks. Like reactions deliberately do
// not touch totalLikesReceived here; the counter is only walked back down when
// a like is deleted.
func (s *ResourceService) afterCreate(ctx context.Context, resource string, rec model.Record) string {
	if resource == model.ResourceBlogPosts {
		return s.adjustCounter(ctx, rec.String("authorId"), model.CounterPostsCount, 1)
	}
	return ""
}

func (s *ResourceService) afterDelete(ctx context.Context, resource string, rec model.Record) string {
	switch resource {
	case model.ResourceBlogPosts:
		return s.adjustCounter(ctx, rec.String("authorId"), model.CounterPostsCount, -1)
	case model.ResourcePostReactions:
		if strings.EqualFold(rec.String("reactionType"), model.ReactionLike) {
			return s.adjustAuthorLikes(ctx, rec.String("postId"), -1)
		}
	}
	return ""
}

func (s *ResourceService) adjustCounter(ctx context.Context, userID, counter string, delta int) string {
	if userID == "" {
		return ""
	}
	if err := s.profiles.AdjustCounter(ctx, userID, counter, delta); err != nil {
		log.Printf("[ERROR] failed to adjust %s for user %s: %v", counter, userID, err)
		return fmt.Sprintf("failed to update %s counter", counter)
	}
	return ""
}

// adjustAuthorLikes resolves a post's author and moves their received-likes
// counter. The post may already be gone when a reaction is deleted late.
func (s *ResourceService) adjustAuthorLikes(ctx context.Context, postID string, delta int) string {
	if postID == "" {
		return ""
	}
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		log.Printf("[ERROR] failed to resolve post %s for like counter: %v", postID, err)
		return "failed to update author like counter"
	}
	return s.adjustCounter(ctx, post.String("authorId"), model.CounterLikesReceived, delta)
}
