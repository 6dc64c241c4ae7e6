package repository

import (
	"context"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

// GSIs keyed by postId on the engagement tables.
const (
	postCommentsIndex = "PostCommentsIndex"
	postReactionIndex = "PostReactionIndex"
	postSharesIndex   = "PostSharesIndex"
)

// engagementRepository serves the per-post secondary queries the enrichment
// layer depends on: comments, reactions and shares.
type engagementRepository struct {
	comments  *Table
	reactions *Table
	shares    *Table
}

func NewEngagementRepository(comments, reactions, shares *Table) EngagementRepository {
	return &engagementRepository{comments: comments, reactions: reactions, shares: shares}
}

func (r *engagementRepository) CommentsByPost(ctx context.Context, postID string) ([]model.Record, error) {
	return r.comments.QueryIndex(ctx, postCommentsIndex, "postId", postID)
}

func (r *engagementRepository) ReactionsByPost(ctx context.Context, postID string) ([]model.Record, error) {
	return r.reactions.QueryIndex(ctx, postReactionIndex, "postId", postID)
}

func (r *engagementRepository) SharesByPost(ctx context.Context, postID string) ([]model.Record, error) {
	return r.shares.QueryIndex(ctx, postSharesIndex, "postId", postID)
}
