package repository

import (
	"context"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

// GSI on BlogPosts keyed by authorId.
const authorIndex = "AuthorIndex"

type postRepository struct {
	table *Table
}

func NewPostRepository(table *Table) PostRepository {
	return &postRepository{table: table}
}

func (r *postRepository) Get(ctx context.Context, postID string) (model.Record, error) {
	return r.table.Get(ctx, postID)
}

func (r *postRepository) ByAuthor(ctx context.Context, authorID string) ([]model.Record, error) {
	return r.table.QueryIndex(ctx, authorIndex, "authorId", authorID)
}
