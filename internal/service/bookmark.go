package service

import (
	"context"
	"log"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// BookmarkService manages per-user saved posts.
type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	posts     repository.PostRepository
	users     repository.UserRepository
}

func NewBookmarkService(
	bookmarks repository.BookmarkRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, posts: posts, users: users}
}

func (s *BookmarkService) Bookmark(ctx context.Context, req model.BookmarkRequest) error {
	if req.UserID == "" || req.PostID == "" {
		return model.Validation("userId and postId are required")
	}
	return s.bookmarks.Create(ctx, req.UserID, req.PostID)
}

func (s *BookmarkService) Remove(ctx context.Context, userID, postID string) error {
	if userID == "" || postID == "" {
		return model.Validation("userId and postId are required")
	}
	return s.bookmarks.Delete(ctx, userID, postID)
}

// ListPosts resolves a user's bookmarks into the bookmarked posts themselves,
// each annotated with its author's username. Bookmarks pointing at deleted
// posts are skipped.
func (s *BookmarkService) ListPosts(ctx context.Context, userID string) ([]model.Record, error) {
	edges, err := s.bookmarks.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]model.Record, 0, len(edges))
	for _, edge := range edges {
		postID := edge.String("postId")
		post, err := s.posts.Get(ctx, postID)
		if err != nil {
			log.Printf("[ERROR] skipping bookmarked post %s: %v", postID, err)
			continue
		}
		post["authorUsername"] = resolveUsername(ctx, s.users, post.String("authorId"))
		if bookmarkedAt := edge.String("createdAt"); bookmarkedAt != "" {
			post["bookmarkedAt"] = bookmarkedAt
		}
		posts = append(posts, post)
	}
	return posts, nil
}
