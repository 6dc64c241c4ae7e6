package service

import (
	"context"
	"log"
	"strings"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// PostService assembles enriched post views. Every enrichment is computed
// fresh from the underlying tables on each request, and every enrichment
// degrades independently: a failed lookup logs and falls back to a neutral
// value instead of failing the response.
type PostService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	engagement repository.EngagementRepository
	follows    repository.FollowRepository
	bookmarks  repository.BookmarkRepository
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	engagement repository.EngagementRepository,
	follows repository.FollowRepository,
	bookmarks repository.BookmarkRepository,
) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		engagement: engagement,
		follows:    follows,
		bookmarks:  bookmarks,
	}
}

// GetByID returns one post enriched with author, comment, reaction, share,
// follow and bookmark data. viewerID may be empty for anonymous requests;
// viewer-specific fields then come back false.
func (s *PostService) GetByID(ctx context.Context, postID, viewerID string) (model.Record, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.String("createdAt") == "" {
		post["createdAt"] = repository.NowISO()
	}

	authorID := post.String("authorId")
	post["authorUsername"] = resolveUsername(ctx, s.users, authorID)
	post["comments"] = s.loadComments(ctx, postID)
	s.applyReactions(ctx, post, postID, viewerID)
	post["shareCount"] = s.countShares(ctx, postID)

	post["isFollowingAuthor"] = false
	post["isBookmarked"] = false
	if viewerID != "" {
		if authorID != "" && authorID != viewerID {
			following, err := s.follows.Exists(ctx, viewerID, authorID)
			if err != nil {
				log.Printf("[ERROR] failed to check follow status for post %s: %v", postID, err)
			} else {
				post["isFollowingAuthor"] = following
			}
		}
		bookmarked, err := s.bookmarks.Exists(ctx, viewerID, postID)
		if err != nil {
			log.Printf("[ERROR] failed to check bookmark status for post %s: %v", postID, err)
		} else {
			post["isBookmarked"] = bookmarked
		}
	}

	return post, nil
}

// UserPosts returns every post by one author, enriched the same way as the
// single-post view minus the viewer-specific fields.
func (s *PostService) UserPosts(ctx context.Context, authorID string) ([]model.Record, error) {
	posts, err := s.posts.ByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	authorUsername := resolveUsername(ctx, s.users, authorID)
	for _, post := range posts {
		postID := post.String("postId")
		if post.String("createdAt") == "" {
			post["createdAt"] = repository.NowISO()
		}
		post["authorUsername"] = authorUsername
		post["comments"] = s.loadComments(ctx, postID)
		s.applyReactions(ctx, post, postID, "")
		post["shareCount"] = s.countShares(ctx, postID)
	}
	return posts, nil
}

// loadComments fetches a post's comments, each annotated with the commenter's
// username.
func (s *PostService) loadComments(ctx context.Context, postID string) []model.Record {
	comments, err := s.engagement.CommentsByPost(ctx, postID)
	if err != nil {
		log.Printf("[ERROR] failed to load comments for post %s: %v", postID, err)
		return []model.Record{}
	}
	for _, comment := range comments {
		comment["username"] = resolveUsername(ctx, s.users, comment.String("userId"))
	}
	return comments
}

// applyReactions sets likes and, when a viewer is known, userLiked and
// userReactionId. User IDs are compared case-insensitively: historical
// reaction rows mix cases.
func (s *PostService) applyReactions(ctx context.Context, post model.Record, postID, viewerID string) {
	post["likes"] = 0
	post["userLiked"] = false

	reactions, err := s.engagement.ReactionsByPost(ctx, postID)
	if err != nil {
		log.Printf("[ERROR] failed to load reactions for post %s: %v", postID, err)
		return
	}

	likes := 0
	for _, reaction := range reactions {
		if !strings.EqualFold(reaction.String("reactionType"), model.ReactionLike) {
			continue
		}
		likes++
		if viewerID != "" && strings.EqualFold(reaction.String("userId"), viewerID) {
			post["userLiked"] = true
			post["userReactionId"] = reaction.String("reactionId")
		}
	}
	post["likes"] = likes
}

func (s *PostService) countShares(ctx context.Context, postID string) int {
	shares, err := s.engagement.SharesByPost(ctx, postID)
	if err != nil {
		log.Printf("[ERROR] failed to load shares for post %s: %v", postID, err)
		return 0
	}
	return len(shares)
}

// resolveUsername maps an author reference to a display username. Legacy rows
// sometimes store an email address where an ID belongs, so references with an
// "@" go through the email index. Every failure falls back to "Anonymous".
func resolveUsername(ctx context.Context, users repository.UserRepository, ref string) string {
	if ref == "" {
		return "Anonymous"
	}

	var (
		user model.Record
		err  error
	)
	if strings.Contains(ref, "@") {
		user, err = users.GetByEmail(ctx, ref)
	} else {
		user, err = users.Get(ctx, ref)
	}
	if err != nil {
		log.Printf("[ERROR] failed to resolve username for %s: %v", ref, err)
		return "Anonymous"
	}
	if username := user.String("username"); username != "" {
		return username
	}
	return "Anonymous"
}
