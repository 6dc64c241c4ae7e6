package service

import (
	"context"
	"log"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// FollowService manages the follower graph. The edge write is the source of
// truth; the followers/following counters on both profiles are derived and
// updated best-effort afterwards.
type FollowService struct {
	follows  repository.FollowRepository
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
) *FollowService {
	return &FollowService{follows: follows, users: users, profiles: profiles}
}

// Follow creates the edge and bumps both derived counters. The returned
// warning is non-empty when a counter update failed.
func (s *FollowService) Follow(ctx context.Context, req model.FollowRequest) (string, error) {
	if req.FollowerID == "" || req.FollowedID == "" {
		return "", model.Validation("followerId and followedId are required")
	}
	if req.FollowerID == req.FollowedID {
		return "", model.ErrCannotFollowSelf
	}

	if err := s.follows.Create(ctx, req.FollowerID, req.FollowedID); err != nil {
		return "", err
	}

	warning := ""
	if err := s.profiles.AdjustCounter(ctx, req.FollowerID, model.CounterFollowing, 1); err != nil {
		log.Printf("[ERROR] failed to increment following for %s: %v", req.FollowerID, err)
		warning = "failed to update follow counters"
	}
	if err := s.profiles.AdjustCounter(ctx, req.FollowedID, model.CounterFollowers, 1); err != nil {
		log.Printf("[ERROR] failed to increment followers for %s: %v", req.FollowedID, err)
		warning = "failed to update follow counters"
	}
	return warning, nil
}

// Unfollow removes the edge and walks both counters back down. Decrements are
// guarded store-side and never push a counter below zero.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) (string, error) {
	if followerID == "" || followedID == "" {
		return "", model.Validation("followerId and followedId are required")
	}

	if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
		return "", err
	}

	warning := ""
	if err := s.profiles.AdjustCounter(ctx, followerID, model.CounterFollowing, -1); err != nil {
		log.Printf("[ERROR] failed to decrement following for %s: %v", followerID, err)
		warning = "failed to update follow counters"
	}
	if err := s.profiles.AdjustCounter(ctx, followedID, model.CounterFollowers, -1); err != nil {
		log.Printf("[ERROR] failed to decrement followers for %s: %v", followedID, err)
		warning = "failed to update follow counters"
	}
	return warning, nil
}

// Following lists the users followerID follows, each edge annotated with the
// followed user's username.
func (s *FollowService) Following(ctx context.Context, followerID string) ([]model.Record, error) {
	edges, err := s.follows.Following(ctx, followerID)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		edge["followedUsername"] = s.lookupUsername(ctx, edge.String("followedId"))
	}
	return edges, nil
}

// Followers lists the users following followedID, each edge annotated with the
// follower's username.
func (s *FollowService) Followers(ctx context.Context, followedID string) ([]model.Record, error) {
	edges, err := s.follows.Followers(ctx, followedID)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		edge["followerUsername"] = s.lookupUsername(ctx, edge.String("followerId"))
	}
	return edges, nil
}

func (s *FollowService) lookupUsername(ctx context.Context, userID string) string {
	if userID == "" {
		return "Anonymous"
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] failed to resolve username for %s: %v", userID, err)
		return "Anonymous"
	}
	if username := user.String("username"); username != "" {
		return username
	}
	return "Anonymous"
}
