package model

import "errors"

// FollowRequest is the body of POST /user-follows.
type FollowRequest struct {
	FollowerID string `json:"followerId"`
	FollowedID string `json:"followedId"`
}

var (
	// ErrCannotFollowSelf rejects self-referential follow edges.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing is returned when the edge already exists.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing is returned when unfollowing an absent edge.
	ErrNotFollowing = errors.New("follow relationship not found")
)
