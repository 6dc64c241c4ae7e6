package model

import "errors"

// BookmarkRequest is the body of POST /post-bookmarks.
type BookmarkRequest struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
}

var (
	// ErrAlreadyBookmarked is returned when the bookmark already exists.
	ErrAlreadyBookmarked = errors.New("post already bookmarked by this user")

	// ErrBookmarkNotFound is returned when removing an absent bookmark.
	ErrBookmarkNotFound = errors.New("bookmark not found")
)
