// Package services defines the business logic for stories, engagement
// counters, and follow relationships. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrUnauthorized is returned when a mutating operation is attempted
	// without an authenticated identity. No state is changed; callers should
	// prompt for authentication.
	ErrUnauthorized = errors.New("authentication required")

	// ErrPostNotFound indicates that the requested post does not exist or is
	// not visible to the current user.
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptyTitle is returned when a story is submitted with a blank title.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrEmptyContent is returned when a story is submitted with no body.
	ErrEmptyContent = errors.New("content is empty")

	// ErrEmptyComment is returned when a comment is empty after trimming
	// whitespace.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrCommentTooLong is returned when a comment exceeds the configured
	// maximum length.
	ErrCommentTooLong = errors.New("comment too long")

	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrMissingFollowee is returned when a follow toggle names no target.
	ErrMissingFollowee = errors.New("followee is required")
)
