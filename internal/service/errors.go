package service

import "errors"

var (
	// ErrHashtagNotFound means the search API returned no identifier for a
	// hashtag. Discovery is best-effort per hashtag, so callers skip the
	// hashtag rather than abort.
	ErrHashtagNotFound = errors.New("hashtag id not found")

	// ErrNotAuthenticated means session validation and re-login both
	// failed. Publishing is blocked until the operator intervenes.
	ErrNotAuthenticated = errors.New("not authenticated with destination account")

	// ErrMediaUpload means the hosting service rejected an upload. The
	// staged local file must be retained so the attempt can be retried.
	ErrMediaUpload = errors.New("media hosting upload failed")

	// ErrPublishRejected means the destination platform rejected the post.
	ErrPublishRejected = errors.New("publish rejected by destination platform")
)
