package errors

import "errors"

var (
	ErrNotFound      = errors.New("blog post not found")
	ErrInvalidID     = errors.New("invalid blog post ID")
	ErrDuplicateSlug = errors.New("blog post slug already exists")
)
