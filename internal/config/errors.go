package config

import "errors"

// Errors returned by Load and Validate; match them with errors.Is.
var (
	// ErrInvalidConfig wraps the first field of the blog service config that failed validation.
	ErrInvalidConfig = errors.New("invalid blog service config")
	// ErrLoadConfig wraps failures reading the BLOG_CONFIG file or BLOG_* environment.
	ErrLoadConfig = errors.New("loading blog service config")
)
