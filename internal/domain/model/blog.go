// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"

	"github.com/okian/blogroutes/internal/domain/types"
)

// ErrUnknownBlogType is returned by ParseBlogType for values outside the closed set.
var ErrUnknownBlogType = errors.New("unknown blog type")

// BlogType classifies blogs. The set is closed: short, story, howto.
type BlogType string

const (
	BlogTypeShort BlogType = "short"
	BlogTypeStory BlogType = "story"
	BlogTypeHowTo BlogType = "howto"
)

var blogTypes = [...]BlogType{BlogTypeShort, BlogTypeStory, BlogTypeHowTo}

// BlogTypes returns every valid blog type in declaration order.
func BlogTypes() []BlogType {
	out := make([]BlogType, len(blogTypes))
	copy(out, blogTypes[:])
	return out
}

// ParseBlogType returns the BlogType spelled exactly as s.
func ParseBlogType(s string) (BlogType, error) {
	for _, t := range blogTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownBlogType
}

// ExpectedBlogTypes renders the valid values as 'short', 'story' or 'howto'.
func ExpectedBlogTypes() string {
	quoted := make([]string, len(blogTypes))
	for i, t := range blogTypes {
		quoted[i] = "'" + string(t) + "'"
	}
	last := len(quoted) - 1
	return strings.Join(quoted[:last], ", ") + " or " + quoted[last]
}

func (t BlogType) String() string { return string(t) }

// Message is the body of every successful blog response.
type Message struct {
	Message string `json:"message"`
}

// ListQuery holds the pagination inputs of the blog listing.
type ListQuery struct {
	Page     types.Int
	PageSize types.Optional[types.Int]
}

// CommentQuery identifies a comment and its optional filters.
type CommentQuery struct {
	BlogID    types.Int
	CommentID types.Int
	Valid     bool
	Username  types.Optional[string]
}
