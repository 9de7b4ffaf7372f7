// Package blog builds the responses of the blog routes. Every function is a
// pure function of its already-validated inputs.
package blog

import (
	"errors"
	"fmt"

	"github.com/okian/blogroutes/internal/domain/model"
	"github.com/okian/blogroutes/internal/domain/types"
)

// Defaults applied when the corresponding query parameter is absent.
const (
	DefaultPage  = 1
	DefaultValid = true
)

// MaxBlogID is the highest id GetBlog answers for.
const MaxBlogID = 5

// ErrBlogNotFound is returned by GetBlog for ids above MaxBlogID.
var ErrBlogNotFound = errors.New("blog not found")

const greeting = "Hello, FastAPI!"

// Greeting answers the root route.
func Greeting() model.Message {
	return model.Message{Message: greeting}
}

// ListBlogs echoes the pagination inputs.
func ListBlogs(q model.ListQuery) model.Message {
	return model.Message{Message: fmt.Sprintf("All %s blogs on page %s", q.PageSize, q.Page)}
}

// GetBlog returns the blog with id, or ErrBlogNotFound when id exceeds MaxBlogID.
func GetBlog(id types.Int) (model.Message, error) {
	if id.CmpInt64(MaxBlogID) > 0 {
		return model.Message{}, fmt.Errorf("blog %s: %w", id, ErrBlogNotFound)
	}
	return model.Message{Message: "Blog " + id.String()}, nil
}

// BlogsByType echoes the requested type.
func BlogsByType(t model.BlogType) model.Message {
	return model.Message{Message: "Blog type " + t.String()}
}

// GetComment echoes the comment coordinates and filters.
func GetComment(q model.CommentQuery) model.Message {
	return model.Message{Message: fmt.Sprintf(
		"blogId %s, commentId %s, valid %s, username %s",
		q.BlogID, q.CommentID, FormatBool(q.Valid), q.Username,
	)}
}

// FormatBool renders b as True or False.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
