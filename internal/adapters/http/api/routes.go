package api

import (
	"net/http"

	"github.com/okian/blogroutes/internal/domain/blog"
	"github.com/okian/blogroutes/internal/domain/model"
	"github.com/okian/blogroutes/internal/domain/types"
)

// Route names, used as the endpoint label in metrics.
const (
	RouteRoot        = "root"
	RouteBlogAll     = "blog_all"
	RouteBlogByType  = "blog_by_type"
	RouteBlogComment = "blog_comment"
	RouteBlogByID    = "blog_by_id"
)

// blogRoutes returns the route table. Literal segments come before the
// /blog/{id} wildcard so "all" and "type" are never read as an id.
func blogRoutes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/{$}", Name: RouteRoot, Handle: handleRoot},
		{Method: http.MethodGet, Pattern: "/blog/all", Name: RouteBlogAll, Handle: handleListBlogs},
		{Method: http.MethodGet, Pattern: "/blog/type/{type}", Name: RouteBlogByType, Handle: handleBlogsByType},
		{Method: http.MethodGet, Pattern: "/blog/{id}/comments/{commentId}", Name: RouteBlogComment, Handle: handleGetComment},
		{Method: http.MethodGet, Pattern: "/blog/{id}", Name: RouteBlogByID, Handle: handleGetBlog},
	}
}

// handleRoot handles GET /.
func handleRoot(_ *http.Request) (model.Message, error) {
	return blog.Greeting(), nil
}

// handleListBlogs handles GET /blog/all?page=&pageSize=.
func handleListBlogs(r *http.Request) (model.Message, error) {
	p := newParamReader(r)
	q := model.ListQuery{
		Page:     p.queryInt("page", types.NewInt(blog.DefaultPage)),
		PageSize: p.optionalQueryInt("pageSize"),
	}
	if err := p.Err(); err != nil {
		return model.Message{}, err
	}
	return blog.ListBlogs(q), nil
}

// handleGetBlog handles GET /blog/{id}.
func handleGetBlog(r *http.Request) (model.Message, error) {
	p := newParamReader(r)
	id := p.pathInt("id")
	if err := p.Err(); err != nil {
		return model.Message{}, err
	}
	return blog.GetBlog(id)
}

// handleBlogsByType handles GET /blog/type/{type}.
func handleBlogsByType(r *http.Request) (model.Message, error) {
	p := newParamReader(r)
	bt := p.pathBlogType("type")
	if err := p.Err(); err != nil {
		return model.Message{}, err
	}
	return blog.BlogsByType(bt), nil
}

// handleGetComment handles GET /blog/{id}/comments/{commentId}?valid=&username=.
func handleGetComment(r *http.Request) (model.Message, error) {
	p := newParamReader(r)
	q := model.CommentQuery{
		BlogID:    p.pathInt("id"),
		CommentID: p.pathInt("commentId"),
		Valid:     p.queryBool("valid", blog.DefaultValid),
		Username:  p.optionalQueryString("username"),
	}
	if err := p.Err(); err != nil {
		return model.Message{}, err
	}
	return blog.GetComment(q), nil
}
