package probe

import (
	"fmt"
	"net/http"
)

// DefaultCases returns the documented request/response pairs of the blog API.
func DefaultCases() []Case {
	cases := []Case{
		{Name: "root greeting", Path: "/", WantStatus: http.StatusOK, WantMessage: "Hello, FastAPI!"},
		{Name: "list defaults", Path: "/blog/all", WantStatus: http.StatusOK, WantMessage: "All None blogs on page 1"},
		{Name: "list paged", Path: "/blog/all?page=2&pageSize=10", WantStatus: http.StatusOK, WantMessage: "All 10 blogs on page 2"},
		{Name: "list bad page", Path: "/blog/all?page=abc", WantStatus: http.StatusUnprocessableEntity, WantFields: 1},
		{Name: "blog not found", Path: "/blog/6", WantStatus: http.StatusNotFound, WantDetail: "Not Found"},
		{Name: "blog huge id", Path: "/blog/99999999999999999999999", WantStatus: http.StatusNotFound, WantDetail: "Not Found"},
		{Name: "list huge page", Path: "/blog/all?page=99999999999999999999", WantStatus: http.StatusOK,
			WantMessage: "All None blogs on page 99999999999999999999"},
		{Name: "list trailing slash", Path: "/blog/all/?page=2", WantStatus: http.StatusOK, WantMessage: "All None blogs on page 2"},
		{Name: "blog bad id", Path: "/blog/abc", WantStatus: http.StatusUnprocessableEntity, WantFields: 1},
		{Name: "type invalid", Path: "/blog/type/long", WantStatus: http.StatusUnprocessableEntity, WantFields: 1},
		{Name: "comment defaults", Path: "/blog/3/comments/7", WantStatus: http.StatusOK,
			WantMessage: "blogId 3, commentId 7, valid True, username None"},
		{Name: "comment filtered", Path: "/blog/3/comments/7?valid=false&username=alice", WantStatus: http.StatusOK,
			WantMessage: "blogId 3, commentId 7, valid False, username alice"},
		{Name: "comment bad params", Path: "/blog/x/comments/y?valid=maybe", WantStatus: http.StatusUnprocessableEntity, WantFields: 3},
		{Name: "unknown path", Path: "/nowhere", WantStatus: http.StatusNotFound, WantDetail: "Not Found"},
		{Name: "wrong method", Method: http.MethodPost, Path: "/blog/all", WantStatus: http.StatusMethodNotAllowed,
			WantDetail: "Method Not Allowed"},
	}
	for id := 0; id <= 5; id++ {
		cases = append(cases, Case{
			Name: fmt.Sprintf("blog %d", id), Path: fmt.Sprintf("/blog/%d", id),
			WantStatus: http.StatusOK, WantMessage: fmt.Sprintf("Blog %d", id),
		})
	}
	for _, bt := range []string{"short", "story", "howto"} {
		cases = append(cases, Case{
			Name: "type " + bt, Path: "/blog/type/" + bt,
			WantStatus: http.StatusOK, WantMessage: "Blog type " + bt,
		})
	}
	return cases
}
