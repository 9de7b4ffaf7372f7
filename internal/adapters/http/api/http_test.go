package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/blogroutes/internal/adapters/http/api"
	. "github.com/smartystreets/goconvey/convey"
)

type messageBody struct {
	Message string `json:"message"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

type validationBody struct {
	Detail []api.FieldError `json:"detail"`
}

func newHandler(opts ...api.Option) http.Handler {
	server := api.NewServer(opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return server.Handler(mux)
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeMessage(w *httptest.ResponseRecorder) string {
	var body messageBody
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body.Message
}

func decodeDetail(w *httptest.ResponseRecorder) string {
	var body detailBody
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body.Detail
}

func decodeValidation(w *httptest.ResponseRecorder) []api.FieldError {
	var body validationBody
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body.Detail
}

func TestRoot(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("When requesting GET /", func() {
			w := do(h, http.MethodGet, "/")

			Convey("Then the greeting is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
				So(decodeMessage(w), ShouldEqual, "Hello, FastAPI!")
			})
		})
	})
}

func TestListBlogs(t *testing.T) {
	Convey("Given the blog listing route", t, func() {
		h := newHandler()

		Convey("When no query parameters are given", func() {
			w := do(h, http.MethodGet, "/blog/all")

			Convey("Then defaults apply and the absent page size renders as None", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "All None blogs on page 1")
			})
		})

		Convey("When page and pageSize are given", func() {
			w := do(h, http.MethodGet, "/blog/all?page=2&pageSize=10")

			Convey("Then both are echoed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "All 10 blogs on page 2")
			})
		})

		Convey("When a query key repeats", func() {
			w := do(h, http.MethodGet, "/blog/all?page=1&page=3")

			Convey("Then the last value wins", func() {
				So(decodeMessage(w), ShouldEqual, "All None blogs on page 3")
			})
		})

		Convey("When page is not an integer", func() {
			w := do(h, http.MethodGet, "/blog/all?page=abc")

			Convey("Then a validation failure names the field", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(len(fields), ShouldEqual, 1)
				So(fields[0].Type, ShouldEqual, api.TypeIntParsing)
				So(fields[0].Loc, ShouldResemble, []string{"query", "page"})
				So(fields[0].Input, ShouldEqual, "abc")
			})
		})

		Convey("When both parameters are malformed", func() {
			w := do(h, http.MethodGet, "/blog/all?page=1.5&pageSize=ten")

			Convey("Then both failures are reported", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(len(fields), ShouldEqual, 2)
				So(fields[0].Param(), ShouldEqual, "page")
				So(fields[1].Param(), ShouldEqual, "pageSize")
			})
		})

		Convey("When page and pageSize exceed 64 bits", func() {
			w := do(h, http.MethodGet, "/blog/all?page=99999999999999999999&pageSize=-123456789012345678901234")

			Convey("Then they are echoed in full", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "All -123456789012345678901234 blogs on page 99999999999999999999")
			})
		})

		Convey("When pageSize is present but empty", func() {
			w := do(h, http.MethodGet, "/blog/all?pageSize=")

			Convey("Then it is a validation failure", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})
	})
}

func TestGetBlog(t *testing.T) {
	Convey("Given the blog-by-id route", t, func() {
		h := newHandler()

		Convey("When the id is at most 5", func() {
			for _, id := range []int{-3, 0, 1, 2, 3, 4, 5} {
				w := do(h, http.MethodGet, fmt.Sprintf("/blog/%d", id))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, fmt.Sprintf("Blog %d", id))
			}
		})

		Convey("When the id is greater than 5", func() {
			for _, id := range []string{"6", "7", "100", "99999", "+6", "9223372036854775808", "99999999999999999999999"} {
				w := do(h, http.MethodGet, "/blog/"+id)
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeDetail(w), ShouldEqual, "Not Found")
			}
		})

		Convey("When the id is below -2^63", func() {
			w := do(h, http.MethodGet, "/blog/-99999999999999999999999")

			Convey("Then the blog is answered", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "Blog -99999999999999999999999")
			})
		})

		Convey("When the id is not an integer", func() {
			for _, id := range []string{"abc", "1.5", "five", "0x10", "1e30"} {
				w := do(h, http.MethodGet, "/blog/"+id)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(fields[0].Loc, ShouldResemble, []string{"path", "id"})
				So(fields[0].Input, ShouldEqual, id)
			}
		})
	})
}

func TestBlogsByType(t *testing.T) {
	Convey("Given the blog-by-type route", t, func() {
		h := newHandler()

		Convey("When the type is in the closed set", func() {
			for _, bt := range []string{"short", "story", "howto"} {
				w := do(h, http.MethodGet, "/blog/type/"+bt)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "Blog type "+bt)
			}
		})

		Convey("When the type is outside the set", func() {
			for _, bt := range []string{"long", "SHORT", "how-to", "1"} {
				w := do(h, http.MethodGet, "/blog/type/"+bt)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(fields[0].Type, ShouldEqual, api.TypeEnum)
				So(fields[0].Loc, ShouldResemble, []string{"path", "type"})
				So(fields[0].Msg, ShouldEqual, "Input should be 'short', 'story' or 'howto'")
				So(fields[0].Ctx["expected"], ShouldEqual, "'short', 'story' or 'howto'")
			}
		})
	})
}

func TestGetComment(t *testing.T) {
	Convey("Given the comment route", t, func() {
		h := newHandler()

		Convey("When only path parameters are given", func() {
			w := do(h, http.MethodGet, "/blog/3/comments/7")

			Convey("Then valid defaults to True and username to None", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "blogId 3, commentId 7, valid True, username None")
			})
		})

		Convey("When valid and username are given", func() {
			w := do(h, http.MethodGet, "/blog/3/comments/7?valid=false&username=alice")

			Convey("Then they are echoed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "blogId 3, commentId 7, valid False, username alice")
			})
		})

		Convey("When valid uses another boolean spelling", func() {
			w := do(h, http.MethodGet, "/blog/3/comments/7?valid=YES")

			Convey("Then it is accepted", func() {
				So(decodeMessage(w), ShouldEqual, "blogId 3, commentId 7, valid True, username None")
			})
		})

		Convey("When username is present but empty", func() {
			w := do(h, http.MethodGet, "/blog/3/comments/7?username=")

			Convey("Then the empty string is echoed", func() {
				So(decodeMessage(w), ShouldEqual, "blogId 3, commentId 7, valid True, username ")
			})
		})

		Convey("When the ids exceed 64 bits", func() {
			w := do(h, http.MethodGet, "/blog/18446744073709551616/comments/99999999999999999999999")

			Convey("Then they are echoed in full", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual,
					"blogId 18446744073709551616, commentId 99999999999999999999999, valid True, username None")
			})
		})

		Convey("When the blog id exceeds 5", func() {
			w := do(h, http.MethodGet, "/blog/42/comments/1")

			Convey("Then the comment route still answers", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "blogId 42, commentId 1, valid True, username None")
			})
		})

		Convey("When valid is not a boolean", func() {
			w := do(h, http.MethodGet, "/blog/3/comments/7?valid=maybe")

			Convey("Then a bool parsing failure is reported", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(fields[0].Type, ShouldEqual, api.TypeBoolParsing)
				So(fields[0].Loc, ShouldResemble, []string{"query", "valid"})
			})
		})

		Convey("When every typed parameter is malformed", func() {
			w := do(h, http.MethodGet, "/blog/x/comments/y?valid=maybe")

			Convey("Then all three failures are reported in order", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				fields := decodeValidation(w)
				So(len(fields), ShouldEqual, 3)
				So(fields[0].Param(), ShouldEqual, "id")
				So(fields[1].Param(), ShouldEqual, "commentId")
				So(fields[2].Param(), ShouldEqual, "valid")
			})
		})
	})
}

func TestRoutePrecedence(t *testing.T) {
	Convey("Given literal routes that overlap the id wildcard", t, func() {
		h := newHandler()

		Convey("Then /blog/all is never read as an id", func() {
			w := do(h, http.MethodGet, "/blog/all")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeMessage(w), ShouldStartWith, "All ")
		})

		Convey("Then /blog/type/howto is never read as an id", func() {
			w := do(h, http.MethodGet, "/blog/type/howto")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeMessage(w), ShouldEqual, "Blog type howto")
		})

		Convey("Then a bare /blog/type falls to the id route and fails coercion", func() {
			w := do(h, http.MethodGet, "/blog/type")
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestUnmatchedRequests(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("When the path is unknown", func() {
			for _, path := range []string{"/unknown", "/unknown/", "/blog/1/comments", "/blog/1/comments/", "/blog/1/comments/2/extra"} {
				w := do(h, http.MethodGet, path)
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeDetail(w), ShouldEqual, "Not Found")
			}
		})

		Convey("When a known path has a trailing slash", func() {
			cases := map[string]string{
				"/blog/all/":                  "/blog/all",
				"/blog/all/?page=2":           "/blog/all?page=2",
				"/blog/3/":                    "/blog/3",
				"/blog/type/story/":           "/blog/type/story",
				"/blog/3/comments/7/?valid=0": "/blog/3/comments/7?valid=0",
				"/healthz/":                   "/healthz",
			}

			Convey("Then it redirects to the path without it", func() {
				for path, want := range cases {
					w := do(h, http.MethodGet, path)
					So(w.Code, ShouldEqual, http.StatusTemporaryRedirect)
					So(w.Header().Get("Location"), ShouldEqual, want)
				}
			})

			Convey("Then following the redirect reaches the route", func() {
				w := do(h, http.MethodGet, do(h, http.MethodGet, "/blog/all/?page=2").Header().Get("Location"))
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decodeMessage(w), ShouldEqual, "All None blogs on page 2")
			})
		})

		Convey("When a known path is requested with another method", func() {
			w := do(h, http.MethodPost, "/blog/all")

			Convey("Then 405 is returned with the allowed methods", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
				So(decodeDetail(w), ShouldEqual, "Method Not Allowed")
			})
		})

		Convey("When an unknown path is requested with another method", func() {
			w := do(h, http.MethodDelete, "/nowhere")

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given the API handler", t, func() {
		Convey("When requesting /healthz", func() {
			w := do(newHandler(), http.MethodGet, "/healthz")

			Convey("Then the service reports ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When requesting /metrics after serving a request", func() {
			h := newHandler()
			do(h, http.MethodGet, "/blog/1")
			w := do(h, http.MethodGet, "/metrics")

			Convey("Then Prometheus metrics are exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "blog_api_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="blog_by_id"`)
			})
		})

		Convey("When the metrics endpoint is disabled", func() {
			w := do(newHandler(api.WithMetricsEndpoint(false)), http.MethodGet, "/metrics")

			Convey("Then /metrics is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler()

		Convey("When the client sends no request id", func() {
			w := do(h, http.MethodGet, "/")

			Convey("Then a UUID is minted", func() {
				_, err := uuid.Parse(w.Header().Get(api.RequestIDHeader))
				So(err, ShouldBeNil)
			})
		})

		Convey("When the client sends a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "trace-42")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "trace-42")
			})
		})

		Convey("When the client sends an unusable request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, strings.Repeat("x", 200))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is replaced", func() {
				So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
			})
		})
	})
}

func TestRouteTable(t *testing.T) {
	Convey("Given a server", t, func() {
		server := api.NewServer()

		Convey("Then the route table lists the five blog routes in order", func() {
			routes := server.Routes()
			So(len(routes), ShouldEqual, 5)
			patterns := make([]string, len(routes))
			for i, rt := range routes {
				So(rt.Method, ShouldEqual, http.MethodGet)
				patterns[i] = rt.Pattern
			}
			So(patterns, ShouldResemble, []string{
				"/{$}",
				"/blog/all",
				"/blog/type/{type}",
				"/blog/{id}/comments/{commentId}",
				"/blog/{id}",
			})
		})

		Convey("Then the returned table is a copy", func() {
			routes := server.Routes()
			routes[0].Pattern = "/changed"
			So(server.Routes()[0].Pattern, ShouldEqual, "/{$}")
		})

		Convey("Then registering on a nil mux panics", func() {
			So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestConcurrentRequests(t *testing.T) {
	Convey("Given many concurrent requests", t, func() {
		h := newHandler()
		const n = 64

		var wg sync.WaitGroup
		got := make([]string, n)
		codes := make([]int, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/blog/%d/comments/%d", i, i+1), http.NoBody)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				codes[i] = w.Code
				var body messageBody
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				got[i] = body.Message
			}(i)
		}
		wg.Wait()

		Convey("Then each response matches its own inputs", func() {
			for i := 0; i < n; i++ {
				So(codes[i], ShouldEqual, http.StatusOK)
				So(got[i], ShouldEqual, fmt.Sprintf("blogId %d, commentId %d, valid True, username None", i, i+1))
			}
		})
	})
}
