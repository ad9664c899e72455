package ez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	resp "estate-admin/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type itemPatch struct {
	Name *string `json:"name"`
}

// itemStore is a tiny repository with the soft not-found convention.
type itemStore struct{ items []item }

func (s *itemStore) list(context.Context) ([]item, error) { return s.items, nil }

func (s *itemStore) get(_ context.Context, id int) (*item, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s *itemStore) create(_ context.Context, in item) (*item, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	in.ID = len(s.items) + 1
	s.items = append(s.items, in)
	return &s.items[len(s.items)-1], nil
}

func (s *itemStore) update(ctx context.Context, id int, p itemPatch) (*item, error) {
	it, _ := s.get(ctx, id)
	if it != nil && p.Name != nil {
		it.Name = *p.Name
	}
	return it, nil
}

func (s *itemStore) delete(_ context.Context, id int) (bool, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func serve(r http.Handler, method, path, body string) resp.Resp {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out resp.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestCrud(t *testing.T) {
	s := &itemStore{items: []item{{1, "a"}, {2, "b"}, {3, "c"}}}
	r := gin.New()
	Crud(New(r.Group("")), Resource[item, int, item, itemPatch]{
		Path: "/items", Name: "item", ParseID: IntID,
		List: s.list, Get: s.get, Create: s.create, Update: s.update, Delete: s.delete,
	})

	for _, tc := range []struct {
		method, path, body string
		want               int
	}{
		{"GET", "/items?page=2&size=2", "", resp.CodeOK},
		{"GET", "/items/2", "", resp.CodeOK},
		{"GET", "/items/9", "", resp.CodeNotFound},
		{"GET", "/items/x", "", resp.CodeBadRequest},
		{"POST", "/items", `{"name":"d"}`, resp.CodeOK},
		{"POST", "/items", `{"name":""}`, resp.CodeBadRequest},
		{"POST", "/items", `not json`, resp.CodeBadRequest},
		{"PUT", "/items/1", `{"name":"z"}`, resp.CodeOK},
		{"PUT", "/items/9", `{"name":"z"}`, resp.CodeNotFound},
		{"DELETE", "/items/1", "", resp.CodeOK},
		{"DELETE", "/items/1", "", resp.CodeNotFound},
	} {
		if got := serve(r, tc.method, tc.path, tc.body); got.Code != tc.want {
			t.Errorf("%s %s: code %d (%s), want %d", tc.method, tc.path, got.Code, got.Msg, tc.want)
		}
	}
	if len(s.items) != 3 || s.items[0].Name != "b" {
		t.Fatalf("items = %+v", s.items)
	}
}

func TestCrudOmitsNilRoutes(t *testing.T) {
	r := gin.New()
	Crud(New(r.Group("")), Resource[item, int, item, itemPatch]{Path: "/items", Name: "item", ParseID: IntID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/items", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unregistered route answered %d", w.Code)
	}
}

func TestFailMapping(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{NotFound("gone"), resp.CodeNotFound},
		{Forbidden("no"), resp.CodeForbidden},
		{fmt.Errorf("wrap: %w", domain.ErrValidation), resp.CodeBadRequest},
		{fmt.Errorf("load: %w", context.DeadlineExceeded), resp.CodeTimeout},
		{errors.New("disk on fire"), resp.CodeServerError},
	} {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { Fail(c, tc.err) })
		got := serve(r, "GET", "/", "")
		if got.Code != tc.want {
			t.Errorf("Fail(%v) = %d, want %d", tc.err, got.Code, tc.want)
		}
		if tc.want == resp.CodeServerError && strings.Contains(got.Msg, "disk") {
			t.Errorf("internal detail leaked: %q", got.Msg)
		}
	}
}

func TestActionAuth(t *testing.T) {
	r := gin.New()
	g := r.Group("", func(c *gin.Context) {
		if uid := c.GetHeader("X-Uid"); uid != "" {
			c.Set(KeyUserID, uid)
		}
	})
	RegisterAction(New(g), Action[struct{}, string]{
		Method: "GET", Path: "/secret", Binder: BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (string, error) { return c.GetString(KeyUserID), nil },
	})

	call := func(uid string) int {
		req := httptest.NewRequest("GET", "/secret", nil)
		req.Header.Set("X-Uid", uid)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var out resp.Resp
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		return out.Code
	}
	if got := call(""); got != resp.CodeUnauthorized {
		t.Fatalf("anonymous: %d", got)
	}
	if got := call("u-1"); got != resp.CodeOK {
		t.Fatalf("signed in: %d", got)
	}
}
