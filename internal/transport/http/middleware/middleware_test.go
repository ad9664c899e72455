package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-admin/internal/core/auth"
	"estate-admin/internal/domain"
	"estate-admin/internal/transport/http/ez"
	resp "estate-admin/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"uid": c.GetString(ez.KeyUserID)})) }
	r.GET("/x", ok)
	r.POST("/x", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
			return
		}
		ok(c)
	})
	return r
}

func code(t *testing.T, r http.Handler, req *http.Request) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env.Code
}

func TestRateLimitPerIP(t *testing.T) {
	r := engine(RateLimitPerIP(0.001, 2))
	from := func(ip string) *http.Request {
		req := httptest.NewRequest("GET", "/x", nil)
		req.RemoteAddr = ip + ":1234"
		return req
	}
	for i := range 2 {
		if got := code(t, r, from("10.0.0.1")); got != resp.CodeOK {
			t.Fatalf("request %d: code %d", i, got)
		}
	}
	if got := code(t, r, from("10.0.0.1")); got != resp.CodeTooManyRequests {
		t.Fatalf("over burst: code %d", got)
	}
	if got := code(t, r, from("10.0.0.2")); got != resp.CodeOK {
		t.Fatalf("other ip: code %d", got)
	}
}

func TestRequestID(t *testing.T) {
	r := engine(RequestID())

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(KeyRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(KeyRequestID); got != "abc-123" {
		t.Fatalf("echoed id = %q", got)
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("a", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(KeyRequestID); len(got) != 36 {
		t.Fatalf("oversized id not replaced: %q", got)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := engine(MaxBodyBytes(16))
	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"k":"`+strings.Repeat("v", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	if got := code(t, r, req); got != resp.CodeBadRequest {
		t.Fatalf("oversized body: code %d", got)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })
	if got := code(t, r, httptest.NewRequest("GET", "/slow", nil)); got != resp.CodeTimeout {
		t.Fatalf("code %d", got)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	if got := code(t, r, httptest.NewRequest("GET", "/boom", nil)); got != resp.CodeServerError {
		t.Fatalf("code %d", got)
	}
}

type perms map[string][]domain.Permission

func (p perms) HasPermission(_ context.Context, uid string, want domain.Permission) (bool, error) {
	if uid == "broken" {
		return false, errors.New("store offline")
	}
	for _, have := range p[uid] {
		if have == want {
			return true, nil
		}
	}
	return false, nil
}

func TestAuthAndPermission(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Minute}
	pc := perms{"u-1": {domain.PermReportsRead}}
	r := engine(AuthJWT(j, "Viewer"), RequirePermission(pc, domain.PermReportsRead))

	as := func(uid, role string) *http.Request {
		tok, err := j.Issue(uid, role)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/x", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		return req
	}
	for _, tc := range []struct {
		name string
		req  *http.Request
		want int
	}{
		{"no header", httptest.NewRequest("GET", "/x", nil), resp.CodeUnauthorized},
		{"granted", as("u-1", "Viewer"), resp.CodeOK},
		{"wrong role", as("u-1", "Agent"), resp.CodeForbidden},
		{"lacks permission", as("u-2", "Viewer"), resp.CodeForbidden},
		{"checker error", as("broken", "Viewer"), resp.CodeServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := code(t, r, tc.req); got != tc.want {
				t.Fatalf("code %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMask(t *testing.T) {
	got := mask(map[string][]string{"Email": {"a@b.c"}, "page": {"2"}})
	if got["Email"][0] == "a@b.c" || got["page"][0] != "2" {
		t.Fatalf("mask = %v", got)
	}
}
