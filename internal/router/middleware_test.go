package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gcs-courier/internal/authz"
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type fakeResolver struct {
	identities map[string]*service.Identity
	errs       map[string]error
}

func (f *fakeResolver) ResolveToken(_ context.Context, token string) (*service.Identity, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if identity, ok := f.identities[token]; ok {
		return identity, nil
	}
	return nil, service.ErrInvalidToken
}

type envelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func newRoleTestEngine(t *testing.T, resolver service.IdentityResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	r := gin.New()
	api := r.Group("/api/v1")
	customer := api.Group("/customer")
	customer.Use(SessionAuthMiddleware(resolver), RoleRBACMiddleware(authzService))
	customer.GET("/parcels", func(c *gin.Context) {
		identity, _ := handlershared.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "data": gin.H{"email": identity.Email}})
	})
	admin := api.Group("/admin")
	admin.Use(SessionAuthMiddleware(resolver), RoleRBACMiddleware(authzService))
	admin.GET("/parcels", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	return r
}

func TestSessionAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	resolver := &fakeResolver{errs: map[string]error{
		"revoked":  service.ErrTokenRevoked,
		"disabled": service.ErrUserDisabled,
	}}
	r := newRoleTestEngine(t, resolver)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"malformed", "Token abc"},
		{"revoked", "Bearer revoked"},
		{"disabled", "Bearer disabled"},
		{"unknown", "Bearer nope"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/parcels", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		resp := decodeEnvelope(t, w)
		if resp.StatusCode != 401 {
			t.Fatalf("%s: status_code want 401 got %d", tc.name, resp.StatusCode)
		}
		if resp.Data["redirect"] != "/auth" {
			t.Fatalf("%s: redirect want /auth got %v", tc.name, resp.Data["redirect"])
		}
	}
}

func TestRoleRBACMiddlewareGatesRouteGroups(t *testing.T) {
	resolver := &fakeResolver{identities: map[string]*service.Identity{
		"cust":  {UserID: 1, Email: "c@example.com", Role: "customer"},
		"admin": {UserID: 2, Email: "a@example.com", Role: "admin"},
	}}
	r := newRoleTestEngine(t, resolver)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/parcels", nil)
	req.Header.Set("Authorization", "Bearer cust")
	r.ServeHTTP(w, req)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 || resp.Data["email"] != "c@example.com" {
		t.Fatalf("customer should pass, got %+v", resp)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/parcels", nil)
	req.Header.Set("Authorization", "Bearer cust")
	r.ServeHTTP(w, req)
	resp = decodeEnvelope(t, w)
	if resp.StatusCode != 403 {
		t.Fatalf("customer on admin route want 403 got %d", resp.StatusCode)
	}
	if resp.Data["redirect"] != "/" || resp.Data["landing"] != "/customer" {
		t.Fatalf("unexpected forbidden payload: %+v", resp.Data)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/customer/parcels", nil)
	req.Header.Set("Authorization", "Bearer admin")
	r.ServeHTTP(w, req)
	resp = decodeEnvelope(t, w)
	if resp.StatusCode != 403 {
		t.Fatalf("admin on customer route want 403 got %d", resp.StatusCode)
	}
}

func TestOptionalSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeResolver{identities: map[string]*service.Identity{
		"disp": {UserID: 3, Role: "dispatcher", Pincodes: []string{"380001"}},
	}}

	r := gin.New()
	r.Use(OptionalSessionMiddleware(resolver))
	r.GET("/session", func(c *gin.Context) {
		identity, ok := handlershared.GetIdentity(c)
		role := ""
		if ok {
			role = identity.Role
		}
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "data": gin.H{"role": role}})
	})

	for token, want := range map[string]string{"": "", "Bearer disp": "dispatcher", "Bearer bad": ""} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		r.ServeHTTP(w, req)
		resp := decodeEnvelope(t, w)
		if resp.StatusCode != 0 || resp.Data["role"] != want {
			t.Fatalf("token %q want role %q got %+v", token, want, resp)
		}
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
}
