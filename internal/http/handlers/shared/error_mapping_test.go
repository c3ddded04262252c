package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

type testEnvelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
}

func runWithContext(t *testing.T, fn func(c *gin.Context)) testEnvelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestRespondWithMappedError(t *testing.T) {
	rules := ConcatMappedHandlerErrors(AccessErrorRules, ParcelErrorRules)

	cases := []struct {
		err  error
		code int
	}{
		{service.ErrParcelAccessDenied, 403},
		{fmt.Errorf("wrap: %w", service.ErrParcelNotFound), 404},
		{service.ErrParcelStatusTransitionInvalid, 400},
		{errors.New("db down"), 500},
	}
	for _, tc := range cases {
		resp := runWithContext(t, func(c *gin.Context) {
			RespondWithMappedError(c, tc.err, rules, 500, "error.internal_error")
		})
		if resp.StatusCode != tc.code {
			t.Fatalf("%v: status_code want %d got %d", tc.err, tc.code, resp.StatusCode)
		}
		if resp.Msg == "" {
			t.Fatalf("%v: message should be resolved", tc.err)
		}
	}
}

func TestRespondProfileIncomplete(t *testing.T) {
	if handled := RespondProfileIncomplete(nil, errors.New("other")); handled {
		t.Fatalf("unrelated error should not be handled")
	}

	resp := runWithContext(t, func(c *gin.Context) {
		if !RespondProfileIncomplete(c, &service.ProfileIncompleteError{Missing: []string{"phone"}}) {
			t.Fatalf("profile incomplete error should be handled")
		}
	})
	if resp.StatusCode != 400 || resp.Data["redirect"] != "/customer/profile" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	missing, _ := resp.Data["missing_fields"].([]interface{})
	if len(missing) != 1 || missing[0] != "phone" {
		t.Fatalf("missing fields want [phone] got %v", resp.Data["missing_fields"])
	}
}

func TestRequirePrincipalWithoutIdentity(t *testing.T) {
	resp := runWithContext(t, func(c *gin.Context) {
		if _, ok := RequirePrincipal(c); ok {
			t.Fatalf("principal should be missing")
		}
	})
	if resp.StatusCode != 401 || resp.Data["redirect"] != "/auth" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestParseUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := ParseUintParam(c, "id", "error.parcel_id_invalid")
	if !ok || id != 42 {
		t.Fatalf("want 42 got %d ok=%v", id, ok)
	}

	resp := runWithContext(t, func(c *gin.Context) {
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		if _, ok := ParseUintParam(c, "id", "error.parcel_id_invalid"); ok {
			t.Fatalf("non-numeric id should fail")
		}
	})
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}
