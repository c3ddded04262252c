package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gcs-courier/internal/authz"
	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/provider"
	"github.com/gcs-courier/internal/repository"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type courierAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func newCourierAPI(t *testing.T) *courierAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	dsn := fmt.Sprintf("file:router_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1, Issuer: "gcs-test"},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		Tracking: config.TrackingConfig{Prefix: "GCS", DigitLength: 10, MaxAttempts: 3},
	}

	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	c := &provider.Container{
		Config:                cfg,
		UserRepo:              repository.NewUserRepository(db),
		UserRoleRepo:          repository.NewUserRoleRepository(db),
		ProfileRepo:           repository.NewProfileRepository(db),
		DispatcherPincodeRepo: repository.NewDispatcherPincodeRepository(db),
		ParcelRepo:            repository.NewParcelRepository(db),
		ParcelStatusLogRepo:   repository.NewParcelStatusLogRepository(db),
		UserLoginLogRepo:      repository.NewUserLoginLogRepository(db),
		AuthzService:          authzService,
	}
	c.SessionService = service.NewSessionService(cfg, c.UserRepo, c.UserRoleRepo, c.DispatcherPincodeRepo)
	c.ProfileService = service.NewProfileService(c.ProfileRepo)
	c.ParcelService = service.NewParcelService(c.ParcelRepo, c.ParcelStatusLogRepo, c.ProfileService, nil, nil, cfg.Tracking)
	c.DispatcherAdminService = service.NewDispatcherAdminService(c.UserRepo, c.UserRoleRepo, c.DispatcherPincodeRepo, c.ProfileRepo, c.SessionService)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)

	if err := models.InitDefaultAdmin("admin@gcs.test", "Admin@123"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}

	return &courierAPI{t: t, engine: SetupRouter(cfg, c)}
}

func (a *courierAPI) do(method, path, token string, body interface{}) envelope {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return decodeEnvelope(a.t, w)
}

func (a *courierAPI) signIn(email, password string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/v1/auth/sign-in", "", gin.H{"email": email, "password": password})
	if resp.StatusCode != 0 {
		a.t.Fatalf("sign in %s failed: %+v", email, resp)
	}
	token, _ := resp.Data["token"].(string)
	if token == "" {
		a.t.Fatalf("sign in %s returned empty token", email)
	}
	return token
}

func TestCourierFlowThroughRouter(t *testing.T) {
	api := newCourierAPI(t)

	// 注册客户并检查会话落地页
	resp := api.do(http.MethodPost, "/api/v1/auth/sign-up", "", gin.H{"email": "Asha@Example.com", "password": "secret123"})
	if resp.StatusCode != 0 {
		t.Fatalf("sign up failed: %+v", resp)
	}
	customerToken, _ := resp.Data["token"].(string)
	if resp.Data["landing"] != "/customer" {
		t.Fatalf("customer landing want /customer got %v", resp.Data["landing"])
	}

	resp = api.do(http.MethodGet, "/api/v1/auth/session", customerToken, nil)
	if resp.StatusCode != 0 || resp.Data["authenticated"] != true {
		t.Fatalf("session should be authenticated: %+v", resp)
	}

	// 资料不完整时禁止下单
	parcelBody := gin.H{"from_pincode": "380001", "to_pincode": "380099", "parcel_type": "document", "weight": 2}
	resp = api.do(http.MethodPost, "/api/v1/customer/parcels", customerToken, parcelBody)
	if resp.StatusCode != 400 || resp.Data["redirect"] != "/customer/profile" {
		t.Fatalf("incomplete profile should redirect to profile: %+v", resp)
	}

	resp = api.do(http.MethodPut, "/api/v1/customer/profile", customerToken, gin.H{
		"name": "Asha Patel", "phone": "9800000000", "address": "12 Relief Road", "pincode": "380001",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("update profile failed: %+v", resp)
	}

	resp = api.do(http.MethodPost, "/api/v1/customer/parcels", customerToken, parcelBody)
	if resp.StatusCode != 0 {
		t.Fatalf("create parcel failed: %+v", resp)
	}
	trackingCode, _ := resp.Data["tracking_code"].(string)
	if !strings.HasPrefix(trackingCode, "GCS") {
		t.Fatalf("unexpected tracking code: %q", trackingCode)
	}
	parcelID := uint(resp.Data["id"].(float64))

	// 客户不可访问管理端
	resp = api.do(http.MethodGet, "/api/v1/admin/parcels", customerToken, nil)
	if resp.StatusCode != 403 {
		t.Fatalf("customer on admin route want 403 got %+v", resp)
	}

	// 管理员创建派送员
	adminToken := api.signIn("admin@gcs.test", "Admin@123")
	resp = api.do(http.MethodPost, "/api/v1/admin/dispatchers", adminToken, gin.H{
		"email": "north@gcs.test", "password": "Disp@123", "pincodes": "380001, 380002", "name": "Kiran",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("create dispatcher failed: %+v", resp)
	}

	// 派送员处理发件队列
	dispatcherToken := api.signIn("north@gcs.test", "Disp@123")
	resp = api.do(http.MethodGet, "/api/v1/dispatcher/queues", dispatcherToken, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("get queues failed: %+v", resp)
	}
	sent, _ := resp.Data["sent"].([]interface{})
	if len(sent) != 1 {
		t.Fatalf("sent queue want 1 got %d", len(sent))
	}

	statusPath := fmt.Sprintf("/api/v1/dispatcher/parcels/%d/status", parcelID)
	resp = api.do(http.MethodPatch, statusPath, dispatcherToken, gin.H{"status": "shipped"})
	if resp.StatusCode != 400 {
		t.Fatalf("skipping a step want 400 got %+v", resp)
	}
	resp = api.do(http.MethodPatch, statusPath, dispatcherToken, gin.H{"status": "paid"})
	if resp.StatusCode != 0 || resp.Data["status"] != "paid" {
		t.Fatalf("mark paid failed: %+v", resp)
	}

	// 公开查询
	resp = api.do(http.MethodGet, "/api/v1/public/track/"+strings.ToLower(trackingCode), "", nil)
	if resp.StatusCode != 0 || resp.Data["found"] != true {
		t.Fatalf("tracking should find parcel: %+v", resp)
	}
	resp = api.do(http.MethodGet, "/api/v1/public/track/GCS404", "", nil)
	if resp.StatusCode != 0 || resp.Data["found"] != false {
		t.Fatalf("unknown tracking code should be not found state: %+v", resp)
	}

	// 注销后令牌失效
	resp = api.do(http.MethodPost, "/api/v1/auth/sign-out", customerToken, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("sign out failed: %+v", resp)
	}
	resp = api.do(http.MethodGet, "/api/v1/customer/parcels", customerToken, nil)
	if resp.StatusCode != 401 {
		t.Fatalf("revoked token want 401 got %+v", resp)
	}
	resp = api.do(http.MethodGet, "/api/v1/auth/session", customerToken, nil)
	if resp.Data["authenticated"] != false {
		t.Fatalf("revoked session should be anonymous: %+v", resp)
	}
}

func TestRouterHealthAndNoRoute(t *testing.T) {
	api := newCourierAPI(t)

	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("health check failed: %d %s", w.Code, w.Body.String())
	}

	resp := api.do(http.MethodGet, "/api/v1/nowhere", "", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown route want 404 got %+v", resp)
	}
}
