package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gcs-courier/internal/cache"
	"github.com/gcs-courier/internal/config"
	adminhandlers "github.com/gcs-courier/internal/http/handlers/admin"
	customerhandlers "github.com/gcs-courier/internal/http/handlers/customer"
	dispatcherhandlers "github.com/gcs-courier/internal/http/handlers/dispatcher"
	publichandlers "github.com/gcs-courier/internal/http/handlers/public"
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/metrics"
	"github.com/gcs-courier/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按角色分组）
	publicHandler := publichandlers.New(c)
	customerHandler := customerhandlers.New(c)
	dispatcherHandler := dispatcherhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gcs"
	}
	redisClient := cache.Client()
	signInRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:sign_in", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_rate_limited",
	}
	signUpRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:sign_up", redisPrefix),
		WindowSeconds: cfg.Security.SignUpLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SignUpLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.SignUpLimit.BlockSeconds,
		MessageKey:    "error.sign_up_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware())

	apiV1 := r.Group("/api/v1")
	{
		// 会话接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/sign-up", RateLimitMiddleware(redisClient, signUpRule, KeyByIP), publicHandler.SignUp)
			auth.POST("/sign-in", RateLimitMiddleware(redisClient, signInRule, KeyByIPAndJSONField("email")), publicHandler.SignIn)
			auth.POST("/sign-out", SessionAuthMiddleware(c.SessionService), publicHandler.SignOut)
			auth.GET("/session", OptionalSessionMiddleware(c.SessionService), publicHandler.GetSession)
		}

		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/track/:tracking_code", publicHandler.TrackParcel)
		}

		// 客户接口
		customer := apiV1.Group("/customer")
		customer.Use(SessionAuthMiddleware(c.SessionService), RoleRBACMiddleware(c.AuthzService))
		{
			customer.GET("/profile", customerHandler.GetProfile)
			customer.PUT("/profile", customerHandler.UpdateProfile)
			customer.GET("/parcels", customerHandler.ListParcels)
			customer.POST("/parcels", customerHandler.CreateParcel)
			customer.GET("/parcels/:id", customerHandler.GetParcel)
		}

		// 派送员接口
		dispatcher := apiV1.Group("/dispatcher")
		dispatcher.Use(SessionAuthMiddleware(c.SessionService), RoleRBACMiddleware(c.AuthzService))
		{
			dispatcher.GET("/queues", dispatcherHandler.GetQueues)
			dispatcher.GET("/parcels/:id", dispatcherHandler.GetParcel)
			dispatcher.PATCH("/parcels/:id/status", dispatcherHandler.UpdateParcelStatus)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(SessionAuthMiddleware(c.SessionService), RoleRBACMiddleware(c.AuthzService))
		{
			admin.GET("/parcels", adminHandler.ListParcels)
			admin.GET("/parcels/overview", adminHandler.GetOverview)
			admin.GET("/parcels/:id/history", adminHandler.GetParcelHistory)
			admin.GET("/dispatchers", adminHandler.ListDispatchers)
			admin.POST("/dispatchers", adminHandler.CreateDispatcher)
			admin.GET("/user-login-logs", adminHandler.GetUserLoginLogs)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		handlershared.RespondError(c, response.CodeNotFound, "error.route_not_found", nil)
	})

	return r
}
