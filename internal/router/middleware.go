package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gcs-courier/internal/authz"
	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/metrics"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
			"X-Locale",
			"Accept-Language",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// MetricsMiddleware 记录请求耗时与状态
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}
}

// SessionAuthMiddleware 会话鉴权中间件，未登录时返回 401 并引导至 /auth
func SessionAuthMiddleware(resolver service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, key := resolveIdentity(c, resolver)
		if identity == nil {
			handlershared.RespondErrorWithData(c, response.CodeUnauthorized, key, nil, gin.H{"redirect": constants.LandingAuth})
			c.Abort()
			return
		}
		handlershared.SetIdentity(c, identity)
		c.Next()
	}
}

// OptionalSessionMiddleware 可选会话中间件，令牌无效时按匿名处理
func OptionalSessionMiddleware(resolver service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) != "" {
			if identity, _ := resolveIdentity(c, resolver); identity != nil {
				handlershared.SetIdentity(c, identity)
			}
		}
		c.Next()
	}
}

// RoleRBACMiddleware 角色路由鉴权中间件，角色不符时返回 403 并引导至根路径
func RoleRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := handlershared.GetIdentity(c)
		if !ok {
			handlershared.RespondErrorWithData(c, response.CodeUnauthorized, "error.unauthorized", nil, gin.H{"redirect": constants.LandingAuth})
			c.Abort()
			return
		}
		if authzService == nil {
			logger.Errorw("role_rbac_service_unavailable")
			handlershared.RespondErrorWithData(c, response.CodeForbidden, "error.forbidden", nil, gin.H{"redirect": constants.LandingRoot})
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(identity.Role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("role_rbac_enforce_failed",
				"user_id", identity.UserID,
				"role", identity.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}
		if err != nil || !allowed {
			logger.Warnw("role_rbac_permission_denied",
				"user_id", identity.UserID,
				"role", identity.Role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			handlershared.RespondErrorWithData(c, response.CodeForbidden, "error.forbidden", nil, gin.H{
				"redirect": constants.LandingRoot,
				"landing":  identity.Landing(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveIdentity 解析 Bearer 令牌，失败时返回错误文案 key
func resolveIdentity(c *gin.Context, resolver service.IdentityResolver) (*service.Identity, string) {
	if resolver == nil {
		return nil, "error.jwt_secret_missing"
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, "error.auth_header_invalid"
	}

	identity, err := resolver.ResolveToken(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			return nil, "error.token_revoked"
		case errors.Is(err, service.ErrUserDisabled):
			return nil, "error.user_disabled"
		case errors.Is(err, service.ErrRoleMissing):
			return nil, "error.role_missing"
		default:
			return nil, "error.token_invalid"
		}
	}
	if identity == nil {
		return nil, "error.token_invalid"
	}
	return identity, ""
}
