package shared

import (
	"strconv"
	"strings"

	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// IdentityContextKey 当前会话身份
	IdentityContextKey = "identity"
	// UserIDContextKey 当前用户 ID
	UserIDContextKey = "user_id"
)

// SetIdentity 写入已解析的身份。
func SetIdentity(c *gin.Context, identity *service.Identity) {
	if c == nil || identity == nil {
		return
	}
	c.Set(IdentityContextKey, identity)
	c.Set(UserIDContextKey, identity.UserID)
}

// GetIdentity 读取已解析的身份，未登录时返回 false。
func GetIdentity(c *gin.Context) (*service.Identity, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c.Get(IdentityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*service.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// RequirePrincipal 读取当前访问主体，缺失时直接返回 401。
func RequirePrincipal(c *gin.Context) (service.Principal, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		RespondErrorWithData(c, response.CodeUnauthorized, "error.unauthorized", nil, gin.H{"redirect": "/auth"})
		return service.AnonymousPrincipal(), false
	}
	return identity.Principal(), true
}

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// ParseUintParam 解析路径中的正整数 ID，失败时返回 400。
func ParseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(value), true
}
