package public

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if rid, ok := c.Get("request_id"); ok {
		if value, ok := rid.(string); ok {
			return value
		}
	}
	return ""
}
