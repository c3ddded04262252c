package admin

import (
	"time"

	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

func requirePrincipal(c *gin.Context) (service.Principal, bool) {
	return handlershared.RequirePrincipal(c)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
