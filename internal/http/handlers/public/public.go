package public

import (
	"time"

	"github.com/gcs-courier/internal/cache"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/i18n"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取公开配置：包裹类型单价、状态流转与验证码设置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := map[string]interface{}{
		"languages":     i18n.SupportedLocales(),
		"parcel_types":  service.ParcelTypeRates(),
		"status_flow":   service.ParcelStatusFlow(),
		"tracking_hint": h.trackingPrefix(),
	}
	if h.CaptchaService != nil {
		data["captcha"] = h.CaptchaService.GetPublicSetting()
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

func (h *Handler) trackingPrefix() string {
	if h.Config == nil || h.Config.Tracking.Prefix == "" {
		return constants.TrackingCodePrefix
	}
	return service.NormalizeTrackingCode(h.Config.Tracking.Prefix)
}
