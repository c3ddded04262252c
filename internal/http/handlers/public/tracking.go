package public

import (
	"github.com/gcs-courier/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TrackParcel 匿名按运单号查询，未找到时返回 found=false
func (h *Handler) TrackParcel(c *gin.Context) {
	result, err := h.ParcelService.Track(c.Request.Context(), c.Param("tracking_code"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, result)
}
