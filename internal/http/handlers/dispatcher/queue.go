package dispatcher

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"

	"github.com/gin-gonic/gin"
)

var dispatcherErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccessErrorRules,
	handlershared.ParcelErrorRules,
)

func respondDispatcherError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, dispatcherErrorRules, response.CodeInternal, "error.internal_error")
}

// UpdateStatusRequest 状态推进请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetQueues 发件与收件队列
func (h *Handler) GetQueues(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	queues, err := h.ParcelService.DispatcherQueues(c.Request.Context(), principal)
	if err != nil {
		respondDispatcherError(c, err)
		return
	}
	response.Success(c, queues)
}

// GetParcel 辖区内包裹详情及可执行动作
func (h *Handler) GetParcel(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	parcelID, ok := handlershared.ParseUintParam(c, "id", "error.parcel_id_invalid")
	if !ok {
		return
	}
	detail, err := h.ParcelService.GetParcelDetail(principal, parcelID)
	if err != nil {
		respondDispatcherError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateParcelStatus 推进包裹状态
func (h *Handler) UpdateParcelStatus(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	parcelID, ok := handlershared.ParseUintParam(c, "id", "error.parcel_id_invalid")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	parcel, err := h.ParcelService.ApplyStatusTransition(c.Request.Context(), principal, parcelID, req.Status)
	if err != nil {
		respondDispatcherError(c, err)
		return
	}
	response.Success(c, parcel)
}
