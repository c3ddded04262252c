package customer

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertProfileRequest 资料保存请求
type UpsertProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// GetProfile 获取当前客户资料及完整度
func (h *Handler) GetProfile(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	view, err := h.ProfileService.Get(principal.UserID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateProfile 保存当前客户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.ProfileService.Upsert(principal.UserID, service.UpsertProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, view)
}
