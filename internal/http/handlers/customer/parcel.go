package customer

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateParcelRequest 下单请求，重量可为数字或字符串
type CreateParcelRequest struct {
	FromPincode string          `json:"from_pincode"`
	ToPincode   string          `json:"to_pincode"`
	ParcelType  string          `json:"parcel_type" binding:"required"`
	Weight      decimal.Decimal `json:"weight"`
	Description string          `json:"description"`
}

// CreateParcel 客户下单，资料不完整时引导至资料页
func (h *Handler) CreateParcel(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	var req CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	parcel, err := h.ParcelService.CreateParcel(c.Request.Context(), principal, service.CreateParcelInput{
		FromPincode: req.FromPincode,
		ToPincode:   req.ToPincode,
		ParcelType:  req.ParcelType,
		Weight:      req.Weight,
		Description: req.Description,
	})
	if err != nil {
		respondParcelError(c, err)
		return
	}
	response.Success(c, parcel)
}

// ListParcels 当前客户的包裹列表
func (h *Handler) ListParcels(c *gin.Context) {
	principal, ok := handlershared.RequirePrincipal(c)
	if !ok {
		return
	}
	parcels, err := h.ParcelService.ListCustomerParcels(principal)
	if err != nil {
		respondParcelError(c, err)
		return
	}
	response.Success(c, parcels)
}

// GetParcel 包裹详情与时间线
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
		respondParcelError(c, err)
		return
	}
	response.Success(c, detail)
}
