package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListParcels 全部包裹，按创建时间倒序
func (h *Handler) ListParcels(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	var customerID uint
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		customerID = uint(parsed)
	}

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	parcels, total, err := h.ParcelService.ListForAdmin(principal, repository.ParcelListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		CustomerID:  customerID,
		Keyword:     strings.TrimSpace(c.Query("keyword")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondAdminParcelError(c, err)
		return
	}
	response.SuccessWithPage(c, parcels, response.BuildPagination(page, pageSize, total))
}

// GetOverview 按状态统计与当日新增
func (h *Handler) GetOverview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	overview, err := h.ParcelService.OverviewForAdmin(principal)
	if err != nil {
		respondAdminParcelError(c, err)
		return
	}
	response.Success(c, overview)
}

// GetParcelHistory 包裹状态变更记录
func (h *Handler) GetParcelHistory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	parcelID, ok := handlershared.ParseUintParam(c, "id", "error.parcel_id_invalid")
	if !ok {
		return
	}
	logs, err := h.ParcelService.HistoryForAdmin(principal, parcelID)
	if err != nil {
		respondAdminParcelError(c, err)
		return
	}
	response.Success(c, logs)
}
