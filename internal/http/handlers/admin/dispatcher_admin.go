package admin

import (
	"encoding/json"
	"strings"

	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDispatcherRequest 创建派送员请求
// pincodes 可为字符串数组或逗号分隔字符串
type CreateDispatcherRequest struct {
	Email    string          `json:"email" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Pincodes json.RawMessage `json:"pincodes"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
}

// CreateDispatcher 创建派送员账号
func (h *Handler) CreateDispatcher(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req CreateDispatcherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	pincodes, err := decodePincodes(req.Pincodes)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.DispatcherAdminService.CreateDispatcher(principal, service.CreateDispatcherInput{
		Email:    req.Email,
		Password: req.Password,
		Pincodes: pincodes,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		respondDispatcherCreateError(c, err)
		return
	}
	response.Success(c, view)
}

// ListDispatchers 派送员列表
func (h *Handler) ListDispatchers(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	views, total, err := h.DispatcherAdminService.ListDispatchers(principal, page, pageSize)
	if err != nil {
		respondAdminParcelError(c, err)
		return
	}
	response.SuccessWithPage(c, views, response.BuildPagination(page, pageSize, total))
}

func decodePincodes(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, err
	}
	return []string{text}, nil
}
