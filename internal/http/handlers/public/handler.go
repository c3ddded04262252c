package public

import "github.com/gcs-courier/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器用于会话（/auth）与匿名查询（/public）API。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
