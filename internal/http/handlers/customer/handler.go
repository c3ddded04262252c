package customer

import "github.com/gcs-courier/internal/provider"

// Handler 客户端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建客户处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
