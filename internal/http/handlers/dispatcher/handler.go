package dispatcher

import "github.com/gcs-courier/internal/provider"

// Handler 派送员接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建派送员处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
