package repository

import "time"

// ParcelListFilter 查询包裹列表的过滤条件
type ParcelListFilter struct {
	Page         int
	PageSize     int
	CustomerID   uint
	Status       string
	Keyword      string // 运单号或邮编模糊匹配
	FromPincodes []string
	ToPincodes   []string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// UserLoginLogListFilter 登录日志查询条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
