package models

import "time"

// UserRole 账号角色表
// 说明：每个账号只有一个角色，创建账号时写入，用户不可修改。
type UserRole struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`         // 账号ID
	Role      string    `gorm:"type:varchar(32);index;not null" json:"role"` // 角色（customer/dispatcher/admin）
	CreatedAt time.Time `json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (UserRole) TableName() string {
	return "user_roles"
}
