package models

import "time"

// DispatcherPincode 派送员负责的邮编区域
type DispatcherPincode struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                              // 主键
	DispatcherID uint      `gorm:"not null;uniqueIndex:idx_dispatcher_pincode" json:"dispatcher_id"`                  // 派送员账号ID
	Pincode      string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_dispatcher_pincode;index" json:"pincode"` // 邮编
	CreatedAt    time.Time `json:"created_at"`                                                                        // 创建时间
}

// TableName 指定表名
func (DispatcherPincode) TableName() string {
	return "dispatcher_pincodes"
}
