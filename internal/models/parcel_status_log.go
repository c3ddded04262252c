package models

import "time"

// ParcelStatusLog 包裹状态变更记录
type ParcelStatusLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`                       // 主键
	ParcelID     uint      `gorm:"index;not null" json:"parcel_id"`            // 包裹ID
	FromStatus   string    `gorm:"type:varchar(32)" json:"from_status"`        // 变更前状态
	ToStatus     string    `gorm:"type:varchar(32);not null" json:"to_status"` // 变更后状态
	DispatcherID uint      `gorm:"index" json:"dispatcher_id"`                 // 操作派送员ID（创建记录为0）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                    // 变更时间
}

// TableName 指定表名
func (ParcelStatusLog) TableName() string {
	return "parcel_status_logs"
}
