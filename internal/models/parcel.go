package models

import "time"

// Parcel 包裹表
// 说明：包裹不可删除，运单号与运费在创建时确定后不再变更。
type Parcel struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                       // 主键
	TrackingCode string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"tracking_code"` // 运单号
	CustomerID   uint      `gorm:"index;not null" json:"customer_id"`                          // 下单客户ID
	FromPincode  string    `gorm:"type:varchar(16);index;not null" json:"from_pincode"`        // 始发邮编
	ToPincode    string    `gorm:"type:varchar(16);index;not null" json:"to_pincode"`          // 目的邮编
	ParcelType   string    `gorm:"type:varchar(32);not null" json:"parcel_type"`               // 包裹类型
	Weight       Weight    `gorm:"type:decimal(10,3);not null" json:"weight"`                  // 重量（千克）
	Description  string    `gorm:"type:text" json:"description"`                               // 描述
	Cost         Money     `gorm:"type:decimal(20,2);not null" json:"cost"`                    // 运费
	Status       string    `gorm:"type:varchar(32);index;not null" json:"status"`              // 状态
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                 // 更新时间
}

// TableName 指定表名
func (Parcel) TableName() string {
	return "parcels"
}
