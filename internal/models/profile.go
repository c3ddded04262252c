package models

import (
	"strings"
	"time"
)

// Profile 客户资料表（主键与账号ID一致）
type Profile struct {
	ID        uint      `gorm:"primarykey;autoIncrement:false" json:"id"` // 账号ID
	Name      string    `gorm:"type:varchar(128)" json:"name"`            // 姓名
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`            // 电话
	Address   string    `gorm:"type:text" json:"address"`                 // 地址
	City      string    `gorm:"type:varchar(64)" json:"city"`             // 城市
	State     string    `gorm:"type:varchar(64)" json:"state"`            // 省/州
	Pincode   string    `gorm:"type:varchar(16);index" json:"pincode"`    // 邮编
	CreatedAt time.Time `json:"created_at"`                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                               // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// MissingFields 返回下单前仍需填写的字段
func (p *Profile) MissingFields() []string {
	if p == nil {
		return []string{"name", "phone", "address", "pincode"}
	}
	missing := make([]string, 0, 4)
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(p.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(p.Pincode) == "" {
		missing = append(missing, "pincode")
	}
	return missing
}

// IsComplete 资料是否完整
func (p *Profile) IsComplete() bool {
	return len(p.MissingFields()) == 0
}
