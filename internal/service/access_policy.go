package service

import (
	"time"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"
)

// Principal 当前请求的身份
// 所有处理器都通过它判断对包裹与派送员的访问权限
type Principal struct {
	UserID   uint
	Role     string
	Pincodes []string
}

// AnonymousPrincipal 未登录访客
func AnonymousPrincipal() Principal {
	return Principal{Role: constants.RoleAnonymous}
}

// IsAnonymous 是否未登录
func (p Principal) IsAnonymous() bool {
	return p.UserID == 0 || p.Role == "" || p.Role == constants.RoleAnonymous
}

func (p Principal) hasPincode(code string) bool {
	for _, item := range p.Pincodes {
		if item == code {
			return true
		}
	}
	return false
}

// Directions 派送员对该包裹拥有的处理方向
// 始发邮编命中为发件方，目的邮编命中为收件方，可同时拥有
func (p Principal) Directions(parcel *models.Parcel) []string {
	if parcel == nil || p.Role != constants.RoleDispatcher {
		return nil
	}
	directions := make([]string, 0, 2)
	if p.hasPincode(parcel.FromPincode) {
		directions = append(directions, constants.DirectionSender)
	}
	if p.hasPincode(parcel.ToPincode) {
		directions = append(directions, constants.DirectionReceiver)
	}
	return directions
}

// CanViewParcel 是否可查看包裹完整信息
func (p Principal) CanViewParcel(parcel *models.Parcel) bool {
	if parcel == nil || p.IsAnonymous() {
		return false
	}
	switch p.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleCustomer:
		return parcel.CustomerID == p.UserID
	case constants.RoleDispatcher:
		return len(p.Directions(parcel)) > 0
	default:
		return false
	}
}

// CanMutateParcelStatus 是否可变更包裹状态（仅限区域命中的派送员）
func (p Principal) CanMutateParcelStatus(parcel *models.Parcel) bool {
	if parcel == nil || p.IsAnonymous() || p.Role != constants.RoleDispatcher {
		return false
	}
	return len(p.Directions(parcel)) > 0
}

// CanListAllParcels 是否可查看全部包裹
func (p Principal) CanListAllParcels() bool {
	return !p.IsAnonymous() && p.Role == constants.RoleAdmin
}

// CanManageDispatchers 是否可创建派送员
func (p Principal) CanManageDispatchers() bool {
	return !p.IsAnonymous() && p.Role == constants.RoleAdmin
}

// CanCreateParcel 是否可下单
func (p Principal) CanCreateParcel() bool {
	return !p.IsAnonymous() && p.Role == constants.RoleCustomer
}

// PublicParcelView 匿名查询可见字段
// 不包含客户、运费与描述
type PublicParcelView struct {
	TrackingCode string        `json:"tracking_code"`
	FromPincode  string        `json:"from_pincode"`
	ToPincode    string        `json:"to_pincode"`
	ParcelType   string        `json:"parcel_type"`
	Weight       models.Weight `json:"weight"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewPublicParcelView 裁剪包裹为公开视图
func NewPublicParcelView(parcel *models.Parcel) PublicParcelView {
	if parcel == nil {
		return PublicParcelView{}
	}
	return PublicParcelView{
		TrackingCode: parcel.TrackingCode,
		FromPincode:  parcel.FromPincode,
		ToPincode:    parcel.ToPincode,
		ParcelType:   parcel.ParcelType,
		Weight:       parcel.Weight,
		Status:       parcel.Status,
		CreatedAt:    parcel.CreatedAt,
	}
}
