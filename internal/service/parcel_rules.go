package service

import (
	"strings"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"

	"github.com/shopspring/decimal"
)

// ParcelTypeRate 包裹类型及单价（每千克）
type ParcelTypeRate struct {
	Type     string       `json:"type"`
	BaseRate models.Money `json:"base_rate"`
}

var parcelTypeOrder = []string{
	constants.ParcelTypeDocument,
	constants.ParcelTypeSmallPackage,
	constants.ParcelTypeMediumPackage,
	constants.ParcelTypeLargePackage,
	constants.ParcelTypeFragile,
}

var parcelBaseRates = map[string]int64{
	constants.ParcelTypeDocument:      50,
	constants.ParcelTypeSmallPackage:  100,
	constants.ParcelTypeMediumPackage: 200,
	constants.ParcelTypeLargePackage:  400,
	constants.ParcelTypeFragile:       300,
}

// parcelStatusFlow 状态按流转顺序排列
var parcelStatusFlow = []string{
	constants.ParcelStatusCreated,
	constants.ParcelStatusPaid,
	constants.ParcelStatusShipped,
	constants.ParcelStatusDelivered,
}

var (
	defaultParcelWeight = decimal.NewFromInt(1)
	minParcelWeight     = decimal.RequireFromString("0.1")
	maxParcelWeight     = decimal.RequireFromString("9999999.999")
)

// parcelWeightScale 与 parcels.weight 列 decimal(10,3) 一致
const parcelWeightScale = 3

// ParcelTypeRates 按固定顺序返回全部包裹类型单价
func ParcelTypeRates() []ParcelTypeRate {
	rates := make([]ParcelTypeRate, 0, len(parcelTypeOrder))
	for _, parcelType := range parcelTypeOrder {
		rates = append(rates, ParcelTypeRate{
			Type:     parcelType,
			BaseRate: models.NewMoneyFromDecimal(decimal.NewFromInt(parcelBaseRates[parcelType])),
		})
	}
	return rates
}

// ParcelStatusFlow 返回状态流转顺序
func ParcelStatusFlow() []string {
	flow := make([]string, len(parcelStatusFlow))
	copy(flow, parcelStatusFlow)
	return flow
}

// NormalizeParcelType 统一包裹类型格式
func NormalizeParcelType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ComputeCost 运费 = 类型单价 × 重量
func ComputeCost(parcelType string, weight decimal.Decimal) (models.Money, error) {
	rate, ok := parcelBaseRates[NormalizeParcelType(parcelType)]
	if !ok {
		return models.Money{}, ErrParcelTypeInvalid
	}
	if !weight.IsPositive() {
		return models.Money{}, ErrParcelWeightInvalid
	}
	return models.NewMoneyFromDecimal(decimal.NewFromInt(rate).Mul(weight)), nil
}

// ResolveParcelWeight 未填写或为 0 时取默认 1 千克，其余按入库精度取整后校验范围
func ResolveParcelWeight(weight decimal.Decimal) (decimal.Decimal, error) {
	if weight.IsZero() {
		return defaultParcelWeight, nil
	}
	weight = weight.Round(parcelWeightScale)
	if weight.LessThan(minParcelWeight) || weight.GreaterThan(maxParcelWeight) {
		return decimal.Zero, ErrParcelWeightInvalid
	}
	return weight, nil
}

// IsValidParcelStatus 是否为已知状态
func IsValidParcelStatus(status string) bool {
	return parcelStatusIndex(status) >= 0
}

func parcelStatusIndex(status string) int {
	normalized := strings.ToLower(strings.TrimSpace(status))
	for i, item := range parcelStatusFlow {
		if item == normalized {
			return i
		}
	}
	return -1
}

// NextStatus 计算某一方向上的下一个状态
// 发件方：created → paid → shipped，到 shipped 为止
// 收件方：仅 shipped → delivered
func NextStatus(current, direction string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(current))
	switch direction {
	case constants.DirectionSender:
		switch normalized {
		case constants.ParcelStatusCreated:
			return constants.ParcelStatusPaid, true
		case constants.ParcelStatusPaid:
			return constants.ParcelStatusShipped, true
		}
	case constants.DirectionReceiver:
		if normalized == constants.ParcelStatusShipped {
			return constants.ParcelStatusDelivered, true
		}
	}
	return "", false
}

// TimelineStep 运单时间线节点
type TimelineStep struct {
	Status    string `json:"status"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// ProjectTimeline 根据当前状态推导时间线，不落库
func ProjectTimeline(status string) []TimelineStep {
	current := parcelStatusIndex(status)
	steps := make([]TimelineStep, 0, len(parcelStatusFlow))
	for i, item := range parcelStatusFlow {
		steps = append(steps, TimelineStep{
			Status:    item,
			Label:     statusLabel(item),
			Completed: current >= 0 && i <= current,
			Active:    i == current,
		})
	}
	return steps
}

func statusLabel(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
