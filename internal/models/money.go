package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	d, err := parseDecimalJSON(b)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// Weight 包裹重量（千克，保留 3 位小数）
type Weight struct {
	decimal.Decimal
}

// NewWeight 从 decimal 创建重量
func NewWeight(value decimal.Decimal) Weight {
	return Weight{Decimal: value.Round(3)}
}

// MarshalJSON 输出为数字
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.Decimal.Round(3).String()), nil
}

// UnmarshalJSON 解析重量（字符串或数字）
func (w *Weight) UnmarshalJSON(b []byte) error {
	d, err := parseDecimalJSON(b)
	if err != nil {
		return err
	}
	w.Decimal = d.Round(3)
	return nil
}

// Value 用于数据库写入
func (w Weight) Value() (driver.Value, error) {
	return w.Decimal.Round(3).Value()
}

// Scan 用于数据库读取
func (w *Weight) Scan(value interface{}) error {
	if err := w.Decimal.Scan(value); err != nil {
		return err
	}
	w.Decimal = w.Decimal.Round(3)
	return nil
}

func parseDecimalJSON(b []byte) (decimal.Decimal, error) {
	if len(b) == 0 || string(b) == "null" {
		return decimal.Zero, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero, err
		}
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}
	return decimal.NewFromString(string(b))
}
