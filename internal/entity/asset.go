package entity

import "github.com/shopspring/decimal"

// Asset 监控标的及其买卖价格区间
type Asset struct {
	Symbol string
	Min    decimal.Decimal // 低于等于即买入
	Max    decimal.Decimal // 高于等于即卖出
}

// Inverted reports whether the band is upside down (min > max).
func (a Asset) Inverted() bool {
	return a.Min.GreaterThan(a.Max)
}
