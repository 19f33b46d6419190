package decimalx

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrNoPrice 报价页面在无成交时显示 "-" 之类的占位符
var ErrNoPrice = errors.New("no price")

// MustFromString 仅用于常量和测试数据, 解析失败直接 panic
func MustFromString(s string) decimal.Decimal {
	d, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParsePrice parses a price as displayed on a quote page, e.g. "1,025.00".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.Trim(s, "-") == "" {
		return decimal.Zero, ErrNoPrice
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse price %q", s)
	}
	return price, nil
}
