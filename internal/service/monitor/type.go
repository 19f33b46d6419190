package monitor

import (
	"context"
	"fmt"

	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/KNICEX/stock-notify/internal/service/quote"
	"github.com/shopspring/decimal"
)

type SignalType string

const (
	Buy         SignalType = "buy"
	Sell        SignalType = "sell"
	FetchFailed SignalType = "fetch_failed"
)

type Signal struct {
	Type   SignalType `json:"type"`
	Symbol string     `json:"symbol"`
	Price  string     `json:"price,omitempty"` // 页面上的原始价格文本
}

// Message 发给投资人的通知内容
type Message struct {
	Subject string
	Body    string
}

func (s Signal) Message() Message {
	switch s.Type {
	case Buy:
		text := fmt.Sprintf("Buy %s at %s", s.Symbol, s.Price)
		return Message{Subject: text, Body: text}
	case Sell:
		text := fmt.Sprintf("Sell %s at %s", s.Symbol, s.Price)
		return Message{Subject: text, Body: text}
	default:
		return Message{
			Subject: fmt.Sprintf("Unable to fetch stock data %s", s.Symbol),
			Body:    "Please check your app",
		}
	}
}

// Evaluate compares price with the asset's band. Buy wins when both apply.
func Evaluate(asset entity.Asset, price decimal.Decimal) (SignalType, bool) {
	if price.LessThanOrEqual(asset.Min) {
		return Buy, true
	}
	if asset.Max.LessThanOrEqual(price) {
		return Sell, true
	}
	return "", false
}

// Report 一次扫描的结果
type Report struct {
	Checked  []string
	Signals  []Signal
	Failures []*quote.FetchError
	// Aborted 因获取价格失败而提前结束扫描
	Aborted bool
}

// PriceBandService 价格区间监控服务接口
type PriceBandService interface {
	Scan(ctx context.Context, assets []entity.Asset) (Report, error)
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
