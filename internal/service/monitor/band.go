package monitor

import (
	"context"
	"time"

	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/KNICEX/stock-notify/internal/service/quote"
	"github.com/KNICEX/stock-notify/pkg/decimalx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultDelay = 5 * time.Second

var _ PriceBandService = (*PriceBandMonitor)(nil)

// PriceBandMonitor 逐个查询标的价格, 触及区间边界时发送通知
type PriceBandMonitor struct {
	quoteSvc quote.Service
	notifier Notifier
	logger   *zap.SugaredLogger

	delay           time.Duration
	continueOnError bool
	sleep           func(ctx context.Context, d time.Duration) error
}

type Option func(m *PriceBandMonitor)

func WithNotifier(notifier Notifier) Option {
	return func(m *PriceBandMonitor) {
		m.notifier = notifier
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *PriceBandMonitor) {
		m.logger = logger
	}
}

// WithDelay sets the pause between two assets.
func WithDelay(d time.Duration) Option {
	return func(m *PriceBandMonitor) {
		m.delay = d
	}
}

// WithContinueOnError keeps scanning the remaining assets after a fetch
// failure instead of stopping the scan.
func WithContinueOnError(v bool) Option {
	return func(m *PriceBandMonitor) {
		m.continueOnError = v
	}
}

func NewPriceBandMonitor(quoteSvc quote.Service, opts ...Option) *PriceBandMonitor {
	m := &PriceBandMonitor{
		quoteSvc: quoteSvc,
		notifier: NewConsoleNotifier(nil),
		logger:   zap.NewNop().Sugar(),
		delay:    DefaultDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scan checks assets one by one in order. A fetch failure is reported to the
// investor and, unless WithContinueOnError is set, ends the scan. The returned
// error is only non-nil when ctx is done.
func (m *PriceBandMonitor) Scan(ctx context.Context, assets []entity.Asset) (Report, error) {
	var report Report
	for i, asset := range assets {
		if i > 0 {
			if err := m.sleep(ctx, m.delay); err != nil {
				return report, err
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if asset.Inverted() {
			m.logger.Warnw("price band is inverted", "symbol", asset.Symbol, "min", asset.Min, "max", asset.Max)
		}
		m.logger.Infow("query price", "symbol", asset.Symbol)
		report.Checked = append(report.Checked, asset.Symbol)

		text, price, err := m.price(ctx, asset.Symbol)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			fe := quote.AsFetchError(asset.Symbol, err)
			m.logger.Errorw("failed to get price", "symbol", asset.Symbol, "error", fe.Err)
			report.Failures = append(report.Failures, fe)
			m.emit(ctx, &report, Signal{Type: FetchFailed, Symbol: asset.Symbol})
			if !m.continueOnError {
				report.Aborted = true
				return report, nil
			}
			continue
		}

		typ, ok := Evaluate(asset, price)
		if !ok {
			m.logger.Infow("price within band", "symbol", asset.Symbol, "price", text)
			continue
		}
		m.emit(ctx, &report, Signal{Type: typ, Symbol: asset.Symbol, Price: text})
	}
	return report, nil
}

func (m *PriceBandMonitor) price(ctx context.Context, symbol string) (string, decimal.Decimal, error) {
	text, err := m.quoteSvc.Price(ctx, symbol)
	if err != nil {
		return "", decimal.Zero, err
	}
	price, err := decimalx.ParsePrice(text)
	if err != nil {
		return "", decimal.Zero, &quote.FetchError{
			Symbol: symbol,
			Err:    errors.Wrapf(quote.ErrUnparsablePrice, "%q: %v", text, err),
		}
	}
	return text, price, nil
}

// emit 通知失败只记录日志, 不影响扫描
func (m *PriceBandMonitor) emit(ctx context.Context, report *Report, signal Signal) {
	report.Signals = append(report.Signals, signal)
	m.logger.Infow("price signal", "symbol", signal.Symbol, "type", signal.Type, "price", signal.Price)
	if err := m.notifier.Notify(ctx, signal.Message()); err != nil {
		m.logger.Errorw("price band monitor notify signal err", "error", err, "signal", signal)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
