package monitor

import (
	"context"

	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/KNICEX/stock-notify/internal/schedule"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type PriceBandTask struct {
	bandSvc     PriceBandService
	assets      []entity.Asset
	logger      *zap.SugaredLogger
	rejectAsset func(ctx context.Context, asset entity.Asset) bool // if true, reject
}

func NewPriceBandTask(bandSvc PriceBandService, assets []entity.Asset, logger *zap.SugaredLogger,
	reject ...func(ctx context.Context, asset entity.Asset) bool) schedule.Task {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	task := &PriceBandTask{
		bandSvc: bandSvc,
		assets:  assets,
		logger:  logger,
		rejectAsset: func(ctx context.Context, asset entity.Asset) bool {
			return false
		},
	}

	if len(reject) > 0 {
		task.rejectAsset = reject[0]
	}
	return task
}

func (t *PriceBandTask) Run(ctx context.Context) error {
	assets := lo.Reject(t.assets, func(item entity.Asset, index int) bool {
		return t.rejectAsset(ctx, item)
	})

	report, err := t.bandSvc.Scan(ctx, assets)
	t.logger.Infow("scan finished",
		"checked", report.Checked,
		"signals", lo.Map(report.Signals, func(item Signal, index int) string {
			return string(item.Type) + ":" + item.Symbol
		}),
		"failures", len(report.Failures),
		"aborted", report.Aborted,
	)
	return err
}

func (t *PriceBandTask) Name() string {
	return "price band scan task"
}
