package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Task interface {
	Run(ctx context.Context) error
	Name() string
}

// Run runs task once and logs how long it took.
func Run(ctx context.Context, logger *zap.SugaredLogger, task Task) error {
	start := time.Now()
	logger.Infow("task started", "task", task.Name())
	err := task.Run(ctx)
	if err != nil {
		logger.Errorw("task failed", "task", task.Name(), "elapsed", time.Since(start), "error", err)
		return err
	}
	logger.Infow("task finished", "task", task.Name(), "elapsed", time.Since(start))
	return nil
}
