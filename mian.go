package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KNICEX/stock-notify/internal/cli"
	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/KNICEX/stock-notify/internal/service/monitor"
	"github.com/KNICEX/stock-notify/ioc"
	"github.com/samber/lo"
)

func build(assets []entity.Asset, opts cli.Options) (cli.Runtime, error) {
	settings, err := ioc.InitSettings()
	if err != nil {
		return cli.Runtime{}, err
	}
	zl, err := ioc.InitLogger(settings.LogLevel)
	if err != nil {
		return cli.Runtime{}, err
	}
	logger := zl.Sugar()

	quoteSvc := ioc.InitQuoteService(settings, logger)
	notifier := ioc.InitNotifier(settings, opts.DryRun, os.Stdout, logger)

	bandMonitor := monitor.NewPriceBandMonitor(quoteSvc,
		monitor.WithNotifier(notifier),
		monitor.WithLogger(logger),
		monitor.WithDelay(settings.ScanDelay),
		monitor.WithContinueOnError(opts.KeepGoing),
	)
	task := monitor.NewPriceBandTask(bandMonitor, assets, logger, func(ctx context.Context, asset entity.Asset) bool {
		return lo.Contains(opts.Skip, asset.Symbol)
	})

	return cli.Runtime{
		Task:   task,
		Logger: logger,
		Cleanup: func() {
			_ = zl.Sync()
		},
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Build:  build,
	}
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
