package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/KNICEX/stock-notify/internal/config"
	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/KNICEX/stock-notify/internal/schedule"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const Name = "stock-notify"

// set with -ldflags "-X github.com/KNICEX/stock-notify/internal/cli.Version=..."
var (
	Version = "1.0.0"
	License = "MIT"
)

// Options 命令行上除配置文件外的选项
type Options struct {
	DryRun    bool
	KeepGoing bool
	Skip      []string
}

// Runtime is what Build hands back: the task to run and its logger.
type Runtime struct {
	Task    schedule.Task
	Logger  *zap.SugaredLogger
	Cleanup func()
}

type BuildFunc func(assets []entity.Asset, opts Options) (Runtime, error)

type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Build  BuildFunc
}

// Run parses args (without the program name), runs the scan and returns the
// process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	var (
		opts                    Options
		help, version, license bool
	)
	fs := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVarP(&help, "help", "h", false, "show this help")
	fs.BoolVarP(&version, "version", "v", false, "print version")
	fs.BoolVar(&license, "license", false, "print license")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "print alerts instead of mailing them")
	fs.BoolVar(&opts.KeepGoing, "keep-going", false, "keep scanning after a price cannot be fetched")
	fs.StringSliceVar(&opts.Skip, "skip", nil, "comma separated symbols to leave out")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(a.Stderr, "invalid argument: %v\n", err)
		return 1
	}

	switch {
	case help:
		a.usage(a.Stdout, fs)
		return 0
	case version:
		fmt.Fprintln(a.Stdout, Version)
		return 0
	case license:
		fmt.Fprintln(a.Stdout, License)
		return 0
	}

	if fs.NArg() == 0 {
		a.usage(a.Stderr, fs)
		return 1
	}
	path := fs.Arg(0)
	if strings.HasPrefix(path, "-") {
		fmt.Fprintf(a.Stderr, "invalid argument: %s\n", path)
		return 1
	}

	assets, err := config.LoadAssets(path)
	if err != nil {
		fmt.Fprintln(a.Stderr, err)
		return 1
	}

	rt, err := a.Build(assets, opts)
	if err != nil {
		fmt.Fprintln(a.Stderr, err)
		return 1
	}
	if rt.Cleanup != nil {
		defer rt.Cleanup()
	}
	if rt.Logger == nil {
		rt.Logger = zap.NewNop().Sugar()
	}

	if err := schedule.Run(ctx, rt.Logger, rt.Task); err != nil {
		fmt.Fprintln(a.Stderr, err)
		return 1
	}
	return 0
}

func (a *App) usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [options] <config.json>\n\n", Name)
	fmt.Fprintln(w, "Check stock prices against the [min, max] band of each symbol in")
	fmt.Fprintln(w, "config.json and mail an alert when a band is crossed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: MAILGUN_DOMAIN, MAILGUN_KEY, INVESTOR (also read from ./.env)")
}
