package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTask struct {
	runs int
	err  error
}

func (f *fakeTask) Run(ctx context.Context) error {
	f.runs++
	return f.err
}

func (f *fakeTask) Name() string { return "fake" }

type harness struct {
	app     *App
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	task    *fakeTask
	builds  int
	assets  []entity.Asset
	opts    Options
	cleaned bool
}

func newHarness() *harness {
	h := &harness{
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
		task:   new(fakeTask),
	}
	h.app = &App{
		Stdout: h.stdout,
		Stderr: h.stderr,
		Build: func(assets []entity.Asset, opts Options) (Runtime, error) {
			h.builds++
			h.assets = assets
			h.opts = opts
			return Runtime{Task: h.task, Cleanup: func() { h.cleaned = true }}, nil
		},
	}
	return h
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApp_Informational(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: nil, wantCode: 1, wantStderr: "Usage:"},
		{name: "help", args: []string{"--help"}, wantCode: 0, wantStdout: "Usage:"},
		{name: "help short", args: []string{"-h"}, wantCode: 0, wantStdout: "--keep-going"},
		{name: "version", args: []string{"--version"}, wantCode: 0, wantStdout: Version},
		{name: "version short", args: []string{"-v"}, wantCode: 0, wantStdout: Version},
		{name: "license", args: []string{"--license"}, wantCode: 0, wantStdout: "MIT"},
		{name: "unknown flag", args: []string{"--bogus"}, wantCode: 1, wantStderr: "invalid argument"},
		{name: "unknown shorthand", args: []string{"-x"}, wantCode: 1, wantStderr: "invalid argument"},
		{name: "bare dash", args: []string{"-"}, wantCode: 1, wantStderr: "invalid argument"},
		{name: "dash after terminator", args: []string{"--", "-config.json"}, wantCode: 1, wantStderr: "invalid argument"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			code := h.app.Run(context.Background(), tc.args)

			assert.Equal(t, tc.wantCode, code)
			if tc.wantStdout != "" {
				assert.Contains(t, h.stdout.String(), tc.wantStdout)
			}
			if tc.wantStderr != "" {
				assert.Contains(t, h.stderr.String(), tc.wantStderr)
			}
			assert.Zero(t, h.builds)
		})
	}
}

func TestApp_ConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
		},
		{
			name: "invalid json",
			path: func(t *testing.T) string { return writeConfig(t, `{"2330": [500, `) },
		},
		{
			name: "bad band",
			path: func(t *testing.T) string { return writeConfig(t, `{"2330": "500-600"}`) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			code := h.app.Run(context.Background(), []string{tc.path(t)})

			assert.Equal(t, 1, code)
			assert.Contains(t, h.stderr.String(), "config")
			assert.Zero(t, h.builds)
		})
	}
}

func TestApp_Run(t *testing.T) {
	h := newHarness()
	path := writeConfig(t, `{"2330": [500, 600], "0050": [120, 150]}`)

	code := h.app.Run(context.Background(), []string{"--dry-run", "--keep-going", "--skip", "0050,2317", path})

	assert.Equal(t, 0, code)
	assert.Equal(t, 1, h.task.runs)
	assert.True(t, h.cleaned)
	require.Len(t, h.assets, 2)
	assert.Equal(t, "2330", h.assets[0].Symbol)
	assert.Equal(t, Options{DryRun: true, KeepGoing: true, Skip: []string{"0050", "2317"}}, h.opts)
}

func TestApp_BuildError(t *testing.T) {
	h := newHarness()
	h.app.Build = func(assets []entity.Asset, opts Options) (Runtime, error) {
		return Runtime{}, errors.New("invalid settings: SCAN_DELAY")
	}

	code := h.app.Run(context.Background(), []string{writeConfig(t, `{}`)})
	assert.Equal(t, 1, code)
	assert.Contains(t, h.stderr.String(), "SCAN_DELAY")
}

func TestApp_Interrupted(t *testing.T) {
	h := newHarness()
	h.task.err = context.Canceled

	code := h.app.Run(context.Background(), []string{writeConfig(t, `{"2330": [500, 600]}`)})
	assert.Equal(t, 1, code)
	assert.True(t, h.cleaned)
}
