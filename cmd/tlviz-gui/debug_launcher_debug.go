//go:build debug

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oukeidos/tlviz/internal/runner"
)

const (
	debugFailureToken = "debug_failure_8c41d2e7b9a35f06"
	debugSuccessToken = "debug_success_8c41d2e7b9a35f06"
)

// wrapLauncher replaces the generator with a scripted one when the input
// path carries a debug token, so the dialogs can be exercised without Python.
func wrapLauncher(l runner.Launcher) runner.Launcher {
	return debugLauncher{next: l}
}

type debugLauncher struct {
	next runner.Launcher
}

func (d debugLauncher) Launch(ctx context.Context, argv []string, dir string) (runner.Process, error) {
	if len(argv) < 3 {
		return d.next.Launch(ctx, argv, dir)
	}
	lower := strings.ToLower(argv[2])
	switch {
	case strings.Contains(lower, debugFailureToken):
		return newDebugProcess(ctx, 5, 1), nil
	case strings.Contains(lower, debugSuccessToken):
		return newDebugProcess(ctx, 20, 0), nil
	default:
		return d.next.Launch(ctx, argv, dir)
	}
}

type debugProcess struct {
	out  *io.PipeReader
	done chan struct{}
	code int
	err  error
}

func newDebugProcess(ctx context.Context, steps, code int) *debugProcess {
	pr, pw := io.Pipe()
	p := &debugProcess{out: pr, done: make(chan struct{}), code: code}
	go func() {
		defer close(p.done)
		defer pw.Close()
		for i := 1; i <= steps; i++ {
			select {
			case <-ctx.Done():
				p.code, p.err = -1, ctx.Err()
				return
			case <-time.After(200 * time.Millisecond):
			}
			fmt.Fprintf(pw, "debug step %d/%d\n", i, steps)
		}
	}()
	return p
}

func (p *debugProcess) Output() io.ReadCloser { return p.out }

func (p *debugProcess) Wait() (int, error) {
	<-p.done
	return p.code, p.err
}
