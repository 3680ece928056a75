package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process is a started generator. Output yields stdout and stderr merged in
// write order; Wait blocks until exit.
type Process interface {
	Output() io.ReadCloser
	Wait() (exitCode int, err error)
}

// Launcher starts a process for argv in dir.
type Launcher interface {
	Launch(ctx context.Context, argv []string, dir string) (Process, error)
}

// ExecLauncher runs real processes via os/exec.
type ExecLauncher struct{}

func (ExecLauncher) Launch(ctx context.Context, argv []string, dir string) (Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	// A single pipe for both streams keeps the interleaving the child produced.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create output pipe: %w", err)
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy; ours must go or the reader never sees EOF.
	pw.Close()
	return &execProcess{cmd: cmd, out: pr}, nil
}

type execProcess struct {
	cmd *exec.Cmd
	out *os.File
}

func (p *execProcess) Output() io.ReadCloser { return p.out }

func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}
	return -1, err
}
