package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// openWithSystem hands path to the desktop's default handler and returns
// once the handler has been started.
func openWithSystem(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go cmd.Wait() //nolint:errcheck // reaps the handler; its exit status is not ours
	return nil
}
