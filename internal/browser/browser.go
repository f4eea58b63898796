// Package browser launches the system web browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/raphi011/arbor/internal/log"
)

// Open launches the default browser for url, detached from the arbor
// process. The launcher command is platform-specific.
func Open(ctx context.Context, url string) error {
	name, args := launcher(url)
	if name == "" {
		return fmt.Errorf("no browser launcher for %s", runtime.GOOS)
	}

	log.FromContext(ctx).Command(name, args...)

	c := exec.Command(name, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	// Detach: the browser outlives the command, don't wait for it.
	go func() { _ = c.Wait() }()
	return nil
}

func launcher(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", url}
	case "linux":
		return "xdg-open", []string{url}
	default:
		return "", nil
	}
}
