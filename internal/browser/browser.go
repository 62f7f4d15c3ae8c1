package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open hands url to the platform opener and returns without waiting for it.
func Open(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	// Reap the opener in the background.
	go cmd.Wait()
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}

// Navigator opens links in the system browser.
type Navigator struct{}

func (Navigator) Open(url string) error {
	return Open(url)
}
