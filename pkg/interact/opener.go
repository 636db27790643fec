package interact

import (
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserOpener opens URLs with the desktop's default handler.
type BrowserOpener struct {
	// GOOS overrides the detected operating system.
	GOOS string
}

// Command returns the command that would open url.
func (b BrowserOpener) Command(url string) (*exec.Cmd, error) {
	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("opening links is not supported on %s", goos)
	}
}

// Open starts the handler and returns without waiting for it to exit.
func (b BrowserOpener) Open(url string) error {
	cmd, err := b.Command(url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}
	return nil
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f.
func (f OpenerFunc) Open(url string) error {
	return f(url)
}
