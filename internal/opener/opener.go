package opener

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Launcher starts an external program without waiting for it.
type Launcher func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener hands artwork to the system viewer. Remote images must be http or
// https; anything else is treated as a local file, which is how the
// placeholder image is addressed.
type Opener struct {
	goos   string
	launch Launcher
}

func New() *Opener {
	return &Opener{goos: runtime.GOOS, launch: startCommand}
}

// NewWithLauncher is used by tests to capture the command instead of running it.
func NewWithLauncher(goos string, launch Launcher) *Opener {
	return &Opener{goos: goos, launch: launch}
}

// Target resolves what will be handed to the viewer.
func Target(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("nothing to open")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return raw, nil
	case "":
		abs, err := filepath.Abs(raw)
		if err != nil {
			return "", err
		}
		return abs, nil
	default:
		return "", fmt.Errorf("refusing to open %q (only http/https or local files)", u.Scheme)
	}
}

// Open shows raw, or placeholder when raw is empty or refused.
func (o *Opener) Open(raw, placeholder string) error {
	target, err := Target(raw)
	if err != nil {
		if placeholder == "" {
			return err
		}
		if target, err = Target(placeholder); err != nil {
			return err
		}
	}

	switch o.goos {
	case "darwin":
		return o.launch("open", target)
	case "windows":
		return o.launch("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return o.launch("xdg-open", target)
	}
}
