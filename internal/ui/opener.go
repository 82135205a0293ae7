package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// openBinEnv overrides the program used to open URLs
const openBinEnv = "LOOKOUT_OPEN_BIN"

// Opener hands a URL to something outside the terminal
type Opener interface {
	Open(url string) error
}

// SystemOpener opens URLs with the platform's default handler
type SystemOpener struct{}

// NewSystemOpener creates an opener for the current platform
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

// Open starts the opener without waiting for it; the browser outlives lookout
func (o *SystemOpener) Open(url string) error {
	name, args := openCommand(runtime.GOOS, os.Getenv(openBinEnv))
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}

	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, override string) (string, []string) {
	if override != "" {
		return override, nil
	}
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
