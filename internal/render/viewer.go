package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener shows files with the platform's default viewer.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

// NewOpener returns an Opener for the running platform.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: startCommand}
}

// Show launches the viewer for path without waiting for it to exit.
func (o *Opener) Show(path string) error {
	name, args, err := viewerCommand(o.goos, path)
	if err != nil {
		return err
	}
	return o.start(name, args...)
}

func viewerCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("no viewer for platform %s", goos)
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
