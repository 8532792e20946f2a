package viz

import (
	"fmt"
	"os/exec"
	"runtime"
)

// opener returns the platform command that displays a file.
func opener(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open hands the image to the desktop viewer without waiting for it.
func Open(path string) error {
	name, args := opener(runtime.GOOS, path)
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("no image viewer: %w", err)
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
