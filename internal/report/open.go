package report

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// OpenInViewer asks the OS to open path in the default PDF viewer.
// Best effort: the viewer process is started and forgotten. The returned
// error only signals that the launch could not be attempted; callers should
// downgrade it to an informational message.
func OpenInViewer(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("no known viewer launcher for %s", runtime.GOOS)
	}
	return cmd.Start()
}
