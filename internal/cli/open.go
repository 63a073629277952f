package cli

import (
	"os/exec"
	"runtime"
)

// openArtifact hands path to the platform's default viewer. The viewer is
// started detached; we never wait for it to exit.
func openArtifact(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
