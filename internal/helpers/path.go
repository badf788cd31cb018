package helpers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjlapao/common-go/commands"
	"github.com/hashicorp/go-hclog"
)

var searchFolders = []string{"/usr/local/bin", "/usr/bin", "/bin", "/usr/sbin", "/sbin", "/opt/homebrew/bin", "/Applications/VirtualBox.app/Contents/MacOS"}

// FindPath locates an executable, first with which and then in the usual
// install folders. The bare name is returned when nothing is found so the
// caller still gets a meaningful exec error.
func FindPath(ctx context.Context, cmd string) string {
	if cmd == "" || strings.ContainsRune(cmd, filepath.Separator) {
		return cmd
	}

	logger := hclog.FromContext(ctx)
	logger.Debug("getting executable", "name", cmd)
	out, err := commands.ExecuteWithNoOutput("which", cmd)
	path := strings.ReplaceAll(strings.TrimSpace(out), "\n", "")
	if err == nil && path != "" {
		return path
	}

	logger.Debug("executable not found with which, trying default locations", "name", cmd)
	for _, folder := range searchFolders {
		candidate := filepath.Join(folder, cmd)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return cmd
}
