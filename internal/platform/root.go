package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/verbdrill/internal/config"
)

// FindConfig looks upwards from startDir for a verbdrill.yaml file.
// It returns the absolute path of the first one found.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, config.DefaultFile) {
			return filepath.Join(dir, config.DefaultFile), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found above %s", config.DefaultFile, abs)
}

// ResolvePath anchors a relative dictionary path or pattern at the directory of
// configFile. Absolute paths, and any path when configFile is empty, are returned as is.
func ResolvePath(configFile, p string) string {
	if configFile == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configFile), p)
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
