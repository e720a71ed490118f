package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver provides path resolution for the wordjumble binary
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordjumble")
		}
		return filepath.Join(homeDir, ".config", "wordjumble")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordjumble")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordjumble")
	default:
		return filepath.Join(homeDir, ".config", "wordjumble")
	}
}

// ResolveDataPath finds a dictionary or puzzle file (or a chunk directory).
// Candidates, in order:
// 1. the path as given (absolute or relative to the working directory)
// 2. relative to the executable directory
// 3. the same base name under <exec>/data, <exec>/../data and <config>/data
// The first candidate is returned unchanged when nothing exists, for error reporting.
func (pr *PathResolver) ResolveDataPath(userPath string) string {
	if userPath == "" {
		return userPath
	}
	candidates := []string{userPath}
	if !filepath.IsAbs(userPath) {
		candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	}
	base := filepath.Base(userPath)
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(filepath.Dir(pr.executableDir), "data", base),
		filepath.Join(pr.configDir, "data", base),
	)

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Resolved data path: %s", path)
			return path
		}
		log.Debugf("Data path candidate not found: %s", path)
	}
	return userPath
}
