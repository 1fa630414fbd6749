package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the per-user config directory.
const AppName = "chengyu"

// PathResolver locates the dictionary asset and config file relative to the binary,
// the working directory and the per-user config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver for the running executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// symlinked installs still resolve data next to the real binary
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := newPathResolver(filepath.Dir(execPath), homeDir)
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func newPathResolver(executableDir, homeDir string) *PathResolver {
	return &PathResolver{
		executableDir: executableDir,
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}
}

// UserConfigDir returns the per-user config directory for the current platform.
// It is the directory PathResolver and the config package both use.
func UserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return platformConfigDir(homeDir), nil
}

// platformConfigDir returns the config directory for the current platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// GetDictPath resolves the dictionary file in order of preference:
//  1. the given path if absolute
//  2. relative to the executable directory
//  3. relative to the working directory
//  4. data/<name> next to the executable, its parent, or in the config dir
//
// When nothing exists the first candidate is returned for error reporting,
// which is the path itself when it is absolute.
func (pr *PathResolver) GetDictPath(userPath string) string {
	candidates := pr.dictCandidates(userPath)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found dictionary: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not found: %s", path)
	}
	return candidates[0]
}

func (pr *PathResolver) dictCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}

	candidates := []string{filepath.Join(pr.executableDir, userPath)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}

	name := filepath.Base(userPath)
	return append(candidates,
		filepath.Join(pr.executableDir, "data", name),
		filepath.Join(filepath.Dir(pr.executableDir), "data", name),
		filepath.Join(pr.configDir, "data", name),
	)
}

// GetConfigPath returns a writable location for filename,
// preferring the config directory and falling back to home, temp and executable dirs
func (pr *PathResolver) GetConfigPath(filename string) string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppName),
		filepath.Join(os.TempDir(), AppName),
		pr.executableDir,
	}

	for i, dir := range dirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// GetConfigDir returns the per-user config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
