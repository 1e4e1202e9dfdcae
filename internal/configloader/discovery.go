package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/plugmod/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/plugmod/config.yaml).
	User string

	// Project is the plugmod.yml found in the app root, if any.
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// AppRoot is the nearest directory at or above the working directory
	// that looks like an app: it holds package.json, app.json, android/
	// or ios/. Empty when none was found.
	AppRoot string
}

// ProjectConfigFile is the name written by `plugmod init`.
const ProjectConfigFile = "plugmod.yml"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{ProjectConfigFile, "plugmod.yaml", ".plugmod.yml", ".plugmod.yaml"}

	// appRootMarkers are checked in order; files first, then native dirs.
	appRootMarkers = []string{"app.json", "package.json", "android", "ios"}

	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds configuration files in standard locations: the
// system and user config directories, then a plugmod.yml in the first
// directory above workDir that holds one or looks like an app.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	paths := &ConfigPaths{
		System: configInDir(systemConfigDir()),
		User:   configInDir(userConfigDir()),
	}

	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for dir := absDir; ; {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstExisting(dir, projectConfigFiles, false); path != "" {
			paths.Project = path
			paths.AppRoot = dir
			return paths, nil
		}
		if paths.AppRoot == "" && firstExisting(dir, appRootMarkers, true) != "" {
			paths.AppRoot = dir
		}
		if firstExisting(dir, vcsRootMarkers, true) != "" || dir == home {
			return paths, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return paths, nil
		}
		dir = parent
	}
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "plugmod")
	}
	return "/etc/plugmod"
}

func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "plugmod")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "plugmod")
}

func configInDir(dir string) string {
	if dir == "" {
		return ""
	}
	return firstExisting(dir, []string{"config.yaml", "config.yml"}, false)
}

// firstExisting returns the first name in dir that exists. Directories only
// count when allowDirs is set.
func firstExisting(dir string, names []string, allowDirs bool) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && (allowDirs || !info.IsDir()) {
			return path
		}
	}
	return ""
}
