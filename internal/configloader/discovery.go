package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths holds the configuration files found for each scope. A scope
// without a file has an empty path.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string // from --config
}

// Names tried in a project directory, first match wins.
//
//nolint:gochecknoglobals // lookup table
var projectConfigNames = []string{
	".mdcard.yml", ".mdcard.yaml", ".mdcard.toml",
	"mdcard.yml", "mdcard.yaml", "mdcard.toml",
}

// Names tried in the system and user config directories.
//
//nolint:gochecknoglobals // lookup table
var scopeConfigNames = []string{"config.yaml", "config.yml", "config.toml"}

// DiscoverPaths looks up the system and user config files and searches
// upward from workDir for a project file.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(SystemConfigDir(), scopeConfigNames),
		User:    firstFile(UserConfigDir(), scopeConfigNames),
		Project: project,
	}, nil
}

// SystemConfigDir is /etc/mdcard, or %ProgramData%\mdcard on Windows.
func SystemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/mdcard"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "mdcard")
}

// UserConfigDir is $XDG_CONFIG_HOME/mdcard, defaulting to ~/.config/mdcard.
// It is empty when neither is known.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdcard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdcard")
}

// FindProjectConfig walks from startDir toward the root and returns the
// first project config file found. The walk ends after the first directory
// holding .git, .hg or .svn, after the home directory, or at the root; it
// returns "" when nothing matched.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// IsTOMLConfig reports whether path is read as TOML. Any other extension
// is read as YAML.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepoRoot(dir string) bool {
	return slices.ContainsFunc([]string{".git", ".hg", ".svn"}, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}
