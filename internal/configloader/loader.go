// Package configloader resolves the effective mdcard configuration from
// layered sources: defaults, system, user and project files, an explicit
// --config file, MDCARD_* environment variables and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdcard/pkg/config"
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// WorkingDir anchors the upward search for a project file. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath comes from --config and is always read when set.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and wins over every other source.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration with where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are the validator's non-fatal findings on the merged config.
	Warnings []string
}

// fileLayer is one configuration file in precedence order.
type fileLayer struct {
	scope string
	path  string
}

func fileLayers(paths *ConfigPaths, opts LoadOptions) []fileLayer {
	var layers []fileLayer
	add := func(scope, path string, ignored bool) {
		if path != "" && !ignored {
			layers = append(layers, fileLayer{scope: scope, path: path})
		}
	}
	add("system", paths.System, opts.IgnoreSystemConfig)
	add("user", paths.User, opts.IgnoreUserConfig)
	add("project", paths.Project, opts.IgnoreProjectConfig)
	add("explicit", paths.Explicit, false)
	return layers
}

// Load merges defaults, then system, user, project and explicit files,
// then MDCARD_* variables, then opts.CLIConfig. Each file is validated on
// its own so a *ValidationError names the file at fault.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	layers := []*config.Config{config.NewConfig()}

	for _, layer := range fileLayers(paths, opts) {
		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.scope, err)
		}
		if v := ValidateWithFile(fileCfg, layer.path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		layers = append(layers, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	cfg := MergeAll(layers...)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	final := Validate(cfg)
	if !final.Valid() {
		return nil, &final.Errors[0]
	}
	for _, w := range final.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// readConfigFile decodes path as TOML or YAML depending on its extension.
func readConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	decode := config.FromYAML
	if IsTOMLConfig(path) {
		decode = config.FromTOML
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
