package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcard/internal/configloader"
	"github.com/yaklabco/mdcard/internal/logging"
	"github.com/yaklabco/mdcard/pkg/config"
)

// ErrConfig marks failures to load or validate configuration.
var ErrConfig = errors.New("failed to load configuration")

// loadConfig resolves the layered configuration for cmd, with cliCfg
// taking precedence over every file and the environment.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := commandLogger(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}

func newConfigCommand() *cobra.Command {
	var (
		format string
		env    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration mdcard would use in the current directory,
after merging defaults, system, user and project files, the --config file
and MDCARD_* environment variables.

Examples:
  mdcard config                  Print as YAML
  mdcard config --format toml    Print as TOML
  mdcard config --config ci.yml  Include an explicit file
  mdcard config --env            List the MDCARD_* variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env {
				return printEnvVars(cmd.OutOrStdout())
			}
			return runConfig(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().BoolVar(&env, "env", false, "List the supported environment variables and their current values")

	return cmd
}

func runConfig(cmd *cobra.Command, format string) error {
	if format != config.TemplateYAML && format != config.TemplateTOML {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, format)
	}

	loaded, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	var body []byte
	if format == config.TemplateTOML {
		body, err = loaded.Config.ToTOML()
	} else {
		body, err = loaded.Config.ToYAML()
	}
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(withSources(loaded.LoadedFrom, body)); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// withSources prefixes body with a comment naming the files it came from.
func withSources(files []string, body []byte) []byte {
	var header strings.Builder
	header.WriteString("# Resolved mdcard configuration\n")
	if len(files) == 0 {
		header.WriteString("# Sources: defaults\n")
	} else {
		header.WriteString("# Sources: defaults, " + strings.Join(files, ", ") + "\n")
	}
	header.WriteString("\n")
	return append([]byte(header.String()), body...)
}

// printEnvVars lists the MDCARD_* variables with their descriptions and
// the value of each one that is set.
func printEnvVars(w io.Writer) error {
	names := configloader.EnvVarNames()
	described := configloader.ListEnvVars()

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%-*s  %s", width, name, described[name])
		if value, ok := os.LookupEnv(name); ok {
			fmt.Fprintf(&b, " [set: %q]", value)
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}
