package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcard/pkg/card"
	"github.com/yaklabco/mdcard/pkg/config"
)

// envVarPrefix is the prefix for all mdcard environment variables.
const envVarPrefix = "MDCARD_"

// envVar describes one supported environment variable.
type envVar struct {
	suffix      string
	description string

	// keepEmpty applies the variable even when it is set to "".
	keepEmpty bool

	apply func(cfg *config.Config, value string) error
}

// envVars lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{suffix: "FLAVOR", description: "Markdown flavor: commonmark or gfm",
		apply: func(cfg *config.Config, v string) error { cfg.Flavor = config.Flavor(v); return nil }},
	{suffix: "FORMAT", description: "Output format: html or tree",
		apply: func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil }},
	{suffix: "JOBS", description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = n
			return nil
		}},
	{suffix: "OUT_DIR", description: "Directory for rendered files",
		apply: func(cfg *config.Config, v string) error { cfg.OutDir = v; return nil }},
	{suffix: "IGNORE", description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, v string) error { cfg.Ignore = parseSliceValue(v); return nil }},
	{suffix: "EXTENSIONS", description: "Comma-separated list of Markdown file extensions",
		apply: func(cfg *config.Config, v string) error { cfg.Extensions = parseSliceValue(v); return nil }},
	{suffix: "CUSTOM_HTML_TAGS", description: "Emit <card> and <card-grid>: true or false",
		apply: func(cfg *config.Config, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			cards(cfg).CustomHTMLTags = &card.CustomHTMLTags{Enabled: b}
			return nil
		}},
	{suffix: "IMAGE_CONTAINER_CLASS", description: "Class of the image container (empty omits it)", keepEmpty: true,
		apply: func(cfg *config.Config, v string) error { cards(cfg).ImageContainerClass = &v; return nil }},
	{suffix: "CONTENT_CONTAINER_CLASS", description: "Class of the content container (empty omits it)", keepEmpty: true,
		apply: func(cfg *config.Config, v string) error { cards(cfg).ContentContainerClass = &v; return nil }},
	{suffix: "CARD_CLASS", description: "Class written on every card", keepEmpty: true,
		apply: func(cfg *config.Config, v string) error { cards(cfg).CardClass = &v; return nil }},
	{suffix: "CARD_GRID_CLASS", description: "Class written on every card grid", keepEmpty: true,
		apply: func(cfg *config.Config, v string) error { cards(cfg).CardGridClass = &v; return nil }},
	{suffix: "MERGE_TRAILING_BLOCKS", description: "Keep blocks after a card's body: true or false",
		apply: func(cfg *config.Config, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			cards(cfg).MergeTrailingBlocks = &b
			return nil
		}},
}

// LoadFromEnv applies MDCARD_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := os.LookupEnv(name)
		if !ok || (value == "" && !v.keepEmpty) {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[envVarPrefix+v.suffix] = v.description
	}
	return out
}

// EnvVarNames returns the supported environment variable names in
// documentation order.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, v := range envVars {
		names = append(names, envVarPrefix+v.suffix)
	}
	return slices.Clip(names)
}

func cards(cfg *config.Config) *card.Options {
	if cfg.Cards == nil {
		cfg.Cards = &card.Options{}
	}
	return cfg.Cards
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
	}
	return b, nil
}

// parseSliceValue splits a comma-separated value, trimming each element
// and dropping empty ones.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
