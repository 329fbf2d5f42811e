package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdcard/pkg/config"
	"github.com/yaklabco/mdcard/pkg/runner"
)

// ValidationError is one finding against a configuration field.
type ValidationError struct {
	Field    string // dotted key, such as "cards.card_class"
	Value    any
	Message  string
	FilePath string // empty for environment and flag values
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects errors, which stop loading, and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, f := range r.Errors {
		messages = append(messages, "error: "+f.Error())
	}
	for _, f := range r.Warnings {
		messages = append(messages, "warning: "+f.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: html, tree", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if !runner.ValidGlob(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateCards(cfg, result)

	return result
}

func validateCards(cfg *config.Config, result *ValidationResult) {
	if cfg.Cards == nil {
		return
	}

	classes := [...]struct {
		field string
		value *string
	}{
		{"cards.image_container_class", cfg.Cards.ImageContainerClass},
		{"cards.content_container_class", cfg.Cards.ContentContainerClass},
		{"cards.card_class", cfg.Cards.CardClass},
		{"cards.card_grid_class", cfg.Cards.CardGridClass},
	}
	for _, class := range classes {
		field, value := class.field, class.value
		if value != nil && strings.ContainsAny(*value, "\"'<>") {
			result.fail(field, *value, "class %q must not contain quotes or angle brackets", *value)
		}
	}

	resolved := cfg.CardConfig()
	if resolved.ImageContainerClass != "" && resolved.ImageContainerClass == resolved.ContentContainerClass {
		result.warn("cards.content_container_class", resolved.ContentContainerClass,
			"image and content containers share the class %q and cannot be styled apart", resolved.ContentContainerClass)
	}
}

// ValidateWithFile is Validate with filePath recorded on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}
