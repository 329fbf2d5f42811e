package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdcard/pkg/card"
)

// YAMLIndent is the indentation ToYAML uses.
func YAMLIndent() int { return 2 }

// ToYAML encodes c as YAML. A nil config encodes to nothing.
func (c *Config) ToYAML() ([]byte, error) {
	return c.encode(func(buf *bytes.Buffer) error {
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(YAMLIndent())
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	})
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	return withHeader(header, body), nil
}

// ToTOML encodes c as TOML without table indentation.
func (c *Config) ToTOML() ([]byte, error) {
	return c.encode(func(buf *bytes.Buffer) error {
		enc := toml.NewEncoder(buf)
		enc.Indent = ""
		return enc.Encode(c)
	})
}

func (c *Config) encode(write func(*bytes.Buffer) error) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from
// data are left at their zero value; unknown keys are an error.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes. Keys the Config does
// not know are reported as an error.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Clone returns a copy of c that shares no pointers or slices with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Cards = cloneOptions(c.Cards)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = slices.Clone(c.Extensions)
	return &clone
}

func cloneOptions(opts *card.Options) *card.Options {
	if opts == nil {
		return nil
	}

	out := &card.Options{
		ImageContainerClass:   clonePtr(opts.ImageContainerClass),
		ContentContainerClass: clonePtr(opts.ContentContainerClass),
		CardGridClass:         clonePtr(opts.CardGridClass),
		CardClass:             clonePtr(opts.CardClass),
		MergeTrailingBlocks:   clonePtr(opts.MergeTrailingBlocks),
	}
	if opts.CustomHTMLTags != nil {
		tags := *opts.CustomHTMLTags
		out.CustomHTMLTags = &tags
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func withHeader(header string, body []byte) []byte {
	if header == "" {
		return body
	}
	header = strings.TrimRight(header, "\n") + "\n\n"
	return append([]byte(header), body...)
}
