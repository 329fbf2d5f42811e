package config

import (
	"bytes"
	"fmt"
)

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// GenerateTemplate returns a commented starter configuration file in the
// given format ("yaml" or "toml"). Every setting is shown at its default.
func GenerateTemplate(format string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	switch format {
	case TemplateYAML, "yml", "":
		buf.WriteString(yamlTemplate)
	case TemplateTOML:
		buf.WriteString(tomlTemplate)
	default:
		return nil, fmt.Errorf("unknown template format %q (want yaml or toml)", format)
	}

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdcard configuration
# See: https://github.com/yaklabco/mdcard`
}

const yamlTemplate = `# Markdown flavor: commonmark or gfm
flavor: commonmark

# Where rendered files are written. Empty writes next to each source.
# out_dir: site

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

cards:
  # Emit <card> and <card-grid> instead of <div>
  custom_html_tags:
    enabled: false

  # Classes for the two containers inside every card.
  # An empty string omits the class attribute.
  image_container_class: image-container
  content_container_class: content-container

  # Replace the class written on every card or grid.
  # card_class: card
  # card_grid_class: card-grid

  # Keep blocks that follow a card's body text inside the content container
  merge_trailing_blocks: false
`

const tomlTemplate = `# Markdown flavor: commonmark or gfm
flavor = "commonmark"

# Where rendered files are written. Empty writes next to each source.
# out_dir = "site"

# File patterns to skip (glob patterns)
# ignore = ["vendor/**", "node_modules/**"]

[cards]
# Classes for the two containers inside every card.
# An empty string omits the class attribute.
image_container_class = "image-container"
content_container_class = "content-container"

# Replace the class written on every card or grid.
# card_class = "card"
# card_grid_class = "card-grid"

# Keep blocks that follow a card's body text inside the content container
merge_trailing_blocks = false

# Emit <card> and <card-grid> instead of <div>
[cards.custom_html_tags]
enabled = false
`
