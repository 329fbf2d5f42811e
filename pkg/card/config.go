package card

// Default container class names.
const (
	DefaultImageContainerClass   = "image-container"
	DefaultContentContainerClass = "content-container"
)

// CustomHTMLTags controls whether cards and grids render as <card> and
// <card-grid> instead of <div>.
type CustomHTMLTags struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Config is a fully resolved rewrite configuration.
// Empty CardGridClass and CardClass mean the directive's own class is kept.
type Config struct {
	CustomHTMLTags        CustomHTMLTags
	ImageContainerClass   string
	ContentContainerClass string
	CardGridClass         string
	CardClass             string

	// MergeTrailingBlocks appends the blocks that follow a card's body
	// paragraph to the content container instead of dropping them.
	MergeTrailingBlocks bool
}

// Options is a partial Config. A nil field keeps the default.
type Options struct {
	CustomHTMLTags        *CustomHTMLTags `yaml:"custom_html_tags,omitempty"        toml:"custom_html_tags,omitempty"`
	ImageContainerClass   *string         `yaml:"image_container_class,omitempty"   toml:"image_container_class,omitempty"`
	ContentContainerClass *string         `yaml:"content_container_class,omitempty" toml:"content_container_class,omitempty"`
	CardGridClass         *string         `yaml:"card_grid_class,omitempty"         toml:"card_grid_class,omitempty"`
	CardClass             *string         `yaml:"card_class,omitempty"              toml:"card_class,omitempty"`
	MergeTrailingBlocks   *bool           `yaml:"merge_trailing_blocks,omitempty"   toml:"merge_trailing_blocks,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ImageContainerClass:   DefaultImageContainerClass,
		ContentContainerClass: DefaultContentContainerClass,
	}
}

// Resolve overlays opts on defaults. Every non-nil field of opts replaces
// the corresponding default; a nil opts returns defaults unchanged.
func Resolve(defaults Config, opts *Options) Config {
	cfg := defaults
	if opts == nil {
		return cfg
	}

	if opts.CustomHTMLTags != nil {
		cfg.CustomHTMLTags = *opts.CustomHTMLTags
	}
	if opts.ImageContainerClass != nil {
		cfg.ImageContainerClass = *opts.ImageContainerClass
	}
	if opts.ContentContainerClass != nil {
		cfg.ContentContainerClass = *opts.ContentContainerClass
	}
	if opts.CardGridClass != nil {
		cfg.CardGridClass = *opts.CardGridClass
	}
	if opts.CardClass != nil {
		cfg.CardClass = *opts.CardClass
	}
	if opts.MergeTrailingBlocks != nil {
		cfg.MergeTrailingBlocks = *opts.MergeTrailingBlocks
	}

	return cfg
}

// Merge returns a copy of base with every non-nil field of over applied.
// Either argument may be nil.
func Merge(base, over *Options) *Options {
	if base == nil && over == nil {
		return nil
	}

	var out Options
	if base != nil {
		out = *base
	}
	if over == nil {
		return &out
	}

	if over.CustomHTMLTags != nil {
		out.CustomHTMLTags = over.CustomHTMLTags
	}
	if over.ImageContainerClass != nil {
		out.ImageContainerClass = over.ImageContainerClass
	}
	if over.ContentContainerClass != nil {
		out.ContentContainerClass = over.ContentContainerClass
	}
	if over.CardGridClass != nil {
		out.CardGridClass = over.CardGridClass
	}
	if over.CardClass != nil {
		out.CardClass = over.CardClass
	}
	if over.MergeTrailingBlocks != nil {
		out.MergeTrailingBlocks = over.MergeTrailingBlocks
	}

	return &out
}

// OptionsFromConfig returns Options with every field set from cfg.
func OptionsFromConfig(cfg Config) *Options {
	tags := cfg.CustomHTMLTags
	return &Options{
		CustomHTMLTags:        &tags,
		ImageContainerClass:   &cfg.ImageContainerClass,
		ContentContainerClass: &cfg.ContentContainerClass,
		CardGridClass:         &cfg.CardGridClass,
		CardClass:             &cfg.CardClass,
		MergeTrailingBlocks:   &cfg.MergeTrailingBlocks,
	}
}
