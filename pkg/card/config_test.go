package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcard/pkg/card"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := card.DefaultConfig()

	assert.False(t, cfg.CustomHTMLTags.Enabled)
	assert.Equal(t, "image-container", cfg.ImageContainerClass)
	assert.Equal(t, "content-container", cfg.ContentContainerClass)
	assert.Empty(t, cfg.CardGridClass)
	assert.Empty(t, cfg.CardClass)
	assert.False(t, cfg.MergeTrailingBlocks)
}

func TestDefaultConfig_ReturnsFreshValue(t *testing.T) {
	t.Parallel()

	first := card.DefaultConfig()
	first.ImageContainerClass = "changed"

	assert.Equal(t, "image-container", card.DefaultConfig().ImageContainerClass)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	defaults := card.DefaultConfig()

	tests := []struct {
		name string
		opts *card.Options
		want card.Config
	}{
		{
			name: "nil options keep defaults",
			opts: nil,
			want: defaults,
		},
		{
			name: "empty options keep defaults",
			opts: &card.Options{},
			want: defaults,
		},
		{
			name: "custom tags replace the sub-object",
			opts: &card.Options{CustomHTMLTags: &card.CustomHTMLTags{Enabled: true}},
			want: card.Config{
				CustomHTMLTags:        card.CustomHTMLTags{Enabled: true},
				ImageContainerClass:   "image-container",
				ContentContainerClass: "content-container",
			},
		},
		{
			name: "every field set",
			opts: &card.Options{
				CustomHTMLTags:        &card.CustomHTMLTags{Enabled: true},
				ImageContainerClass:   strPtr("img"),
				ContentContainerClass: strPtr("body"),
				CardGridClass:         strPtr("grid"),
				CardClass:             strPtr("tile"),
				MergeTrailingBlocks:   boolPtr(true),
			},
			want: card.Config{
				CustomHTMLTags:        card.CustomHTMLTags{Enabled: true},
				ImageContainerClass:   "img",
				ContentContainerClass: "body",
				CardGridClass:         "grid",
				CardClass:             "tile",
				MergeTrailingBlocks:   true,
			},
		},
		{
			name: "explicit empty string replaces default",
			opts: &card.Options{ImageContainerClass: strPtr("")},
			want: card.Config{
				ContentContainerClass: "content-container",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, card.Resolve(defaults, tt.opts))
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &card.Options{CardClass: strPtr("a"), CardGridClass: strPtr("g")}
	over := &card.Options{CardClass: strPtr("b"), MergeTrailingBlocks: boolPtr(true)}

	merged := card.Merge(base, over)

	assert.Equal(t, "b", *merged.CardClass)
	assert.Equal(t, "g", *merged.CardGridClass)
	assert.True(t, *merged.MergeTrailingBlocks)
	assert.Nil(t, merged.CustomHTMLTags)
	assert.Equal(t, "a", *base.CardClass, "base must not be modified")

	assert.Nil(t, card.Merge(nil, nil))
	assert.Equal(t, "b", *card.Merge(nil, over).CardClass)
	assert.Equal(t, "a", *card.Merge(base, nil).CardClass)
}

func TestOptionsFromConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := card.Config{
		CustomHTMLTags:        card.CustomHTMLTags{Enabled: true},
		ImageContainerClass:   "i",
		ContentContainerClass: "c",
		CardGridClass:         "g",
		CardClass:             "k",
		MergeTrailingBlocks:   true,
	}

	assert.Equal(t, cfg, card.Resolve(card.DefaultConfig(), card.OptionsFromConfig(cfg)))
}
