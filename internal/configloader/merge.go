package configloader

import (
	"github.com/yaklabco/mdcard/pkg/card"
	"github.com/yaklabco/mdcard/pkg/config"
)

// merge overlays override on base. Non-zero scalars and non-nil slices
// replace; card options merge per field; Watch can only be turned on.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	out.Flavor = overlay(out.Flavor, override.Flavor)
	out.Format = overlay(out.Format, override.Format)
	out.OutDir = overlay(out.OutDir, override.OutDir)
	out.Jobs = overlay(out.Jobs, override.Jobs)
	out.Watch = out.Watch || override.Watch

	if override.Cards != nil {
		out.Cards = card.Merge(base.Cards, override.Cards)
	}
	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	return &out
}

func overlay[T comparable](base, override T) T {
	var zero T
	if override == zero {
		return base
	}
	return override
}

// MergeAll folds configs left to right; later entries win. It returns nil
// for no configs.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for i, cfg := range configs {
		if i == 0 {
			out = cfg
			continue
		}
		out = merge(out, cfg)
	}
	return out
}
