package engine

import "github.com/piwi3910/AtlasPack/internal/model"

// marginConfig is the layout spacing and border widened to signed values so
// work area arithmetic can go negative without wrapping.
type marginConfig struct {
	spacingX, spacingY int64
	borderX, borderY   int64
}

func newMarginConfig(cfg model.LayoutConfig) marginConfig {
	return marginConfig{
		spacingX: int64(cfg.SpacingX),
		spacingY: int64(cfg.SpacingY),
		borderX:  int64(cfg.BorderX),
		borderY:  int64(cfg.BorderY),
	}
}

// selection is the outcome of choosing a page size for one pending batch.
type selection struct {
	candidate Size
	placed    []placement
	leftover  []item
	// attempts lists every candidate the packer was run against, in order.
	attempts []Size
}

// selectPage walks the catalog and packs the pending batch against each
// viable candidate until one takes every rect. Candidates whose work area is
// empty are skipped, as are candidates whose work area is smaller than the
// summed rect area unless they are the last entry. Every attempt starts from
// the full pending batch. The last candidate's result is accepted even when
// partial.
func selectPage(pending []item, mc marginConfig) selection {
	var need int64
	for _, it := range pending {
		need += it.w * it.h
	}

	var sel selection
	for i, c := range catalog {
		last := i == len(catalog)-1

		ww, wh := workArea(c, mc)
		if ww <= 0 || wh <= 0 {
			continue
		}
		if ww*wh < need && !last {
			continue
		}

		sel.candidate = c
		sel.attempts = append(sel.attempts, c)
		sel.placed, sel.leftover = packItems(ww, wh, pending)
		if len(sel.leftover) == 0 {
			break
		}
	}
	return sel
}
