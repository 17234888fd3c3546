package engine

import (
	"fmt"
	"io"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/sirupsen/logrus"
)

// Optimizer assigns rects to pages drawn from the catalog.
type Optimizer struct {
	Config model.LayoutConfig
	Log    logrus.FieldLogger
}

func New(cfg model.LayoutConfig) *Optimizer {
	return &Optimizer{Config: cfg, Log: discardLogger()}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Pack places every rect on a page and returns the finished layout. The
// identity of each rect is its position in rects; incoming X, Y and Page
// are ignored. Pages are built one at a time: the selector picks the
// smallest catalog size that takes the whole pending batch, or the largest
// size with whatever fits, and the rest spills to the next page.
//
// A *PackingFailure is returned when a page takes nothing, or when rects
// remain after Config.MaxPages pages.
func (o *Optimizer) Pack(rects []model.Rect) (model.Result, error) {
	order, err := ParseOrder(o.Config.Order)
	if err != nil {
		return model.Result{}, err
	}
	log := o.Log
	if log == nil {
		log = discardLogger()
	}

	mc := newMarginConfig(o.Config)
	result := model.Result{
		Config: o.Config,
		Rects:  make([]model.Rect, len(rects)),
	}

	pending := make([]item, 0, len(rects))
	for i, r := range rects {
		if r.W == 0 || r.H == 0 {
			return model.Result{}, fmt.Errorf("rect %d has zero size %dx%d", i, r.W, r.H)
		}
		result.Rects[i] = model.Rect{Index: i, W: r.W, H: r.H}
		pending = append(pending, item{
			index: i,
			w:     int64(r.W) + mc.spacingX,
			h:     int64(r.H) + mc.spacingY,
		})
	}
	order.sortItems(pending)

	for len(pending) > 0 {
		pageIdx := len(result.Pages)
		if o.Config.MaxPages > 0 && pageIdx >= o.Config.MaxPages {
			return model.Result{}, &PackingFailure{
				Page:      pageIdx,
				Unplaced:  itemIndices(pending),
				PageLimit: o.Config.MaxPages,
			}
		}

		sel := selectPage(pending, mc)
		log.WithFields(logrus.Fields{
			"page":      pageIdx,
			"candidate": sel.candidate.String(),
			"placed":    len(sel.placed),
			"leftover":  len(sel.leftover),
			"attempts":  len(sel.attempts),
		}).Debug("page selected")

		if len(sel.placed) == 0 {
			return model.Result{}, &PackingFailure{
				Page:     pageIdx,
				Unplaced: itemIndices(pending),
			}
		}

		result.Pages = append(result.Pages, o.finishPage(pageIdx, sel, mc, result.Rects))
		pending = sel.leftover
	}

	return result, nil
}

// finishPage writes output coordinates for the placed rects and sizes the
// page, cropping each axis to the used extent when configured.
func (o *Optimizer) finishPage(pageIdx int, sel selection, mc marginConfig, rects []model.Rect) model.Page {
	page := model.Page{
		Index:      pageIdx,
		CandidateW: sel.candidate.W,
		CandidateH: sel.candidate.H,
		Rects:      make([]int, 0, len(sel.placed)),
	}

	var right, bottom int64
	for _, p := range sel.placed {
		r := &rects[p.index]
		r.X = uint32(p.x + mc.borderX)
		r.Y = uint32(p.y + mc.borderY)
		r.Page = pageIdx
		page.Rects = append(page.Rects, p.index)

		right = max(right, p.x+p.w-mc.spacingX+mc.borderX)
		bottom = max(bottom, p.y+p.h-mc.spacingY+mc.borderY)
	}

	page.W = sel.candidate.W
	if o.Config.CropX {
		page.W = uint32(right)
	}
	page.H = sel.candidate.H
	if o.Config.CropY {
		page.H = uint32(bottom)
	}
	return page
}

func itemIndices(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.index
	}
	return out
}
