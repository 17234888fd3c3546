package engine

// item is a pending rect with its spacing-inflated size.
type item struct {
	index int
	w, h  int64
}

// placement is a packed item at coordinates local to the work area.
type placement struct {
	index      int
	x, y, w, h int64
}

type rect struct {
	x, y, w, h int64
}

func (r rect) area() int64 {
	return r.w * r.h
}

// maxRectsPacker tracks the free space of one work area as a list of
// possibly overlapping maximal rectangles.
type maxRectsPacker struct {
	freeRects []rect
}

func newMaxRectsPacker(width, height int64) *maxRectsPacker {
	return &maxRectsPacker{
		freeRects: []rect{{0, 0, width, height}},
	}
}

// insert tries to place a rect of the given size. Returns success and position.
// Uses Best Area Fit, ties broken by Best Short Side Fit and then by free
// list order.
func (mp *maxRectsPacker) insert(w, h int64) (bool, int64, int64) {
	bestIdx := mp.bestFit(w, h)
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := mp.freeRects[bestIdx]
	placed := rect{x: chosen.x, y: chosen.y, w: w, h: h}
	mp.splitAroundPlacement(placed)

	return true, placed.x, placed.y
}

// bestFit returns the index of the free rect that would receive a w x h
// rect, or -1 if none can contain it.
func (mp *maxRectsPacker) bestFit(w, h int64) int {
	bestIdx := -1
	var bestArea, bestShort int64

	for i, r := range mp.freeRects {
		if w > r.w || h > r.h {
			continue
		}
		areaFit := r.area() - w*h
		shortFit := min(r.w-w, r.h-h)
		if bestIdx < 0 || areaFit < bestArea || (areaFit == bestArea && shortFit < bestShort) {
			bestIdx = i
			bestArea = areaFit
			bestShort = shortFit
		}
	}
	return bestIdx
}

// splitAroundPlacement replaces every free rect that overlaps the placed
// rect with the parts of it left above, below, left and right of the
// placement. Non-overlapping free rects keep their position in the list.
func (mp *maxRectsPacker) splitAroundPlacement(placed rect) {
	newRects := make([]rect, 0, len(mp.freeRects)+4)

	for _, r := range mp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Above
		if placed.y > r.y {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: r.w, h: placed.y - r.y,
			})
		}
		// Below
		if placed.y+placed.h < r.y+r.h {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
		// Left
		if placed.x > r.x {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: placed.x - r.x, h: r.h,
			})
		}
		// Right
		if placed.x+placed.w < r.x+r.w {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
	}

	mp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// pruneContained removes any rect that is fully contained within another.
// Of several identical rects only the first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if a == b && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.x+outer.w >= inner.x+inner.w &&
		outer.y+outer.h >= inner.y+inner.h
}

// packItems places items into a fresh width x height work area in the
// order given. Items that do not fit are returned as leftover, order kept.
func packItems(width, height int64, items []item) (placed []placement, leftover []item) {
	mp := newMaxRectsPacker(width, height)
	for _, it := range items {
		ok, x, y := mp.insert(it.w, it.h)
		if !ok {
			leftover = append(leftover, it)
			continue
		}
		placed = append(placed, placement{index: it.index, x: x, y: y, w: it.w, h: it.h})
	}
	return placed, leftover
}
