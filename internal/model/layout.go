package model

// LayoutConfig holds the per-run margin and crop settings read from the
// input document.
type LayoutConfig struct {
	SpacingX uint32 `json:"spacingX"` // Gap between neighbouring rects along X
	SpacingY uint32 `json:"spacingY"` // Gap between neighbouring rects along Y
	BorderX  uint32 `json:"borderX"`  // Gap between the page edge and rects along X
	BorderY  uint32 `json:"borderY"`  // Gap between the page edge and rects along Y
	CropX    bool   `json:"cropX"`    // Shrink page width to the used extent
	CropY    bool   `json:"cropY"`    // Shrink page height to the used extent

	// Order is the presort applied to the pending rects before packing.
	// The empty string means input order.
	Order string `json:"order,omitempty"`
	// MaxPages limits the number of pages; 0 means no limit.
	MaxPages int `json:"maxPages,omitempty"`
}

// Rect is one rectangle to place. Index is its position in the input
// document and is the only identity a rect has.
type Rect struct {
	Index int    `json:"-"`
	W     uint32 `json:"w"`
	H     uint32 `json:"h"`
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
	Page  int    `json:"p"`
}

// Area returns the pre-margin area of the rect.
func (r Rect) Area() uint64 {
	return uint64(r.W) * uint64(r.H)
}

// Page is one output texture page.
type Page struct {
	Index int    `json:"-"`
	W     uint32 `json:"w"`
	H     uint32 `json:"h"`

	// CandidateW and CandidateH are the catalog entry the page was packed
	// against, before any cropping.
	CandidateW uint32 `json:"-"`
	CandidateH uint32 `json:"-"`

	// Rects lists the input indices placed on this page, in placement order.
	Rects []int `json:"-"`
}

// Area returns the final page area.
func (p Page) Area() uint64 {
	return uint64(p.W) * uint64(p.H)
}

// Result is a complete packing run.
type Result struct {
	Config LayoutConfig
	Rects  []Rect
	Pages  []Page
}

// PageRects returns the rects placed on the given page, in placement order.
func (r Result) PageRects(page int) []Rect {
	if page < 0 || page >= len(r.Pages) {
		return nil
	}
	out := make([]Rect, 0, len(r.Pages[page].Rects))
	for _, idx := range r.Pages[page].Rects {
		out = append(out, r.Rects[idx])
	}
	return out
}

// UsedArea returns the pre-margin area covered by rects on the given page.
func (r Result) UsedArea(page int) uint64 {
	var total uint64
	for _, rc := range r.PageRects(page) {
		total += rc.Area()
	}
	return total
}

// Efficiency returns the usage percentage of the given page.
func (r Result) Efficiency(page int) float64 {
	if page < 0 || page >= len(r.Pages) {
		return 0
	}
	ta := r.Pages[page].Area()
	if ta == 0 {
		return 0
	}
	return float64(r.UsedArea(page)) / float64(ta) * 100.0
}

// TotalArea returns the summed area of all pages.
func (r Result) TotalArea() uint64 {
	var total uint64
	for _, p := range r.Pages {
		total += p.Area()
	}
	return total
}

// TotalEfficiency returns the overall usage percentage across all pages.
func (r Result) TotalEfficiency() float64 {
	var used uint64
	for _, rc := range r.Rects {
		used += rc.Area()
	}
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(used) / float64(ta) * 100.0
}
