package engine

import "fmt"

// Size is a page dimension in pixels.
type Size struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// Area returns W*H.
func (s Size) Area() uint64 {
	return uint64(s.W) * uint64(s.H)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// catalog lists the page sizes tried for every page, smallest first.
// Area never decreases from one entry to the next.
var catalog = [...]Size{
	{16, 16},
	{32, 16},
	{16, 32},
	{32, 32},
	{64, 32},
	{32, 64},
	{64, 64},
	{128, 64},
	{64, 128},
	{128, 128},
	{256, 128},
	{128, 256},
	{256, 256},
	{512, 256},
	{256, 512},
	{512, 512},
	{1024, 512},
	{512, 1024},
	{1024, 1024},
	{2048, 1024},
	{1024, 2048},
	{2048, 2048},
}

// Catalog returns a copy of the candidate page sizes in the order they are
// tried.
func Catalog() []Size {
	out := make([]Size, len(catalog))
	copy(out, catalog[:])
	return out
}

// LargestPage returns the last catalog entry.
func LargestPage() Size {
	return catalog[len(catalog)-1]
}

// workArea returns the region available to the packer on a page of size s.
// Spacing is baked into the rect sizes so one spacing is given back at the
// far edge; borders are taken from both sides.
func workArea(s Size, cfg marginConfig) (w, h int64) {
	w = int64(s.W) + cfg.spacingX - 2*cfg.borderX
	h = int64(s.H) + cfg.spacingY - 2*cfg.borderY
	return w, h
}
