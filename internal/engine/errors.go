package engine

import (
	"errors"
	"fmt"
)

// ErrPackingFailure matches any *PackingFailure with errors.Is.
var ErrPackingFailure = errors.New("packing failure")

// PackingFailure reports rects that could not be placed. Page is the index
// of the page being built when packing gave up.
type PackingFailure struct {
	Page     int
	Unplaced []int
	// PageLimit is non-zero when the run stopped because the page budget
	// was used up rather than because a rect fits no page.
	PageLimit int
}

func (e *PackingFailure) Error() string {
	if e.PageLimit > 0 {
		return fmt.Sprintf("can not fit rects into %d pages: %d left over", e.PageLimit, len(e.Unplaced))
	}
	return fmt.Sprintf("can not fit rects into texture: %d left over on page %d", len(e.Unplaced), e.Page)
}

// Is reports whether target is ErrPackingFailure.
func (e *PackingFailure) Is(target error) bool {
	return target == ErrPackingFailure
}
