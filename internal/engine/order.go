package engine

import (
	"fmt"
	"sort"
	"strconv"
)

// An Order is a presort applied to the rects before packing.
type Order uint32

const (
	// Unsorted packs rects in input order.
	Unsorted Order = iota
	// WidthDesc sorts widest rect first.
	WidthDesc
	// WidthAsc sorts widest rect last.
	WidthAsc
	// HeightDesc sorts tallest rect first.
	HeightDesc
	// HeightAsc sorts tallest rect last.
	HeightAsc
	// AreaDesc sorts largest area first.
	AreaDesc
	// AreaAsc sorts largest area last.
	AreaAsc
	// PerimeterDesc sorts largest perimeter first.
	PerimeterDesc
	// PerimeterAsc sorts largest perimeter last.
	PerimeterAsc
	// DifferenceDesc sorts largest difference between width and height first.
	DifferenceDesc
	// DifferenceAsc sorts largest difference between width and height last.
	DifferenceAsc
	// RatioDesc sorts largest width to height ratio first.
	RatioDesc
	// RatioAsc sorts largest width to height ratio last.
	RatioAsc

	maxOrder = RatioAsc
)

var names = [...]string{
	Unsorted:       "Unsorted",
	WidthDesc:      "WidthDesc",
	WidthAsc:       "WidthAsc",
	HeightDesc:     "HeightDesc",
	HeightAsc:      "HeightAsc",
	AreaDesc:       "AreaDesc",
	AreaAsc:        "AreaAsc",
	PerimeterDesc:  "PerimeterDesc",
	PerimeterAsc:   "PerimeterAsc",
	DifferenceDesc: "DifferenceDesc",
	DifferenceAsc:  "DifferenceAsc",
	RatioDesc:      "RatioDesc",
	RatioAsc:       "RatioAsc",
}

// String implements the Stringer interface.
func (o Order) String() (s string) {
	i := uint32(o)
	if i < uint32(len(names)) {
		s = names[i]
	}
	if s == "" {
		s = strconv.FormatUint(uint64(i), 10)
	}
	return
}

// Orders returns every order, Unsorted first.
func Orders() []Order {
	out := make([]Order, 0, maxOrder+1)
	for o := Unsorted; o <= maxOrder; o++ {
		out = append(out, o)
	}
	return out
}

// ParseOrder returns the order with the given name. The empty string is
// Unsorted.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return Unsorted, nil
	}
	for i, n := range names {
		if n == s {
			return Order(i), nil
		}
	}
	return Unsorted, fmt.Errorf("unknown order %q", s)
}

// cmpKeys compares two primary keys and then two secondary keys. It returns
// -1, 0 or 1.
func cmpKeys(a1, b1, a2, b2 int64) int {
	switch {
	case a1 < b1:
		return -1
	case a1 > b1:
		return 1
	case a2 < b2:
		return -1
	case a2 > b2:
		return 1
	}
	return 0
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// compare returns the ascending comparison of a and b under o, ignoring
// direction.
func (o Order) compare(a, b item) int {
	switch o {
	case WidthDesc, WidthAsc:
		return cmpKeys(a.w, b.w, a.h, b.h)
	case HeightDesc, HeightAsc:
		return cmpKeys(a.h, b.h, a.w, b.w)
	case AreaDesc, AreaAsc:
		return cmpKeys(a.w*a.h, b.w*b.h, 0, 0)
	case PerimeterDesc, PerimeterAsc:
		return cmpKeys(a.w+a.h, b.w+b.h, 0, 0)
	case DifferenceDesc, DifferenceAsc:
		return cmpKeys(abs64(a.w-a.h), abs64(b.w-b.h), 0, 0)
	case RatioDesc, RatioAsc:
		// a.w/a.h against b.w/b.h without division.
		return cmpKeys(a.w*b.h, b.w*a.h, 0, 0)
	}
	return 0
}

func (o Order) descending() bool {
	switch o {
	case WidthDesc, HeightDesc, AreaDesc, PerimeterDesc, DifferenceDesc, RatioDesc:
		return true
	}
	return false
}

// sortItems orders items in place. Equal items keep input index order.
func (o Order) sortItems(items []item) {
	if o == Unsorted {
		return
	}
	desc := o.descending()
	sort.SliceStable(items, func(i, j int) bool {
		c := o.compare(items[i], items[j])
		if c == 0 {
			return items[i].index < items[j].index
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
