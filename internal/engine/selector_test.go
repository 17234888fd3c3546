package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogIndex(t *testing.T, s Size) int {
	t.Helper()
	for i, c := range catalog {
		if c == s {
			return i
		}
	}
	t.Fatalf("%s is not a catalog size", s)
	return -1
}

// ─── Catalog Tests ────────────────────────────────────

func TestCatalog_Order(t *testing.T) {
	c := Catalog()

	require.Len(t, c, 22)
	assert.Equal(t, Size{16, 16}, c[0])
	assert.Equal(t, Size{32, 16}, c[1])
	assert.Equal(t, Size{16, 32}, c[2])
	assert.Equal(t, Size{2048, 2048}, c[len(c)-1])
	assert.Equal(t, c[len(c)-1], LargestPage())

	for i := 1; i < len(c); i++ {
		assert.GreaterOrEqual(t, c[i].Area(), c[i-1].Area(), "area must not shrink at %d", i)
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0] = Size{1, 1}

	assert.Equal(t, Size{16, 16}, Catalog()[0])
}

func TestWorkArea(t *testing.T) {
	w, h := workArea(Size{16, 32}, marginConfig{spacingX: 2, spacingY: 4, borderX: 1, borderY: 3})

	assert.Equal(t, int64(16), w)
	assert.Equal(t, int64(30), h)
}

// ─── Selector Tests ────────────────────────────────────

func TestSelectPage_RetriesWhenAreaFitsButShapeDoesNot(t *testing.T) {
	pending := []item{
		{index: 0, w: 10, h: 10},
		{index: 1, w: 10, h: 10},
		{index: 2, w: 10, h: 5},
	}

	sel := selectPage(pending, marginConfig{})

	assert.Equal(t, []Size{{16, 16}, {32, 16}}, sel.attempts)
	assert.Equal(t, Size{32, 16}, sel.candidate)
	assert.Empty(t, sel.leftover)
	assert.Equal(t, []placement{
		{index: 0, x: 0, y: 0, w: 10, h: 10},
		{index: 1, x: 10, y: 0, w: 10, h: 10},
		{index: 2, x: 0, y: 10, w: 10, h: 5},
	}, sel.placed)
}

func TestSelectPage_AreaPrecheckSkips(t *testing.T) {
	pending := []item{{index: 0, w: 20, h: 20}}

	sel := selectPage(pending, marginConfig{})

	// 16x16 is too small by area. 32x16 and 16x32 are large enough by area
	// but the wrong shape.
	assert.Equal(t, []Size{{32, 16}, {16, 32}, {32, 32}}, sel.attempts)
	assert.Equal(t, Size{32, 32}, sel.candidate)
	assert.Len(t, sel.placed, 1)
}

func TestSelectPage_SkipsEmptyWorkArea(t *testing.T) {
	pending := []item{{index: 0, w: 1, h: 1}}

	sel := selectPage(pending, marginConfig{borderX: 10, borderY: 10})

	assert.Equal(t, []Size{{32, 32}}, sel.attempts)
	require.Len(t, sel.placed, 1)
	assert.Equal(t, int64(0), sel.placed[0].x)
}

func TestSelectPage_LastCandidateAlwaysTried(t *testing.T) {
	pending := []item{{index: 0, w: 3000, h: 10}}

	sel := selectPage(pending, marginConfig{})

	require.NotEmpty(t, sel.attempts)
	assert.Equal(t, LargestPage(), sel.attempts[len(sel.attempts)-1])
	assert.Equal(t, LargestPage(), sel.candidate)
	assert.Empty(t, sel.placed)
	require.Len(t, sel.leftover, 1)
	assert.Equal(t, 0, sel.leftover[0].index)
}

func TestSelectPage_LastCandidateExemptFromAreaCheck(t *testing.T) {
	// Three full-size pages worth of area: only the last candidate is tried
	// and its partial result is accepted.
	pending := []item{
		{index: 0, w: 2048, h: 2048},
		{index: 1, w: 2048, h: 2048},
		{index: 2, w: 2048, h: 2048},
	}

	sel := selectPage(pending, marginConfig{})

	assert.Equal(t, []Size{LargestPage()}, sel.attempts)
	require.Len(t, sel.placed, 1)
	assert.Equal(t, 0, sel.placed[0].index)
	assert.Len(t, sel.leftover, 2)
}

func TestSelectPage_AttemptsFollowCatalogOrder(t *testing.T) {
	pending := []item{
		{index: 0, w: 300, h: 40},
		{index: 1, w: 40, h: 300},
		{index: 2, w: 200, h: 200},
		{index: 3, w: 33, h: 17},
	}

	sel := selectPage(pending, marginConfig{spacingX: 1, spacingY: 1})

	require.NotEmpty(t, sel.attempts)
	prev := -1
	for _, a := range sel.attempts {
		idx := catalogIndex(t, a)
		assert.Greater(t, idx, prev, "attempts must follow catalog order")
		prev = idx
	}
	assert.Empty(t, sel.leftover)
}

func TestSelectPage_EachAttemptStartsClean(t *testing.T) {
	// On 16x16 rects 0 and 2 are placed and rect 1 is not. The 32x16 retry
	// must match a fresh pack of the whole batch.
	pending := []item{
		{index: 0, w: 10, h: 10},
		{index: 1, w: 10, h: 10},
		{index: 2, w: 10, h: 5},
	}
	_, partial := packItems(16, 16, pending)
	require.Len(t, partial, 1)

	sel := selectPage(pending, marginConfig{})

	want, _ := packItems(32, 16, pending)
	assert.Equal(t, want, sel.placed)
	assert.Len(t, pending, 3, "pending batch must not shrink between attempts")
}
