package gamemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelToCell(t *testing.T) {
	cases := []struct {
		name     string
		px, py   int
		col, row int
	}{
		{"origin", 0, 0, 0, 0},
		{"inside first cell", 7, 7, 0, 0},
		{"next cell", 8, 9, 1, 1},
		{"negative floors", -1, -9, -1, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col, row := PixelToCell(c.px, c.py, 8)
			assert.Equal(t, c.col, col)
			assert.Equal(t, c.row, row)
		})
	}
}

func TestCellToPixel(t *testing.T) {
	x, y := CellToPixel(5, 5, 8)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 40.0, y)
}

func TestCellInBounds(t *testing.T) {
	assert.True(t, CellInBounds(0, 0, 2, 2))
	assert.True(t, CellInBounds(1, 1, 2, 2))
	assert.False(t, CellInBounds(2, 0, 2, 2))
	assert.False(t, CellInBounds(0, -1, 2, 2))
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 16, H: 16}

	t.Run("contained", func(t *testing.T) {
		b := Rect{X: 4, Y: 4, W: 4, H: 4}
		assert.Equal(t, b, a.Intersection(b))
		assert.Equal(t, 16.0, a.OverlapArea(b))
	})

	t.Run("partial", func(t *testing.T) {
		b := Rect{X: 8, Y: 12, W: 16, H: 16}
		assert.Equal(t, Rect{X: 8, Y: 12, W: 8, H: 4}, a.Intersection(b))
		assert.True(t, a.Overlaps(b))
	})

	t.Run("touching edges do not overlap", func(t *testing.T) {
		b := Rect{X: 16, Y: 0, W: 4, H: 4}
		assert.False(t, a.Overlaps(b))
		assert.Zero(t, a.OverlapArea(b))
	})
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 32, H: 16}
	assert.Equal(t, Rect{X: -16, Y: 0, W: 48, H: 16}, a.Union(Rect{X: -16, Y: 4, W: 16, H: 8}))
	assert.Equal(t, a, a.Union(Rect{X: 4, Y: 4, W: 4, H: 4}))
}

func TestRectPixelBounds(t *testing.T) {
	cases := []struct {
		name       string
		r          Rect
		x, y, w, h int
	}{
		{"aligned", Rect{X: 2, Y: 3, W: 6, H: 6}, 2, 3, 6, 6},
		{"fractional origin", Rect{X: 2.7, Y: 0, W: 6, H: 6}, 2, 0, 7, 6},
		{"fractional size", Rect{X: 0, Y: 0, W: 1.5, H: 0.5}, 0, 0, 2, 1},
		{"negative", Rect{X: -1.5, Y: -0.5, W: 1, H: 1}, -2, -1, 2, 2},
		{"empty", Rect{X: 4, Y: 4}, 4, 4, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y, w, h := tc.r.PixelBounds()
			assert.Equal(t, []int{tc.x, tc.y, tc.w, tc.h}, []int{x, y, w, h})
		})
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(3))
	assert.Equal(t, -1.0, Sign(-0.5))
	assert.Equal(t, 0.0, Sign(0))
}

func TestNormalizeDirection(t *testing.T) {
	x, y := NormalizeDirection(1, 1)
	assert.InDelta(t, 0.7071, x, 1e-4)
	assert.InDelta(t, 0.7071, y, 1e-4)

	x, y = NormalizeDirection(1, 0)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
}
