package models

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectValid(t *testing.T) {
	assert.True(t, Rect{X: 0, Y: 0, Width: 1, Height: 1}.Valid())
	assert.False(t, Rect{X: -1, Y: 0, Width: 5, Height: 5}.Valid())
	assert.False(t, Rect{X: 0, Y: -1, Width: 5, Height: 5}.Valid())
	assert.False(t, Rect{X: 3, Y: 3, Width: 0, Height: 5}.Valid())
	assert.False(t, Rect{X: 3, Y: 3, Width: 5, Height: -2}.Valid())
}

func TestRectGeometry(t *testing.T) {
	r := Rect{X: 22, Y: 22, Width: 47, Height: 27}
	assert.Equal(t, image.Rect(22, 22, 69, 49), r.Image())
	assert.True(t, r.Contains(22, 22))
	assert.True(t, r.Contains(68, 48))
	assert.False(t, r.Contains(69, 30))
	assert.False(t, r.Contains(30, 49))
}

func TestSegmentLength(t *testing.T) {
	assert.Equal(t, 150, Segment{X1: 10, Y1: 20, X2: 160, Y2: 20, Axis: Horizontal}.Length())
	assert.Equal(t, 40, Segment{X1: 5, Y1: 10, X2: 5, Y2: 50, Axis: Vertical}.Length())
}

func TestCellTableLookup(t *testing.T) {
	table := &CellTable{Columns: []CellColumn{
		{X: 22, Ys: []int{22, 52}, Widths: []int{47, 47}, Heights: []int{27, 27}},
		{X: 72, Ys: []int{22, 52, 82}, Widths: []int{47, 47, 47}, Heights: []int{27, 27, 27}},
	}}

	assert.Equal(t, 5, table.CellCount())
	assert.Equal(t, 3, table.MaxRows())

	r, ok := table.Cell(1, 2)
	assert.True(t, ok)
	assert.Equal(t, Rect{X: 72, Y: 82, Width: 47, Height: 27}, r)

	_, ok = table.Cell(0, 2)
	assert.False(t, ok, "first column has two rows")
	_, ok = table.Cell(2, 0)
	assert.False(t, ok)
	_, ok = table.Cell(-1, 0)
	assert.False(t, ok)
}

func TestNilCellTable(t *testing.T) {
	var table *CellTable
	_, ok := table.Cell(0, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, table.CellCount())
	assert.Equal(t, 0, table.MaxRows())
}
