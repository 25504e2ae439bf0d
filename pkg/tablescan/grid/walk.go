package grid

import (
	"errors"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// ErrCellWalkFailed indicates a boundary walk left the mask. Only the cell
// being walked is lost.
var ErrCellWalkFailed = errors.New("cell boundary walk left the image")

// walkState is a phase of the boundary walk.
type walkState int

const (
	seekLeft walkState = iota
	seekTop
	seekRight
	seekBottom
	walkDone
	walkInvalid
)

func (s walkState) String() string {
	switch s {
	case seekLeft:
		return "seek-left"
	case seekTop:
		return "seek-top"
	case seekRight:
		return "seek-right"
	case seekBottom:
		return "seek-bottom"
	case walkDone:
		return "done"
	default:
		return "invalid"
	}
}

// cursor is the walk position plus the edges fixed so far.
type cursor struct {
	x, y                     int
	left, top, width, height int
}

// transition advances the walk by one pixel.
type transition func(m *mask.Mask, c cursor) (walkState, cursor)

var transitions = map[walkState]transition{
	seekLeft:   stepLeft,
	seekTop:    stepTop,
	seekRight:  stepRight,
	seekBottom: stepBottom,
}

// Walk recovers the rectangle of the cell containing seed. It moves across
// the cell interior and stops at the enclosing line pixels: left, then up,
// then right counting the width, then down counting the height. The result is
// false when any phase leaves the mask or the rectangle is degenerate.
func Walk(m *mask.Mask, seed models.Point) (models.Rect, bool) {
	r, state := walk(m, seed)
	return r, state == walkDone
}

// walk runs the state machine and returns walkDone on success, or the phase
// that was active when the walk failed.
func walk(m *mask.Mask, seed models.Point) (models.Rect, walkState) {
	state, c := seekLeft, cursor{x: seed.X, y: seed.Y}
	for {
		next, nc := transitions[state](m, c)
		if next == walkInvalid {
			return models.Rect{}, state
		}
		state, c = next, nc
		if state == walkDone {
			break
		}
	}
	r := models.Rect{X: c.left, Y: c.top, Width: c.width, Height: c.height}
	if !r.Valid() {
		return models.Rect{}, walkInvalid
	}
	return r, walkDone
}

func stepLeft(m *mask.Mask, c cursor) (walkState, cursor) {
	if !m.In(c.x, c.y) {
		return walkInvalid, c
	}
	if !m.At(c.x, c.y) {
		c.x--
		return seekLeft, c
	}
	c.left = c.x + 1
	c.x = c.left
	return seekTop, c
}

func stepTop(m *mask.Mask, c cursor) (walkState, cursor) {
	if !m.In(c.left, c.y) {
		return walkInvalid, c
	}
	if !m.At(c.left, c.y) {
		c.y--
		return seekTop, c
	}
	c.top = c.y + 1
	c.x, c.y = c.left, c.top
	return seekRight, c
}

func stepRight(m *mask.Mask, c cursor) (walkState, cursor) {
	if !m.In(c.x, c.y) {
		return walkInvalid, c
	}
	if !m.At(c.x, c.y) {
		c.x++
		c.width++
		return seekRight, c
	}
	c.x--
	c.width--
	return seekBottom, c
}

func stepBottom(m *mask.Mask, c cursor) (walkState, cursor) {
	if !m.In(c.x, c.y) {
		return walkInvalid, c
	}
	if !m.At(c.x, c.y) {
		c.y++
		c.height++
		return seekBottom, c
	}
	c.height--
	return walkDone, c
}
