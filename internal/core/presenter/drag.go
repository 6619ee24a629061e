package presenter

import (
	"math"

	"github.com/riordanpawley/toastkit/internal/domain"
)

// DismissThreshold is the drag distance at which releasing dismisses the toast
const DismissThreshold = 20.0

// Vector is a 2D displacement in gesture units
type Vector struct {
	X float64
	Y float64
}

// IsZero reports whether both components are zero
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DragAccumulator tracks one drag gesture along the dismiss axis.
//
// The offset only ever moves further off screen: translation towards the
// parent is ignored and the offset never crosses zero.
type DragAccumulator struct {
	offset   Vector
	distance float64
}

// Change folds a cumulative gesture translation into the accumulator and
// returns the offset to render and the absolute distance so far
func (d *DragAccumulator) Change(translation Vector, alignment domain.Alignment) (Vector, float64) {
	dir := alignment.DismissDirection()

	switch alignment.DismissAxis() {
	case domain.AxisHorizontal:
		// dir*value grows as the toast moves off screen
		if dir*translation.X >= dir*d.offset.X && dir*translation.X > 0 {
			d.offset.X = translation.X
		}
		d.distance = math.Abs(d.offset.X)
	default:
		if dir*translation.Y >= dir*d.offset.Y && dir*translation.Y > 0 {
			d.offset.Y = translation.Y
		}
		d.distance = math.Abs(d.offset.Y)
	}

	return d.offset, d.distance
}

// Offset returns the current offset
func (d *DragAccumulator) Offset() Vector {
	return d.offset
}

// Distance returns the accumulated distance
func (d *DragAccumulator) Distance() float64 {
	return d.distance
}

// Reset zeroes the accumulator
func (d *DragAccumulator) Reset() {
	d.offset = Vector{}
	d.distance = 0
}
