package flashanimedit

import (
	"image"
)

// PaintEngine is the interface definition for presenting surfaces on a
// display. Drawing is batched between Begin and End; End makes the result
// visible.
type PaintEngine interface {
	GetWidth() int
	GetHeight() int
	Begin() error
	Clear(rect image.Rectangle) error
	DrawSurface(top image.Point, surface *Surface) error
	End() error
}
