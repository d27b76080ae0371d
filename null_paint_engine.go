package flashanimedit

import (
	"image"
)

type nullPaintEngine struct {
	width  int
	height int
}

// NullPaintEngine returns a paint engine that draws nothing. It is used for
// headless export runs and in tests.
func NullPaintEngine(width, height int) PaintEngine {
	return nullPaintEngine{width, height}
}

func (p nullPaintEngine) GetWidth() int {
	return p.width
}

func (p nullPaintEngine) GetHeight() int {
	return p.height
}

func (p nullPaintEngine) Begin() error {
	return nil
}

func (p nullPaintEngine) Clear(rect image.Rectangle) error {
	return nil
}

func (p nullPaintEngine) DrawSurface(top image.Point, surface *Surface) error {
	return nil
}

func (p nullPaintEngine) End() error {
	return nil
}
