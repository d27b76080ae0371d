package flashanimedit

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Brush strokes use a fixed width with round caps.
const brushWidth = 3

// DrawSession is the live drawing surface and the transient state of an
// in-progress stroke: last pointer position, active tool and color, and the
// dirty flag marking pixels that are not yet committed to the FrameStore.
type DrawSession struct {
	dc    *gg.Context
	tool  Tool
	color colorful.Color

	lastX, lastY int
	stroking     bool
	dirty        bool
}

// NewDrawSession creates a session over a cleared canvas-sized surface.
func NewDrawSession() *DrawSession {
	session := &DrawSession{
		tool:  ToolBrush,
		color: colorful.Color{}, // black
	}
	session.Load(nil)
	return session
}

// SetTool selects the active drawing tool.
func (session *DrawSession) SetTool(tool Tool) {
	session.tool = tool
}

// Tool returns the active drawing tool.
func (session *DrawSession) Tool() Tool {
	return session.tool
}

// SetColor selects the active brush color.
func (session *DrawSession) SetColor(color colorful.Color) {
	session.color = color
}

// SetColorHex selects the active brush color from a hex string like
// "#222222".
func (session *DrawSession) SetColorHex(hex string) error {
	color, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("invalid brush color %q: %w", hex, err)
	}
	session.color = color
	return nil
}

// Color returns the active brush color.
func (session *DrawSession) Color() colorful.Color {
	return session.color
}

// Dirty reports whether the live surface has pixels not yet committed to
// the frame the session was loaded from.
func (session *DrawSession) Dirty() bool {
	return session.dirty
}

// PointerDown begins a stroke at the given canvas coordinates. Only the
// brush starts strokes; future tools get their own arm of the switch.
func (session *DrawSession) PointerDown(x, y int) {
	switch session.tool {
	case ToolBrush:
		session.lastX = clamp(x, 0, CanvasWidth-1)
		session.lastY = clamp(y, 0, CanvasHeight-1)
		session.stroking = true
	}
}

// PointerMove draws a segment from the last recorded point to (x, y) while a
// stroke is active, and marks the session dirty. This is the only place the
// live pixels change outside Load.
func (session *DrawSession) PointerMove(x, y int) {
	if !session.stroking {
		return
	}

	x = clamp(x, 0, CanvasWidth-1)
	y = clamp(y, 0, CanvasHeight-1)

	session.dc.SetColor(session.color)
	session.dc.DrawLine(float64(session.lastX), float64(session.lastY),
		float64(x), float64(y))
	session.dc.Stroke()

	session.lastX = x
	session.lastY = y
	session.dirty = true
}

// PointerUp ends the stroke. Dirtiness persists until the next commit.
func (session *DrawSession) PointerUp() {
	session.stroking = false
}

// Capture copies the live pixels into a fresh Surface suitable for
// committing into a FrameStore.
func (session *DrawSession) Capture() *Surface {
	return SurfaceFromImage(session.dc.Image())
}

// ClearDirty marks the live surface as committed.
func (session *DrawSession) ClearDirty() {
	session.dirty = false
}

// Load replaces the live surface with the content of surface (nil loads a
// cleared white canvas), ending any active stroke and dropping uncommitted
// pixels. Navigating frames always goes through Load, which is what makes
// discard-on-navigate hold.
func (session *DrawSession) Load(surface *Surface) {
	if surface == nil {
		session.dc = gg.NewContext(CanvasWidth, CanvasHeight)
		session.dc.ClearWithColor(gg.White)
	} else {
		session.dc = gg.NewContextForImage(surface.ToImage())
	}
	session.dc.SetLineWidth(brushWidth)
	session.dc.SetLineCap(gg.LineCapRound)

	session.stroking = false
	session.dirty = false
}
