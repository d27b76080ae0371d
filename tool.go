package flashanimedit

// Tool is the closed set of drawing tools. Adding a tool means extending
// this enumeration and the switches over it, not changing the session
// interface.
type Tool int

const (
	// ToolBrush draws freehand strokes with the active color.
	ToolBrush Tool = iota
)

func (tool Tool) String() string {
	switch tool {
	case ToolBrush:
		return "brush"
	default:
		return "unknown"
	}
}
