package flashanimedit

import (
	"image"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

var mutexSdlInit = sync.Mutex{}
var sdlInited = false

func initSdl() {
	mutexSdlInit.Lock()
	defer mutexSdlInit.Unlock()

	if !sdlInited {
		sdl.Init(sdl.INIT_VIDEO)
		sdlInited = true
	}
}

type sdlPaintEngine struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	width    int
	height   int
}

// NewSDLPaintEngine creates a paint engine backed by an SDL window.
func NewSDLPaintEngine(width int, height int) (PaintEngine, error) {
	initSdl()

	window, renderer, err := sdl.CreateWindowAndRenderer(int32(width), int32(height), 0)
	if err != nil {
		return nil, err
	}

	return &sdlPaintEngine{window, renderer, width, height}, nil
}

func (p *sdlPaintEngine) GetWidth() int {
	return p.width
}

func (p *sdlPaintEngine) GetHeight() int {
	return p.height
}

func (p *sdlPaintEngine) Begin() error {
	p.renderer.SetDrawColor(0x30, 0x30, 0x30, 0xFF)
	return p.renderer.Clear()
}

func (p *sdlPaintEngine) Clear(rect image.Rectangle) error {
	sdlRect := sdl.Rect{
		X: int32(rect.Min.X),
		Y: int32(rect.Min.Y),
		W: int32(rect.Dx()),
		H: int32(rect.Dy()),
	}
	p.renderer.SetDrawColor(0xFF, 0xFF, 0xFF, 0xFF)
	return p.renderer.FillRect(&sdlRect)
}

func (p *sdlPaintEngine) DrawSurface(top image.Point, surface *Surface) error {
	// ABGR8888 matches the RGBA byte order of Surface.Data on little-endian.
	texture, err := p.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, int32(surface.Width), int32(surface.Height))
	if err != nil {
		return err
	}
	defer texture.Destroy()

	texturePixels, textureBytePerLine, err := texture.Lock(nil)
	if err != nil {
		return err
	}

	rowSize := surface.Width * 4
	for rowNum := 0; rowNum < surface.Height; rowNum++ {
		surfaceOffset := rowNum * surface.BytePerLine
		surfaceRow := surface.Data[surfaceOffset : surfaceOffset+rowSize]
		textureOffset := rowNum * textureBytePerLine
		textureRow := texturePixels[textureOffset : textureOffset+rowSize]
		copy(textureRow, surfaceRow)
	}
	texture.Unlock()

	sdlRect := sdl.Rect{
		X: int32(top.X),
		Y: int32(top.Y),
		W: int32(surface.Width),
		H: int32(surface.Height),
	}
	return p.renderer.Copy(texture, nil, &sdlRect)
}

func (p *sdlPaintEngine) End() error {
	p.renderer.Present()
	return nil
}
