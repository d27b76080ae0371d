package flashanimedit

import (
	"errors"
	"fmt"
	"image"
	"os"
	"syscall"

	drm "github.com/rmcsoft/godrm"
	"github.com/rmcsoft/godrm/mode"
)

// The scanout format is XRGB8888: bytes B, G, R, X in memory.
const drmPixelSize = 4

type drmFramebuffer struct {
	handle      uint32
	id          uint32
	buf         []byte
	bytePerLine int
}

type kmsdrmPaintEngine struct {
	card    *os.File
	modeset mode.Modeset

	framebuffers        []*drmFramebuffer
	frontFrameBufferNum int

	isActive bool
}

// NewKMSDRMPaintEngine creates a paint engine that scans out directly to a
// DRM dumb buffer, for running the editor on a bare console or kiosk
// display without a windowing system.
func NewKMSDRMPaintEngine(cardNum int) (PaintEngine, error) {
	card, err := drm.OpenCard(cardNum)
	if err != nil {
		return nil, err
	}

	if !drm.HasDumbBuffer(card) {
		return nil, fmt.Errorf("drm device %v does not support dumb buffers", cardNum)
	}

	paintEngine := kmsdrmPaintEngine{
		card: card,
	}

	simpleMSet, err := mode.NewSimpleModeset(card)
	if err != nil {
		return nil, err
	}

	if len(simpleMSet.Modesets) == 0 {
		return nil, errors.New("modesets is empty")
	}

	paintEngine.modeset = simpleMSet.Modesets[0]
	paintEngine.framebuffers = []*drmFramebuffer{}
	for i := 0; i < 2; i++ {
		framebuffer, err := paintEngine.createFramebuffer()
		if err != nil {
			return nil, err
		}
		paintEngine.framebuffers = append(paintEngine.framebuffers, framebuffer)
	}

	return &paintEngine, nil
}

func (p *kmsdrmPaintEngine) GetWidth() int {
	return int(p.modeset.Width)
}

func (p *kmsdrmPaintEngine) GetHeight() int {
	return int(p.modeset.Height)
}

func (p *kmsdrmPaintEngine) Begin() error {
	if p.isActive {
		return errors.New("KMSDRMPaintEngine is already active")
	}

	p.isActive = true
	p.fillBack(0x30, 0x30, 0x30)
	return nil
}

func (p *kmsdrmPaintEngine) Clear(rect image.Rectangle) error {
	if !p.isActive {
		return errors.New("KMSDRMPaintEngine is not active")
	}

	fb := p.backFramebuffer()
	r := rect.Intersect(p.bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.buf[y*fb.bytePerLine:]
		for x := r.Min.X; x < r.Max.X; x++ {
			offset := x * drmPixelSize
			row[offset+0] = 0xFF
			row[offset+1] = 0xFF
			row[offset+2] = 0xFF
			row[offset+3] = 0x00
		}
	}
	return nil
}

func (p *kmsdrmPaintEngine) DrawSurface(top image.Point, surface *Surface) error {
	if !p.isActive {
		return errors.New("KMSDRMPaintEngine is not active")
	}

	fb := p.backFramebuffer()
	dst := image.Rect(top.X, top.Y, top.X+surface.Width, top.Y+surface.Height)
	r := dst.Intersect(p.bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		srcRow := surface.Data[(y-top.Y)*surface.BytePerLine:]
		dstRow := fb.buf[y*fb.bytePerLine:]
		for x := r.Min.X; x < r.Max.X; x++ {
			srcOffset := (x - top.X) * 4
			dstOffset := x * drmPixelSize
			dstRow[dstOffset+0] = srcRow[srcOffset+2] // B
			dstRow[dstOffset+1] = srcRow[srcOffset+1] // G
			dstRow[dstOffset+2] = srcRow[srcOffset+0] // R
			dstRow[dstOffset+3] = 0x00
		}
	}
	return nil
}

func (p *kmsdrmPaintEngine) End() error {
	if !p.isActive {
		return errors.New("KMSDRMPaintEngine is not active")
	}

	fb := p.backFramebuffer()
	err := mode.SetCrtc(p.card, p.modeset.Crtc, fb.id,
		0, 0, &p.modeset.Conn, 1, &p.modeset.Mode)

	p.isActive = false
	p.frontFrameBufferNum = (p.frontFrameBufferNum + 1) % len(p.framebuffers)
	return err
}

func (p *kmsdrmPaintEngine) bounds() image.Rectangle {
	return image.Rect(0, 0, int(p.modeset.Width), int(p.modeset.Height))
}

// backFramebuffer is the buffer being drawn; the other is on screen.
func (p *kmsdrmPaintEngine) backFramebuffer() *drmFramebuffer {
	return p.framebuffers[(p.frontFrameBufferNum+1)%len(p.framebuffers)]
}

func (p *kmsdrmPaintEngine) fillBack(r, g, b byte) {
	fb := p.backFramebuffer()
	for y := 0; y < int(p.modeset.Height); y++ {
		row := fb.buf[y*fb.bytePerLine:]
		for x := 0; x < int(p.modeset.Width); x++ {
			offset := x * drmPixelSize
			row[offset+0] = b
			row[offset+1] = g
			row[offset+2] = r
			row[offset+3] = 0x00
		}
	}
}

func (p *kmsdrmPaintEngine) createFramebuffer() (*drmFramebuffer, error) {

	fb := &drmFramebuffer{}
	var err error

	defer func() {
		if err != nil {
			p.destroyFramebuffer(fb)
		}
	}()

	width := p.modeset.Width
	height := p.modeset.Height

	fbInfo, err := mode.CreateFB(p.card, uint16(width), uint16(height), drmPixelSize*8)
	if err != nil {
		return nil, err
	}

	fb.handle = fbInfo.Handle
	fb.bytePerLine = int(fbInfo.Pitch)
	fb.id, err = mode.AddFB(p.card, uint16(width), uint16(height),
		24, drmPixelSize*8, fbInfo.Pitch, fb.handle)
	if err != nil {
		return nil, err
	}

	offset, err := mode.MapDumb(p.card, fb.handle)
	if err != nil {
		return nil, err
	}

	fb.buf, err = syscall.Mmap(int(p.card.Fd()), int64(offset), int(fbInfo.Size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return fb, err
}

func (p *kmsdrmPaintEngine) destroyFramebuffer(fb *drmFramebuffer) {
	if fb != nil && p.card != nil {
		if fb.id != 0 {
			mode.RmFB(p.card, fb.id)
			fb.id = 0
		}

		if fb.handle != 0 {
			mode.DestroyDumb(p.card, fb.handle)
			fb.handle = 0
		}

		if fb.buf != nil {
			syscall.Munmap(fb.buf)
			fb.buf = nil
		}
	}
}
