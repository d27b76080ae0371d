package flashanimedit

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Canvas dimensions are fixed for the whole editing session. Every Surface
// committed to a FrameStore has exactly this size.
const (
	CanvasWidth  = 520
	CanvasHeight = 390
)

// Surface contains a collection of RGBA pixels for one frame.
// A nil *Surface means "blank": no content, rendered as a cleared canvas.
type Surface struct {
	Data        []byte
	Width       int
	Height      int
	BytePerLine int
}

// NewSurface creates an empty (fully transparent) Surface.
func NewSurface(width, height int) *Surface {
	bytePerLine := width * 4
	return &Surface{
		Data:        make([]byte, height*bytePerLine),
		Width:       width,
		Height:      height,
		BytePerLine: bytePerLine,
	}
}

// SurfaceFromImage copies the pixels of img into a new Surface.
func SurfaceFromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	surface := NewSurface(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		rowSize := surface.Width * 4
		for row := 0; row < surface.Height; row++ {
			srcOffset := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+row)
			src := rgba.Pix[srcOffset : srcOffset+rowSize]
			dst := surface.Data[row*surface.BytePerLine:]
			copy(dst, src)
		}
		return surface
	}

	for y := 0; y < surface.Height; y++ {
		for x := 0; x < surface.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			offset := y*surface.BytePerLine + x*4
			surface.Data[offset+0] = byte(r >> 8)
			surface.Data[offset+1] = byte(g >> 8)
			surface.Data[offset+2] = byte(b >> 8)
			surface.Data[offset+3] = byte(a >> 8)
		}
	}
	return surface
}

// LoadSurface reads an image file (PNG or JPEG) into a Surface.
func LoadSurface(path string) (*Surface, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return SurfaceFromImage(img), nil
}

// ToImage wraps the Surface pixels in an image.RGBA without copying.
func (surface *Surface) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    surface.Data,
		Stride: surface.BytePerLine,
		Rect:   image.Rect(0, 0, surface.Width, surface.Height),
	}
}

// Clone makes a deep copy of the Surface. Clone of nil is nil, so blank
// frames stay blank through snapshots.
func (surface *Surface) Clone() *Surface {
	if surface == nil {
		return nil
	}

	clone := &Surface{
		Data:        make([]byte, len(surface.Data)),
		Width:       surface.Width,
		Height:      surface.Height,
		BytePerLine: surface.BytePerLine,
	}
	copy(clone.Data, surface.Data)
	return clone
}

// Eq reports whether two surfaces hold identical pixels.
func (surface *Surface) Eq(other *Surface) bool {
	if surface == nil || other == nil {
		return surface == other
	}
	return surface.Width == other.Width &&
		surface.Height == other.Height &&
		bytes.Equal(surface.Data, other.Data)
}
