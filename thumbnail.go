package flashanimedit

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail dimensions for the frame strip.
const (
	ThumbWidth  = 32
	ThumbHeight = 24
)

// Thumbnail scales a frame surface down to the fixed thumbnail size.
// A blank frame yields a plain white thumbnail.
func Thumbnail(surface *Surface) *Surface {
	thumb := NewSurface(ThumbWidth, ThumbHeight)
	dst := thumb.ToImage()

	if surface == nil {
		xdraw.Draw(dst, dst.Bounds(), image.White, image.Point{}, xdraw.Src)
		return thumb
	}

	src := surface.ToImage()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return thumb
}
