package flashanimedit

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/setanarut/apng"
)

// ArchiveName is the fixed file name of the exported archive.
const ArchiveName = "animation.zip"

// apngDelay is the per-frame delay of the APNG preview in 1/100s,
// matching the 10 fps playback cadence.
const apngDelay = 10

var (
	// ErrEncode reports that a frame's pixels could not be encoded.
	ErrEncode = errors.New("frame encoding failed")
	// ErrArchive reports that the archive could not be generated.
	ErrArchive = errors.New("archive generation failed")
)

// WriteArchive serializes every non-blank frame to a lossless PNG and
// bundles them into a single zip archive written to w. Files are named
// frame<N>.png where N is the 1-based original frame position; blank frames
// contribute no file and do not shift the numbering of later frames.
//
// The export is all-or-nothing: the first encoding or archive error aborts
// the whole run and is returned as a single terminal error.
func WriteArchive(w io.Writer, frames []*Surface) error {
	archive := zip.NewWriter(w)

	for i, surface := range frames {
		if surface == nil {
			continue
		}

		entry, err := archive.Create(fmt.Sprintf("frame%d.png", i+1))
		if err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrArchive, i+1, err)
		}
		if err := png.Encode(entry, surface.ToImage()); err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrEncode, i+1, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return nil
}

// WriteAPNG writes the non-blank frames as a single animated PNG playing at
// the fixed frame rate. It is a preview companion to the zip archive, not a
// replacement for it.
func WriteAPNG(path string, frames []*Surface) error {
	images := make([]image.Image, 0, len(frames))
	for _, surface := range frames {
		if surface == nil {
			continue
		}
		images = append(images, surface.ToImage())
	}

	if len(images) == 0 {
		return fmt.Errorf("%w: no drawn frames", ErrEncode)
	}

	if err := apng.Save(path, images, apngDelay); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
