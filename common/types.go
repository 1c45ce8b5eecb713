// package common contains common types and helpers that are used throughout this engine. They are not interface-wrapped
// structs, just plain structs and functions that express commonly used data-types.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// ImportedTexture describes a texture sourced from disk or from an in-memory encoded image.
// For embedded textures the Data field contains the encoded bytes, otherwise Path is read.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "container").
	Name string

	// Path is the file path for external textures (empty for embedded).
	Path string

	// Data contains encoded image bytes (PNG/JPEG) for embedded textures.
	Data []byte

	// FlipY flips rows on decode so that v=0 addresses the bottom of the image.
	FlipY bool

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture to RGBA staging data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the source is missing or decoding fails
func (t *ImportedTexture) Decode() (TextureStagingData, error) {
	if t == nil {
		return TextureStagingData{}, errors.New("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, errors.New("texture has neither data nor path")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	if t.FlipY {
		flipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}

	t.Width = bounds.Dx()
	t.Height = bounds.Dy()

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(t.Width),
		Height: uint32(t.Height),
	}, nil
}

// CheckerTexture generates a two-colour checkerboard used when a texture cannot be loaded.
//
// Parameters:
//   - size: width and height in pixels
//   - cells: number of cells per side
//   - a, b: RGBA colours of the alternating cells
//
// Returns:
//   - TextureStagingData: the generated pixels
func CheckerTexture(size, cells int, a, b [4]byte) TextureStagingData {
	size = max(size, 1)
	cells = Clamp(cells, 1, size)
	cell := size / cells

	pix := make([]byte, size*size*4)
	for y := range size {
		for x := range size {
			c := a
			if ((x/cell)+(y/cell))%2 == 1 {
				c = b
			}
			copy(pix[(y*size+x)*4:], c[:])
		}
	}
	return TextureStagingData{Pixels: pix, Width: uint32(size), Height: uint32(size)}
}

// flipRows reverses the row order of a tightly packed pixel buffer in place.
func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, b)
		copy(b, tmp)
	}
}
