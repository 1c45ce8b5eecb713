package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTwoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := range 2 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestImportedTextureDecode(t *testing.T) {
	data := encodeTwoRowPNG(t)

	cases := []struct {
		name     string
		flip     bool
		firstRed byte
	}{
		{"as_stored", false, 255},
		{"flipped", true, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tex := &ImportedTexture{Name: "rows", Data: data, FlipY: c.flip}
			staged, err := tex.Decode()
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if staged.Width != 2 || staged.Height != 2 || tex.Width != 2 || tex.Height != 2 {
				t.Fatalf("unexpected size %dx%d", staged.Width, staged.Height)
			}
			if len(staged.Pixels) != 16 {
				t.Fatalf("expected 16 bytes, got %d", len(staged.Pixels))
			}
			if staged.Pixels[0] != c.firstRed {
				t.Fatalf("expected first red byte %d, got %d", c.firstRed, staged.Pixels[0])
			}
		})
	}
}

func TestImportedTextureDecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	if _, err := nilTex.Decode(); err == nil {
		t.Fatalf("expected error for nil texture")
	}
	if _, err := (&ImportedTexture{}).Decode(); err == nil {
		t.Fatalf("expected error for empty texture")
	}
	if _, err := (&ImportedTexture{Path: "does/not/exist.png"}).Decode(); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := (&ImportedTexture{Data: []byte("not an image")}).Decode(); err == nil {
		t.Fatalf("expected error for garbage data")
	}
}

func TestCheckerTexture(t *testing.T) {
	a := [4]byte{255, 255, 255, 255}
	b := [4]byte{0, 0, 0, 255}
	tex := CheckerTexture(4, 2, a, b)

	if tex.Width != 4 || tex.Height != 4 || len(tex.Pixels) != 64 {
		t.Fatalf("unexpected texture %dx%d (%d bytes)", tex.Width, tex.Height, len(tex.Pixels))
	}
	pixel := func(x, y int) byte { return tex.Pixels[(y*4+x)*4] }
	if pixel(0, 0) != 255 || pixel(2, 0) != 0 || pixel(0, 2) != 0 || pixel(3, 3) != 255 {
		t.Fatalf("unexpected checker layout")
	}
}
