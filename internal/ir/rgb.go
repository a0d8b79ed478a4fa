package ir

import "fmt"

// RGBFormat identifies the channel layout of an interleaved buffer.
type RGBFormat int

const (
	FormatRGB  RGBFormat = iota // 3 bytes per pixel
	FormatRGBA                  // 4 bytes per pixel, alpha last
)

// Channels returns the number of interleaved channels per pixel.
func (f RGBFormat) Channels() int {
	if f == FormatRGBA {
		return 4
	}
	return 3
}

// HasAlpha reports whether the layout carries an alpha channel.
func (f RGBFormat) HasAlpha() bool {
	return f == FormatRGBA
}

// RGBImage is an interleaved 8-bit pixel buffer, the interchange point
// between the JPEG codec and the planar Image. AlphaPremultiplied describes
// the semantics of the pixel data: set before a YUV→RGB conversion it is a
// request, afterwards it is a statement about the buffer contents.
type RGBImage struct {
	Width  int
	Height int
	Depth  int // bits per channel; the JPEG bridge only uses 8
	Format RGBFormat

	ChromaUpsampling   ChromaUpsampling
	AlphaPremultiplied bool

	RowBytes int // row stride in bytes, >= Width*channels
	Pixels   []byte
}

// SetDefaults mirrors the geometry of a planar image into the buffer
// description: full RGBA layout at 8 bits, straight alpha, automatic chroma
// upsampling. Callers override fields before AllocatePixels.
func (rgb *RGBImage) SetDefaults(img *Image) {
	rgb.Width = img.Width
	rgb.Height = img.Height
	rgb.Depth = 8
	rgb.Format = FormatRGBA
	rgb.ChromaUpsampling = UpsampleAutomatic
	rgb.AlphaPremultiplied = false
	rgb.RowBytes = 0
	rgb.Pixels = nil
}

// AllocatePixels sizes the buffer exactly: stride Width×channels, capacity
// stride×Height.
func (rgb *RGBImage) AllocatePixels() error {
	if rgb.Width < 0 || rgb.Height < 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", rgb.Width, rgb.Height)
	}
	if rgb.Depth != 8 {
		return fmt.Errorf("unsupported buffer depth %d", rgb.Depth)
	}
	rgb.RowBytes = rgb.Width * rgb.Format.Channels()
	rgb.Pixels = make([]byte, rgb.RowBytes*rgb.Height)
	return nil
}

// Row returns the pixel row at y as a subslice of the backing buffer.
func (rgb *RGBImage) Row(y int) []byte {
	return rgb.Pixels[y*rgb.RowBytes : y*rgb.RowBytes+rgb.Width*rgb.Format.Channels()]
}
