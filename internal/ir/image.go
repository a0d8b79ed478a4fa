// Package ir holds the interchange representations passed between the JPEG
// codec sessions and the color conversion code: a planar YUV Image with
// optional alpha plane and ICC profile, and an interleaved RGBImage buffer.
package ir

import "fmt"

// Plane indices into Image.YUV.
const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2
)

// Image is a planar YUV image. Planes store one byte per sample at depths
// up to 8 and two bytes per sample (little-endian) at depths 9-16, with an
// explicit per-plane row stride in bytes. The image owns no codec state;
// its lifetime belongs to the caller across decode and encode.
type Image struct {
	Width  int
	Height int
	Depth  int // bits per sample, 8-16
	Format PixelFormat

	YUV       [3][]byte
	YUVStride [3]int // bytes per row

	Alpha              []byte
	AlphaStride        int
	AlphaPremultiplied bool

	ICC []byte // raw ICC profile, nil or empty means "no profile"
}

// BytesPerSample returns 1 for 8-bit images and 2 for deeper ones.
func (img *Image) BytesPerSample() int {
	if img.Depth > 8 {
		return 2
	}
	return 1
}

// MaxValue returns the largest representable sample value at the image depth.
func (img *Image) MaxValue() int {
	return (1 << img.Depth) - 1
}

// HasAlpha reports whether an alpha plane is present.
func (img *Image) HasAlpha() bool {
	return img.Alpha != nil
}

// PlaneWidth returns the sample width of the given plane, rounding chroma
// dimensions up for odd image sizes.
func (img *Image) PlaneWidth(plane int) int {
	if plane == PlaneY {
		return img.Width
	}
	if !img.Format.HasChroma() {
		return 0
	}
	shift := img.Format.ChromaShiftX()
	return (img.Width + (1 << shift) - 1) >> shift
}

// PlaneHeight returns the sample height of the given plane.
func (img *Image) PlaneHeight(plane int) int {
	if plane == PlaneY {
		return img.Height
	}
	if !img.Format.HasChroma() {
		return 0
	}
	shift := img.Format.ChromaShiftY()
	return (img.Height + (1 << shift) - 1) >> shift
}

// AllocatePlanes allocates the YUV planes (and the alpha plane when withAlpha
// is set) for the current geometry, replacing any existing pixel storage.
func (img *Image) AllocatePlanes(withAlpha bool) error {
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}
	if img.Depth < 8 || img.Depth > 16 {
		return fmt.Errorf("unsupported image depth %d", img.Depth)
	}
	bps := img.BytesPerSample()
	planes := 3
	if !img.Format.HasChroma() {
		planes = 1
		img.YUV[PlaneU], img.YUV[PlaneV] = nil, nil
		img.YUVStride[PlaneU], img.YUVStride[PlaneV] = 0, 0
	}
	for p := 0; p < planes; p++ {
		stride := img.PlaneWidth(p) * bps
		img.YUVStride[p] = stride
		img.YUV[p] = make([]byte, stride*img.PlaneHeight(p))
	}
	if withAlpha {
		img.AlphaStride = img.Width * bps
		img.Alpha = make([]byte, img.AlphaStride*img.Height)
	}
	return nil
}

// SetProfileICC copies profile bytes into the image. The bytes are copied,
// not referenced, so codec-owned memory may be released afterwards. An empty
// or nil profile clears the field; that is a valid "no profile" state.
func (img *Image) SetProfileICC(data []byte) {
	if len(data) == 0 {
		img.ICC = nil
		return
	}
	img.ICC = append([]byte(nil), data...)
}

// Sample reads one sample from a YUV plane, widening to int regardless of
// depth. Row offsets are in samples, not bytes.
func (img *Image) Sample(plane, x, y int) int {
	row := img.YUV[plane][y*img.YUVStride[plane]:]
	if img.BytesPerSample() == 2 {
		return int(row[2*x]) | int(row[2*x+1])<<8
	}
	return int(row[x])
}

// SetSample writes one sample to a YUV plane.
func (img *Image) SetSample(plane, x, y, v int) {
	row := img.YUV[plane][y*img.YUVStride[plane]:]
	if img.BytesPerSample() == 2 {
		row[2*x] = byte(v)
		row[2*x+1] = byte(v >> 8)
		return
	}
	row[x] = byte(v)
}

// AlphaSample reads one alpha sample, returning the opaque value when no
// alpha plane is present.
func (img *Image) AlphaSample(x, y int) int {
	if img.Alpha == nil {
		return img.MaxValue()
	}
	row := img.Alpha[y*img.AlphaStride:]
	if img.BytesPerSample() == 2 {
		return int(row[2*x]) | int(row[2*x+1])<<8
	}
	return int(row[x])
}

// SetAlphaSample writes one alpha sample. No-op without an alpha plane.
func (img *Image) SetAlphaSample(x, y, v int) {
	if img.Alpha == nil {
		return
	}
	row := img.Alpha[y*img.AlphaStride:]
	if img.BytesPerSample() == 2 {
		row[2*x] = byte(v)
		row[2*x+1] = byte(v >> 8)
		return
	}
	row[x] = byte(v)
}
