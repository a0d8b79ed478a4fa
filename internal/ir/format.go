package ir

import "fmt"

// PixelFormat identifies the chroma subsampling layout of a planar image.
type PixelFormat int

const (
	YUV444 PixelFormat = iota // no subsampling
	YUV422                    // chroma halved horizontally
	YUV420                    // chroma halved in both dimensions
	YUV400                    // luma only, no chroma planes
)

func (f PixelFormat) String() string {
	switch f {
	case YUV444:
		return "YUV444"
	case YUV422:
		return "YUV422"
	case YUV420:
		return "YUV420"
	case YUV400:
		return "YUV400"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// ParsePixelFormat converts a subsampling name ("444", "422", "420", "400")
// to a PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "444":
		return YUV444, nil
	case "422":
		return YUV422, nil
	case "420":
		return YUV420, nil
	case "400":
		return YUV400, nil
	default:
		return 0, fmt.Errorf("unknown YUV format: %q", s)
	}
}

// ChromaShiftX returns the log2 horizontal chroma subsampling factor.
func (f PixelFormat) ChromaShiftX() int {
	if f == YUV422 || f == YUV420 {
		return 1
	}
	return 0
}

// ChromaShiftY returns the log2 vertical chroma subsampling factor.
func (f PixelFormat) ChromaShiftY() int {
	if f == YUV420 {
		return 1
	}
	return 0
}

// HasChroma reports whether the format carries chroma planes at all.
func (f PixelFormat) HasChroma() bool {
	return f != YUV400
}

// ChromaUpsampling selects how subsampled chroma is expanded during
// YUV→RGB conversion.
type ChromaUpsampling int

const (
	UpsampleAutomatic   ChromaUpsampling = iota // best quality available
	UpsampleFastest                             // nearest neighbor
	UpsampleNearest                             // nearest neighbor, explicitly
	UpsampleBestQuality                         // bilinear
	UpsampleBilinear                            // bilinear, explicitly
)

// Bilinear reports whether this policy resolves to bilinear filtering.
func (u ChromaUpsampling) Bilinear() bool {
	switch u {
	case UpsampleFastest, UpsampleNearest:
		return false
	default:
		return true
	}
}

// ParseChromaUpsampling converts a policy name to a ChromaUpsampling.
func ParseChromaUpsampling(s string) (ChromaUpsampling, error) {
	switch s {
	case "automatic":
		return UpsampleAutomatic, nil
	case "fastest":
		return UpsampleFastest, nil
	case "nearest":
		return UpsampleNearest, nil
	case "best":
		return UpsampleBestQuality, nil
	case "bilinear":
		return UpsampleBilinear, nil
	default:
		return 0, fmt.Errorf("unknown chroma upsampling policy: %q", s)
	}
}
