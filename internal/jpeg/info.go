package jpeg

import "fmt"

func colorSpaceName(cs int) string {
	switch cs {
	case 0:
		return "Unknown"
	case 1:
		return "Grayscale"
	case 2:
		return "RGB"
	case 3:
		return "YCbCr"
	case 4:
		return "CMYK"
	case 5:
		return "YCCK"
	default:
		return fmt.Sprintf("J_COLOR_SPACE(%d)", cs)
	}
}

// ImageInfo contains metadata about a JPEG file.
type ImageInfo struct {
	Width         int
	Height        int
	NumComponents int
	ColorSpace    string
	ICC           []byte // extracted ICC profile, nil if absent
}

// GetInfo reads JPEG metadata and extracts any embedded ICC profile without
// decoding scanlines.
func GetInfo(data []byte) (*ImageInfo, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("data too short for JPEG")
	}

	sess, err := NewDecodeSession(data)
	if err != nil {
		return nil, err
	}
	defer sess.Destroy()

	if err := sess.ReadHeader(); err != nil {
		return nil, err
	}
	icc, err := sess.ExtractProfile()
	if err != nil {
		return nil, err
	}

	return &ImageInfo{
		Width:         sess.Width(),
		Height:        sess.Height(),
		NumComponents: sess.NumComponents(),
		ColorSpace:    sess.ColorSpace(),
		ICC:           icc,
	}, nil
}
