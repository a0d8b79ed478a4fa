package pipeline

import (
	"fmt"
	"os"

	"github.com/letion/libavif/internal/color"
	"github.com/letion/libavif/internal/ir"
	"github.com/letion/libavif/internal/jpeg"
)

// DecodeJPEGToImage decodes a baseline JPEG file into a planar YUV image at
// the requested chroma format and bit depth (0 means 8). The codec is forced
// to emit RGB whatever the source color space, an embedded ICC profile is
// copied into the image before pixel work starts, and rows stream through
// the codec one scanline at a time into a bridge-owned RGB buffer.
//
// Failures wrap ErrIO, ErrCodecFatal or ErrConversion. All codec state is
// torn down on every path; a conversion failure leaves the image without
// pixel planes, though an already-copied profile is retained.
func DecodeJPEGToImage(path string, format ir.PixelFormat, depth int) (*ir.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading JPEG %s: %v", ErrIO, path, err)
	}

	sess, err := jpeg.NewDecodeSession(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
	}
	defer sess.Destroy()

	if err := sess.ReadHeader(); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
	}

	if depth == 0 {
		depth = 8
	}
	img := &ir.Image{
		Width:  sess.Width(),
		Height: sess.Height(),
		Depth:  depth,
		Format: format,
		// JPEG carries no alpha. Prevent confusion downstream.
		AlphaPremultiplied: false,
	}

	// Profile first: the bytes are copied, so they survive codec teardown.
	// Absence is not an error.
	icc, err := sess.ExtractProfile()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
	}
	img.SetProfileICC(icc)

	if err := sess.StartDecompress(); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
	}

	rgb := &ir.RGBImage{}
	rgb.SetDefaults(img)
	rgb.Format = ir.FormatRGB
	if err := rgb.AllocatePixels(); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrConversion, path, err)
	}

	for y := 0; y < img.Height; y++ {
		if err := sess.ReadScanline(rgb.Row(y)); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
		}
	}

	if err := color.ImageRGBToYUV(img, rgb); err != nil {
		return nil, fmt.Errorf("%w: converting %s to YUV: %v", ErrConversion, path, err)
	}

	if err := sess.FinishDecompress(); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrCodecFatal, path, err)
	}
	return img, nil
}
