package pipeline

import (
	"fmt"
	"os"

	"github.com/letion/libavif/internal/color"
	"github.com/letion/libavif/internal/ir"
	"github.com/letion/libavif/internal/jpeg"
)

// EncodeImageToJPEG encodes a planar YUV image to a baseline JPEG file at
// the given quality (0-100), upsampling chroma per the requested policy.
// A non-empty ICC profile is embedded ahead of the scan data. Images with
// alpha are flattened: the conversion always yields premultiplied color, so
// dropping the alpha channel leaves no fringing at transparent edges.
func EncodeImageToJPEG(img *ir.Image, path string, quality int, upsampling ir.ChromaUpsampling) error {
	return encodeImageToJPEG(img, path, quality, upsampling, jpeg.SupportsAlphaInput())
}

// encodeImageToJPEG takes the codec's alpha capability as a parameter so
// both channel-layout variants are exercisable regardless of the linked
// libjpeg build.
func encodeImageToJPEG(img *ir.Image, path string, quality int, upsampling ir.ChromaUpsampling, nativeAlpha bool) error {
	rgb := &ir.RGBImage{}
	rgb.SetDefaults(img)
	rgb.ChromaUpsampling = upsampling
	// Always request premultiplied color; it gives the natural appearance
	// once alpha is discarded.
	rgb.AlphaPremultiplied = true
	switch {
	case !img.HasAlpha():
		rgb.Format = ir.FormatRGB
	case nativeAlpha:
		// The codec takes four-byte rows directly; no fallback buffer needed.
		rgb.Format = ir.FormatRGBA
	case img.AlphaPremultiplied:
		// Already premultiplied in the planar domain: a plain RGB request
		// produces the same bytes as premultiply-then-drop would.
		rgb.Format = ir.FormatRGB
	default:
		rgb.Format = ir.FormatRGBA
	}

	if err := rgb.AllocatePixels(); err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrConversion, path, err)
	}
	if err := color.ImageYUVToRGB(img, rgb); err != nil {
		return fmt.Errorf("%w: converting %s to RGB: %v", ErrConversion, path, err)
	}

	out := rgb
	if !nativeAlpha && rgb.Format == ir.FormatRGBA {
		if err := color.PremultiplyAlpha(rgb); err != nil {
			return fmt.Errorf("%w: premultiplying %s: %v", ErrConversion, path, err)
		}
		out = dropAlpha(rgb)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: opening JPEG %s for write: %v", ErrIO, path, err)
	}
	defer f.Close()

	sess, err := jpeg.NewEncodeSession(jpeg.EncodeOptions{
		Width:      img.Width,
		Height:     img.Height,
		Quality:    quality,
		AlphaInput: out.Format == ir.FormatRGBA,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrCodecFatal, path, err)
	}
	defer sess.Destroy()

	if err := sess.StartCompress(); err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrCodecFatal, path, err)
	}
	// Profile markers must precede scan data.
	if err := sess.EmbedProfile(img.ICC); err != nil {
		return fmt.Errorf("%w: embedding profile in %s: %v", ErrCodecFatal, path, err)
	}
	for y := 0; y < img.Height; y++ {
		if err := sess.WriteScanline(out.Row(y)); err != nil {
			return fmt.Errorf("%w: encoding %s: %v", ErrCodecFatal, path, err)
		}
	}
	data, err := sess.FinishCompress()
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ErrCodecFatal, path, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: writing JPEG %s: %v", ErrIO, path, err)
	}
	return nil
}

// dropAlpha derives a 3-byte-stride RGB copy of an RGBA buffer, releasing
// no state on the source; the caller lets the RGBA buffer go once the copy
// replaces it.
func dropAlpha(src *ir.RGBImage) *ir.RGBImage {
	dst := &ir.RGBImage{
		Width:              src.Width,
		Height:             src.Height,
		Depth:              src.Depth,
		Format:             ir.FormatRGB,
		ChromaUpsampling:   src.ChromaUpsampling,
		AlphaPremultiplied: src.AlphaPremultiplied,
	}
	dst.RowBytes = dst.Width * 3
	dst.Pixels = make([]byte, dst.RowBytes*dst.Height)
	for y := 0; y < src.Height; y++ {
		srcRow := src.Row(y)
		dstRow := dst.Row(y)
		for x := 0; x < src.Width; x++ {
			copy(dstRow[x*3:x*3+3], srcRow[x*4:x*4+3])
		}
	}
	return dst
}
