package color

import (
	"fmt"

	"github.com/letion/libavif/internal/ir"
)

// PremultiplyAlpha scales the color channels of an RGBA buffer by alpha,
// in place. A buffer already flagged as premultiplied is left untouched, so
// the call is safe regardless of which conversion produced the buffer.
func PremultiplyAlpha(rgb *ir.RGBImage) error {
	if rgb.Format != ir.FormatRGBA {
		return fmt.Errorf("premultiply requires an RGBA buffer, got %d channels",
			rgb.Format.Channels())
	}
	if rgb.Pixels == nil {
		return fmt.Errorf("premultiply on unallocated buffer")
	}
	if rgb.AlphaPremultiplied {
		return nil
	}
	for y := 0; y < rgb.Height; y++ {
		row := rgb.Row(y)
		for x := 0; x < rgb.Width; x++ {
			p := row[x*4 : x*4+4]
			a := int(p[3])
			if a == 255 {
				continue
			}
			p[0] = byte((int(p[0])*a + 127) / 255)
			p[1] = byte((int(p[1])*a + 127) / 255)
			p[2] = byte((int(p[2])*a + 127) / 255)
		}
	}
	rgb.AlphaPremultiplied = true
	return nil
}
