// Package color converts between interleaved 8-bit RGB(A) buffers and planar
// YUV images using the JFIF full-range BT.601 matrix, and handles alpha
// premultiplication. It also parses ICC profile headers; the profiles
// themselves are passed through the JPEG bridge untouched.
package color

import (
	"fmt"

	"github.com/letion/libavif/internal/ir"
)

// Full-range BT.601 coefficients in 16.16 fixed point, matching the JFIF
// conversion used by libjpeg itself.
const (
	coefRY = 19595 // 0.299
	coefGY = 38470 // 0.587
	coefBY = 7471  // 0.114

	coefRCb = -11056 // -0.168736
	coefGCb = -21712 // -0.331264
	coefBCb = 32768  // 0.5

	coefRCr = 32768  // 0.5
	coefGCr = -27440 // -0.418688
	coefBCr = -5328  // -0.081312

	coefCrR = 91881  // 1.402
	coefCbG = 22554  // 0.344136
	coefCrG = 46802  // 0.714136
	coefCbB = 116130 // 1.772
)

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func rgbToYCbCr(r, g, b int) (yy, cb, cr int) {
	yy = clamp8((coefRY*r + coefGY*g + coefBY*b + 1<<15) >> 16)
	cb = clamp8((coefRCb*r + coefGCb*g + coefBCb*b + 257<<15) >> 16)
	cr = clamp8((coefRCr*r + coefGCr*g + coefBCr*b + 257<<15) >> 16)
	return
}

func yCbCrToRGB(yy, cb, cr int) (r, g, b int) {
	r = clamp8((yy<<16 + coefCrR*(cr-128) + 1<<15) >> 16)
	g = clamp8((yy<<16 - coefCbG*(cb-128) - coefCrG*(cr-128) + 1<<15) >> 16)
	b = clamp8((yy<<16 + coefCbB*(cb-128) + 1<<15) >> 16)
	return
}

func checkGeometry(img *ir.Image, rgb *ir.RGBImage) error {
	if rgb.Width != img.Width || rgb.Height != img.Height {
		return fmt.Errorf("buffer is %dx%d, image is %dx%d",
			rgb.Width, rgb.Height, img.Width, img.Height)
	}
	if rgb.Depth != 8 {
		return fmt.Errorf("unsupported buffer depth %d", rgb.Depth)
	}
	if img.Depth < 8 || img.Depth > 16 {
		return fmt.Errorf("unsupported image depth %d", img.Depth)
	}
	if rgb.RowBytes < rgb.Width*rgb.Format.Channels() {
		return fmt.Errorf("row stride %d too small for width %d", rgb.RowBytes, rgb.Width)
	}
	if len(rgb.Pixels) < rgb.RowBytes*rgb.Height {
		return fmt.Errorf("pixel buffer too small: %d bytes for %d rows of %d",
			len(rgb.Pixels), rgb.Height, rgb.RowBytes)
	}
	return nil
}

// ImageRGBToYUV converts an interleaved 8-bit buffer into the image's planar
// YUV representation at the image's depth, allocating the planes. Chroma is
// box-averaged for subsampled formats. An RGBA buffer also fills the alpha
// plane and carries its premultiplied flag onto the image.
func ImageRGBToYUV(img *ir.Image, rgb *ir.RGBImage) error {
	if err := checkGeometry(img, rgb); err != nil {
		return err
	}
	withAlpha := rgb.Format.HasAlpha()
	if err := img.AllocatePlanes(withAlpha); err != nil {
		return err
	}

	shift := img.Depth - 8
	ch := rgb.Format.Channels()

	// Luma and alpha at full resolution.
	for y := 0; y < img.Height; y++ {
		row := rgb.Row(y)
		for x := 0; x < img.Width; x++ {
			p := row[x*ch:]
			yy, _, _ := rgbToYCbCr(int(p[0]), int(p[1]), int(p[2]))
			img.SetSample(ir.PlaneY, x, y, yy<<shift)
			if withAlpha {
				img.SetAlphaSample(x, y, int(p[3])<<shift)
			}
		}
	}
	if withAlpha {
		img.AlphaPremultiplied = rgb.AlphaPremultiplied
	}

	if !img.Format.HasChroma() {
		return nil
	}

	// Chroma, box-averaged over each subsampling cell.
	sx := img.Format.ChromaShiftX()
	sy := img.Format.ChromaShiftY()
	cw := img.PlaneWidth(ir.PlaneU)
	chh := img.PlaneHeight(ir.PlaneU)
	for cy := 0; cy < chh; cy++ {
		for cx := 0; cx < cw; cx++ {
			sumCb, sumCr, n := 0, 0, 0
			for dy := 0; dy < 1<<sy; dy++ {
				py := cy<<sy + dy
				if py >= img.Height {
					break
				}
				row := rgb.Row(py)
				for dx := 0; dx < 1<<sx; dx++ {
					px := cx<<sx + dx
					if px >= img.Width {
						break
					}
					p := row[px*ch:]
					_, cb, cr := rgbToYCbCr(int(p[0]), int(p[1]), int(p[2]))
					sumCb += cb
					sumCr += cr
					n++
				}
			}
			img.SetSample(ir.PlaneU, cx, cy, ((sumCb+n/2)/n)<<shift)
			img.SetSample(ir.PlaneV, cx, cy, ((sumCr+n/2)/n)<<shift)
		}
	}
	return nil
}

// chromaAt reads one chroma sample for pixel (x, y), upsampling with either
// nearest-neighbor or the centered 3:1 bilinear filter. Returns an 8-bit
// value regardless of image depth.
func chromaAt(img *ir.Image, plane, x, y int, bilinear bool) int {
	shift := img.Depth - 8
	sx := img.Format.ChromaShiftX()
	sy := img.Format.ChromaShiftY()
	cx, cy := x>>sx, y>>sy
	if !bilinear || (sx == 0 && sy == 0) {
		return img.Sample(plane, cx, cy) >> shift
	}

	cw := img.PlaneWidth(plane)
	chh := img.PlaneHeight(plane)
	nx, wx := cx, 4
	if sx == 1 {
		wx = 3
		if x&1 == 1 {
			nx = min(cx+1, cw-1)
		} else {
			nx = max(cx-1, 0)
		}
	}
	ny, wy := cy, 4
	if sy == 1 {
		wy = 3
		if y&1 == 1 {
			ny = min(cy+1, chh-1)
		} else {
			ny = max(cy-1, 0)
		}
	}
	v := wx*wy*img.Sample(plane, cx, cy) +
		(4-wx)*wy*img.Sample(plane, nx, cy) +
		wx*(4-wy)*img.Sample(plane, cx, ny) +
		(4-wx)*(4-wy)*img.Sample(plane, nx, ny)
	return ((v + 8) >> 4) >> shift
}

// ImageYUVToRGB converts the planar image into an interleaved 8-bit buffer
// that the caller has already allocated. The buffer's ChromaUpsampling policy
// selects the chroma filter. When the buffer requests premultiplied alpha and
// the image carries straight alpha, color channels are multiplied during
// conversion, so the produced buffer always matches its AlphaPremultiplied
// flag. A missing alpha plane yields fully opaque output.
func ImageYUVToRGB(img *ir.Image, rgb *ir.RGBImage) error {
	if err := checkGeometry(img, rgb); err != nil {
		return err
	}
	if img.YUV[ir.PlaneY] == nil {
		return fmt.Errorf("image has no pixel planes")
	}

	shift := img.Depth - 8
	ch := rgb.Format.Channels()
	bilinear := rgb.ChromaUpsampling.Bilinear()
	multiplyAlpha := rgb.AlphaPremultiplied && img.HasAlpha() && !img.AlphaPremultiplied

	for y := 0; y < img.Height; y++ {
		row := rgb.Row(y)
		for x := 0; x < img.Width; x++ {
			yy := img.Sample(ir.PlaneY, x, y) >> shift
			cb, cr := 128, 128
			if img.Format.HasChroma() {
				cb = chromaAt(img, ir.PlaneU, x, y, bilinear)
				cr = chromaAt(img, ir.PlaneV, x, y, bilinear)
			}
			r, g, b := yCbCrToRGB(yy, cb, cr)
			a := 255
			if img.HasAlpha() {
				a = img.AlphaSample(x, y) >> shift
			}
			if multiplyAlpha {
				r = (r*a + 127) / 255
				g = (g*a + 127) / 255
				b = (b*a + 127) / 255
			}
			p := row[x*ch:]
			p[0], p[1], p[2] = byte(r), byte(g), byte(b)
			if rgb.Format.HasAlpha() {
				p[3] = byte(a)
			}
		}
	}
	return nil
}
