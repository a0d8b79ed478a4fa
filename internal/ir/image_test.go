package ir

import (
	"bytes"
	"testing"
)

func TestPlaneGeometry(t *testing.T) {
	tests := []struct {
		name   string
		format PixelFormat
		w, h   int
		cw, ch int
	}{
		{"444 even", YUV444, 8, 6, 8, 6},
		{"422 even", YUV422, 8, 6, 4, 6},
		{"420 even", YUV420, 8, 6, 4, 3},
		{"420 odd", YUV420, 9, 7, 5, 4},
		{"422 width 1", YUV422, 1, 1, 1, 1},
		{"400 has no chroma", YUV400, 8, 6, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &Image{Width: tt.w, Height: tt.h, Depth: 8, Format: tt.format}
			if got := img.PlaneWidth(PlaneU); got != tt.cw {
				t.Errorf("PlaneWidth(U) = %d, want %d", got, tt.cw)
			}
			if got := img.PlaneHeight(PlaneU); got != tt.ch {
				t.Errorf("PlaneHeight(U) = %d, want %d", got, tt.ch)
			}
			if got := img.PlaneWidth(PlaneY); got != tt.w {
				t.Errorf("PlaneWidth(Y) = %d, want %d", got, tt.w)
			}
		})
	}
}

func TestAllocatePlanes(t *testing.T) {
	img := &Image{Width: 5, Height: 3, Depth: 8, Format: YUV420}
	if err := img.AllocatePlanes(true); err != nil {
		t.Fatalf("AllocatePlanes: %v", err)
	}
	if img.YUVStride[PlaneY] != 5 || len(img.YUV[PlaneY]) != 15 {
		t.Errorf("Y plane stride=%d len=%d", img.YUVStride[PlaneY], len(img.YUV[PlaneY]))
	}
	if img.YUVStride[PlaneU] != 3 || len(img.YUV[PlaneU]) != 6 {
		t.Errorf("U plane stride=%d len=%d", img.YUVStride[PlaneU], len(img.YUV[PlaneU]))
	}
	if img.AlphaStride != 5 || len(img.Alpha) != 15 {
		t.Errorf("alpha stride=%d len=%d", img.AlphaStride, len(img.Alpha))
	}
}

func TestAllocatePlanesHighDepth(t *testing.T) {
	img := &Image{Width: 4, Height: 2, Depth: 12, Format: YUV444}
	if err := img.AllocatePlanes(false); err != nil {
		t.Fatalf("AllocatePlanes: %v", err)
	}
	if img.YUVStride[PlaneY] != 8 {
		t.Errorf("12-bit Y stride = %d, want 8", img.YUVStride[PlaneY])
	}

	img.SetSample(PlaneY, 3, 1, 4095)
	if got := img.Sample(PlaneY, 3, 1); got != 4095 {
		t.Errorf("16-bit sample round-trip = %d, want 4095", got)
	}
}

func TestAllocatePlanesRejectsBadDepth(t *testing.T) {
	img := &Image{Width: 4, Height: 2, Depth: 17, Format: YUV444}
	if err := img.AllocatePlanes(false); err == nil {
		t.Error("expected error for depth 17")
	}
}

func TestSetProfileICC(t *testing.T) {
	img := &Image{}
	src := []byte{1, 2, 3}
	img.SetProfileICC(src)
	src[0] = 99
	if !bytes.Equal(img.ICC, []byte{1, 2, 3}) {
		t.Errorf("profile was referenced, not copied: %v", img.ICC)
	}

	img.SetProfileICC(nil)
	if img.ICC != nil {
		t.Error("empty profile should clear the field")
	}
}

func TestAlphaSampleWithoutPlane(t *testing.T) {
	img := &Image{Width: 2, Height: 2, Depth: 10, Format: YUV444}
	if got := img.AlphaSample(0, 0); got != 1023 {
		t.Errorf("opaque fallback = %d, want 1023", got)
	}
}

func TestRGBImageAllocatePixels(t *testing.T) {
	tests := []struct {
		name     string
		format   RGBFormat
		w, h     int
		rowBytes int
		size     int
	}{
		{"RGB", FormatRGB, 5, 3, 15, 45},
		{"RGBA", FormatRGBA, 5, 3, 20, 60},
		{"width 1", FormatRGB, 1, 1, 3, 3},
		{"zero", FormatRGB, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgb := &RGBImage{Width: tt.w, Height: tt.h, Depth: 8, Format: tt.format}
			if err := rgb.AllocatePixels(); err != nil {
				t.Fatalf("AllocatePixels: %v", err)
			}
			if rgb.RowBytes != tt.rowBytes {
				t.Errorf("RowBytes = %d, want %d", rgb.RowBytes, tt.rowBytes)
			}
			if len(rgb.Pixels) != tt.size {
				t.Errorf("len(Pixels) = %d, want %d", len(rgb.Pixels), tt.size)
			}
			if tt.h > 0 {
				_ = rgb.Row(tt.h - 1) // must not panic
			}
		})
	}
}

func TestParsePixelFormat(t *testing.T) {
	if f, err := ParsePixelFormat("420"); err != nil || f != YUV420 {
		t.Errorf("ParsePixelFormat(420) = %v, %v", f, err)
	}
	if _, err := ParsePixelFormat("411"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestChromaUpsamplingBilinear(t *testing.T) {
	for _, u := range []ChromaUpsampling{UpsampleAutomatic, UpsampleBestQuality, UpsampleBilinear} {
		if !u.Bilinear() {
			t.Errorf("%d should resolve to bilinear", u)
		}
	}
	for _, u := range []ChromaUpsampling{UpsampleFastest, UpsampleNearest} {
		if u.Bilinear() {
			t.Errorf("%d should resolve to nearest", u)
		}
	}
}
