package color

import (
	"bytes"
	"testing"

	"github.com/letion/libavif/internal/ir"
)

func TestPremultiplyAlpha(t *testing.T) {
	rgb := newRGB(t, 2, 1, ir.FormatRGBA)
	copy(rgb.Pixels, []byte{
		200, 100, 50, 128, // half transparent
		10, 20, 30, 255, // opaque, must be untouched
	})
	if err := PremultiplyAlpha(rgb); err != nil {
		t.Fatalf("PremultiplyAlpha: %v", err)
	}
	want := []byte{
		byte((200*128 + 127) / 255), byte((100*128 + 127) / 255), byte((50*128 + 127) / 255), 128,
		10, 20, 30, 255,
	}
	if !bytes.Equal(rgb.Pixels, want) {
		t.Errorf("premultiplied = %v, want %v", rgb.Pixels, want)
	}
	if !rgb.AlphaPremultiplied {
		t.Error("flag not set after premultiply")
	}
}

func TestPremultiplyAlphaIdempotent(t *testing.T) {
	rgb := newRGB(t, 1, 1, ir.FormatRGBA)
	copy(rgb.Pixels, []byte{200, 100, 50, 64})
	if err := PremultiplyAlpha(rgb); err != nil {
		t.Fatalf("first premultiply: %v", err)
	}
	after := append([]byte(nil), rgb.Pixels...)
	if err := PremultiplyAlpha(rgb); err != nil {
		t.Fatalf("second premultiply: %v", err)
	}
	if !bytes.Equal(rgb.Pixels, after) {
		t.Errorf("second call changed pixels: %v vs %v", rgb.Pixels, after)
	}
}

func TestPremultiplyAlphaRejectsRGB(t *testing.T) {
	rgb := newRGB(t, 1, 1, ir.FormatRGB)
	if err := PremultiplyAlpha(rgb); err == nil {
		t.Error("expected error for RGB buffer")
	}
}
