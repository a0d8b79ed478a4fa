package color

import (
	"encoding/binary"
	"testing"
)

// syntheticProfile builds a minimal 128-byte ICC header with an RGB display
// class signature.
func syntheticProfile(t *testing.T) []byte {
	t.Helper()
	p := make([]byte, 128)
	binary.BigEndian.PutUint32(p[0:4], 128)
	p[8] = 4 // version 4.3.0
	p[9] = 0x30
	copy(p[12:16], "mntr")
	copy(p[16:20], "RGB ")
	copy(p[20:24], "XYZ ")
	binary.BigEndian.PutUint32(p[36:40], acspMagic)
	return p
}

func TestParseProfileInfo(t *testing.T) {
	pi, err := ParseProfileInfo(syntheticProfile(t))
	if err != nil {
		t.Fatalf("ParseProfileInfo: %v", err)
	}
	if pi.ColorSpace != "RGB " {
		t.Errorf("ColorSpace = %q, want \"RGB \"", pi.ColorSpace)
	}
	if pi.Class != "mntr" {
		t.Errorf("Class = %q, want \"mntr\"", pi.Class)
	}
	if pi.Version != "4.3.0" {
		t.Errorf("Version = %q, want 4.3.0", pi.Version)
	}
}

func TestParseProfileInfoRejectsGarbage(t *testing.T) {
	if _, err := ParseProfileInfo([]byte("not a profile")); err == nil {
		t.Error("expected error for short input")
	}
	p := syntheticProfile(t)
	binary.BigEndian.PutUint32(p[36:40], 0x12345678)
	if _, err := ParseProfileInfo(p); err == nil {
		t.Error("expected error for bad acsp signature")
	}
}
