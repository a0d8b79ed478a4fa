package jpeg

import (
	"bytes"
	"testing"
)

// encodeFlat compresses a flat-colored RGB image and returns the JPEG bytes.
func encodeFlat(t *testing.T, w, h, quality int, icc []byte) []byte {
	t.Helper()
	sess, err := NewEncodeSession(EncodeOptions{Width: w, Height: h, Quality: quality})
	if err != nil {
		t.Fatalf("NewEncodeSession: %v", err)
	}
	defer sess.Destroy()

	if err := sess.StartCompress(); err != nil {
		t.Fatalf("StartCompress: %v", err)
	}
	if err := sess.EmbedProfile(icc); err != nil {
		t.Fatalf("EmbedProfile: %v", err)
	}
	row := make([]byte, w*3)
	for i := 0; i < w; i++ {
		row[i*3], row[i*3+1], row[i*3+2] = 120, 60, 180
	}
	for y := 0; y < h; y++ {
		if err := sess.WriteScanline(row); err != nil {
			t.Fatalf("WriteScanline row %d: %v", y, err)
		}
	}
	data, err := sess.FinishCompress()
	if err != nil {
		t.Fatalf("FinishCompress: %v", err)
	}
	return data
}

func TestEncodeDecodeSession(t *testing.T) {
	data := encodeFlat(t, 17, 9, 90, nil)
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Fatal("output is not a valid JPEG (bad magic)")
	}

	sess, err := NewDecodeSession(data)
	if err != nil {
		t.Fatalf("NewDecodeSession: %v", err)
	}
	defer sess.Destroy()

	if err := sess.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if sess.Width() != 17 || sess.Height() != 9 {
		t.Errorf("dimensions %dx%d, want 17x9", sess.Width(), sess.Height())
	}
	if err := sess.StartDecompress(); err != nil {
		t.Fatalf("StartDecompress: %v", err)
	}
	row := make([]byte, 17*3)
	for y := 0; y < 9; y++ {
		if err := sess.ReadScanline(row); err != nil {
			t.Fatalf("ReadScanline row %d: %v", y, err)
		}
	}
	if err := sess.FinishDecompress(); err != nil {
		t.Fatalf("FinishDecompress: %v", err)
	}

	// Flat color at quality 90 should come back close to (120, 60, 180).
	for c, want := range []int{120, 60, 180} {
		got := int(row[c])
		if got < want-8 || got > want+8 {
			t.Errorf("channel %d = %d, want about %d", c, got, want)
		}
	}
}

func TestProfileSurvivesCodec(t *testing.T) {
	profile := make([]byte, maxChunkDataSize+321) // force two APP2 chunks
	for i := range profile {
		profile[i] = byte(i * 13)
	}
	data := encodeFlat(t, 4, 4, 85, profile)

	sess, err := NewDecodeSession(data)
	if err != nil {
		t.Fatalf("NewDecodeSession: %v", err)
	}
	defer sess.Destroy()
	if err := sess.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	got, err := sess.ExtractProfile()
	if err != nil {
		t.Fatalf("ExtractProfile: %v", err)
	}
	if !bytes.Equal(got, profile) {
		t.Errorf("ICC profile did not survive the codec: got %d bytes, want %d", len(got), len(profile))
	}
}

func TestDecodeCorruptStream(t *testing.T) {
	sess, err := NewDecodeSession([]byte("not a jpeg at all"))
	if err != nil {
		// Creation itself may reject the stream; that is a clean failure too.
		t.Logf("create rejected stream: %v", err)
		return
	}
	defer sess.Destroy()
	if err := sess.ReadHeader(); err == nil {
		t.Error("expected a codec error for garbage input")
	} else {
		t.Logf("codec error: %v", err)
	}
}

func TestDecodeTruncatedStream(t *testing.T) {
	data := encodeFlat(t, 32, 32, 85, nil)
	truncated := data[:len(data)/3]

	sess, err := NewDecodeSession(truncated)
	if err != nil {
		t.Fatalf("NewDecodeSession: %v", err)
	}
	defer sess.Destroy()

	if err := sess.ReadHeader(); err != nil {
		t.Logf("header rejected: %v", err)
		return
	}
	if err := sess.StartDecompress(); err != nil {
		t.Logf("start rejected: %v", err)
		return
	}
	row := make([]byte, 32*3)
	var readErr error
	for y := 0; y < 32; y++ {
		if readErr = sess.ReadScanline(row); readErr != nil {
			break
		}
	}
	if readErr = firstErr(readErr, sess.FinishDecompress()); readErr == nil {
		t.Error("expected a codec error for truncated entropy stream")
	} else {
		t.Logf("codec error: %v", readErr)
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func TestGetInfo(t *testing.T) {
	data := encodeFlat(t, 12, 7, 80, nil)
	info, err := GetInfo(data)
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.Width != 12 || info.Height != 7 {
		t.Errorf("dimensions %dx%d, want 12x7", info.Width, info.Height)
	}
	if info.NumComponents != 3 {
		t.Errorf("components = %d, want 3", info.NumComponents)
	}
	if info.ColorSpace != "YCbCr" {
		t.Errorf("color space = %s, want YCbCr", info.ColorSpace)
	}
	if info.ICC != nil {
		t.Errorf("unexpected ICC profile: %d bytes", len(info.ICC))
	}
}

func TestEncodeZeroSizeRejected(t *testing.T) {
	sess, err := NewEncodeSession(EncodeOptions{Width: 0, Height: 0, Quality: 90})
	if err != nil {
		t.Logf("create rejected empty image: %v", err)
		return
	}
	defer sess.Destroy()
	// libjpeg rejects empty images at start; it must do so through the error
	// return, not by aborting the process.
	if err := sess.StartCompress(); err == nil {
		t.Error("expected an error for a 0x0 image")
	} else {
		t.Logf("codec error: %v", err)
	}
}
