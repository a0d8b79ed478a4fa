// Package pipeline is the bridge between baseline JPEG streams and the
// planar YUV image representation: decode JPEG → planar image (with ICC
// passthrough), and planar image → JPEG (with alpha-layout fallback when the
// codec cannot take four-byte input).
package pipeline

import "errors"

// The three failure classes crossing the public boundary. Every error
// returned by this package wraps exactly one of them; errors.Is works
// through the wrapping. None of them is retried here: retrying a corrupt
// bitstream or a missing file is never productive.
var (
	// ErrIO marks a source or destination that cannot be read or written.
	ErrIO = errors.New("file I/O failed")
	// ErrCodecFatal marks an unrecoverable codec-internal fault, such as a
	// corrupt header or truncated entropy stream.
	ErrCodecFatal = errors.New("JPEG codec fatal error")
	// ErrConversion marks a rejection from the color or alpha conversion,
	// such as a dimension mismatch.
	ErrConversion = errors.New("color conversion failed")
)
