package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} encode_err_mgr;

static void encode_error_exit(j_common_ptr cinfo) {
    encode_err_mgr *e = (encode_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

static int has_alpha_extensions(void) {
#ifdef JCS_ALPHA_EXTENSIONS
    return 1;
#else
    return 0;
#endif
}

// encode_session owns the compress struct, its session-local error manager,
// and the memory destination buffer libjpeg allocates.
typedef struct {
    struct jpeg_compress_struct cinfo;
    encode_err_mgr              jerr;
    unsigned char              *out;
    unsigned long               out_size;
    int                         row_stride;
} encode_session;

// The error handler is armed before jpeg_create_compress so that even a
// failure during session creation returns through the status path.
static encode_session *new_encode_session(int width, int height, int quality, int alpha_input, char *errmsg) {
    encode_session *s = (encode_session *)calloc(1, sizeof(encode_session));
    if (s == NULL) {
        strncpy(errmsg, "out of memory", JMSG_LENGTH_MAX-1);
        return NULL;
    }

    s->cinfo.err = jpeg_std_error(&s->jerr.pub);
    s->jerr.pub.error_exit = encode_error_exit;
    if (setjmp(s->jerr.jmpbuf)) {
        strncpy(errmsg, s->jerr.msg, JMSG_LENGTH_MAX-1);
        jpeg_destroy_compress(&s->cinfo);
        free(s->out);
        free(s);
        return NULL;
    }

    jpeg_create_compress(&s->cinfo);
    jpeg_mem_dest(&s->cinfo, &s->out, &s->out_size);

    s->cinfo.image_width = width;
    s->cinfo.image_height = height;
#ifdef JCS_ALPHA_EXTENSIONS
    if (alpha_input) {
        s->cinfo.input_components = 4;
        s->cinfo.in_color_space = JCS_EXT_RGBX;
    } else {
        s->cinfo.input_components = 3;
        s->cinfo.in_color_space = JCS_RGB;
    }
#else
    (void)alpha_input;
    s->cinfo.input_components = 3;
    s->cinfo.in_color_space = JCS_RGB;
#endif
    s->row_stride = width * s->cinfo.input_components;

    jpeg_set_defaults(&s->cinfo);
    jpeg_set_quality(&s->cinfo, quality, TRUE); // baseline quantization
    return s;
}

static int encode_start(encode_session *s) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_start_compress(&s->cinfo, TRUE);
    return 1;
}

static int encode_write_marker(encode_session *s, const unsigned char *data, unsigned int len) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_write_marker(&s->cinfo, JPEG_APP0+2, data, len);
    return 1;
}

static int encode_write_scanline(encode_session *s, const unsigned char *row) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    JSAMPROW rows[1];
    rows[0] = (JSAMPROW)row;
    jpeg_write_scanlines(&s->cinfo, rows, 1);
    return 1;
}

static int encode_finish(encode_session *s) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_finish_compress(&s->cinfo);
    return 1;
}

static void free_encode_session(encode_session *s) {
    if (s == NULL) {
        return;
    }
    if (setjmp(s->jerr.jmpbuf) == 0) {
        jpeg_destroy_compress(&s->cinfo);
    }
    free(s->out);
    free(s);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// SupportsAlphaInput reports whether the linked libjpeg build accepts
// four-byte RGBX scanlines directly (libjpeg-turbo alpha extensions).
// Resolved once from the build; the pipeline carries it as data so both
// layout variants stay testable.
func SupportsAlphaInput() bool {
	return C.has_alpha_extensions() != 0
}

// EncodeOptions configures one compression session.
type EncodeOptions struct {
	Width   int
	Height  int
	Quality int // 0-100, baseline quantization
	// AlphaInput selects the four-byte RGBX input layout. Only honored when
	// SupportsAlphaInput is true; the alpha byte itself is ignored by the
	// codec, so callers must premultiply first.
	AlphaInput bool
}

// EncodeSession drives one JPEG compression, one scanline at a time, into an
// in-memory destination. Single-use; Destroy is idempotent and must run on
// every exit path.
type EncodeSession struct {
	s         *C.encode_session
	rowStride int
}

// NewEncodeSession creates a configured compression session. The error
// handler is installed before any codec resource exists, so a fatal error
// during creation is reported, not fatal to the process.
func NewEncodeSession(opts EncodeOptions) (*EncodeSession, error) {
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", opts.Width, opts.Height)
	}
	q := opts.Quality
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	alpha := 0
	if opts.AlphaInput && SupportsAlphaInput() {
		alpha = 1
	}
	var errbuf [C.JMSG_LENGTH_MAX]C.char
	s := C.new_encode_session(C.int(opts.Width), C.int(opts.Height), C.int(q), C.int(alpha), &errbuf[0])
	if s == nil {
		return nil, fmt.Errorf("libjpeg create compress: %s", C.GoString(&errbuf[0]))
	}
	return &EncodeSession{s: s, rowStride: int(s.row_stride)}, nil
}

func (e *EncodeSession) codecErr(op string) error {
	return fmt.Errorf("libjpeg %s: %s", op, C.GoString(&e.s.jerr.msg[0]))
}

// StartCompress writes the JPEG headers. Markers may be embedded after this
// and before the first scanline.
func (e *EncodeSession) StartCompress() error {
	if C.encode_start(e.s) == 0 {
		return e.codecErr("start compress")
	}
	return nil
}

// EmbedProfile writes the ICC profile as APP2 marker chunks. Must be called
// after StartCompress and before any scanline, so the profile markers precede
// the scan data in the output stream. An empty profile is a no-op.
func (e *EncodeSession) EmbedProfile(icc []byte) error {
	if len(icc) == 0 {
		return nil
	}
	chunks, err := ChunkICC(icc)
	if err != nil {
		return fmt.Errorf("chunking ICC: %w", err)
	}
	for _, chunk := range chunks {
		if C.encode_write_marker(e.s, (*C.uchar)(unsafe.Pointer(&chunk[0])), C.uint(len(chunk))) == 0 {
			return e.codecErr("write ICC marker")
		}
	}
	return nil
}

// WriteScanline compresses exactly one row, which must hold Width×components
// bytes (3 for RGB input, 4 for RGBX).
func (e *EncodeSession) WriteScanline(row []byte) error {
	if len(row) < e.rowStride {
		return fmt.Errorf("scanline too short: %d < %d", len(row), e.rowStride)
	}
	if e.rowStride == 0 {
		return nil
	}
	if C.encode_write_scanline(e.s, (*C.uchar)(unsafe.Pointer(&row[0]))) == 0 {
		return e.codecErr("write scanline")
	}
	return nil
}

// FinishCompress flushes the codec trailer and returns the complete JPEG
// byte stream, copied to Go memory.
func (e *EncodeSession) FinishCompress() ([]byte, error) {
	if C.encode_finish(e.s) == 0 {
		return nil, e.codecErr("finish compress")
	}
	return C.GoBytes(unsafe.Pointer(e.s.out), C.int(e.s.out_size)), nil
}

// Destroy releases the session and the codec-owned output buffer.
func (e *EncodeSession) Destroy() {
	if e.s != nil {
		C.free_encode_session(e.s)
		e.s = nil
	}
}
