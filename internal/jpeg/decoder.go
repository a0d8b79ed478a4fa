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
} decode_err_mgr;

static void decode_error_exit(j_common_ptr cinfo) {
    decode_err_mgr *e = (decode_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

// Corrupt-data warnings (truncated entropy stream, bad marker sequences) are
// promoted to fatal: the bridge never returns a partially decoded image.
static void decode_emit_message(j_common_ptr cinfo, int msg_level) {
    if (msg_level < 0) {
        decode_error_exit(cinfo);
    }
}

// decode_session owns everything libjpeg touches for one decode: the
// decompress struct, the error manager (session-local, so concurrent
// sessions cannot interfere), and a C-side copy of the compressed bytes,
// which libjpeg keeps a pointer into across calls.
typedef struct {
    struct jpeg_decompress_struct dinfo;
    decode_err_mgr                jerr;
    unsigned char                *input;
} decode_session;

// Every entry point re-arms the session's jmp_buf before touching libjpeg,
// so a fatal codec error surfaces as a 0 return from that call instead of
// unwinding through Go frames.
static decode_session *new_decode_session(const unsigned char *buf, unsigned long buf_size, char *errmsg) {
    decode_session *s = (decode_session *)calloc(1, sizeof(decode_session));
    if (s == NULL) {
        strncpy(errmsg, "out of memory", JMSG_LENGTH_MAX-1);
        return NULL;
    }
    s->input = (unsigned char *)malloc(buf_size ? buf_size : 1);
    if (s->input == NULL) {
        strncpy(errmsg, "out of memory", JMSG_LENGTH_MAX-1);
        free(s);
        return NULL;
    }
    memcpy(s->input, buf, buf_size);

    s->dinfo.err = jpeg_std_error(&s->jerr.pub);
    s->jerr.pub.error_exit = decode_error_exit;
    s->jerr.pub.emit_message = decode_emit_message;
    if (setjmp(s->jerr.jmpbuf)) {
        strncpy(errmsg, s->jerr.msg, JMSG_LENGTH_MAX-1);
        jpeg_destroy_decompress(&s->dinfo);
        free(s->input);
        free(s);
        return NULL;
    }

    jpeg_create_decompress(&s->dinfo);
    jpeg_save_markers(&s->dinfo, JPEG_APP0+2, 0xFFFF); // APP2 for ICC
    jpeg_mem_src(&s->dinfo, s->input, buf_size);
    return s;
}

static int decode_read_header(decode_session *s) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_read_header(&s->dinfo, TRUE);
    // Force RGB output regardless of the source color space (YCbCr,
    // grayscale, CMYK) so downstream conversion sees one layout.
    s->dinfo.out_color_space = JCS_RGB;
    jpeg_calc_output_dimensions(&s->dinfo);
    return 1;
}

static int decode_start(decode_session *s) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_start_decompress(&s->dinfo);
    return 1;
}

static int decode_read_scanline(decode_session *s, unsigned char *row) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    JSAMPROW rows[1];
    rows[0] = row;
    jpeg_read_scanlines(&s->dinfo, rows, 1);
    return 1;
}

static int decode_finish(decode_session *s) {
    if (setjmp(s->jerr.jmpbuf)) {
        return 0;
    }
    jpeg_finish_decompress(&s->dinfo);
    return 1;
}

static void free_decode_session(decode_session *s) {
    if (s == NULL) {
        return;
    }
    if (setjmp(s->jerr.jmpbuf) == 0) {
        jpeg_destroy_decompress(&s->dinfo);
    }
    free(s->input);
    free(s);
}

static int decode_marker_count(decode_session *s) {
    int count = 0;
    jpeg_saved_marker_ptr m = s->dinfo.marker_list;
    while (m != NULL) {
        if (m->marker == (JPEG_APP0+2) && m->data_length > 0) {
            count++;
        }
        m = m->next;
    }
    return count;
}

static unsigned int decode_marker_len(decode_session *s, int idx) {
    int i = 0;
    jpeg_saved_marker_ptr m = s->dinfo.marker_list;
    while (m != NULL) {
        if (m->marker == (JPEG_APP0+2) && m->data_length > 0) {
            if (i == idx) {
                return m->data_length;
            }
            i++;
        }
        m = m->next;
    }
    return 0;
}

static void decode_marker_copy(decode_session *s, int idx, unsigned char *dst) {
    int i = 0;
    jpeg_saved_marker_ptr m = s->dinfo.marker_list;
    while (m != NULL) {
        if (m->marker == (JPEG_APP0+2) && m->data_length > 0) {
            if (i == idx) {
                memcpy(dst, m->data, m->data_length);
                return;
            }
            i++;
        }
        m = m->next;
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// LibjpegVersion returns the JPEG library version.
func LibjpegVersion() int {
	return int(C.JPEG_LIB_VERSION)
}

// DecodeSession drives one JPEG decompression, one scanline at a time.
// Sessions are single-use: create, pump, destroy. Destroy must run on every
// exit path; it is idempotent.
type DecodeSession struct {
	s *C.decode_session
}

// NewDecodeSession creates a decode session over in-memory JPEG bytes.
// The bytes are copied to C memory for the session's lifetime.
func NewDecodeSession(data []byte) (*DecodeSession, error) {
	var errbuf [C.JMSG_LENGTH_MAX]C.char
	var p *C.uchar
	if len(data) > 0 {
		p = (*C.uchar)(unsafe.Pointer(&data[0]))
	}
	s := C.new_decode_session(p, C.ulong(len(data)), &errbuf[0])
	if s == nil {
		return nil, fmt.Errorf("libjpeg create decompress: %s", C.GoString(&errbuf[0]))
	}
	return &DecodeSession{s: s}, nil
}

func (d *DecodeSession) codecErr(op string) error {
	return fmt.Errorf("libjpeg %s: %s", op, C.GoString(&d.s.jerr.msg[0]))
}

// ReadHeader parses the JPEG header and forces RGB output. Dimensions and
// the embedded profile become available afterwards.
func (d *DecodeSession) ReadHeader() error {
	if C.decode_read_header(d.s) == 0 {
		return d.codecErr("read header")
	}
	return nil
}

// Width returns the output width. Valid after ReadHeader.
func (d *DecodeSession) Width() int {
	return int(d.s.dinfo.output_width)
}

// Height returns the output height. Valid after ReadHeader.
func (d *DecodeSession) Height() int {
	return int(d.s.dinfo.output_height)
}

// NumComponents returns the component count of the source stream.
func (d *DecodeSession) NumComponents() int {
	return int(d.s.dinfo.num_components)
}

// ColorSpace returns the source JPEG color space name.
func (d *DecodeSession) ColorSpace() string {
	return colorSpaceName(int(d.s.dinfo.jpeg_color_space))
}

// ExtractProfile reassembles the embedded ICC profile from the saved APP2
// markers. A nil result with nil error means no profile is present, which is
// a valid state, not a failure. Valid after ReadHeader.
func (d *DecodeSession) ExtractProfile() ([]byte, error) {
	n := int(C.decode_marker_count(d.s))
	if n == 0 {
		return nil, nil
	}
	markers := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		l := int(C.decode_marker_len(d.s, C.int(i)))
		if l == 0 {
			continue
		}
		buf := make([]byte, l)
		C.decode_marker_copy(d.s, C.int(i), (*C.uchar)(unsafe.Pointer(&buf[0])))
		markers = append(markers, buf)
	}
	icc, err := ExtractICC(markers)
	if err != nil {
		return nil, fmt.Errorf("extracting ICC: %w", err)
	}
	return icc, nil
}

// StartDecompress begins scanline decompression.
func (d *DecodeSession) StartDecompress() error {
	if C.decode_start(d.s) == 0 {
		return d.codecErr("start decompress")
	}
	return nil
}

// ReadScanline decodes exactly one row into dst, which must hold at least
// Width*3 bytes. Codec-side memory stays bounded to one scanline.
func (d *DecodeSession) ReadScanline(dst []byte) error {
	need := d.Width() * 3
	if len(dst) < need {
		return fmt.Errorf("scanline buffer too small: %d < %d", len(dst), need)
	}
	if need == 0 {
		return nil
	}
	if C.decode_read_scanline(d.s, (*C.uchar)(unsafe.Pointer(&dst[0]))) == 0 {
		return d.codecErr("read scanline")
	}
	return nil
}

// FinishDecompress flushes codec bookkeeping after all rows are consumed.
func (d *DecodeSession) FinishDecompress() error {
	if C.decode_finish(d.s) == 0 {
		return d.codecErr("finish decompress")
	}
	return nil
}

// Destroy releases the session and its C-side input copy.
func (d *DecodeSession) Destroy() {
	if d.s != nil {
		C.free_decode_session(d.s)
		d.s = nil
	}
}
