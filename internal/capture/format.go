// Package capture records presented frames to an lz4-compressed stream and
// reads them back.
//
// Stream layout, all integers little endian:
//
//	string  magic        (uint32 length + bytes)
//	frame*  uint64 seq
//	        uint32 width, uint32 height
//	        uint32 storedSize
//	        bytes  RGBA pixels, lz4 block compressed unless
//	               storedSize == width*height*4
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"
)

const magic = "linux-wallpaperparticles/capture/v1"

// maxSide bounds frame dimensions read from a stream.
const maxSide = 1 << 14

var ErrBadFrame = errors.New("bad capture frame")

type Frame struct {
	Seq   uint64
	Image *image.RGBA
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader, limit uint32) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > limit {
		return "", fmt.Errorf("%w: string of %d bytes", ErrBadFrame, size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

type frameHeader struct {
	Seq        uint64
	Width      uint32
	Height     uint32
	StoredSize uint32
}

// Writer encodes frames onto an underlying stream.
type Writer struct {
	w    io.Writer
	buf  []byte
	comp lz4.Compressor
}

func NewWriter(w io.Writer) (*Writer, error) {
	if err := writeString(w, magic); err != nil {
		return nil, fmt.Errorf("writing capture header: %w", err)
	}
	return &Writer{w: w}, nil
}

func (w *Writer) WriteFrame(f Frame) error {
	img := f.Image
	b := img.Bounds()
	raw := pixels(img)

	if bound := lz4.CompressBlockBound(len(raw)); cap(w.buf) < bound {
		w.buf = make([]byte, bound)
	}
	n, err := w.comp.CompressBlock(raw, w.buf[:cap(w.buf)])
	if err != nil {
		return fmt.Errorf("compressing frame %d: %w", f.Seq, err)
	}

	data := w.buf[:n]
	if n == 0 || n >= len(raw) {
		// incompressible
		data = raw
	}

	hdr := frameHeader{
		Seq:        f.Seq,
		Width:      uint32(b.Dx()),
		Height:     uint32(b.Dy()),
		StoredSize: uint32(len(data)),
	}
	if err := binary.Write(w.w, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// pixels returns the tightly packed pixel rows of img.
func pixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && b.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[start:start+rowLen]...)
	}
	return out
}

// Reader decodes frames written by Writer.
type Reader struct {
	r   io.Reader
	buf []byte
}

func NewReader(r io.Reader) (*Reader, error) {
	s, err := readString(r, uint32(len(magic)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadFrame, err)
	}
	if s != magic {
		return nil, fmt.Errorf("%w: unknown header %q", ErrBadFrame, s)
	}
	return &Reader{r: r}, nil
}

// Next returns the next frame, or io.EOF once the stream ends cleanly.
func (r *Reader) Next() (Frame, error) {
	var hdr frameHeader
	if err := binary.Read(r.r, binary.LittleEndian, &hdr); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: header: %v", ErrBadFrame, err)
	}
	if hdr.Width == 0 || hdr.Height == 0 || hdr.Width > maxSide || hdr.Height > maxSide {
		return Frame{}, fmt.Errorf("%w: frame %d is %dx%d", ErrBadFrame, hdr.Seq, hdr.Width, hdr.Height)
	}

	rawSize := int(hdr.Width) * int(hdr.Height) * 4
	if int(hdr.StoredSize) > rawSize {
		return Frame{}, fmt.Errorf("%w: frame %d stores %d bytes for %d pixels", ErrBadFrame, hdr.Seq, hdr.StoredSize, rawSize/4)
	}

	if cap(r.buf) < int(hdr.StoredSize) {
		r.buf = make([]byte, hdr.StoredSize)
	}
	data := r.buf[:hdr.StoredSize]
	if _, err := io.ReadFull(r.r, data); err != nil {
		return Frame{}, fmt.Errorf("%w: frame %d truncated: %v", ErrBadFrame, hdr.Seq, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))
	if int(hdr.StoredSize) == rawSize {
		copy(img.Pix, data)
	} else {
		n, err := lz4.UncompressBlock(data, img.Pix)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: frame %d: %v", ErrBadFrame, hdr.Seq, err)
		}
		if n != rawSize {
			return Frame{}, fmt.Errorf("%w: frame %d decoded to %d of %d bytes", ErrBadFrame, hdr.Seq, n, rawSize)
		}
	}

	return Frame{Seq: hdr.Seq, Image: img}, nil
}
