package sink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

var errShortPNG = errors.New("sink: truncated png chunk")

// APNG streams frames into a single looping animated PNG. The frame count is
// declared up front because acTL precedes the first frame.
type APNG struct {
	w      io.Writer
	file   *atomicFile
	frames int
	delay  uint16 // centiseconds

	seq     uint32
	written int
	width   int
	height  int

	img *image.RGBA
	bb  bytes.Buffer
	enc png.Encoder
	tmp [26]byte
	err error
}

// NewAPNG writes the animation to w. Close writes the trailer; it does not
// close w.
func NewAPNG(w io.Writer, frames int, delay uint16) *APNG {
	return &APNG{
		w:      w,
		frames: frames,
		delay:  delay,
		enc:    png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// CreateAPNG writes the animation to path, which appears only after a
// successful Close.
func CreateAPNG(path string, frames int, delay uint16) (*APNG, error) {
	f, err := createAtomic(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	a := NewAPNG(f, frames, delay)
	a.file = f
	return a, nil
}

func (a *APNG) WriteFrame(frame, width int, data []byte) error {
	if a.err != nil {
		return a.err
	}
	height, err := frameHeight(width, data)
	if err != nil {
		return err
	}
	if a.written == a.frames {
		a.err = fmt.Errorf("sink: apng declared %d frames, got frame %d", a.frames, frame)
		return a.err
	}
	if a.img == nil {
		a.width, a.height = width, height
		a.img = image.NewRGBA(image.Rect(0, 0, width, height))
	} else if width != a.width || height != a.height {
		a.err = fmt.Errorf("%w: frame %d is %dx%d, animation is %dx%d", ErrBadFrame, frame, width, height, a.width, a.height)
		return a.err
	}

	pix := a.img.Pix
	for i, j := 0, 0; i < len(data); i, j = i+3, j+4 {
		pix[j], pix[j+1], pix[j+2], pix[j+3] = data[i], data[i+1], data[i+2], 0xFF
	}
	a.bb.Reset()
	if err := a.enc.Encode(&a.bb, a.img); err != nil {
		a.err = fmt.Errorf("sink: png encoding error: %w", err)
		return a.err
	}
	ihdr, idats, err := splitPNG(a.bb.Bytes())
	if err != nil {
		a.err = err
		return err
	}

	if a.written == 0 {
		if _, a.err = io.WriteString(a.w, pngHeader); a.err != nil {
			return a.err
		}
		a.writeChunk(ihdr, "IHDR")
		a.writeacTL()
		a.writefcTL()
		for _, id := range idats {
			a.writeChunk(id, "IDAT")
		}
	} else {
		a.writefcTL()
		for _, id := range idats {
			a.writefdAT(id)
		}
	}
	a.written++
	return a.err
}

// Close writes IEND. It fails if fewer frames than declared were written.
func (a *APNG) Close() error {
	if a.err == nil && a.written != a.frames {
		a.err = fmt.Errorf("sink: apng wrote %d of %d frames", a.written, a.frames)
	}
	if a.err == nil {
		a.writeChunk(nil, "IEND")
	}
	if a.file == nil {
		return a.err
	}
	if a.err != nil {
		a.file.abort()
		return a.err
	}
	return a.file.commit()
}

func (a *APNG) writeChunk(b []byte, name string) {
	if a.err != nil {
		return
	}
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(b)))
	copy(hdr[4:], name)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(b)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())

	for _, p := range [][]byte{hdr[:], b, sum[:]} {
		if _, a.err = a.w.Write(p); a.err != nil {
			return
		}
	}
}

func (a *APNG) writeacTL() {
	binary.BigEndian.PutUint32(a.tmp[0:4], uint32(a.frames))
	binary.BigEndian.PutUint32(a.tmp[4:8], 0) // loop forever
	a.writeChunk(a.tmp[:8], "acTL")
}

func (a *APNG) writefcTL() {
	t := a.tmp[:]
	binary.BigEndian.PutUint32(t[0:4], a.seq)
	binary.BigEndian.PutUint32(t[4:8], uint32(a.width))
	binary.BigEndian.PutUint32(t[8:12], uint32(a.height))
	binary.BigEndian.PutUint32(t[12:16], 0) // x_offset
	binary.BigEndian.PutUint32(t[16:20], 0) // y_offset
	binary.BigEndian.PutUint16(t[20:22], a.delay)
	binary.BigEndian.PutUint16(t[22:24], 100)
	t[24] = 0 // dispose_op none
	t[25] = 0 // blend_op source
	a.writeChunk(t[:26], "fcTL")
	a.seq++
}

func (a *APNG) writefdAT(id []byte) {
	fdat := make([]byte, 4, len(id)+4)
	binary.BigEndian.PutUint32(fdat, a.seq)
	a.writeChunk(append(fdat, id...), "fdAT")
	a.seq++
}

// splitPNG returns the IHDR payload and IDAT payloads of an encoded PNG. The
// slices alias b.
func splitPNG(b []byte) (ihdr []byte, idats [][]byte, err error) {
	if !bytes.HasPrefix(b, []byte(pngHeader)) {
		return nil, nil, errors.New("sink: not a png stream")
	}
	b = b[len(pngHeader):]
	for len(b) > 0 {
		if len(b) < 12 {
			return nil, nil, errShortPNG
		}
		n := int(binary.BigEndian.Uint32(b[:4]))
		name := string(b[4:8])
		if len(b) < 12+n {
			return nil, nil, errShortPNG
		}
		data := b[8 : 8+n]
		switch name {
		case "IHDR":
			ihdr = data
		case "IDAT":
			idats = append(idats, data)
		case "IEND":
			if ihdr == nil || len(idats) == 0 {
				return nil, nil, errors.New("sink: png missing IHDR or IDAT")
			}
			return ihdr, idats, nil
		}
		b = b[12+n:]
	}
	return nil, nil, io.ErrUnexpectedEOF
}
