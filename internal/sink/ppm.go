package sink

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultPattern names frames out-000.ppm, out-001.ppm, ...
const DefaultPattern = "out-%03d.ppm"

// PPM writes one binary (P6) PPM file per frame.
type PPM struct {
	pattern string
}

// NewPPM returns a sink naming files with pattern, a fmt format taking the
// frame index.
func NewPPM(pattern string) *PPM {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &PPM{pattern: pattern}
}

func (s *PPM) Path(frame int) string { return fmt.Sprintf(s.pattern, frame) }

func (s *PPM) WriteFrame(frame, width int, data []byte) error {
	height, err := frameHeight(width, data)
	if err != nil {
		return err
	}
	path := s.Path(frame)
	f, err := createAtomic(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePPM(f, width, height, data); err != nil {
		f.abort()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.commit(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *PPM) Close() error { return nil }

// EncodePPM writes a P6 header followed by the raw RGB8 pixels.
func EncodePPM(w io.Writer, width, height int, data []byte) error {
	if len(data) != width*height*3 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrBadFrame, len(data), width, height)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height)
	bw.Write(data)
	return bw.Flush()
}
