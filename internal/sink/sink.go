// Package sink persists rendered frames.
//
// Every sink consumes the frame bytes before WriteFrame returns, so callers
// may reuse the buffer for the next frame.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrBadFrame = errors.New("sink: malformed frame")

// Sink receives row-major RGB8 frames in order.
type Sink interface {
	WriteFrame(frame, width int, data []byte) error
	Close() error
}

// Func adapts a plain function to a Sink with a no-op Close.
type Func func(frame, width int, data []byte) error

func (f Func) WriteFrame(frame, width int, data []byte) error { return f(frame, width, data) }
func (f Func) Close() error                                   { return nil }

// Multi writes each frame to every sink in order and stops at the first error.
type Multi []Sink

func (m Multi) WriteFrame(frame, width int, data []byte) error {
	for _, s := range m {
		if err := s.WriteFrame(frame, width, data); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// frameHeight checks the buffer shape and returns the row count.
func frameHeight(width int, data []byte) (int, error) {
	if width <= 0 || len(data) == 0 || len(data)%(width*3) != 0 {
		return 0, fmt.Errorf("%w: %d bytes at width %d", ErrBadFrame, len(data), width)
	}
	return len(data) / (width * 3), nil
}

// atomicFile is written under a temporary name and only appears at path
// once commit succeeds.
type atomicFile struct {
	*os.File
	path string
}

func createAtomic(path string) (*atomicFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &atomicFile{File: f, path: path}, nil
}

func (f *atomicFile) commit() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), f.path); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

func (f *atomicFile) abort() {
	f.File.Close()
	os.Remove(f.Name())
}
