package plasma

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"plasma/internal/vec"
)

const (
	DefaultWidth  = 16 * 60
	DefaultHeight = 9 * 60
	DefaultFrames = 240
	// QuickFrames is a shorter loop for iterating on output handling.
	QuickFrames = 30
)

var ErrInvalidConfig = errors.New("plasma: invalid config")

// Config sets the canvas size and the length of the animation loop.
type Config struct {
	Width  int
	Height int
	Frames int
	// Workers is the number of goroutines rendering row bands of one frame.
	// Values below 2 render on the calling goroutine.
	Workers int
}

func DefaultConfig() Config {
	return Config{Width: DefaultWidth, Height: DefaultHeight, Frames: DefaultFrames, Workers: 1}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	}
	return nil
}

// FrameFunc receives each finished frame as row-major RGB8 bytes. data is
// reused for the next frame once the call returns; copy it to keep it.
type FrameFunc func(frame, width int, data []byte) error

// Generator renders frames into a single reused buffer.
type Generator struct {
	cfg Config
	res vec.Vec2
	buf []byte
}

func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg: cfg,
		res: vec.V2(float32(cfg.Width), float32(cfg.Height)),
		buf: make([]byte, cfg.Width*cfg.Height*3),
	}, nil
}

func (g *Generator) Config() Config { return g.cfg }

// Render draws frame into the shared buffer and returns it. The slice is
// overwritten by the next Render call.
func (g *Generator) Render(frame int) []byte {
	t := Phase(frame, g.cfg.Frames)
	h := g.cfg.Height
	if g.cfg.Workers < 2 || h < 2 {
		g.renderRows(0, h, t)
		return g.buf
	}

	// over-split so uneven rows balance across workers
	bands := min(h, g.cfg.Workers*4)
	step := (h + bands - 1) / bands
	var eg errgroup.Group
	eg.SetLimit(g.cfg.Workers)
	for y0 := 0; y0 < h; y0 += step {
		y1 := min(h, y0+step)
		eg.Go(func() error {
			g.renderRows(y0, y1, t)
			return nil
		})
	}
	_ = eg.Wait()
	return g.buf
}

func (g *Generator) renderRows(y0, y1 int, t float32) {
	w := g.cfg.Width
	off := y0 * w * 3
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			o := Field(vec.V2(float32(x), float32(y)), g.res, t)
			g.buf[off], g.buf[off+1], g.buf[off+2] = Shade(o)
			off += 3
		}
	}
}

// Run renders every frame in order and hands each one to fn before starting
// the next. It stops at the first error from fn or when ctx is done.
func (g *Generator) Run(ctx context.Context, fn FrameFunc) error {
	for frame := 0; frame < g.cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		data := g.Render(frame)
		if err := fn(frame, g.cfg.Width, data); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}

// Generate renders the full loop described by cfg.
func Generate(cfg Config, fn FrameFunc) error {
	g, err := New(cfg)
	if err != nil {
		return err
	}
	return g.Run(context.Background(), fn)
}
