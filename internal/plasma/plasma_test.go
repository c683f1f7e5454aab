package plasma

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"plasma/internal/vec"
)

func TestPhaseClosesLoop(t *testing.T) {
	if got := Phase(0, 240); got != 0 {
		t.Fatalf("t(0)=%v", got)
	}
	if got := Phase(240, 240); got != float32(2*math.Pi) {
		t.Fatalf("t(N)=%v", got)
	}
	if got := Phase(15, 30); got != float32(math.Pi) {
		t.Fatalf("t(N/2)=%v", got)
	}
}

func TestFieldLoopEndpointsMatch(t *testing.T) {
	const w, h = 64, 36
	r := vec.V2(w, h)
	var sum float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fc := vec.V2(float32(x), float32(y))
			a0, a1, a2 := Shade(Field(fc, r, 0))
			b0, b1, b2 := Shade(Field(fc, r, Phase(1, 1)))
			sum += math.Abs(float64(a0)-float64(b0)) +
				math.Abs(float64(a1)-float64(b1)) +
				math.Abs(float64(a2)-float64(b2))
		}
	}
	if mean := sum / (w * h * 3); mean > 0.5 {
		t.Fatalf("mean byte difference between t=0 and t=2pi: %v", mean)
	}
}

func TestMirroredTermsAreSymmetric(t *testing.T) {
	r := vec.V2(DefaultWidth, DefaultHeight)
	cx := float32(DefaultWidth / 2)
	for _, d := range []float32{1, 7, 60, 200, 479} {
		for _, y := range []float32{0, 100, 270, 539} {
			pl := normalize(vec.V2(cx-d, y), r)
			pr := normalize(vec.V2(cx+d, y), r)
			if pl.X != -pr.X || pl.Y != pr.Y {
				t.Fatalf("d=%v y=%v: p %v vs %v", d, y, pl, pr)
			}
			ll, lr := envelope(pl), envelope(pr)
			if ll != lr || ll.X != ll.Y {
				t.Fatalf("d=%v y=%v: l %v vs %v", d, y, ll, lr)
			}
			if gl, gr := glow(ll, pl), glow(lr, pr); gl != gr {
				t.Fatalf("d=%v y=%v: glow %v vs %v", d, y, gl, gr)
			}
		}
	}
}

func TestShadeTruncatesAndClamps(t *testing.T) {
	r, g, b := Shade(vec.V4(0.999, 1.5, -0.2, 9))
	if r != 254 || g != 255 || b != 0 {
		t.Fatalf("shade=%d,%d,%d", r, g, b)
	}
	r, g, b = Shade(vec.V4(float32(math.NaN()), 1, 0.5, 0))
	if r != 0 || g != 255 || b != 127 {
		t.Fatalf("shade=%d,%d,%d", r, g, b)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default: %v", err)
	}
	for _, c := range []Config{
		{Width: 0, Height: 1, Frames: 1},
		{Width: 1, Height: -1, Frames: 1},
		{Width: 1, Height: 1, Frames: 0},
	} {
		if _, err := New(c); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: err=%v", c, err)
		}
	}
}

func TestGenerateSmallCanvas(t *testing.T) {
	cfg := Config{Width: 4, Height: 2, Frames: 1}
	calls := 0
	err := Generate(cfg, func(frame, width int, data []byte) error {
		calls++
		if frame != 0 || width != 4 {
			t.Fatalf("frame=%d width=%d", frame, width)
		}
		if len(data) != 24 {
			t.Fatalf("len=%d", len(data))
		}
		r := vec.V2(4, 2)
		off := 0
		for y := 0; y < 2; y++ {
			for x := 0; x < 4; x++ {
				cr, cg, cb := Shade(Field(vec.V2(float32(x), float32(y)), r, 0))
				if data[off] != cr || data[off+1] != cg || data[off+2] != cb {
					t.Fatalf("pixel (%d,%d)=%v want %d,%d,%d", x, y, data[off:off+3], cr, cg, cb)
				}
				off += 3
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func collect(t *testing.T, cfg Config) [][]byte {
	t.Helper()
	var frames [][]byte
	err := Generate(cfg, func(frame, width int, data []byte) error {
		if frame != len(frames) {
			t.Fatalf("frame=%d after %d frames", frame, len(frames))
		}
		if len(data) != cfg.Width*cfg.Height*3 {
			t.Fatalf("len=%d", len(data))
		}
		frames = append(frames, bytes.Clone(data))
		return nil
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return frames
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{Width: 48, Height: 27, Frames: 3}
	a := collect(t, cfg)
	b := collect(t, cfg)
	cfg.Workers = 5
	c := collect(t, cfg)
	if len(a) != 3 || len(b) != 3 || len(c) != 3 {
		t.Fatalf("frame counts %d %d %d", len(a), len(b), len(c))
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			t.Fatalf("frame %d differs between runs", i)
		}
		if !bytes.Equal(a[i], c[i]) {
			t.Fatalf("frame %d differs between serial and parallel", i)
		}
	}
	if bytes.Equal(a[0], a[1]) {
		t.Fatalf("frames 0 and 1 are identical")
	}
}

func TestBufferIsReused(t *testing.T) {
	g, err := New(Config{Width: 8, Height: 4, Frames: 2})
	if err != nil {
		t.Fatal(err)
	}
	first := g.Render(0)
	second := g.Render(1)
	if &first[0] != &second[0] {
		t.Fatalf("buffer reallocated between frames")
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	g, err := New(Config{Width: 2, Height: 2, Frames: 5})
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk full")
	calls := 0
	err = g.Run(context.Background(), func(frame, width int, data []byte) error {
		calls++
		if frame == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) || err.Error() != "frame 2: disk full" {
		t.Fatalf("err=%v", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestRunHonorsCancel(t *testing.T) {
	g, err := New(Config{Width: 2, Height: 2, Frames: 5})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	err = g.Run(ctx, func(frame, width int, data []byte) error {
		if frame == 1 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
}
