package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"plasma/internal/plasma"
	"plasma/internal/sink"
	"plasma/internal/tui"
)

func main() {
	cfg := plasma.DefaultConfig()
	flag.IntVar(&cfg.Frames, "frames", cfg.Frames, "number of frames in the loop")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "frame width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "frame height in pixels")
	flag.IntVar(&cfg.Workers, "workers", runtime.GOMAXPROCS(0), "goroutines rendering each frame")
	quick := flag.Bool("quick", false, fmt.Sprintf("render %d frames instead of -frames", plasma.QuickFrames))
	pattern := flag.String("out", sink.DefaultPattern, "PPM file pattern, empty to disable")
	apngPath := flag.String("apng", "", "write an animated PNG to this path")
	delay := flag.Uint("delay", 2, "APNG frame delay in centiseconds")
	useTUI := flag.Bool("tui", false, "show progress and a live preview")
	flag.Parse()

	log.SetFlags(0)
	if *quick {
		cfg.Frames = plasma.QuickFrames
	}
	if *pattern == "" && *apngPath == "" {
		log.Fatal("plasma: nothing to write, set -out or -apng")
	}

	g, err := plasma.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var out sink.Multi
	var ppm *sink.PPM
	if *pattern != "" {
		ppm = sink.NewPPM(*pattern)
		out = append(out, ppm)
	}
	if *apngPath != "" {
		a, err := sink.CreateAPNG(*apngPath, cfg.Frames, uint16(*delay))
		if err != nil {
			log.Fatal(err)
		}
		out = append(out, a)
	}

	describe := func(frame int) string {
		name := *apngPath
		if ppm != nil {
			name = ppm.Path(frame)
		}
		return fmt.Sprintf("Generated %s (%3d/%d)", name, frame+1, cfg.Frames)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *useTUI {
		if err := tui.Run(ctx, g, out, describe); err != nil {
			log.Fatal(err)
		}
		return
	}

	err = g.Run(ctx, func(frame, width int, data []byte) error {
		if err := out.WriteFrame(frame, width, data); err != nil {
			return err
		}
		log.Println(describe(frame))
		return nil
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatal(err)
	}
}
