package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/retrogb/gbcore/internal/gameboy"
	"github.com/retrogb/gbcore/internal/ppu"
	"github.com/retrogb/gbcore/pkg/host/clip"
	"github.com/retrogb/gbcore/pkg/host/debugweb"
	"github.com/retrogb/gbcore/pkg/host/picker"
	sdlhost "github.com/retrogb/gbcore/pkg/host/sdl"
	"github.com/retrogb/gbcore/pkg/host/waveform"
	"github.com/retrogb/gbcore/pkg/romfile"
)

// fanoutSink forwards every Sink call to each of its members, so the
// SDL window and the debug-web stream can both watch the same PPU.
type fanoutSink []ppu.Sink

func (f fanoutSink) DrawLineDMG(ly uint8, line [ppu.Width]uint8) {
	for _, s := range f {
		s.DrawLineDMG(ly, line)
	}
}

func (f fanoutSink) DrawLineGBC(ly uint8, line [ppu.Width]uint16) {
	for _, s := range f {
		s.DrawLineGBC(ly, line)
	}
}

func (f fanoutSink) Flip() {
	for _, s := range f {
		s.Flip()
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "gbcore [options] <ROM file> (F2 copies a screenshot to the clipboard)"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "scale", Usage: "window scale factor", Value: 4},
		cli.BoolFlag{Name: "force-dmg", Usage: "disable color-mode features even on a GBC cartridge"},
		cli.BoolFlag{Name: "debug-web", Usage: "serve a debug websocket stream of every frame"},
		cli.StringFlag{Name: "dump-waveform", Usage: "on exit, write a PNG plot of the last second of audio to this path"},
		cli.BoolFlag{Name: "copy-title", Usage: "copy the cartridge title to the clipboard on load"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Error("gbcore: fatal")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.Args().First()
	if romPath == "" {
		picked, err := picker.Pick(".")
		if err != nil {
			return fmt.Errorf("gbcore: %w", err)
		}
		if picked == "" {
			return nil
		}
		romPath = picked
	}

	image, err := romfile.Load(romPath)
	if err != nil {
		return fmt.Errorf("gbcore: %w", err)
	}

	log := logrus.StandardLogger()
	log.WithField("hash", fmt.Sprintf("%016x", image.Hash)).Info("gbcore: loaded ROM")

	var opts []gameboy.Option
	opts = append(opts, gameboy.WithLogger(log))
	if c.Bool("force-dmg") {
		opts = append(opts, gameboy.ForceDMG())
	}

	gb, err := gameboy.New(image.Data, image.Path, romfile.FileStore{}, opts...)
	if err != nil {
		return fmt.Errorf("gbcore: %w", err)
	}
	defer gb.Close()

	if c.Bool("copy-title") {
		if err := clip.CopyText(gb.Cart.Header.Title); err != nil {
			log.WithError(err).Warn("gbcore: failed to copy title to clipboard")
		}
	}

	scale := c.Int("scale")
	sink, err := sdlhost.Open(gb.Cart.Header.Title, scale)
	if err != nil {
		return fmt.Errorf("gbcore: %w", err)
	}
	defer sink.Close()

	gb.APU.AttachSink(sink)
	videoSinks := fanoutSink{sink}

	if c.Bool("debug-web") {
		hub := debugweb.NewHub()
		go hub.Run()
		http.Handle("/", hub)
		go http.ListenAndServe(":8090", nil)
		videoSinks = append(videoSinks, debugweb.NewVideoSink(hub))
	}
	gb.PPU.AttachSink(videoSinks)

	if path := c.String("dump-waveform"); path != "" {
		defer func() {
			if err := waveform.Dump(gb.APU, 0, path); err != nil {
				log.WithError(err).Warn("gbcore: failed to dump waveform")
			}
		}()
	}

	onScreenshot := func() {
		if err := clip.CopyScreenshot(sink.Snapshot(), ppu.Width, ppu.Height, scale); err != nil {
			log.WithError(err).Warn("gbcore: failed to copy screenshot to clipboard")
		}
	}

	quit := false
	for !quit {
		quit = sdlhost.PollEvents(gb.Button, onScreenshot)
		if err := gb.Frame(); err != nil {
			return fmt.Errorf("gbcore: %w", err)
		}
	}

	return nil
}
