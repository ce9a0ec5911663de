// Package waveform renders a PNG plot of the four SPU channel
// amplitude envelopes over the last second of emulated audio,
// consuming the APU's diagnostics ring buffer.
package waveform

import (
	"image"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/retrogb/gbcore/internal/apu"
)

var channelColors = [4]color.Color{
	color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF},
	color.RGBA{R: 0x40, G: 0xC0, B: 0x40, A: 0xFF},
	color.RGBA{R: 0x40, G: 0x80, B: 0xE0, A: 0xFF},
	color.RGBA{R: 0xD0, G: 0xA0, B: 0x20, A: 0xFF},
}

// Dump reads the last n diagnostic frames from a, plots each of the
// four channels as a separate line, and writes a PNG to path. n of 0
// means every frame currently buffered.
func Dump(a *apu.APU, n int, path string) error {
	ch1, ch2, ch3, ch4 := a.Diagnostics(n)

	p := plot.New()
	p.Title.Text = "channel amplitude"
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "amplitude"

	channels := [][]int16{ch1, ch2, ch3, ch4}
	names := [4]string{"ch1", "ch2", "ch3", "ch4"}

	for i, samples := range channels {
		if len(samples) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(samples))
		for j, v := range samples {
			pts[j].X = float64(j)
			pts[j].Y = float64(v)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = channelColors[i]
		p.Add(line)
		p.Legend.Add(names[i], line)
	}

	img := image.NewRGBA(image.Rect(0, 0, 1024, 480))
	canvas := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = vgimg.PngCanvas{Canvas: canvas}.WriteTo(f)
	return err
}
