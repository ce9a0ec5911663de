// Package clip copies text and screenshots to the host clipboard, a
// debugging convenience for quickly sharing a cartridge title or the
// current frame.
package clip

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"golang.design/x/clipboard"
	ximage "golang.org/x/image/draw"
)

// CopyText copies s to the clipboard as plain text.
func CopyText(s string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// CopyScreenshot scales an RGBA frame of width x height by scale
// (nearest-neighbor, matching the blocky look of the native display)
// and copies the result as a PNG image.
func CopyScreenshot(pixels []byte, width, height, scale int) error {
	if err := clipboard.Init(); err != nil {
		return err
	}

	src := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	ximage.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
