// Package sdl implements the default host backend: an SDL2 window
// presenting the PPU's frame buffer and an SDL2 audio device consuming
// the APU's double-buffered stereo samples.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retrogb/gbcore/internal/apu"
	"github.com/retrogb/gbcore/internal/joypad"
	"github.com/retrogb/gbcore/internal/ppu"
)

const (
	sampleRate = 65536
	bufferSize = 1024
)

// Sink implements ppu.Sink and apu.Sink against an SDL2 window and
// audio device.
type Sink struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audioDev sdl.AudioDeviceID

	pixels [ppu.Width * ppu.Height * 4]byte
}

// Open creates the window, renderer, texture, and audio device. scale
// multiplies the native 160x144 resolution for the window size.
func Open(title string, scale int) (*Sink, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.Width*scale), int32(ppu.Height*scale),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	renderer.SetLogicalSize(int32(ppu.Width), int32(ppu.Height))

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(ppu.Width), int32(ppu.Height))
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	dev, err := sdl.OpenAudioDevice("", false, &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  bufferSize,
	}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	return &Sink{window: window, renderer: renderer, texture: texture, audioDev: dev}, nil
}

// Close releases every SDL resource.
func (s *Sink) Close() {
	sdl.CloseAudioDevice(s.audioDev)
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}

// DrawLineDMG writes one DMG scanline (palette-applied 0-3 shades,
// expanded here to 8-bit gray) into the staged ABGR8888 frame buffer.
func (s *Sink) DrawLineDMG(ly uint8, line [ppu.Width]uint8) {
	row := int(ly) * ppu.Width * 4
	for x, shade := range line {
		gray := dmgShade[shade&3]
		off := row + x*4
		s.pixels[off+0] = gray
		s.pixels[off+1] = gray
		s.pixels[off+2] = gray
		s.pixels[off+3] = 0xFF
	}
}

// DrawLineGBC writes one GBC scanline of packed 15-bit BGR555 colors,
// expanding each channel to 8 bits.
func (s *Sink) DrawLineGBC(ly uint8, line [ppu.Width]uint16) {
	row := int(ly) * ppu.Width * 4
	for x, c := range line {
		off := row + x*4
		s.pixels[off+0] = expand5(uint8(c & 0x1F))
		s.pixels[off+1] = expand5(uint8((c >> 5) & 0x1F))
		s.pixels[off+2] = expand5(uint8((c >> 10) & 0x1F))
		s.pixels[off+3] = 0xFF
	}
}

// Snapshot returns a copy of the most recently flipped frame as
// packed RGBA bytes, for the clipboard screenshot hotkey.
func (s *Sink) Snapshot() []byte {
	out := make([]byte, len(s.pixels))
	copy(out, s.pixels[:])
	return out
}

// Flip uploads the staged frame buffer to the texture and presents it.
func (s *Sink) Flip() {
	s.texture.Update(nil, s.pixels[:], ppu.Width*4)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

// PushBuffer queues one double-buffered chunk of stereo samples to the
// SDL audio device. SDL's own internal queue is the backpressure
// mechanism standing in for the original's free/ready semaphore pair.
func (s *Sink) PushBuffer(buf *apu.Buffer) {
	raw := make([]byte, 0, len(buf.Samples)*4)
	for _, frame := range buf.Samples {
		raw = append(raw,
			byte(frame[0]), byte(frame[0]>>8),
			byte(frame[1]), byte(frame[1]>>8))
	}
	sdl.QueueAudio(s.audioDev, raw)
}

var dmgShade = [4]byte{0xFF, 0xAA, 0x55, 0x00}

func expand5(v uint8) byte { return v<<3 | v>>2 }

// KeyMap translates an SDL scancode into a joypad button, grounded on
// the teacher's display keymap layout.
var KeyMap = map[sdl.Scancode]joypad.Button{
	sdl.SCANCODE_RIGHT: joypad.Right,
	sdl.SCANCODE_LEFT:  joypad.Left,
	sdl.SCANCODE_UP:    joypad.Up,
	sdl.SCANCODE_DOWN:  joypad.Down,
	sdl.SCANCODE_Z:     joypad.A,
	sdl.SCANCODE_X:     joypad.B,
	sdl.SCANCODE_RETURN: joypad.Start,
	sdl.SCANCODE_RSHIFT: joypad.Select,
}

// ScreenshotKey is the hotkey that triggers onScreenshot in PollEvents.
const ScreenshotKey = sdl.SCANCODE_F2

// PollEvents drains pending SDL events, forwarding key presses to
// press/release, calling onScreenshot on a ScreenshotKey keydown, and
// reporting whether a quit was requested.
func PollEvents(press func(joypad.Button, bool), onScreenshot func()) (quit bool) {
	for {
		event := sdl.PollEvent()
		if event == nil {
			return quit
		}
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Keysym.Scancode == ScreenshotKey && e.State == sdl.PRESSED && e.Repeat == 0 {
				onScreenshot()
				continue
			}
			if button, ok := KeyMap[e.Keysym.Scancode]; ok {
				press(button, e.State == sdl.PRESSED)
			}
		}
	}
}
