package debugweb

import (
	"github.com/retrogb/gbcore/internal/ppu"
)

// FrameTag and RegisterTag prefix a broadcast message so the browser
// client can tell the two payload kinds apart.
const (
	FrameTag    byte = 1
	RegisterTag byte = 2
)

// VideoSink wraps a Hub as a ppu.Sink, broadcasting each completed
// frame as a tagged RGBA byte blob.
type VideoSink struct {
	hub    *Hub
	pixels [ppu.Width * ppu.Height * 4]byte
}

// NewVideoSink returns a VideoSink broadcasting through hub.
func NewVideoSink(hub *Hub) *VideoSink {
	return &VideoSink{hub: hub}
}

func (s *VideoSink) DrawLineDMG(ly uint8, line [ppu.Width]uint8) {
	row := int(ly) * ppu.Width * 4
	for x, shade := range line {
		gray := 255 - shade*85
		off := row + x*4
		s.pixels[off+0], s.pixels[off+1], s.pixels[off+2], s.pixels[off+3] = gray, gray, gray, 0xFF
	}
}

func (s *VideoSink) DrawLineGBC(ly uint8, line [ppu.Width]uint16) {
	row := int(ly) * ppu.Width * 4
	for x, c := range line {
		off := row + x*4
		s.pixels[off+0] = uint8(c&0x1F) << 3
		s.pixels[off+1] = uint8((c>>5)&0x1F) << 3
		s.pixels[off+2] = uint8((c>>10)&0x1F) << 3
		s.pixels[off+3] = 0xFF
	}
}

func (s *VideoSink) Flip() {
	msg := make([]byte, 1+len(s.pixels))
	msg[0] = FrameTag
	copy(msg[1:], s.pixels[:])
	s.hub.Broadcast(msg)
}

// BroadcastRegisters sends a tagged snapshot of the registers a debug
// UI wants to display (PC, SP, AF, BC, DE, HL, LY, STAT, LCDC).
func BroadcastRegisters(hub *Hub, pc, sp, af, bc, de, hl uint16, ly, stat, lcdc uint8) {
	msg := make([]byte, 1+6*2+3)
	msg[0] = RegisterTag
	put16 := func(off int, v uint16) {
		msg[off] = byte(v)
		msg[off+1] = byte(v >> 8)
	}
	put16(1, pc)
	put16(3, sp)
	put16(5, af)
	put16(7, bc)
	put16(9, de)
	put16(11, hl)
	msg[13], msg[14], msg[15] = ly, stat, lcdc
	hub.Broadcast(msg)
}
