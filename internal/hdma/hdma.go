// Package hdma implements the color-mode VRAM block-copy engine: a
// bulk transfer that happens immediately, or an hblank-mode transfer
// that copies one 16-byte burst every time the PPU signals an HBlank
// edge.
package hdma

import "github.com/retrogb/gbcore/internal/scheduler"

// Bus is the minimal bus surface HDMA needs: generic reads (so it
// observes banking/mirroring like the CPU) and raw VRAM writes
// relative to the bank selected by VBK.
type Bus interface {
	Read(addr uint16) uint8
	WriteVRAM(offset uint16, v uint8)
}

// Engine is the HDMA block-copy engine.
type Engine struct {
	source      uint16
	destination uint16 // offset into the 0x2000 VRAM window
	length      uint8  // remaining (length+1)*16-byte blocks, saturates to 0x7F when inactive
	hblankMode  bool

	sched *scheduler.Scheduler
	bus   Bus
}

// New returns an HDMA engine wired to sched and bus.
func New(sched *scheduler.Scheduler, bus Bus) *Engine {
	return &Engine{sched: sched, bus: bus, length: 0x7F}
}

// Reset restores power-on (inactive) state.
func (e *Engine) Reset() {
	e.source = 0
	e.destination = 0
	e.length = 0x7F
	e.hblankMode = false
}

// Active reports whether an hblank-mode transfer is armed.
func (e *Engine) Active() bool {
	return e.hblankMode
}

// SetSource sets the 16-bit source address (HDMA1:HDMA2); the low 4
// bits are forced to 0, so transfers always start 16-byte aligned.
func (e *Engine) SetSource(addr uint16) {
	e.source = addr &^ 0xF
}

// SetDestination sets the VRAM-relative destination offset.
func (e *Engine) SetDestination(offset uint16) {
	e.destination = (offset &^ 0xF) & 0x1FFF
}

// copy transfers length bytes immediately, advancing the scheduler's
// clock by 2 cycles per byte (the bulk-transfer cost).
func (e *Engine) copy(length uint16) {
	e.sched.Tick(int32(length) * 2)

	src, dst := e.source, e.destination
	for i := uint16(0); i < length; i++ {
		v := e.bus.Read(src)
		e.bus.WriteVRAM(dst%0x2000, v)
		src++
		dst++
	}
	e.source, e.destination = src, dst
}

// HBlank is called by the PPU once per HBlank transition while an
// hblank-mode transfer is armed. It copies exactly 16 bytes.
func (e *Engine) HBlank() {
	if !e.hblankMode {
		return
	}
	e.copy(0x10)

	if e.length == 0 {
		e.hblankMode = false
		e.length = 0x7F
	} else {
		e.length--
	}
}

// StartBulk performs an immediate (length+1)*16-byte copy and leaves
// the transfer inactive.
func (e *Engine) StartBulk(length uint8) {
	e.copy((uint16(length) + 1) * 0x10)
	e.hblankMode = false
	e.length = 0x7F
}

// ArmHBlank marks the transfer as hblank-mode with the given
// remaining-block length; the PPU drives progress via HBlank.
func (e *Engine) ArmHBlank(length uint8) {
	e.length = length
	e.hblankMode = true
}

// Cancel disarms an in-flight hblank-mode transfer (writing HDMA5
// with bit 7 = 0 while one is running).
func (e *Engine) Cancel() {
	e.hblankMode = false
}

// Length5 returns the packed HDMA5 value: bit 7 clear while
// hblank-mode is armed, set (inactive) otherwise, low 7 bits the
// remaining block count.
func (e *Engine) Length5() uint8 {
	v := e.length & 0x7F
	if !e.hblankMode {
		v |= 0x80
	}
	return v
}
