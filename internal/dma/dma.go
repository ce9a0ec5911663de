// Package dma implements the OAM DMA engine: a 160-byte copy from a
// CPU-visible source region into OAM, paced at one byte per four
// cycles and driven lazily by the scheduler.
package dma

import "github.com/retrogb/gbcore/internal/scheduler"

// Length is the number of bytes copied by one OAM DMA transfer (40
// sprites x 4 bytes).
const Length = 160

// BusReader reads a byte through the normal memory bus, so the DMA
// engine observes mirroring/banking exactly as the CPU would.
type BusReader interface {
	Read(addr uint16) uint8
}

// OAM is the 160-byte sprite attribute table the DMA engine copies
// into.
type OAM interface {
	WriteDMAByte(index int, v uint8)
}

// Engine is the OAM DMA copy engine.
type Engine struct {
	running bool
	source  uint16
	pos     int

	gbc   bool
	bus   BusReader
	oam   OAM
	sched *scheduler.Scheduler
}

// New returns a DMA engine wired to bus and oam. gbc selects whether
// cartridge-region sources are legal (color only).
func New(sched *scheduler.Scheduler, bus BusReader, oam OAM, gbc bool) *Engine {
	e := &Engine{bus: bus, oam: oam, sched: sched, gbc: gbc}
	sched.RegisterHandler(scheduler.DMA, e.Sync)
	return e
}

// SetModel updates the DMG/GBC legality rule after construction.
func (e *Engine) SetModel(gbc bool) {
	e.gbc = gbc
}

// Reset restores power-on state.
func (e *Engine) Reset() {
	e.running = false
	e.source = 0
	e.pos = 0
}

// Running reports whether a transfer is in flight.
func (e *Engine) Running() bool {
	return e.running
}

// Sync copies any bytes due since the last sync and reschedules.
func (e *Engine) Sync() {
	elapsed := e.sched.Resync(scheduler.DMA)

	if !e.running {
		e.sched.Schedule(scheduler.DMA, scheduler.Never)
		return
	}

	length := int(elapsed) / 4
	for length > 0 && e.pos < Length {
		b := e.bus.Read(e.source + uint16(e.pos))
		e.oam.WriteDMAByte(e.pos, b)
		length--
		e.pos++
	}

	if e.pos >= Length {
		e.running = false
		e.sched.Schedule(scheduler.DMA, scheduler.Never)
	} else {
		e.sched.Schedule(scheduler.DMA, 4)
	}
}

// Start begins a transfer from sourceHigh<<8. An illegal source for
// the current model silently cancels the transfer rather than
// starting it.
func (e *Engine) Start(sourceHigh uint8) {
	e.Sync()

	e.source = uint16(sourceHigh) << 8
	e.pos = 0

	// GBC can DMA directly out of the cartridge; DMG only out of RAM.
	legal := e.source < 0xE000 && (e.gbc || e.source >= 0x8000)
	e.running = legal

	e.Sync()
}
