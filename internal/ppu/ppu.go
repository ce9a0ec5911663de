// Package ppu implements the scanline-timed picture processing unit:
// the mode state machine, scanline renderer, and LCDC/STAT/palette
// register surface, per §4.8.
package ppu

import (
	"github.com/retrogb/gbcore/internal/interrupts"
	"github.com/retrogb/gbcore/internal/scheduler"
)

const (
	Width  = 160
	Height = 144

	mode2Cycles = 80
	mode3Cycles = 172
	mode3End    = mode2Cycles + mode3Cycles
	mode0Cycles = 204
	HTotal      = mode2Cycles + mode3Cycles + mode0Cycles // 456

	vblankStart = 144
	vblankLines = 10
	vTotal      = vblankStart + vblankLines // 154
)

// VRAMReader is the subset of ram.VRAM the renderer needs: bank-
// explicit reads, independent of the CPU-visible VBK selection.
type VRAMReader interface {
	ReadBank(bank int, addr uint16) uint8
}

// HDMA is the subset of hdma.Engine the PPU drives on HBlank.
type HDMA interface {
	Active() bool
	HBlank()
}

// Sink is the host-supplied display backend, §6.
type Sink interface {
	DrawLineDMG(ly uint8, line [Width]uint8)
	DrawLineGBC(ly uint8, line [Width]uint16)
	Flip()
}

// PPU is the picture processing unit.
type PPU struct {
	// scroll and window position
	ScrollX, ScrollY uint8
	WindowX, WindowY uint8

	// LCDC decoded bits
	masterEnable     bool
	backgroundEnable bool
	windowEnable     bool
	spriteEnable     bool
	tallSprites      bool
	bgHighTileMap    bool
	winHighTileMap   bool
	bgUseSpriteTiles bool

	// STAT interrupt-source enables
	mode0IRQ bool
	mode1IRQ bool
	mode2IRQ bool
	lycIRQ   bool

	LY          uint8
	LYC         uint8
	linePos     int32
	windowLine  int

	BGP, OBP0, OBP1 uint8

	bgPalettes  colorPalettes
	objPalettes colorPalettes

	OAM OAM

	gbc   bool
	vram  VRAMReader
	hdma  HDMA
	irq   *interrupts.Controller
	sched *scheduler.Scheduler
	sink  Sink
}

// New returns a PPU wired to its collaborators. sink may be nil
// until AttachSink is called (useful for headless tests).
func New(sched *scheduler.Scheduler, irq *interrupts.Controller, vram VRAMReader, hdma HDMA, gbc bool) *PPU {
	p := &PPU{sched: sched, irq: irq, vram: vram, hdma: hdma, gbc: gbc}
	p.Reset()
	sched.RegisterHandler(scheduler.PPU, p.Sync)
	return p
}

// AttachSink installs the host display backend.
func (p *PPU) AttachSink(sink Sink) {
	p.sink = sink
}

// Reset restores power-on state: LCD on, all else blank, per
// reset_ppu.
func (p *PPU) Reset() {
	*p = PPU{gbc: p.gbc, vram: p.vram, hdma: p.hdma, irq: p.irq, sched: p.sched, sink: p.sink}
	p.masterEnable = true
}

func (p *PPU) mode() uint8 {
	if p.LY >= vblankStart {
		return 1
	}
	switch {
	case p.linePos < mode2Cycles:
		return 2
	case p.linePos < mode3End:
		return 3
	default:
		return 0
	}
}

// Sync advances the PPU by the elapsed cycles since its last sync,
// drawing lines at the Mode 3 -> Mode 0 boundary and firing the
// interrupts described in §4.8.
func (p *PPU) Sync() {
	elapsed := p.sched.Resync(scheduler.PPU)

	if !p.masterEnable {
		p.sched.Schedule(scheduler.PPU, scheduler.Never)
		return
	}

	lineRemaining := int32(HTotal) - p.linePos

	for elapsed > 0 {
		prevMode := p.mode()

		if elapsed < lineRemaining {
			p.linePos += elapsed
			lineRemaining -= elapsed
			elapsed = 0

			if prevMode != 0 && p.mode() == 0 {
				p.drawCurrentLine()
				if p.mode0IRQ {
					p.irq.Request(interrupts.LCDStat)
				}
				if p.hdma.Active() {
					p.hdma.HBlank()
				}
			}
		} else {
			elapsed -= lineRemaining

			if prevMode == 2 || prevMode == 3 {
				p.drawCurrentLine()
				if p.mode0IRQ {
					p.irq.Request(interrupts.LCDStat)
				}
				if p.hdma.Active() {
					p.hdma.HBlank()
				}
			}

			p.LY++
			p.linePos = 0
			lineRemaining = HTotal

			if p.LY == vblankStart {
				if p.sink != nil {
					p.sink.Flip()
				}
				p.irq.Request(interrupts.VBlank)
				if p.mode1IRQ {
					p.irq.Request(interrupts.LCDStat)
				}
			}

			if p.LY >= vTotal {
				p.LY = 0
				p.windowLine = 0
			}

			if p.lycIRQ && p.LY == p.LYC {
				p.irq.Request(interrupts.LCDStat)
			}
			if p.mode2IRQ && p.LY < vblankStart {
				p.irq.Request(interrupts.LCDStat)
			}
		}
	}

	next := lineRemaining
	if (p.mode0IRQ || p.hdma.Active()) && p.mode() >= 2 {
		next -= mode0Cycles
	}
	p.sched.Schedule(scheduler.PPU, next)
}

// ---- register surface ----

// ReadSTAT returns the STAT byte, resyncing first so mode/LYC reflect
// the current instant.
func (p *PPU) ReadSTAT() uint8 {
	if !p.masterEnable {
		return 0
	}
	p.Sync()

	r := p.mode()
	if p.LY == p.LYC {
		r |= 1 << 2
	}
	if p.mode0IRQ {
		r |= 1 << 3
	}
	if p.mode1IRQ {
		r |= 1 << 4
	}
	if p.mode2IRQ {
		r |= 1 << 5
	}
	if p.lycIRQ {
		r |= 1 << 6
	}
	return r
}

// WriteSTAT updates the four interrupt-source enable bits.
func (p *PPU) WriteSTAT(v uint8) {
	prevMode0 := p.mode0IRQ
	p.Sync()

	p.mode0IRQ = v&0x08 != 0
	p.mode1IRQ = v&0x10 != 0
	p.mode2IRQ = v&0x20 != 0
	p.lycIRQ = v&0x40 != 0

	if !prevMode0 && p.mode0IRQ {
		p.Sync()
	}
}

// ReadLCDC packs the decoded enable bits back into the LCDC byte.
func (p *PPU) ReadLCDC() uint8 {
	p.Sync()
	var v uint8
	if p.backgroundEnable {
		v |= 0x01
	}
	if p.spriteEnable {
		v |= 0x02
	}
	if p.tallSprites {
		v |= 0x04
	}
	if p.bgHighTileMap {
		v |= 0x08
	}
	if p.bgUseSpriteTiles {
		v |= 0x10
	}
	if p.windowEnable {
		v |= 0x20
	}
	if p.winHighTileMap {
		v |= 0x40
	}
	if p.masterEnable {
		v |= 0x80
	}
	return v
}

// WriteLCDC decodes the LCDC byte. A 1->0 transition of the master
// enable blanks the screen immediately (a white frame) and zeroes
// LY/line position, per §4.3.
func (p *PPU) WriteLCDC(v uint8) {
	p.Sync()

	p.backgroundEnable = v&0x01 != 0
	p.spriteEnable = v&0x02 != 0
	p.tallSprites = v&0x04 != 0
	p.bgHighTileMap = v&0x08 != 0
	p.bgUseSpriteTiles = v&0x10 != 0
	p.windowEnable = v&0x20 != 0
	p.winHighTileMap = v&0x40 != 0
	newEnable := v&0x80 != 0

	if newEnable != p.masterEnable {
		p.masterEnable = newEnable
		if !newEnable {
			if p.sink != nil {
				var white [Width]uint8
				for i := 0; i < Height; i++ {
					p.sink.DrawLineDMG(uint8(i), white)
				}
			}
			p.LY = 0
			p.linePos = 0
		}
		p.Sync()
	}
}

// ReadLY returns LY, resynced.
func (p *PPU) ReadLY() uint8 {
	p.Sync()
	return p.LY
}

// BGPaletteIndex/Data and ObjPaletteIndex/Data expose BCPS/BCPD and
// OCPS/OCPD (GBC only; callers gate on gbc mode).
func (p *PPU) BGPaletteIndex() uint8      { return p.bgPalettes.ReadIndex() }
func (p *PPU) WriteBGPaletteIndex(v uint8) { p.bgPalettes.WriteIndex(v) }
func (p *PPU) BGPaletteData() uint8       { return p.bgPalettes.ReadData() }
func (p *PPU) WriteBGPaletteData(v uint8)  { p.bgPalettes.WriteData(v) }

func (p *PPU) ObjPaletteIndex() uint8      { return p.objPalettes.ReadIndex() }
func (p *PPU) WriteObjPaletteIndex(v uint8) { p.objPalettes.WriteIndex(v) }
func (p *PPU) ObjPaletteData() uint8       { return p.objPalettes.ReadData() }
func (p *PPU) WriteObjPaletteData(v uint8)  { p.objPalettes.WriteData(v) }
