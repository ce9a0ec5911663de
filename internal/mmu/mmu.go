// Package mmu implements the single read/write memory bus described
// in §4.3: address-range dispatch to every other subsystem. Its only
// own state is the HDMA1-4 staging registers and the GBC-mode flag.
package mmu

import (
	"github.com/sirupsen/logrus"

	"github.com/retrogb/gbcore/internal/apu"
	"github.com/retrogb/gbcore/internal/cartridge"
	"github.com/retrogb/gbcore/internal/dma"
	"github.com/retrogb/gbcore/internal/hdma"
	"github.com/retrogb/gbcore/internal/interrupts"
	"github.com/retrogb/gbcore/internal/joypad"
	"github.com/retrogb/gbcore/internal/ppu"
	"github.com/retrogb/gbcore/internal/ram"
	"github.com/retrogb/gbcore/internal/timer"
)

// MMU dispatches every CPU-visible address to the device that owns
// it.
type MMU struct {
	Cart *cartridge.Cartridge
	VRAM *ram.VRAM
	WRAM *ram.WRAM
	ZP   *ram.ZeroPage
	PPU  *ppu.PPU
	APU  *apu.APU
	Timer *timer.Controller
	DMA   *dma.Engine
	HDMA  *hdma.Engine
	Pad   *joypad.Controller
	IRQ   *interrupts.Controller

	gbc  bool
	hdma hdmaRegs

	Log *logrus.Logger
}

// New returns an MMU wiring together every already-constructed
// subsystem.
func New(
	cart *cartridge.Cartridge,
	vram *ram.VRAM,
	wram *ram.WRAM,
	zp *ram.ZeroPage,
	p *ppu.PPU,
	a *apu.APU,
	tm *timer.Controller,
	dmaEngine *dma.Engine,
	hdmaEngine *hdma.Engine,
	pad *joypad.Controller,
	irq *interrupts.Controller,
	gbc bool,
	log *logrus.Logger,
) *MMU {
	m := NewEmpty()
	m.Wire(cart, vram, wram, zp, p, a, tm, dmaEngine, hdmaEngine, pad, irq, gbc, log)
	return m
}

// NewEmpty returns an MMU with no subsystems wired yet. It exists so
// that collaborators needing a Bus (cpu, dma, hdma) can be handed a
// stable *MMU before every subsystem they in turn depend on has been
// constructed; none of them touch the bus until the emulator starts
// running, by which point Wire has filled it in.
func NewEmpty() *MMU {
	return &MMU{}
}

// Wire installs every subsystem onto an MMU returned by NewEmpty.
func (m *MMU) Wire(
	cart *cartridge.Cartridge,
	vram *ram.VRAM,
	wram *ram.WRAM,
	zp *ram.ZeroPage,
	p *ppu.PPU,
	a *apu.APU,
	tm *timer.Controller,
	dmaEngine *dma.Engine,
	hdmaEngine *hdma.Engine,
	pad *joypad.Controller,
	irq *interrupts.Controller,
	gbc bool,
	log *logrus.Logger,
) {
	m.Cart, m.VRAM, m.WRAM, m.ZP = cart, vram, wram, zp
	m.PPU, m.APU, m.Timer, m.DMA, m.HDMA = p, a, tm, dmaEngine, hdmaEngine
	m.Pad, m.IRQ, m.gbc, m.Log = pad, irq, gbc, log
}

// Read dispatches a CPU-visible read per the §4.3 address map.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.Cart.ReadROM(addr)
	case addr < 0xA000:
		return m.VRAM.Read(addr)
	case addr < 0xC000:
		return m.Cart.ReadRAM(addr - 0xA000)
	case addr < 0xFE00:
		return m.WRAM.Read(addr)
	case addr < 0xFEA0:
		return m.PPU.OAM.Read(addr - 0xFE00)
	case addr < 0xFF00:
		return 0xFF
	case addr == 0xFF00:
		return m.Pad.ReadP1()
	case addr == 0xFF01, addr == 0xFF02:
		return m.readSerial(addr)
	case addr == 0xFF04:
		return m.Timer.ReadDIV()
	case addr == 0xFF05:
		return m.Timer.ReadTIMA()
	case addr == 0xFF06:
		return m.Timer.ReadTMA()
	case addr == 0xFF07:
		return m.Timer.ReadTAC()
	case addr == 0xFF0F:
		return m.IRQ.ReadIF()
	case addr >= 0xFF10 && addr <= 0xFF3F:
		return m.readSPU(addr)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		return m.readLCD(addr)
	case addr == 0xFF4F:
		return m.readVBK()
	case addr >= 0xFF51 && addr <= 0xFF55:
		return m.readHDMA(addr)
	case addr >= 0xFF68 && addr <= 0xFF6B:
		return m.readPalette(addr)
	case addr == 0xFF70:
		return m.readSVBK()
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return m.ZP.Read(addr)
	case addr == 0xFFFF:
		return m.IRQ.ReadIE()
	default:
		return 0xFF
	}
}

// Write dispatches a CPU-visible write per the §4.3 address map.
func (m *MMU) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x8000:
		m.Cart.WriteROM(addr, v)
	case addr < 0xA000:
		m.VRAM.Write(addr, v)
	case addr < 0xC000:
		m.Cart.WriteRAM(addr-0xA000, v, timer.CyclesPerSecond)
	case addr < 0xFE00:
		m.WRAM.Write(addr, v)
	case addr < 0xFEA0:
		m.PPU.OAM.Write(addr-0xFE00, v)
	case addr < 0xFF00:
		// unused echo of OAM; ignored
	case addr == 0xFF00:
		m.Pad.WriteP1(v)
	case addr == 0xFF01, addr == 0xFF02:
		m.writeSerial(addr, v)
	case addr == 0xFF04:
		m.Timer.WriteDIV()
	case addr == 0xFF05:
		m.Timer.WriteTIMA(v)
	case addr == 0xFF06:
		m.Timer.WriteTMA(v)
	case addr == 0xFF07:
		m.Timer.WriteTAC(v)
	case addr == 0xFF0F:
		m.IRQ.WriteIF(v)
	case addr >= 0xFF10 && addr <= 0xFF3F:
		m.writeSPU(addr, v)
	case addr == 0xFF46:
		m.DMA.Start(v)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		m.writeLCD(addr, v)
	case addr == 0xFF4F:
		m.writeVBK(v)
	case addr >= 0xFF51 && addr <= 0xFF55:
		m.writeHDMA(addr, v)
	case addr >= 0xFF68 && addr <= 0xFF6B:
		m.writePalette(addr, v)
	case addr == 0xFF70:
		m.writeSVBK(v)
	case addr >= 0xFF80 && addr <= 0xFFFE:
		m.ZP.Write(addr, v)
	case addr == 0xFFFF:
		m.IRQ.WriteIE(v)
	default:
		if m.Log != nil {
			m.Log.WithField("addr", addr).Debug("mmu: write to unmapped address ignored")
		}
	}
}

// WriteVRAM is the raw, bank-explicit write HDMA uses; offset is
// already relative to 0x8000 and already masked to the 0x2000
// window.
func (m *MMU) WriteVRAM(offset uint16, v uint8) {
	m.VRAM.WriteBank(m.VRAM.CurrentBank(), offset, v)
}

// serial is unimplemented (§ Non-goals); reads return the values a
// real Game Boy with nothing attached to the link port would.
func (m *MMU) readSerial(addr uint16) uint8 {
	if addr == 0xFF01 {
		return 0xFF
	}
	return 0
}

func (m *MMU) writeSerial(addr uint16, v uint8) {}
