// Package gameboy wires together every subsystem into a runnable
// DMG/GBC core and drives it one frame at a time.
package gameboy

import (
	"github.com/sirupsen/logrus"

	"github.com/retrogb/gbcore/internal/apu"
	"github.com/retrogb/gbcore/internal/cartridge"
	"github.com/retrogb/gbcore/internal/cpu"
	"github.com/retrogb/gbcore/internal/dma"
	"github.com/retrogb/gbcore/internal/hdma"
	"github.com/retrogb/gbcore/internal/interrupts"
	"github.com/retrogb/gbcore/internal/joypad"
	"github.com/retrogb/gbcore/internal/mmu"
	"github.com/retrogb/gbcore/internal/ppu"
	"github.com/retrogb/gbcore/internal/ram"
	"github.com/retrogb/gbcore/internal/scheduler"
	"github.com/retrogb/gbcore/internal/timer"
)

// CyclesPerFrame is the number of T-cycles in one 59.7 Hz frame.
const CyclesPerFrame = 70224

// GameBoy aggregates every subsystem behind a single Run/Frame API.
type GameBoy struct {
	CPU   *cpu.CPU
	MMU   *mmu.MMU
	PPU   *ppu.PPU
	APU   *apu.APU
	Timer *timer.Controller
	DMA   *dma.Engine
	HDMA  *hdma.Engine
	Pad   *joypad.Controller
	IRQ   *interrupts.Controller
	Cart  *cartridge.Cartridge

	sched *scheduler.Scheduler
	gbc   bool
	log   *logrus.Logger
}

// config collects Option settings that must be known before the
// gbc-dependent subsystems (VRAM, PPU, DMA) are constructed, plus the
// sinks and logger applied once construction finishes.
type config struct {
	forceDMG    bool
	log         *logrus.Logger
	displaySink ppu.Sink
	audioSink   apu.Sink
}

// Option configures a GameBoy at construction time.
type Option func(*config)

// WithLogger installs a structured logger; the default is
// logrus.StandardLogger().
func WithLogger(log *logrus.Logger) Option {
	return func(c *config) { c.log = log }
}

// ForceDMG disables color-mode features even on a cartridge whose
// header declares GBC support.
func ForceDMG() Option {
	return func(c *config) { c.forceDMG = true }
}

// WithDisplaySink attaches the host video backend.
func WithDisplaySink(sink ppu.Sink) Option {
	return func(c *config) { c.displaySink = sink }
}

// WithAudioSink attaches the host audio backend.
func WithAudioSink(sink apu.Sink) Option {
	return func(c *config) { c.audioSink = sink }
}

// New constructs a GameBoy from a raw ROM image. romPath is used only
// to derive a battery-backed save's path; store may be nil to disable
// persistence entirely.
func New(rom []byte, romPath string, store cartridge.SaveStore, opts ...Option) (*GameBoy, error) {
	cfg := &config{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	sched := scheduler.New()
	irq := interrupts.NewController()

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	gbc := header.GBC && !cfg.forceDMG

	vram := ram.NewVRAM(gbc)
	wram := ram.NewWRAM(gbc)
	zp := ram.NewZeroPage()
	pad := joypad.New(irq)
	tm := timer.New(sched, irq)

	// m is handed to every collaborator that needs a Bus before the
	// subsystems it in turn depends on exist; none of them touch it
	// until the emulator actually runs, by which point Wire below has
	// filled it in.
	m := mmu.NewEmpty()

	hdmaEngine := hdma.New(sched, m)
	p := ppu.New(sched, irq, vram, hdmaEngine, gbc)
	dmaEngine := dma.New(sched, m, &p.OAM, gbc)
	a := apu.New(sched)

	cart, err := cartridge.New(rom, romPath, sched, store)
	if err != nil {
		return nil, err
	}

	m.Wire(cart, vram, wram, zp, p, a, tm, dmaEngine, hdmaEngine, pad, irq, gbc, cfg.log)

	c := cpu.New(m, irq, sched)

	g := &GameBoy{
		CPU: c, MMU: m, PPU: p, APU: a, Timer: tm,
		DMA: dmaEngine, HDMA: hdmaEngine, Pad: pad, IRQ: irq, Cart: cart,
		sched: sched, gbc: gbc, log: cfg.log,
	}

	if cfg.displaySink != nil {
		g.PPU.AttachSink(cfg.displaySink)
	}
	if cfg.audioSink != nil {
		g.APU.AttachSink(cfg.audioSink)
	}

	return g, nil
}

// Reset restores power-on state across every subsystem.
func (g *GameBoy) Reset() {
	g.sched.Reset()
	g.IRQ.Reset()
	g.Timer.Reset()
	g.DMA.Reset()
	g.HDMA.Reset()
	g.Pad.Reset()
	g.PPU.Reset()
	g.APU.Reset()
	g.CPU.Reset()
}

// Frame runs the emulation forward by exactly one frame's worth of
// cycles and returns any fatal CPU error encountered (an undefined
// opcode). RunFor rebases the scheduler's clock to zero on entry, so
// each call's target is relative to where the previous call left off,
// not an absolute running total.
func (g *GameBoy) Frame() error {
	return g.CPU.RunFor(CyclesPerFrame)
}

// Button forwards a press/release to the joypad controller.
func (g *GameBoy) Button(b joypad.Button, pressed bool) {
	g.Pad.Set(b, pressed)
}

// Close flushes any pending battery-backed save.
func (g *GameBoy) Close() error {
	return g.Cart.Close()
}
