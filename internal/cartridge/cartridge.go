// Package cartridge implements ROM header parsing, the MBC1/2/3/5
// mapper family, the MBC3 real-time clock, and battery-backed save
// persistence.
package cartridge

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retrogb/gbcore/internal/scheduler"
)

// FlushSeconds is the quiet period after a RAM write before the
// cartridge flushes its save file, §4.4.
const FlushSeconds = 3

// Cartridge owns the ROM image, RAM, mapper, and (for MBC3-with-RTC
// carts) the real-time clock.
type Cartridge struct {
	Header *Header

	rom []byte
	ram []byte

	mapper Mapper
	rtc    *RTC

	savePath string
	dirty    bool

	sched *scheduler.Scheduler

	// Store is the injected save-file backend; nil disables
	// persistence (e.g. in tests).
	Store SaveStore
}

// SaveStore is the external collaborator that reads/writes the save
// file for a cartridge. The core never touches the filesystem
// directly, per §1.
type SaveStore interface {
	Load(path string) ([]byte, error)
	Save(path string, data []byte) error
}

// New parses rom's header and constructs the matching mapper. romPath
// is used only to derive the `.sav` path for battery-backed carts.
func New(rom []byte, romPath string, sched *scheduler.Scheduler, store SaveStore) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{Header: header, rom: rom, sched: sched, Store: store}
	if header.RAMSize > 0 {
		c.ram = make([]byte, header.RAMSize)
	}

	if header.HasRTC {
		c.rtc = NewRTC()
	}

	switch header.Mapper {
	case NoMapper:
		c.mapper = newNoMapper(rom)
	case MBC1:
		c.mapper = newMBC1(rom, c.ram, header.ROMBanks, header.RAMBanks)
	case MBC2:
		c.mapper = newMBC2(rom, c.ram, header.ROMBanks)
	case MBC3:
		c.mapper = newMBC3(rom, c.ram, header.ROMBanks, header.RAMBanks, c.rtc)
	case MBC5:
		c.mapper = newMBC5(rom, c.ram, header.ROMBanks, header.RAMBanks)
	default:
		return nil, fmt.Errorf("cartridge: unhandled mapper kind %v", header.Mapper)
	}

	if header.HasBattery {
		c.savePath = derivedSavePath(romPath)
		c.loadSave()
	}

	if sched != nil {
		sched.RegisterHandler(scheduler.Cart, func() { _ = c.Sync() })
		sched.Schedule(scheduler.Cart, scheduler.Never)
	}

	return c, nil
}

func derivedSavePath(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".sav"
}

func (c *Cartridge) loadSave() {
	if c.Store == nil {
		return
	}
	data, err := c.Store.Load(c.savePath)
	if err != nil || len(data) == 0 {
		return
	}

	n := len(c.ram)
	if n > 0 && len(data) >= n {
		copy(c.ram, data[:n])
	}
	if c.Header.HasRTC && c.rtc != nil && len(data) >= n+DumpSize {
		c.rtc.Load(data[n : n+DumpSize])
	}
}

// flush writes RAM (and, if present, the RTC block) to the save
// store. It is a no-op when there is nothing battery-backed.
func (c *Cartridge) flush() error {
	if c.Store == nil || c.savePath == "" || !c.dirty {
		return nil
	}

	data := make([]byte, 0, len(c.ram)+DumpSize)
	data = append(data, c.ram...)
	if c.Header.HasRTC && c.rtc != nil {
		data = append(data, c.rtc.Dump()...)
	}

	if err := c.Store.Save(c.savePath, data); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// Sync is the scheduler's Cart sync function: it flushes any pending
// save and goes idle (the flush itself is scheduled 3 seconds ahead
// of the triggering write, not re-armed here).
func (c *Cartridge) Sync() error {
	c.sched.Resync(scheduler.Cart)
	err := c.flush()
	c.sched.Schedule(scheduler.Cart, scheduler.Never)
	return err
}

// markDirty records that RAM changed and arms a flush 3 seconds of
// simulated time from now, per §4.4.
func (c *Cartridge) markDirty(cyclesPerSecond int32) {
	if c.savePath == "" {
		return
	}
	c.dirty = true
	if c.sched != nil {
		c.sched.Schedule(scheduler.Cart, FlushSeconds*cyclesPerSecond)
	}
}

// ReadROM dispatches a 0x0000-0x7FFF read through the mapper.
func (c *Cartridge) ReadROM(addr uint16) uint8 {
	return c.mapper.ReadROM(addr)
}

// WriteROM dispatches a 0x0000-0x7FFF write (a mapper command) through
// the mapper.
func (c *Cartridge) WriteROM(addr uint16, v uint8) {
	c.mapper.WriteROM(addr, v)
}

// ReadRAM dispatches a 0xA000-0xBFFF read; addr is already relative
// to 0xA000.
func (c *Cartridge) ReadRAM(addr uint16) uint8 {
	return c.mapper.ReadRAM(addr)
}

// WriteRAM dispatches a 0xA000-0xBFFF write and, on a real RAM write
// (not an RTC register edit that happens not to persist anything),
// arms a deferred flush.
func (c *Cartridge) WriteRAM(addr uint16, v uint8, cyclesPerSecond int32) {
	if c.mapper.WriteRAM(addr, v) {
		c.markDirty(cyclesPerSecond)
	}
}

// Close flushes any pending save unconditionally, for clean shutdown.
func (c *Cartridge) Close() error {
	c.dirty = c.dirty || (c.savePath != "" && len(c.ram) > 0)
	return c.flush()
}
