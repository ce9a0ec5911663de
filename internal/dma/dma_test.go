package dma

import (
	"testing"

	"github.com/retrogb/gbcore/internal/scheduler"
)

type fakeBus struct {
	mem [0x10000]byte
}

func (b *fakeBus) Read(addr uint16) uint8 { return b.mem[addr] }

type fakeOAM struct {
	data [Length]byte
}

func (o *fakeOAM) WriteDMAByte(index int, v uint8) { o.data[index] = v }

func TestStartFromRAMCopiesOverTime(t *testing.T) {
	sched := scheduler.New()
	bus := &fakeBus{}
	for i := 0; i < Length; i++ {
		bus.mem[0xC000+i] = byte(i + 1)
	}
	oam := &fakeOAM{}
	e := New(sched, bus, oam, false)

	e.Start(0xC0)
	if !e.Running() {
		t.Fatalf("Start(0xC0): expected transfer running on DMG")
	}

	sched.Tick(Length * 4)
	e.Sync()

	if e.Running() {
		t.Errorf("expected transfer complete after %d cycles", Length*4)
	}
	for i := 0; i < Length; i++ {
		if oam.data[i] != byte(i+1) {
			t.Errorf("oam[%d]: got %d, want %d", i, oam.data[i], i+1)
		}
	}
}

func TestStartFromCartridgeIsIllegalOnDMG(t *testing.T) {
	sched := scheduler.New()
	e := New(sched, &fakeBus{}, &fakeOAM{}, false)

	e.Start(0x40) // source 0x4000, cartridge ROM

	if e.Running() {
		t.Errorf("Start(0x40) on DMG: expected transfer to be rejected")
	}
}

func TestStartFromCartridgeIsLegalOnGBC(t *testing.T) {
	sched := scheduler.New()
	e := New(sched, &fakeBus{}, &fakeOAM{}, true)

	e.Start(0x40)

	if !e.Running() {
		t.Errorf("Start(0x40) on GBC: expected transfer to be accepted")
	}
}

func TestPartialSyncCopiesOnlyElapsedBytes(t *testing.T) {
	sched := scheduler.New()
	bus := &fakeBus{}
	oam := &fakeOAM{}
	e := New(sched, bus, oam, false)

	e.Start(0xC0)
	sched.Tick(20) // 5 bytes worth at 4 cycles/byte
	e.Sync()

	if e.pos != 5 {
		t.Errorf("pos after 20 cycles: got %d, want 5", e.pos)
	}
	if !e.Running() {
		t.Errorf("expected transfer still running midway")
	}
}
