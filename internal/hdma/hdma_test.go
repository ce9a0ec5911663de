package hdma

import (
	"testing"

	"github.com/retrogb/gbcore/internal/scheduler"
)

type fakeBus struct {
	rom  [0x10000]byte
	vram [0x2000]byte
}

func (b *fakeBus) Read(addr uint16) uint8 { return b.rom[addr] }
func (b *fakeBus) WriteVRAM(offset uint16, v uint8) { b.vram[offset] = v }

func TestStartBulkCopiesImmediatelyAndDeactivates(t *testing.T) {
	sched := scheduler.New()
	bus := &fakeBus{}
	for i := range bus.rom[:0x20] {
		bus.rom[i] = byte(i)
	}
	e := New(sched, bus)
	e.SetSource(0x0000)
	e.SetDestination(0x0000)

	e.StartBulk(1) // (1+1)*16 = 32 bytes

	for i := 0; i < 32; i++ {
		if bus.vram[i] != byte(i) {
			t.Errorf("vram[%d]: got 0x%02X, want 0x%02X", i, bus.vram[i], byte(i))
		}
	}
	if e.Active() {
		t.Errorf("StartBulk: expected transfer inactive afterward")
	}
	if got := sched.T; got != 64 {
		t.Errorf("scheduler T after StartBulk: got %d, want 64", got)
	}
}

func TestArmHBlankRequiresExplicitHBlankCallsToProgress(t *testing.T) {
	sched := scheduler.New()
	bus := &fakeBus{}
	e := New(sched, bus)
	e.SetSource(0x0000)
	e.SetDestination(0x0000)

	e.ArmHBlank(2) // 3 blocks of 16 bytes

	if !e.Active() {
		t.Errorf("ArmHBlank: expected transfer active")
	}
	if got := e.Length5(); got != 0x02 {
		t.Errorf("Length5 before any HBlank: got 0x%02X, want 0x02", got)
	}

	e.HBlank()
	if got := e.Length5(); got != 0x01 {
		t.Errorf("Length5 after one HBlank: got 0x%02X, want 0x01", got)
	}

	e.HBlank()
	e.HBlank()
	if e.Active() {
		t.Errorf("Length5 after final HBlank: expected transfer to deactivate")
	}
	if got := e.Length5(); got != 0xFF {
		t.Errorf("Length5 once finished: got 0x%02X, want 0xFF", got)
	}
}

func TestCancelDisarmsInFlightTransfer(t *testing.T) {
	sched := scheduler.New()
	e := New(sched, &fakeBus{})
	e.ArmHBlank(5)
	e.Cancel()
	if e.Active() {
		t.Errorf("Cancel: expected transfer inactive")
	}
}

func TestSetDestinationMasksToVRAMWindow(t *testing.T) {
	sched := scheduler.New()
	e := New(sched, &fakeBus{})
	e.SetDestination(0xFFFF)
	if got := e.destination; got != 0x1FF0 {
		t.Errorf("SetDestination(0xFFFF): got 0x%04X, want 0x1FF0", got)
	}
}
