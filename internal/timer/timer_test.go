package timer

import (
	"testing"

	"github.com/retrogb/gbcore/internal/interrupts"
	"github.com/retrogb/gbcore/internal/scheduler"
)

func newTestTimer() (*Controller, *scheduler.Scheduler, *interrupts.Controller) {
	sched := scheduler.New()
	irq := interrupts.NewController()
	for _, tok := range []scheduler.Token{scheduler.PPU, scheduler.DMA, scheduler.SPU, scheduler.Cart} {
		sched.RegisterHandler(tok, func() { sched.Schedule(tok, scheduler.Never) })
		sched.Schedule(tok, scheduler.Never)
	}
	tm := New(sched, irq)
	return tm, sched, irq
}

func TestReadDIVAdvancesWithElapsedCycles(t *testing.T) {
	tm, sched, _ := newTestTimer()
	sched.Tick(256)
	if got := tm.ReadDIV(); got != 1 {
		t.Errorf("ReadDIV after 256 cycles: got %d, want 1", got)
	}
	sched.Tick(256 * 254)
	if got := tm.ReadDIV(); got != 0xFF {
		t.Errorf("ReadDIV after 255*256 cycles: got %d, want 0xFF", got)
	}
}

func TestWriteDIVResetsDivider(t *testing.T) {
	tm, sched, _ := newTestTimer()
	sched.Tick(10000)
	tm.WriteDIV()
	if got := tm.ReadDIV(); got != 0 {
		t.Errorf("ReadDIV after WriteDIV: got %d, want 0", got)
	}
}

func TestTIMADoesNotAdvanceWhileStopped(t *testing.T) {
	tm, sched, _ := newTestTimer()
	sched.Tick(4096)
	if got := tm.ReadTIMA(); got != 0 {
		t.Errorf("ReadTIMA while stopped: got %d, want 0", got)
	}
}

func TestTIMAOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	tm, sched, irq := newTestTimer()
	tm.WriteTMA(0x10)
	tm.WriteTAC(0x05) // started, Div16
	tm.WriteTIMA(0xFF)

	sched.Tick(16)
	tm.Sync()

	if got := tm.ReadTIMA(); got != 0x10 {
		t.Errorf("ReadTIMA after overflow: got 0x%02X, want 0x10", got)
	}
	if irq.ReadIF()&interrupts.Timer.Flag() == 0 {
		t.Errorf("expected Timer interrupt requested on TIMA overflow")
	}
}

func TestReadTACReflectsStartedAndDivider(t *testing.T) {
	tm, _, _ := newTestTimer()
	tm.WriteTAC(0x06) // started, Div64
	if got := tm.ReadTAC(); got != 0xFE {
		t.Errorf("ReadTAC: got 0x%02X, want 0xFE", got)
	}
}
