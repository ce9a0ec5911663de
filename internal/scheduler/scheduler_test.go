package scheduler

import "testing"

func TestResyncReturnsElapsedSinceLastSync(t *testing.T) {
	s := New()
	s.Tick(100)
	if got := s.Resync(PPU); got != 100 {
		t.Errorf("Resync: got %d, want 100", got)
	}
	s.Tick(50)
	if got := s.Resync(PPU); got != 50 {
		t.Errorf("Resync after second tick: got %d, want 50", got)
	}
}

func TestScheduleTracksFirstEvent(t *testing.T) {
	s := New()
	s.Schedule(PPU, 456)
	s.Schedule(DMA, Never)
	s.Schedule(Timer, 100)
	s.Schedule(SPU, Never)
	s.Schedule(Cart, Never)

	if got := s.FirstEvent(); got != 100 {
		t.Errorf("FirstEvent: got %d, want 100", got)
	}
	if got := s.NextEvent(PPU); got != 456 {
		t.Errorf("NextEvent(PPU): got %d, want 456", got)
	}
}

func TestCheckFiresDueHandlersInTokenOrder(t *testing.T) {
	s := New()
	var order []Token
	for _, tok := range []Token{PPU, DMA, Timer, SPU, Cart} {
		tok := tok
		s.RegisterHandler(tok, func() {
			order = append(order, tok)
			s.Schedule(tok, Never)
		})
	}
	s.Schedule(PPU, 10)
	s.Schedule(DMA, 10)
	s.Schedule(Timer, Never)
	s.Schedule(SPU, Never)
	s.Schedule(Cart, Never)

	s.Tick(10)
	s.Check()

	if len(order) != 2 || order[0] != PPU || order[1] != DMA {
		t.Errorf("Check: fired %v, want [PPU DMA]", order)
	}
}

func TestCheckDrainsReschedulesAtTheSameTick(t *testing.T) {
	s := New()
	fired := 0
	s.RegisterHandler(Timer, func() {
		fired++
		if fired < 3 {
			s.Schedule(Timer, 0)
		} else {
			s.Schedule(Timer, Never)
		}
	})
	for _, tok := range []Token{PPU, DMA, SPU, Cart} {
		s.Schedule(tok, Never)
	}
	s.Schedule(Timer, 5)

	s.Tick(5)
	s.Check()

	if fired != 3 {
		t.Errorf("Check: handler fired %d times, want 3", fired)
	}
}

func TestRebaseShiftsEveryTimestampToZero(t *testing.T) {
	s := New()
	s.Schedule(PPU, 200)
	s.Schedule(Timer, 50)
	s.Tick(1000)
	s.Resync(PPU)

	s.Rebase()

	if s.T != 0 {
		t.Errorf("Rebase: T = %d, want 0", s.T)
	}
	if got := s.LastSync(PPU); got != 0 {
		t.Errorf("Rebase: LastSync(PPU) = %d, want 0", got)
	}
	if got := s.NextEvent(Timer); got != 50-1000 {
		t.Errorf("Rebase: NextEvent(Timer) = %d, want %d", got, 50-1000)
	}
}
