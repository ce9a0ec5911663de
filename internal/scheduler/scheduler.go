// Package scheduler implements the cycle-driven event scheduler that
// keeps every peripheral lazily in sync with the CPU's clock. It is a
// direct port of the five-token array scheduler used by the reference
// implementation's sync.c, rather than the teacher's linked-list
// scheduler: the fixed token set and first_event cache are a load-bearing
// part of this spec's timing model.
package scheduler

// Token identifies one of the five devices the scheduler catches up
// lazily. PPU must be serviced before DMA, Timer, SPU and Cart when
// several fire in the same Check call: it is the only source of the
// HBlank edge that HDMA rides on.
type Token int

const (
	PPU Token = iota
	DMA
	Timer
	SPU
	Cart
	numTokens
)

// Never is used as a next-event delta when a device is idle.
const Never int32 = 10_000_000

// Scheduler tracks the global cycle counter T and, per token, the
// cycle at which it was last synced and the cycle at which it must
// next be synced.
type Scheduler struct {
	T int32

	lastSync  [numTokens]int32
	nextEvent [numTokens]int32
	firstEven int32

	handlers [numTokens]func()
}

// New returns a scheduler in its Reset state: every token's next event
// is at cycle 0, so each one is due on the first Check.
func New() *Scheduler {
	s := &Scheduler{}
	s.Reset()
	return s
}

// RegisterHandler installs the sync function invoked by Check when
// token's next event fires. Call once per token before use.
func (s *Scheduler) RegisterHandler(token Token, fn func()) {
	s.handlers[token] = fn
}

// Reset zeroes T and every token's timestamps.
func (s *Scheduler) Reset() {
	s.T = 0
	for i := range s.lastSync {
		s.lastSync[i] = 0
		s.nextEvent[i] = 0
	}
	s.firstEven = 0
}

// Tick advances the global cycle counter by delta cycles. Callers
// still must invoke Check to actually run any events that have
// become due; Tick alone never calls a handler.
func (s *Scheduler) Tick(delta int32) {
	s.T += delta
}

// Resync returns the number of cycles elapsed since token was last
// synced, and marks it synced as of the current T. Every sync
// function must call this first.
func (s *Scheduler) Resync(token Token) int32 {
	elapsed := s.T - s.lastSync[token]
	s.lastSync[token] = s.T
	return elapsed
}

// Schedule sets token's next event to T+delta and recomputes the
// cached minimum across all tokens.
func (s *Scheduler) Schedule(token Token, delta int32) {
	s.nextEvent[token] = s.T + delta

	first := s.nextEvent[0]
	for i := 1; i < int(numTokens); i++ {
		if s.nextEvent[i] < first {
			first = s.nextEvent[i]
		}
	}
	s.firstEven = first
}

// FirstEvent returns the cached minimum next-event timestamp across
// all tokens, for branch-free hot-path checks.
func (s *Scheduler) FirstEvent() int32 {
	return s.firstEven
}

// NextEvent returns the raw next-event timestamp for token.
func (s *Scheduler) NextEvent(token Token) int32 {
	return s.nextEvent[token]
}

// LastSync returns the raw last-sync timestamp for token.
func (s *Scheduler) LastSync(token Token) int32 {
	return s.lastSync[token]
}

// Check runs every token whose next event is due, in fixed PPU, DMA,
// Timer, SPU, Cart order, looping until none remain due. A handler
// may itself reschedule further events; Check keeps draining until T
// no longer reaches firstEven.
func (s *Scheduler) Check() {
	for s.T >= s.firstEven {
		t := s.T
		if t >= s.nextEvent[PPU] {
			s.handlers[PPU]()
		}
		if t >= s.nextEvent[DMA] {
			s.handlers[DMA]()
		}
		if t >= s.nextEvent[Timer] {
			s.handlers[Timer]()
		}
		if t >= s.nextEvent[SPU] {
			s.handlers[SPU]()
		}
		if t >= s.nextEvent[Cart] {
			s.handlers[Cart]()
		}
	}
}

// Rebase subtracts T from every timestamp and zeroes T, keeping
// values from drifting toward the int32 ceiling during long runs.
func (s *Scheduler) Rebase() {
	t := s.T
	for i := range s.lastSync {
		s.lastSync[i] -= t
		s.nextEvent[i] -= t
	}
	s.firstEven -= t
	s.T = 0
}
