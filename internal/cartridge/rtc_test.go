package cartridge

import "testing"

func newFakeClock(start int64) (*RTC, *int64) {
	t := start
	r := &RTC{now: func() int64 { return t }}
	r.base = r.now()
	r.refreshLatch()
	return r, &t
}

func TestRTCAdvancesWithElapsedTime(t *testing.T) {
	rtc, clock := newFakeClock(0)
	*clock += 90 // 1 minute 30 seconds

	rtc.Latch(true)

	if got := rtc.Read(0x08); got != 30 {
		t.Errorf("seconds: got %d, want 30", got)
	}
	if got := rtc.Read(0x09); got != 1 {
		t.Errorf("minutes: got %d, want 1", got)
	}
}

func TestRTCLatchOnlyRefreshesOnRisingEdge(t *testing.T) {
	rtc, clock := newFakeClock(0)
	rtc.Latch(true)
	*clock += 60
	rtc.Latch(true) // already high: no refresh

	if got := rtc.Read(0x09); got != 0 {
		t.Errorf("minutes after non-edge latch: got %d, want 0", got)
	}

	rtc.Latch(false)
	rtc.Latch(true) // 0->1 edge: refreshes
	if got := rtc.Read(0x09); got != 1 {
		t.Errorf("minutes after edge latch: got %d, want 1", got)
	}
}

func TestRTCHaltFreezesTheClock(t *testing.T) {
	rtc, clock := newFakeClock(0)
	*clock += 10
	rtc.Write(0x0C, 0x40) // set halt bit

	*clock += 1000 // time passes while halted
	rtc.Latch(true)

	if got := rtc.Read(0x08); got != 10 {
		t.Errorf("seconds while halted: got %d, want 10", got)
	}
}

func TestRTCWriteEditsDaysAndPreservesOthers(t *testing.T) {
	rtc, _ := newFakeClock(0)
	rtc.Write(0x08, 5)  // seconds
	rtc.Write(0x09, 10) // minutes
	rtc.Latch(true)

	if got := rtc.Read(0x08); got != 5 {
		t.Errorf("seconds: got %d, want 5", got)
	}
	if got := rtc.Read(0x09); got != 10 {
		t.Errorf("minutes: got %d, want 10", got)
	}
}

func TestRTCDumpLoadRoundTrip(t *testing.T) {
	rtc, clock := newFakeClock(0)
	*clock += 12345
	rtc.Latch(true)

	data := rtc.Dump()

	other, _ := newFakeClock(999)
	other.Load(data)

	if other.base != rtc.base {
		t.Errorf("base after Load: got %d, want %d", other.base, rtc.base)
	}
	if other.latched != rtc.latched {
		t.Errorf("latched after Load: got %v, want %v", other.latched, rtc.latched)
	}
}
