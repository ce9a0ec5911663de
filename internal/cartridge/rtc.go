package cartridge

import "time"

// RTC is the MBC3 real-time clock: five registers (S, M, H, DAYL,
// DAYH) latched from a monotonic base, with halt and sticky
// day-overflow semantics.
type RTC struct {
	base      int64 // wall-clock seconds at simulated day 0, 00:00:00
	haltAt    int64 // wall-clock seconds at which the clock was halted
	latch     bool  // edge-triggered latch input
	latched   [5]uint8
	now       func() int64 // injected for testability; defaults to wall clock
}

// NewRTC returns an RTC initialized to the current wall-clock time.
func NewRTC() *RTC {
	r := &RTC{now: wallClockSeconds}
	r.base = r.now()
	r.refreshLatch()
	return r
}

func wallClockSeconds() int64 {
	return time.Now().Unix()
}

func (r *RTC) halted() bool {
	return r.latched[4]&0x40 != 0
}

func (r *RTC) currentTimestamp() int64 {
	if r.halted() {
		return r.haltAt
	}
	return r.now()
}

// refreshLatch recomputes the displayed snapshot from logical time,
// preserving the halt bit and the sticky day-overflow bit.
func (r *RTC) refreshLatch() {
	now := r.currentTimestamp()
	var elapsed int64
	if now >= r.base {
		elapsed = now - r.base
	} else {
		r.base = now
		elapsed = 0
	}

	seconds := elapsed % 60
	elapsed /= 60
	minutes := elapsed % 60
	elapsed /= 60
	hours := elapsed % 24
	days := elapsed / 24

	r.latched[0] = uint8(seconds)
	r.latched[1] = uint8(minutes)
	r.latched[2] = uint8(hours)
	r.latched[3] = uint8(days & 0xFF)

	dayHigh := r.latched[4] & 0x40 // preserve halt bit, clear MSB and carry
	dayHigh |= uint8((days >> 8) & 1)
	if days > 0x1FF {
		dayHigh |= 0x80
	}
	r.latched[4] = dayHigh
}

// setDate recomputes base so that the current time matches date,
// preserving the sticky overflow/day bits caller already folded in.
func (r *RTC) setDate(date [5]uint8) {
	base := r.currentTimestamp()

	days := int64(date[3])
	days += int64(date[4]&0x01) * 0x100
	days += int64((date[4]>>7)&0x01) * 0x200

	base -= days * 86400
	base -= int64(date[2]) * 3600
	base -= int64(date[1]) * 60
	base -= int64(date[0])

	r.base = base
}

// Latch applies an edge-triggered latch: the snapshot refreshes only
// on a 0->1 transition of the latch input.
func (r *RTC) Latch(value bool) {
	if !r.latch && value {
		r.refreshLatch()
	}
	r.latch = value
}

// Read returns the latched register at address 0x08..0x0C, or 0xFF
// for any other address.
func (r *RTC) Read(address uint16) uint8 {
	switch address {
	case 0x08, 0x09, 0x0A, 0x0B, 0x0C:
		return r.latched[address-0x08]
	default:
		return 0xFF
	}
}

// Write edits the latched snapshot at address 0x08..0x0C and
// re-derives base from the edited date.
func (r *RTC) Write(address uint16, value uint8) {
	wasHalted := r.halted()

	var date [5]uint8
	r.refreshLatch()
	date = r.latched

	switch address {
	case 0x08:
		r.latched[0], date[0] = value, value
	case 0x09:
		r.latched[1], date[1] = value, value
	case 0x0A:
		r.latched[2], date[2] = value, value
	case 0x0B:
		r.latched[3], date[3] = value, value
	case 0x0C:
		r.latched[4], date[4] = value, value
		if !wasHalted && r.halted() {
			r.haltAt = r.now()
		}
	default:
		return
	}

	r.setDate(date)
	r.refreshLatch()
}

// DumpSize is the serialized length of an RTC block in the save file:
// two big-endian u64 (base, haltAt), one u8 latch flag, five u8
// latched date bytes.
const DumpSize = 8 + 8 + 1 + 5

// Dump serializes the RTC block for the save file.
func (r *RTC) Dump() []byte {
	out := make([]byte, DumpSize)
	putU64(out[0:8], uint64(r.base))
	putU64(out[8:16], uint64(r.haltAt))
	if r.latch {
		out[16] = 1
	}
	copy(out[17:22], r.latched[:])
	return out
}

// Load deserializes the RTC block written by Dump.
func (r *RTC) Load(data []byte) {
	if len(data) < DumpSize {
		return
	}
	r.base = int64(getU64(data[0:8]))
	r.haltAt = int64(getU64(data[8:16]))
	r.latch = data[16] != 0
	copy(r.latched[:], data[17:22])
}

func putU64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (56 - 8*i))
	}
}

func getU64(src []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(src[i])
	}
	return v
}
