// Package apu implements the four-channel sound processing unit:
// pulse channels 1 and 2 (sweep/envelope/duty), the wave channel, the
// noise channel, and the stereo mixer that feeds a double-buffered
// sample sink, per §4.9.
package apu

const (
	nr1T1Max = 0x3F
	nr2T1Max = 0x3F
	nr3T1Max = 0xFF
	nr4T1Max = 0x3F

	waveRAMSize = 16 // 32 packed 4-bit samples

	sampleRateDivisor = 64

	// SampleBufferLength is the frame count of one double-buffered
	// chunk handed to the sink.
	SampleBufferLength = 2048
)

// duration is the length counter shared by all four channels.
type duration struct {
	enable  bool
	counter uint32
}

func (d *duration) reload(max uint32, t1 uint8) {
	d.counter = (max + 1 - uint32(t1)) * 0x4000
}

// update advances the counter while it is enabled, reporting whether
// it ran out (the channel should stop).
func (d *duration) update(max uint32, cycles uint32) bool {
	if !d.enable {
		return false
	}
	elapsed := false
	for cycles > 0 {
		if d.counter > cycles {
			d.counter -= cycles
			cycles = 0
		} else {
			elapsed = true
			cycles -= d.counter
			d.reload(max, 0)
		}
	}
	return elapsed
}

// divider is the frequency-offset counter common to pulse and wave
// channels: it overflows every 2*(0x800-offset) cycles.
type divider struct {
	offset  uint16
	counter uint32
}

func (f *divider) reload() {
	f.counter = 2 * uint32(0x800-f.offset)
}

// update runs the divider for cycles ticks, returning how many times
// it overflowed (one wave-phase step per overflow).
func (f *divider) update(cycles uint32) uint32 {
	var count uint32
	for cycles > 0 {
		if f.counter > cycles {
			f.counter -= cycles
			cycles = 0
		} else {
			count++
			cycles -= f.counter
			f.reload()
		}
	}
	return count
}

// sweep is channel 1's frequency sweep function.
type sweep struct {
	div      divider
	shift    uint8
	subtract bool
	time     uint8
	counter  uint32
}

func (s *sweep) reloadFromConfig(cfg uint8) {
	s.shift = cfg & 0x7
	s.subtract = cfg&0x08 != 0
	s.time = (cfg >> 4) & 0x7
	s.counter = 0x8000 * uint32(s.time)
}

// update steps the sweep and its divider, returning the overflow
// count (for wave phase advance) and whether the channel must be
// disabled (an addition overflow past 0x7FF).
func (s *sweep) update(cycles uint32) (count uint32, disable bool) {
	if s.time == 0 {
		return s.div.update(cycles), false
	}

	for cycles > 0 {
		toRun := cycles
		if s.counter < toRun {
			toRun = s.counter
		}
		if s.div.counter < toRun {
			toRun = s.div.counter
		}

		s.counter -= toRun
		if s.counter == 0 {
			delta := s.div.offset >> s.shift
			if s.subtract {
				if s.shift != 0 && delta <= s.div.offset {
					s.div.offset -= delta
				}
			} else {
				o := uint32(s.div.offset) + uint32(delta)
				if o > 0x7FF {
					return count, true
				}
				s.div.offset = uint16(o)
			}
			s.counter = 0x8000 * uint32(s.time)
		}

		count += s.div.update(toRun)
		cycles -= toRun
	}
	return count, false
}

// rectangleWave is the duty-cycle phase generator shared by channels
// 1 and 2.
type rectangleWave struct {
	phase     uint8
	dutyCycle uint8
}

var waveforms = [4][8]uint8{
	{1, 0, 0, 0, 0, 0, 0, 0}, // 1/8
	{1, 1, 0, 0, 0, 0, 0, 0}, // 1/4
	{1, 1, 1, 1, 0, 0, 0, 0}, // 1/2
	{1, 1, 1, 1, 1, 1, 0, 0}, // 3/4
}

const nPhases = 16

func (w *rectangleWave) next(phaseSteps uint32) uint8 {
	w.phase = uint8((uint32(w.phase) + phaseSteps) % nPhases)
	return waveforms[w.dutyCycle][w.phase/2]
}

// envelope is the volume envelope shared by channels 1, 2, and 4.
type envelope struct {
	stepDuration uint8
	value        uint8
	increment    bool
	counter      uint32
}

func (e *envelope) reloadCounter() {
	e.counter = uint32(e.stepDuration) * 0x10000
}

func (e *envelope) initFromConfig(cfg uint8) {
	e.value = cfg >> 4
	e.increment = cfg&0x08 != 0
	e.stepDuration = cfg & 0x7
	e.reloadCounter()
}

func (e *envelope) active() bool {
	return e.value != 0 || e.increment
}

// update steps the envelope, returning true if it has settled into
// an inactive state (the channel should stop).
func (e *envelope) update(cycles uint32) bool {
	if e.stepDuration != 0 {
		for cycles > 0 {
			if e.counter > cycles {
				e.counter -= cycles
				cycles = 0
			} else {
				cycles -= e.counter
				if e.increment {
					if e.value < 0xF {
						e.value++
					}
				} else if e.value > 0 {
					e.value--
				}
				e.reloadCounter()
			}
		}
	}
	return !e.active()
}
