package apu

import (
	"github.com/retrogb/gbcore/internal/scheduler"
)

// Buffer is one double-buffered chunk of interleaved stereo samples
// handed to the host, §4.9.
type Buffer struct {
	Samples [SampleBufferLength][2]int16
}

// Sink receives full sample buffers. PushBuffer may block — the
// implementation owns the handshake against whatever audio backend
// is consuming the buffer, mirroring the free/ready semaphore pair
// the original engine uses to gate reuse of each half of the double
// buffer.
type Sink interface {
	PushBuffer(buf *Buffer)
}

// APU is the sound processing unit: four channels, a stereo mixer,
// and the double-buffered sample sink.
type APU struct {
	enable       bool
	samplePeriod int32
	outputLevel  uint8 // NR50
	soundMux     uint8 // NR51
	soundAmp     [4][2]int16

	ch1 channel1
	ch2 channel2
	ch3 channel3
	ch4 channel4

	buffers     [2]Buffer
	bufferIndex int
	sampleIndex int

	diag diagnosticsRing

	sched *scheduler.Scheduler
	sink  Sink
}

// New returns an APU registered with sched. Diagnostics are always
// recorded; audio output attaches later via AttachSink.
func New(sched *scheduler.Scheduler) *APU {
	a := &APU{sched: sched}
	a.Reset()
	sched.RegisterHandler(scheduler.SPU, a.Sync)
	return a
}

// AttachSink installs the host audio backend.
func (a *APU) AttachSink(sink Sink) {
	a.sink = sink
}

// Reset restores power-on state: master enable set, all channels
// silent, per reset_spu.
func (a *APU) Reset() {
	buffers := a.buffers
	*a = APU{sched: a.sched, sink: a.sink, buffers: buffers}
	a.enable = true
	a.updateSoundAmp()
}

// updateSoundAmp recomputes the per-channel, per-stereo-side
// amplification factors from NR50/NR51, scaling so four fully mixed
// channels saturate at +-0x7FFF.
func (a *APU) updateSoundAmp() {
	const maxAmplitude = 15 * 8 * 4
	scaling := int16(0x7FFF / maxAmplitude)

	for sound := 0; sound < 4; sound++ {
		for side := 0; side < 2; side++ {
			enabled := a.soundMux&(1<<uint(sound+side*4)) != 0
			var amp int16
			if enabled {
				amp = 1 + int16((a.outputLevel>>uint(side*4))&7)
				amp *= scaling
			}
			a.soundAmp[sound][side] = amp
		}
	}
}

func (a *APU) sampleAll(cycles uint32, record bool) (left, right int16) {
	samples := [4]int16{
		a.ch1.sample(cycles),
		a.ch2.sample(cycles),
		a.ch3.sample(cycles),
		a.ch4.sample(cycles),
	}
	if record {
		a.diag.push(diagFrame{samples[0], samples[1], samples[2], samples[3]})
	}

	for i, s := range samples {
		left += s * a.soundAmp[i][0]
		right += s * a.soundAmp[i][1]
	}
	return
}

func (a *APU) pushSample(left, right int16) {
	buf := &a.buffers[a.bufferIndex]
	buf.Samples[a.sampleIndex][0] = left
	buf.Samples[a.sampleIndex][1] = right
	a.sampleIndex++

	if a.sampleIndex == SampleBufferLength {
		if a.sink != nil {
			a.sink.PushBuffer(buf)
		}
		a.bufferIndex = (a.bufferIndex + 1) % len(a.buffers)
		a.sampleIndex = 0
	}
}

// Sync is the scheduler's SPU handler: it produces every sample due
// since the last sync and reschedules itself to fill the current
// buffer, porting sync_spu exactly.
func (a *APU) Sync() {
	elapsed := int32(a.sched.Resync(scheduler.SPU))
	period := a.samplePeriod

	elapsed += period
	nsamples := elapsed / sampleRateDivisor

	for ; nsamples > 0; nsamples-- {
		nextDelay := uint32(sampleRateDivisor - period)
		left, right := a.sampleAll(nextDelay, true)
		a.pushSample(left, right)
		period = 0
	}

	period = elapsed % sampleRateDivisor

	// advance every channel's state even for a partial period so the
	// running flags stay correct for the next sync, discarding the
	// sample itself.
	a.sampleAll(uint32(period), false)

	a.samplePeriod = period

	next := int32(SampleBufferLength-a.sampleIndex)*sampleRateDivisor - period
	a.sched.Schedule(scheduler.SPU, next)
}

// ---- register surface, 0xFF10-0xFF3F ----

func (a *APU) ReadNR10() uint8 {
	r := a.ch1.sweep.shift
	if a.ch1.sweep.subtract {
		r |= 1 << 3
	}
	r |= a.ch1.sweep.time << 4
	return r | 0x80
}

func (a *APU) WriteNR10(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch1.sweep.reloadFromConfig(v)
}

func (a *APU) ReadNR11() uint8 { return a.ch1.wave.dutyCycle<<6 | 0x3F }

func (a *APU) WriteNR11(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch1.wave.dutyCycle = v >> 6
	a.ch1.duration.reload(nr1T1Max, v&0x3F)
}

func (a *APU) ReadNR12() uint8 { return a.ch1.envelopeConfig }

func (a *APU) WriteNR12(v uint8) {
	if !a.enable {
		return
	}
	a.ch1.envelopeConfig = v
}

func (a *APU) WriteNR13(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch1.sweep.div.offset = a.ch1.sweep.div.offset&0x700 | uint16(v)
}

func (a *APU) ReadNR14() uint8 {
	r := uint8(0xBF)
	if a.ch1.duration.enable {
		r |= 0x40
	}
	return r
}

func (a *APU) WriteNR14(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch1.sweep.div.offset = a.ch1.sweep.div.offset&0xFF | uint16(v&7)<<8
	a.ch1.duration.enable = v&0x40 != 0
	if v&0x80 != 0 {
		a.ch1.start()
	}
}

func (a *APU) ReadNR21() uint8 { return a.ch2.wave.dutyCycle<<6 | 0x3F }

func (a *APU) WriteNR21(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch2.wave.dutyCycle = v >> 6
	a.ch2.duration.reload(nr2T1Max, v&0x3F)
}

func (a *APU) ReadNR22() uint8 { return a.ch2.envelopeConfig }

func (a *APU) WriteNR22(v uint8) {
	if !a.enable {
		return
	}
	a.ch2.envelopeConfig = v
}

func (a *APU) WriteNR23(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch2.div.offset = a.ch2.div.offset&0x700 | uint16(v)
}

func (a *APU) ReadNR24() uint8 {
	r := uint8(0xBF)
	if a.ch2.duration.enable {
		r |= 0x40
	}
	return r
}

func (a *APU) WriteNR24(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch2.div.offset = a.ch2.div.offset&0xFF | uint16(v&7)<<8
	a.ch2.duration.enable = v&0x40 != 0
	if v&0x80 != 0 {
		a.ch2.start()
	}
}

func (a *APU) ReadNR30() uint8 {
	r := uint8(0x7F)
	if a.ch3.enable {
		r |= 0x80
	}
	return r
}

func (a *APU) WriteNR30(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch3.enable = v&0x80 != 0
	if !a.ch3.enable {
		a.ch3.running = false
	}
}

func (a *APU) ReadNR31() uint8 { return a.ch3.t1 }

func (a *APU) WriteNR31(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch3.t1 = v
	a.ch3.duration.reload(nr3T1Max, v)
}

func (a *APU) ReadNR32() uint8 { return a.ch3.volumeShift<<5 | 0x9F }

func (a *APU) WriteNR32(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch3.volumeShift = (v >> 5) & 3
}

func (a *APU) WriteNR33(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch3.div.offset = a.ch3.div.offset&0x700 | uint16(v)
}

func (a *APU) ReadNR34() uint8 {
	r := uint8(0xBF)
	if a.ch3.duration.enable {
		r |= 0x40
	}
	return r
}

func (a *APU) WriteNR34(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch3.div.offset = a.ch3.div.offset&0xFF | uint16(v&7)<<8
	a.ch3.duration.enable = v&0x40 != 0
	if v&0x80 != 0 {
		a.ch3.start()
	}
}

func (a *APU) WriteNR41(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch4.duration.reload(nr4T1Max, v&0x3F)
}

func (a *APU) ReadNR42() uint8 { return a.ch4.envelopeConfig }

func (a *APU) WriteNR42(v uint8) {
	if !a.enable {
		return
	}
	a.ch4.envelopeConfig = v
}

func (a *APU) ReadNR43() uint8 { return a.ch4.lfsrConfig }

func (a *APU) WriteNR43(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch4.lfsrConfig = v
}

func (a *APU) ReadNR44() uint8 {
	r := uint8(0xBF)
	if a.ch4.duration.enable {
		r |= 0x40
	}
	return r
}

func (a *APU) WriteNR44(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.ch4.duration.enable = v&0x40 != 0
	if v&0x80 != 0 {
		a.ch4.start()
	}
}

func (a *APU) ReadNR50() uint8 { return a.outputLevel }

func (a *APU) WriteNR50(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.outputLevel = v
	a.updateSoundAmp()
}

func (a *APU) ReadNR51() uint8 { return a.soundMux }

func (a *APU) WriteNR51(v uint8) {
	if !a.enable {
		return
	}
	a.Sync()
	a.soundMux = v
	a.updateSoundAmp()
}

func (a *APU) ReadNR52() uint8 {
	r := uint8(0x70)
	if a.ch1.running {
		r |= 1 << 0
	}
	if a.ch2.running {
		r |= 1 << 1
	}
	if a.ch3.running {
		r |= 1 << 2
	}
	if a.ch4.running {
		r |= 1 << 3
	}
	if a.enable {
		r |= 1 << 7
	}
	return r
}

func (a *APU) WriteNR52(v uint8) {
	enable := v&0x80 != 0
	if a.enable == enable {
		return
	}
	a.Sync()
	if !enable {
		a.Reset()
		a.enable = false
		return
	}
	a.enable = enable
}

// ReadWaveRAM and WriteWaveRAM expose 0xFF30-0xFF3F; addr is already
// relative to that base.
func (a *APU) ReadWaveRAM(addr uint16) uint8 { return a.ch3.ram[addr&0x0F] }

func (a *APU) WriteWaveRAM(addr uint16, v uint8) { a.ch3.ram[addr&0x0F] = v }
