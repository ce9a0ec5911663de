package apu

// channel1 is NR10-NR14: a rectangle wave with envelope and
// frequency sweep.
type channel1 struct {
	running             bool
	duration            duration
	sweep               sweep
	wave                rectangleWave
	envelopeConfig      uint8
	envelope            envelope
}

func (c *channel1) start() {
	c.wave.phase = 0
	c.sweep.div.reload()
	c.envelope.initFromConfig(c.envelopeConfig)
	c.running = c.envelope.active()
}

func (c *channel1) sample(cycles uint32) int16 {
	if c.duration.update(nr1T1Max, cycles) {
		c.running = false
	}
	if !c.running {
		return 0
	}

	if c.envelope.update(cycles) {
		c.running = false
	}
	if !c.running {
		return 0
	}

	steps, disable := c.sweep.update(cycles)
	if disable {
		c.running = false
		return 0
	}

	s := int16(c.wave.next(steps))
	return s * int16(c.envelope.value)
}

// channel2 is NR21-NR24: a rectangle wave with envelope, no sweep.
type channel2 struct {
	running        bool
	duration       duration
	div            divider
	wave           rectangleWave
	envelopeConfig uint8
	envelope       envelope
}

func (c *channel2) start() {
	c.wave.phase = 0
	c.div.reload()
	c.envelope.initFromConfig(c.envelopeConfig)
	c.running = c.envelope.active()
}

func (c *channel2) sample(cycles uint32) int16 {
	if c.duration.update(nr2T1Max, cycles) {
		c.running = false
	}
	if !c.running {
		return 0
	}

	if c.envelope.update(cycles) {
		c.running = false
	}
	if !c.running {
		return 0
	}

	steps := c.div.update(cycles)
	s := int16(c.wave.next(steps))
	return s * int16(c.envelope.value)
}
