package cpu

// The eight CB-prefixed rotate/shift operations, and the four
// accumulator-only variants (RLCA/RRCA/RLA/RRA) that force Z to 0.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	r := v<<1 | v>>7
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	r := v>>1 | v<<7
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) rl(v uint8) uint8 {
	var cin uint8
	if c.flagSet(flagCarry) {
		cin = 1
	}
	carry := v&0x80 != 0
	r := v<<1 | cin
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) rr(v uint8) uint8 {
	var cin uint8
	if c.flagSet(flagCarry) {
		cin = 0x80
	}
	carry := v&0x01 != 0
	r := v>>1 | cin
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	r := v << 1
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	r := uint8(int8(v) >> 1)
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	r := v >> 1
	c.setRotateFlags(r, carry)
	return r
}

func (c *CPU) swap(v uint8) uint8 {
	r := v<<4 | v>>4
	c.setFlag(flagZero, r == 0)
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, false)
	c.setFlag(flagCarry, false)
	return r
}

func (c *CPU) setRotateFlags(result uint8, carry bool) {
	c.setFlag(flagZero, result == 0)
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, false)
	c.setFlag(flagCarry, carry)
}

// rlca/rrca/rla/rra implement the unprefixed accumulator rotates,
// which always clear Z regardless of the result.
func (c *CPU) rlca() {
	c.A = c.rlc(c.A)
	c.setFlag(flagZero, false)
}

func (c *CPU) rrca() {
	c.A = c.rrc(c.A)
	c.setFlag(flagZero, false)
}

func (c *CPU) rla() {
	c.A = c.rl(c.A)
	c.setFlag(flagZero, false)
}

func (c *CPU) rra() {
	c.A = c.rr(c.A)
	c.setFlag(flagZero, false)
}
