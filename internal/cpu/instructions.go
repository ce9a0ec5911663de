package cpu

// condition evaluates one of the four branch conditions encoded in
// bits 4:3 of JP/JR/CALL/RET opcodes: 0=NZ 1=Z 2=NC 3=C.
func (c *CPU) condition(idx uint8) bool {
	switch idx & 3 {
	case 0:
		return !c.flagSet(flagZero)
	case 1:
		return c.flagSet(flagZero)
	case 2:
		return !c.flagSet(flagCarry)
	default:
		return c.flagSet(flagCarry)
	}
}

func opNOP(c *CPU) {}

func opHALT(c *CPU) { c.halted = true }

// opSTOP is modeled as a HALT: the double-speed switch and the
// STOP/button-wake glitch family are out of scope (§ Non-goals).
func opSTOP(c *CPU) { c.fetchByte(); c.stopped = true; c.halted = true }

func opDI(c *CPU) { c.ime = false; c.imePending = false }

func opEI(c *CPU) { c.imePending = true }

func opDAA(c *CPU) { c.daa() }

func opCPL(c *CPU) {
	c.A = ^c.A
	c.setFlag(flagSubtract, true)
	c.setFlag(flagHalfCarry, true)
}

func opSCF(c *CPU) {
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, false)
	c.setFlag(flagCarry, true)
}

func opCCF(c *CPU) {
	c.setFlag(flagSubtract, false)
	c.setFlag(flagHalfCarry, false)
	c.setFlag(flagCarry, !c.flagSet(flagCarry))
}

func opRLCA(c *CPU) { c.rlca() }
func opRRCA(c *CPU) { c.rrca() }
func opRLA(c *CPU)  { c.rla() }
func opRRA(c *CPU)  { c.rra() }

// ---- 8/16-bit loads ----

func opLDBCnn(c *CPU) { c.BC.SetUint16(c.fetchWord()) }
func opLDDEnn(c *CPU) { c.DE.SetUint16(c.fetchWord()) }
func opLDHLnn(c *CPU) { c.HL.SetUint16(c.fetchWord()) }
func opLDSPnn(c *CPU) { c.SP = c.fetchWord() }

func opLDBCmemA(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) }
func opLDDEmemA(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) }

func opLDAmemBC(c *CPU) { c.A = c.readByte(c.BC.Uint16()) }
func opLDAmemDE(c *CPU) { c.A = c.readByte(c.DE.Uint16()) }

func opLDHLIncA(c *CPU) {
	addr := c.HL.Uint16()
	c.writeByte(addr, c.A)
	c.HL.SetUint16(addr + 1)
}

func opLDHLDecA(c *CPU) {
	addr := c.HL.Uint16()
	c.writeByte(addr, c.A)
	c.HL.SetUint16(addr - 1)
}

func opLDAHLInc(c *CPU) {
	addr := c.HL.Uint16()
	c.A = c.readByte(addr)
	c.HL.SetUint16(addr + 1)
}

func opLDAHLDec(c *CPU) {
	addr := c.HL.Uint16()
	c.A = c.readByte(addr)
	c.HL.SetUint16(addr - 1)
}

func opLDmemnnSP(c *CPU) { c.writeWord(c.fetchWord(), c.SP) }

func opLDmemnnA(c *CPU) { c.writeByte(c.fetchWord(), c.A) }
func opLDAmemnn(c *CPU) { c.A = c.readByte(c.fetchWord()) }

func opLDHnA(c *CPU) { c.writeByte(0xFF00+uint16(c.fetchByte()), c.A) }
func opLDHAn(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.fetchByte())) }

func opLDCmemA(c *CPU) { c.writeByte(0xFF00+uint16(c.C), c.A) }
func opLDACmem(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.C)) }

func opLDSPHL(c *CPU) { c.SP = c.HL.Uint16(); c.tick(4) }

func opLDHLSPe(c *CPU) {
	e := c.fetchSigned()
	c.HL.SetUint16(c.addSigned8To16(c.SP, e))
	c.tick(4)
}

func opJPHL(c *CPU) { c.PC = c.HL.Uint16() }

// ---- 16-bit arithmetic ----

func opINCBC(c *CPU) { c.BC.SetUint16(c.BC.Uint16() + 1); c.tick(4) }
func opINCDE(c *CPU) { c.DE.SetUint16(c.DE.Uint16() + 1); c.tick(4) }
func opINCHL(c *CPU) { c.HL.SetUint16(c.HL.Uint16() + 1); c.tick(4) }
func opINCSP(c *CPU) { c.SP++; c.tick(4) }

func opDECBC(c *CPU) { c.BC.SetUint16(c.BC.Uint16() - 1); c.tick(4) }
func opDECDE(c *CPU) { c.DE.SetUint16(c.DE.Uint16() - 1); c.tick(4) }
func opDECHL(c *CPU) { c.HL.SetUint16(c.HL.Uint16() - 1); c.tick(4) }
func opDECSP(c *CPU) { c.SP--; c.tick(4) }

func opADDHLBC(c *CPU) { c.HL.SetUint16(c.addHL16(c.HL.Uint16(), c.BC.Uint16())); c.tick(4) }
func opADDHLDE(c *CPU) { c.HL.SetUint16(c.addHL16(c.HL.Uint16(), c.DE.Uint16())); c.tick(4) }
func opADDHLHL(c *CPU) { c.HL.SetUint16(c.addHL16(c.HL.Uint16(), c.HL.Uint16())); c.tick(4) }
func opADDHLSP(c *CPU) { c.HL.SetUint16(c.addHL16(c.HL.Uint16(), c.SP)); c.tick(4) }

func opADDSPe(c *CPU) {
	e := c.fetchSigned()
	c.SP = c.addSigned8To16(c.SP, e)
	c.tick(8)
}

// ---- 8-bit INC/DEC for (HL) and the register block ----

func opINCHLmem(c *CPU) {
	addr := c.HL.Uint16()
	c.writeByte(addr, c.inc8(c.readByte(addr)))
}

func opDECHLmem(c *CPU) {
	addr := c.HL.Uint16()
	c.writeByte(addr, c.dec8(c.readByte(addr)))
}

func opLDHLmemN(c *CPU) { c.writeByte(c.HL.Uint16(), c.fetchByte()) }

// ---- branches ----

func opJPnn(c *CPU) { c.PC = c.fetchWord(); c.tick(4) }

func jpCond(idx uint8) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetchWord()
		if c.condition(idx) {
			c.PC = addr
			c.tick(4)
		}
	}
}

func opJRe(c *CPU) {
	e := c.fetchSigned()
	c.PC = uint16(int32(c.PC) + int32(e))
	c.tick(4)
}

func jrCond(idx uint8) func(*CPU) {
	return func(c *CPU) {
		e := c.fetchSigned()
		if c.condition(idx) {
			c.PC = uint16(int32(c.PC) + int32(e))
			c.tick(4)
		}
	}
}

func opCALLnn(c *CPU) {
	addr := c.fetchWord()
	c.tick(4)
	c.push(c.PC)
	c.PC = addr
}

func callCond(idx uint8) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetchWord()
		if c.condition(idx) {
			c.tick(4)
			c.push(c.PC)
			c.PC = addr
		}
	}
}

func opRET(c *CPU) { c.PC = c.pop(); c.tick(4) }

func opRETI(c *CPU) { c.PC = c.pop(); c.tick(4); c.ime = true }

func retCond(idx uint8) func(*CPU) {
	return func(c *CPU) {
		c.tick(4)
		if c.condition(idx) {
			c.PC = c.pop()
			c.tick(4)
		}
	}
}

func rst(addr uint16) func(*CPU) {
	return func(c *CPU) {
		c.tick(4)
		c.push(c.PC)
		c.PC = addr
	}
}

// ---- stack ----

func pushBC(c *CPU) { c.tick(4); c.push(c.BC.Uint16()) }
func pushDE(c *CPU) { c.tick(4); c.push(c.DE.Uint16()) }
func pushHL(c *CPU) { c.tick(4); c.push(c.HL.Uint16()) }
func pushAF(c *CPU) { c.tick(4); c.push(c.AF.Uint16()) }

func popBC(c *CPU) { c.BC.SetUint16(c.pop()) }
func popDE(c *CPU) { c.DE.SetUint16(c.pop()) }
func popHL(c *CPU) { c.HL.SetUint16(c.pop()) }

// popAF masks the low nibble of F to 0: the flag register's low four
// bits are unused and always read 0.
func popAF(c *CPU) {
	v := c.pop()
	c.AF.SetUint16(v & 0xFFF0)
}
