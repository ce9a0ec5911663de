package cpu

var opcodes [256]func(*CPU)
var cbOpcodes [256]func(*CPU)

// aluOp applies one of the eight A,<operand> ALU operations selected
// by the 3-bit group in 0x80-0xBF and 0xC6/CE/D6/DE/E6/EE/F6/FE.
func aluOp(group uint8, c *CPU, operand uint8) {
	switch group {
	case 0: // ADD
		c.A = c.add8(c.A, operand, false)
	case 1: // ADC
		c.A = c.add8(c.A, operand, c.flagSet(flagCarry))
	case 2: // SUB
		c.A = c.sub8(c.A, operand, false)
	case 3: // SBC
		c.A = c.sub8(c.A, operand, c.flagSet(flagCarry))
	case 4: // AND
		c.A = c.and8(c.A, operand)
	case 5: // XOR
		c.A = c.xor8(c.A, operand)
	case 6: // OR
		c.A = c.or8(c.A, operand)
	case 7: // CP
		c.cp8(c.A, operand)
	}
}

func init() {
	// 0x40-0x7F: LD r,r' over the 8 operand encodings, except 0x76
	// which is HALT.
	for op := 0x40; op <= 0x7F; op++ {
		dst := uint8(op-0x40) / 8
		src := uint8(op-0x40) % 8
		if op == 0x76 {
			continue
		}
		d, s := dst, src
		opcodes[op] = func(c *CPU) { c.writeOperand(d, c.readOperand(s)) }
	}
	opcodes[0x76] = opHALT

	// 0x80-0xBF: ALU A,r.
	for op := 0x80; op <= 0xBF; op++ {
		group := uint8(op-0x80) / 8
		src := uint8(op-0x80) % 8
		g, s := group, src
		opcodes[op] = func(c *CPU) { aluOp(g, c, c.readOperand(s)) }
	}

	// Immediate-operand ALU opcodes: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,n.
	immOps := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for group, op := range immOps {
		g := uint8(group)
		opcodes[op] = func(c *CPU) { aluOp(g, c, c.fetchByte()) }
	}

	// INC/DEC r for the 8 register encodings (6 = (HL) handled by the
	// dedicated opcodes 0x34/0x35 below, skipped here).
	incOps := [8]int{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, -1, 0x3C}
	decOps := [8]int{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, -1, 0x3D}
	for i := 0; i < 8; i++ {
		if incOps[i] >= 0 {
			idx := uint8(i)
			opcodes[incOps[i]] = func(c *CPU) { c.writeOperand(idx, c.inc8(c.readOperand(idx))) }
		}
		if decOps[i] >= 0 {
			idx := uint8(i)
			opcodes[decOps[i]] = func(c *CPU) { c.writeOperand(idx, c.dec8(c.readOperand(idx))) }
		}
	}

	// LD r,n for the 8 register encodings except (HL), which is 0x36.
	ldImm := [8]int{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, -1, 0x3E}
	for i, op := range ldImm {
		if op < 0 {
			continue
		}
		idx := uint8(i)
		opcodes[op] = func(c *CPU) { c.writeOperand(idx, c.fetchByte()) }
	}

	opcodes[0x00] = opNOP
	opcodes[0x01] = opLDBCnn
	opcodes[0x02] = opLDBCmemA
	opcodes[0x03] = opINCBC
	opcodes[0x07] = opRLCA
	opcodes[0x08] = opLDmemnnSP
	opcodes[0x09] = opADDHLBC
	opcodes[0x0A] = opLDAmemBC
	opcodes[0x0B] = opDECBC
	opcodes[0x0F] = opRRCA

	opcodes[0x10] = opSTOP
	opcodes[0x11] = opLDDEnn
	opcodes[0x12] = opLDDEmemA
	opcodes[0x13] = opINCDE
	opcodes[0x17] = opRLA
	opcodes[0x18] = opJRe
	opcodes[0x19] = opADDHLDE
	opcodes[0x1A] = opLDAmemDE
	opcodes[0x1B] = opDECDE
	opcodes[0x1F] = opRRA

	opcodes[0x20] = jrCond(0)
	opcodes[0x21] = opLDHLnn
	opcodes[0x22] = opLDHLIncA
	opcodes[0x23] = opINCHL
	opcodes[0x27] = opDAA
	opcodes[0x28] = jrCond(1)
	opcodes[0x29] = opADDHLHL
	opcodes[0x2A] = opLDAHLInc
	opcodes[0x2B] = opDECHL
	opcodes[0x2F] = opCPL

	opcodes[0x30] = jrCond(2)
	opcodes[0x31] = opLDSPnn
	opcodes[0x32] = opLDHLDecA
	opcodes[0x33] = opINCSP
	opcodes[0x34] = opINCHLmem
	opcodes[0x35] = opDECHLmem
	opcodes[0x36] = opLDHLmemN
	opcodes[0x37] = opSCF
	opcodes[0x38] = jrCond(3)
	opcodes[0x39] = opADDHLSP
	opcodes[0x3A] = opLDAHLDec
	opcodes[0x3B] = opDECSP
	opcodes[0x3F] = opCCF

	opcodes[0xC0] = retCond(0)
	opcodes[0xC1] = popBC
	opcodes[0xC2] = jpCond(0)
	opcodes[0xC3] = opJPnn
	opcodes[0xC4] = callCond(0)
	opcodes[0xC5] = pushBC
	opcodes[0xC7] = rst(0x00)
	opcodes[0xC8] = retCond(1)
	opcodes[0xC9] = opRET
	opcodes[0xCA] = jpCond(1)
	opcodes[0xCC] = callCond(1)
	opcodes[0xCD] = opCALLnn
	opcodes[0xCF] = rst(0x08)

	opcodes[0xD0] = retCond(2)
	opcodes[0xD1] = popDE
	opcodes[0xD2] = jpCond(2)
	opcodes[0xD4] = callCond(2)
	opcodes[0xD5] = pushDE
	opcodes[0xD7] = rst(0x10)
	opcodes[0xD8] = retCond(3)
	opcodes[0xD9] = opRETI
	opcodes[0xDA] = jpCond(3)
	opcodes[0xDC] = callCond(3)
	opcodes[0xDF] = rst(0x18)

	opcodes[0xE0] = opLDHnA
	opcodes[0xE1] = popHL
	opcodes[0xE2] = opLDCmemA
	opcodes[0xE5] = pushHL
	opcodes[0xE7] = rst(0x20)
	opcodes[0xE8] = opADDSPe
	opcodes[0xE9] = opJPHL
	opcodes[0xEA] = opLDmemnnA
	opcodes[0xEF] = rst(0x28)

	opcodes[0xF0] = opLDHAn
	opcodes[0xF1] = popAF
	opcodes[0xF2] = opLDACmem
	opcodes[0xF3] = opDI
	opcodes[0xF5] = pushAF
	opcodes[0xF7] = rst(0x30)
	opcodes[0xF8] = opLDHLSPe
	opcodes[0xF9] = opLDSPHL
	opcodes[0xFA] = opLDAmemnn
	opcodes[0xFB] = opEI
	opcodes[0xFF] = rst(0x38)

	// CB-prefixed table: rotate/shift block, then BIT/RES/SET.
	rotateFns := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	for group := 0; group < 8; group++ {
		fn := rotateFns[group]
		for reg := 0; reg < 8; reg++ {
			op := group*8 + reg
			r := uint8(reg)
			cbOpcodes[op] = func(c *CPU) { c.writeOperand(r, fn(c, c.readOperand(r))) }
		}
	}

	for op := 0x40; op <= 0x7F; op++ {
		bit := uint8(op-0x40) / 8
		reg := uint8(op-0x40) % 8
		b, r := bit, reg
		cbOpcodes[op] = func(c *CPU) {
			v := c.readOperand(r)
			c.setFlag(flagZero, v&(1<<b) == 0)
			c.setFlag(flagSubtract, false)
			c.setFlag(flagHalfCarry, true)
		}
	}
	for op := 0x80; op <= 0xBF; op++ {
		bit := uint8(op-0x80) / 8
		reg := uint8(op-0x80) % 8
		b, r := bit, reg
		cbOpcodes[op] = func(c *CPU) { c.writeOperand(r, c.readOperand(r)&^(1<<b)) }
	}
	for op := 0xC0; op <= 0xFF; op++ {
		bit := uint8(op-0xC0) / 8
		reg := uint8(op-0xC0) % 8
		b, r := bit, reg
		cbOpcodes[op] = func(c *CPU) { c.writeOperand(r, c.readOperand(r)|(1<<b)) }
	}
}
