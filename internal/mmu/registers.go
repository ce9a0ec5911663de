package mmu

// hdmaRegs tracks the write-only HDMA1-4 staging registers; the
// engine itself only accepts a combined 16-bit source/destination.
type hdmaRegs struct {
	srcHigh, srcLow uint8
	dstHigh, dstLow uint8
}

func (m *MMU) readLCD(addr uint16) uint8 {
	switch addr {
	case 0xFF40:
		return m.PPU.ReadLCDC()
	case 0xFF41:
		return m.PPU.ReadSTAT()
	case 0xFF42:
		return m.PPU.ScrollY
	case 0xFF43:
		return m.PPU.ScrollX
	case 0xFF44:
		return m.PPU.ReadLY()
	case 0xFF45:
		return m.PPU.LYC
	case 0xFF46:
		return 0xFF // OAM DMA register is write-only
	case 0xFF47:
		return m.PPU.BGP
	case 0xFF48:
		return m.PPU.OBP0
	case 0xFF49:
		return m.PPU.OBP1
	case 0xFF4A:
		return m.PPU.WindowY
	case 0xFF4B:
		return m.PPU.WindowX
	default:
		return 0xFF
	}
}

func (m *MMU) writeLCD(addr uint16, v uint8) {
	switch addr {
	case 0xFF40:
		m.PPU.WriteLCDC(v)
	case 0xFF41:
		m.PPU.WriteSTAT(v)
	case 0xFF42:
		m.PPU.ScrollY = v
	case 0xFF43:
		m.PPU.ScrollX = v
	case 0xFF45:
		m.PPU.LYC = v
	case 0xFF47:
		m.PPU.BGP = v
	case 0xFF48:
		m.PPU.OBP0 = v
	case 0xFF49:
		m.PPU.OBP1 = v
	case 0xFF4A:
		m.PPU.WindowY = v
	case 0xFF4B:
		m.PPU.WindowX = v
	}
}

func (m *MMU) readVBK() uint8 {
	return uint8(m.VRAM.CurrentBank()) | 0xFE
}

func (m *MMU) writeVBK(v uint8) {
	m.VRAM.SelectBank(int(v))
}

func (m *MMU) readHDMA(addr uint16) uint8 {
	if addr == 0xFF55 {
		return m.HDMA.Length5()
	}
	return 0xFF // HDMA1-4 are write-only
}

func (m *MMU) writeHDMA(addr uint16, v uint8) {
	switch addr {
	case 0xFF51:
		m.hdma.srcHigh = v
	case 0xFF52:
		m.hdma.srcLow = v &^ 0x0F
	case 0xFF53:
		m.hdma.dstHigh = v
	case 0xFF54:
		m.hdma.dstLow = v &^ 0x0F
	case 0xFF55:
		src := uint16(m.hdma.srcHigh)<<8 | uint16(m.hdma.srcLow)
		dst := uint16(m.hdma.dstHigh)<<8 | uint16(m.hdma.dstLow)
		m.HDMA.SetSource(src)
		m.HDMA.SetDestination(dst)

		if v&0x80 == 0 {
			if m.HDMA.Active() {
				m.HDMA.Cancel()
				return
			}
			m.HDMA.StartBulk(v & 0x7F)
		} else {
			m.HDMA.ArmHBlank(v & 0x7F)
		}
	}
}

func (m *MMU) readPalette(addr uint16) uint8 {
	if !m.gbc {
		return 0xFF
	}
	switch addr {
	case 0xFF68:
		return m.PPU.BGPaletteIndex()
	case 0xFF69:
		return m.PPU.BGPaletteData()
	case 0xFF6A:
		return m.PPU.ObjPaletteIndex()
	default:
		return m.PPU.ObjPaletteData()
	}
}

func (m *MMU) writePalette(addr uint16, v uint8) {
	if !m.gbc {
		return
	}
	switch addr {
	case 0xFF68:
		m.PPU.WriteBGPaletteIndex(v)
	case 0xFF69:
		m.PPU.WriteBGPaletteData(v)
	case 0xFF6A:
		m.PPU.WriteObjPaletteIndex(v)
	default:
		m.PPU.WriteObjPaletteData(v)
	}
}

func (m *MMU) readSVBK() uint8 {
	if !m.gbc {
		return 0xFF
	}
	return uint8(m.WRAM.CurrentBank()) | 0xF8
}

func (m *MMU) writeSVBK(v uint8) {
	m.WRAM.SelectBank(int(v))
}

func (m *MMU) readSPU(addr uint16) uint8 {
	switch {
	case addr >= 0xFF30 && addr <= 0xFF3F:
		return m.APU.ReadWaveRAM(addr - 0xFF30)
	}

	switch addr {
	case 0xFF10:
		return m.APU.ReadNR10()
	case 0xFF11:
		return m.APU.ReadNR11()
	case 0xFF12:
		return m.APU.ReadNR12()
	case 0xFF14:
		return m.APU.ReadNR14()
	case 0xFF16:
		return m.APU.ReadNR21()
	case 0xFF17:
		return m.APU.ReadNR22()
	case 0xFF19:
		return m.APU.ReadNR24()
	case 0xFF1A:
		return m.APU.ReadNR30()
	case 0xFF1B:
		return m.APU.ReadNR31()
	case 0xFF1C:
		return m.APU.ReadNR32()
	case 0xFF1E:
		return m.APU.ReadNR34()
	case 0xFF21:
		return m.APU.ReadNR42()
	case 0xFF22:
		return m.APU.ReadNR43()
	case 0xFF23:
		return m.APU.ReadNR44()
	case 0xFF24:
		return m.APU.ReadNR50()
	case 0xFF25:
		return m.APU.ReadNR51()
	case 0xFF26:
		return m.APU.ReadNR52()
	default:
		return 0xFF
	}
}

func (m *MMU) writeSPU(addr uint16, v uint8) {
	switch {
	case addr >= 0xFF30 && addr <= 0xFF3F:
		m.APU.WriteWaveRAM(addr-0xFF30, v)
		return
	}

	switch addr {
	case 0xFF10:
		m.APU.WriteNR10(v)
	case 0xFF11:
		m.APU.WriteNR11(v)
	case 0xFF12:
		m.APU.WriteNR12(v)
	case 0xFF13:
		m.APU.WriteNR13(v)
	case 0xFF14:
		m.APU.WriteNR14(v)
	case 0xFF16:
		m.APU.WriteNR21(v)
	case 0xFF17:
		m.APU.WriteNR22(v)
	case 0xFF18:
		m.APU.WriteNR23(v)
	case 0xFF19:
		m.APU.WriteNR24(v)
	case 0xFF1A:
		m.APU.WriteNR30(v)
	case 0xFF1B:
		m.APU.WriteNR31(v)
	case 0xFF1C:
		m.APU.WriteNR32(v)
	case 0xFF1D:
		m.APU.WriteNR33(v)
	case 0xFF1E:
		m.APU.WriteNR34(v)
	case 0xFF20:
		m.APU.WriteNR41(v)
	case 0xFF21:
		m.APU.WriteNR42(v)
	case 0xFF22:
		m.APU.WriteNR43(v)
	case 0xFF23:
		m.APU.WriteNR44(v)
	case 0xFF24:
		m.APU.WriteNR50(v)
	case 0xFF25:
		m.APU.WriteNR51(v)
	case 0xFF26:
		m.APU.WriteNR52(v)
	}
}
