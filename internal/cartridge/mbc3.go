package cartridge

// mbc3 implements the MBC3 mapper: a 7-bit ROM bank register, a RAM
// bank register that doubles as an RTC register selector, and an
// edge-triggered RTC latch trigger.
type mbc3 struct {
	rom      []byte
	ram      []byte
	romBanks int
	ramBanks int

	romBank    int
	ramBank    uint8 // 0..3 selects a RAM bank; 0x08..0x0C selects an RTC register
	ramEnabled bool

	rtc      *RTC // nil if this cartridge has no RTC
	rtcLatch uint8
}

func newMBC3(rom, ram []byte, romBanks, ramBanks int, rtc *RTC) *mbc3 {
	return &mbc3{rom: rom, ram: ram, romBanks: romBanks, ramBanks: ramBanks, romBank: 1, rtc: rtc}
}

func (m *mbc3) ReadROM(addr uint16) uint8 {
	offset := int(addr)
	if addr >= 0x4000 {
		offset += (m.romBank - 1) * 0x4000
	}
	if offset < len(m.rom) {
		return m.rom[offset]
	}
	return 0xFF
}

func (m *mbc3) WriteROM(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		bank := modBanks(int(v&0x7F), m.romBanks)
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = v
	default:
		if m.rtc != nil {
			newLatch := v
			m.rtc.Latch(m.rtcLatch == 0 && newLatch == 1)
			m.rtcLatch = newLatch
		}
	}
}

func (m *mbc3) isRTCSelected() bool {
	return m.ramBank >= 0x08 && m.ramBank <= 0x0C
}

func (m *mbc3) ReadRAM(addr uint16) uint8 {
	if m.isRTCSelected() {
		// RTC registers are only readable while the RAM-enable command
		// has left them unlocked, same gate as a RAM write.
		if m.rtc != nil && m.ramEnabled {
			return m.rtc.Read(uint16(m.ramBank))
		}
		return 0xFF
	}
	if m.ramBanks == 0 {
		return 0xFF
	}
	bank := modBanks(int(m.ramBank), m.ramBanks)
	return m.ram[bank*0x2000+int(addr)]
}

func (m *mbc3) WriteRAM(addr uint16, v uint8) bool {
	if !m.ramEnabled {
		return false
	}
	if m.isRTCSelected() {
		if m.rtc != nil {
			m.rtc.Write(uint16(m.ramBank), v)
			return true
		}
		return false
	}
	if m.ramBanks == 0 {
		return false
	}
	bank := modBanks(int(m.ramBank), m.ramBanks)
	m.ram[bank*0x2000+int(addr)] = v
	return true
}
