package cartridge

import "testing"

func newTestMBC3(romBanks, ramBanks int, rtc *RTC) *mbc3 {
	rom := make([]byte, romBanks*0x4000)
	for bank := 0; bank < romBanks; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	ram := make([]byte, ramBanks*0x2000)
	return newMBC3(rom, ram, romBanks, ramBanks, rtc)
}

func TestMBC3SelectsFullSevenBitROMBank(t *testing.T) {
	m := newTestMBC3(128, 4, nil)
	m.WriteROM(0x2000, 0x7F)
	if got := m.ReadROM(0x4000); got != 0x7F {
		t.Errorf("ReadROM(0x4000): got %d, want 127", got)
	}
}

func TestMBC3RAMBankSelectedBelow0x08(t *testing.T) {
	m := newTestMBC3(8, 4, nil)
	m.WriteROM(0x0000, 0x0A)
	m.WriteROM(0x4000, 0x02)
	m.WriteRAM(0x0000, 0x55)
	if got := m.ReadRAM(0x0000); got != 0x55 {
		t.Errorf("ReadRAM: got 0x%02X, want 0x55", got)
	}
}

func TestMBC3RTCRegisterSelectedAt0x08ThroughOx0C(t *testing.T) {
	rtc := NewRTC()
	m := newTestMBC3(8, 0, rtc)
	m.WriteROM(0x0000, 0x0A) // enable
	m.WriteROM(0x4000, 0x08) // select RTC seconds register

	m.WriteRAM(0x0000, 30)
	if got := m.ReadRAM(0x0000); got != 30 {
		t.Errorf("ReadRAM (RTC seconds): got %d, want 30", got)
	}
}

func TestMBC3RTCSelectedButAbsentReadsFF(t *testing.T) {
	m := newTestMBC3(8, 0, nil)
	m.WriteROM(0x0000, 0x0A)
	m.WriteROM(0x4000, 0x08)
	if got := m.ReadRAM(0x0000); got != 0xFF {
		t.Errorf("ReadRAM without RTC: got 0x%02X, want 0xFF", got)
	}
}

func TestMBC3LatchIsEdgeTriggered(t *testing.T) {
	rtc := NewRTC()
	m := newTestMBC3(8, 0, rtc)
	m.WriteROM(0x6000, 0x00)
	m.WriteROM(0x6000, 0x01) // 0->1 edge: latches
	latched1 := rtc.latched

	m.WriteROM(0x6000, 0x01) // still 1: no new latch
	latched2 := rtc.latched

	if latched1 != latched2 {
		t.Errorf("second write at same level re-latched unexpectedly")
	}
}
