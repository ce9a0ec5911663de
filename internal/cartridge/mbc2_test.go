package cartridge

import "testing"

func newTestMBC2(romBanks int) *mbc2 {
	rom := make([]byte, romBanks*0x4000)
	for bank := 0; bank < romBanks; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	return newMBC2(rom, make([]byte, 512), romBanks)
}

func TestMBC2SelectsROMBankViaAddressBit8(t *testing.T) {
	m := newTestMBC2(4)
	m.WriteROM(0x0100, 0x03) // bit 8 set: bank-select command
	if got := m.ReadROM(0x4000); got != 3 {
		t.Errorf("ReadROM(0x4000): got %d, want 3", got)
	}
}

func TestMBC2BankZeroSelectAliasesToBank1(t *testing.T) {
	m := newTestMBC2(4)
	m.WriteROM(0x0100, 0x00)
	if got := m.ReadROM(0x4000); got != 1 {
		t.Errorf("ReadROM(0x4000) with bank register 0: got %d, want 1", got)
	}
}

func TestMBC2RAMIsNibbleWideWithUpperBitsSetOnRead(t *testing.T) {
	m := newTestMBC2(4)
	m.WriteROM(0x0000, 0x0A) // address bit 8 clear: RAM-enable command
	m.WriteRAM(0x0000, 0x05)
	if got := m.ReadRAM(0x0000); got != 0xF5 {
		t.Errorf("ReadRAM: got 0x%02X, want 0xF5", got)
	}
}

func TestMBC2RAMAddressWrapsAt512(t *testing.T) {
	m := newTestMBC2(4)
	m.WriteROM(0x0000, 0x0A)
	m.WriteRAM(0x0200, 0x07) // 512 mod 512 == 0
	if got := m.ReadRAM(0x0000); got != 0xF7 {
		t.Errorf("ReadRAM(0x0000): got 0x%02X, want 0xF7", got)
	}
}
