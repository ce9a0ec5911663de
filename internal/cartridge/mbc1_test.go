package cartridge

import "testing"

func newTestMBC1(romBanks, ramBanks int) *mbc1 {
	rom := make([]byte, romBanks*0x4000)
	for bank := 0; bank < romBanks; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	ram := make([]byte, ramBanks*0x2000)
	return newMBC1(rom, ram, romBanks, ramBanks)
}

func TestMBC1ROMBank0IsAlwaysFixedWindow(t *testing.T) {
	m := newTestMBC1(8, 1)
	m.WriteROM(0x2000, 0x03)
	if got := m.ReadROM(0x0000); got != 0 {
		t.Errorf("ReadROM(0x0000): got %d, want 0 (fixed bank)", got)
	}
}

func TestMBC1SelectsSwitchableBank(t *testing.T) {
	m := newTestMBC1(8, 1)
	m.WriteROM(0x2000, 0x05)
	if got := m.ReadROM(0x4000); got != 5 {
		t.Errorf("ReadROM(0x4000): got %d, want 5", got)
	}
}

func TestMBC1Bank0SelectAliasesToBank1(t *testing.T) {
	m := newTestMBC1(8, 1)
	m.WriteROM(0x2000, 0x00)
	if got := m.ReadROM(0x4000); got != 1 {
		t.Errorf("ReadROM(0x4000) with bank register 0: got %d, want 1", got)
	}
}

func TestMBC1RAMRequiresEnable(t *testing.T) {
	m := newTestMBC1(8, 1)
	if wrote := m.WriteRAM(0x0000, 0x42); wrote {
		t.Errorf("WriteRAM without enabling: expected rejected write")
	}

	m.WriteROM(0x0000, 0x0A)
	if wrote := m.WriteRAM(0x0000, 0x42); !wrote {
		t.Fatalf("WriteRAM after enabling: expected accepted write")
	}
	if got := m.ReadRAM(0x0000); got != 0x42 {
		t.Errorf("ReadRAM: got 0x%02X, want 0x42", got)
	}
}

func TestMBC1BankingModeSwitchesRAMBank(t *testing.T) {
	m := newTestMBC1(8, 4)
	m.WriteROM(0x0000, 0x0A) // enable RAM
	m.WriteROM(0x6000, 0x01) // RAM banking mode
	m.WriteROM(0x4000, 0x02) // select RAM bank 2
	m.WriteRAM(0x0000, 0xAB)

	m.WriteROM(0x4000, 0x00) // switch to RAM bank 0
	if got := m.ReadRAM(0x0000); got == 0xAB {
		t.Errorf("ReadRAM from bank 0: unexpectedly saw bank 2's value")
	}

	m.WriteROM(0x4000, 0x02)
	if got := m.ReadRAM(0x0000); got != 0xAB {
		t.Errorf("ReadRAM back on bank 2: got 0x%02X, want 0xAB", got)
	}
}
