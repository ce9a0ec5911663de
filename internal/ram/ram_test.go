package ram

import "testing"

func TestVRAMBankSelectionIsIgnoredOnDMG(t *testing.T) {
	v := NewVRAM(false)
	v.SelectBank(1)
	if got := v.CurrentBank(); got != 0 {
		t.Errorf("CurrentBank after SelectBank(1) on DMG: got %d, want 0", got)
	}
}

func TestVRAMBanksAreIndependent(t *testing.T) {
	v := NewVRAM(true)
	v.SelectBank(0)
	v.Write(0x8000, 0x11)
	v.SelectBank(1)
	v.Write(0x8000, 0x22)

	if got := v.ReadBank(0, 0x8000); got != 0x11 {
		t.Errorf("ReadBank(0): got 0x%02X, want 0x11", got)
	}
	if got := v.ReadBank(1, 0x8000); got != 0x22 {
		t.Errorf("ReadBank(1): got 0x%02X, want 0x22", got)
	}
	if got := v.Read(0x8000); got != 0x22 {
		t.Errorf("Read through selected bank: got 0x%02X, want 0x22", got)
	}
}

func TestWRAMBankZeroWriteSelectsBankOne(t *testing.T) {
	w := NewWRAM(true)
	w.SelectBank(3)
	if got := w.CurrentBank(); got != 3 {
		t.Errorf("CurrentBank after SelectBank(3): got %d, want 3", got)
	}
	w.SelectBank(0)
	if got := w.CurrentBank(); got != 1 {
		t.Errorf("CurrentBank after SelectBank(0): got %d, want 1", got)
	}
}

func TestWRAMSelectBankIgnoredOnDMG(t *testing.T) {
	w := NewWRAM(false)
	w.SelectBank(5)
	if got := w.CurrentBank(); got != 1 {
		t.Errorf("CurrentBank on DMG after SelectBank(5): got %d, want 1", got)
	}
}

func TestWRAMLowWindowIsAlwaysBankZero(t *testing.T) {
	w := NewWRAM(true)
	w.Write(0xC000, 0xAB)
	w.SelectBank(4)
	if got := w.Read(0xC000); got != 0xAB {
		t.Errorf("Read(0xC000) after switching high bank: got 0x%02X, want 0xAB", got)
	}
}

func TestWRAMHighWindowFollowsSelectedBank(t *testing.T) {
	w := NewWRAM(true)
	w.SelectBank(2)
	w.Write(0xD000, 0x42)
	w.SelectBank(3)
	if got := w.Read(0xD000); got == 0x42 {
		t.Errorf("Read(0xD000) after switching bank: leaked bank 2's value")
	}
	w.SelectBank(2)
	if got := w.Read(0xD000); got != 0x42 {
		t.Errorf("Read(0xD000) after switching back to bank 2: got 0x%02X, want 0x42", got)
	}
}

func TestZeroPageWraps(t *testing.T) {
	z := NewZeroPage()
	z.Write(0xFF80, 0x7F)
	if got := z.Read(0xFF80); got != 0x7F {
		t.Errorf("Read(0xFF80): got 0x%02X, want 0x7F", got)
	}
}
