package cartridge

import "testing"

func makeROM(size int, typeCode, romSizeCode, ramSizeCode uint8) []byte {
	rom := make([]byte, size)
	rom[offType] = typeCode
	rom[offROMBanks] = romSizeCode
	rom[offRAMBanks] = ramSizeCode
	copy(rom[offTitle:], "TESTGAME")
	return rom
}

func TestParseHeaderNoMapper(t *testing.T) {
	rom := makeROM(32*1024, 0x00, 0x00, 0x00)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Mapper != NoMapper {
		t.Errorf("Mapper: got %v, want NoMapper", h.Mapper)
	}
	if h.Title != "TESTGAME" {
		t.Errorf("Title: got %q, want TESTGAME", h.Title)
	}
	if h.ROMBanks != 2 {
		t.Errorf("ROMBanks: got %d, want 2", h.ROMBanks)
	}
}

func TestParseHeaderMBC3WithRTCImpliesBattery(t *testing.T) {
	rom := makeROM(8*16*1024, 0x10, 0x02, 0x03)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Mapper != MBC3 {
		t.Errorf("Mapper: got %v, want MBC3", h.Mapper)
	}
	if !h.HasRTC {
		t.Errorf("HasRTC: got false, want true for type 0x10")
	}
	if !h.HasBattery {
		t.Errorf("HasBattery: got false, want true for type 0x10")
	}
}

func TestParseHeaderMBC2ForcesFixedRAMSize(t *testing.T) {
	rom := makeROM(4*16*1024, 0x06, 0x01, 0x00)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.RAMSize != 512 {
		t.Errorf("RAMSize: got %d, want 512", h.RAMSize)
	}
}

func TestParseHeaderRejectsTruncatedROM(t *testing.T) {
	rom := make([]byte, 0x100)
	if _, err := ParseHeader(rom); err == nil {
		t.Errorf("ParseHeader: expected error on truncated ROM")
	}
}

func TestParseHeaderRejectsUndersizedForDeclaredBanks(t *testing.T) {
	rom := makeROM(32*1024, 0x00, 0x03, 0x00) // declares 16 banks, only has 2
	if _, err := ParseHeader(rom); err == nil {
		t.Errorf("ParseHeader: expected error, ROM too small for declared bank count")
	}
}

func TestParseHeaderMBC5RumbleVariantsAreAccepted(t *testing.T) {
	for _, typeCode := range []uint8{0x1C, 0x1D, 0x1E} {
		rom := makeROM(8*16*1024, typeCode, 0x02, 0x03)
		h, err := ParseHeader(rom)
		if err != nil {
			t.Fatalf("ParseHeader(type 0x%02X): %v", typeCode, err)
		}
		if h.Mapper != MBC5 {
			t.Errorf("Mapper for type 0x%02X: got %v, want MBC5", typeCode, h.Mapper)
		}
	}
	rom := makeROM(8*16*1024, 0x1E, 0x02, 0x03) // MBC5+RUMBLE+RAM+BATTERY
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !h.HasBattery {
		t.Errorf("HasBattery for type 0x1E: got false, want true")
	}
}

func TestParseHeaderGBCFlag(t *testing.T) {
	rom := makeROM(32*1024, 0x00, 0x00, 0x00)
	rom[offGBCFlag] = 0x80
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !h.GBC {
		t.Errorf("GBC: got false, want true")
	}
}
