package cartridge

import "fmt"

// MapperKind identifies which mapper model a ROM's header declares.
type MapperKind int

const (
	NoMapper MapperKind = iota
	MBC1
	MBC2
	MBC3
	MBC5
)

const (
	offTitle    = 0x0134
	offGBCFlag  = 0x0143
	offType     = 0x0147
	offROMBanks = 0x0148
	offRAMBanks = 0x0149
)

// Header is the parsed cartridge header, §4.4.
type Header struct {
	Title       string
	GBC         bool
	TypeCode    uint8
	Mapper      MapperKind
	ROMBanks    int
	RAMBanks    int  // number of 8 KiB banks; RAM code 1 uses 1 bank of 2 KiB instead
	RAMSize     int  // total RAM bytes, accounting for the 2 KiB special case
	HasBattery  bool
	HasRTC      bool
}

var batteryBackedTypes = map[uint8]bool{
	0x03: true, 0x06: true, 0x09: true, 0x0F: true,
	0x10: true, 0x13: true, 0x1B: true, 0x1E: true, 0xFF: true,
}

var romBankCounts = map[uint8]int{
	0: 2, 1: 4, 2: 8, 3: 16, 4: 32, 5: 64, 6: 128, 7: 256, 8: 512,
	0x52: 72, 0x53: 80, 0x54: 96,
}

// ParseHeader reads the header fields out of a raw ROM image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x0150 {
		return nil, fmt.Errorf("cartridge: ROM too small to contain a header (%d bytes)", len(rom))
	}

	h := &Header{}

	title := rom[offTitle : offTitle+16]
	end := 0
	for end < len(title) && title[end] != 0 {
		end++
	}
	h.Title = string(title[:end])

	h.GBC = rom[offGBCFlag]&0x80 != 0
	h.TypeCode = rom[offType]

	banks, ok := romBankCounts[rom[offROMBanks]]
	if !ok {
		return nil, fmt.Errorf("cartridge: unsupported ROM size code 0x%02X", rom[offROMBanks])
	}
	h.ROMBanks = banks
	if len(rom) < banks*16*1024 {
		return nil, fmt.Errorf("cartridge: ROM file is too small to hold %d declared banks", banks)
	}

	switch rom[offRAMBanks] {
	case 0:
		h.RAMBanks, h.RAMSize = 0, 0
	case 1:
		h.RAMBanks, h.RAMSize = 1, 2*1024
	case 2:
		h.RAMBanks, h.RAMSize = 1, 8*1024
	case 3:
		h.RAMBanks, h.RAMSize = 4, 4*8*1024
	case 4:
		h.RAMBanks, h.RAMSize = 16, 16*8*1024
	default:
		return nil, fmt.Errorf("cartridge: unsupported RAM size code 0x%02X", rom[offRAMBanks])
	}

	switch h.TypeCode {
	case 0x00:
		h.Mapper = NoMapper
	case 0x01, 0x02, 0x03:
		h.Mapper = MBC1
	case 0x05, 0x06:
		h.Mapper = MBC2
		h.RAMBanks, h.RAMSize = 1, 512 // 512 x 4-bit cells, stored one per byte
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		h.Mapper = MBC3
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		h.Mapper = MBC5 // 0x1C-0x1E add a rumble motor, no bearing on bank logic
	default:
		return nil, fmt.Errorf("cartridge: unsupported mapper type code 0x%02X", h.TypeCode)
	}

	h.HasBattery = batteryBackedTypes[h.TypeCode]
	h.HasRTC = h.TypeCode == 0x0F || h.TypeCode == 0x10
	if h.RAMSize == 0 && !h.HasRTC {
		h.HasBattery = false
	}

	return h, nil
}
