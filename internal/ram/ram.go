// Package ram implements the Game Boy's raw memory blocks: banked
// video RAM, banked internal work RAM, and zero-page RAM. Storage is
// kept as raw byte arrays per the design note in §9 — the wire
// format is bit-exact — with typed accessors layered on top.
package ram

// VRAM is video RAM: one 8 KiB bank on DMG, two on GBC, selected by
// the low bit of VBK.
type VRAM struct {
	banks [2][0x2000]byte
	gbc   bool
	sel   int
}

// NewVRAM returns VRAM configured for DMG (one bank) or GBC (two).
func NewVRAM(gbc bool) *VRAM {
	return &VRAM{gbc: gbc}
}

// SelectBank sets VBK bit 0 (ignored on DMG).
func (v *VRAM) SelectBank(bank int) {
	if v.gbc {
		v.sel = bank & 1
	}
}

// CurrentBank returns the bank CPU accesses currently target.
func (v *VRAM) CurrentBank() int {
	return v.sel
}

// Read reads relative to 0x8000, through the currently selected bank.
func (v *VRAM) Read(addr uint16) uint8 {
	return v.banks[v.sel][addr&0x1FFF]
}

// Write writes relative to 0x8000, through the currently selected bank.
func (v *VRAM) Write(addr uint16, val uint8) {
	v.banks[v.sel][addr&0x1FFF] = val
}

// ReadBank reads from an explicit bank, used by the PPU renderer to
// fetch GBC tile attributes out of bank 1 regardless of VBK.
func (v *VRAM) ReadBank(bank int, addr uint16) uint8 {
	return v.banks[bank&1][addr&0x1FFF]
}

// WriteBank writes to an explicit bank; used by HDMA, which targets
// whichever bank VBK currently selects.
func (v *VRAM) WriteBank(bank int, addr uint16, val uint8) {
	v.banks[bank&1][addr&0x1FFF] = val
}

// WRAM is internal work RAM: 8 banks of 4 KiB on GBC (bank 0 fixed at
// 0xC000, bank 1..7 selectable at 0xD000 via SVBK), or bank 0 and a
// single fixed bank 1 on DMG.
type WRAM struct {
	banks [8][0x1000]byte
	gbc   bool
	sel   int // 1..7, never 0
}

// NewWRAM returns WRAM with bank 1 selected for the high window.
func NewWRAM(gbc bool) *WRAM {
	return &WRAM{gbc: gbc, sel: 1}
}

// SelectBank sets SVBK; a write of 0 selects bank 1, per §4.3.
func (w *WRAM) SelectBank(bank int) {
	if !w.gbc {
		return
	}
	bank &= 0x07
	if bank == 0 {
		bank = 1
	}
	w.sel = bank
}

// CurrentBank returns the SVBK-selected bank (always 1 on DMG).
func (w *WRAM) CurrentBank() int {
	return w.sel
}

// Read dispatches a 0xC000-0xDFFF (or mirrored 0xE000-0xFDFF) access.
func (w *WRAM) Read(addr uint16) uint8 {
	off := addr % 0x2000
	if off < 0x1000 {
		return w.banks[0][off]
	}
	return w.banks[w.sel][off-0x1000]
}

// Write dispatches a 0xC000-0xDFFF (or mirrored) write.
func (w *WRAM) Write(addr uint16, val uint8) {
	off := addr % 0x2000
	if off < 0x1000 {
		w.banks[0][off] = val
		return
	}
	w.banks[w.sel][off-0x1000] = val
}

// ZeroPage is the 127-byte high RAM window at 0xFF80-0xFFFE.
type ZeroPage struct {
	data [127]byte
}

func NewZeroPage() *ZeroPage { return &ZeroPage{} }

func (z *ZeroPage) Read(addr uint16) uint8 {
	return z.data[addr&0x7F]
}

func (z *ZeroPage) Write(addr uint16, val uint8) {
	z.data[addr&0x7F] = val
}
