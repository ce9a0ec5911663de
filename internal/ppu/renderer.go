package ppu

// gbcAttr is a decoded GBC background/window tile-map attribute byte.
type gbcAttr struct {
	palette  uint8
	bank     int
	xFlip    bool
	yFlip    bool
	priority bool // BG-over-sprite priority
}

func decodeGBCAttr(v uint8) gbcAttr {
	a := gbcAttr{palette: v & 0x07, xFlip: v&0x20 != 0, yFlip: v&0x40 != 0, priority: v&0x80 != 0}
	if v&0x08 != 0 {
		a.bank = 1
	}
	return a
}

// drawCurrentLine renders scanline p.LY and hands it to the sink, per
// the composition rules of §4.8.
func (p *PPU) drawCurrentLine() {
	if p.LY >= Height {
		return
	}

	bgColor, bgAttr, bgPriority := p.backgroundRow()

	if p.gbc {
		var line [Width]uint16
		p.composeGBC(bgColor, bgAttr, bgPriority, &line)
		if p.sink != nil {
			p.sink.DrawLineGBC(p.LY, line)
		}
		return
	}

	var line [Width]uint8
	p.composeDMG(bgColor, bgPriority, &line)
	if p.sink != nil {
		p.sink.DrawLineDMG(p.LY, line)
	}
}

// backgroundRow computes the raw 2-bit color index, GBC attribute,
// and opacity (non-zero color) for every background/window pixel of
// the current line, before palette application.
func (p *PPU) backgroundRow() (color [Width]uint8, attr [Width]gbcAttr, opaque [Width]bool) {
	usedWindow := false

	for x := 0; x < Width; x++ {
		if !p.backgroundEnable && !p.gbc {
			continue
		}

		useWindow := p.windowEnable && int(p.LY) >= int(p.WindowY) && x+7 >= int(p.WindowX)

		var mapBase uint16
		var pixelX, pixelY int
		if useWindow {
			mapBase = 0x9800
			if p.winHighTileMap {
				mapBase = 0x9C00
			}
			pixelY = p.windowLine
			pixelX = x - (int(p.WindowX) - 7)
			usedWindow = true
		} else {
			mapBase = 0x9800
			if p.bgHighTileMap {
				mapBase = 0x9C00
			}
			pixelY = (int(p.LY) + int(p.ScrollY)) & 0xFF
			pixelX = (x + int(p.ScrollX)) & 0xFF
		}

		tileRow := pixelY / 8
		tileCol := (pixelX / 8) & 0x1F
		mapAddr := mapBase + uint16(tileRow*32+tileCol)

		tileIndex := p.vram.ReadBank(0, mapAddr)

		var a gbcAttr
		if p.gbc {
			a = decodeGBCAttr(p.vram.ReadBank(1, mapAddr))
		}
		attr[x] = a

		row := pixelY % 8
		if a.yFlip {
			row = 7 - row
		}

		var tileAddr uint16
		if p.bgUseSpriteTiles {
			tileAddr = 0x8000 + uint16(tileIndex)*16
		} else {
			tileAddr = uint16(int(0x9000) + int(int8(tileIndex))*16)
		}
		lo := p.vram.ReadBank(a.bank, tileAddr+uint16(row)*2)
		hi := p.vram.ReadBank(a.bank, tileAddr+uint16(row)*2+1)

		bit := 7 - (pixelX % 8)
		if a.xFlip {
			bit = pixelX % 8
		}

		c := (hi>>uint(bit))&1<<1 | (lo>>uint(bit))&1
		color[x] = c
		opaque[x] = c != 0
	}

	if usedWindow {
		p.windowLine++
	}
	return
}

func (p *PPU) composeDMG(bgColor [Width]uint8, bgOpaque [Width]bool, line *[Width]uint8) {
	for x := range line {
		line[x] = dmgApply(bgColor[x], p.BGP)
	}

	if !p.spriteEnable {
		return
	}
	sprites := p.OAM.LineSprites(int(p.LY), p.tallSprites, false)
	// iterate in reverse so the first (highest-priority) sprite in
	// the slice ends up drawn last, i.e. on top.
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		row := int(p.LY) - s.Y
		if s.YFlip {
			if p.tallSprites {
				row = 15 - row
			} else {
				row = 7 - row
			}
		}
		tile := s.Tile
		if p.tallSprites {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}
		tileAddr := 0x8000 + uint16(tile)*16
		lo := p.vram.ReadBank(0, tileAddr+uint16(row)*2)
		hi := p.vram.ReadBank(0, tileAddr+uint16(row)*2+1)

		palette := p.OBP0
		if s.UsePalette1 {
			palette = p.OBP1
		}

		for sx := 0; sx < 8; sx++ {
			x := s.X + sx
			if x < 0 || x >= Width {
				continue
			}
			bit := 7 - sx
			if s.XFlip {
				bit = sx
			}
			c := (hi>>uint(bit))&1<<1 | (lo>>uint(bit))&1
			if c == 0 {
				continue
			}
			if s.Behind && bgOpaque[x] {
				continue
			}
			line[x] = dmgApply(c, palette)
		}
	}
}

func (p *PPU) composeGBC(bgColor [Width]uint8, bgAttr [Width]gbcAttr, bgOpaque [Width]bool, line *[Width]uint16) {
	for x := range line {
		line[x] = p.bgPalettes.Color(bgAttr[x].palette, bgColor[x])
	}

	if !p.spriteEnable {
		return
	}
	sprites := p.OAM.LineSprites(int(p.LY), p.tallSprites, true)
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		row := int(p.LY) - s.Y
		if s.YFlip {
			if p.tallSprites {
				row = 15 - row
			} else {
				row = 7 - row
			}
		}
		tile := s.Tile
		if p.tallSprites {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}
		bank := 0
		if s.HighBank {
			bank = 1
		}
		tileAddr := 0x8000 + uint16(tile)*16
		lo := p.vram.ReadBank(bank, tileAddr+uint16(row)*2)
		hi := p.vram.ReadBank(bank, tileAddr+uint16(row)*2+1)

		for sx := 0; sx < 8; sx++ {
			x := s.X + sx
			if x < 0 || x >= Width {
				continue
			}
			bit := 7 - sx
			if s.XFlip {
				bit = sx
			}
			c := (hi>>uint(bit))&1<<1 | (lo>>uint(bit))&1
			if c == 0 {
				continue
			}
			// master background-priority bit (LCDC.0 off disables it
			// entirely elsewhere); per-tile BG priority wins over
			// sprite priority when the background pixel is opaque.
			if (s.Behind || bgAttr[x].priority) && p.backgroundEnable && bgOpaque[x] {
				continue
			}
			line[x] = p.objPalettes.Color(s.Palette, c)
		}
	}
}
