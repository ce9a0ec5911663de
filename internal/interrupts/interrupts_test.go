package interrupts

import "testing"

func TestReadIFAlwaysSetsUpperBits(t *testing.T) {
	c := NewController()
	c.Request(VBlank)
	if got := c.ReadIF(); got != 0xE1 {
		t.Errorf("ReadIF: got 0x%02X, want 0xE1", got)
	}
}

func TestWriteIFMasksToLowerFiveBits(t *testing.T) {
	c := NewController()
	c.WriteIF(0xFF)
	if got := c.ReadIF(); got != 0xFF {
		t.Errorf("ReadIF after WriteIF(0xFF): got 0x%02X, want 0xFF", got)
	}
	c.WriteIF(0x00)
	if got := c.flag; got != 0 {
		t.Errorf("flag after WriteIF(0x00): got 0x%02X, want 0", got)
	}
}

func TestNextReturnsLowestNumberedSourceFirst(t *testing.T) {
	c := NewController()
	c.WriteIE(0xFF)
	c.Request(Serial)
	c.Request(VBlank)
	c.Request(Timer)

	src, ok := c.Next()
	if !ok || src != VBlank {
		t.Errorf("Next: got (%v, %v), want (VBlank, true)", src, ok)
	}
}

func TestNextRequiresBothFlagAndEnable(t *testing.T) {
	c := NewController()
	c.Request(VBlank)
	if _, ok := c.Next(); ok {
		t.Errorf("Next: expected nothing pending without IE set")
	}

	c.WriteIE(LCDStat.Flag())
	if _, ok := c.Next(); ok {
		t.Errorf("Next: expected nothing pending, IE only covers LCDStat")
	}
}

func TestAcknowledgeClearsOnlyThatSource(t *testing.T) {
	c := NewController()
	c.WriteIE(0xFF)
	c.Request(VBlank)
	c.Request(Timer)

	c.Acknowledge(VBlank)

	src, ok := c.Next()
	if !ok || src != Timer {
		t.Errorf("Next after Acknowledge(VBlank): got (%v, %v), want (Timer, true)", src, ok)
	}
}

func TestVectorAddresses(t *testing.T) {
	cases := map[Source]uint16{
		VBlank:  0x0040,
		LCDStat: 0x0048,
		Timer:   0x0050,
		Serial:  0x0058,
		Input:   0x0060,
	}
	for src, want := range cases {
		if got := src.Vector(); got != want {
			t.Errorf("Vector(%v): got 0x%04X, want 0x%04X", src, got, want)
		}
	}
}
