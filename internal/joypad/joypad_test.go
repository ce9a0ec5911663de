package joypad

import (
	"testing"

	"github.com/retrogb/gbcore/internal/interrupts"
)

func TestReadP1DefaultsToNothingSelected(t *testing.T) {
	c := New(interrupts.NewController())
	if got := c.ReadP1(); got != 0xFF {
		t.Errorf("ReadP1: got 0x%02X, want 0xFF", got)
	}
}

func TestWriteP1SelectsDpadLines(t *testing.T) {
	c := New(interrupts.NewController())
	c.Set(Down, true)
	c.WriteP1(0x20) // select dpad (bit 4 low), buttons deselected

	got := c.ReadP1()
	if got&0x08 != 0 {
		t.Errorf("ReadP1: Down bit set, want cleared (pressed), got 0x%02X", got)
	}
	if got&0x30 != 0x20 {
		t.Errorf("ReadP1: select bits = 0x%02X, want 0x20", got&0x30)
	}
}

func TestWriteP1SelectsButtonLines(t *testing.T) {
	c := New(interrupts.NewController())
	c.Set(A, true)
	c.WriteP1(0x10) // select buttons (bit 5 low), dpad deselected

	got := c.ReadP1()
	if got&0x01 != 0 {
		t.Errorf("ReadP1: A bit set, want cleared (pressed), got 0x%02X", got)
	}
}

func TestSetRequestsInputInterruptOnPressWhileSelected(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.WriteP1(0x20) // dpad selected

	c.Set(Up, true)

	if irq.ReadIF()&interrupts.Input.Flag() == 0 {
		t.Errorf("Set(Up, true): expected Input interrupt requested")
	}
}

func TestSetDoesNotRequestInterruptWhenLineNotSelected(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.WriteP1(0x10) // buttons selected, dpad not selected

	c.Set(Up, true)

	if irq.ReadIF()&interrupts.Input.Flag() != 0 {
		t.Errorf("Set(Up, true): expected no Input interrupt, dpad not selected")
	}
}

func TestSetReleaseDoesNotRequestInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.WriteP1(0x20)
	c.Set(Up, true)
	irq.Acknowledge(interrupts.Input)

	c.Set(Up, false)

	if irq.ReadIF()&interrupts.Input.Flag() != 0 {
		t.Errorf("Set(Up, false): expected no Input interrupt on release")
	}
}
