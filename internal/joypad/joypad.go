// Package joypad implements the P1 register and its edge-triggered
// Input interrupt.
package joypad

import "github.com/retrogb/gbcore/internal/interrupts"

// Button identifies one of the eight physical inputs.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Controller holds the active-low D-pad and button state and the
// select lines written through P1.
type Controller struct {
	dpadState, buttonState   uint8
	dpadSelected, buttonSel bool

	irq *interrupts.Controller
}

// New returns a Controller wired to irq for the Input interrupt.
func New(irq *interrupts.Controller) *Controller {
	c := &Controller{irq: irq}
	c.Reset()
	return c
}

// Reset restores the no-buttons-pressed, nothing-selected state.
func (c *Controller) Reset() {
	c.dpadState = ^uint8(0x10)
	c.dpadSelected = false
	c.buttonState = ^uint8(0x20)
	c.buttonSel = false
}

func (c *Controller) state() uint8 {
	v := uint8(0xFF)
	if c.dpadSelected {
		v &= c.dpadState
	}
	if c.buttonSel {
		v &= c.buttonState
	}
	return v
}

// Set records button going pressed/released, requesting the Input
// interrupt on a press that actually changes the externally visible
// (select-gated) state.
func (c *Controller) Set(button Button, pressed bool) {
	prev := c.state()

	var state *uint8
	bit := uint(button)
	if button <= Down {
		state = &c.dpadState
	} else {
		state = &c.buttonState
		bit -= 4
	}

	if pressed {
		*state &^= 1 << bit
	} else {
		*state |= 1 << bit
	}

	if pressed && prev != c.state() {
		c.irq.Request(interrupts.Input)
	}
}

// ReadP1 returns the P1 register: bits 0-3 are the gated input
// state, bits 4-5 echo the select lines, bits 6-7 always read 1.
func (c *Controller) ReadP1() uint8 {
	v := c.state() & 0x0F
	if !c.dpadSelected {
		v |= 1 << 4
	}
	if !c.buttonSel {
		v |= 1 << 5
	}
	return v | 0xC0
}

// WriteP1 sets the select lines from bits 4-5 of the written value.
func (c *Controller) WriteP1(v uint8) {
	c.dpadSelected = v&0x10 == 0
	c.buttonSel = v&0x20 == 0
}
