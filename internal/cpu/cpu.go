// Package cpu implements the Sharp LR35902 instruction set: the
// fetch/dispatch loop, the full unprefixed and CB-prefixed opcode
// tables, and interrupt servicing, per §4.2.
package cpu

import (
	"fmt"

	"github.com/retrogb/gbcore/internal/interrupts"
	"github.com/retrogb/gbcore/internal/scheduler"
)

// Bus is the single capability the CPU needs from the rest of the
// machine: byte-addressed read/write. Each access costs 4 cycles,
// charged by the CPU itself via tick, not by the bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// UndefinedOpcodeError reports an attempt to execute one of the
// eleven LR35902 opcodes with no defined behavior. The original
// hardware locks up; this is reported as an error rather than
// panicking so a host can surface it and halt cleanly.
type UndefinedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UndefinedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: undefined opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// CPU is the Sharp LR35902 core.
type CPU struct {
	PC, SP uint16
	Registers

	ime        bool
	imePending bool // EI takes effect after the next instruction

	halted  bool
	stopped bool

	bus   Bus
	irq   *interrupts.Controller
	sched *scheduler.Scheduler

	// Err is set when the core has hit an unrecoverable condition
	// (an undefined opcode). RunFor returns immediately once set.
	Err error
}

// New returns a CPU wired to bus, the interrupt controller, and the
// shared scheduler.
func New(bus Bus, irq *interrupts.Controller, sched *scheduler.Scheduler) *CPU {
	c := &CPU{bus: bus, irq: irq, sched: sched}
	c.Registers.wirePairs()
	c.Reset()
	return c
}

// Reset sets post-boot-ROM register state. The boot ROM itself is
// out of scope (§ Non-goals); callers start execution as if it had
// already run.
func (c *CPU) Reset() {
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.ime = false
	c.imePending = false
	c.halted = false
	c.stopped = false
	c.Err = nil
}

func (c *CPU) tick(cycles int32) {
	c.sched.Tick(cycles)
	c.sched.Check()
}

func (c *CPU) readByte(addr uint16) uint8 {
	v := c.bus.Read(addr)
	c.tick(4)
	return v
}

func (c *CPU) writeByte(addr uint16, v uint8) {
	c.bus.Write(addr, v)
	c.tick(4)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.readByte(addr)
	hi := c.readByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.writeByte(addr, uint8(v))
	c.writeByte(addr+1, uint8(v>>8))
}

func (c *CPU) fetchByte() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchSigned() int8 {
	return int8(c.fetchByte())
}

func (c *CPU) fetchWord() uint16 {
	v := c.readWord(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) push(v uint16) {
	c.SP -= 2
	c.writeWord(c.SP, v)
}

func (c *CPU) pop() uint16 {
	v := c.readWord(c.SP)
	c.SP += 2
	return v
}

// RunFor executes instructions until the scheduler's cycle counter
// reaches targetCycles, rebasing first to keep T away from the
// int32 ceiling on long sessions.
func (c *CPU) RunFor(targetCycles int32) error {
	c.sched.Rebase()
	target := targetCycles

	for c.sched.T < target && c.Err == nil {
		c.serviceInterrupt()

		if c.imePending {
			c.imePending = false
			c.ime = true
		}

		if c.halted {
			sleepTo := target
			if fe := c.sched.FirstEvent(); fe < sleepTo {
				sleepTo = fe
			}
			delta := sleepTo - c.sched.T
			if delta > 0 {
				c.tick(delta)
			} else {
				// nothing left to sleep through this round; avoid a
				// busy spin when first_event has already fired.
				c.tick(4)
			}
			continue
		}

		c.step()
	}
	return c.Err
}

// serviceInterrupt implements §4.2.1: unconditional un-halt on any
// pending+enabled source, and (when IME is set) the fixed-priority
// dispatch to a handler vector.
func (c *CPU) serviceInterrupt() {
	if c.irq.Pending() != 0 {
		c.halted = false
	}
	if !c.ime {
		return
	}

	source, ok := c.irq.Next()
	if !ok {
		return
	}

	c.ime = false
	c.tick(12)
	c.push(c.PC)
	c.irq.Acknowledge(source)
	c.PC = source.Vector()
	c.tick(4)
}

// step fetches and dispatches a single instruction.
func (c *CPU) step() {
	op := c.fetchByte()
	if op == 0xCB {
		op2 := c.fetchByte()
		handler := cbOpcodes[op2]
		if handler == nil {
			c.Err = &UndefinedOpcodeError{Opcode: 0xCB, PC: c.PC - 2}
			return
		}
		handler(c)
		return
	}

	handler := opcodes[op]
	if handler == nil {
		c.Err = &UndefinedOpcodeError{Opcode: op, PC: c.PC - 1}
		return
	}
	handler(c)
}
