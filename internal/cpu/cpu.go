// Package cpu implements the Sharp LR35902 instruction-set interpreter: the
// register file, the instruction decoders, and the executor that drives one
// instruction (or one interrupt dispatch) per step.
package cpu

import (
	"errors"
	"fmt"

	"github.com/richardwooding/gbcore/internal/interrupts"
)

// ErrUnknownOpcode indicates a fetch of one of the 11 undefined primary
// opcodes. Execution cannot continue past it.
var ErrUnknownOpcode = errors.New("tried to run unknown opcode")

// Memory is the flat byte-addressable address space the CPU executes
// against. IE and IF reads/writes must be backed by the interrupt controller
// returned from Interrupts.
type Memory interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
	Interrupts() *interrupts.Controller
}

// CPU is the LR35902 core: registers plus the interrupt master enable.
// It borrows Memory for its whole lifetime and is its sole mutator during a
// step.
type CPU struct {
	Registers *Registers
	Memory    Memory

	// IME gates all interrupt dispatch. Only EI, DI, RETI and the dispatch
	// itself may touch it; memory-mapped IE/IF writes never do.
	IME bool

	halted bool
}

// New creates a CPU in the raw power-on state: all registers zero, IME set.
func New(mem Memory) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		Memory:    mem,
		IME:       true,
	}
}

// NewAt0x100 creates a CPU in the post-boot-ROM state, the machine state a
// cartridge observes when it gains control at 0x0100.
func NewAt0x100(mem Memory) *CPU {
	c := &CPU{
		Registers: NewRegisters(),
		Memory:    mem,
		IME:       false,
	}

	c.Registers.WritePC(0x0100)
	c.Registers.WriteSP(0xFFFE)
	c.Registers.Write16(RegAF, 0x1180)
	c.Registers.Write16(RegBC, 0x0000)
	c.Registers.Write16(RegDE, 0xFF56)
	c.Registers.Write16(RegHL, 0x000D)

	mem.WriteByte(interrupts.PendingAddr, 0xE1)

	return c
}

// Halted reports whether the CPU is frozen waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step services the highest-priority pending interrupt if IME allows it,
// otherwise fetches, decodes and executes one instruction. An undefined
// opcode is fatal: the error identifies the byte and the address it was
// fetched from, and the CPU is left as it was after consuming that byte.
func (c *CPU) Step() error {
	if c.serviceInterrupt() {
		return nil
	}

	if c.halted {
		// HALT blocks fetching until an enabled interrupt becomes pending.
		// With IME clear the interrupt is not serviced; execution just
		// resumes after the HALT.
		ic := c.Memory.Interrupts()
		if ic.IE()&ic.IF()&0x1F == 0 {
			return nil
		}
		c.halted = false
	}

	opcode := c.fetchByte()

	var instr Instruction
	if opcode == PrefixOpcode {
		instr = DecodePrefixed(c.fetchByte())
	} else {
		instr = Decode(opcode)
	}

	if instr.Op == OpUnused {
		return fmt.Errorf("%w: 0x%02X at 0x%04X", ErrUnknownOpcode, opcode, c.Registers.PC()-1)
	}

	return c.Execute(instr)
}

// fetchByte reads the byte at PC and advances PC past it.
func (c *CPU) fetchByte() uint8 {
	value := c.Memory.ReadByte(c.Registers.PC())
	c.Registers.IncPC(1)
	return value
}

// fetchWord reads a little-endian 16-bit immediate and advances PC past it.
func (c *CPU) fetchWord() uint16 {
	low := uint16(c.fetchByte())
	high := uint16(c.fetchByte())
	return high<<8 | low
}

// push decrements SP by 2, then writes the value there (low byte at SP).
func (c *CPU) push(value uint16) {
	c.Registers.DecSP(2)
	c.Memory.WriteWord(c.Registers.SP(), value)
}

// pop reads the 16-bit value at SP, then increments SP by 2.
func (c *CPU) pop() uint16 {
	value := c.Memory.ReadWord(c.Registers.SP())
	c.Registers.IncSP(2)
	return value
}

// readHL returns the byte addressed by HL.
func (c *CPU) readHL() uint8 {
	return c.Memory.ReadByte(c.Registers.Read16(RegHL))
}

// writeHL stores a byte at the address in HL.
func (c *CPU) writeHL(value uint8) {
	c.Memory.WriteByte(c.Registers.Read16(RegHL), value)
}

// serviceInterrupt dispatches the highest-priority enabled-and-pending
// interrupt: IME and the pending bit are cleared, PC is pushed, and control
// transfers to the service routine. Reports whether a dispatch happened.
func (c *CPU) serviceInterrupt() bool {
	if !c.IME {
		return false
	}

	addr, ok := c.Memory.Interrupts().ServiceFirstPending()
	if !ok {
		return false
	}

	c.IME = false
	c.halted = false
	c.push(c.Registers.PC())
	c.Registers.WritePC(addr)
	return true
}
