// Package memory implements the flat 64 KiB address space seen by the CPU.
//
// Two addresses are special: reads and writes of the IF (0xFF0F) and IE
// (0xFFFF) registers are forwarded to the interrupt controller, and a write to
// the serial control register (0xFF02) mirrors the serial data byte at 0xFF01
// to a host stream. Blargg's test ROMs send everything they print to the game
// link port, so the mirror is what lets results be observed without a display.
package memory

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/richardwooding/gbcore/internal/interrupts"
)

const (
	// memorySize is the full 16-bit address space.
	memorySize = 0x10000

	// serialData is the SB register (serial transfer data).
	serialData uint16 = 0xFF01
	// serialControl is the SC register (serial transfer control).
	serialControl uint16 = 0xFF02
)

// ErrROMTooLarge indicates a ROM image that does not fit the address space.
var ErrROMTooLarge = errors.New("ROM image exceeds 64 KiB address space")

// Memory is the flat byte-addressable memory backing the CPU, with the IE/IF
// registers forwarded to the interrupt controller.
type Memory struct {
	mem        [memorySize]uint8
	interrupts *interrupts.Controller
	serial     io.Writer
}

// New creates zeroed memory with a fresh interrupt controller. Serial output
// goes to stdout until overridden with SetSerialWriter.
func New() *Memory {
	return &Memory{
		interrupts: interrupts.NewController(),
		serial:     os.Stdout,
	}
}

// Interrupts returns the interrupt controller backing IE and IF.
func (m *Memory) Interrupts() *interrupts.Controller {
	return m.interrupts
}

// SetSerialWriter redirects the serial-port mirror.
func (m *Memory) SetSerialWriter(w io.Writer) {
	m.serial = w
}

// ReadByte reads the byte at addr. IF and IE reads return the materialised
// pending and enabled interrupt bitmaps.
func (m *Memory) ReadByte(addr uint16) uint8 {
	switch addr {
	case interrupts.PendingAddr:
		return m.interrupts.IF()
	case interrupts.EnabledAddr:
		return m.interrupts.IE()
	default:
		return m.mem[addr]
	}
}

// WriteByte writes value at addr. IF and IE writes update the interrupt
// bitmaps; a write to the serial control register emits the serial data byte
// to the host stream.
func (m *Memory) WriteByte(addr uint16, value uint8) {
	m.mem[addr] = value

	switch addr {
	case interrupts.PendingAddr:
		m.interrupts.SetPending(value)
	case interrupts.EnabledAddr:
		m.interrupts.SetEnabled(value)
	case serialControl:
		if _, err := m.serial.Write([]byte{m.mem[serialData]}); err != nil {
			// Host I/O failures never propagate into CPU state.
			log.Printf("serial mirror write failed: %v", err)
		}
	}
}

// ReadWord reads the little-endian 16-bit value at addr.
func (m *Memory) ReadWord(addr uint16) uint16 {
	low := uint16(m.ReadByte(addr))
	high := uint16(m.ReadByte(addr + 1))
	return high<<8 | low
}

// WriteWord writes a 16-bit value at addr, low byte first.
func (m *Memory) WriteWord(addr uint16, value uint16) {
	m.WriteByte(addr, uint8(value))
	m.WriteByte(addr+1, uint8(value>>8))
}

// LoadROM copies a ROM image into memory starting at address 0.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) > memorySize {
		return fmt.Errorf("%w: %d bytes", ErrROMTooLarge, len(rom))
	}
	copy(m.mem[:], rom)
	return nil
}
