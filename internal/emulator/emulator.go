// Package emulator wires the CPU to flat memory and drives execution,
// capturing the serial-port mirror that test ROMs use to report results.
package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/richardwooding/gbcore/internal/cpu"
	"github.com/richardwooding/gbcore/internal/memory"
)

const (
	// instructionsPerIteration is how many instructions run between output
	// checks in RunUntilOutput.
	instructionsPerIteration = 10000

	// maxSerialBufferSize bounds the captured serial output.
	maxSerialBufferSize = 64 * 1024

	// stableOutputDuration is how long output must stay unchanged before a
	// ROM without completion markers is considered done.
	stableOutputDuration = 3 * time.Second
)

// ErrTimeout indicates no serial output arrived before the deadline.
var ErrTimeout = errors.New("timeout waiting for serial output")

// Test ROM completion markers.
var (
	passedBytes = []byte("Passed")
	failedBytes = []byte("Failed")
)

// Emulator is a headless machine instance: CPU, memory, and the captured
// serial stream.
type Emulator struct {
	CPU    *cpu.CPU
	Memory *memory.Memory

	serial boundedBuffer
}

// New creates an emulator with the ROM loaded and the CPU in the post-boot
// state, the way a cartridge takes over from the boot ROM.
func New(rom []byte) (*Emulator, error) {
	e := &Emulator{}
	e.serial.limit = maxSerialBufferSize

	mem := memory.New()
	if err := mem.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("failed to load ROM into memory: %w", err)
	}
	mem.SetSerialWriter(&e.serial)

	e.Memory = mem
	e.CPU = cpu.NewAt0x100(mem)

	return e, nil
}

// Echo additionally mirrors serial output to w as it arrives.
func (e *Emulator) Echo(w io.Writer) {
	e.Memory.SetSerialWriter(io.MultiWriter(&e.serial, w))
}

// Step executes one instruction or one interrupt dispatch.
func (e *Emulator) Step() error {
	return e.CPU.Step()
}

// RunInstructions executes up to n instructions, stopping on the first
// execution error.
func (e *Emulator) RunInstructions(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if err := e.CPU.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SerialOutput returns everything mirrored to the serial port so far.
func (e *Emulator) SerialOutput() string {
	return e.serial.String()
}

// RunUntilOutput runs until the serial stream carries a Blargg completion
// marker ("Passed" or "Failed"), the output goes stable, or the deadline
// passes. Whatever output accumulated is returned alongside the error.
func (e *Emulator) RunUntilOutput(timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	lastLen := 0
	lastChange := time.Now()

	for {
		if time.Now().After(deadline) {
			if e.serial.Len() > 0 {
				return e.SerialOutput(), nil
			}
			return "", ErrTimeout
		}

		if err := e.RunInstructions(instructionsPerIteration); err != nil {
			return e.SerialOutput(), err
		}

		if e.serial.Len() > lastLen {
			lastLen = e.serial.Len()
			lastChange = time.Now()

			if bytes.Contains(e.serial.Bytes(), passedBytes) || bytes.Contains(e.serial.Bytes(), failedBytes) {
				return e.SerialOutput(), nil
			}
		}

		// ROMs that print continuously without a marker settle here.
		if e.serial.Len() > 0 && time.Since(lastChange) > stableOutputDuration {
			return e.SerialOutput(), nil
		}
	}
}

// boundedBuffer collects serial bytes up to a limit; further writes are
// swallowed so a looping ROM cannot grow the capture without bound.
type boundedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len() < b.limit {
		b.buf.Write(p)
	}
	return len(p), nil
}

func (b *boundedBuffer) Len() int       { return b.buf.Len() }
func (b *boundedBuffer) Bytes() []byte  { return b.buf.Bytes() }
func (b *boundedBuffer) String() string { return b.buf.String() }
