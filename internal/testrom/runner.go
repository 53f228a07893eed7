// Package testrom runs Blargg-style test ROMs and interprets their serial
// output as a pass/fail verdict.
package testrom

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/richardwooding/gbcore/internal/emulator"
	"github.com/richardwooding/gbcore/internal/romfile"
)

// Result is the outcome of one test-ROM run.
type Result struct {
	Output   string
	Checksum uint64 // fingerprint of the output, for comparing runs
	Passed   bool
	Failed   bool
	Timeout  bool
	Error    error
}

// Run loads and executes a test ROM, waiting up to timeout for its verdict.
func Run(romPath string, timeout time.Duration) *Result {
	result := &Result{}

	data, err := romfile.Load(romPath)
	if err != nil {
		result.Error = err
		return result
	}

	emu, err := emulator.New(data)
	if err != nil {
		result.Error = fmt.Errorf("failed to create emulator: %w", err)
		return result
	}

	output, err := emu.RunUntilOutput(timeout)
	result.Output = output
	result.Checksum = romfile.Fingerprint([]byte(output))

	if err != nil {
		if errors.Is(err, emulator.ErrTimeout) {
			result.Timeout = true
		}
		result.Error = err
		return result
	}

	// "Failed" wins if a ROM somehow prints both.
	result.Failed = strings.Contains(output, "Failed")
	result.Passed = strings.Contains(output, "Passed") && !result.Failed

	return result
}

// String renders the verdict.
func (r *Result) String() string {
	switch {
	case r.Error != nil && !r.Timeout:
		return fmt.Sprintf("ERROR: %v", r.Error)
	case r.Timeout:
		return "TIMEOUT"
	case r.Passed:
		return "PASSED"
	case r.Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess reports whether the ROM passed cleanly.
func (r *Result) IsSuccess() bool {
	return r.Passed && !r.Failed && r.Error == nil
}
