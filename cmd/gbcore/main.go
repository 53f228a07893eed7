// Package main provides the gbcore CLI: a headless Sharp LR35902 emulator
// core with serial output as its only display.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/richardwooding/gbcore/internal/cartridge"
	"github.com/richardwooding/gbcore/internal/emulator"
	"github.com/richardwooding/gbcore/internal/romfile"
	"github.com/richardwooding/gbcore/internal/testrom"
)

// ErrTestFailed indicates a test ROM did not pass.
var ErrTestFailed = errors.New("test failed")

// CLI is the command-line interface structure.
type CLI struct {
	Info InfoCmd `cmd:"" help:"Display cartridge information."`
	Run  RunCmd  `cmd:"" help:"Run a ROM headless, mirroring serial output to stdout."`
	Test TestCmd `cmd:"" help:"Run a test ROM and report results."`
}

// InfoCmd displays cartridge header information.
type InfoCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to ROM file (.gb, .gz, .zip or .7z)."`
}

// Run executes the info command.
func (c *InfoCmd) Run() error {
	data, err := romfile.Load(c.ROM)
	if err != nil {
		return err
	}

	header, err := cartridge.ParseHeader(data)
	if err != nil {
		return fmt.Errorf("failed to parse cartridge header: %w", err)
	}

	fmt.Printf("ROM Information:\n")
	fmt.Printf("  Title:          %s\n", header.Title())
	fmt.Printf("  Cartridge Type: %s\n", header.Type)
	fmt.Printf("  ROM Size:       %d KiB\n", header.ROMSizeBytes()/1024)
	fmt.Printf("  RAM Size:       %d KiB\n", header.RAMSizeBytes()/1024)
	fmt.Printf("  CGB Flag:       0x%02X\n", header.CGBFlag)
	fmt.Printf("  SGB Flag:       0x%02X\n", header.SGBFlag)
	fmt.Printf("  Checksum OK:    %v\n", header.VerifyChecksum())
	fmt.Printf("  Fingerprint:    %016x\n", romfile.Fingerprint(data))

	return nil
}

// RunCmd runs a ROM headless.
type RunCmd struct {
	ROM             string `arg:"" type:"existingfile" help:"Path to ROM file."`
	MaxInstructions uint64 `help:"Stop after this many instructions (0 = run until error)." default:"0"`
}

// Run executes the run command.
func (c *RunCmd) Run() error {
	data, err := romfile.Load(c.ROM)
	if err != nil {
		return err
	}

	emu, err := emulator.New(data)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}
	emu.Echo(os.Stdout)

	if c.MaxInstructions > 0 {
		return emu.RunInstructions(c.MaxInstructions)
	}

	for {
		if err := emu.Step(); err != nil {
			return err
		}
	}
}

// TestCmd runs a test ROM and reports results.
type TestCmd struct {
	ROM     string `arg:"" type:"existingfile" help:"Path to test ROM file."`
	Timeout int    `default:"30" help:"Timeout in seconds."`
	Verbose bool   `short:"v" help:"Show detailed output."`
}

// Run executes the test command.
func (c *TestCmd) Run() error {
	fmt.Printf("Running test ROM: %s\n", c.ROM)

	result := testrom.Run(c.ROM, time.Duration(c.Timeout)*time.Second)

	fmt.Printf("Result: %s\n", result.String())

	if c.Verbose || !result.IsSuccess() {
		fmt.Printf("\nOutput:\n%s\n", result.Output)
	}

	if !result.IsSuccess() {
		return ErrTestFailed
	}

	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gbcore"),
		kong.Description("A headless Game Boy (DMG) CPU emulator written in Go."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
