// Package cartridge parses the Game Boy cartridge header (0x0100-0x014F).
// Bank-switching hardware is not modelled; the header is read for the info
// surface only, and loading a ROM into flat memory does not consult it.
package cartridge

import (
	"bytes"
	"errors"
	"fmt"
)

// headerEnd is the first byte past the cartridge header.
const headerEnd = 0x0150

// ErrROMTooSmall indicates a ROM image too short to contain a header.
var ErrROMTooSmall = errors.New("ROM image too small for cartridge header")

// Type is the cartridge hardware byte at 0x0147.
type Type byte

// Cartridge hardware types relevant to test ROMs and common games. Anything
// else renders through the UNKNOWN case.
const (
	TypeROMOnly        Type = 0x00
	TypeMBC1           Type = 0x01
	TypeMBC1RAM        Type = 0x02
	TypeMBC1RAMBattery Type = 0x03
	TypeMBC2           Type = 0x05
	TypeMBC3           Type = 0x11
	TypeMBC3RAM        Type = 0x12
	TypeMBC3RAMBattery Type = 0x13
	TypeMBC5           Type = 0x19
)

// String returns a human-readable name for the cartridge type.
func (t Type) String() string {
	switch t {
	case TypeROMOnly:
		return "ROM ONLY"
	case TypeMBC1:
		return "MBC1"
	case TypeMBC1RAM:
		return "MBC1+RAM"
	case TypeMBC1RAMBattery:
		return "MBC1+RAM+BATTERY"
	case TypeMBC2:
		return "MBC2"
	case TypeMBC3:
		return "MBC3"
	case TypeMBC3RAM:
		return "MBC3+RAM"
	case TypeMBC3RAMBattery:
		return "MBC3+RAM+BATTERY"
	case TypeMBC5:
		return "MBC5"
	default:
		return fmt.Sprintf("UNKNOWN (0x%02X)", byte(t))
	}
}

// Header holds the fields of the cartridge header the emulator cares about.
type Header struct {
	title    [16]byte
	CGBFlag  byte
	SGBFlag  byte
	Type     Type
	ROMSize  byte // size code at 0x0148
	RAMSize  byte // size code at 0x0149
	Checksum byte // header checksum at 0x014D

	rom []byte
}

// ParseHeader reads the cartridge header out of a ROM image.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}

	h := &Header{
		CGBFlag:  rom[0x0143],
		SGBFlag:  rom[0x0146],
		Type:     Type(rom[0x0147]),
		ROMSize:  rom[0x0148],
		RAMSize:  rom[0x0149],
		Checksum: rom[0x014D],
		rom:      rom,
	}
	copy(h.title[:], rom[0x0134:0x0144])

	return h, nil
}

// Title returns the cartridge title, trimmed of padding.
func (h *Header) Title() string {
	title := h.title[:]
	if i := bytes.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}
	return string(bytes.TrimRight(title, " "))
}

// ROMSizeBytes returns the declared ROM size. Size codes above 0x08 are not
// defined and report zero.
func (h *Header) ROMSizeBytes() int {
	if h.ROMSize > 0x08 {
		return 0
	}
	// 32 KiB shifted by the size code, in 16 KiB banks.
	return (2 << h.ROMSize) * 0x4000
}

// RAMSizeBytes returns the declared external RAM size.
func (h *Header) RAMSizeBytes() int {
	switch h.RAMSize {
	case 0x02:
		return 0x2000
	case 0x03:
		return 4 * 0x2000
	case 0x04:
		return 16 * 0x2000
	case 0x05:
		return 8 * 0x2000
	default:
		return 0
	}
}

// VerifyChecksum recomputes the header checksum over 0x0134-0x014C and
// compares it with the stored byte. Real hardware refuses to boot on a
// mismatch.
func (h *Header) VerifyChecksum() bool {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - h.rom[addr] - 1
	}
	return sum == h.Checksum
}
