// Package interrupts implements the Game Boy interrupt controller: the IE and
// IF bitmaps and the fixed-priority pending query used by the CPU.
package interrupts

// Kind identifies one of the five interrupt sources. The declaration order is
// the service priority order (V-Blank highest).
type Kind uint8

// Interrupt sources, highest priority first.
const (
	VBlank Kind = iota
	LCDStat
	Timer
	Serial
	Joypad

	kindCount
)

// Memory-mapped register addresses.
const (
	// PendingAddr is the IF register (pending interrupts).
	PendingAddr uint16 = 0xFF0F
	// EnabledAddr is the IE register (enabled interrupts).
	EnabledAddr uint16 = 0xFFFF
)

// isrAddresses maps each kind to its fixed service routine entry point.
var isrAddresses = [kindCount]uint16{
	0x0040, // V-Blank
	0x0048, // LCD STAT
	0x0050, // Timer
	0x0058, // Serial
	0x0060, // Joypad
}

// String returns the conventional name of the interrupt source.
func (k Kind) String() string {
	switch k {
	case VBlank:
		return "VBLANK"
	case LCDStat:
		return "LCD-STAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	default:
		return "UNKNOWN"
	}
}

// ISRAddress returns the service routine address for the kind.
func ISRAddress(kind Kind) uint16 {
	return isrAddresses[kind]
}

// Controller holds the enabled (IE) and pending (IF) interrupt bitmaps.
// The IME master switch is not here: it belongs to the CPU and is never
// touched by memory-mapped writes.
type Controller struct {
	enabled [kindCount]bool
	pending [kindCount]bool
}

// NewController creates a controller with all interrupts disabled and none
// pending.
func NewController() *Controller {
	return &Controller{}
}

// Enabled reports whether the kind is enabled in IE.
func (c *Controller) Enabled(kind Kind) bool {
	return c.enabled[kind]
}

// Pending reports whether the kind is pending in IF.
func (c *Controller) Pending(kind Kind) bool {
	return c.pending[kind]
}

// Request marks the kind pending, as a peripheral raising the interrupt line
// would.
func (c *Controller) Request(kind Kind) {
	c.pending[kind] = true
}

// SetEnabled decomposes a byte written to IE into the enabled bitmap.
func (c *Controller) SetEnabled(value uint8) {
	for kind := Kind(0); kind < kindCount; kind++ {
		c.enabled[kind] = value&(1<<kind) != 0
	}
}

// SetPending decomposes a byte written to IF into the pending bitmap.
func (c *Controller) SetPending(value uint8) {
	for kind := Kind(0); kind < kindCount; kind++ {
		c.pending[kind] = value&(1<<kind) != 0
	}
}

// IE materialises the enabled bitmap into the byte read from 0xFFFF.
func (c *Controller) IE() uint8 {
	return materialise(&c.enabled)
}

// IF materialises the pending bitmap into the byte read from 0xFF0F.
func (c *Controller) IF() uint8 {
	return materialise(&c.pending)
}

// ServiceFirstPending finds the highest-priority kind that is both enabled
// and pending, clears its pending bit, and returns its service routine
// address. The second result is false when nothing is serviceable.
func (c *Controller) ServiceFirstPending() (uint16, bool) {
	for kind := Kind(0); kind < kindCount; kind++ {
		if c.enabled[kind] && c.pending[kind] {
			c.pending[kind] = false
			return isrAddresses[kind], true
		}
	}
	return 0, false
}

func materialise(bits *[kindCount]bool) uint8 {
	var value uint8
	for kind := Kind(0); kind < kindCount; kind++ {
		if bits[kind] {
			value |= 1 << kind
		}
	}
	return value
}
