package cpu

// ioPortsBegin is the base of the memory-mapped I/O port region; the LDH
// forms address relative to it.
const ioPortsBegin uint16 = 0xFF00

// The post-increment/decrement HL loads are single fused instructions: the
// transfer happens first, then HL is adjusted (wrapping).

func (c *CPU) ldAHLI() {
	c.Registers.Write(RegA, c.readHL())
	c.Registers.Write16(RegHL, c.Registers.Read16(RegHL)+1)
}

func (c *CPU) ldAHLD() {
	c.Registers.Write(RegA, c.readHL())
	c.Registers.Write16(RegHL, c.Registers.Read16(RegHL)-1)
}

func (c *CPU) ldHLIA() {
	c.writeHL(c.Registers.Read(RegA))
	c.Registers.Write16(RegHL, c.Registers.Read16(RegHL)+1)
}

func (c *CPU) ldHLDA() {
	c.writeHL(c.Registers.Read(RegA))
	c.Registers.Write16(RegHL, c.Registers.Read16(RegHL)-1)
}

// ldhRAddr loads dst from the I/O port selected by the src register
// (canonically LD A,(C): address 0xFF00+C).
func (c *CPU) ldhRAddr(dst, src Reg8) {
	addr := ioPortsBegin + uint16(c.Registers.Read(src))
	c.Registers.Write(dst, c.Memory.ReadByte(addr))
}

// ldhAddrR stores src at the I/O port selected by the dst register
// (canonically LD (C),A: address 0xFF00+C).
func (c *CPU) ldhAddrR(dst, src Reg8) {
	addr := ioPortsBegin + uint16(c.Registers.Read(dst))
	c.Memory.WriteByte(addr, c.Registers.Read(src))
}
