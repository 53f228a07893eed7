package cpu

// conditionMet evaluates a jump condition against the flags.
func (c *CPU) conditionMet(cond Condition) bool {
	switch cond {
	case CondAlways:
		return true
	case CondZ:
		return c.Registers.Flags.Zero
	case CondNZ:
		return !c.Registers.Flags.Zero
	case CondC:
		return c.Registers.Flags.Carry
	case CondNC:
		return !c.Registers.Flags.Carry
	default:
		return false
	}
}

// jp fetches a 16-bit target and jumps to it when the condition holds. The
// immediate is consumed either way.
func (c *CPU) jp(cond Condition) {
	addr := c.fetchWord()
	if c.conditionMet(cond) {
		c.Registers.WritePC(addr)
	}
}

// jr fetches a signed 8-bit offset and jumps relative to the address after
// the offset byte. The offset is sign-extended before widening so that
// negative offsets jump backwards.
func (c *CPU) jr(cond Condition) {
	offset := int8(c.fetchByte())
	if c.conditionMet(cond) {
		c.Registers.WritePC(uint16(int32(c.Registers.PC()) + int32(offset)))
	}
}

// call fetches a 16-bit target; when the condition holds the address of the
// next instruction is pushed and control transfers to the target.
func (c *CPU) call(cond Condition) {
	addr := c.fetchWord()
	if c.conditionMet(cond) {
		c.push(c.Registers.PC())
		c.Registers.WritePC(addr)
	}
}

// ret pops the return address into PC when the condition holds.
func (c *CPU) ret(cond Condition) {
	if c.conditionMet(cond) {
		c.Registers.WritePC(c.pop())
	}
}
