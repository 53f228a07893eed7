package cpu

import "testing"

func TestADDHalfCarry(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x0F)
	c.Registers.Write(RegB, 0x01)

	if err := c.Execute(Decode(0x80)); err != nil { // ADD A, B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x10 {
		t.Errorf("A = %02X, want 0x10", got)
	}
	if f := c.Registers.Flags; f.Zero || f.Subtract || !f.HalfCarry || f.Carry {
		t.Errorf("flags = %+v, want H only", f)
	}
}

func TestADDHalfCarryEdges(t *testing.T) {
	tests := []struct {
		a, b  uint8
		wantH bool
	}{
		{0x0F, 0x01, true},
		{0x07, 0x08, false}, // 0x7 + 0x8 = 0xF: no carry out of bit 3
		{0x07, 0x07, false},
	}

	for _, tt := range tests {
		c, _ := setupCPU(t)
		c.Registers.Write(RegA, tt.a)
		c.Registers.Write(RegB, tt.b)

		if err := c.Execute(Decode(0x80)); err != nil {
			t.Fatal(err)
		}

		if c.Registers.Flags.HalfCarry != tt.wantH {
			t.Errorf("ADD %02X+%02X: H = %v, want %v", tt.a, tt.b, c.Registers.Flags.HalfCarry, tt.wantH)
		}
	}
}

func TestADDCarryAndZero(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0xFF)
	c.Registers.Write(RegB, 0x01)

	if err := c.Execute(Decode(0x80)); err != nil {
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x00 {
		t.Errorf("A = %02X, want 0x00", got)
	}
	if f := c.Registers.Flags; !f.Zero || f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("flags = %+v, want Z, H and C", f)
	}
}

func TestADC(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x0E)
	c.Registers.Write(RegB, 0x01)
	c.Registers.Flags.Carry = true

	if err := c.Execute(Decode(0x88)); err != nil { // ADC A, B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x10 {
		t.Errorf("A = %02X, want 0x10", got)
	}
	if !c.Registers.Flags.HalfCarry {
		t.Error("H should be set: carry-in pushed the low nibble over")
	}
}

func TestSUBBorrow(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x00)
	c.Registers.Write(RegB, 0x01)

	if err := c.Execute(Decode(0x90)); err != nil { // SUB B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0xFF {
		t.Errorf("A = %02X, want 0xFF", got)
	}
	if f := c.Registers.Flags; f.Zero || !f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("flags = %+v, want N, H and C", f)
	}
}

func TestSUBHalfCarryEdges(t *testing.T) {
	tests := []struct {
		a, b  uint8
		wantH bool
	}{
		{0x10, 0x01, true},
		{0x11, 0x01, false},
	}

	for _, tt := range tests {
		c, _ := setupCPU(t)
		c.Registers.Write(RegA, tt.a)
		c.Registers.Write(RegB, tt.b)

		if err := c.Execute(Decode(0x90)); err != nil {
			t.Fatal(err)
		}

		if c.Registers.Flags.HalfCarry != tt.wantH {
			t.Errorf("SUB %02X-%02X: H = %v, want %v", tt.a, tt.b, c.Registers.Flags.HalfCarry, tt.wantH)
		}
	}
}

func TestSBC(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x10)
	c.Registers.Write(RegB, 0x0F)
	c.Registers.Flags.Carry = true

	if err := c.Execute(Decode(0x98)); err != nil { // SBC A, B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x00 {
		t.Errorf("A = %02X, want 0x00", got)
	}
	if !c.Registers.Flags.Zero {
		t.Error("Z should be set")
	}
}

func TestCPKeepsA(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x42)
	c.Registers.Write(RegB, 0x42)

	if err := c.Execute(Decode(0xB8)); err != nil { // CP B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x42 {
		t.Errorf("A = %02X, want 0x42 (unchanged)", got)
	}
	if !c.Registers.Flags.Zero || !c.Registers.Flags.Subtract {
		t.Errorf("flags = %+v, want Z and N", c.Registers.Flags)
	}
}

func TestANDORXORFlags(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x5A)
	c.Registers.Write(RegB, 0x3F)

	if err := c.Execute(Decode(0xA0)); err != nil { // AND B
		t.Fatal(err)
	}
	if got := c.Registers.Read(RegA); got != 0x1A {
		t.Errorf("A = %02X, want 0x1A", got)
	}
	if f := c.Registers.Flags; f.Zero || f.Subtract || !f.HalfCarry || f.Carry {
		t.Errorf("AND flags = %+v, want H only", f)
	}

	if err := c.Execute(Decode(0xB0)); err != nil { // OR B
		t.Fatal(err)
	}
	if got := c.Registers.Read(RegA); got != 0x3F {
		t.Errorf("A = %02X, want 0x3F", got)
	}
	if f := c.Registers.Flags; f.Zero || f.Subtract || f.HalfCarry || f.Carry {
		t.Errorf("OR flags = %+v, want none", f)
	}

	if err := c.Execute(Decode(0xAF)); err != nil { // XOR A
		t.Fatal(err)
	}
	if got := c.Registers.Read(RegA); got != 0x00 {
		t.Errorf("A = %02X, want 0x00", got)
	}
	if f := c.Registers.Flags; !f.Zero || f.Subtract || f.HalfCarry || f.Carry {
		t.Errorf("XOR flags = %+v, want Z only", f)
	}
}

func TestINCDECLeaveCarry(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Flags.Carry = true
	c.Registers.Write(RegB, 0x0F)

	if err := c.Execute(Decode(0x04)); err != nil { // INC B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegB); got != 0x10 {
		t.Errorf("B = %02X, want 0x10", got)
	}
	if f := c.Registers.Flags; f.Zero || f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("INC flags = %+v, want H with C untouched", f)
	}

	c.Registers.Write(RegB, 0x01)
	if err := c.Execute(Decode(0x05)); err != nil { // DEC B
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegB); got != 0x00 {
		t.Errorf("B = %02X, want 0x00", got)
	}
	if f := c.Registers.Flags; !f.Zero || !f.Subtract || f.HalfCarry || !f.Carry {
		t.Errorf("DEC flags = %+v, want Z and N with C untouched", f)
	}
}

func TestINCDECMem(t *testing.T) {
	c, mem := setupCPU(t)
	c.Registers.Write16(RegHL, 0xC000)
	mem.WriteByte(0xC000, 0xFF)

	if err := c.Execute(Decode(0x34)); err != nil { // INC (HL)
		t.Fatal(err)
	}

	if got := mem.ReadByte(0xC000); got != 0x00 {
		t.Errorf("(HL) = %02X, want 0x00", got)
	}
	if !c.Registers.Flags.Zero || !c.Registers.Flags.HalfCarry {
		t.Errorf("flags = %+v, want Z and H", c.Registers.Flags)
	}

	if err := c.Execute(Decode(0x35)); err != nil { // DEC (HL)
		t.Fatal(err)
	}

	if got := mem.ReadByte(0xC000); got != 0xFF {
		t.Errorf("(HL) = %02X, want 0xFF", got)
	}
}

func TestADDHL16(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Flags.Zero = true // must survive
	c.Registers.Write16(RegHL, 0x0FFF)
	c.Registers.Write16(RegBC, 0x0001)

	if err := c.Execute(Decode(0x09)); err != nil { // ADD HL, BC
		t.Fatal(err)
	}

	if got := c.Registers.Read16(RegHL); got != 0x1000 {
		t.Errorf("HL = %04X, want 0x1000", got)
	}
	if f := c.Registers.Flags; !f.Zero || f.Subtract || !f.HalfCarry || f.Carry {
		t.Errorf("flags = %+v, want Z preserved, H set", f)
	}
}

func TestADDHLCarry16(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write16(RegHL, 0x8000)
	c.Registers.Write16(RegDE, 0x8000)

	if err := c.Execute(Decode(0x19)); err != nil { // ADD HL, DE
		t.Fatal(err)
	}

	if got := c.Registers.Read16(RegHL); got != 0x0000 {
		t.Errorf("HL = %04X, want 0x0000", got)
	}
	if !c.Registers.Flags.Carry || c.Registers.Flags.HalfCarry {
		t.Errorf("flags = %+v, want C without H", c.Registers.Flags)
	}
}

func TestADDHLSP(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write16(RegHL, 0x0001)
	c.Registers.WriteSP(0x0002)

	if err := c.Execute(Decode(0x39)); err != nil { // ADD HL, SP
		t.Fatal(err)
	}

	if got := c.Registers.Read16(RegHL); got != 0x0003 {
		t.Errorf("HL = %04X, want 0x0003", got)
	}
}

func TestINC16DEC16LeaveFlags(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.WriteFlags(true, true, true, true)
	c.Registers.Write16(RegBC, 0xFFFF)

	if err := c.Execute(Decode(0x03)); err != nil { // INC BC
		t.Fatal(err)
	}

	if got := c.Registers.Read16(RegBC); got != 0x0000 {
		t.Errorf("BC = %04X, want 0x0000", got)
	}
	if f := c.Registers.Flags; !f.Zero || !f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("flags = %+v, want all untouched", f)
	}

	if err := c.Execute(Decode(0x0B)); err != nil { // DEC BC
		t.Fatal(err)
	}

	if got := c.Registers.Read16(RegBC); got != 0xFFFF {
		t.Errorf("BC = %04X, want 0xFFFF", got)
	}
}

func TestADDSPOffsetNegative(t *testing.T) {
	c, mem := setupCPU(t)
	c.Registers.WriteSP(0x8000)
	mem.WriteByte(0x0100, 0xE8) // ADD SP, r8
	mem.WriteByte(0x0101, 0xFF) // -1

	mustStep(t, c)

	if got := c.Registers.SP(); got != 0x7FFF {
		t.Errorf("SP = %04X, want 0x7FFF", got)
	}
	// No carry out of bits 3 or 7 of the low-byte addition 0x00 + 0xFF.
	if f := c.Registers.Flags; f.Zero || f.Subtract || f.HalfCarry || f.Carry {
		t.Errorf("flags = %+v, want none", f)
	}
}

func TestADDSPOffsetCarries(t *testing.T) {
	c, mem := setupCPU(t)
	c.Registers.WriteSP(0x0001)
	mem.WriteByte(0x0100, 0xE8) // ADD SP, r8
	mem.WriteByte(0x0101, 0xFF) // -1

	mustStep(t, c)

	if got := c.Registers.SP(); got != 0x0000 {
		t.Errorf("SP = %04X, want 0x0000", got)
	}
	// 0x01 + 0xFF carries out of both bit 3 and bit 7.
	if f := c.Registers.Flags; f.Zero || f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("flags = %+v, want H and C", f)
	}
}

func TestCPLSCFCCF(t *testing.T) {
	c, _ := setupCPU(t)
	c.Registers.Write(RegA, 0x35)
	c.Registers.Flags.Zero = true

	if err := c.Execute(Decode(0x2F)); err != nil { // CPL
		t.Fatal(err)
	}
	if got := c.Registers.Read(RegA); got != 0xCA {
		t.Errorf("A = %02X, want 0xCA", got)
	}
	if f := c.Registers.Flags; !f.Zero || !f.Subtract || !f.HalfCarry {
		t.Errorf("CPL flags = %+v, want N and H set, Z preserved", f)
	}

	if err := c.Execute(Decode(0x37)); err != nil { // SCF
		t.Fatal(err)
	}
	if f := c.Registers.Flags; !f.Zero || f.Subtract || f.HalfCarry || !f.Carry {
		t.Errorf("SCF flags = %+v, want C set, Z preserved", f)
	}

	if err := c.Execute(Decode(0x3F)); err != nil { // CCF
		t.Fatal(err)
	}
	if c.Registers.Flags.Carry {
		t.Error("CCF should complement C to false")
	}

	if err := c.Execute(Decode(0x3F)); err != nil {
		t.Fatal(err)
	}
	if !c.Registers.Flags.Carry {
		t.Error("CCF should complement C back to true")
	}
}

func TestDAA(t *testing.T) {
	tests := []struct {
		name  string
		a     uint8
		flags Flags
		want  uint8
		wantZ bool
		wantC bool
		wantN bool
	}{
		// After addition (N clear)
		{"no adjust", 0x11, Flags{}, 0x11, false, false, false},
		{"H set adds 6", 0x12, Flags{HalfCarry: true}, 0x18, false, false, false},
		{"low nibble above 9 adds 6", 0x1A, Flags{}, 0x20, false, false, false},
		{"0x15+0x27 binary sum adjusts to 0x42", 0x3C, Flags{HalfCarry: true}, 0x42, false, false, false},
		{"above 0x99 adds 0x60", 0xA3, Flags{}, 0x03, false, true, false},
		{"C set adds 0x60", 0x32, Flags{Carry: true}, 0x92, false, true, false},
		{"C and H set add 0x66", 0x32, Flags{Carry: true, HalfCarry: true}, 0x98, false, true, false},
		{"adjust wraps to zero", 0x9A, Flags{Carry: true}, 0x00, true, true, false},

		// After subtraction (N set)
		{"sub no adjust", 0x3E, Flags{Subtract: true}, 0x3E, false, false, true},
		{"sub H set subtracts 6", 0x37, Flags{Subtract: true, HalfCarry: true}, 0x31, false, false, true},
		{"sub C set subtracts 0x60", 0x37, Flags{Subtract: true, Carry: true}, 0xD7, false, true, true},
		{"sub C and H subtract 0x66", 0x37, Flags{Subtract: true, Carry: true, HalfCarry: true}, 0xD1, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := setupCPU(t)
			c.Registers.Write(RegA, tt.a)
			c.Registers.Flags = tt.flags

			if err := c.Execute(Decode(0x27)); err != nil { // DAA
				t.Fatal(err)
			}

			if got := c.Registers.Read(RegA); got != tt.want {
				t.Errorf("A = %02X, want %02X", got, tt.want)
			}
			f := c.Registers.Flags
			if f.Zero != tt.wantZ {
				t.Errorf("Z = %v, want %v", f.Zero, tt.wantZ)
			}
			if f.HalfCarry {
				t.Error("H should always be cleared")
			}
			if f.Carry != tt.wantC {
				t.Errorf("C = %v, want %v", f.Carry, tt.wantC)
			}
			if f.Subtract != tt.wantN {
				t.Errorf("N = %v, want %v (preserved)", f.Subtract, tt.wantN)
			}
		})
	}
}

func TestALUImmediates(t *testing.T) {
	c, mem := setupCPU(t)
	c.Registers.Write(RegA, 0x3A)
	mem.WriteByte(0x0100, 0xC6) // ADD A, d8
	mem.WriteByte(0x0101, 0x0C)

	mustStep(t, c)

	if got := c.Registers.Read(RegA); got != 0x46 {
		t.Errorf("A = %02X, want 0x46", got)
	}
	if !c.Registers.Flags.HalfCarry {
		t.Error("H should be set (0xA + 0xC)")
	}
	if c.Registers.PC() != 0x0102 {
		t.Errorf("PC = %04X, want 0x0102", c.Registers.PC())
	}
}

func TestALUMemOperands(t *testing.T) {
	c, mem := setupCPU(t)
	c.Registers.Write(RegA, 0x10)
	c.Registers.Write16(RegHL, 0xC000)
	mem.WriteByte(0xC000, 0x06)

	if err := c.Execute(Decode(0x96)); err != nil { // SUB (HL)
		t.Fatal(err)
	}

	if got := c.Registers.Read(RegA); got != 0x0A {
		t.Errorf("A = %02X, want 0x0A", got)
	}
}
