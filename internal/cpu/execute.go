package cpu

// Execute runs one pre-decoded instruction. Step is the normal entry point;
// Execute is exported so a decoded instruction can be driven directly.
func (c *CPU) Execute(instr Instruction) error {
	switch instr.Op {
	// 8-bit arithmetic and logic
	case OpAdd:
		c.add8(c.Registers.Read(instr.Src), false)
	case OpAddMem:
		c.add8(c.readHL(), false)
	case OpAddImm:
		c.add8(c.fetchByte(), false)
	case OpAdc:
		c.add8(c.Registers.Read(instr.Src), true)
	case OpAdcMem:
		c.add8(c.readHL(), true)
	case OpAdcImm:
		c.add8(c.fetchByte(), true)
	case OpSub:
		c.Registers.Write(RegA, c.sub8(c.Registers.Read(instr.Src), false))
	case OpSubMem:
		c.Registers.Write(RegA, c.sub8(c.readHL(), false))
	case OpSubImm:
		c.Registers.Write(RegA, c.sub8(c.fetchByte(), false))
	case OpSbc:
		c.Registers.Write(RegA, c.sub8(c.Registers.Read(instr.Src), true))
	case OpSbcMem:
		c.Registers.Write(RegA, c.sub8(c.readHL(), true))
	case OpSbcImm:
		c.Registers.Write(RegA, c.sub8(c.fetchByte(), true))
	case OpAnd:
		c.and(c.Registers.Read(instr.Src))
	case OpAndMem:
		c.and(c.readHL())
	case OpAndImm:
		c.and(c.fetchByte())
	case OpXor:
		c.xor(c.Registers.Read(instr.Src))
	case OpXorMem:
		c.xor(c.readHL())
	case OpXorImm:
		c.xor(c.fetchByte())
	case OpOr:
		c.or(c.Registers.Read(instr.Src))
	case OpOrMem:
		c.or(c.readHL())
	case OpOrImm:
		c.or(c.fetchByte())
	case OpCp:
		c.sub8(c.Registers.Read(instr.Src), false)
	case OpCpMem:
		c.sub8(c.readHL(), false)
	case OpCpImm:
		c.sub8(c.fetchByte(), false)
	case OpInc:
		c.Registers.Write(instr.Dst, c.inc8(c.Registers.Read(instr.Dst)))
	case OpIncMem:
		c.writeHL(c.inc8(c.readHL()))
	case OpDec:
		c.Registers.Write(instr.Dst, c.dec8(c.Registers.Read(instr.Dst)))
	case OpDecMem:
		c.writeHL(c.dec8(c.readHL()))
	case OpCpl:
		c.cpl()
	case OpDaa:
		c.daa()
	case OpScf:
		c.scf()
	case OpCcf:
		c.ccf()

	// 16-bit arithmetic
	case OpAdd16:
		c.addHL(c.Registers.Read16(instr.Pair))
	case OpAddHLSP:
		c.addHL(c.Registers.SP())
	case OpInc16:
		c.Registers.Write16(instr.Pair, c.Registers.Read16(instr.Pair)+1)
	case OpDec16:
		c.Registers.Write16(instr.Pair, c.Registers.Read16(instr.Pair)-1)
	case OpIncSP:
		c.Registers.IncSP(1)
	case OpDecSP:
		c.Registers.DecSP(1)
	case OpAddSPOffset:
		c.Registers.WriteSP(c.spPlusOffset(c.fetchByte()))

	// Rotates and shifts
	case OpRlca:
		c.Registers.Write(RegA, c.rlc(c.Registers.Read(RegA)))
		c.Registers.Flags.Zero = false
	case OpRrca:
		c.Registers.Write(RegA, c.rrc(c.Registers.Read(RegA)))
		c.Registers.Flags.Zero = false
	case OpRla:
		c.Registers.Write(RegA, c.rl(c.Registers.Read(RegA)))
		c.Registers.Flags.Zero = false
	case OpRra:
		c.Registers.Write(RegA, c.rr(c.Registers.Read(RegA)))
		c.Registers.Flags.Zero = false
	case OpRlc:
		c.Registers.Write(instr.Dst, c.rlc(c.Registers.Read(instr.Dst)))
	case OpRlcMem:
		c.writeHL(c.rlc(c.readHL()))
	case OpRrc:
		c.Registers.Write(instr.Dst, c.rrc(c.Registers.Read(instr.Dst)))
	case OpRrcMem:
		c.writeHL(c.rrc(c.readHL()))
	case OpRl:
		c.Registers.Write(instr.Dst, c.rl(c.Registers.Read(instr.Dst)))
	case OpRlMem:
		c.writeHL(c.rl(c.readHL()))
	case OpRr:
		c.Registers.Write(instr.Dst, c.rr(c.Registers.Read(instr.Dst)))
	case OpRrMem:
		c.writeHL(c.rr(c.readHL()))
	case OpSla:
		c.Registers.Write(instr.Dst, c.sla(c.Registers.Read(instr.Dst)))
	case OpSlaMem:
		c.writeHL(c.sla(c.readHL()))
	case OpSra:
		c.Registers.Write(instr.Dst, c.sra(c.Registers.Read(instr.Dst)))
	case OpSraMem:
		c.writeHL(c.sra(c.readHL()))
	case OpSrl:
		c.Registers.Write(instr.Dst, c.srl(c.Registers.Read(instr.Dst)))
	case OpSrlMem:
		c.writeHL(c.srl(c.readHL()))
	case OpSwap:
		c.Registers.Write(instr.Dst, c.swap(c.Registers.Read(instr.Dst)))
	case OpSwapMem:
		c.writeHL(c.swap(c.readHL()))

	// Bit operations
	case OpBit:
		c.bit(c.Registers.Read(instr.Dst), instr.Bit)
	case OpBitMem:
		c.bit(c.readHL(), instr.Bit)
	case OpRes:
		c.Registers.Write(instr.Dst, c.Registers.Read(instr.Dst)&^(1<<instr.Bit))
	case OpResMem:
		c.writeHL(c.readHL() &^ (1 << instr.Bit))
	case OpSet:
		c.Registers.Write(instr.Dst, c.Registers.Read(instr.Dst)|1<<instr.Bit)
	case OpSetMem:
		c.writeHL(c.readHL() | 1<<instr.Bit)

	// 8-bit loads
	case OpLdRR:
		c.Registers.Write(instr.Dst, c.Registers.Read(instr.Src))
	case OpLdRImm:
		c.Registers.Write(instr.Dst, c.fetchByte())
	case OpLdMemImm:
		c.writeHL(c.fetchByte())
	case OpLdRMem:
		c.Registers.Write(instr.Dst, c.readHL())
	case OpLdMemR:
		c.writeHL(c.Registers.Read(instr.Src))
	case OpLdRPair:
		c.Registers.Write(instr.Dst, c.Memory.ReadByte(c.Registers.Read16(instr.Pair)))
	case OpLdPairR:
		c.Memory.WriteByte(c.Registers.Read16(instr.Pair), c.Registers.Read(instr.Src))
	case OpLdAHLI:
		c.ldAHLI()
	case OpLdAHLD:
		c.ldAHLD()
	case OpLdHLIA:
		c.ldHLIA()
	case OpLdHLDA:
		c.ldHLDA()
	case OpLdhRAddr:
		c.ldhRAddr(instr.Dst, instr.Src)
	case OpLdhAddrR:
		c.ldhAddrR(instr.Dst, instr.Src)
	case OpLdhImmA:
		c.Memory.WriteByte(ioPortsBegin+uint16(c.fetchByte()), c.Registers.Read(RegA))
	case OpLdhAImm:
		c.Registers.Write(RegA, c.Memory.ReadByte(ioPortsBegin+uint16(c.fetchByte())))
	case OpLdAbsA:
		c.Memory.WriteByte(c.fetchWord(), c.Registers.Read(RegA))
	case OpLdAAbs:
		c.Registers.Write(RegA, c.Memory.ReadByte(c.fetchWord()))

	// 16-bit loads and stack
	case OpLdPairImm:
		c.Registers.Write16(instr.Pair, c.fetchWord())
	case OpLdSPImm:
		c.Registers.WriteSP(c.fetchWord())
	case OpLdAbsSP:
		c.Memory.WriteWord(c.fetchWord(), c.Registers.SP())
	case OpLdSPHL:
		c.Registers.WriteSP(c.Registers.Read16(RegHL))
	case OpLdHLSPOffset:
		c.Registers.Write16(RegHL, c.spPlusOffset(c.fetchByte()))
	case OpPush:
		c.push(c.Registers.Read16(instr.Pair))
	case OpPop:
		c.Registers.Write16(instr.Pair, c.pop())

	// Jumps
	case OpJp:
		c.jp(instr.Cond)
	case OpJpHL:
		c.Registers.WritePC(c.Registers.Read16(RegHL))
	case OpJr:
		c.jr(instr.Cond)
	case OpCall:
		c.call(instr.Cond)
	case OpRet:
		c.ret(instr.Cond)
	case OpReti:
		c.Registers.WritePC(c.pop())
		c.IME = true
	case OpRst:
		c.push(c.Registers.PC())
		c.Registers.WritePC(uint16(instr.Vec))

	// CPU control
	case OpNop, OpStop, OpPrefix:
		// STOP is accepted but not modelled beyond a no-op.
	case OpHalt:
		c.halted = true
	case OpDi:
		c.IME = false
	case OpEi:
		c.IME = true

	default:
		return ErrUnknownOpcode
	}

	return nil
}
