package cpu

// PrefixOpcode introduces a two-byte instruction decoded against the prefixed
// table.
const PrefixOpcode uint8 = 0xCB

// Op is the operation tag of a decoded instruction. The zero value is
// OpUnused so that table gaps decode as undefined opcodes.
type Op uint8

// Instruction variants. Mem variants operate on the byte addressed by HL.
const (
	OpUnused Op = iota

	// CPU control
	OpNop
	OpStop
	OpHalt
	OpDi
	OpEi
	OpPrefix

	// 8-bit arithmetic and logic
	OpAdd
	OpAddMem
	OpAddImm
	OpAdc
	OpAdcMem
	OpAdcImm
	OpSub
	OpSubMem
	OpSubImm
	OpSbc
	OpSbcMem
	OpSbcImm
	OpAnd
	OpAndMem
	OpAndImm
	OpXor
	OpXorMem
	OpXorImm
	OpOr
	OpOrMem
	OpOrImm
	OpCp
	OpCpMem
	OpCpImm
	OpInc
	OpIncMem
	OpDec
	OpDecMem
	OpCpl
	OpDaa
	OpScf
	OpCcf

	// 16-bit arithmetic
	OpAdd16
	OpAddHLSP
	OpInc16
	OpDec16
	OpIncSP
	OpDecSP
	OpAddSPOffset

	// Rotates and shifts
	OpRlca
	OpRrca
	OpRla
	OpRra
	OpRlc
	OpRlcMem
	OpRrc
	OpRrcMem
	OpRl
	OpRlMem
	OpRr
	OpRrMem
	OpSla
	OpSlaMem
	OpSra
	OpSraMem
	OpSrl
	OpSrlMem
	OpSwap
	OpSwapMem

	// Bit operations
	OpBit
	OpBitMem
	OpRes
	OpResMem
	OpSet
	OpSetMem

	// 8-bit loads
	OpLdRR
	OpLdRImm
	OpLdMemImm
	OpLdRMem
	OpLdMemR
	OpLdRPair
	OpLdPairR
	OpLdAHLI
	OpLdAHLD
	OpLdHLIA
	OpLdHLDA
	OpLdhRAddr
	OpLdhAddrR
	OpLdhImmA
	OpLdhAImm
	OpLdAbsA
	OpLdAAbs

	// 16-bit loads and stack
	OpLdPairImm
	OpLdSPImm
	OpLdAbsSP
	OpLdSPHL
	OpLdHLSPOffset
	OpPush
	OpPop

	// Jumps
	OpJp
	OpJpHL
	OpJr
	OpCall
	OpRet
	OpReti
	OpRst
)

// Condition selects when a jump, call or return is taken.
type Condition uint8

// Condition codes.
const (
	CondAlways Condition = iota
	CondZ
	CondNZ
	CondC
	CondNC
)

// Instruction is a decoded instruction: an operation tag plus whichever
// operand fields the variant uses. Immediates are not part of the decoded
// form; the executor fetches them from the instruction stream.
type Instruction struct {
	Op   Op
	Dst  Reg8      // destination register operand
	Src  Reg8      // source register operand
	Pair Reg16     // register pair operand
	Bit  uint8     // bit index for BIT/RES/SET
	Cond Condition // jump condition
	Vec  uint8     // RST target address
}

// Decode maps a primary opcode byte to its instruction. The 11 undefined
// bytes (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD)
// decode to OpUnused.
func Decode(opcode uint8) Instruction {
	return primaryTable[opcode]
}

var primaryTable = [256]Instruction{
	0x00: {Op: OpNop},
	0x01: {Op: OpLdPairImm, Pair: RegBC},
	0x02: {Op: OpLdPairR, Pair: RegBC, Src: RegA},
	0x03: {Op: OpInc16, Pair: RegBC},
	0x04: {Op: OpInc, Dst: RegB},
	0x05: {Op: OpDec, Dst: RegB},
	0x06: {Op: OpLdRImm, Dst: RegB},
	0x07: {Op: OpRlca},
	0x08: {Op: OpLdAbsSP},
	0x09: {Op: OpAdd16, Pair: RegBC},
	0x0A: {Op: OpLdRPair, Dst: RegA, Pair: RegBC},
	0x0B: {Op: OpDec16, Pair: RegBC},
	0x0C: {Op: OpInc, Dst: RegC},
	0x0D: {Op: OpDec, Dst: RegC},
	0x0E: {Op: OpLdRImm, Dst: RegC},
	0x0F: {Op: OpRrca},

	0x10: {Op: OpStop},
	0x11: {Op: OpLdPairImm, Pair: RegDE},
	0x12: {Op: OpLdPairR, Pair: RegDE, Src: RegA},
	0x13: {Op: OpInc16, Pair: RegDE},
	0x14: {Op: OpInc, Dst: RegD},
	0x15: {Op: OpDec, Dst: RegD},
	0x16: {Op: OpLdRImm, Dst: RegD},
	0x17: {Op: OpRla},
	0x18: {Op: OpJr, Cond: CondAlways},
	0x19: {Op: OpAdd16, Pair: RegDE},
	0x1A: {Op: OpLdRPair, Dst: RegA, Pair: RegDE},
	0x1B: {Op: OpDec16, Pair: RegDE},
	0x1C: {Op: OpInc, Dst: RegE},
	0x1D: {Op: OpDec, Dst: RegE},
	0x1E: {Op: OpLdRImm, Dst: RegE},
	0x1F: {Op: OpRra},

	0x20: {Op: OpJr, Cond: CondNZ},
	0x21: {Op: OpLdPairImm, Pair: RegHL},
	0x22: {Op: OpLdHLIA},
	0x23: {Op: OpInc16, Pair: RegHL},
	0x24: {Op: OpInc, Dst: RegH},
	0x25: {Op: OpDec, Dst: RegH},
	0x26: {Op: OpLdRImm, Dst: RegH},
	0x27: {Op: OpDaa},
	0x28: {Op: OpJr, Cond: CondZ},
	0x29: {Op: OpAdd16, Pair: RegHL},
	0x2A: {Op: OpLdAHLI},
	0x2B: {Op: OpDec16, Pair: RegHL},
	0x2C: {Op: OpInc, Dst: RegL},
	0x2D: {Op: OpDec, Dst: RegL},
	0x2E: {Op: OpLdRImm, Dst: RegL},
	0x2F: {Op: OpCpl},

	0x30: {Op: OpJr, Cond: CondNC},
	0x31: {Op: OpLdSPImm},
	0x32: {Op: OpLdHLDA},
	0x33: {Op: OpIncSP},
	0x34: {Op: OpIncMem},
	0x35: {Op: OpDecMem},
	0x36: {Op: OpLdMemImm},
	0x37: {Op: OpScf},
	0x38: {Op: OpJr, Cond: CondC},
	0x39: {Op: OpAddHLSP},
	0x3A: {Op: OpLdAHLD},
	0x3B: {Op: OpDecSP},
	0x3C: {Op: OpInc, Dst: RegA},
	0x3D: {Op: OpDec, Dst: RegA},
	0x3E: {Op: OpLdRImm, Dst: RegA},
	0x3F: {Op: OpCcf},

	0x40: {Op: OpLdRR, Dst: RegB, Src: RegB},
	0x41: {Op: OpLdRR, Dst: RegB, Src: RegC},
	0x42: {Op: OpLdRR, Dst: RegB, Src: RegD},
	0x43: {Op: OpLdRR, Dst: RegB, Src: RegE},
	0x44: {Op: OpLdRR, Dst: RegB, Src: RegH},
	0x45: {Op: OpLdRR, Dst: RegB, Src: RegL},
	0x46: {Op: OpLdRMem, Dst: RegB},
	0x47: {Op: OpLdRR, Dst: RegB, Src: RegA},
	0x48: {Op: OpLdRR, Dst: RegC, Src: RegB},
	0x49: {Op: OpLdRR, Dst: RegC, Src: RegC},
	0x4A: {Op: OpLdRR, Dst: RegC, Src: RegD},
	0x4B: {Op: OpLdRR, Dst: RegC, Src: RegE},
	0x4C: {Op: OpLdRR, Dst: RegC, Src: RegH},
	0x4D: {Op: OpLdRR, Dst: RegC, Src: RegL},
	0x4E: {Op: OpLdRMem, Dst: RegC},
	0x4F: {Op: OpLdRR, Dst: RegC, Src: RegA},

	0x50: {Op: OpLdRR, Dst: RegD, Src: RegB},
	0x51: {Op: OpLdRR, Dst: RegD, Src: RegC},
	0x52: {Op: OpLdRR, Dst: RegD, Src: RegD},
	0x53: {Op: OpLdRR, Dst: RegD, Src: RegE},
	0x54: {Op: OpLdRR, Dst: RegD, Src: RegH},
	0x55: {Op: OpLdRR, Dst: RegD, Src: RegL},
	0x56: {Op: OpLdRMem, Dst: RegD},
	0x57: {Op: OpLdRR, Dst: RegD, Src: RegA},
	0x58: {Op: OpLdRR, Dst: RegE, Src: RegB},
	0x59: {Op: OpLdRR, Dst: RegE, Src: RegC},
	0x5A: {Op: OpLdRR, Dst: RegE, Src: RegD},
	0x5B: {Op: OpLdRR, Dst: RegE, Src: RegE},
	0x5C: {Op: OpLdRR, Dst: RegE, Src: RegH},
	0x5D: {Op: OpLdRR, Dst: RegE, Src: RegL},
	0x5E: {Op: OpLdRMem, Dst: RegE},
	0x5F: {Op: OpLdRR, Dst: RegE, Src: RegA},

	0x60: {Op: OpLdRR, Dst: RegH, Src: RegB},
	0x61: {Op: OpLdRR, Dst: RegH, Src: RegC},
	0x62: {Op: OpLdRR, Dst: RegH, Src: RegD},
	0x63: {Op: OpLdRR, Dst: RegH, Src: RegE},
	0x64: {Op: OpLdRR, Dst: RegH, Src: RegH},
	0x65: {Op: OpLdRR, Dst: RegH, Src: RegL},
	0x66: {Op: OpLdRMem, Dst: RegH},
	0x67: {Op: OpLdRR, Dst: RegH, Src: RegA},
	0x68: {Op: OpLdRR, Dst: RegL, Src: RegB},
	0x69: {Op: OpLdRR, Dst: RegL, Src: RegC},
	0x6A: {Op: OpLdRR, Dst: RegL, Src: RegD},
	0x6B: {Op: OpLdRR, Dst: RegL, Src: RegE},
	0x6C: {Op: OpLdRR, Dst: RegL, Src: RegH},
	0x6D: {Op: OpLdRR, Dst: RegL, Src: RegL},
	0x6E: {Op: OpLdRMem, Dst: RegL},
	0x6F: {Op: OpLdRR, Dst: RegL, Src: RegA},

	0x70: {Op: OpLdMemR, Src: RegB},
	0x71: {Op: OpLdMemR, Src: RegC},
	0x72: {Op: OpLdMemR, Src: RegD},
	0x73: {Op: OpLdMemR, Src: RegE},
	0x74: {Op: OpLdMemR, Src: RegH},
	0x75: {Op: OpLdMemR, Src: RegL},
	0x76: {Op: OpHalt},
	0x77: {Op: OpLdMemR, Src: RegA},
	0x78: {Op: OpLdRR, Dst: RegA, Src: RegB},
	0x79: {Op: OpLdRR, Dst: RegA, Src: RegC},
	0x7A: {Op: OpLdRR, Dst: RegA, Src: RegD},
	0x7B: {Op: OpLdRR, Dst: RegA, Src: RegE},
	0x7C: {Op: OpLdRR, Dst: RegA, Src: RegH},
	0x7D: {Op: OpLdRR, Dst: RegA, Src: RegL},
	0x7E: {Op: OpLdRMem, Dst: RegA},
	0x7F: {Op: OpLdRR, Dst: RegA, Src: RegA},

	0x80: {Op: OpAdd, Src: RegB},
	0x81: {Op: OpAdd, Src: RegC},
	0x82: {Op: OpAdd, Src: RegD},
	0x83: {Op: OpAdd, Src: RegE},
	0x84: {Op: OpAdd, Src: RegH},
	0x85: {Op: OpAdd, Src: RegL},
	0x86: {Op: OpAddMem},
	0x87: {Op: OpAdd, Src: RegA},
	0x88: {Op: OpAdc, Src: RegB},
	0x89: {Op: OpAdc, Src: RegC},
	0x8A: {Op: OpAdc, Src: RegD},
	0x8B: {Op: OpAdc, Src: RegE},
	0x8C: {Op: OpAdc, Src: RegH},
	0x8D: {Op: OpAdc, Src: RegL},
	0x8E: {Op: OpAdcMem},
	0x8F: {Op: OpAdc, Src: RegA},

	0x90: {Op: OpSub, Src: RegB},
	0x91: {Op: OpSub, Src: RegC},
	0x92: {Op: OpSub, Src: RegD},
	0x93: {Op: OpSub, Src: RegE},
	0x94: {Op: OpSub, Src: RegH},
	0x95: {Op: OpSub, Src: RegL},
	0x96: {Op: OpSubMem},
	0x97: {Op: OpSub, Src: RegA},
	0x98: {Op: OpSbc, Src: RegB},
	0x99: {Op: OpSbc, Src: RegC},
	0x9A: {Op: OpSbc, Src: RegD},
	0x9B: {Op: OpSbc, Src: RegE},
	0x9C: {Op: OpSbc, Src: RegH},
	0x9D: {Op: OpSbc, Src: RegL},
	0x9E: {Op: OpSbcMem},
	0x9F: {Op: OpSbc, Src: RegA},

	0xA0: {Op: OpAnd, Src: RegB},
	0xA1: {Op: OpAnd, Src: RegC},
	0xA2: {Op: OpAnd, Src: RegD},
	0xA3: {Op: OpAnd, Src: RegE},
	0xA4: {Op: OpAnd, Src: RegH},
	0xA5: {Op: OpAnd, Src: RegL},
	0xA6: {Op: OpAndMem},
	0xA7: {Op: OpAnd, Src: RegA},
	0xA8: {Op: OpXor, Src: RegB},
	0xA9: {Op: OpXor, Src: RegC},
	0xAA: {Op: OpXor, Src: RegD},
	0xAB: {Op: OpXor, Src: RegE},
	0xAC: {Op: OpXor, Src: RegH},
	0xAD: {Op: OpXor, Src: RegL},
	0xAE: {Op: OpXorMem},
	0xAF: {Op: OpXor, Src: RegA},

	0xB0: {Op: OpOr, Src: RegB},
	0xB1: {Op: OpOr, Src: RegC},
	0xB2: {Op: OpOr, Src: RegD},
	0xB3: {Op: OpOr, Src: RegE},
	0xB4: {Op: OpOr, Src: RegH},
	0xB5: {Op: OpOr, Src: RegL},
	0xB6: {Op: OpOrMem},
	0xB7: {Op: OpOr, Src: RegA},
	0xB8: {Op: OpCp, Src: RegB},
	0xB9: {Op: OpCp, Src: RegC},
	0xBA: {Op: OpCp, Src: RegD},
	0xBB: {Op: OpCp, Src: RegE},
	0xBC: {Op: OpCp, Src: RegH},
	0xBD: {Op: OpCp, Src: RegL},
	0xBE: {Op: OpCpMem},
	0xBF: {Op: OpCp, Src: RegA},

	0xC0: {Op: OpRet, Cond: CondNZ},
	0xC1: {Op: OpPop, Pair: RegBC},
	0xC2: {Op: OpJp, Cond: CondNZ},
	0xC3: {Op: OpJp, Cond: CondAlways},
	0xC4: {Op: OpCall, Cond: CondNZ},
	0xC5: {Op: OpPush, Pair: RegBC},
	0xC6: {Op: OpAddImm},
	0xC7: {Op: OpRst, Vec: 0x00},
	0xC8: {Op: OpRet, Cond: CondZ},
	0xC9: {Op: OpRet, Cond: CondAlways},
	0xCA: {Op: OpJp, Cond: CondZ},
	0xCB: {Op: OpPrefix},
	0xCC: {Op: OpCall, Cond: CondZ},
	0xCD: {Op: OpCall, Cond: CondAlways},
	0xCE: {Op: OpAdcImm},
	0xCF: {Op: OpRst, Vec: 0x08},

	0xD0: {Op: OpRet, Cond: CondNC},
	0xD1: {Op: OpPop, Pair: RegDE},
	0xD2: {Op: OpJp, Cond: CondNC},
	0xD4: {Op: OpCall, Cond: CondNC},
	0xD5: {Op: OpPush, Pair: RegDE},
	0xD6: {Op: OpSubImm},
	0xD7: {Op: OpRst, Vec: 0x10},
	0xD8: {Op: OpRet, Cond: CondC},
	0xD9: {Op: OpReti},
	0xDA: {Op: OpJp, Cond: CondC},
	0xDC: {Op: OpCall, Cond: CondC},
	0xDE: {Op: OpSbcImm},
	0xDF: {Op: OpRst, Vec: 0x18},

	0xE0: {Op: OpLdhImmA},
	0xE1: {Op: OpPop, Pair: RegHL},
	0xE2: {Op: OpLdhAddrR, Dst: RegC, Src: RegA},
	0xE5: {Op: OpPush, Pair: RegHL},
	0xE6: {Op: OpAndImm},
	0xE7: {Op: OpRst, Vec: 0x20},
	0xE8: {Op: OpAddSPOffset},
	0xE9: {Op: OpJpHL},
	0xEA: {Op: OpLdAbsA},
	0xEE: {Op: OpXorImm},
	0xEF: {Op: OpRst, Vec: 0x28},

	0xF0: {Op: OpLdhAImm},
	0xF1: {Op: OpPop, Pair: RegAF},
	0xF2: {Op: OpLdhRAddr, Dst: RegA, Src: RegC},
	0xF3: {Op: OpDi},
	0xF5: {Op: OpPush, Pair: RegAF},
	0xF6: {Op: OpOrImm},
	0xF7: {Op: OpRst, Vec: 0x30},
	0xF8: {Op: OpLdHLSPOffset},
	0xF9: {Op: OpLdSPHL},
	0xFA: {Op: OpLdAAbs},
	0xFB: {Op: OpEi},
	0xFE: {Op: OpCpImm},
	0xFF: {Op: OpRst, Vec: 0x38},
}

// prefixedRegs maps the low three opcode bits to their register destination.
// Index 6 is the (HL) memory destination and has no entry.
var prefixedRegs = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, 0, RegA}

// prefixedRotates maps bits 5..3 of a group-0 prefixed opcode to the
// rotate/shift family, register form and (HL) form.
var prefixedRotates = [8][2]Op{
	{OpRlc, OpRlcMem},
	{OpRrc, OpRrcMem},
	{OpRl, OpRlMem},
	{OpRr, OpRrMem},
	{OpSla, OpSlaMem},
	{OpSra, OpSraMem},
	{OpSwap, OpSwapMem},
	{OpSrl, OpSrlMem},
}

// DecodePrefixed maps the byte following the 0xCB prefix to its instruction.
// All 256 prefixed opcodes are defined; the encoding is regular:
// group = byte>>6, bit = (byte>>3)&7, reg = byte&7.
func DecodePrefixed(opcode uint8) Instruction {
	group := opcode >> 6
	bit := (opcode >> 3) & 0x07
	reg := opcode & 0x07
	mem := reg == 6

	var instr Instruction
	if !mem {
		instr.Dst = prefixedRegs[reg]
	}

	switch group {
	case 0:
		if mem {
			instr.Op = prefixedRotates[bit][1]
		} else {
			instr.Op = prefixedRotates[bit][0]
		}
	case 1:
		instr.Op = OpBit
		if mem {
			instr.Op = OpBitMem
		}
		instr.Bit = bit
	case 2:
		instr.Op = OpRes
		if mem {
			instr.Op = OpResMem
		}
		instr.Bit = bit
	default:
		instr.Op = OpSet
		if mem {
			instr.Op = OpSetMem
		}
		instr.Bit = bit
	}

	return instr
}
