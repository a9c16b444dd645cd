// Completion: 95% - Decodes every emitted instruction
package sim

// InstDef is one entry of the decode table: a word w is this instruction
// when w&Mask == Value.
type InstDef struct {
	Name  string
	Mask  uint32
	Value uint32
	exec  func(e *Emulator, w uint32) error
}

// Operand field masks, cleared from Mask for the fields an encoding has
const (
	maskRRR     = 0xffe0fc00 // Rd, Rn, Rm
	maskRR      = 0xfffffc00 // Rd, Rn
	maskShImm   = 0xff80fc00 // Rd, Rn, immh:immb
	maskLdSt12  = 0xffc00000 // Rt, Rn, imm12
	maskLdSt9   = 0xffe00c00 // Rt, Rn, imm9
	maskPair    = 0xffc00000 // Rt, Rt2, Rn, imm7
	maskMovWide = 0xff800000 // Rd, imm16, hw
	maskCmpReg  = 0xffe0fc1f // Rn, Rm
	maskCmpImm  = 0xffc0001f // Rn, imm12
	maskCsel    = 0xffe00c00 // Rd, Rn, Rm, cond
	maskCsetm   = 0xffff0fe0 // Rd, cond
	maskBCond   = 0xff000010 // imm19, cond
	maskB       = 0xfc000000 // imm26
)

var table = []InstDef{
	// three same, .2D / .16B
	{"ADD", maskRRR, 0x4ee08400, vecInt(func(a, b uint64) uint64 { return a + b })},
	{"SUB", maskRRR, 0x6ee08400, vecInt(func(a, b uint64) uint64 { return a - b })},
	{"CMEQ", maskRRR, 0x6ee08c00, vecInt(func(a, b uint64) uint64 { return mask(a == b) })},
	{"CMGT", maskRRR, 0x4ee03400, vecInt(func(a, b uint64) uint64 { return mask(int64(a) > int64(b)) })},
	{"CMGE", maskRRR, 0x4ee03c00, vecInt(func(a, b uint64) uint64 { return mask(int64(a) >= int64(b)) })},
	{"CMHI", maskRRR, 0x6ee03400, vecInt(func(a, b uint64) uint64 { return mask(a > b) })},
	{"CMHS", maskRRR, 0x6ee03c00, vecInt(func(a, b uint64) uint64 { return mask(a >= b) })},
	{"SSHL", maskRRR, 0x4ee04400, vecInt(sshl)},
	{"USHL", maskRRR, 0x6ee04400, vecInt(ushl)},
	{"AND", maskRRR, 0x4e201c00, vecInt(func(a, b uint64) uint64 { return a & b })},
	{"BIC", maskRRR, 0x4e601c00, vecInt(func(a, b uint64) uint64 { return a &^ b })},
	{"ORR", maskRRR, 0x4ea01c00, vecInt(func(a, b uint64) uint64 { return a | b })},
	{"ORN", maskRRR, 0x4ee01c00, vecInt(func(a, b uint64) uint64 { return a | ^b })},
	{"EOR", maskRRR, 0x6e201c00, vecInt(func(a, b uint64) uint64 { return a ^ b })},
	{"BSL", maskRRR, 0x6e601c00, execBSL},
	{"FADD", maskRRR, 0x4e60d400, vecFloat(func(a, b float64) float64 { return a + b })},
	{"FSUB", maskRRR, 0x4ee0d400, vecFloat(func(a, b float64) float64 { return a - b })},
	{"FMUL", maskRRR, 0x6e60dc00, vecFloat(func(a, b float64) float64 { return a * b })},
	{"FDIV", maskRRR, 0x6e60fc00, vecFloat(func(a, b float64) float64 { return a / b })},
	{"FMAX", maskRRR, 0x4e60f400, vecFloat(fmax)},
	{"FMIN", maskRRR, 0x4ee0f400, vecFloat(fmin)},
	{"FRECPS", maskRRR, 0x4e60fc00, vecFloat(frecps)},
	{"FRSQRTS", maskRRR, 0x4ee0fc00, vecFloat(frsqrts)},
	{"FCMEQ", maskRRR, 0x4e60e400, vecCmp(func(a, b float64) bool { return a == b })},
	{"FCMGE", maskRRR, 0x6e60e400, vecCmp(func(a, b float64) bool { return a >= b })},
	{"FCMGT", maskRRR, 0x6ee0e400, vecCmp(func(a, b float64) bool { return a > b })},
	{"FMLA", maskRRR, 0x4e60cc00, execFMLA(false)},
	{"FMLS", maskRRR, 0x4ee0cc00, execFMLA(true)},

	// two-register miscellaneous
	{"FSQRT", maskRR, 0x6ee1f800, vecUnaryF(fsqrt)},
	{"FRECPE", maskRR, 0x4ee1d800, vecUnaryF(frecpe)},
	{"FRSQRTE", maskRR, 0x6ee1d800, vecUnaryF(frsqrte)},
	{"FABS", maskRR, 0x4ee0f800, vecUnary(func(a uint64) uint64 { return a &^ (1 << 63) })},
	{"FNEG", maskRR, 0x6ee0f800, vecUnary(func(a uint64) uint64 { return a ^ (1 << 63) })},
	{"ABS", maskRR, 0x4ee0b800, vecUnary(func(a uint64) uint64 {
		if int64(a) < 0 {
			return -a
		}
		return a
	})},
	{"NEG", maskRR, 0x6ee0b800, vecUnary(func(a uint64) uint64 { return -a })},
	{"NOT", maskRR, 0x6e205800, vecUnary(func(a uint64) uint64 { return ^a })},
	{"FCVTZS", maskRR, 0x4ee1b800, execFCVT(RoundZero, false)},
	{"FCVTZU", maskRR, 0x6ee1b800, execFCVT(RoundZero, true)},
	{"FCVTPS", maskRR, 0x4ee1a800, execFCVT(RoundPlusInf, false)},
	{"FCVTPU", maskRR, 0x6ee1a800, execFCVT(RoundPlusInf, true)},
	{"FCVTMS", maskRR, 0x4e61b800, execFCVT(RoundMinusInf, false)},
	{"FCVTMU", maskRR, 0x6e61b800, execFCVT(RoundMinusInf, true)},
	{"FCVTNS", maskRR, 0x4e61a800, execFCVT(RoundNearest, false)},
	{"FCVTNU", maskRR, 0x6e61a800, execFCVT(RoundNearest, true)},
	{"SCVTF", maskRR, 0x4e61d800, execCVTF(false)},
	{"UCVTF", maskRR, 0x6e61d800, execCVTF(true)},
	{"FRINTN", maskRR, 0x4e618800, execFRINT(RoundNearest, false)},
	{"FRINTM", maskRR, 0x4e619800, execFRINT(RoundMinusInf, false)},
	{"FRINTP", maskRR, 0x4ee18800, execFRINT(RoundPlusInf, false)},
	{"FRINTZ", maskRR, 0x4ee19800, execFRINT(RoundZero, false)},
	{"FRINTI", maskRR, 0x6ee19800, execFRINT(0, true)},

	// shift by immediate, 64-bit elements only
	{"SHL", maskShImm, 0x4f005400, execShiftImm(shiftLeft)},
	{"USHR", maskShImm, 0x6f000400, execShiftImm(shiftRightLogical)},
	{"SSHR", maskShImm, 0x4f000400, execShiftImm(shiftRightArith)},

	// scalar
	{"ADDP", maskRR, 0x5ef1b800, execADDP},
	{"FMOV", maskRR, 0x9e660000, execFMOVXD},

	// loads and stores
	{"LDR.Q", maskLdSt12, 0x3dc00000, execLdSt(16, true, modeScaled)},
	{"STR.Q", maskLdSt12, 0x3d800000, execLdSt(16, false, modeScaled)},
	{"LDUR.Q", maskLdSt9, 0x3cc00000, execLdSt(16, true, modeUnscaled)},
	{"STUR.Q", maskLdSt9, 0x3c800000, execLdSt(16, false, modeUnscaled)},
	{"LDR.Q.reg", maskRRR, 0x3ce06800, execLdSt(16, true, modeRegister)},
	{"STR.Q.reg", maskRRR, 0x3ca06800, execLdSt(16, false, modeRegister)},
	{"LDR.X", maskLdSt12, 0xf9400000, execLdSt(8, true, modeScaled)},
	{"STR.X", maskLdSt12, 0xf9000000, execLdSt(8, false, modeScaled)},
	{"LDUR.X", maskLdSt9, 0xf8400000, execLdSt(8, true, modeUnscaled)},
	{"STUR.X", maskLdSt9, 0xf8000000, execLdSt(8, false, modeUnscaled)},
	{"STP.pre", maskPair, 0xa9800000, execSTPPre},
	{"LDP.post", maskPair, 0xa8c00000, execLDPPost},

	// general purpose
	{"MOVZ", maskMovWide, 0xd2800000, execMovWide(movZ)},
	{"MOVN", maskMovWide, 0x92800000, execMovWide(movN)},
	{"MOVK", maskMovWide, 0xf2800000, execMovWide(movK)},
	{"MUL", maskRRR, 0x9b007c00, execMUL},
	{"CMP", maskCmpReg, 0xeb00001f, execCmpReg},
	{"CMP.imm", maskCmpImm, 0xf100001f, execCmpImm(false)},
	{"CMN.imm", maskCmpImm, 0xb100001f, execCmpImm(true)},
	{"CSEL", maskCsel, 0x9a800000, execCSEL},
	{"CSETM", maskCsetm, 0xda9f03e0, execCSETM},
	{"B.cond", maskBCond, 0x54000000, execBCond},
	{"B", maskB, 0x14000000, execB},
}

// Decode returns the table entry for w, or nil
func Decode(w uint32) *InstDef {
	for i := range table {
		if w&table[i].Mask == table[i].Value {
			return &table[i]
		}
	}
	return nil
}

// Mnemonic names w for listings and test failures
func Mnemonic(w uint32) string {
	if d := Decode(w); d != nil {
		return d.Name
	}
	return "?"
}

func rd(w uint32) uint32 { return w & 31 }
func rn(w uint32) uint32 { return (w >> 5) & 31 }
func ra(w uint32) uint32 { return (w >> 10) & 31 }
func rm(w uint32) uint32 { return (w >> 16) & 31 }

// sext sign-extends the low bits of v
func sext(v uint32, bits uint) int64 {
	return int64(int32(v<<(32-bits)) >> (32 - bits))
}
