// Completion: 100% - ARM64 vector templates complete, checked against the architecture manual
package unisimd

import "fmt"

// ARM64 instruction encoding
// ARM64 uses fixed 32-bit little-endian instructions. An instruction word is
// an opcode template OR'd with operand fields at fixed bit offsets:
//
//	Rd/Rt   bits  4:0
//	Rn      bits  9:5
//	Ra/Rt2  bits 14:10
//	Rm      bits 20:16
//
// Templates below have every field bit cleared; assemble refuses a field
// that overlaps the template or another field.

// Word is one encoded instruction
type Word uint32

func (w Word) String() string {
	return fmt.Sprintf("%08x", uint32(w))
}

// Advanced SIMD three registers of the same type, Q=1
const (
	opADD2D   = 0x4ee08400 // ADD   Vd.2D, Vn.2D, Vm.2D
	opSUB2D   = 0x6ee08400 // SUB   Vd.2D, Vn.2D, Vm.2D
	opCMEQ2D  = 0x6ee08c00 // CMEQ  Vd.2D, Vn.2D, Vm.2D
	opCMGT2D  = 0x4ee03400 // CMGT  signed >
	opCMGE2D  = 0x4ee03c00 // CMGE  signed >=
	opCMHI2D  = 0x6ee03400 // CMHI  unsigned >
	opCMHS2D  = 0x6ee03c00 // CMHS  unsigned >=
	opSSHL2D  = 0x4ee04400 // SSHL  per-lane signed shift
	opUSHL2D  = 0x6ee04400 // USHL  per-lane unsigned shift
	opAND16B  = 0x4e201c00 // AND   Vd.16B, Vn.16B, Vm.16B
	opBIC16B  = 0x4e601c00 // BIC   Vd = Vn & ~Vm
	opORR16B  = 0x4ea01c00 // ORR   (MOV when Vn == Vm)
	opORN16B  = 0x4ee01c00 // ORN   Vd = Vn | ~Vm
	opEOR16B  = 0x6e201c00 // EOR
	opBSL16B  = 0x6e601c00 // BSL   Vd = Vd ? Vn : Vm, bitwise
	opFADD2D  = 0x4e60d400 // FADD
	opFSUB2D  = 0x4ee0d400 // FSUB
	opFMUL2D  = 0x6e60dc00 // FMUL
	opFDIV2D  = 0x6e60fc00 // FDIV
	opFMLA2D  = 0x4e60cc00 // FMLA  Vd += Vn * Vm, fused
	opFMLS2D  = 0x4ee0cc00 // FMLS  Vd -= Vn * Vm, fused
	opFMAX2D  = 0x4e60f400 // FMAX
	opFMIN2D  = 0x4ee0f400 // FMIN
	opFCMEQ2D = 0x4e60e400 // FCMEQ
	opFCMGE2D = 0x6e60e400 // FCMGE
	opFCMGT2D = 0x6ee0e400 // FCMGT
	opFRECPS  = 0x4e60fc00 // FRECPS  2 - Vn*Vm
	opFRSQRTS = 0x4ee0fc00 // FRSQRTS (3 - Vn*Vm) / 2
)

// Advanced SIMD two-register miscellaneous, Q=1
const (
	opFSQRT2D   = 0x6ee1f800
	opFRECPE2D  = 0x4ee1d800
	opFRSQRTE2D = 0x6ee1d800
	opFABS2D    = 0x4ee0f800
	opFNEG2D    = 0x6ee0f800
	opABS2D     = 0x4ee0b800
	opNEG2D     = 0x6ee0b800
	opNOT16B    = 0x6e205800 // NOT (MVN)
	opFCVTZS2D  = 0x4ee1b800 // toward zero
	opFCVTZU2D  = 0x6ee1b800
	opFCVTPS2D  = 0x4ee1a800 // toward +inf
	opFCVTPU2D  = 0x6ee1a800
	opFCVTMS2D  = 0x4e61b800 // toward -inf
	opFCVTMU2D  = 0x6e61b800
	opFCVTNS2D  = 0x4e61a800 // to nearest, ties to even
	opFCVTNU2D  = 0x6e61a800
	opSCVTF2D   = 0x4e61d800 // FPCR rounding
	opUCVTF2D   = 0x6e61d800
	opFRINTN2D  = 0x4e618800
	opFRINTM2D  = 0x4e619800
	opFRINTP2D  = 0x4ee18800
	opFRINTZ2D  = 0x4ee19800
	opFRINTI2D  = 0x6ee19800 // FPCR rounding
)

// Advanced SIMD shift by immediate, .2D (immh:immb in bits 22:16)
const (
	opSHL2D  = 0x4f005400 // immh:immb = 64 + shift
	opUSHR2D = 0x6f000400 // immh:immb = 128 - shift, shift in 1..64
	opSSHR2D = 0x4f000400
)

// Scalar and transfer
const (
	opADDPD   = 0x5ef1b800 // ADDP  Dd, Vn.2D
	opFMOVXD  = 0x9e660000 // FMOV  Xd, Dn
	opLDRQ    = 0x3dc00000 // LDR   Qt, [Xn, #imm12*16]
	opSTRQ    = 0x3d800000 // STR   Qt, [Xn, #imm12*16]
	opLDURQ   = 0x3cc00000 // LDUR  Qt, [Xn, #simm9]
	opSTURQ   = 0x3c800000 // STUR  Qt, [Xn, #simm9]
	opLDRQReg = 0x3ce06800 // LDR   Qt, [Xn, Xm]
	opSTRQReg = 0x3ca06800 // STR   Qt, [Xn, Xm]
	opLDRX    = 0xf9400000 // LDR   Xt, [Xn, #imm12*8]
	opSTRX    = 0xf9000000 // STR   Xt, [Xn, #imm12*8]
	opLDURX   = 0xf8400000 // LDUR  Xt, [Xn, #simm9]
	opSTURX   = 0xf8000000 // STUR  Xt, [Xn, #simm9]
	opSTPPre  = 0xa9800000 // STP   Xt, Xt2, [Xn, #simm7*8]!
	opLDPPost = 0xa8c00000 // LDP   Xt, Xt2, [Xn], #simm7*8
)

// General-purpose data processing and branches
const (
	opMOVZ   = 0xd2800000 // MOVZ Xd, #imm16, LSL #hw*16
	opMOVN   = 0x92800000 // MOVN Xd, #imm16, LSL #hw*16
	opMOVK   = 0xf2800000 // MOVK Xd, #imm16, LSL #hw*16
	opMUL    = 0x9b007c00 // MADD Xd, Xn, Xm, XZR
	opCMPReg = 0xeb00001f // SUBS XZR, Xn, Xm
	opCMPImm = 0xf100001f // SUBS XZR, Xn, #imm12
	opCMNImm = 0xb100001f // ADDS XZR, Xn, #imm12
	opCSEL   = 0x9a800000 // CSEL Xd, Xn, Xm, cond
	opCSETM  = 0xda9f03e0 // CSINV Xd, XZR, XZR, invcond
	opBCond  = 0x54000000 // B.cond #imm19*4
	opB      = 0x14000000 // B #imm26*4
)

// Condition codes for CSEL, CSETM and B.cond
type cond uint32

const (
	condEQ cond = 0x0
	condNE cond = 0x1
	condHS cond = 0x2 // unsigned >=
	condLO cond = 0x3 // unsigned <
	condHI cond = 0x8 // unsigned >
	condLS cond = 0x9 // unsigned <=
	condGE cond = 0xa
	condLT cond = 0xb
	condGT cond = 0xc
	condLE cond = 0xd
)

// field is one operand packed into an instruction word
type field struct {
	name   string
	value  int64
	lo     uint
	width  uint
	signed bool
	reg    bool
}

func fRd(r uint32) field { return field{name: "Rd", value: int64(r), lo: 0, width: 5, reg: true} }
func fRn(r uint32) field { return field{name: "Rn", value: int64(r), lo: 5, width: 5, reg: true} }
func fRa(r uint32) field { return field{name: "Rt2", value: int64(r), lo: 10, width: 5, reg: true} }
func fRm(r uint32) field { return field{name: "Rm", value: int64(r), lo: 16, width: 5, reg: true} }
func fCond(c cond) field { return field{name: "cond", value: int64(c), lo: 12, width: 4} }
func fBCond(c cond) field { return field{name: "cond", value: int64(c), lo: 0, width: 4} }

func uimm(name string, v int64, lo, width uint) field {
	return field{name: name, value: v, lo: lo, width: width}
}

func simm(name string, v int64, lo, width uint) field {
	return field{name: name, value: v, lo: lo, width: width, signed: true}
}

// resolveImmediate checks that v fits a bits-wide field and returns it
// truncated to the field. It never wraps an out-of-range value.
func resolveImmediate(v int64, bits uint, signed bool) (uint32, error) {
	if signed {
		lo, hi := -(int64(1) << (bits - 1)), int64(1)<<(bits-1)
		if v < lo || v >= hi {
			return 0, newError(CategoryImmediate, "%d does not fit a signed %d-bit field", v, bits)
		}
	} else if v < 0 || v >= int64(1)<<bits {
		return 0, newError(CategoryImmediate, "%d does not fit an unsigned %d-bit field", v, bits)
	}
	return uint32(v) & (uint32(1)<<bits - 1), nil
}

// shiftCount reduces a shift count modulo the 64-bit lane width.
// Targets disagree on counts >= the lane width, so every backend wraps.
func shiftCount(n int) uint32 {
	return uint32(n) & 63
}

// assemble packs fields into template. It is a pure function of its inputs.
func assemble(template uint32, fields ...field) (Word, error) {
	word := template
	var used uint32
	for _, f := range fields {
		mask := (uint32(1)<<f.width - 1) << f.lo
		if template&mask != 0 || used&mask != 0 {
			return 0, newError(CategoryInternal, "field %s overlaps bits %08x of template %08x", f.name, used|template, template)
		}
		used |= mask
		v, err := resolveImmediate(f.value, f.width, f.signed)
		if err != nil {
			if f.reg {
				return 0, newError(CategoryOperand, "register field %s: %d out of range", f.name, f.value)
			}
			return 0, newError(CategoryImmediate, "field %s: %s", f.name, err.(*EncodeError).Message)
		}
		word |= v << f.lo
	}
	return Word(word), nil
}

// ============================================================================
// Instruction forms
// ============================================================================

func vecRRR(op uint32, d, n, m uint32) (Word, error) {
	return assemble(op, fRd(d), fRn(n), fRm(m))
}

func vecRR(op uint32, d, n uint32) (Word, error) {
	return assemble(op, fRd(d), fRn(n))
}

// vecMov is MOV Vd.16B, Vn.16B (ORR Vd, Vn, Vn)
func vecMov(d, n uint32) (Word, error) {
	return vecRRR(opORR16B, d, n, n)
}

// vecShl encodes SHL Vd.2D, Vn.2D, #sh with sh in 0..63
func vecShl(d, n, sh uint32) (Word, error) {
	return assemble(opSHL2D, fRd(d), fRn(n), uimm("immh:immb", int64(64+sh), 16, 7))
}

// vecShr encodes USHR/SSHR Vd.2D, Vn.2D, #sh with sh in 1..64
func vecShr(op uint32, d, n, sh uint32) (Word, error) {
	if sh < 1 || sh > 64 {
		return 0, newError(CategoryImmediate, "right shift %d outside 1..64", sh)
	}
	return assemble(op, fRd(d), fRn(n), uimm("immh:immb", int64(128-sh), 16, 7))
}

// ldstScaled encodes LDR/STR with an unsigned offset in units of scale bytes
func ldstScaled(op uint32, t, n uint32, imm12 int64) (Word, error) {
	return assemble(op, fRd(t), fRn(n), uimm("imm12", imm12, 10, 12))
}

func ldstUnscaled(op uint32, t, n uint32, simm9 int64) (Word, error) {
	return assemble(op, fRd(t), fRn(n), simm("imm9", simm9, 12, 9))
}

func ldstRegOffset(op uint32, t, n, m uint32) (Word, error) {
	return assemble(op, fRd(t), fRn(n), fRm(m))
}

// ldstPair encodes STP/LDP of X registers; offset is in bytes
func ldstPair(op uint32, t1, t2, n uint32, offset int64) (Word, error) {
	if offset%8 != 0 {
		return 0, newError(CategoryImmediate, "pair offset %d not a multiple of 8", offset)
	}
	return assemble(op, fRd(t1), fRa(t2), fRn(n), simm("imm7", offset/8, 15, 7))
}

func movWide(op uint32, d uint32, imm16 uint16, hw uint32) (Word, error) {
	return assemble(op, fRd(d), uimm("imm16", int64(imm16), 5, 16), uimm("hw", int64(hw), 21, 2))
}

func gpMul(d, n, m uint32) (Word, error) {
	return assemble(opMUL, fRd(d), fRn(n), fRm(m))
}

func gpCmp(n, m uint32) (Word, error) {
	return assemble(opCMPReg, fRn(n), fRm(m))
}

// gpCmpImm encodes CMP Xn, #k for k >= 0 and CMN Xn, #-k for k < 0
func gpCmpImm(n uint32, k int64) (Word, error) {
	if k < 0 {
		return assemble(opCMNImm, fRn(n), uimm("imm12", -k, 10, 12))
	}
	return assemble(opCMPImm, fRn(n), uimm("imm12", k, 10, 12))
}

func gpCsel(d, n, m uint32, c cond) (Word, error) {
	return assemble(opCSEL, fRd(d), fRn(n), fRm(m), fCond(c))
}

// gpCsetm sets Xd to all ones when c holds and to zero otherwise
func gpCsetm(d uint32, c cond) (Word, error) {
	return assemble(opCSETM, fRd(d), fCond(c^1))
}

// branchCond encodes B.cond; delta is the byte distance from the branch
func branchCond(c cond, delta int64) (Word, error) {
	if delta%4 != 0 {
		return 0, newError(CategoryInternal, "branch distance %d not word aligned", delta)
	}
	return assemble(opBCond, fBCond(c), simm("imm19", delta/4, 5, 19))
}

func branch(delta int64) (Word, error) {
	if delta%4 != 0 {
		return 0, newError(CategoryInternal, "branch distance %d not word aligned", delta)
	}
	return assemble(opB, simm("imm26", delta/4, 0, 26))
}
