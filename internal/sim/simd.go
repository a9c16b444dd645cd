// Completion: 100% - Module complete
package sim

import "math"

func mask(b bool) uint64 {
	if b {
		return ^uint64(0)
	}
	return 0
}

func vecInt(f func(a, b uint64) uint64) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		n, m := e.simdRegFile.V[rn(w)], e.simdRegFile.V[rm(w)]
		e.simdRegFile.V[rd(w)] = [2]uint64{f(n[0], m[0]), f(n[1], m[1])}
		return nil
	}
}

func vecFloat(f func(a, b float64) float64) func(*Emulator, uint32) error {
	return vecInt(func(a, b uint64) uint64 {
		return math.Float64bits(f(math.Float64frombits(a), math.Float64frombits(b)))
	})
}

func vecCmp(f func(a, b float64) bool) func(*Emulator, uint32) error {
	return vecInt(func(a, b uint64) uint64 {
		return mask(f(math.Float64frombits(a), math.Float64frombits(b)))
	})
}

func vecUnary(f func(a uint64) uint64) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		n := e.simdRegFile.V[rn(w)]
		e.simdRegFile.V[rd(w)] = [2]uint64{f(n[0]), f(n[1])}
		return nil
	}
}

func vecUnaryF(f func(a float64) float64) func(*Emulator, uint32) error {
	return vecUnary(func(a uint64) uint64 {
		return math.Float64bits(f(math.Float64frombits(a)))
	})
}

// execBSL: Vd = (Vd & Vn) | (^Vd & Vm)
func execBSL(e *Emulator, w uint32) error {
	d, n, m := e.simdRegFile.V[rd(w)], e.simdRegFile.V[rn(w)], e.simdRegFile.V[rm(w)]
	for i := range d {
		d[i] = d[i]&n[i] | ^d[i]&m[i]
	}
	e.simdRegFile.V[rd(w)] = d
	return nil
}

func execFMLA(negate bool) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		d, n, m := e.simdRegFile.F64(rd(w)), e.simdRegFile.F64(rn(w)), e.simdRegFile.F64(rm(w))
		for i := range d {
			a := n[i]
			if negate {
				a = -a
			}
			d[i] = math.FMA(a, m[i], d[i])
		}
		e.simdRegFile.SetF64(rd(w), d[0], d[1])
		return nil
	}
}

func execFCVT(mode RoundingMode, unsigned bool) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		n := e.simdRegFile.F64(rn(w))
		e.simdRegFile.V[rd(w)] = [2]uint64{toInt(n[0], mode, unsigned), toInt(n[1], mode, unsigned)}
		return nil
	}
}

func execCVTF(unsigned bool) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		n := e.simdRegFile.V[rn(w)]
		a, b := toFloat(n[0], e.rmode, unsigned), toFloat(n[1], e.rmode, unsigned)
		e.simdRegFile.SetF64(rd(w), a, b)
		return nil
	}
}

// execFRINT rounds to an integral double; dynamic reads FPCR
func execFRINT(mode RoundingMode, dynamic bool) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		m := mode
		if dynamic {
			m = e.rmode
		}
		n := e.simdRegFile.F64(rn(w))
		e.simdRegFile.SetF64(rd(w), roundTo(n[0], m), roundTo(n[1], m))
		return nil
	}
}

type shiftFunc func(v uint64, sh uint) uint64

func shiftLeft(v uint64, sh uint) uint64 { return v << sh }

func shiftRightLogical(v uint64, sh uint) uint64 {
	if sh >= 64 {
		return 0
	}
	return v >> sh
}

func shiftRightArith(v uint64, sh uint) uint64 {
	if sh >= 64 {
		sh = 63
	}
	return uint64(int64(v) >> sh)
}

// execShiftImm decodes immh:immb for 64-bit elements: SHL uses imm-64,
// the right shifts 128-imm.
func execShiftImm(f shiftFunc) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		imm := (w >> 16) & 0x7f
		if imm&0x40 == 0 {
			return ErrUndefined
		}
		var sh uint
		if w&0x5400 == 0x5400 {
			sh = uint(imm - 64)
		} else {
			sh = uint(128 - imm)
		}
		n := e.simdRegFile.V[rn(w)]
		e.simdRegFile.V[rd(w)] = [2]uint64{f(n[0], sh), f(n[1], sh)}
		return nil
	}
}

// sshl and ushl shift by the signed low byte of the count lane
func sshl(a, b uint64) uint64 {
	sh := int8(b)
	if sh >= 0 {
		if sh >= 64 {
			return 0
		}
		return a << uint(sh)
	}
	return shiftRightArith(a, uint(-int(sh)))
}

func ushl(a, b uint64) uint64 {
	sh := int8(b)
	if sh >= 0 {
		if sh >= 64 {
			return 0
		}
		return a << uint(sh)
	}
	return shiftRightLogical(a, uint(-int(sh)))
}

// execADDP is the scalar pairwise add ADDP Dd, Vn.2D
func execADDP(e *Emulator, w uint32) error {
	n := e.simdRegFile.V[rn(w)]
	e.simdRegFile.V[rd(w)] = [2]uint64{n[0] + n[1], 0}
	return nil
}

// execFMOVXD moves the low lane of Vn to Xd
func execFMOVXD(e *Emulator, w uint32) error {
	e.regFile.WriteReg(rd(w), e.simdRegFile.V[rn(w)][0])
	return nil
}
