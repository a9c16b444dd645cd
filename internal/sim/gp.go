// Completion: 100% - Module complete
package sim

type addrMode int

const (
	modeScaled   addrMode = iota // unsigned imm12, scaled by the access size
	modeUnscaled                 // signed imm9
	modeRegister                 // base + Xm
)

func (e *Emulator) address(w uint32, size int, mode addrMode) uint64 {
	base := e.regFile.ReadRegOrSP(rn(w))
	switch mode {
	case modeScaled:
		return base + uint64((w>>10)&0xfff)*uint64(size)
	case modeUnscaled:
		return base + uint64(sext((w>>12)&0x1ff, 9))
	default:
		return base + e.regFile.ReadReg(rm(w))
	}
}

func execLdSt(size int, load bool, mode addrMode) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		addr := e.address(w, size, mode)
		t := rd(w)
		switch {
		case size == 16 && load:
			v, err := e.memory.Read128(addr)
			if err != nil {
				return err
			}
			e.simdRegFile.V[t] = v
		case size == 16:
			return e.memory.Write128(addr, e.simdRegFile.V[t])
		case load:
			v, err := e.memory.Read64(addr)
			if err != nil {
				return err
			}
			e.regFile.WriteReg(t, v)
		default:
			return e.memory.Write64(addr, e.regFile.ReadReg(t))
		}
		return nil
	}
}

func pairOffset(w uint32) uint64 {
	return uint64(sext((w>>15)&0x7f, 7) * 8)
}

// execSTPPre: STP Xt1, Xt2, [Xn, #imm]!
func execSTPPre(e *Emulator, w uint32) error {
	addr := e.regFile.ReadRegOrSP(rn(w)) + pairOffset(w)
	if err := e.memory.Write64(addr, e.regFile.ReadReg(rd(w))); err != nil {
		return err
	}
	if err := e.memory.Write64(addr+8, e.regFile.ReadReg(ra(w))); err != nil {
		return err
	}
	e.regFile.WriteRegOrSP(rn(w), addr)
	return nil
}

// execLDPPost: LDP Xt1, Xt2, [Xn], #imm
func execLDPPost(e *Emulator, w uint32) error {
	addr := e.regFile.ReadRegOrSP(rn(w))
	a, err := e.memory.Read64(addr)
	if err != nil {
		return err
	}
	b, err := e.memory.Read64(addr + 8)
	if err != nil {
		return err
	}
	e.regFile.WriteReg(rd(w), a)
	e.regFile.WriteReg(ra(w), b)
	e.regFile.WriteRegOrSP(rn(w), addr+pairOffset(w))
	return nil
}

type movWideFunc func(old, imm uint64, shift uint) uint64

func movZ(_, imm uint64, shift uint) uint64 { return imm << shift }
func movN(_, imm uint64, shift uint) uint64 { return ^(imm << shift) }
func movK(old, imm uint64, shift uint) uint64 {
	return old&^(0xffff<<shift) | imm<<shift
}

func execMovWide(f movWideFunc) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		imm := uint64((w >> 5) & 0xffff)
		shift := uint((w>>21)&3) * 16
		e.regFile.WriteReg(rd(w), f(e.regFile.ReadReg(rd(w)), imm, shift))
		return nil
	}
}

func execMUL(e *Emulator, w uint32) error {
	e.regFile.WriteReg(rd(w), e.regFile.ReadReg(rn(w))*e.regFile.ReadReg(rm(w)))
	return nil
}

// subFlags sets NZCV for a - b
func (e *Emulator) subFlags(a, b uint64) {
	r := a - b
	e.regFile.PSTATE = PSTATE{
		N: int64(r) < 0,
		Z: r == 0,
		C: a >= b,
		V: ((a^b)&(a^r))>>63 == 1,
	}
}

// addFlags sets NZCV for a + b
func (e *Emulator) addFlags(a, b uint64) {
	r := a + b
	e.regFile.PSTATE = PSTATE{
		N: int64(r) < 0,
		Z: r == 0,
		C: r < a,
		V: (^(a^b)&(a^r))>>63 == 1,
	}
}

func execCmpReg(e *Emulator, w uint32) error {
	e.subFlags(e.regFile.ReadReg(rn(w)), e.regFile.ReadReg(rm(w)))
	return nil
}

func execCmpImm(negated bool) func(*Emulator, uint32) error {
	return func(e *Emulator, w uint32) error {
		a := e.regFile.ReadRegOrSP(rn(w))
		imm := uint64((w >> 10) & 0xfff)
		if negated {
			e.addFlags(a, imm)
		} else {
			e.subFlags(a, imm)
		}
		return nil
	}
}

func cond(w uint32) uint32 { return (w >> 12) & 0xf }

func execCSEL(e *Emulator, w uint32) error {
	v := e.regFile.ReadReg(rm(w))
	if e.regFile.PSTATE.Cond(cond(w)) {
		v = e.regFile.ReadReg(rn(w))
	}
	e.regFile.WriteReg(rd(w), v)
	return nil
}

// execCSETM is CSINV Xd, XZR, XZR, cond: zero when cond holds, else all ones
func execCSETM(e *Emulator, w uint32) error {
	e.regFile.WriteReg(rd(w), mask(!e.regFile.PSTATE.Cond(cond(w))))
	return nil
}

func execBCond(e *Emulator, w uint32) error {
	if e.regFile.PSTATE.Cond(w & 0xf) {
		e.pc = e.cur + int(sext((w>>5)&0x7ffff, 19))
	}
	return nil
}

func execB(e *Emulator, w uint32) error {
	e.pc = e.cur + int(sext(w&0x3ffffff, 26))
	return nil
}
