// Completion: 100% - SIMD instruction complete
package unisimd

// Lane shifts. Counts are taken modulo 64 on every path.
//
//   SHL  Vd.2D, Vn.2D, #n     immh:immb = 64+n
//   USHR Vd.2D, Vn.2D, #n     immh:immb = 128-n, u64
//   SSHR Vd.2D, Vn.2D, #n     s64
//   USHL / SSHL Vd.2D, Vn.2D, Vm.2D
//
// USHL and SSHL shift left by the signed low byte of each count lane, so
// variable counts are masked to 0..63 first and negated for right shifts.

func (o *Out) shiftRR(op Op, k Kind, d, s, n uint32) error {
	switch op {
	case OpShl:
		return o.put(vecShl(d, s, n))
	case OpShr:
		if n == 0 {
			return o.movRR(d, s)
		}
		if k == S64 {
			return o.put(vecShr(opSSHR2D, d, s, n))
		}
		return o.put(vecShr(opUSHR2D, d, s, n))
	}
	return newError(CategoryInternal, "%s is not a constant shift", op)
}

func (o *Out) shiftVarRR(op Op, k Kind, d, s, t uint32) error {
	scr := uint32(o.cfg.Scratch)
	// scratch := t & 63
	if err := o.put(vecShl(scr, t, 58)); err != nil {
		return err
	}
	if err := o.put(vecShr(opUSHR2D, scr, scr, 58)); err != nil {
		return err
	}
	if op == OpShrV {
		if err := o.put(vecRR(opNEG2D, scr, scr)); err != nil {
			return err
		}
	}
	if op == OpShrV && k == S64 {
		return o.put(vecRRR(opSSHL2D, d, s, scr))
	}
	return o.put(vecRRR(opUSHL2D, d, s, scr))
}

// Shl emits d := s << n
func (o *Out) Shl(k Kind, d, s VReg, n int) error {
	return o.Shift(OpShl, k, d, s, n)
}

// Shr emits d := s >> n, arithmetic for s64 and logical for u64
func (o *Out) Shr(k Kind, d, s VReg, n int) error {
	return o.Shift(OpShr, k, d, s, n)
}
