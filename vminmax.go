// Completion: 100% - SIMD instruction complete
package unisimd

// Lane minimum and maximum.
//
//   FMIN Vd.2D, Vn.2D, Vm.2D   FMAX Vd.2D, Vn.2D, Vm.2D   f64
//
// NEON has no 64-bit integer min/max. By default each lane goes through the
// emulation layer as CMP + CSEL. With Config.NativeMinMax64 the lanes are
// compared with CMGT/CMHI into the mask register and merged with BSL:
//
//   CMGT vM.2D, Vs.2D, Vt.2D    (CMHI for u64)
//   BSL  vM.16B, Vt.16B, Vs.16B (min; max swaps the sources)
//   MOV  Vd.16B, vM.16B

func (o *Out) minMaxRR(op Op, k Kind, d, s, t uint32) error {
	if k == F64 {
		if op == OpMin {
			return o.put(vecRRR(opFMIN2D, d, s, t))
		}
		return o.put(vecRRR(opFMAX2D, d, s, t))
	}

	if o.cfg.NativeMinMax64 {
		m := uint32(o.cfg.Mask)
		gt := uint32(opCMGT2D)
		if k == U64 {
			gt = opCMHI2D
		}
		if err := o.put(vecRRR(gt, m, s, t)); err != nil {
			return err
		}
		lo, hi := t, s
		if op == OpMax {
			lo, hi = s, t
		}
		if err := o.put(vecRRR(opBSL16B, m, lo, hi)); err != nil {
			return err
		}
		return o.movRR(d, m)
	}

	var c cond
	switch {
	case op == OpMin && k == S64:
		c = condLT
	case op == OpMin:
		c = condLO
	case k == S64:
		c = condGT
	default:
		c = condHI
	}
	return o.emulateLanes(d, s, t, opName(op, k), o.selectKernel(c))
}

// Min emits d := min(s, t)
func (o *Out) Min(k Kind, d, s, t VReg) error {
	return o.Binary(OpMin, k, d, s, t)
}

// Max emits d := max(s, t)
func (o *Out) Max(k Kind, d, s, t VReg) error {
	return o.Binary(OpMax, k, d, s, t)
}
