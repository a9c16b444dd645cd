// Completion: 100% - SIMD instruction complete
package unisimd

// Lane compares. Each result lane is all ones when the relation holds and
// all zeros otherwise, including for NaN operands.
//
//   FCMEQ / FCMGT / FCMGE Vd.2D, Vn.2D, Vm.2D   f64
//   CMEQ  / CMGT  / CMGE  Vd.2D, Vn.2D, Vm.2D   s64
//   CMEQ  / CMHI  / CMHS  Vd.2D, Vn.2D, Vm.2D   u64
//
// There is no less-than form: lt and le swap their operands onto gt and ge.
// ne is eq followed by NOT. Ordered integer compares use the emulation
// layer (CMP + CSETM per lane) unless Config.NativeCompare64 is set.

func (o *Out) compareRR(op Op, k Kind, d, s, t uint32) error {
	switch op {
	case OpNe:
		if err := o.compareRR(OpEq, k, d, s, t); err != nil {
			return err
		}
		return o.notRR(d, d)
	case OpLt:
		return o.compareRR(OpGt, k, d, t, s)
	case OpLe:
		return o.compareRR(OpGe, k, d, t, s)
	}

	if k == F64 {
		switch op {
		case OpEq:
			return o.put(vecRRR(opFCMEQ2D, d, s, t))
		case OpGt:
			return o.put(vecRRR(opFCMGT2D, d, s, t))
		case OpGe:
			return o.put(vecRRR(opFCMGE2D, d, s, t))
		}
		return newError(CategoryInternal, "no f64 compare for %s", op)
	}
	if op == OpEq {
		return o.put(vecRRR(opCMEQ2D, d, s, t))
	}

	type lowering struct {
		native uint32
		c      cond
	}
	var l lowering
	switch {
	case op == OpGt && k == S64:
		l = lowering{opCMGT2D, condGT}
	case op == OpGe && k == S64:
		l = lowering{opCMGE2D, condGE}
	case op == OpGt:
		l = lowering{opCMHI2D, condHI}
	case op == OpGe:
		l = lowering{opCMHS2D, condHS}
	default:
		return newError(CategoryInternal, "no integer compare for %s", op)
	}
	if o.cfg.NativeCompare64 {
		return o.put(vecRRR(l.native, d, s, t))
	}
	return o.emulateLanes(d, s, t, opName(op, k), o.maskKernel(l.c))
}

// Compare emits the lane mask d := s op t for op in eq, ne, lt, le, gt, ge
func (o *Out) Compare(op Op, k Kind, d, s, t VReg) error {
	return o.Binary(op, k, d, s, t)
}
