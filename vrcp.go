// Completion: 100% - SIMD instruction complete
package unisimd

// Reciprocal and reciprocal square root estimates with Newton-Raphson
// refinement steps. The estimates carry about 8 significant bits; each step
// roughly doubles that, so three steps reach double precision.
//
//   FRECPE  Vd.2D, Vn.2D           estimate of 1/x
//   FRECPS  Vd.2D, Vn.2D, Vm.2D    2 - n*m
//   FRSQRTE Vd.2D, Vn.2D           estimate of 1/sqrt(x)
//   FRSQRTS Vd.2D, Vn.2D, Vm.2D    (3 - n*m) / 2

func (o *Out) rcpEstRR(d, s uint32) error {
	return o.put(vecRR(opFRECPE2D, d, s))
}

func (o *Out) rsqrtEstRR(d, s uint32) error {
	return o.put(vecRR(opFRSQRTE2D, d, s))
}

// rcpStepRR emits d := s * (2 - s*t) where s estimates 1/t.
// t may be the scratch register: it is read before scratch is written.
func (o *Out) rcpStepRR(d, s, t uint32) error {
	scr := uint32(o.cfg.Scratch)
	if err := o.put(vecRRR(opFRECPS, scr, s, t)); err != nil {
		return err
	}
	return o.put(vecRRR(opFMUL2D, d, s, scr))
}

// rsqrtStepRR emits d := s * (3 - s*s*t) / 2 where s estimates 1/sqrt(t).
// The first step folds t into scratch so a memory operand survives.
func (o *Out) rsqrtStepRR(d, s, t uint32) error {
	scr := uint32(o.cfg.Scratch)
	if err := o.put(vecRRR(opFMUL2D, scr, s, t)); err != nil {
		return err
	}
	if err := o.put(vecRRR(opFRSQRTS, scr, scr, s)); err != nil {
		return err
	}
	return o.put(vecRRR(opFMUL2D, d, s, scr))
}

// RcpEst emits an estimate of 1/s
func (o *Out) RcpEst(d, s VReg) error {
	return o.Unary(OpRcpEst, F64, d, s)
}

// RcpStep refines the estimate e of 1/x: d := e * (2 - e*x)
func (o *Out) RcpStep(d, e, x VReg) error {
	return o.Binary(OpRcpStep, F64, d, e, x)
}

// RsqrtEst emits an estimate of 1/sqrt(s)
func (o *Out) RsqrtEst(d, s VReg) error {
	return o.Unary(OpRsqrtEst, F64, d, s)
}

// RsqrtStep refines the estimate e of 1/sqrt(x)
func (o *Out) RsqrtStep(d, e, x VReg) error {
	return o.Binary(OpRsqrtStep, F64, d, e, x)
}
