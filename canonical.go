// Completion: 100% - Module complete
package unisimd

// Canonical operand forms. Every operation has a functional form D := S op T,
// a destructive form G := G op T that forwards to it, and a memory form
// whose last source is loaded into the scratch register first. Only the
// register-register functions below the exported API choose instructions.

// Unary emits d := op s
func (o *Out) Unary(op Op, k Kind, d, s VReg) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityUnary); err != nil {
			return err
		}
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		return o.unaryRR(op, k, r[0], r[1])
	})
}

// UnaryG emits g := op g
func (o *Out) UnaryG(op Op, k Kind, g VReg) error {
	return o.Unary(op, k, g, g)
}

// UnaryM emits d := op [m]
func (o *Out) UnaryM(op Op, k Kind, d VReg, m Mem) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityUnary); err != nil {
			return err
		}
		rd, err := o.vreg(d)
		if err != nil {
			return err
		}
		s, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.unaryRR(op, k, rd, s)
	})
}

// Binary emits d := s op t
func (o *Out) Binary(op Op, k Kind, d, s, t VReg) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityBinary); err != nil {
			return err
		}
		r, err := o.vregs(d, s, t)
		if err != nil {
			return err
		}
		return o.binaryRR(op, k, r[0], r[1], r[2])
	})
}

// BinaryG emits g := g op t
func (o *Out) BinaryG(op Op, k Kind, g, t VReg) error {
	return o.Binary(op, k, g, g, t)
}

// BinaryM emits d := s op [m]
func (o *Out) BinaryM(op Op, k Kind, d, s VReg, m Mem) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityBinary); err != nil {
			return err
		}
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		t, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.binaryRR(op, k, r[0], r[1], t)
	})
}

// BinaryGM emits g := g op [m]
func (o *Out) BinaryGM(op Op, k Kind, g VReg, m Mem) error {
	return o.BinaryM(op, k, g, g, m)
}

// Shift emits d := s shifted by the constant n. The count is taken modulo 64.
func (o *Out) Shift(op Op, k Kind, d, s VReg, n int) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityShift); err != nil {
			return err
		}
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		return o.shiftRR(op, k, r[0], r[1], shiftCount(n))
	})
}

// ShiftG emits g := g shifted by the constant n
func (o *Out) ShiftG(op Op, k Kind, g VReg, n int) error {
	return o.Shift(op, k, g, g, n)
}

// ShiftM emits d := [m] shifted by the constant n
func (o *Out) ShiftM(op Op, k Kind, d VReg, m Mem, n int) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityShift); err != nil {
			return err
		}
		rd, err := o.vreg(d)
		if err != nil {
			return err
		}
		s, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.shiftRR(op, k, rd, s, shiftCount(n))
	})
}

// Ternary emits the accumulating form g := g op (s * t)
func (o *Out) Ternary(op Op, k Kind, g, s, t VReg) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityTernary); err != nil {
			return err
		}
		r, err := o.vregs(g, s, t)
		if err != nil {
			return err
		}
		return o.ternaryRR(op, k, r[0], r[1], r[2])
	})
}

// TernaryM emits g := g op (s * [m])
func (o *Out) TernaryM(op Op, k Kind, g, s VReg, m Mem) error {
	return o.emit(opName(op, k), func() error {
		if err := check(op, k, ArityTernary); err != nil {
			return err
		}
		r, err := o.vregs(g, s)
		if err != nil {
			return err
		}
		t, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.ternaryRR(op, k, r[0], r[1], t)
	})
}

func (o *Out) unaryRR(op Op, k Kind, d, s uint32) error {
	switch op {
	case OpMov:
		return o.movRR(d, s)
	case OpNot:
		return o.notRR(d, s)
	case OpSqrt:
		return o.sqrtRR(d, s)
	case OpRcpEst:
		return o.rcpEstRR(d, s)
	case OpRsqrtEst:
		return o.rsqrtEstRR(d, s)
	case OpNeg:
		return o.negRR(k, d, s)
	case OpAbs:
		return o.absRR(k, d, s)
	}
	return newError(CategoryInternal, "no unary lowering for %s", op)
}

func (o *Out) binaryRR(op Op, k Kind, d, s, t uint32) error {
	switch op {
	case OpAnd, OpOr, OpXor, OpAndNot, OpOrNot:
		return o.logicRR(op, d, s, t)
	case OpAdd:
		return o.addRR(k, d, s, t)
	case OpSub:
		return o.subRR(k, d, s, t)
	case OpMul:
		return o.mulRR(k, d, s, t)
	case OpDiv:
		return o.divRR(d, s, t)
	case OpRcpStep:
		return o.rcpStepRR(d, s, t)
	case OpRsqrtStep:
		return o.rsqrtStepRR(d, s, t)
	case OpMin, OpMax:
		return o.minMaxRR(op, k, d, s, t)
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return o.compareRR(op, k, d, s, t)
	case OpShlV, OpShrV:
		return o.shiftVarRR(op, k, d, s, t)
	}
	return newError(CategoryInternal, "no binary lowering for %s", op)
}

func (o *Out) ternaryRR(op Op, k Kind, g, s, t uint32) error {
	switch op {
	case OpFMA:
		return o.fmaRR(g, s, t)
	case OpFMS:
		return o.fmsRR(g, s, t)
	}
	return newError(CategoryInternal, "no ternary lowering for %s", op)
}
