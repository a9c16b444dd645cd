// Completion: 100% - SIMD instruction complete
package unisimd

// Bitwise logic on the full 128 bits. Lane kind does not matter here, so the
// same five instructions serve f64, s64 and u64.
//
//   AND  Vd.16B, Vn.16B, Vm.16B
//   ORR  Vd.16B, Vn.16B, Vm.16B
//   EOR  Vd.16B, Vn.16B, Vm.16B
//   BIC  Vd.16B, Vn.16B, Vm.16B   Vn & ~Vm
//   ORN  Vd.16B, Vn.16B, Vm.16B   Vn | ~Vm
//   NOT  Vd.16B, Vn.16B

func (o *Out) logicRR(op Op, d, s, t uint32) error {
	switch op {
	case OpAnd:
		return o.put(vecRRR(opAND16B, d, s, t))
	case OpOr:
		return o.put(vecRRR(opORR16B, d, s, t))
	case OpXor:
		return o.put(vecRRR(opEOR16B, d, s, t))
	case OpAndNot:
		// ~s & t: BIC complements its second source
		return o.put(vecRRR(opBIC16B, d, t, s))
	case OpOrNot:
		return o.put(vecRRR(opORN16B, d, t, s))
	}
	return newError(CategoryInternal, "%s is not a logic operation", op)
}

func (o *Out) notRR(d, s uint32) error {
	return o.put(vecRR(opNOT16B, d, s))
}

// And emits d := s & t
func (o *Out) And(d, s, t VReg) error { return o.Binary(OpAnd, U64, d, s, t) }

// Or emits d := s | t
func (o *Out) Or(d, s, t VReg) error { return o.Binary(OpOr, U64, d, s, t) }

// Xor emits d := s ^ t
func (o *Out) Xor(d, s, t VReg) error { return o.Binary(OpXor, U64, d, s, t) }

// AndNot emits d := ~s & t
func (o *Out) AndNot(d, s, t VReg) error { return o.Binary(OpAndNot, U64, d, s, t) }

// Not emits d := ~s
func (o *Out) Not(d, s VReg) error { return o.Unary(OpNot, U64, d, s) }
