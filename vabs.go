// Completion: 100% - SIMD instruction complete
package unisimd

// Sign operations.
//
//   FNEG Vd.2D, Vn.2D   FABS Vd.2D, Vn.2D   f64, flips or clears the sign bit
//   NEG  Vd.2D, Vn.2D   ABS  Vd.2D, Vn.2D   s64, wrapping (abs of MinInt64 is MinInt64)

func (o *Out) negRR(k Kind, d, s uint32) error {
	if k == F64 {
		return o.put(vecRR(opFNEG2D, d, s))
	}
	return o.put(vecRR(opNEG2D, d, s))
}

func (o *Out) absRR(k Kind, d, s uint32) error {
	if k == F64 {
		return o.put(vecRR(opFABS2D, d, s))
	}
	return o.put(vecRR(opABS2D, d, s))
}

// Neg emits d := -s
func (o *Out) Neg(k Kind, d, s VReg) error {
	return o.Unary(OpNeg, k, d, s)
}

// Abs emits d := |s|
func (o *Out) Abs(k Kind, d, s VReg) error {
	return o.Unary(OpAbs, k, d, s)
}
