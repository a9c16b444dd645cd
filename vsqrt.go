// Completion: 100% - SIMD instruction complete
package unisimd

// FSQRT Vd.2D, Vn.2D - correctly rounded square root

func (o *Out) sqrtRR(d, s uint32) error {
	return o.put(vecRR(opFSQRT2D, d, s))
}

// Sqrt emits d := sqrt(s)
func (o *Out) Sqrt(d, s VReg) error {
	return o.Unary(OpSqrt, F64, d, s)
}
