// Completion: 100% - SIMD instruction complete
package unisimd

// FMUL - packed double multiply. NEON has no 64-bit lane integer multiply,
// so s64/u64 go through the emulation layer: both vectors are spilled to
// the scratch frame and each lane pair is multiplied with MUL. The low 64
// bits of the product are the same for signed and unsigned operands.
//
//   FMUL Vd.2D, Vn.2D, Vm.2D
//   MUL  Xd, Xn, Xm            per lane, emulated

func (o *Out) mulRR(k Kind, d, s, t uint32) error {
	if k == F64 {
		return o.put(vecRRR(opFMUL2D, d, s, t))
	}
	return o.emulateLanes(d, s, t, "mul", func(a, b uint32) error {
		return o.put(gpMul(a, a, b))
	})
}

// Mul emits d := s * t
func (o *Out) Mul(k Kind, d, s, t VReg) error {
	return o.Binary(OpMul, k, d, s, t)
}
