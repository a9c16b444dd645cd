// Completion: 100% - SIMD instruction complete
package unisimd

// FSUB / SUB - packed 64-bit subtraction
//
//   FSUB Vd.2D, Vn.2D, Vm.2D   f64
//   SUB  Vd.2D, Vn.2D, Vm.2D   s64, u64 (wrapping)

func (o *Out) subRR(k Kind, d, s, t uint32) error {
	if k == F64 {
		return o.put(vecRRR(opFSUB2D, d, s, t))
	}
	return o.put(vecRRR(opSUB2D, d, s, t))
}

// Sub emits d := s - t
func (o *Out) Sub(k Kind, d, s, t VReg) error {
	return o.Binary(OpSub, k, d, s, t)
}
