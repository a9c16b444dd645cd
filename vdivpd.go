// Completion: 100% - SIMD instruction complete
package unisimd

// FDIV Vd.2D, Vn.2D, Vm.2D - IEEE 754 division, f64 only

func (o *Out) divRR(d, s, t uint32) error {
	return o.put(vecRRR(opFDIV2D, d, s, t))
}

// Div emits d := s / t
func (o *Out) Div(d, s, t VReg) error {
	return o.Binary(OpDiv, F64, d, s, t)
}
