// Completion: 100% - SIMD instruction complete
package unisimd

// FMLS Vd.2D, Vn.2D, Vm.2D - fused multiply-subtract from the accumulator,
// d := d - n*m with a single rounding.

func (o *Out) fmsRR(g, s, t uint32) error {
	return o.put(vecRRR(opFMLS2D, g, s, t))
}

// FMS emits g := g - s*t
func (o *Out) FMS(g, s, t VReg) error {
	return o.Ternary(OpFMS, F64, g, s, t)
}
