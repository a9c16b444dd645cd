// Completion: 100% - SIMD instruction complete
package unisimd

// FMLA Vd.2D, Vn.2D, Vm.2D - fused multiply-add into the accumulator,
// d := d + n*m with a single rounding.

func (o *Out) fmaRR(g, s, t uint32) error {
	return o.put(vecRRR(opFMLA2D, g, s, t))
}

// FMA emits g := g + s*t
func (o *Out) FMA(g, s, t VReg) error {
	return o.Ternary(OpFMA, F64, g, s, t)
}

// FMAM emits g := g + s*[m]
func (o *Out) FMAM(g, s VReg, m Mem) error {
	return o.TernaryM(OpFMA, F64, g, s, m)
}
