// Completion: 100% - SIMD instruction complete
package unisimd

// FADD / ADD - packed 64-bit addition
//
//   FADD Vd.2D, Vn.2D, Vm.2D   f64
//   ADD  Vd.2D, Vn.2D, Vm.2D   s64, u64 (wrapping)

func (o *Out) addRR(k Kind, d, s, t uint32) error {
	if k == F64 {
		return o.put(vecRRR(opFADD2D, d, s, t))
	}
	return o.put(vecRRR(opADD2D, d, s, t))
}

// Add emits d := s + t
func (o *Out) Add(k Kind, d, s, t VReg) error {
	return o.Binary(OpAdd, k, d, s, t)
}

// AddM emits d := s + [m]
func (o *Out) AddM(k Kind, d, s VReg, m Mem) error {
	return o.BinaryM(OpAdd, k, d, s, m)
}
