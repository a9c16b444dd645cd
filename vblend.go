// Completion: 100% - SIMD instruction complete
package unisimd

// Bitwise select through the reserved mask register. BSL overwrites its
// destination with the selector, so the mask is copied into vM first and
// the result copied out. vM is clobbered.
//
//   MOV vM.16B, Vmask.16B
//   BSL vM.16B, Vs.16B, Vt.16B
//   MOV Vd.16B, vM.16B

func (o *Out) selectRR(d, mask, s, t uint32) error {
	m := uint32(o.cfg.Mask)
	if err := o.movRR(m, mask); err != nil {
		return err
	}
	if err := o.put(vecRRR(opBSL16B, m, s, t)); err != nil {
		return err
	}
	return o.movRR(d, m)
}

// Select emits d := mask ? s : t, bit by bit
func (o *Out) Select(k Kind, d, mask, s, t VReg) error {
	return o.emit(opName(OpSelect, k), func() error {
		if err := check(OpSelect, k, AritySelect); err != nil {
			return err
		}
		r, err := o.vregs(d, mask, s, t)
		if err != nil {
			return err
		}
		return o.selectRR(r[0], r[1], r[2], r[3])
	})
}

// SelectG emits g := mask ? g : t
func (o *Out) SelectG(k Kind, g, mask, t VReg) error {
	return o.Select(k, g, mask, g, t)
}

// SelectM emits d := mask ? s : [m]
func (o *Out) SelectM(k Kind, d, mask, s VReg, m Mem) error {
	return o.emit(opName(OpSelect, k), func() error {
		if err := check(OpSelect, k, AritySelect); err != nil {
			return err
		}
		r, err := o.vregs(d, mask, s)
		if err != nil {
			return err
		}
		t, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.selectRR(r[0], r[1], r[2], t)
	})
}
