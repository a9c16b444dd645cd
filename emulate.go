// Completion: 100% - Module complete
package unisimd

// Emulation of lane operations NEON lacks for 64-bit integers. Both vector
// operands are spilled to the scratch frame, each lane pair is combined in
// the emulation registers by a scalar kernel, and the result is reloaded:
//
//   STP  e0, e1, [sp, #-16]!
//   STR  Qs, slot0
//   STR  Qt, slot1
//   LDR  e0, slot0+8i      for each lane i
//   LDR  e1, slot1+8i
//   <kernel e0, e1>        result in e0
//   STR  e0, slot0+8i
//   LDR  Qd, slot0
//   LDP  e0, e1, [sp], #16
//
// Config.Validate guarantees every slot access encodes without
// materialization, so the temporary register is never touched here.

// laneKernel combines the lane values in a and b, leaving the result in a
type laneKernel func(a, b uint32) error

func (o *Out) emulateLanes(d, s, t uint32, name string, kernel laneKernel) error {
	slot0, slot1 := o.cfg.Frame.slot(0), o.cfg.Frame.slot(1)
	o.log.V(2).Info("emulate", "kernel", name, "frame", slot0.String())

	e0, e1, err := o.gp.acquire(o, name)
	if err != nil {
		return err
	}
	if err := o.access(stQ, s, slot0); err != nil {
		return err
	}
	if err := o.access(stQ, t, slot1); err != nil {
		return err
	}
	for lane := 0; lane < o.cfg.Lanes(); lane++ {
		off := int64(lane) * 8
		a := Mem{Base: slot0.Base, Disp: slot0.Disp + off}
		b := Mem{Base: slot1.Base, Disp: slot1.Disp + off}
		if err := o.access(ldX, e0, a); err != nil {
			return err
		}
		if err := o.access(ldX, e1, b); err != nil {
			return err
		}
		if err := kernel(e0, e1); err != nil {
			return err
		}
		if err := o.access(stX, e0, a); err != nil {
			return err
		}
	}
	if err := o.access(ldQ, d, slot0); err != nil {
		return err
	}
	return o.gp.release(o)
}

// selectKernel keeps a when c holds after CMP a, b and takes b otherwise
func (o *Out) selectKernel(c cond) laneKernel {
	return func(a, b uint32) error {
		if err := o.put(gpCmp(a, b)); err != nil {
			return err
		}
		return o.put(gpCsel(a, a, b, c))
	}
}

// maskKernel sets a to all ones when c holds after CMP a, b and to zero otherwise
func (o *Out) maskKernel(c cond) laneKernel {
	return func(a, b uint32) error {
		if err := o.put(gpCmp(a, b)); err != nil {
			return err
		}
		return o.put(gpCsetm(a, c))
	}
}
