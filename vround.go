// Completion: 100% - SIMD instruction complete
package unisimd

// FRINT* Vd.2D, Vn.2D - round f64 lanes to an integral f64. Infinities,
// NaN and values already integral pass through.
var roundOps = [...]uint32{
	RoundZero:    opFRINTZ2D,
	RoundPosInf:  opFRINTP2D,
	RoundNegInf:  opFRINTM2D,
	RoundNearest: opFRINTN2D,
	RoundDynamic: opFRINTI2D,
}

func (o *Out) roundRR(d, s uint32, mode Rounding) error {
	if int(mode) >= len(roundOps) {
		return newError(CategoryUnsupported, "rounding mode %d", mode)
	}
	return o.put(vecRR(roundOps[mode], d, s))
}

// Round emits d := round(s) in the given mode, staying in f64
func (o *Out) Round(d, s VReg, mode Rounding) error {
	return o.emit("round."+mode.String(), func() error {
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		return o.roundRR(r[0], r[1], mode)
	})
}

// RoundM emits d := round([m])
func (o *Out) RoundM(d VReg, m Mem, mode Rounding) error {
	return o.emit("round."+mode.String(), func() error {
		rd, err := o.vreg(d)
		if err != nil {
			return err
		}
		if int(mode) >= len(roundOps) {
			return newError(CategoryUnsupported, "rounding mode %d", mode)
		}
		s, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.roundRR(rd, s, mode)
	})
}
