// Completion: 100% - Instruction implementation complete
package unisimd

import "strings"

// Mask-to-branch. A compare mask has every lane either all ones or all
// zeros, so the pairwise sum of its two lanes is -2 when every lane is true
// and 0 when none is:
//
//   ADDP  dS, vMask.2D      dS = lane0 + lane1 (scratch register)
//   FMOV  xT, dS
//   CMN   xT, #2            all true
//   CMP   xT, #0            all false
//   B.EQ  label
//
// The two reduced values depend only on the lane count and are fixed when
// the Out is created.

// MaskState is the condition BranchMask tests a mask for
type MaskState uint8

const (
	AllTrue MaskState = iota
	AllFalse
)

func (s MaskState) String() string {
	if s == AllFalse {
		return "none"
	}
	return "all"
}

// ParseMaskState accepts "all" and "none"
func ParseMaskState(s string) (MaskState, error) {
	switch strings.ToLower(s) {
	case "all", "alltrue":
		return AllTrue, nil
	case "none", "allfalse":
		return AllFalse, nil
	}
	return 0, newError(CategoryUnsupported, "unknown mask state %q", s)
}

// BranchMask branches to l when every lane of mask is in state.
// It clobbers the scratch vector register and the temporary GP register.
func (o *Out) BranchMask(mask VReg, state MaskState, l *Label) error {
	return o.emit("bmask."+state.String(), func() error {
		m, err := o.vreg(mask)
		if err != nil {
			return err
		}
		var want int64
		switch state {
		case AllTrue:
			want = o.maskAllTrue
		case AllFalse:
			want = o.maskAllFalse
		default:
			return newError(CategoryUnsupported, "mask state %d", state)
		}
		scr, t := uint32(o.cfg.Scratch), uint32(o.cfg.Temp)
		if err := o.put(vecRR(opADDPD, scr, m)); err != nil {
			return err
		}
		if err := o.put(vecRR(opFMOVXD, t, scr)); err != nil {
			return err
		}
		if err := o.put(gpCmpImm(t, want)); err != nil {
			return err
		}
		return o.branchTo(condEQ, true, l)
	})
}
