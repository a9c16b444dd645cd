// Completion: 100% - SIMD instruction complete
package unisimd

import "strings"

// Rounding selects how a conversion or round picks an integral value
type Rounding uint8

const (
	RoundZero    Rounding = iota // toward zero (truncate)
	RoundPosInf                  // toward +infinity (ceiling)
	RoundNegInf                  // toward -infinity (floor)
	RoundNearest                 // to nearest, ties to even
	// RoundDynamic uses the mode held in FPCR. It is only meaningful inside
	// a region where the caller has already set FPCR.RMode.
	RoundDynamic
)

func (r Rounding) String() string {
	switch r {
	case RoundZero:
		return "zero"
	case RoundPosInf:
		return "posinf"
	case RoundNegInf:
		return "neginf"
	case RoundNearest:
		return "nearest"
	case RoundDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ParseRounding accepts the long names above or their initials z, p, m, n, d
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(s) {
	case "zero", "z", "trunc":
		return RoundZero, nil
	case "posinf", "p", "ceil":
		return RoundPosInf, nil
	case "neginf", "m", "floor":
		return RoundNegInf, nil
	case "nearest", "n", "even":
		return RoundNearest, nil
	case "dynamic", "d", "fpcr":
		return RoundDynamic, nil
	}
	return 0, newError(CategoryUnsupported, "unknown rounding mode %q", s)
}

// Float to integer conversion. Each static mode has its own instruction;
// out-of-range lanes saturate and NaN converts to zero.
//
//   FCVTZS/FCVTZU Vd.2D, Vn.2D   toward zero
//   FCVTPS/FCVTPU                toward +inf
//   FCVTMS/FCVTMU                toward -inf
//   FCVTNS/FCVTNU                nearest, ties to even
//   FRINTI + FCVTZS/FCVTZU       FPCR mode
var toIntOps = [...][2]uint32{
	RoundZero:    {opFCVTZS2D, opFCVTZU2D},
	RoundPosInf:  {opFCVTPS2D, opFCVTPU2D},
	RoundNegInf:  {opFCVTMS2D, opFCVTMU2D},
	RoundNearest: {opFCVTNS2D, opFCVTNU2D},
	RoundDynamic: {opFCVTZS2D, opFCVTZU2D},
}

func signedness(k Kind) int {
	if k == U64 {
		return 1
	}
	return 0
}

func checkIntKind(k Kind) error {
	if k != S64 && k != U64 {
		return newError(CategoryUnsupported, "conversion needs an integer lane kind, got %s", k)
	}
	return nil
}

func (o *Out) toIntRR(k Kind, d, s uint32, mode Rounding) error {
	if err := checkIntKind(k); err != nil {
		return err
	}
	if int(mode) >= len(toIntOps) {
		return newError(CategoryUnsupported, "rounding mode %d", mode)
	}
	op := toIntOps[mode][signedness(k)]
	if mode == RoundDynamic {
		if err := o.put(vecRR(opFRINTI2D, d, s)); err != nil {
			return err
		}
		s = d
	}
	return o.put(vecRR(op, d, s))
}

// SCVTF/UCVTF round by FPCR; with the default FPCR that is to nearest.
// No other direction has an instruction here.
func (o *Out) toFloatRR(k Kind, d, s uint32, mode Rounding) error {
	if err := checkIntKind(k); err != nil {
		return err
	}
	if mode != RoundNearest && mode != RoundDynamic {
		return newError(CategoryUnsupported, "integer to float conversion rounding %s", mode)
	}
	if k == U64 {
		return o.put(vecRR(opUCVTF2D, d, s))
	}
	return o.put(vecRR(opSCVTF2D, d, s))
}

func convertName(dir string, k Kind, mode Rounding) string {
	return dir + "." + k.String() + "." + mode.String()
}

// ConvertToInt emits d := int(s) for f64 lanes in s, k being s64 or u64
func (o *Out) ConvertToInt(k Kind, d, s VReg, mode Rounding) error {
	return o.emit(convertName("cvti", k, mode), func() error {
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		return o.toIntRR(k, r[0], r[1], mode)
	})
}

// ConvertToIntM emits d := int([m])
func (o *Out) ConvertToIntM(k Kind, d VReg, m Mem, mode Rounding) error {
	return o.emit(convertName("cvti", k, mode), func() error {
		rd, err := o.vreg(d)
		if err != nil {
			return err
		}
		if err := checkIntKind(k); err != nil {
			return err
		}
		s, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.toIntRR(k, rd, s, mode)
	})
}

// ConvertToFloat emits d := float64(s) for k lanes in s. Only RoundNearest
// and RoundDynamic are accepted and both emit the same instruction, which
// rounds by FPCR: RoundNearest holds only while FPCR keeps its default mode.
func (o *Out) ConvertToFloat(k Kind, d, s VReg, mode Rounding) error {
	return o.emit(convertName("cvtf", k, mode), func() error {
		r, err := o.vregs(d, s)
		if err != nil {
			return err
		}
		return o.toFloatRR(k, r[0], r[1], mode)
	})
}

// ConvertToFloatM emits d := float64([m]), rounding as ConvertToFloat
func (o *Out) ConvertToFloatM(k Kind, d VReg, m Mem, mode Rounding) error {
	return o.emit(convertName("cvtf", k, mode), func() error {
		rd, err := o.vreg(d)
		if err != nil {
			return err
		}
		if err := checkIntKind(k); err != nil {
			return err
		}
		if mode != RoundNearest && mode != RoundDynamic {
			return newError(CategoryUnsupported, "integer to float conversion rounding %s", mode)
		}
		s, err := o.loadScratch(m)
		if err != nil {
			return err
		}
		return o.toFloatRR(k, rd, s, mode)
	})
}
