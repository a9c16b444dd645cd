// Completion: 100% - Module complete
package sim

import (
	"math"
	"math/big"
)

func fmax(a, b float64) float64 { return math.Max(a, b) }
func fmin(a, b float64) float64 { return math.Min(a, b) }
func fsqrt(a float64) float64   { return math.Sqrt(a) }

// frecps is 2 - a*b, fused, with inf*0 giving 2
func frecps(a, b float64) float64 {
	if (math.IsInf(a, 0) && b == 0) || (a == 0 && math.IsInf(b, 0)) {
		return 2
	}
	return math.FMA(-a, b, 2)
}

// frsqrts is (3 - a*b) / 2, fused, with inf*0 giving 1.5
func frsqrts(a, b float64) float64 {
	if (math.IsInf(a, 0) && b == 0) || (a == 0 && math.IsInf(b, 0)) {
		return 1.5
	}
	return math.FMA(-a, b, 3) / 2
}

// estimateBits is the precision of the modelled reciprocal estimates.
// Hardware uses a table lookup of the same precision; truncating the exact
// value keeps the model deterministic while within the architected error.
const estimateBits = 8

func truncateMantissa(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) || x == 0 {
		return x
	}
	return math.Float64frombits(math.Float64bits(x) &^ (1<<(52-estimateBits) - 1))
}

func frecpe(a float64) float64 {
	switch {
	case math.IsNaN(a):
		return a
	case a == 0:
		return math.Copysign(math.Inf(1), a)
	case math.IsInf(a, 0):
		return math.Copysign(0, a)
	}
	return truncateMantissa(1 / a)
}

func frsqrte(a float64) float64 {
	switch {
	case math.IsNaN(a):
		return a
	case a == 0:
		return math.Copysign(math.Inf(1), a)
	case a < 0:
		return math.NaN()
	case math.IsInf(a, 1):
		return 0
	}
	return truncateMantissa(1 / math.Sqrt(a))
}

func roundTo(x float64, mode RoundingMode) float64 {
	switch mode {
	case RoundPlusInf:
		return math.Ceil(x)
	case RoundMinusInf:
		return math.Floor(x)
	case RoundZero:
		return math.Trunc(x)
	default:
		return math.RoundToEven(x)
	}
}

const (
	two63 = 9223372036854775808.0
	two64 = 18446744073709551616.0
)

// toInt converts with saturation; NaN gives zero
func toInt(x float64, mode RoundingMode, unsigned bool) uint64 {
	if math.IsNaN(x) {
		return 0
	}
	r := roundTo(x, mode)
	if unsigned {
		switch {
		case r <= 0:
			return 0
		case r >= two64:
			return math.MaxUint64
		}
		return uint64(r)
	}
	switch {
	case r >= two63:
		return math.MaxInt64
	case r < -two63:
		return 1 << 63
	}
	return uint64(int64(r))
}

var bigModes = [...]big.RoundingMode{
	RoundNearest:  big.ToNearestEven,
	RoundPlusInf:  big.ToPositiveInf,
	RoundMinusInf: big.ToNegativeInf,
	RoundZero:     big.ToZero,
}

// toFloat converts a 64-bit integer to the nearest double in mode
func toFloat(v uint64, mode RoundingMode, unsigned bool) float64 {
	f := new(big.Float).SetPrec(53).SetMode(bigModes[mode])
	if unsigned {
		f.SetUint64(v)
	} else {
		f.SetInt64(int64(v))
	}
	x, _ := f.Float64()
	return x
}
