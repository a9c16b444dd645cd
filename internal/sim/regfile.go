// Completion: 100% - Module complete

// Package sim is a functional AArch64 executor for the instruction subset
// the encoder emits. Tests use it to check what generated sequences compute.
package sim

import "math"

// RegFile holds the general-purpose state.
type RegFile struct {
	// X holds X0-X30. Index 31 reads as zero (XZR) in data processing
	// and is never written; SP is separate.
	X  [32]uint64
	SP uint64

	PSTATE PSTATE
}

// PSTATE holds the condition flags
type PSTATE struct {
	N, Z, C, V bool
}

// ReadReg reads a register, 31 being XZR
func (r *RegFile) ReadReg(reg uint32) uint64 {
	if reg >= 31 {
		return 0
	}
	return r.X[reg]
}

// ReadRegOrSP reads a register, 31 being SP
func (r *RegFile) ReadRegOrSP(reg uint32) uint64 {
	if reg == 31 {
		return r.SP
	}
	return r.X[reg]
}

// WriteReg writes a register; writes to XZR are dropped
func (r *RegFile) WriteReg(reg uint32, v uint64) {
	if reg < 31 {
		r.X[reg] = v
	}
}

// WriteRegOrSP writes a register, 31 being SP
func (r *RegFile) WriteRegOrSP(reg uint32, v uint64) {
	if reg == 31 {
		r.SP = v
		return
	}
	r.X[reg] = v
}

// Cond evaluates an AArch64 condition code against the flags
func (p PSTATE) Cond(c uint32) bool {
	var ok bool
	switch c >> 1 {
	case 0:
		ok = p.Z
	case 1:
		ok = p.C
	case 2:
		ok = p.N
	case 3:
		ok = p.V
	case 4:
		ok = p.C && !p.Z
	case 5:
		ok = p.N == p.V
	case 6:
		ok = !p.Z && p.N == p.V
	default:
		return true // AL, NV
	}
	if c&1 == 1 {
		return !ok
	}
	return ok
}

// SIMDRegFile holds V0-V31 as pairs of 64-bit lanes
type SIMDRegFile struct {
	V [32][2]uint64
}

// Lanes returns the two 64-bit lanes of a register
func (s *SIMDRegFile) Lanes(reg uint32) [2]uint64 {
	return s.V[reg]
}

// SetLanes writes both lanes of a register
func (s *SIMDRegFile) SetLanes(reg uint32, lanes [2]uint64) {
	s.V[reg] = lanes
}

// F64 returns the two lanes of a register as doubles
func (s *SIMDRegFile) F64(reg uint32) [2]float64 {
	return [2]float64{math.Float64frombits(s.V[reg][0]), math.Float64frombits(s.V[reg][1])}
}

// SetF64 writes two doubles into a register
func (s *SIMDRegFile) SetF64(reg uint32, a, b float64) {
	s.V[reg] = [2]uint64{math.Float64bits(a), math.Float64bits(b)}
}

// I64 returns the two lanes of a register as signed integers
func (s *SIMDRegFile) I64(reg uint32) [2]int64 {
	return [2]int64{int64(s.V[reg][0]), int64(s.V[reg][1])}
}

// SetI64 writes two signed integers into a register
func (s *SIMDRegFile) SetI64(reg uint32, a, b int64) {
	s.V[reg] = [2]uint64{uint64(a), uint64(b)}
}
