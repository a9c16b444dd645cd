// Completion: 100% - Module complete
package unisimd

import "fmt"

// address_types.go - memory operands and the addressing modes they resolve to

// Mem is a memory operand: the address Base + Disp. The element scale is
// not part of the operand; it is the access size of the instruction using it.
type Mem struct {
	Base GPReg
	Disp int64
}

func (m Mem) String() string {
	if m.Disp == 0 {
		return fmt.Sprintf("[%s]", m.Base)
	}
	return fmt.Sprintf("[%s, #%d]", m.Base, m.Disp)
}

// addrClass is the encoding class a memory operand resolves to
type addrClass int

const (
	// addrScaled: unsigned 12-bit immediate in units of the access size
	addrScaled addrClass = iota
	// addrUnscaled: signed 9-bit byte immediate (LDUR/STUR)
	addrUnscaled
	// addrIndexed16: displacement materialized in one MOVZ/MOVN,
	// accessed as [base, temp]
	addrIndexed16
	// addrIndexed32: displacement materialized in MOVZ/MOVN + MOVK
	addrIndexed32
)

func (c addrClass) String() string {
	switch c {
	case addrScaled:
		return "scaled"
	case addrUnscaled:
		return "unscaled"
	case addrIndexed16:
		return "indexed16"
	case addrIndexed32:
		return "indexed32"
	default:
		return "unknown"
	}
}

// addrMode is a resolved memory operand
type addrMode struct {
	class addrClass
	base  uint32
	index uint32 // materialization temporary, indexed classes only
	imm   int64  // scaled units (addrScaled) or bytes (addrUnscaled)
}

const (
	maxScaledImm = 1<<12 - 1
	minUnscaled  = -256
	maxUnscaled  = 255
)

// resolveMemory picks the cheapest encoding for m accessed with the given
// element scale. Displacements that fit neither immediate form are
// materialized into temp; the returned words must be emitted before the
// access. It has no side effects.
func resolveMemory(m Mem, scale int, temp GPReg) (addrMode, []Word, error) {
	switch scale {
	case 1, 2, 4, 8, 16:
	default:
		return addrMode{}, nil, newError(CategoryInternal, "element scale %d", scale)
	}
	base, err := resolveGP(m.Base)
	if err != nil {
		return addrMode{}, nil, err
	}

	d := m.Disp
	if d >= 0 && d%int64(scale) == 0 && d/int64(scale) <= maxScaledImm {
		return addrMode{class: addrScaled, base: base, imm: d / int64(scale)}, nil, nil
	}
	if d >= minUnscaled && d <= maxUnscaled {
		return addrMode{class: addrUnscaled, base: base, imm: d}, nil, nil
	}

	t, err := resolveGP(temp)
	if err != nil {
		return addrMode{}, nil, err
	}
	if temp == m.Base {
		return addrMode{}, nil, newError(CategoryOperand, "base %s is the materialization temporary", m.Base)
	}
	if temp >= SP {
		return addrMode{}, nil, newError(CategoryOperand, "materialization temporary cannot be %s", temp)
	}
	am := addrMode{base: base, index: t}

	switch {
	case d >= -1<<16 && d < 1<<16:
		am.class = addrIndexed16
		w, err := materialize16(t, d)
		if err != nil {
			return addrMode{}, nil, err
		}
		return am, []Word{w}, nil
	case d >= -1<<31 && d < 1<<31:
		am.class = addrIndexed32
		// MOVZ/MOVN set the low half and the sign of the upper bits,
		// MOVK then fills bits 31:16.
		var first Word
		if d >= 0 {
			first, err = movWide(opMOVZ, t, uint16(d), 0)
		} else {
			first, err = movWide(opMOVN, t, ^uint16(d), 0)
		}
		if err != nil {
			return addrMode{}, nil, err
		}
		second, err := movWide(opMOVK, t, uint16(d>>16), 1)
		if err != nil {
			return addrMode{}, nil, err
		}
		return am, []Word{first, second}, nil
	}
	return addrMode{}, nil, newError(CategoryDisplacement, "%d exceeds the signed 32-bit materialization range", d)
}

// materialize16 loads a displacement in -65536..65535 with a single move
func materialize16(t uint32, d int64) (Word, error) {
	if d >= 0 {
		return movWide(opMOVZ, t, uint16(d), 0)
	}
	return movWide(opMOVN, t, uint16(^d), 0)
}
