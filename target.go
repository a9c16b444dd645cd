// Completion: 100% - Module complete
package unisimd

import (
	"github.com/go-logr/logr"
)

// ScratchFrame locates the two 128-bit memory slots the emulation layer
// round-trips vector lanes through: slot 0 at Base+Offset, slot 1 at
// Base+Offset+16. The region belongs to the generated program and must not
// alias memory the caller can observe.
type ScratchFrame struct {
	Base   GPReg
	Offset int64
}

func (f ScratchFrame) slot(i int) Mem {
	return Mem{Base: f.Base, Disp: f.Offset + int64(i)*16}
}

// Config describes one code-generation session
type Config struct {
	// Mask is the reserved vector register used as the implicit operand of
	// merge operations. It is clobbered by select and native min/max.
	Mask VReg
	// Scratch is the reserved vector register memory operands are loaded into.
	Scratch VReg
	// Temp is the general-purpose register address materialization and
	// mask-to-branch may clobber.
	Temp GPReg
	// Emu are the general-purpose registers the emulation layer borrows.
	// They are saved and restored around every emulated sequence.
	Emu [2]GPReg
	// Frame is the scratch memory used by emulated operations.
	Frame ScratchFrame
	// Width is the vector width in bits
	Width int

	// NativeCompare64 selects CMGT/CMGE/CMHI/CMHS for ordered 64-bit integer
	// compares instead of the general-purpose round trip.
	NativeCompare64 bool
	// NativeMinMax64 selects a compare and bitwise select through the mask
	// register for 64-bit integer min/max instead of the round trip.
	NativeMinMax64 bool

	Logger logr.Logger
}

// DefaultConfig returns the conventional register assignment:
// v30 mask, v31 scratch, x17 temporary, x9/x10 for emulation and the
// scratch frame at [x28, #0].
func DefaultConfig() Config {
	return Config{
		Mask:    30,
		Scratch: 31,
		Temp:    X17,
		Emu:     [2]GPReg{X9, X10},
		Frame:   ScratchFrame{Base: X28, Offset: 0},
		Width:   128,
		Logger:  logr.Discard(),
	}
}

// Lanes returns the number of 64-bit lanes per vector
func (c Config) Lanes() int {
	return c.Width / 64
}

// Validate checks that the configuration can be used for code generation
// and that every emulated sequence it implies can be encoded.
func (c Config) Validate() error {
	if c.Width != 128 {
		return newError(CategoryConfig, "vector width %d not supported, only 128", c.Width)
	}
	if _, err := resolveRegister(c.Mask); err != nil {
		return newError(CategoryConfig, "mask register: %v", err)
	}
	if _, err := resolveRegister(c.Scratch); err != nil {
		return newError(CategoryConfig, "scratch register: %v", err)
	}
	if c.Mask == c.Scratch {
		return newError(CategoryConfig, "mask and scratch are both %s", c.Mask)
	}

	gp := map[GPReg]string{}
	for _, r := range []struct {
		reg  GPReg
		role string
	}{
		{c.Temp, "temporary"},
		{c.Emu[0], "emulation"},
		{c.Emu[1], "emulation"},
		{c.Frame.Base, "frame base"},
	} {
		if r.reg >= SP {
			return newError(CategoryConfig, "%s register %s cannot be sp/xzr", r.role, r.reg)
		}
		if other, ok := gp[r.reg]; ok {
			return newError(CategoryConfig, "%s register %s is also the %s register", r.role, r.reg, other)
		}
		gp[r.reg] = r.role
	}

	// Every slot access of the emulation layer must encode without
	// materialization, so emulation can never fail at generation time.
	for i := 0; i < 2; i++ {
		slot := c.Frame.slot(i)
		if _, extra, err := resolveMemory(slot, 16, c.Temp); err != nil || len(extra) != 0 {
			return newError(CategoryConfig, "scratch slot %d at %s not directly addressable", i, slot)
		}
		for lane := int64(0); lane < 2; lane++ {
			m := Mem{Base: slot.Base, Disp: slot.Disp + lane*8}
			if _, extra, err := resolveMemory(m, 8, c.Temp); err != nil || len(extra) != 0 {
				return newError(CategoryConfig, "scratch lane %s not directly addressable", m)
			}
		}
	}
	return nil
}
