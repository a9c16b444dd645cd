// Completion: 100% - Module complete
package unisimd

import (
	"fmt"
	"strconv"
	"strings"
)

// Register handles for the AArch64 register files.
//
// Both files are addressed by a 5-bit field in every instruction word:
//   - vector:          v0..v31 (128-bit, viewed as two 64-bit lanes, .2D)
//   - general purpose: x0..x30, index 31 is sp or xzr depending on the field

// VReg is a vector register handle. Values above 31 do not name a register
// and are rejected when resolved.
type VReg uint8

// GPReg is a general-purpose register handle
type GPReg uint8

const numRegs = 32

// Well-known general-purpose registers
const (
	X0  GPReg = 0
	X9  GPReg = 9
	X10 GPReg = 10
	X16 GPReg = 16 // ip0
	X17 GPReg = 17 // ip1
	X28 GPReg = 28
	FP  GPReg = 29
	LR  GPReg = 30
	SP  GPReg = 31 // in base/address fields; reads as xzr elsewhere
)

func (r VReg) String() string {
	if r >= numRegs {
		return fmt.Sprintf("v?%d", uint8(r))
	}
	return "v" + strconv.Itoa(int(r))
}

func (r GPReg) String() string {
	switch {
	case r == SP:
		return "sp"
	case r < SP:
		return "x" + strconv.Itoa(int(r))
	default:
		return fmt.Sprintf("x?%d", uint8(r))
	}
}

var gpAliases = map[string]GPReg{
	"sp":  SP,
	"fp":  FP,
	"lr":  LR,
	"ip0": X16,
	"ip1": X17,
}

// ParseVReg parses "v0".."v31" (also accepts "q" and "d" prefixes)
func ParseVReg(name string) (VReg, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) < 2 || (s[0] != 'v' && s[0] != 'q' && s[0] != 'd') {
		return 0, newError(CategoryOperand, "not a vector register: %q", name)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= numRegs {
		return 0, newError(CategoryOperand, "not a vector register: %q", name)
	}
	return VReg(n), nil
}

// ParseGPReg parses "x0".."x30" and the aliases sp, fp, lr, ip0, ip1
func ParseGPReg(name string) (GPReg, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if r, ok := gpAliases[s]; ok {
		return r, nil
	}
	if len(s) < 2 || s[0] != 'x' {
		return 0, newError(CategoryOperand, "not a general-purpose register: %q", name)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 30 {
		return 0, newError(CategoryOperand, "not a general-purpose register: %q", name)
	}
	return GPReg(n), nil
}

// resolveRegister maps a vector handle to its 5-bit physical index
func resolveRegister(r VReg) (uint32, error) {
	if r >= numRegs {
		return 0, newError(CategoryOperand, "vector register %d out of range", uint8(r))
	}
	return uint32(r), nil
}

func resolveGP(r GPReg) (uint32, error) {
	if r >= numRegs {
		return 0, newError(CategoryOperand, "general-purpose register %d out of range", uint8(r))
	}
	return uint32(r), nil
}

// vreg resolves a caller-supplied vector operand. The reserved mask and
// scratch registers belong to the encoder and are refused as caller data.
func (o *Out) vreg(r VReg) (uint32, error) {
	idx, err := resolveRegister(r)
	if err != nil {
		return 0, err
	}
	switch r {
	case o.cfg.Mask:
		return 0, newError(CategoryOperand, "%s is the reserved mask register", r)
	case o.cfg.Scratch:
		return 0, newError(CategoryOperand, "%s is the reserved scratch register", r)
	}
	return idx, nil
}

// vregs resolves several caller operands at once
func (o *Out) vregs(rs ...VReg) ([]uint32, error) {
	out := make([]uint32, len(rs))
	for i, r := range rs {
		idx, err := o.vreg(r)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// parseGPPair parses two general-purpose registers separated by a comma
func parseGPPair(s string) ([2]GPReg, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return [2]GPReg{}, newError(CategoryOperand, "want two registers, got %q", s)
	}
	r0, err := ParseGPReg(a)
	if err != nil {
		return [2]GPReg{}, err
	}
	r1, err := ParseGPReg(b)
	if err != nil {
		return [2]GPReg{}, err
	}
	return [2]GPReg{r0, r1}, nil
}
