// Completion: 100% - Module complete
package unisimd

import (
	"sort"
	"strings"
)

// Kind is the static lane interpretation of an operation. It selects the
// opcode template (float vs integer, signed vs unsigned) once per call.
type Kind uint8

const (
	F64 Kind = iota // 64-bit IEEE 754 double
	S64             // 64-bit signed integer
	U64             // 64-bit unsigned integer
)

func (k Kind) String() string {
	switch k {
	case F64:
		return "f64"
	case S64:
		return "s64"
	case U64:
		return "u64"
	default:
		return "unknown"
	}
}

// ParseKind parses "f64", "s64" or "u64" ("i64" is accepted for s64)
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "f64", "d", "double":
		return F64, nil
	case "s64", "i64":
		return S64, nil
	case "u64":
		return U64, nil
	}
	return 0, newError(CategoryUnsupported, "unknown lane kind %q", s)
}

type kindSet uint8

const (
	kF   kindSet = 1 << F64
	kS   kindSet = 1 << S64
	kU   kindSet = 1 << U64
	kInt         = kS | kU
	kAll         = kF | kS | kU
)

func (ks kindSet) has(k Kind) bool {
	return k <= U64 && ks&(1<<k) != 0
}

// Arity is the operand shape of an operation
type Arity int

const (
	ArityUnary   Arity = iota // D := op S
	ArityBinary               // D := S op T
	ArityShift                // D := S shifted by an immediate count
	ArityTernary              // G := G op (S * T)
	AritySelect               // D := Mask ? S : T, bitwise
)

func (a Arity) String() string {
	switch a {
	case ArityUnary:
		return "unary"
	case ArityBinary:
		return "binary"
	case ArityShift:
		return "shift"
	case ArityTernary:
		return "ternary"
	case AritySelect:
		return "select"
	default:
		return "unknown"
	}
}

// Op names one operation of the portable vocabulary
type Op uint8

const (
	OpMov Op = iota
	OpNot
	OpAnd
	OpOr
	OpXor
	OpAndNot
	OpOrNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpSqrt
	OpRcpEst
	OpRcpStep
	OpRsqrtEst
	OpRsqrtStep
	OpFMA
	OpFMS
	OpNeg
	OpAbs
	OpMin
	OpMax
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpShlV
	OpShrV
	OpSelect
	numOps
)

// OpInfo describes an operation of the vocabulary
type OpInfo struct {
	Name  string
	Arity Arity
	Doc   string
	kinds kindSet
}

// Kinds returns the lane kinds the operation is defined for
func (i OpInfo) Kinds() []Kind {
	var ks []Kind
	for k := F64; k <= U64; k++ {
		if i.kinds.has(k) {
			ks = append(ks, k)
		}
	}
	return ks
}

var opTable = [numOps]OpInfo{
	OpMov:       {"mov", ArityUnary, "copy", kAll},
	OpNot:       {"not", ArityUnary, "bitwise complement", kAll},
	OpAnd:       {"and", ArityBinary, "S & T", kAll},
	OpOr:        {"or", ArityBinary, "S | T", kAll},
	OpXor:       {"xor", ArityBinary, "S ^ T", kAll},
	OpAndNot:    {"andnot", ArityBinary, "~S & T", kAll},
	OpOrNot:     {"ornot", ArityBinary, "~S | T", kAll},
	OpAdd:       {"add", ArityBinary, "S + T", kAll},
	OpSub:       {"sub", ArityBinary, "S - T", kAll},
	OpMul:       {"mul", ArityBinary, "S * T, integer lanes emulated", kAll},
	OpDiv:       {"div", ArityBinary, "S / T", kF},
	OpSqrt:      {"sqrt", ArityUnary, "square root", kF},
	OpRcpEst:    {"rcpe", ArityUnary, "reciprocal estimate", kF},
	OpRcpStep:   {"rcps", ArityBinary, "refine estimate S of 1/T: S * (2 - S*T)", kF},
	OpRsqrtEst:  {"rsqe", ArityUnary, "reciprocal square root estimate", kF},
	OpRsqrtStep: {"rsqs", ArityBinary, "refine estimate S of 1/sqrt(T): S * (3 - S*S*T) / 2", kF},
	OpFMA:       {"fma", ArityTernary, "G + S*T, fused", kF},
	OpFMS:       {"fms", ArityTernary, "G - S*T, fused", kF},
	OpNeg:       {"neg", ArityUnary, "negate", kF | kS},
	OpAbs:       {"abs", ArityUnary, "absolute value", kF | kS},
	OpMin:       {"min", ArityBinary, "lane minimum, integer lanes emulated", kAll},
	OpMax:       {"max", ArityBinary, "lane maximum, integer lanes emulated", kAll},
	OpEq:        {"eq", ArityBinary, "S == T mask", kAll},
	OpNe:        {"ne", ArityBinary, "S != T mask, complement of eq", kAll},
	OpLt:        {"lt", ArityBinary, "S < T mask", kAll},
	OpLe:        {"le", ArityBinary, "S <= T mask", kAll},
	OpGt:        {"gt", ArityBinary, "S > T mask", kAll},
	OpGe:        {"ge", ArityBinary, "S >= T mask", kAll},
	OpShl:       {"shl", ArityShift, "shift left by constant, count mod 64", kInt},
	OpShr:       {"shr", ArityShift, "shift right by constant (s64 arithmetic, u64 logical), count mod 64", kInt},
	OpShlV:      {"shlv", ArityBinary, "shift S left by per-lane counts in T, count mod 64", kInt},
	OpShrV:      {"shrv", ArityBinary, "shift S right by per-lane counts in T, count mod 64", kInt},
	OpSelect:    {"select", AritySelect, "Mask ? S : T, bitwise, clobbers the mask register", kAll},
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, numOps)
	for op := Op(0); op < numOps; op++ {
		m[opTable[op].Name] = op
	}
	return m
}()

func (op Op) String() string {
	if op >= numOps {
		return "op?"
	}
	return opTable[op].Name
}

// Info returns the vocabulary entry of op
func (op Op) Info() OpInfo {
	if op >= numOps {
		return OpInfo{Name: "op?"}
	}
	return opTable[op]
}

// Accepts reports whether op is defined for lane kind k
func (op Op) Accepts(k Kind) bool {
	return op < numOps && opTable[op].kinds.has(k)
}

// ParseOp looks up an operation by its vocabulary name
func ParseOp(name string) (Op, bool) {
	op, ok := opsByName[strings.ToLower(name)]
	return op, ok
}

// OpNames returns every vocabulary name, sorted
func OpNames() []string {
	names := make([]string, 0, numOps)
	for name := range opsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ops returns the whole vocabulary in declaration order
func Ops() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// check validates an op/kind pair against the arity the caller used
func check(op Op, k Kind, arity Arity) error {
	if op >= numOps {
		return newError(CategoryUnsupported, "operation %d", op)
	}
	info := opTable[op]
	if info.Arity != arity {
		return newError(CategoryUnsupported, "%s is %s, used as %s", info.Name, info.Arity, arity)
	}
	if !info.kinds.has(k) {
		return newError(CategoryUnsupported, "%s not defined for %s lanes", info.Name, k)
	}
	return nil
}

func opName(op Op, k Kind) string {
	return op.String() + "." + k.String()
}
