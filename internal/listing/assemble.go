// Completion: 95% - All vocabulary operations and directives assemble

// Package listing reads a textual assembly listing of the portable SIMD
// vocabulary and emits it through an encoder session.
//
// One statement per line:
//
//	loop:                            ; label
//	add.f64   v1, v2, v3             ; D := S op T
//	add.f64   v1, v2, [x0, #32]      ; memory form
//	add.f64   v1, v3                 ; destructive form
//	shl.u64   v1, v2, #3
//	fma.f64   v0, v1, v2
//	select.u64 v4, v5, v6, v7        ; D, mask, S, T
//	cvti.s64.nearest v1, v2          ; cvti.<kind>[.<mode>], cvtf likewise
//	round.neginf v1, v2
//	ld v1, [x0]                      ; st v1, [x0]
//	bmask.all v3, loop               ; bmask.none likewise
//	b loop
package listing

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	unisimd "github.com/neonkingfr/UniSIMDc-sub002"
	"github.com/neonkingfr/UniSIMDc-sub002/internal/engine"
)

// Error is a listing error tied to a source line
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Mnemonics that are not vocabulary operations
var directives = []string{"ld", "st", "b", "bmask", "cvti", "cvtf", "round"}

// Mnemonics returns every mnemonic the listing accepts, without suffixes
func Mnemonics() []string {
	return append(unisimd.OpNames(), directives...)
}

// Assembler feeds statements to one encoder session. Labels are created
// on first mention, so forward branches work.
type Assembler struct {
	out    *unisimd.Out
	labels map[string]*unisimd.Label
	log    logr.Logger
}

func NewAssembler(out *unisimd.Out, log logr.Logger) *Assembler {
	return &Assembler{out: out, labels: make(map[string]*unisimd.Label), log: log}
}

// Assemble parses src and emits it through out. The caller collects the
// result with out.Finish.
func Assemble(out *unisimd.Out, src string) error {
	stmts, err := Parse(src)
	if err != nil {
		return err
	}
	return NewAssembler(out, out.Config().Logger).Run(stmts)
}

func (a *Assembler) label(name string) *unisimd.Label {
	l, ok := a.labels[name]
	if !ok {
		l = a.out.NewLabel(name)
		a.labels[name] = l
	}
	return l
}

// Run emits every statement in order and stops at the first error
func (a *Assembler) Run(stmts []Statement) error {
	for _, s := range stmts {
		if err := a.statement(s); err != nil {
			return &Error{Line: s.Line, Err: err}
		}
	}
	return nil
}

// Unbound returns the names of labels referenced but never defined
func (a *Assembler) Unbound() []string {
	var names []string
	for name, l := range a.labels {
		if !l.Bound() {
			names = append(names, name)
		}
	}
	return names
}

func (a *Assembler) statement(s Statement) error {
	if s.Label != "" {
		l := a.label(s.Label)
		if l.Bound() {
			return fmt.Errorf("label %q defined twice", s.Label)
		}
		if err := a.out.Bind(l); err != nil {
			return err
		}
	}
	if s.Mnemonic == "" {
		return nil
	}
	before := a.out.Len()
	if err := a.instruction(s.Mnemonic, args(s.Operands)); err != nil {
		return err
	}
	a.log.V(1).Info("statement", "line", s.Line, "mnemonic", s.Mnemonic, "words", a.out.Len()-before)
	return nil
}

func (a *Assembler) instruction(mnemonic string, ops args) error {
	parts := strings.Split(mnemonic, ".")
	base, suffix := parts[0], parts[1:]

	switch base {
	case "ld", "st":
		if err := noSuffix(mnemonic, suffix); err != nil {
			return err
		}
		if err := ops.shape("vm"); err != nil {
			return err
		}
		if base == "ld" {
			return a.out.Load(ops[0].Reg, ops[1].Mem)
		}
		return a.out.Store(ops[0].Reg, ops[1].Mem)
	case "b":
		if err := noSuffix(mnemonic, suffix); err != nil {
			return err
		}
		if err := ops.shape("l"); err != nil {
			return err
		}
		return a.out.Jump(a.label(ops[0].Text))
	case "bmask":
		if len(suffix) != 1 {
			return fmt.Errorf("%s: expected bmask.all or bmask.none", mnemonic)
		}
		state, err := unisimd.ParseMaskState(suffix[0])
		if err != nil {
			return err
		}
		if err := ops.shape("vl"); err != nil {
			return err
		}
		return a.out.BranchMask(ops[0].Reg, state, a.label(ops[1].Text))
	case "cvti", "cvtf":
		return a.convert(base, suffix, ops)
	case "round":
		if len(suffix) > 1 {
			return fmt.Errorf("%s: expected round[.<mode>]", mnemonic)
		}
		mode := unisimd.RoundNearest
		if len(suffix) == 1 {
			m, err := unisimd.ParseRounding(suffix[0])
			if err != nil {
				return err
			}
			mode = m
		}
		if ops.is("vm") {
			return a.out.RoundM(ops[0].Reg, ops[1].Mem, mode)
		}
		if err := ops.shape("vv"); err != nil {
			return err
		}
		return a.out.Round(ops[0].Reg, ops[1].Reg, mode)
	}

	op, ok := unisimd.ParseOp(base)
	if !ok {
		if s := engine.Suggest(base, Mnemonics(), 3); len(s) > 0 {
			return fmt.Errorf("unknown operation %q, did you mean %s?", base, strings.Join(s, " or "))
		}
		return fmt.Errorf("unknown operation %q", base)
	}
	if len(suffix) > 1 {
		return fmt.Errorf("%s: expected %s[.<kind>]", mnemonic, base)
	}
	k := op.Info().Kinds()[0]
	if len(suffix) == 1 {
		var err error
		if k, err = unisimd.ParseKind(suffix[0]); err != nil {
			return err
		}
	}
	return a.operation(op, k, ops)
}

// operation dispatches a vocabulary operation on the shape of its operands
func (a *Assembler) operation(op unisimd.Op, k unisimd.Kind, ops args) error {
	o := a.out
	switch op.Info().Arity {
	case unisimd.ArityUnary:
		switch {
		case ops.is("v"):
			return o.UnaryG(op, k, ops[0].Reg)
		case ops.is("vm"):
			return o.UnaryM(op, k, ops[0].Reg, ops[1].Mem)
		case ops.is("vv"):
			return o.Unary(op, k, ops[0].Reg, ops[1].Reg)
		}
		return ops.shape("vv")
	case unisimd.ArityBinary:
		switch {
		case ops.is("vv"):
			return o.BinaryG(op, k, ops[0].Reg, ops[1].Reg)
		case ops.is("vm"):
			return o.BinaryGM(op, k, ops[0].Reg, ops[1].Mem)
		case ops.is("vvm"):
			return o.BinaryM(op, k, ops[0].Reg, ops[1].Reg, ops[2].Mem)
		case ops.is("vvv"):
			return o.Binary(op, k, ops[0].Reg, ops[1].Reg, ops[2].Reg)
		}
		return ops.shape("vvv")
	case unisimd.ArityShift:
		switch {
		case ops.is("vi"):
			return o.ShiftG(op, k, ops[0].Reg, int(ops[1].Imm))
		case ops.is("vmi"):
			return o.ShiftM(op, k, ops[0].Reg, ops[1].Mem, int(ops[2].Imm))
		case ops.is("vvi"):
			return o.Shift(op, k, ops[0].Reg, ops[1].Reg, int(ops[2].Imm))
		}
		return ops.shape("vvi")
	case unisimd.ArityTernary:
		if ops.is("vvm") {
			return o.TernaryM(op, k, ops[0].Reg, ops[1].Reg, ops[2].Mem)
		}
		if err := ops.shape("vvv"); err != nil {
			return err
		}
		return o.Ternary(op, k, ops[0].Reg, ops[1].Reg, ops[2].Reg)
	case unisimd.AritySelect:
		switch {
		case ops.is("vvv"):
			return o.SelectG(k, ops[0].Reg, ops[1].Reg, ops[2].Reg)
		case ops.is("vvvm"):
			return o.SelectM(k, ops[0].Reg, ops[1].Reg, ops[2].Reg, ops[3].Mem)
		case ops.is("vvvv"):
			return o.Select(k, ops[0].Reg, ops[1].Reg, ops[2].Reg, ops[3].Reg)
		}
		return ops.shape("vvvv")
	}
	return fmt.Errorf("%s: unknown arity", op)
}

// convert handles cvti.<kind>[.<mode>] (float to integer) and
// cvtf.<kind>[.<mode>] (integer to float). The kind names the integer side.
func (a *Assembler) convert(base string, suffix []string, ops args) error {
	if len(suffix) < 1 || len(suffix) > 2 {
		return fmt.Errorf("%s: expected %s.<kind>[.<mode>]", base, base)
	}
	k, err := unisimd.ParseKind(suffix[0])
	if err != nil {
		return err
	}
	mode := unisimd.RoundZero
	if base == "cvtf" {
		mode = unisimd.RoundNearest
	}
	if len(suffix) == 2 {
		if mode, err = unisimd.ParseRounding(suffix[1]); err != nil {
			return err
		}
	}

	mem := ops.is("vm")
	if !mem {
		if err := ops.shape("vv"); err != nil {
			return err
		}
	}
	switch {
	case base == "cvti" && mem:
		return a.out.ConvertToIntM(k, ops[0].Reg, ops[1].Mem, mode)
	case base == "cvti":
		return a.out.ConvertToInt(k, ops[0].Reg, ops[1].Reg, mode)
	case mem:
		return a.out.ConvertToFloatM(k, ops[0].Reg, ops[1].Mem, mode)
	default:
		return a.out.ConvertToFloat(k, ops[0].Reg, ops[1].Reg, mode)
	}
}

func noSuffix(mnemonic string, suffix []string) error {
	if len(suffix) != 0 {
		return fmt.Errorf("%s: unexpected suffix", mnemonic)
	}
	return nil
}

// args is an operand list. Shapes are strings with one letter per
// operand: v register, m memory, i immediate, l label.
type args []Operand

var shapeLetters = map[OperandKind]byte{
	OperandReg:   'v',
	OperandMem:   'm',
	OperandImm:   'i',
	OperandIdent: 'l',
}

func (as args) is(shape string) bool {
	if len(as) != len(shape) {
		return false
	}
	for i, a := range as {
		if shapeLetters[a.Kind] != shape[i] {
			return false
		}
	}
	return true
}

func (as args) shape(want string) error {
	if as.is(want) {
		return nil
	}
	if len(as) != len(want) {
		return fmt.Errorf("expected %d operands, got %d", len(want), len(as))
	}
	for i, a := range as {
		if shapeLetters[a.Kind] != want[i] {
			var kind OperandKind
			for k, letter := range shapeLetters {
				if letter == want[i] {
					kind = k
				}
			}
			return fmt.Errorf("operand %d: expected %s, got %q", i+1, kind, a.Text)
		}
	}
	return nil
}
