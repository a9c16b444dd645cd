package unisimd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// each runs f for every op of the given arity and every kind it accepts
func each(arity Arity, f func(op Op, k Kind)) {
	for _, op := range Ops() {
		info := op.Info()
		if info.Arity != arity {
			continue
		}
		for _, k := range info.Kinds() {
			f(op, k)
		}
	}
}

func configs() map[string][]func(*Config) {
	return map[string][]func(*Config){
		"emulated": nil,
		"native":   {nativeInts},
	}
}

func TestDestructiveMatchesFunctional(t *testing.T) {
	for name, opts := range configs() {
		each(ArityBinary, func(op Op, k Kind) {
			a, b := newTestOut(t, opts...), newTestOut(t, opts...)
			must(t, a.BinaryG(op, k, 4, 5))
			must(t, b.Binary(op, k, 4, 4, 5))
			if diff := cmp.Diff(b.Words(), a.Words()); diff != "" {
				t.Errorf("%s %s: BinaryG differs (-functional +destructive):\n%s", name, opName(op, k), diff)
			}
		})
		each(ArityUnary, func(op Op, k Kind) {
			a, b := newTestOut(t, opts...), newTestOut(t, opts...)
			must(t, a.UnaryG(op, k, 4))
			must(t, b.Unary(op, k, 4, 4))
			if diff := cmp.Diff(b.Words(), a.Words()); diff != "" {
				t.Errorf("%s %s: UnaryG differs:\n%s", name, opName(op, k), diff)
			}
		})
		each(ArityShift, func(op Op, k Kind) {
			a, b := newTestOut(t, opts...), newTestOut(t, opts...)
			must(t, a.ShiftG(op, k, 4, 7))
			must(t, b.Shift(op, k, 4, 4, 7))
			if diff := cmp.Diff(b.Words(), a.Words()); diff != "" {
				t.Errorf("%s %s: ShiftG differs:\n%s", name, opName(op, k), diff)
			}
		})
		each(AritySelect, func(op Op, k Kind) {
			a, b := newTestOut(t, opts...), newTestOut(t, opts...)
			must(t, a.SelectG(k, 4, 6, 5))
			must(t, b.Select(k, 4, 6, 4, 5))
			if diff := cmp.Diff(b.Words(), a.Words()); diff != "" {
				t.Errorf("%s %s: SelectG differs:\n%s", name, opName(op, k), diff)
			}
		})
	}
}

// Every memory form is the operand load into scratch followed by the
// register form reading scratch.
func TestMemoryFormLaw(t *testing.T) {
	mems := []Mem{{Base: X0, Disp: 32}, {Base: X0, Disp: -8}, {Base: X0, Disp: 100000}}
	for name, opts := range configs() {
		for _, m := range mems {
			law := func(label string, got *Out, lower func(o *Out, scr uint32) error) {
				t.Helper()
				want := newTestOut(t, opts...)
				scr, err := want.loadScratch(m)
				must(t, err)
				must(t, lower(want, scr))
				if diff := cmp.Diff(want.Words(), got.Words()); diff != "" {
					t.Errorf("%s %s %s: (-want +got):\n%s", name, label, m, diff)
				}
			}
			each(ArityBinary, func(op Op, k Kind) {
				o := newTestOut(t, opts...)
				must(t, o.BinaryM(op, k, 1, 2, m))
				law(opName(op, k), o, func(w *Out, scr uint32) error { return w.binaryRR(op, k, 1, 2, scr) })
			})
			each(ArityUnary, func(op Op, k Kind) {
				o := newTestOut(t, opts...)
				must(t, o.UnaryM(op, k, 1, m))
				law(opName(op, k), o, func(w *Out, scr uint32) error { return w.unaryRR(op, k, 1, scr) })
			})
			each(ArityShift, func(op Op, k Kind) {
				o := newTestOut(t, opts...)
				must(t, o.ShiftM(op, k, 1, m, 9))
				law(opName(op, k), o, func(w *Out, scr uint32) error { return w.shiftRR(op, k, 1, scr, 9) })
			})
			each(ArityTernary, func(op Op, k Kind) {
				o := newTestOut(t, opts...)
				must(t, o.TernaryM(op, k, 1, 2, m))
				law(opName(op, k), o, func(w *Out, scr uint32) error { return w.ternaryRR(op, k, 1, 2, scr) })
			})

			o := newTestOut(t, opts...)
			must(t, o.SelectM(U64, 1, 2, 3, m))
			law("select", o, func(w *Out, scr uint32) error { return w.selectRR(1, 2, 3, scr) })

			o = newTestOut(t, opts...)
			must(t, o.ConvertToIntM(S64, 1, m, RoundDynamic))
			law("cvti", o, func(w *Out, scr uint32) error { return w.toIntRR(S64, 1, scr, RoundDynamic) })

			o = newTestOut(t, opts...)
			must(t, o.ConvertToFloatM(U64, 1, m, RoundNearest))
			law("cvtf", o, func(w *Out, scr uint32) error { return w.toFloatRR(U64, 1, scr, RoundNearest) })

			o = newTestOut(t, opts...)
			must(t, o.RoundM(1, m, RoundNegInf))
			law("round", o, func(w *Out, scr uint32) error { return w.roundRR(1, scr, RoundNegInf) })
		}
	}
}

func TestOperandReversals(t *testing.T) {
	o := newTestOut(t)
	must(t, o.Binary(OpAndNot, U64, 0, 1, 2))
	must(t, o.Binary(OpOrNot, U64, 0, 1, 2))
	must(t, o.Binary(OpLt, F64, 0, 1, 2))
	must(t, o.Binary(OpLe, F64, 0, 1, 2))
	must(t, o.Binary(OpNe, F64, 0, 1, 2))
	want := []Word{
		0x4e611c40, // bic v0.16b, v2.16b, v1.16b
		0x4ee11c40, // orn v0.16b, v2.16b, v1.16b
		0x6ee1e440, // fcmgt v0.2d, v2.2d, v1.2d
		0x6e61e440, // fcmge v0.2d, v2.2d, v1.2d
		0x4e62e420, // fcmeq v0.2d, v1.2d, v2.2d
		0x6e205800, // not v0.16b, v0.16b
	}
	if diff := cmp.Diff(want, o.Words()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEmulatedSequence(t *testing.T) {
	o := newTestOut(t)
	must(t, o.Mul(S64, 0, 1, 2))
	want := []Word{
		0xa9bf2be9, // stp x9, x10, [sp, #-16]!
		0x3d800381, // str q1, [x28]
		0x3d800782, // str q2, [x28, #16]
		0xf9400389, // ldr x9, [x28]
		0xf9400b8a, // ldr x10, [x28, #16]
		0x9b0a7d29, // mul x9, x9, x10
		0xf9000389, // str x9, [x28]
		0xf9400789, // ldr x9, [x28, #8]
		0xf9400f8a, // ldr x10, [x28, #24]
		0x9b0a7d29, // mul x9, x9, x10
		0xf9000789, // str x9, [x28, #8]
		0x3dc00380, // ldr q0, [x28]
		0xa8c12be9, // ldp x9, x10, [sp], #16
	}
	if diff := cmp.Diff(want, o.Words()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if s := o.Stats(); s.Emulated != 1 || s.Words != len(want) {
		t.Errorf("stats = %+v", s)
	}
}

func TestReservedRegistersRejected(t *testing.T) {
	o := newTestOut(t)
	cfg := o.Config()
	calls := map[string]func() error{
		"dest is mask":      func() error { return o.Binary(OpAdd, F64, cfg.Mask, 1, 2) },
		"source is scratch": func() error { return o.Binary(OpAdd, F64, 0, cfg.Scratch, 2) },
		"unary scratch":     func() error { return o.Unary(OpSqrt, F64, cfg.Scratch, 1) },
		"select mask":       func() error { return o.Select(U64, 0, cfg.Mask, 1, 2) },
		"load into scratch": func() error { return o.Load(cfg.Scratch, Mem{Base: X0}) },
		"branch on mask":    func() error { return o.BranchMask(cfg.Mask, AllTrue, o.NewLabel("l")) },
		"out of range":      func() error { return o.Mov(40, 1) },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrInvalidOperand) {
			t.Errorf("%s: got %v, want ErrInvalidOperand", name, err)
		}
	}
	if o.Len() != 0 {
		t.Errorf("rejected calls left %d words", o.Len())
	}
}

func TestUnsupportedCombinations(t *testing.T) {
	o := newTestOut(t)
	calls := map[string]func() error{
		"div.s64":          func() error { return o.Binary(OpDiv, S64, 0, 1, 2) },
		"sqrt.u64":         func() error { return o.Unary(OpSqrt, U64, 0, 1) },
		"shl.f64":          func() error { return o.Shift(OpShl, F64, 0, 1, 3) },
		"abs.u64":          func() error { return o.Unary(OpAbs, U64, 0, 1) },
		"add as unary":     func() error { return o.Unary(OpAdd, F64, 0, 1) },
		"sqrt as binary":   func() error { return o.Binary(OpSqrt, F64, 0, 1, 2) },
		"cvtf toward +inf": func() error { return o.ConvertToFloat(S64, 0, 1, RoundPosInf) },
		"cvti to f64":      func() error { return o.ConvertToInt(F64, 0, 1, RoundZero) },
		"unknown op":       func() error { return o.Binary(Op(200), F64, 0, 1, 2) },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: got %v, want ErrUnsupported", name, err)
		}
	}
}

func TestErrorsCarryOperation(t *testing.T) {
	o := newTestOut(t)
	err := o.Binary(OpDiv, S64, 0, 1, 2)
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("got %T, want *EncodeError", err)
	}
	if ee.Op != "div.s64" || ee.Category != CategoryUnsupported {
		t.Errorf("got op %q category %s", ee.Op, ee.Category)
	}
}

func TestRollbackOnFailure(t *testing.T) {
	o := newTestOut(t)
	must(t, o.Add(F64, 0, 1, 2))
	before := o.Words()

	// BranchMask emits three words before it reaches the foreign label
	other := newTestOut(t)
	err := o.BranchMask(3, AllTrue, other.NewLabel("elsewhere"))
	if !errors.Is(err, ErrUnboundLabel) {
		t.Fatalf("got %v, want a label error", err)
	}
	if diff := cmp.Diff(before, o.Words()); diff != "" {
		t.Errorf("stream changed by a rejected call:\n%s", diff)
	}

	// the emulation registers must be available again
	must(t, o.Mul(U64, 0, 1, 2))
}
