package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	unisimd "github.com/neonkingfr/UniSIMDc-sub002"
)

func newOut(t *testing.T) *unisimd.Out {
	t.Helper()
	o, err := unisimd.NewOut(unisimd.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestParse(t *testing.T) {
	src := `
; header comment
loop:   add.f64 v1, v2, [x0, #-32]   // trailing
	shl.u64 v1, v2, #3
done:
	bmask.all v3, loop
`
	got, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Statement{
		{Line: 3, Label: "loop", Mnemonic: "add.f64", Operands: []Operand{
			{Kind: OperandReg, Reg: 1, Text: "v1"},
			{Kind: OperandReg, Reg: 2, Text: "v2"},
			{Kind: OperandMem, Mem: unisimd.Mem{Base: unisimd.X0, Disp: -32}, Text: "[x0, #-32]"},
		}},
		{Line: 4, Mnemonic: "shl.u64", Operands: []Operand{
			{Kind: OperandReg, Reg: 1, Text: "v1"},
			{Kind: OperandReg, Reg: 2, Text: "v2"},
			{Kind: OperandImm, Imm: 3, Text: "3"},
		}},
		{Line: 5, Label: "done"},
		{Line: 6, Mnemonic: "bmask.all", Operands: []Operand{
			{Kind: OperandReg, Reg: 3, Text: "v3"},
			{Kind: OperandIdent, Text: "loop"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int
	}{
		{"add.f64 v1 v2", 1},
		{"\n\nadd.f64 v1, [x0, #1", 3},
		{"ld v1, [v2]", 1},
		{"add.f64 v1, #0xzz", 1},
		{"add.f64 v1, , v2", 1},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		var le *Error
		if !errors.As(err, &le) {
			t.Errorf("%q: error %v is not a listing error", tt.src, err)
			continue
		}
		if le.Line != tt.line {
			t.Errorf("%q: line %d, want %d", tt.src, le.Line, tt.line)
		}
	}
	if _, err := Parse("add.f64 v1, v2 @"); err == nil {
		t.Error("stray character accepted")
	}
}

// Each listing must emit exactly what the equivalent direct calls emit.
func TestAssembleMatchesDirectCalls(t *testing.T) {
	m := unisimd.Mem{Base: unisimd.X0, Disp: 32}
	tests := []struct {
		src    string
		direct func(o *unisimd.Out) error
	}{
		{"add.f64 v1, v2, v3", func(o *unisimd.Out) error { return o.Binary(unisimd.OpAdd, unisimd.F64, 1, 2, 3) }},
		{"add.f64 v1, v2, [x0, #32]", func(o *unisimd.Out) error { return o.BinaryM(unisimd.OpAdd, unisimd.F64, 1, 2, m) }},
		{"sub.s64 v1, v3", func(o *unisimd.Out) error { return o.BinaryG(unisimd.OpSub, unisimd.S64, 1, 3) }},
		{"mul.u64 v1, [x0, 32]", func(o *unisimd.Out) error { return o.BinaryGM(unisimd.OpMul, unisimd.U64, 1, m) }},
		{"sqrt v4, v5", func(o *unisimd.Out) error { return o.Unary(unisimd.OpSqrt, unisimd.F64, 4, 5) }},
		{"neg.s64 v4", func(o *unisimd.Out) error { return o.UnaryG(unisimd.OpNeg, unisimd.S64, 4) }},
		{"mov v4, [x0, #32]", func(o *unisimd.Out) error { return o.UnaryM(unisimd.OpMov, unisimd.F64, 4, m) }},
		{"shl.u64 v1, v2, #3", func(o *unisimd.Out) error { return o.Shift(unisimd.OpShl, unisimd.U64, 1, 2, 3) }},
		{"shr.s64 v1, #63", func(o *unisimd.Out) error { return o.ShiftG(unisimd.OpShr, unisimd.S64, 1, 63) }},
		{"shr.u64 v1, [x0, #32], #1", func(o *unisimd.Out) error { return o.ShiftM(unisimd.OpShr, unisimd.U64, 1, m, 1) }},
		{"fma v0, v1, v2", func(o *unisimd.Out) error { return o.FMA(0, 1, 2) }},
		{"fms.f64 v0, v1, [x0, #32]", func(o *unisimd.Out) error { return o.TernaryM(unisimd.OpFMS, unisimd.F64, 0, 1, m) }},
		{"select.u64 v4, v5, v6, v7", func(o *unisimd.Out) error { return o.Select(unisimd.U64, 4, 5, 6, 7) }},
		{"select.f64 v4, v5, v7", func(o *unisimd.Out) error { return o.SelectG(unisimd.F64, 4, 5, 7) }},
		{"select.s64 v4, v5, v6, [x0, #32]", func(o *unisimd.Out) error { return o.SelectM(unisimd.S64, 4, 5, 6, m) }},
		{"lt.s64 v1, v2, v3", func(o *unisimd.Out) error { return o.Compare(unisimd.OpLt, unisimd.S64, 1, 2, 3) }},
		{"cvti.s64.nearest v1, v2", func(o *unisimd.Out) error { return o.ConvertToInt(unisimd.S64, 1, 2, unisimd.RoundNearest) }},
		{"cvti.u64 v1, [x0, #32]", func(o *unisimd.Out) error { return o.ConvertToIntM(unisimd.U64, 1, m, unisimd.RoundZero) }},
		{"cvtf.s64 v1, v2", func(o *unisimd.Out) error { return o.ConvertToFloat(unisimd.S64, 1, 2, unisimd.RoundNearest) }},
		{"cvtf.u64.dynamic v1, [x0, #32]", func(o *unisimd.Out) error { return o.ConvertToFloatM(unisimd.U64, 1, m, unisimd.RoundDynamic) }},
		{"round.neginf v1, v2", func(o *unisimd.Out) error { return o.Round(1, 2, unisimd.RoundNegInf) }},
		{"round v1, [x0, #32]", func(o *unisimd.Out) error { return o.RoundM(1, m, unisimd.RoundNearest) }},
		{"ld v1, [x0, #32]", func(o *unisimd.Out) error { return o.Load(1, m) }},
		{"st v1, [x0, #32]", func(o *unisimd.Out) error { return o.Store(1, m) }},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, want := newOut(t), newOut(t)
			if err := Assemble(got, tt.src); err != nil {
				t.Fatal(err)
			}
			if err := tt.direct(want); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want.Words(), got.Words()); diff != "" {
				t.Errorf("words (-direct +listing):\n%s", diff)
			}
		})
	}
}

func TestAssembleLabels(t *testing.T) {
	src := `
	bmask.none v3, done
loop:
	add.f64 v1, v1, v2
	b loop
done:
`
	got := newOut(t)
	if err := Assemble(got, src); err != nil {
		t.Fatal(err)
	}
	gotWords, err := got.Finish()
	if err != nil {
		t.Fatal(err)
	}

	want := newOut(t)
	done, loop := want.NewLabel("done"), want.NewLabel("loop")
	for _, step := range []error{
		want.BranchMask(3, unisimd.AllFalse, done),
		want.Bind(loop),
		want.Add(unisimd.F64, 1, 1, 2),
		want.Jump(loop),
		want.Bind(done),
	} {
		if step != nil {
			t.Fatal(step)
		}
	}
	wantWords, err := want.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantWords, gotWords); diff != "" {
		t.Errorf("words (-direct +listing):\n%s", diff)
	}
}

func TestAssembleUnboundLabel(t *testing.T) {
	o := newOut(t)
	stmts, err := Parse("b nowhere")
	if err != nil {
		t.Fatal(err)
	}
	a := NewAssembler(o, o.Config().Logger)
	if err := a.Run(stmts); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"nowhere"}, a.Unbound()); diff != "" {
		t.Error(diff)
	}
	if _, err := o.Finish(); !errors.Is(err, unisimd.ErrUnboundLabel) {
		t.Errorf("Finish: %v", err)
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		src  string
		is   error
		text string
	}{
		{"ad.f64 v1, v2, v3", nil, "did you mean add or and"},
		{"vfmaddpd v1, v2, v3", nil, `unknown operation "vfmaddpd"`},
		{"div.s64 v1, v2, v3", unisimd.ErrUnsupported, ""},
		{"add.f65 v1, v2, v3", unisimd.ErrUnsupported, ""},
		{"add.f64 v1, v30, v3", unisimd.ErrInvalidOperand, ""},
		{"add.f64 v1, [x0, #0x100000000]", unisimd.ErrDisplacement, ""},
		{"add.f64 v1, v2, #3", nil, "operand 3: expected vector register"},
		{"fma v1, v2", nil, "expected 3 operands, got 2"},
		{"bmask.some v1, x", unisimd.ErrUnsupported, ""},
		{"cvti v1, v2", nil, "expected cvti.<kind>"},
		{"round.zero.f64 v1, v2", nil, "expected round[.<mode>]"},
		{"x:\nx:", nil, `label "x" defined twice`},
		{"ld.f64 v1, [x0]", nil, "unexpected suffix"},
	}
	for _, tt := range tests {
		err := Assemble(newOut(t), tt.src)
		if err == nil {
			t.Errorf("%q accepted", tt.src)
			continue
		}
		if tt.is != nil && !errors.Is(err, tt.is) {
			t.Errorf("%q: %v, want %v", tt.src, err, tt.is)
		}
		if !strings.Contains(err.Error(), tt.text) {
			t.Errorf("%q: %v, want it to contain %q", tt.src, err, tt.text)
		}
	}
}

func TestFailedStatementLeavesNoWords(t *testing.T) {
	o := newOut(t)
	err := Assemble(o, "add.f64 v1, v2, v3\nadd.f64 v1, [x0, #0x100000000]")
	var le *Error
	if !errors.As(err, &le) || le.Line != 2 {
		t.Fatalf("error %v", err)
	}
	if o.Len() != 1 {
		t.Errorf("%d words, want 1", o.Len())
	}
}
