package unisimd

import (
	"errors"
	"testing"
)

func TestOpNamesRoundTrip(t *testing.T) {
	for _, op := range Ops() {
		got, ok := ParseOp(op.String())
		if !ok || got != op {
			t.Errorf("ParseOp(%q) = %v, %v", op, got, ok)
		}
		if len(op.Info().Kinds()) == 0 {
			t.Errorf("%s accepts no lane kind", op)
		}
	}
	if len(OpNames()) != int(numOps) {
		t.Errorf("%d names for %d ops", len(OpNames()), numOps)
	}
	if _, ok := ParseOp("vaddpd"); ok {
		t.Error("unknown name accepted")
	}
}

func TestKindSets(t *testing.T) {
	tests := []struct {
		op   Op
		k    Kind
		want bool
	}{
		{OpAdd, F64, true},
		{OpMul, U64, true},
		{OpDiv, S64, false},
		{OpFMA, F64, true},
		{OpShl, F64, false},
		{OpNeg, U64, false},
		{OpAbs, S64, true},
		{OpSelect, F64, true},
		{Op(250), F64, false},
	}
	for _, tt := range tests {
		if got := tt.op.Accepts(tt.k); got != tt.want {
			t.Errorf("%s.Accepts(%s) = %v", tt.op, tt.k, got)
		}
	}
}

func TestParsers(t *testing.T) {
	for in, want := range map[string]Kind{"f64": F64, "I64": S64, "u64": U64, "double": F64} {
		if got, err := ParseKind(in); err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("f32"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ParseKind(f32): %v", err)
	}
	for in, want := range map[string]Rounding{"z": RoundZero, "ceil": RoundPosInf, "floor": RoundNegInf, "nearest": RoundNearest, "fpcr": RoundDynamic} {
		if got, err := ParseRounding(in); err != nil || got != want {
			t.Errorf("ParseRounding(%q) = %v, %v", in, got, err)
		}
	}
	for in, want := range map[string]VReg{"v0": 0, "Q31": 31, "d7": 7} {
		if got, err := ParseVReg(in); err != nil || got != want {
			t.Errorf("ParseVReg(%q) = %v, %v", in, got, err)
		}
	}
	for in, want := range map[string]GPReg{"x0": X0, "sp": SP, "ip1": X17, "x30": LR} {
		if got, err := ParseGPReg(in); err != nil || got != want {
			t.Errorf("ParseGPReg(%q) = %v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"x31", "v32", "w0", "x", ""} {
		if _, err := ParseGPReg(bad); err == nil {
			t.Errorf("ParseGPReg(%q) accepted", bad)
		}
	}
}
