package unisimd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForwardAndBackwardLabels(t *testing.T) {
	o := newTestOut(t)
	top := o.NewLabel("top")
	end := o.NewLabel("end")
	must(t, o.Bind(top)) // 0
	must(t, o.Jump(end)) // 0: b +3
	must(t, o.Mov(1, 2)) // 1
	must(t, o.Jump(top)) // 2: b -2
	must(t, o.Bind(end)) // 3
	must(t, o.Jump(end)) // 3: b +0
	words, err := o.Finish()
	must(t, err)
	want := []Word{0x14000003, 0x4ea21c41, 0x17fffffe, 0x14000000}
	if diff := cmp.Diff(want, words); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !top.Bound() || top.Name() != "top" {
		t.Errorf("label state %v %q", top.Bound(), top.Name())
	}
}

func TestUnboundLabel(t *testing.T) {
	o := newTestOut(t)
	l := o.NewLabel("nowhere")
	must(t, o.Jump(l))
	if _, err := o.Finish(); !errors.Is(err, ErrUnboundLabel) {
		t.Errorf("got %v, want ErrUnboundLabel", err)
	}
	must(t, o.Bind(l))
	if _, err := o.Finish(); err != nil {
		t.Errorf("after bind: %v", err)
	}
}

func TestLabelMisuse(t *testing.T) {
	o := newTestOut(t)
	l := o.NewLabel("twice")
	must(t, o.Bind(l))
	if err := o.Bind(l); !errors.Is(err, ErrUnboundLabel) {
		t.Errorf("double bind: %v", err)
	}
	if err := o.Jump(nil); !errors.Is(err, ErrUnboundLabel) {
		t.Errorf("nil label: %v", err)
	}
}

// Bind refuses a branch it cannot reach and leaves the label unbound
func TestBranchOutOfRange(t *testing.T) {
	o := newTestOut(t)
	far := o.NewLabel("far")
	must(t, o.BranchMask(0, AllTrue, far))
	for i := 0; i < 1<<18; i++ {
		must(t, o.Mov(1, 2))
	}
	if err := o.Bind(far); !errors.Is(err, ErrImmediateRange) {
		t.Fatalf("got %v, want ErrImmediateRange", err)
	}
	if far.Bound() {
		t.Error("label bound despite the error")
	}
	if _, err := o.Finish(); !errors.Is(err, ErrUnboundLabel) {
		t.Errorf("Finish: %v", err)
	}
}
