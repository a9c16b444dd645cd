// Completion: 100% - Instruction implementation complete
package unisimd

// Branches and labels. A branch to a label that is not bound yet is emitted
// with a zero offset and recorded as a fixup; Bind patches every pending
// fixup of the label. Offsets are in bytes from the branch itself.
//
//   B.cond  imm19  +-1 MiB
//   B       imm26  +-128 MiB

// Label is a position in an Out's word stream
type Label struct {
	name  string
	out   *Out
	bound bool
	pos   int // word index, valid once bound
}

// Name returns the name the label was created with
func (l *Label) Name() string {
	return l.name
}

// Bound reports whether Bind has been called for l
func (l *Label) Bound() bool {
	return l.bound
}

type fixup struct {
	label       *Label
	at          int // word index of the branch
	c           cond
	conditional bool
}

func (f fixup) encode(target int) (Word, error) {
	delta := int64(target-f.at) * 4
	if f.conditional {
		return branchCond(f.c, delta)
	}
	return branch(delta)
}

// NewLabel creates an unbound label owned by o
func (o *Out) NewLabel(name string) *Label {
	return &Label{name: name, out: o}
}

func (o *Out) ownLabel(l *Label) error {
	if l == nil {
		return newError(CategoryLabel, "nil label")
	}
	if l.out != o {
		return newError(CategoryLabel, "label %q belongs to another session", l.name)
	}
	return nil
}

// Bind places l at the current end of the stream and patches every branch
// already emitted towards it. If any of those branches is out of range,
// nothing is patched and l stays unbound.
func (o *Out) Bind(l *Label) error {
	return o.emit("bind", func() error {
		if err := o.ownLabel(l); err != nil {
			return err
		}
		if l.bound {
			return newError(CategoryLabel, "label %q bound twice", l.name)
		}
		pos := len(o.code)
		patched := map[int]Word{}
		var rest []fixup
		for _, f := range o.fixups {
			if f.label != l {
				rest = append(rest, f)
				continue
			}
			w, err := f.encode(pos)
			if err != nil {
				return err
			}
			patched[f.at] = w
		}
		for at, w := range patched {
			o.code[at] = w
		}
		o.fixups = rest
		l.bound, l.pos = true, pos
		o.log.V(2).Info("bind", "label", l.name, "at", pos*4, "patched", len(patched))
		return nil
	})
}

// branchTo emits a branch to l, conditional when conditional is set
func (o *Out) branchTo(c cond, conditional bool, l *Label) error {
	if err := o.ownLabel(l); err != nil {
		return err
	}
	f := fixup{label: l, at: len(o.code), c: c, conditional: conditional}
	target := f.at
	if l.bound {
		target = l.pos
	}
	w, err := f.encode(target)
	if err != nil {
		return err
	}
	o.code = append(o.code, w)
	if !l.bound {
		o.fixups = append(o.fixups, f)
	}
	return nil
}

// Jump emits an unconditional branch to l
func (o *Out) Jump(l *Label) error {
	return o.emit("b", func() error {
		return o.branchTo(0, false, l)
	})
}
