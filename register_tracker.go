// Completion: 100% - Module complete
package unisimd

// gpTracker hands the configured emulation registers to one emulated
// sequence at a time. Acquire saves both on the stack, release restores
// them, so the caller never observes a change to them.
type gpTracker struct {
	regs    [2]GPReg
	inUse   bool
	purpose string

	// statistics
	sequences int
}

func newGPTracker(regs [2]GPReg) gpTracker {
	return gpTracker{regs: regs}
}

// acquire emits STP e0, e1, [sp, #-16]! and marks the pair busy
func (t *gpTracker) acquire(o *Out, purpose string) (e0, e1 uint32, err error) {
	if t.inUse {
		return 0, 0, newError(CategoryInternal, "emulation registers held by %s, wanted by %s", t.purpose, purpose)
	}
	e0, e1 = uint32(t.regs[0]), uint32(t.regs[1])
	if err := o.put(ldstPair(opSTPPre, e0, e1, uint32(SP), -16)); err != nil {
		return 0, 0, err
	}
	t.inUse = true
	t.purpose = purpose
	return e0, e1, nil
}

// release emits LDP e0, e1, [sp], #16
func (t *gpTracker) release(o *Out) error {
	if !t.inUse {
		return newError(CategoryInternal, "emulation registers released twice")
	}
	if err := o.put(ldstPair(opLDPPost, uint32(t.regs[0]), uint32(t.regs[1]), uint32(SP), 16)); err != nil {
		return err
	}
	t.inUse = false
	t.purpose = ""
	t.sequences++
	return nil
}

// abandon drops a half-emitted acquisition; its words are rolled back by emit
func (t *gpTracker) abandon() {
	t.inUse = false
	t.purpose = ""
}

// Stats summarizes what a session has emitted so far
type Stats struct {
	Words        int // instruction words
	Emulated     int // emulated sequences (each saves and restores the emulation registers)
	Materialized int // memory operands that needed address materialization
}

// Stats returns emission statistics for o
func (o *Out) Stats() Stats {
	return Stats{
		Words:        len(o.code),
		Emulated:     o.gp.sequences,
		Materialized: o.materialized,
	}
}
