// Completion: 100% - Instruction implementation complete
package unisimd

// Memory access emission. Every vector memory operand goes through
// resolveMemory first, so a displacement outside the immediate forms costs
// one or two extra words and never wraps.

// ldstOps is the set of templates for one access kind and size
type ldstOps struct {
	scaled   uint32
	unscaled uint32
	indexed  uint32 // 0 when the access has no register-offset form here
	scale    int
}

var (
	ldQ = ldstOps{scaled: opLDRQ, unscaled: opLDURQ, indexed: opLDRQReg, scale: 16}
	stQ = ldstOps{scaled: opSTRQ, unscaled: opSTURQ, indexed: opSTRQReg, scale: 16}
	ldX = ldstOps{scaled: opLDRX, unscaled: opLDURX, scale: 8}
	stX = ldstOps{scaled: opSTRX, unscaled: opSTURX, scale: 8}
)

// accessWord encodes an access to an already resolved address
func accessWord(ops ldstOps, t uint32, am addrMode) (Word, error) {
	switch am.class {
	case addrScaled:
		return ldstScaled(ops.scaled, t, am.base, am.imm)
	case addrUnscaled:
		return ldstUnscaled(ops.unscaled, t, am.base, am.imm)
	case addrIndexed16, addrIndexed32:
		if ops.indexed == 0 {
			return 0, newError(CategoryInternal, "no register-offset form for %d-byte access", ops.scale)
		}
		return ldstRegOffset(ops.indexed, t, am.base, am.index)
	}
	return 0, newError(CategoryInternal, "address class %s", am.class)
}

// access emits the materialization words for m, if any, then the access
func (o *Out) access(ops ldstOps, t uint32, m Mem) error {
	am, extra, err := resolveMemory(m, ops.scale, o.cfg.Temp)
	if err != nil {
		return err
	}
	w, err := accessWord(ops, t, am)
	if err != nil {
		return err
	}
	if len(extra) > 0 {
		o.materialized++
		o.log.V(2).Info("materialize", "mem", m.String(), "class", am.class.String(), "words", len(extra))
	}
	o.code = append(o.code, extra...)
	o.code = append(o.code, w)
	return nil
}

// loadScratch loads a memory source operand into the reserved scratch
// register and returns its index, ready to stand in for a register source.
func (o *Out) loadScratch(m Mem) (uint32, error) {
	s := uint32(o.cfg.Scratch)
	if err := o.access(ldQ, s, m); err != nil {
		return 0, err
	}
	return s, nil
}
