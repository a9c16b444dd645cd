// Completion: 100% - Module complete
package unisimd

import (
	"encoding/binary"
	"strings"
)

// put appends w unless err is set. Encoders return (Word, error), so
// emission sites read as o.put(vecRRR(...)).
func (o *Out) put(w Word, err error) error {
	if err != nil {
		return err
	}
	o.code = append(o.code, w)
	return nil
}

// emit runs one emission call as a unit. When fn fails, everything fn
// appended is dropped, including branch fixups, so a rejected call never
// leaves a partial sequence behind.
func (o *Out) emit(op string, fn func() error) error {
	start, fixups, materialized := len(o.code), len(o.fixups), o.materialized
	if err := fn(); err != nil {
		o.code = o.code[:start]
		o.fixups = o.fixups[:fixups]
		o.materialized = materialized
		o.gp.abandon()
		err = withOp(err, op)
		o.log.V(1).Info("rejected", "op", op, "err", err.Error())
		return err
	}
	if v := o.log.V(1); v.Enabled() {
		v.Info("emit", "op", op, "at", start*4, "words", hexWords(o.code[start:]))
	}
	return nil
}

func hexWords(ws []Word) string {
	var sb strings.Builder
	for i, w := range ws {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Len returns the number of words emitted so far
func (o *Out) Len() int {
	return len(o.code)
}

// Words returns a copy of the emitted instruction stream
func (o *Out) Words() []Word {
	return append([]Word(nil), o.code...)
}

// Bytes returns the instruction stream as little-endian bytes
func (o *Out) Bytes() []byte {
	buf := make([]byte, 4*len(o.code))
	for i, w := range o.code {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(w))
	}
	return buf
}

// Finish returns the instruction stream once every branch has a bound target
func (o *Out) Finish() ([]Word, error) {
	if len(o.fixups) > 0 {
		f := o.fixups[0]
		return nil, newError(CategoryLabel, "%d branch(es) to unbound label %q", len(o.fixups), f.label.name)
	}
	return o.Words(), nil
}

// Reset discards the emitted stream. Labels created before Reset must not be reused.
func (o *Out) Reset() {
	o.code = o.code[:0]
	o.fixups = o.fixups[:0]
	o.gp = newGPTracker(o.cfg.Emu)
	o.materialized = 0
}
