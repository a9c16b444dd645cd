// Completion: 100% - Utility module complete

// Package unisimd encodes a portable vocabulary of SIMD operations on 64-bit
// lanes (f64, s64, u64) into AArch64 Advanced SIMD instruction words.
//
// An Out is one code-generation session. It owns the word stream and the
// resources generated code reserves: a mask register, a scratch register, a
// temporary general-purpose register, two emulation registers and a scratch
// memory frame, all fixed by its Config.
//
// Every operation has three operand forms. Binary(op, k, d, s, t) is the
// functional form d := s op t; BinaryG(op, k, g, t) is the destructive form
// g := g op t; BinaryM(op, k, d, s, m) takes its last source from memory
// through the scratch register. Unary, Shift, Ternary, Select, Convert and
// Round follow the same pattern.
//
//	o, err := unisimd.NewOut(unisimd.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	done := o.NewLabel("done")
//	_ = o.Binary(unisimd.OpGt, unisimd.F64, 0, 1, 2)
//	_ = o.BranchMask(0, unisimd.AllFalse, done)
//	_ = o.BinaryM(unisimd.OpAdd, unisimd.F64, 1, 1, unisimd.Mem{Base: unisimd.X0, Disp: 32})
//	_ = o.Bind(done)
//	words, err := o.Finish()
//
// Operations with no 64-bit lane instruction (integer multiply, min and max,
// and by default ordered integer compares) are emulated lane by lane through
// the emulation registers and the scratch frame. The emulation registers are
// saved and restored around each such sequence.
//
// Emission is transactional: a call that returns an error leaves the stream
// exactly as it was.
package unisimd
