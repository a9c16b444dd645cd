// Completion: 100% - Instruction implementation complete
package unisimd

import "github.com/go-logr/logr"

// Out is a code-generation context. It owns the instruction stream of one
// session together with everything the generated code reserves: the mask
// and scratch vector registers, the scratch frame and the mask-to-branch
// constants. Independent Out values share nothing and may be used from
// different goroutines; a single Out is not safe for concurrent use.
type Out struct {
	cfg    Config
	log    logr.Logger
	code   []Word
	fixups []fixup
	gp     gpTracker

	materialized int

	// reduced mask values for mask-to-branch, fixed by the configured width
	maskAllTrue  int64
	maskAllFalse int64
}

// NewOut validates cfg and returns an empty code-generation context
func NewOut(cfg Config) (*Out, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	o := &Out{
		cfg: cfg,
		log: log,
		gp:  newGPTracker(cfg.Emu),
		// ADDP sums the lanes: every lane all ones is -lanes, none is 0
		maskAllTrue:  -int64(cfg.Lanes()),
		maskAllFalse: 0,
	}
	o.log.V(2).Info("new session", "mask", cfg.Mask.String(), "scratch", cfg.Scratch.String(),
		"frame", cfg.Frame.slot(0).String(), "lanes", cfg.Lanes())
	return o, nil
}

// Config returns the configuration o was created with
func (o *Out) Config() Config {
	return o.cfg
}

// Mov copies s to d
func (o *Out) Mov(d, s VReg) error {
	return o.Unary(OpMov, U64, d, s)
}

// MovM copies a memory operand to d through the scratch register
func (o *Out) MovM(d VReg, m Mem) error {
	return o.UnaryM(OpMov, U64, d, m)
}

func (o *Out) movRR(d, s uint32) error {
	return o.put(vecMov(d, s))
}

// Load loads 128 bits from m into d directly, without the scratch register
func (o *Out) Load(d VReg, m Mem) error {
	return o.emit("load", func() error {
		r, err := o.vreg(d)
		if err != nil {
			return err
		}
		return o.access(ldQ, r, m)
	})
}

// Store stores the 128 bits of s to m
func (o *Out) Store(s VReg, m Mem) error {
	return o.emit("store", func() error {
		r, err := o.vreg(s)
		if err != nil {
			return err
		}
		return o.access(stQ, r, m)
	})
}
