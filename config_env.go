// Completion: 100% - Utility module complete
package unisimd

import (
	"strconv"

	"github.com/xyproto/env/v2"
)

// Environment variables read by ConfigFromEnv
const (
	EnvMask          = "UNISIMD_MASK"
	EnvScratch       = "UNISIMD_SCRATCH"
	EnvTemp          = "UNISIMD_TEMP"
	EnvFrameBase     = "UNISIMD_FRAME_BASE"
	EnvFrameOffset   = "UNISIMD_FRAME_OFFSET"
	EnvNativeCmp64   = "UNISIMD_NATIVE_CMP64"
	EnvNativeMinMax  = "UNISIMD_NATIVE_MINMAX64"
	EnvEmulationRegs = "UNISIMD_EMU"
)

// ConfigFromEnv returns base with every variable that is set overriding the
// matching field. Registers use assembler names (v30, x17); the emulation
// pair is written "x9,x10". The result is validated. The process
// environment is read afresh on every call.
func ConfigFromEnv(base Config) (Config, error) {
	env.Load()
	cfg := base
	var err error
	if env.Has(EnvMask) {
		if cfg.Mask, err = ParseVReg(env.Str(EnvMask, "")); err != nil {
			return base, newError(CategoryConfig, "%s: %v", EnvMask, err)
		}
	}
	if env.Has(EnvScratch) {
		if cfg.Scratch, err = ParseVReg(env.Str(EnvScratch, "")); err != nil {
			return base, newError(CategoryConfig, "%s: %v", EnvScratch, err)
		}
	}
	if env.Has(EnvTemp) {
		if cfg.Temp, err = ParseGPReg(env.Str(EnvTemp, "")); err != nil {
			return base, newError(CategoryConfig, "%s: %v", EnvTemp, err)
		}
	}
	if env.Has(EnvEmulationRegs) {
		if cfg.Emu, err = parseGPPair(env.Str(EnvEmulationRegs, "")); err != nil {
			return base, newError(CategoryConfig, "%s: %v", EnvEmulationRegs, err)
		}
	}
	if env.Has(EnvFrameBase) {
		if cfg.Frame.Base, err = ParseGPReg(env.Str(EnvFrameBase, "")); err != nil {
			return base, newError(CategoryConfig, "%s: %v", EnvFrameBase, err)
		}
	}
	if env.Has(EnvFrameOffset) {
		s := env.Str(EnvFrameOffset, "")
		off, perr := strconv.ParseInt(s, 0, 64)
		if perr != nil {
			return base, newError(CategoryConfig, "%s: %q is not an integer", EnvFrameOffset, s)
		}
		cfg.Frame.Offset = off
	}
	if env.Has(EnvNativeCmp64) {
		cfg.NativeCompare64 = env.Bool(EnvNativeCmp64)
	}
	if env.Has(EnvNativeMinMax) {
		cfg.NativeMinMax64 = env.Bool(EnvNativeMinMax)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
