// Completion: 100% - Module complete
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	unisimd "github.com/neonkingfr/UniSIMDc-sub002"
)

// fileConfig is the YAML form of an encoder configuration. Empty fields
// keep the default.
//
//	mask: v30
//	scratch: v31
//	temp: x17
//	emulation: [x9, x10]
//	frame:
//	  base: x28
//	  offset: 0
//	native_compare64: false
//	native_minmax64: false
type fileConfig struct {
	Mask      string   `yaml:"mask"`
	Scratch   string   `yaml:"scratch"`
	Temp      string   `yaml:"temp"`
	Emulation []string `yaml:"emulation"`
	Frame     struct {
		Base   string `yaml:"base"`
		Offset *int64 `yaml:"offset"`
	} `yaml:"frame"`
	NativeCompare64 *bool `yaml:"native_compare64"`
	NativeMinMax64  *bool `yaml:"native_minmax64"`
}

func parseFileConfig(bs []byte) (fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, err
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg unisimd.Config) (unisimd.Config, error) {
	var err error
	if fc.Mask != "" {
		if cfg.Mask, err = unisimd.ParseVReg(fc.Mask); err != nil {
			return cfg, fmt.Errorf("mask: %w", err)
		}
	}
	if fc.Scratch != "" {
		if cfg.Scratch, err = unisimd.ParseVReg(fc.Scratch); err != nil {
			return cfg, fmt.Errorf("scratch: %w", err)
		}
	}
	if fc.Temp != "" {
		if cfg.Temp, err = unisimd.ParseGPReg(fc.Temp); err != nil {
			return cfg, fmt.Errorf("temp: %w", err)
		}
	}
	if fc.Emulation != nil {
		if len(fc.Emulation) != 2 {
			return cfg, fmt.Errorf("emulation: want 2 registers, got %d", len(fc.Emulation))
		}
		for i, name := range fc.Emulation {
			if cfg.Emu[i], err = unisimd.ParseGPReg(name); err != nil {
				return cfg, fmt.Errorf("emulation: %w", err)
			}
		}
	}
	if fc.Frame.Base != "" {
		if cfg.Frame.Base, err = unisimd.ParseGPReg(fc.Frame.Base); err != nil {
			return cfg, fmt.Errorf("frame base: %w", err)
		}
	}
	if fc.Frame.Offset != nil {
		cfg.Frame.Offset = *fc.Frame.Offset
	}
	if fc.NativeCompare64 != nil {
		cfg.NativeCompare64 = *fc.NativeCompare64
	}
	if fc.NativeMinMax64 != nil {
		cfg.NativeMinMax64 = *fc.NativeMinMax64
	}
	return cfg, cfg.Validate()
}

// loadConfig builds the session configuration: defaults, then the
// optional file, then UNISIMD_* environment variables.
func loadConfig(path string) (unisimd.Config, error) {
	cfg := unisimd.DefaultConfig()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		fc, err := parseFileConfig(bs)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		if cfg, err = fc.apply(cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	return unisimd.ConfigFromEnv(cfg)
}
