// Completion: 100% - Platform support complete

// Package engine describes the machine the encoder runs on and offers
// small helpers shared by the command-line tools.
package engine

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Arch is a processor architecture
type Arch int

const (
	ArchUnknown Arch = iota
	ArchX86_64
	ArchARM64
	ArchRiscv64
)

func (a Arch) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "aarch64"
	case ArchRiscv64:
		return "riscv64"
	default:
		return "unknown"
	}
}

// ParseArch parses an architecture string (GOARCH values are accepted)
func ParseArch(s string) (Arch, error) {
	switch strings.ToLower(s) {
	case "x86_64", "amd64", "x86-64":
		return ArchX86_64, nil
	case "aarch64", "arm64":
		return ArchARM64, nil
	case "riscv64", "riscv", "rv64":
		return ArchRiscv64, nil
	default:
		return ArchUnknown, fmt.Errorf("unknown architecture: %s (known: amd64, arm64, riscv64)", s)
	}
}

// Platform is an architecture and an operating system name
type Platform struct {
	Arch Arch
	OS   string
}

func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.Arch, p.OS)
}

// Host returns the platform this process runs on
func Host() Platform {
	a, err := ParseArch(runtime.GOARCH)
	if err != nil {
		a = ArchUnknown
	}
	return Platform{Arch: a, OS: runtime.GOOS}
}

// Features lists the host SIMD capabilities relevant to generated code
type Features struct {
	ASIMD   bool // Advanced SIMD, required by every emitted vector instruction
	FP      bool
	ASIMDDP bool
	SVE     bool
}

// Names returns the names of the present features
func (f Features) Names() []string {
	var names []string
	for _, x := range []struct {
		name string
		ok   bool
	}{{"asimd", f.ASIMD}, {"fp", f.FP}, {"asimddp", f.ASIMDDP}, {"sve", f.SVE}} {
		if x.ok {
			names = append(names, x.name)
		}
	}
	return names
}

// HostFeatures reports the AArch64 features of the host. Every field is
// false on other architectures.
func HostFeatures() Features {
	if Host().Arch != ArchARM64 {
		return Features{}
	}
	return Features{
		ASIMD:   cpu.ARM64.HasASIMD,
		FP:      cpu.ARM64.HasFP,
		ASIMDDP: cpu.ARM64.HasASIMDDP,
		SVE:     cpu.ARM64.HasSVE,
	}
}

// CanExecute reports whether code produced by the encoder could run on
// the host as is.
func CanExecute() bool {
	f := HostFeatures()
	return f.ASIMD && f.FP
}
