package engine

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuggest(t *testing.T) {
	names := []string{"add", "and", "andnot", "abs", "sub", "shl", "shr", "select"}
	tests := []struct {
		name string
		max  int
		want []string
	}{
		{"ad", 3, []string{"add", "and", "abs"}},
		{"slect", 3, []string{"select"}},
		{"add", 2, []string{"and", "abs"}},
		{"vfmaddpd", 3, []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Suggest(tt.name, names, tt.max)); diff != "" {
			t.Errorf("Suggest(%q) (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestParseArch(t *testing.T) {
	for in, want := range map[string]Arch{"arm64": ArchARM64, "AARCH64": ArchARM64, "amd64": ArchX86_64, "rv64": ArchRiscv64} {
		if got, err := ParseArch(in); err != nil || got != want {
			t.Errorf("ParseArch(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseArch("mips"); err == nil {
		t.Error("mips accepted")
	}
}

func TestHost(t *testing.T) {
	h := Host()
	if h.OS != runtime.GOOS {
		t.Errorf("os %s", h.OS)
	}
	if runtime.GOARCH != "arm64" && (HostFeatures() != Features{} || CanExecute()) {
		t.Errorf("features reported on %s", runtime.GOARCH)
	}
}
