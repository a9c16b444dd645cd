package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	unisimd "github.com/neonkingfr/UniSIMDc-sub002"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAsmWords(t *testing.T) {
	o, err := unisimd.NewOut(unisimd.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Add(unisimd.F64, 1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := o.Mul(unisimd.S64, 4, 4, 5); err != nil {
		t.Fatal(err)
	}
	var want strings.Builder
	for i, w := range o.Words() {
		fmt.Fprintf(&want, "%04x: %08x\n", 4*i, uint32(w))
	}

	got, _, err := run(t, "add.f64 v1, v2, v3\nmul.s64 v4, v5\n", "asm")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.String(), got); diff != "" {
		t.Errorf("asm output (-want +got):\n%s", diff)
	}
}

func TestAsmFormats(t *testing.T) {
	got, _, err := run(t, "add.f64 v1, v2, v3", "asm", "-f", "hex")
	if err != nil {
		t.Fatal(err)
	}
	if got != "41d4634e\n" {
		t.Errorf("hex output %q", got)
	}

	path := filepath.Join(t.TempDir(), "k.bin")
	if _, _, err := run(t, "add.f64 v1, v2, v3", "asm", "-f", "raw", "-o", path); err != nil {
		t.Fatal(err)
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x41, 0xd4, 0x63, 0x4e}, bs); diff != "" {
		t.Error(diff)
	}

	if _, _, err := run(t, "add.f64 v1, v2, v3", "asm", "-f", "elf"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestWriteFileErrors(t *testing.T) {
	words := []unisimd.Word{0x4e63d441}
	bs := []byte{0x41, 0xd4, 0x63, 0x4e}
	if err := writeFile(filepath.Join(t.TempDir(), "no", "such", "dir"), "raw", words, bs); err == nil {
		t.Error("create in a missing directory succeeded")
	}
	if _, err := os.Stat("/dev/full"); err == nil {
		if err := writeFile("/dev/full", "raw", words, bs); err == nil {
			t.Error("write to a full device reported no error")
		}
	}
	path := filepath.Join(t.TempDir(), "k.txt")
	if err := writeFile(path, "words", words, bs); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "0000: 4e63d441\n" {
		t.Errorf("file content %q", got)
	}
}

func TestAsmFromFileAndErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.s")
	if err := os.WriteFile(path, []byte("b missing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "", "asm", path)
	if !errors.Is(err, unisimd.ErrUnboundLabel) || !strings.Contains(err.Error(), "undefined: missing") {
		t.Errorf("unbound label: %v", err)
	}

	_, _, err = run(t, "subb.f64 v1, v2, v3", "asm")
	if err == nil || !strings.Contains(err.Error(), "did you mean sub") {
		t.Errorf("misspelled op: %v", err)
	}
}

func TestAsmVerboseLogs(t *testing.T) {
	_, stderr, err := run(t, "min.s64 v1, v2, v3", "asm", "-v")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"level=debug", "msg=assembled", "emulated=1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("log output lacks %q:\n%s", want, stderr)
		}
	}
	if _, stderr, _ := run(t, "min.s64 v1, v2, v3", "asm"); stderr != "" {
		t.Errorf("quiet run logged:\n%s", stderr)
	}
}

func TestOps(t *testing.T) {
	all, _, err := run(t, "", "ops")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"OP", "fma", "f64", "select"} {
		if !strings.Contains(all, want) {
			t.Errorf("ops table lacks %q", want)
		}
	}
	ints, _, err := run(t, "", "ops", "--kind", "u64")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(ints, "sqrt") || !strings.Contains(ints, "shlv") {
		t.Errorf("u64 filter:\n%s", ints)
	}
	if _, _, err := run(t, "", "ops", "-k", "f32"); !errors.Is(err, unisimd.ErrUnsupported) {
		t.Errorf("bad kind: %v", err)
	}
}

func TestInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := "mask: v29\nemulation: [x11, x12]\nframe:\n  base: x27\n  offset: 64\nnative_compare64: true\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := run(t, "", "info", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mask        v29", "emulation   x11, x12", "frame       [x27, #64]", "native cmp  true", "lanes       2 x 64 bit"} {
		if !strings.Contains(got, want) {
			t.Errorf("info lacks %q:\n%s", want, got)
		}
	}
}

func TestFileConfig(t *testing.T) {
	fc, err := parseFileConfig([]byte("scratch: v0\ntemp: x16\nnative_minmax64: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := fc.apply(unisimd.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scratch != 0 || cfg.Temp != unisimd.X16 || !cfg.NativeMinMax64 || cfg.Mask != 30 {
		t.Errorf("config %+v", cfg)
	}

	if fc, err := parseFileConfig(nil); err != nil || fc.Mask != "" {
		t.Errorf("empty file: %+v, %v", fc, err)
	}

	for _, bad := range []string{
		"mask: v31\n",              // same as scratch
		"emulation: [x9]\n",        // one register
		"temp: v3\n",               // wrong file
		"frame:\n  offset: 8191\n", // not directly addressable
		"scratch: v40\n",           // no such register
	} {
		fc, err := parseFileConfig([]byte(bad))
		if err == nil {
			_, err = fc.apply(unisimd.DefaultConfig())
		}
		if err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
	if _, err := parseFileConfig([]byte("masks: v1\n")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	l := newLogrus(&buf, 1)
	log := newLogger(l).WithName("enc").WithValues("session", 1)

	log.Info("zero", "a", 1)
	log.V(1).Info("one")
	log.V(2).Info("two")
	log.Error(errors.New("boom"), "failed")

	out := buf.String()
	for _, want := range []string{`msg=zero`, `a=1`, `logger=enc`, `session=1`, `msg=one`, `error=boom`} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "msg=two") {
		t.Errorf("trace message logged at debug level:\n%s", out)
	}
}
