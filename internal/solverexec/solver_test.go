package solverexec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputBaseStripsInstantiatorExtension(t *testing.T) {
	// Must match internal/adapters.FileInstantiator's ".model" files and
	// internal/testkit.NoopInstantiator's ".model" files — neither is ".smt".
	cases := map[string]string{
		"/work/worker_0.model": "/work/worker_0",
		"worker-3.model":       "worker-3",
		"model.smt":            "model",
	}
	for in, want := range cases {
		if got := outputBase(in); got != want {
			t.Fatalf("outputBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocateOutputFindsDecidingFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "model")

	// k=5 has no output at all (solver's feasible k topped out lower);
	// k=3 has two paths, the second (i=1) is the deciding one.
	write(t, outputName(base, 3, 0), "sat\n")
	write(t, outputName(base, 3, 1), "unsat\n")

	path, err := locateOutput(base, 5)
	if err != nil {
		t.Fatalf("locateOutput: %v", err)
	}
	if path != outputName(base, 3, 1) {
		t.Fatalf("expected deciding file %s, got %s", outputName(base, 3, 1), path)
	}
}

func TestLocateOutputMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "model")
	if _, err := locateOutput(base, 5); err == nil {
		t.Fatal("expected error when no output file exists at any k")
	}
}

func TestReadVerdictUnsat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.output")
	write(t, path, "unsat\n")

	v, err := readVerdict(path)
	if err != nil {
		t.Fatalf("readVerdict: %v", err)
	}
	if v.String() != "unsat" {
		t.Fatalf("expected unsat, got %v", v)
	}
}

func TestReadVerdictSat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.output")
	write(t, path, "delta-sat with precision 0.001\n")

	v, err := readVerdict(path)
	if err != nil {
		t.Fatalf("readVerdict: %v", err)
	}
	if v.String() != "sat" {
		t.Fatalf("expected sat, got %v", v)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
