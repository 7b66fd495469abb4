package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProgram(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.floop")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("writing program: %v", err)
	}
	return path
}

func TestRunInterpretsFile(t *testing.T) {
	path := writeProgram(t, `
DEFINE PROCEDURE "add" [A, B]:
BLOCK 0: BEGIN
OUTPUT <= A + B;
BLOCK 0: END

add(2, 3)
`)
	if code := run([]string{path}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunReportsSemanticErrors(t *testing.T) {
	path := writeProgram(t, `
DEFINE PROCEDURE "broken" [X]:
BLOCK 1: BEGIN
OUTPUT <= X;
BLOCK 2: END
`)
	if code := run([]string{path}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "absent.floop")}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunUsageAndVersion(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("expected usage exit 1, got %d", code)
	}
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("expected version exit 0, got %d", code)
	}
	if code := run([]string{"--help"}); code != 0 {
		t.Fatalf("expected help exit 0, got %d", code)
	}
}
