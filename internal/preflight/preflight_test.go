package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapsort/internal/outcome"
	"snapsort/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatal("expected failure for nonexistent dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckSource(t *testing.T) {
	dir := t.TempDir()
	if r := CheckSource(dir); !r.Passed || !r.Fatal {
		t.Fatalf("expected passing fatal check, got %+v", r)
	}

	if r := CheckSource(filepath.Join(dir, "missing")); r.Passed || !strings.Contains(r.Detail, "does not exist") {
		t.Fatalf("expected missing source to fail, got %+v", r)
	}

	file := filepath.Join(dir, "file.jpg")
	testsupport.WriteFile(t, file, 3)
	if r := CheckSource(file); r.Passed || !strings.Contains(r.Detail, "not a directory") {
		t.Fatalf("expected file source to fail, got %+v", r)
	}
}

func TestCheckTarget(t *testing.T) {
	dir := t.TempDir()
	if r := CheckTarget(dir); !r.Passed {
		t.Fatalf("expected existing target to pass, got %+v", r)
	}

	nested := filepath.Join(dir, "a", "b", "out")
	r := CheckTarget(nested)
	if !r.Passed || !strings.Contains(r.Detail, "will be created") {
		t.Fatalf("expected creatable target to pass, got %+v", r)
	}
	if _, err := os.Stat(nested); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("preflight must not create the target")
	}

	file := filepath.Join(dir, "plain")
	testsupport.WriteFile(t, file, 1)
	if r := CheckTarget(file); r.Passed {
		t.Fatalf("expected file target to fail, got %+v", r)
	}
	if r := CheckTarget(filepath.Join(file, "out")); r.Passed {
		t.Fatalf("expected target under a file to fail, got %+v", r)
	}
}

func TestCheckTarget_ReadOnlyParent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	parent := t.TempDir()
	if err := os.Chmod(parent, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	if r := CheckTarget(filepath.Join(parent, "out")); r.Passed {
		t.Fatalf("expected read-only parent to fail, got %+v", r)
	}
}

func TestRunAll_MissingExiftoolIsWarning(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithExiftool("snapsort-test-missing-exiftool"))
	results := RunAll(cfg, t.TempDir(), filepath.Join(t.TempDir(), "out"))

	if err := Err(results); err != nil {
		t.Fatalf("expected no fatal errors, got %v", err)
	}
	warnings := Warnings(results)
	if len(warnings) != 1 || warnings[0].Name != "exiftool" {
		t.Fatalf("expected exiftool warning, got %+v", warnings)
	}
}

func TestRunAll_NativeReaderNeedsNoExiftool(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithNativeReader())
	cfg.Metadata.Exiftool = "snapsort-test-missing-exiftool"
	results := RunAll(cfg, t.TempDir(), t.TempDir())
	if len(Warnings(results)) != 0 {
		t.Fatalf("expected no warnings with native reader, got %+v", results)
	}
}

func TestErrJoinsFatalFailures(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	results := RunAll(nil, missing, t.TempDir())
	if len(results) != 2 {
		t.Fatalf("expected only path checks without config, got %+v", results)
	}
	err := Err(results)
	if !errors.Is(err, outcome.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !strings.Contains(err.Error(), "Source directory") {
		t.Fatalf("expected source named in error, got %v", err)
	}
}
