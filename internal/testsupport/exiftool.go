package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// StubExiftool is a shell script standing in for exiftool. It prints the
// output registered for the base name of the file it is called with and
// exits 1 for unregistered files.
type StubExiftool struct {
	t      testing.TB
	Binary string
	dir    string
}

// NewStubExiftool writes the stub into a temp directory. Tests that need
// the stub resolved from PATH can prepend filepath.Dir(Binary).
func NewStubExiftool(t testing.TB) *StubExiftool {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub exiftool requires a POSIX shell")
	}

	dir := t.TempDir()
	binary := filepath.Join(dir, "exiftool")
	outputs := filepath.Join(dir, "outputs")
	if err := os.MkdirAll(outputs, 0o755); err != nil {
		t.Fatalf("mkdir stub outputs: %v", err)
	}
	script := fmt.Sprintf(`#!/bin/sh
out=%q/"$(basename "$2").out"
if [ -f "$out" ]; then
	cat "$out"
	exit 0
fi
echo "Error: File not found - $2" >&2
exit 1
`, outputs)
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub exiftool: %v", err)
	}
	return &StubExiftool{t: t, Binary: binary, dir: outputs}
}

// Set registers raw stdout for files named name.
func (s *StubExiftool) Set(name, output string) {
	s.t.Helper()
	if err := os.WriteFile(filepath.Join(s.dir, name+".out"), []byte(output), 0o644); err != nil {
		s.t.Fatalf("write stub output for %s: %v", name, err)
	}
}

// SetFields registers exiftool-formatted lines for the given label -> value pairs.
func (s *StubExiftool) SetFields(name string, fields map[string]string) {
	s.t.Helper()
	s.Set(name, FormatExiftool(fields))
}

// FormatExiftool renders label -> value pairs the way `exiftool -time:all`
// prints them, sorted by label.
func FormatExiftool(fields map[string]string) string {
	labels := make([]string, 0, len(fields))
	for label := range fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, "%-32s: %s\n", label, fields[label])
	}
	return b.String()
}
