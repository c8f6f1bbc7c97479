package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapsort/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	source     string
	target     string
	logPath    string
	configPath string
	exiftool   *testsupport.StubExiftool
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	source := filepath.Join(base, "inbox")
	if err := os.MkdirAll(source, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		source:     source,
		target:     filepath.Join(base, "library"),
		logPath:    filepath.Join(base, "logs", "debug.log"),
		configPath: filepath.Join(base, "snapsort.toml"),
		exiftool:   testsupport.NewStubExiftool(t),
	}
}

// sortArgs returns the flags every sort run in these tests shares.
func (env *cliTestEnv) sortArgs(extra ...string) []string {
	args := []string{
		"--exiftool", env.exiftool.Binary,
		"--log-file", env.logPath,
		"--no-progress",
		"--workers", "2",
	}
	args = append(args, extra...)
	return append(args, env.target, env.source)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}
