package exiftool_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"snapsort/internal/media/exiftool"
	"snapsort/internal/outcome"
	"snapsort/internal/testsupport"
)

const sampleOutput = `File Modification Date/Time     : 2020:02:03 04:05:06+01:00
File Access Date/Time           : 2024:05:06 07:08:09+01:00
Date/Time Original              : 2019:06:15 08:30:05
Create Date                     : 2019:06:15 08:30:05
Create Date                     : 2019:06:16 09:00:00
GPS Date Stamp                  : 2019:06:15
Sub Sec Time Original           : 42
`

func TestParseExtractsLabelledTimestamps(t *testing.T) {
	result, err := exiftool.Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]string{
		"File Modification Date/Time": "2020:02:03 04:05:06",
		"File Access Date/Time":       "2024:05:06 07:08:09",
		"Date/Time Original":          "2019:06:15 08:30:05",
		"Create Date":                 "2019:06:16 09:00:00",
	}
	if len(result.Fields) != len(want) {
		t.Fatalf("unexpected fields: %#v", result.Fields)
	}
	for label, value := range want {
		if got := result.Fields[label]; got != value {
			t.Fatalf("field %q: got %q want %q", label, got, value)
		}
	}
	if _, ok := result.Fields["GPS Date Stamp"]; ok {
		t.Fatal("date-only value should not be recorded")
	}
	if !strings.Contains(string(result.Raw), "Sub Sec Time Original") {
		t.Fatal("expected raw output to be retained")
	}
}

func TestParseIgnoresUnrelatedLines(t *testing.T) {
	result, err := exiftool.Parse([]byte("ExifTool Version Number : 12.76\nno colon here\n : 2019:06:15 08:30:05\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Fields) != 0 {
		t.Fatalf("expected no fields, got %#v", result.Fields)
	}
}

func TestReaderRunsStub(t *testing.T) {
	stub := testsupport.NewStubExiftool(t)
	stub.Set("IMG_0001.JPG", sampleOutput)

	reader := exiftool.Reader{Binary: stub.Binary, Timeout: 10 * time.Second}
	fields, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "IMG_0001.JPG"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if fields["Date/Time Original"] != "2019:06:15 08:30:05" {
		t.Fatalf("unexpected fields: %#v", fields)
	}
}

func TestReaderFailuresAreMetadataUnavailable(t *testing.T) {
	stub := testsupport.NewStubExiftool(t)
	stub.Set("empty.jpg", "ExifTool Version Number : 12.76\n")

	cases := map[string]exiftool.Reader{
		"non-zero exit":  {Binary: stub.Binary},
		"missing binary": {Binary: "snapsort-test-missing-exiftool"},
		"no timestamps":  {Binary: stub.Binary},
	}
	paths := map[string]string{
		"non-zero exit":  "unknown.jpg",
		"missing binary": "unknown.jpg",
		"no timestamps":  "empty.jpg",
	}
	for name, reader := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), paths[name]))
			if !errors.Is(err, outcome.ErrMetadataUnavailable) {
				t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
			}
		})
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := exiftool.Inspect(context.Background(), "", "  "); !errors.Is(err, outcome.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestParseHandlesLongLines(t *testing.T) {
	output := "Maker Note Unknown Text        : " + strings.Repeat("x", 200*1024) + "\n" +
		"Date/Time Original              : 2019:06:15 08:30:05\n"
	result, err := exiftool.Parse([]byte(output))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Fields["Date/Time Original"] != "2019:06:15 08:30:05" {
		t.Fatalf("timestamp after a long line was lost: %#v", result.Fields)
	}
}

func TestReaderTimeoutKillsHungTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	// The shell keeps sleep as a child holding the output pipe after the
	// shell itself is killed.
	binary := filepath.Join(t.TempDir(), "exiftool")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\nsleep 30\necho done\n"), 0o755); err != nil {
		t.Fatalf("write hung stub: %v", err)
	}

	reader := exiftool.Reader{Binary: binary, Timeout: 200 * time.Millisecond}
	start := time.Now()
	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "IMG_0001.JPG"))
	elapsed := time.Since(start)
	if !errors.Is(err, outcome.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a timeout error, got %v", err)
	}
	if elapsed > 5*time.Second {
		t.Fatalf("read took %s despite a 200ms timeout", elapsed)
	}
}

func TestReaderLogsPrintout(t *testing.T) {
	stub := testsupport.NewStubExiftool(t)
	stub.Set("IMG_0001.JPG", sampleOutput)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reader := exiftool.Reader{Binary: stub.Binary, Timeout: 10 * time.Second, Logger: logger}
	if _, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "IMG_0001.JPG")); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(buf.String(), "exiftool printout") || !strings.Contains(buf.String(), "Sub Sec Time Original") {
		t.Fatalf("expected raw printout at debug level, got:\n%s", buf.String())
	}
}
