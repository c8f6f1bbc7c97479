package exiftool

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"snapsort/internal/capturedate"
	"snapsort/internal/logging"
	"snapsort/internal/outcome"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "exiftool"

// waitDelay bounds how long a killed exiftool may keep its output pipes
// open through child processes.
const waitDelay = time.Second

// Result is the parsed output of one exiftool invocation.
type Result struct {
	// Fields maps a tag label such as "Date/Time Original" to the timestamp
	// found on its line. Later lines with the same label win.
	Fields map[string]string
	// Raw is the captured standard output.
	Raw []byte
}

// Inspect runs `exiftool -time:all <path>` and parses the labelled timestamps.
// Every failure is tagged outcome.ErrMetadataUnavailable.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", "empty path", nil)
	}

	cmd := exec.CommandContext(ctx, binary, "-time:all", path)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, classifyRunError(ctx, binary, err, stderr.String())
	}

	result, err := Parse(output)
	if err != nil {
		return result, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", "read output", err)
	}
	if len(result.Fields) == 0 {
		return result, outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", "no timestamps in output", nil)
	}
	return result, nil
}

// Parse extracts `Label : YYYY:MM:DD HH:MM:SS` lines from exiftool output.
// Lines without a timestamp are ignored.
func Parse(output []byte) (Result, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(output))
	// Embedded tags can print lines far beyond the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), max(len(output)+1, bufio.MaxScanTokenSize))
	for scanner.Scan() {
		label, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		stamp := capturedate.Pattern.FindString(value)
		if stamp == "" {
			continue
		}
		fields[label] = stamp
	}
	result := Result{Fields: fields, Raw: output}
	if err := scanner.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// Reader adapts Inspect to the organizer's metadata reader contract.
type Reader struct {
	Binary  string
	Timeout time.Duration
	// Logger receives the raw printout of every run at debug level.
	Logger *slog.Logger
}

// Read returns the label -> timestamp mapping for path, bounded by Timeout.
func (r Reader) Read(ctx context.Context, path string) (map[string]string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	result, err := Inspect(ctx, r.Binary, path)
	if r.Logger != nil && len(result.Raw) > 0 {
		r.Logger.Debug("exiftool printout",
			logging.String(logging.FieldFile, path),
			logging.String("output", string(result.Raw)),
		)
	}
	if err != nil {
		return nil, err
	}
	return result.Fields, nil
}

func classifyRunError(ctx context.Context, binary string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", fmt.Sprintf("binary %q not found", binary), err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", "timed out", ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := fmt.Sprintf("exit status %d", exitErr.ExitCode())
		if stderr != "" {
			msg += ": " + stderr
		}
		return outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", msg, err)
	}
	return outcome.Wrap(outcome.ErrMetadataUnavailable, "metadata", "exiftool", "run failed", err)
}
