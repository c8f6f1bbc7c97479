package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"snapsort/internal/capturedate"
	"snapsort/internal/config"
	"snapsort/internal/fileutil"
	"snapsort/internal/logging"
	"snapsort/internal/media/exifnative"
	"snapsort/internal/media/exiftool"
	"snapsort/internal/outcome"
	"snapsort/internal/planner"
	"snapsort/internal/scan"
)

// MetadataReader returns label -> timestamp text for one file.
type MetadataReader interface {
	Read(ctx context.Context, path string) (map[string]string, error)
}

// Organizer sorts files into the dated target tree. It is safe for
// concurrent use. Files carrying a scan sequence number claim suffixes in
// discovery order, so an Organizer serves a single walk; files without one
// are only kept from planning the same name at once.
type Organizer struct {
	reader     MetadataReader
	planner    planner.Planner
	relocator  Relocator
	extensions []string
	logger     *slog.Logger
	locks      keyLock
	turns      *turnstile
}

// NewReader builds the metadata reader selected by cfg. logger receives the
// exiftool printouts at debug level.
func NewReader(cfg *config.Config, logger *slog.Logger) (MetadataReader, error) {
	switch cfg.Metadata.Reader {
	case config.ReaderExiftool:
		return exiftool.Reader{
			Binary:  cfg.Metadata.Exiftool,
			Timeout: cfg.MetadataTimeout(),
			Logger:  logging.NewComponentLogger(logger, "exiftool"),
		}, nil
	case config.ReaderNative:
		return exifnative.Reader{}, nil
	default:
		return nil, outcome.Wrap(outcome.ErrConfiguration, "organizer", "select reader", fmt.Sprintf("unsupported reader %q", cfg.Metadata.Reader), nil)
	}
}

// New constructs an organizer that sorts into target.
func New(cfg *config.Config, target string, reader MetadataReader, logger *slog.Logger) *Organizer {
	p := planner.Planner{Root: target}
	if cfg.Sort.Dedupe == config.DedupeContent {
		p.SameContent = fileutil.SameContent
	}
	return &Organizer{
		reader:     reader,
		planner:    p,
		relocator:  Relocator{DryRun: cfg.Sort.DryRun},
		extensions: cfg.Sort.Extensions,
		logger:     logging.NewComponentLogger(logger, "organizer"),
		turns:      newTurnstile(),
	}
}

// Process runs one file through read, resolve, plan, and relocate. Every
// failure leaves the file at its source path and is reported in the Result.
func (o *Organizer) Process(ctx context.Context, file scan.MediaFile) outcome.Result {
	logger := logging.WithContext(ctx, o.logger).With(logging.String(logging.FieldFile, file.Path))

	result := o.process(ctx, file)
	attrs := []logging.Attr{logging.String(logging.FieldOutcome, string(result.Status))}
	if result.Destination != "" {
		attrs = append(attrs, logging.String(logging.FieldDestination, result.Destination))
	}
	if result.Field != "" {
		attrs = append(attrs, logging.String(logging.FieldDateField, result.Field))
	}
	if result.Err != nil {
		attrs = append(attrs, logging.String(logging.FieldReason, string(result.Reason)), logging.Error(result.Err))
	}

	switch result.Status {
	case outcome.StatusFailed:
		logger.Warn("file not sorted", logging.Args(attrs...)...)
	case outcome.StatusSkipped:
		logger.Info("file skipped", logging.Args(attrs...)...)
	default:
		logger.Info("file sorted", logging.Args(attrs...)...)
	}
	return result
}

func (o *Organizer) process(ctx context.Context, file scan.MediaFile) outcome.Result {
	date, field, ext, err := o.resolve(ctx, file)
	if err != nil {
		if file.Seq > 0 {
			o.turns.Report(file.Seq, "")
		}
		return outcome.Failed(file.Path, err)
	}

	release := o.claim(file.Seq, o.planner.Key(date, ext))
	defer release()

	plan, err := o.planner.Plan(file.Path, date, ext)
	if err != nil {
		result := outcome.Failed(file.Path, err)
		result.Field = field
		return result
	}

	status, err := o.relocator.Apply(plan)
	if err != nil {
		result := outcome.Failed(file.Path, err)
		result.Field = field
		result.Destination = plan.Destination
		return result
	}
	return outcome.Result{
		Source:      file.Path,
		Destination: plan.Destination,
		Status:      status,
		Field:       field,
	}
}

// resolve reads metadata and picks the capture date and the field it came from.
func (o *Organizer) resolve(ctx context.Context, file scan.MediaFile) (capturedate.Date, string, string, error) {
	ext, ok := scan.MatchExtension(filepath.Base(file.Path), o.extensions)
	if !ok {
		return capturedate.Date{}, "", "", outcome.Wrap(outcome.ErrNotMediaType, "organizer", "check extension", filepath.Ext(file.Path), nil)
	}
	fields, err := o.reader.Read(ctx, file.Path)
	if err != nil {
		return capturedate.Date{}, "", "", err
	}
	date, field, err := capturedate.Resolve(fields)
	if err != nil {
		return capturedate.Date{}, "", "", err
	}
	return date, field, ext, nil
}

// claim blocks until the file may plan under key and returns the release.
// Files sharing a key compete for the same suffixes, so planning and
// relocation for one key happen one file at a time.
func (o *Organizer) claim(seq int64, key string) func() {
	if seq <= 0 {
		return o.locks.Lock(key)
	}
	o.turns.Report(seq, key)
	o.turns.Wait(seq, key)
	return func() { o.turns.Done(seq, key) }
}
