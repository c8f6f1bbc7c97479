package scan

import (
	"context"
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"snapsort/internal/logging"
	"snapsort/internal/outcome"
)

// MediaFile is one discovered file eligible for sorting.
type MediaFile struct {
	// Path is absolute.
	Path string
	// Ext is the lowercase extension without the dot.
	Ext string
	// Seq is the discovery position within one walk, starting at 1. Zero
	// means the file was not produced by a Scanner.
	Seq int64
}

// Scanner walks Root depth-first in lexical order and yields files whose
// extension is in Extensions.
type Scanner struct {
	Root         string
	Extensions   []string
	HiddenPrefix string
	// Exclude lists directories that are never entered, such as an output
	// tree nested inside the input tree.
	Exclude []string
	Logger  *slog.Logger

	unreadable atomic.Int64
}

// Unreadable reports how many subtrees were skipped because they could not
// be listed.
func (s *Scanner) Unreadable() int64 {
	return s.unreadable.Load()
}

// Files returns a lazy sequence of media files. Iteration stops early when
// ctx is cancelled or the consumer stops ranging.
func (s *Scanner) Files(ctx context.Context) iter.Seq[MediaFile] {
	return func(yield func(MediaFile) bool) {
		root, err := filepath.Abs(filepath.Clean(s.Root))
		if err != nil {
			s.skipped(s.Root, err)
			return
		}
		excluded := buildExcluded(root, s.Exclude)
		var seq int64
		logger := s.Logger
		if logger == nil {
			logger = logging.NewNop()
		}

		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if walkErr != nil {
				s.skipped(path, walkErr)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && isExcluded(path, excluded) {
					logger.Debug("excluded directory", logging.String(logging.FieldFile, path))
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			name := d.Name()
			if s.HiddenPrefix != "" && strings.HasPrefix(name, s.HiddenPrefix) {
				return nil
			}
			ext, ok := MatchExtension(name, s.Extensions)
			if !ok {
				return nil
			}
			seq++
			if !yield(MediaFile{Path: path, Ext: ext, Seq: seq}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (s *Scanner) skipped(path string, err error) {
	s.unreadable.Add(1)
	logger := s.Logger
	if logger == nil {
		return
	}
	wrapped := outcome.Wrap(outcome.ErrScanSubtreeUnreadable, "scan", "read directory", path, err)
	logger.Warn("subtree skipped",
		logging.String(logging.FieldFile, path),
		logging.String(logging.FieldReason, string(outcome.ReasonOf(wrapped))),
		logging.Error(wrapped),
	)
}

// MatchExtension returns the lowercase extension of name when it is one of
// exts. exts are expected lowercase without dots.
func MatchExtension(name string, exts []string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !slices.Contains(exts, ext) {
		return "", false
	}
	return ext, true
}

func buildExcluded(root string, excludeDirs []string) []string {
	excluded := make([]string, 0, len(excludeDirs))
	for _, x := range excludeDirs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if !filepath.IsAbs(x) {
			x = filepath.Join(root, x)
		}
		excluded = append(excluded, filepath.Clean(x))
	}
	slices.Sort(excluded)
	return excluded
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if IsUnder(path, base) {
			return true
		}
	}
	return false
}

// IsUnder reports whether path equals base or lies inside it.
func IsUnder(path, base string) bool {
	if path == base {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(path, strings.TrimSuffix(base, sep)+sep)
}
