package outcome

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotMediaType          = errors.New("not a media file")
	ErrMetadataUnavailable   = errors.New("metadata unavailable")
	ErrNoValidTimestamp      = errors.New("no valid timestamp")
	ErrRelocationFailed      = errors.New("relocation failed")
	ErrScanSubtreeUnreadable = errors.New("scan subtree unreadable")
	ErrConfiguration         = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrRelocationFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ReasonOf maps an error produced by the pipeline to the failure reason
// recorded for the file.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrNotMediaType):
		return ReasonNotMediaType
	case errors.Is(err, ErrMetadataUnavailable):
		return ReasonMetadataUnavailable
	case errors.Is(err, ErrNoValidTimestamp):
		return ReasonNoValidTimestamp
	case errors.Is(err, ErrScanSubtreeUnreadable):
		return ReasonScanSubtreeUnreadable
	default:
		return ReasonRelocationFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sort failure"
	}
	return strings.Join(parts, ": ")
}
