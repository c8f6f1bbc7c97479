package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// optionalFields are per-file attributes that only mean something when set.
var optionalFields = map[string]bool{
	FieldDestination: true,
	FieldReason:      true,
	FieldDateField:   true,
}

// newJSONHandler writes one object per line with ts/level/msg keys. Per-file
// attributes left empty are omitted and durations are written as text, so
// lines can be filtered on outcome and reason directly.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 {
				switch attr.Key {
				case slog.TimeKey:
					attr.Key = "ts"
					if attr.Value.Kind() == slog.KindTime {
						attr.Value = slog.StringValue(attr.Value.Time().Format(time.RFC3339Nano))
					}
					return attr
				case slog.LevelKey:
					attr.Key = "level"
					attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
					return attr
				case slog.MessageKey:
					attr.Key = "msg"
					return attr
				case slog.SourceKey:
					if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
						attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
					}
					return attr
				}
			}

			value := attr.Value.Resolve()
			switch {
			case optionalFields[attr.Key] && value.Kind() == slog.KindString && value.String() == "":
				return slog.Attr{}
			case value.Kind() == slog.KindDuration:
				attr.Value = slog.StringValue(value.Duration().String())
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}
