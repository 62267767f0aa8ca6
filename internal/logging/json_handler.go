package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"appxify/internal/converr"
)

// newJSONHandler emits one JSON object per record with ts/level/msg keys.
// Catalog errors logged as attribute values are expanded into a structured
// group so downstream tooling can filter on the numeric code.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Key = "level"
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.MessageKey:
				attr.Key = "msg"
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			default:
				attr.Value = expandCatalogError(attr.Value)
			}
			return attr
		},
	}

	return slog.NewJSONHandler(w, &opts)
}

func expandCatalogError(v slog.Value) slog.Value {
	if v.Kind() != slog.KindAny {
		return v
	}
	cerr, ok := v.Any().(*converr.Error)
	if !ok || cerr == nil {
		return v
	}
	return slog.GroupValue(
		slog.Int("code", cerr.Code),
		slog.String("type", cerr.Type),
		slog.String("severity", string(cerr.Severity)),
		slog.String("message", cerr.Error()),
	)
}
