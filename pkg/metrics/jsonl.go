package metrics

import (
	"context"
	"io"
	"log/slog"
)

// JSONLObserver writes one JSON line per event, a cheap local backend
// for piping through jq during development.
type JSONLObserver struct {
	logger *slog.Logger
}

func NewJSONLObserver(w io.Writer) *JSONLObserver {
	if w == nil {
		return &JSONLObserver{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	}
	return &JSONLObserver{logger: slog.New(slog.NewJSONHandler(w, nil))}
}

func (o *JSONLObserver) RecordEvent(ev Event) {
	attrs := []slog.Attr{
		slog.String("name", ev.Name),
		slog.Time("time", ev.Time),
		slog.String("kind", ev.Kind.String()),
	}
	if ev.Kind == KindTiming {
		attrs = append(attrs, slog.Int64("duration_ms", ev.Duration.Milliseconds()))
	} else {
		attrs = append(attrs, slog.Int64("value", ev.Value))
	}
	if ev.Kind == KindCounter && ev.Rate > 0 && ev.Rate < 1 {
		attrs = append(attrs, slog.Float64("rate", ev.Rate))
	}
	o.logger.LogAttrs(context.TODO(), slog.LevelInfo, "metrics", attrs...)
}
