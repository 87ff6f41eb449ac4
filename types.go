package jsondoc

import "log/slog"

// Severity expresses how a parse-time finding is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. The zero value accepts any well-formed
// JSON text, with duplicate object keys resolved last-wins.
type ParseOpt struct {
	// OnDuplicateKey: Ignore and Warn keep the last value at the position of
	// the first occurrence (Warn also logs); Error rejects the input.
	OnDuplicateKey Severity
	MaxDepth       int   // 0 = unlimited
	MaxBytes       int64 // 0 = unlimited
	// Logger receives Warn findings; nil discards them.
	Logger *slog.Logger
}

func lastParseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
