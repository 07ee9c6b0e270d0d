package importer

import (
	"errors"
	"fmt"
)

// Stage is a step of an import run. Runs only move forward.
type Stage int

// Import stages in order.
const (
	StageDetecting Stage = iota
	StageMapped
	StageParsing
	StageDeduplicating
	StageCategorizing
	StageCommitted
)

func (s Stage) String() string {
	switch s {
	case StageDetecting:
		return "detecting"
	case StageMapped:
		return "mapped"
	case StageParsing:
		return "parsing"
	case StageDeduplicating:
		return "deduplicating"
	case StageCategorizing:
		return "categorizing"
	case StageCommitted:
		return "committed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Kind classifies a fatal import failure.
type Kind string

// Fatal failure kinds. Row-level parse failures are not fatal and are
// reported in Result.RowErrors instead.
const (
	UnreadableSource     Kind = "unreadable source"
	NoAccountResolved    Kind = "no account resolved"
	UnknownFormat        Kind = "unknown format"
	StorageReadFailure   Kind = "storage read failure"
	StorageCommitFailure Kind = "storage commit failure"
)

// Error is a fatal import failure. Nothing was committed.
type Error struct {
	Err   error
	Kind  Kind
	Stage Stage
}

func (e *Error) Error() string {
	return fmt.Sprintf("import failed while %s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an import Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ie *Error
	return errors.As(err, &ie) && ie.Kind == kind
}
