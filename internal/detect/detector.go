// Package detect recognizes bank export layouts from their header text and
// row shape.
package detect

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/table"
)

// FormatGuess is the result of a successful detection.
type FormatGuess struct {
	Label string
	// Test names the structural check that matched.
	Test string
	// Hint is the account type the issuer's export is usually for, or empty.
	Hint    model.AccountType
	Mapping model.ColumnMapping
}

// Signature is the part of a table detection may look at: lowercased header
// cells and the shape of the first data row. Cell values beyond that are
// never consulted.
type Signature struct {
	Header    []string
	FirstRow  []string
	HasHeader bool
}

// NewSignature extracts the signature of a table.
func NewSignature(t *table.Table) Signature {
	sig := Signature{HasHeader: t.HasHeader}
	for _, cell := range t.Header() {
		sig.Header = append(sig.Header, strings.ToLower(strings.TrimSpace(cell)))
	}
	if rows := t.DataRows(); len(rows) > 0 {
		sig.FirstRow = rows[0]
	}
	return sig
}

// Has reports whether a header cell equals name.
func (s Signature) Has(name string) bool {
	return s.Index(name) >= 0
}

// Index returns the position of the header cell equal to name, or -1.
func (s Signature) Index(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return model.NoColumn
}

// Contains reports whether any header cell contains substr.
func (s Signature) Contains(substr string) bool {
	for _, h := range s.Header {
		if strings.Contains(h, substr) {
			return true
		}
	}
	return false
}

// FirstIs reports whether the first header cell equals name.
func (s Signature) FirstIs(name string) bool {
	return len(s.Header) > 0 && s.Header[0] == name
}

// IndexOr returns the position of name, or fallback when it is absent.
func (s Signature) IndexOr(name string, fallback int) int {
	if i := s.Index(name); i >= 0 {
		return i
	}
	return fallback
}

// Width is the number of columns the signature describes.
func (s Signature) Width() int {
	if s.HasHeader {
		return len(s.Header)
	}
	return len(s.FirstRow)
}

// Format is one recognizable export layout: a pure predicate paired with the
// mapping it implies.
type Format struct {
	Match   func(Signature) bool
	Mapping func(Signature) model.ColumnMapping
	Label   string
	Test    string
	Hint    model.AccountType
}

// Detector evaluates formats in order; the first match wins.
type Detector struct {
	logger  *slog.Logger
	formats []Format
}

// NewDetector creates a detector over formats, or over Formats() when none
// are given.
func NewDetector(logger *slog.Logger, formats ...Format) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	if len(formats) == 0 {
		formats = Formats()
	}
	return &Detector{logger: logger, formats: formats}
}

// Detect returns the first format whose test matches, or nil. A format whose
// test matches but whose mapping points outside the table is passed over.
func (d *Detector) Detect(t *table.Table) *FormatGuess {
	sig := NewSignature(t)
	width := sig.Width()

	for _, f := range d.formats {
		if !f.Match(sig) {
			continue
		}

		mapping := f.Mapping(sig)
		mapping.HasHeader = t.HasHeader
		if err := mapping.Validate(); err != nil || mapping.MaxColumn() >= width {
			d.logger.Debug("Format matched but mapping does not fit table",
				"format", f.Label,
				"width", width,
				"error", err)
			continue
		}

		d.logger.Debug("Detected export format", "format", f.Label, "test", f.Test)
		return &FormatGuess{
			Label:   f.Label,
			Test:    f.Test,
			Hint:    f.Hint,
			Mapping: mapping,
		}
	}
	return nil
}

// Labels lists the format labels in evaluation order.
func (d *Detector) Labels() []string {
	labels := make([]string, len(d.formats))
	for i, f := range d.formats {
		labels[i] = f.Label
	}
	return labels
}
