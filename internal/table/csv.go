package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Reader errors.
var (
	ErrEmpty       = errors.New("file contains no rows")
	ErrUnsupported = errors.New("unsupported file type")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate delimiters, most specific first so ties favor them over commas.
var delimiters = []rune{'\t', ';', '|', ','}

// ReadFile reads a CSV, TSV or OFX/QFX export.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return ParseOFX(bytes.NewReader(data))
	case ".csv", ".tsv", ".txt", "":
		return ParseDelimited(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// ParseDelimited parses delimiter-separated text. The delimiter is sniffed
// from the first non-empty line; Latin-1 input is decoded to UTF-8.
func ParseDelimited(data []byte) (*Table, error) {
	data, err := normalizeEncoding(data)
	if err != nil {
		return nil, err
	}

	delim := detectDelimiter(firstLine(data))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse delimited file: %w", err)
		}
		if isBlank(record) {
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	t := New("csv", rows)
	slog.Debug("Parsed delimited file",
		"delimiter", string(delim),
		"rows", len(rows),
		"has_header", t.HasHeader)
	return t, nil
}

func normalizeEncoding(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file as Windows-1252: %w", err)
	}
	return decoded, nil
}

func firstLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// detectDelimiter picks the candidate that occurs most often outside quotes.
// A line with no candidates is a single column, read with commas.
func detectDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, d := range delimiters {
		if count := countUnquoted(line, d); count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

func countUnquoted(line string, d rune) int {
	count := 0
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			count++
		}
	}
	return count
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
