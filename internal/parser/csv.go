// Package parser decodes delimited address files into header-keyed rows.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options tune the decoder. The zero value reads comma separated input.
type Options struct {
	Comma rune
}

// Parse reads the whole stream and returns every data row keyed by the header row.
// A leading byte-order mark is dropped, blank lines are skipped and every field is trimmed,
// including padding around quoted fields. Input without a header row yields no rows.
// Malformed input yields an *apperror.ParseError and no rows.
func Parse(r io.Reader, opts Options) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read input: %w", err)
	}

	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}
	data = trimQuotedPadding(bytes.TrimPrefix(data, utf8BOM), comma)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // Row width is checked against the header below
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return []models.RawRecord{}, nil
	}

	records := []models.RawRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}

		if isBlank(row) {
			continue
		}

		if len(row) != len(header) {
			line, _ := reader.FieldPos(0)
			return nil, &apperror.ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(header), len(row)),
			}
		}

		record := make(models.RawRecord, len(header))
		for i, name := range header {
			record[name] = strings.TrimSpace(row[i])
		}
		records = append(records, record)
	}

	return records, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(data []byte, opts Options) ([]models.RawRecord, error) {
	return Parse(bytes.NewReader(data), opts)
}

func readHeader(reader *csv.Reader) ([]string, error) {
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if isBlank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		header := make([]string, len(row))
		seen := make(map[string]struct{}, len(row))
		for i, name := range row {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, &apperror.ParseError{Line: line, Column: i + 1, Err: errors.New("empty header name")}
			}
			if _, dup := seen[name]; dup {
				return nil, &apperror.ParseError{Line: line, Column: i + 1, Err: fmt.Errorf("duplicate header %q", name)}
			}
			seen[name] = struct{}{}
			header[i] = name
		}
		return header, nil
	}
}

// trimQuotedPadding drops spaces and tabs between a closing quote and the
// delimiter or line end after it. encoding/csv rejects them as stray bytes.
// Newlines are never removed, so reported line numbers still match the input.
func trimQuotedPadding(data []byte, comma rune) []byte {
	if !bytes.ContainsRune(data, '"') {
		return data
	}

	out := make([]byte, 0, len(data))
	inQuotes, fieldStart := false, true
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		switch {
		case inQuotes:
			if r != '"' {
				break
			}
			if i+1 < len(data) && data[i+1] == '"' {
				out = append(out, '"', '"')
				i += 2
				continue
			}
			inQuotes = false
			out = append(out, '"')
			i++
			j := i
			for j < len(data) && isPadding(rune(data[j]), comma) {
				j++
			}
			if j == len(data) || endsField(data[j:], comma) {
				i = j
			}
			continue
		case r == '"' && fieldStart:
			inQuotes = true
			fieldStart = false
		case r == comma || r == '\n':
			fieldStart = true
		case r == '\r' || isPadding(r, comma):
		default:
			fieldStart = false
		}
		out = append(out, data[i:i+size]...)
		i += size
	}
	return out
}

func isPadding(r, comma rune) bool {
	return (r == ' ' || r == '\t') && r != comma
}

func endsField(rest []byte, comma rune) bool {
	r, _ := utf8.DecodeRune(rest)
	return r == comma || r == '\n' || r == '\r'
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &apperror.ParseError{Line: csvErr.Line, Column: csvErr.Column, Err: csvErr.Err}
	}
	return &apperror.ParseError{Err: err}
}
