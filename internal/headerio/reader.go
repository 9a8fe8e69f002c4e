// Package headerio reads the header line of a delimited file.
//
// Spreadsheet exports often carry a UTF-8 byte order mark, stray invalid
// bytes, or a few blank rows above the header. NewReader cleans the stream
// and ReadHeader returns the first non-empty record.
package headerio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrNoHeader is returned when no non-empty record is found.
var ErrNoHeader = errors.New("input has no header line")

// DefaultMaxScanRows is the number of records searched for the header.
const DefaultMaxScanRows = 20

var bom = []byte{0xEF, 0xBB, 0xBF}

// Options controls ReadHeader.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// MaxScanRows bounds the search for a non-empty record. Zero means
	// DefaultMaxScanRows.
	MaxScanRows int
}

// NewReader wraps r, dropping a leading byte order mark and replacing
// invalid UTF-8 with U+FFFD as it streams.
func NewReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(bom)); err == nil && bytes.Equal(prefix, bom) {
		_, _ = br.Discard(len(bom))
	}
	return &sanitizer{br: br}
}

type sanitizer struct {
	br *bufio.Reader

	// Encoded bytes of a rune that did not fit in the caller's buffer.
	pending []byte
}

// Read implements io.Reader.
func (s *sanitizer) Read(p []byte) (int, error) {
	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	var buf [utf8.UTFMax]byte
	for n < len(p) {
		// Invalid bytes decode as utf8.RuneError, which encodes as U+FFFD.
		r, _, err := s.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		enc := buf[:utf8.EncodeRune(buf[:], r)]
		c := copy(p[n:], enc)
		n += c
		if c < len(enc) {
			s.pending = append(s.pending[:0], enc[c:]...)
		}
	}
	return n, nil
}

// ReadHeader returns the first record of r that has a non-blank field.
func ReadHeader(r io.Reader, opts Options) ([]string, error) {
	cr := csv.NewReader(NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	maxRows := opts.MaxScanRows
	if maxRows <= 0 {
		maxRows = DefaultMaxScanRows
	}

	for range maxRows {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if !isEmptyRow(record) {
			return record, nil
		}
	}
	return nil, ErrNoHeader
}

// ParseDelimiter accepts a single character, or "tab" / `\t`.
// An empty string means ','.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
