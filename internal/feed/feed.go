// Package feed provides identifier sources for dispatch replay.
//
// A feed yields the runtime identifiers driven through a dispatch table:
// message ids parsed from an NDJSON event stream, or bare numbers, one per
// line. Malformed records are counted and skipped; a feed never fails on
// bad input, mirroring the tables' never-fail call contract.
package feed

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Source yields identifiers until io.EOF.
type Source interface {
	// Next returns the next identifier, or io.EOF when the feed is
	// exhausted.
	Next() (uint, error)

	// Skipped returns the number of malformed records dropped so far.
	Skipped() int
}

// JSON reads an NDJSON stream and extracts an identifier field from each
// record.
type JSON struct {
	scanner *bufio.Scanner
	path    string
	skipped int
}

// NewJSON creates a feed over an NDJSON stream. The path selects the
// identifier field ("id" when empty) and may be any gjson path, so nested
// headers like "header.vector" work.
func NewJSON(r io.Reader, path string) *JSON {
	if path == "" {
		path = "id"
	}
	return &JSON{
		scanner: bufio.NewScanner(r),
		path:    path,
	}
}

// Next returns the next identifier, skipping blank lines and records that
// are not valid JSON, lack the field, or hold a value that is not a
// non-negative integer.
func (f *JSON) Next() (uint, error) {
	for f.scanner.Scan() {
		line := f.scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			f.skipped++
			continue
		}

		res := gjson.GetBytes(line, f.path)
		if res.Type != gjson.Number {
			f.skipped++
			continue
		}
		if res.Num < 0 || res.Num != math.Trunc(res.Num) {
			f.skipped++
			continue
		}

		return uint(res.Uint()), nil
	}
	if err := f.scanner.Err(); err != nil {
		return 0, err
	}
	return 0, io.EOF
}

// Skipped returns the number of malformed records dropped so far.
func (f *JSON) Skipped() int {
	return f.skipped
}

// Lines reads bare decimal identifiers, one per line. Lines starting with
// '#' are comments.
type Lines struct {
	scanner *bufio.Scanner
	skipped int
}

// NewLines creates a feed over a plain numeric stream.
func NewLines(r io.Reader) *Lines {
	return &Lines{scanner: bufio.NewScanner(r)}
}

// Next returns the next identifier, skipping blanks, comments, and lines
// that do not parse as a non-negative decimal.
func (f *Lines) Next() (uint, error) {
	for f.scanner.Scan() {
		line := strings.TrimSpace(f.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			f.skipped++
			continue
		}

		return uint(id), nil
	}
	if err := f.scanner.Err(); err != nil {
		return 0, err
	}
	return 0, io.EOF
}

// Skipped returns the number of malformed lines dropped so far.
func (f *Lines) Skipped() int {
	return f.skipped
}
