package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// ExtraFieldsKey holds values past the last header column.
const ExtraFieldsKey = "__parsed_extra"

// RawRow is one record keyed by trimmed header name. Values are float64,
// bool, string or nil.
type RawRow map[string]any

// ParseWarning reports a row-level problem that did not abort the parse.
// Row is the zero-based data row index.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

type ParseResult struct {
	Fields   []string
	Rows     []RawRow
	Warnings []ParseWarning
}

var floatPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// typeValue converts a cell to the dynamic value it looks like.
func typeValue(s string) any {
	if s == "" {
		return nil
	}
	switch s {
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	}
	if floatPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return s
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

type assembler struct {
	result ParseResult
	// padShort treats short records as trailing empty cells rather than errors.
	padShort bool
}

func (a *assembler) setHeader(record []string) {
	a.result.Fields = make([]string, len(record))
	for i, h := range record {
		a.result.Fields[i] = strings.TrimSpace(h)
	}
}

func (a *assembler) warn(msg string) {
	w := ParseWarning{Row: len(a.result.Rows), Message: msg}
	a.result.Warnings = append(a.result.Warnings, w)
	slog.Warn("Row parse error", "row", w.Row, "message", w.Message)
}

func (a *assembler) add(record []string) {
	fields := a.result.Fields
	row := make(RawRow, len(fields))

	if len(record) < len(fields) && !a.padShort {
		a.warn(fmt.Sprintf("too few fields: expected %d, parsed %d", len(fields), len(record)))
	}
	if len(record) > len(fields) {
		a.warn(fmt.Sprintf("too many fields: expected %d, parsed %d", len(fields), len(record)))
		extra := make([]any, 0, len(record)-len(fields))
		for _, v := range record[len(fields):] {
			extra = append(extra, typeValue(v))
		}
		row[ExtraFieldsKey] = extra
	}

	for i, name := range fields {
		if i < len(record) {
			row[name] = typeValue(record[i])
		} else if a.padShort {
			row[name] = nil
		}
	}

	a.result.Rows = append(a.result.Rows, row)
}

type textParser struct {
	assembler
	haveHeader bool
}

// parseFrom reads records from text until EOF. When an unterminated quote
// swallows the rest of the input, the offending line is kept leniently and
// the text after it is returned so parsing resumes there.
func (p *textParser) parseFrom(text string) (string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return "", nil
		}

		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return "", fmt.Errorf("reading delimited text: %w", err)
		}

		if !p.haveHeader {
			if err != nil {
				return "", fmt.Errorf("reading header row: %w", err)
			}
			if isBlank(record) {
				continue
			}
			p.setHeader(record)
			p.haveHeader = true
			continue
		}

		if err != nil {
			p.warn(parseErr.Err.Error())
			if errors.Is(parseErr.Err, csv.ErrQuote) && reader.InputOffset() >= int64(len(text)) {
				p.addLenient(lineAt(text, parseErr.StartLine))
				return afterLine(text, parseErr.StartLine), nil
			}
			if len(record) == 0 {
				continue
			}
		}
		if isBlank(record) {
			continue
		}
		p.add(record)
	}
}

// addLenient re-reads a single line with lazy quotes.
func (p *textParser) addLenient(line string) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	record, err := reader.Read()
	if err != nil || isBlank(record) {
		return
	}
	p.add(record)
}

// lineAt returns the 1-based line n of text without its line ending.
func lineAt(text string, n int) string {
	line, _, _ := strings.Cut(afterLine(text, n-1), "\n")
	return strings.TrimSuffix(line, "\r")
}

// afterLine returns text following the first n lines.
func afterLine(text string, n int) string {
	for range n {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	return text
}

// Parse reads delimited text with a header row. Malformed rows are kept
// with whatever fields parsed and reported as warnings; only a missing or
// unreadable header fails the parse.
func Parse(r io.Reader) (ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading delimited text: %w", err)
	}

	p := &textParser{}
	for text := string(data); text != ""; {
		if text, err = p.parseFrom(text); err != nil {
			return p.result, err
		}
	}

	if !p.haveHeader {
		return p.result, errors.New("missing header row")
	}
	return p.result, nil
}

func ParseString(text string) (ParseResult, error) {
	return Parse(strings.NewReader(text))
}
