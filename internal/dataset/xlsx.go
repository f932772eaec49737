package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads a workbook sheet (the first one when sheet is empty) and
// types its cells the same way Parse does.
func ParseXLSX(r io.Reader, sheet string) (ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return ParseResult{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	// excelize drops trailing empty cells, so short rows are not errors here.
	a := &assembler{padShort: true}
	haveHeader := false
	for _, record := range rows {
		if isBlank(record) {
			continue
		}
		if !haveHeader {
			a.setHeader(record)
			haveHeader = true
			continue
		}
		a.add(record)
	}

	if !haveHeader {
		return a.result, fmt.Errorf("sheet %s: missing header row", sheet)
	}
	return a.result, nil
}
