// Package source reads spreadsheet and CSV input files into sheets.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	model "github.com/okian/debtfx/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// Read dispatches on the file extension: .xlsx goes through ReadXLSX,
// .csv through ReadCSV.
func Read(path string) (model.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return model.Sheet{}, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

// ReadXLSX reads the first worksheet of an xlsx workbook. Cells are read as
// raw values so numeric headers keep their plain form. Blank rows are dropped.
func ReadXLSX(path string) (model.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.Sheet{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Sheet{}, fmt.Errorf("%w: %s has no worksheets", ErrEmpty, path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Sheet{}, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	return split(filepath.Base(path), rows)
}

// ReadCSV reads a comma-separated file whose first record is the header.
func ReadCSV(path string) (model.Sheet, error) {
	fh, err := os.Open(path)
	if err != nil {
		return model.Sheet{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = fh.Close() }()
	return DecodeCSV(filepath.Base(path), fh)
}

// DecodeCSV parses CSV from r. Records may have differing field counts.
func DecodeCSV(name string, r io.Reader) (model.Sheet, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Sheet{}, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
		}
		rows = append(rows, rec)
	}
	return split(name, rows)
}

// split separates the header from the data rows and drops blank rows.
func split(name string, rows [][]string) (model.Sheet, error) {
	var kept [][]string
	for _, r := range rows {
		if !blank(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return model.Sheet{}, fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	header := make([]string, len(kept[0]))
	for i, h := range kept[0] {
		header[i] = strings.TrimSpace(h)
	}
	return model.Sheet{Name: name, Header: header, Rows: kept[1:]}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
