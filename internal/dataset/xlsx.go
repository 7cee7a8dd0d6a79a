package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load reads the selected sheet; the first non-empty row is the header.
func (xlsxLoader) Load(path string, opt Options) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s: %w", filepath.Base(path), ErrEmpty)
	}
	sheet := ""
	if opt.Sheet != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 || idx > len(sheets) {
			idx = 1
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	for len(rows) > 0 && isBlankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", sheet, ErrEmpty)
	}
	name := fmt.Sprintf("%s (sheet: %s)", filepath.Base(path), sheet)
	return FromRecords(name, rows[0], truncate(rows[1:], opt.MaxRows), opt.Parse)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
