package spreadsheet

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write renders sheets into an xlsx workbook.
func Write(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}

	for i, sh := range sheets {
		name := sh.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, errors.Wrapf(err, "rename sheet %s", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, errors.Wrapf(err, "new sheet %s", name)
		}

		if len(sh.Header) > 0 {
			if err := f.SetSheetRow(name, "A1", &sh.Header); err != nil {
				return nil, errors.Wrapf(err, "header %s", name)
			}
			last, _ := excelize.CoordinatesToCellName(len(sh.Header), 1)
			_ = f.SetCellStyle(name, "A1", last, bold)
		}
		for r, row := range sh.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "row %d of %s", r+2, name)
			}
		}
	}
	if len(sheets) == 0 {
		if err := f.SetSheetName("Sheet1", "Report"); err != nil {
			return nil, errors.Wrap(err, "rename sheet")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return bytes.Clone(buf.Bytes()), nil
}
