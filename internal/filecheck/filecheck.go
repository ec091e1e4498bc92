// Package filecheck rejects broken attendance uploads before they cost a
// round trip to the backend. Accepted types mirror the upload form:
// csv, xlsx, xls, pdf.
package filecheck

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var pdfMagic = []byte("%PDF")

// Validate checks that data parses as the format its filename claims.
func Validate(filename string, data []byte) error {
	if len(data) == 0 {
		return errors.New("file is empty")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return validateCSV(data)
	case ".xlsx":
		return validateXLSX(data)
	case ".xls":
		return validateXLS(data)
	case ".pdf":
		return validatePDF(data)
	default:
		return fmt.Errorf("unsupported file type %q (want csv, xlsx, xls, or pdf)", filepath.Ext(filename))
	}
}

func validateCSV(data []byte) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return errors.New("csv file has no rows")
		}
		return fmt.Errorf("unreadable csv file: %w", err)
	}
	return nil
}

func validateXLSX(data []byte) error {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unreadable xlsx file: %w", err)
	}
	defer file.Close()
	if file.SheetCount == 0 {
		return errors.New("xlsx file has no sheets")
	}
	return nil
}

func validateXLS(data []byte) error {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return fmt.Errorf("unreadable xls file: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return errors.New("xls file has no sheets")
	}
	return nil
}

func validatePDF(data []byte) error {
	if !bytes.HasPrefix(data, pdfMagic) {
		return errors.New("not a pdf file")
	}
	return nil
}
