// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package gradelog

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by ExportXLSX.
const SheetName = "Grading"

// ExportZstd writes recs as canonical CSV compressed with zstd.
func ExportZstd(w io.Writer, recs []Record) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := WriteCSV(enc, recs); err != nil {
		_ = enc.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return enc.Close()
}

// ExportXLSX writes recs to a single-sheet workbook with the canonical header.
func ExportXLSX(w io.Writer, recs []Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r.Row()
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
