package csvimport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var exampleRow = []string{
	"PROD-001", "Producto Ejemplo", "Bodega A", "5", "20", "100", "100",
	"2025-12-31", "Proveedor XYZ", "10", "200", "Entrada", "15.50", "1550.00",
	"https://ejemplo.com/imagen.jpg", "A",
}

// TemplateCSV is the downloadable import template: the canonical header and
// one example row.
func TemplateCSV() []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Fields, ","))
	b.WriteByte('\n')
	b.WriteString(strings.Join(exampleRow, ","))
	b.WriteByte('\n')
	return []byte(b.String())
}

const templateSheet = "Productos"

// TemplateXLSX renders the same template as a workbook. Users fill it in and
// export it back to CSV before importing.
func TemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, rows := range [][]string{Fields, exampleRow} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		row := make([]any, len(rows))
		for j, v := range rows {
			row[j] = v
		}
		if err := f.SetSheetRow(templateSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write template row %d: %w", i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(Fields), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(templateSheet, "A1", last, style); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
