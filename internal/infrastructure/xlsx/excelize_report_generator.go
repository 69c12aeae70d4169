// Package xlsx renderiza relatórios tabulares em planilha com Excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/medstock/medstock-pro/internal/application/export"
)

const sheetName = "Relatório"

var _ export.Generator = (*ExcelizeReportGenerator)(nil)

// ExcelizeReportGenerator implementa export.Generator usando excelize.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator constrói o gerador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// Generate gera a planilha e devolve seus bytes.
func (g *ExcelizeReportGenerator) Generate(_ context.Context, report *export.Report) ([]byte, error) {
	if len(report.Columns) == 0 {
		return nil, fmt.Errorf("xlsx: relatório sem colunas")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: criar planilha: %w", err)
	}
	f.SetActiveSheet(index)
	// Remove a "Sheet1" padrão do excelize
	_ = f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabeçalho: %w", err)
	}

	// Cabeçalho na primeira linha
	for i, header := range report.HeaderRow() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: célula de cabeçalho: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("xlsx: escrever cabeçalho: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("xlsx: aplicar estilo: %w", err)
		}
	}

	// Linhas de dados a partir da segunda linha
	for rowIdx, cells := range report.CellRows() {
		for colIdx, value := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx: célula de dados: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("xlsx: escrever célula: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar planilha: %w", err)
	}
	return buf.Bytes(), nil
}
