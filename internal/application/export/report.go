// Package export monta relatórios tabulares a partir de uma especificação de
// colunas {header, accessor, format} mais linhas de dados, e delega a geração
// do arquivo (PDF ou planilha) aos geradores de infraestrutura.
package export

import (
	"context"
	"fmt"

	"github.com/medstock/medstock-pro/internal/domain"
)

// Column especificação de uma coluna do relatório.
type Column struct {
	Header   string
	Accessor string
	// Format opcional: converte o valor bruto em texto de exibição.
	Format func(v any) string
}

// Report relatório tabular pronto para renderizar.
type Report struct {
	Title   string
	Columns []Column
	Rows    []map[string]any
}

// Formatos de arquivo aceitos.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Generator renderiza um Report num formato de arquivo.
type Generator interface {
	Generate(ctx context.Context, report *Report) ([]byte, error)
}

// HeaderRow devolve os títulos das colunas na ordem declarada.
func (r *Report) HeaderRow() []string {
	headers := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		headers[i] = col.Header
	}
	return headers
}

// CellRows materializa as linhas como texto, aplicando o Format de cada coluna.
func (r *Report) CellRows() [][]string {
	rows := make([][]string, 0, len(r.Rows))
	for _, raw := range r.Rows {
		cells := make([]string, len(r.Columns))
		for i, col := range r.Columns {
			value := raw[col.Accessor]
			if col.Format != nil {
				cells[i] = col.Format(value)
				continue
			}
			if value == nil {
				cells[i] = ""
				continue
			}
			cells[i] = fmt.Sprintf("%v", value)
		}
		rows = append(rows, cells)
	}
	return rows
}

// ExportService resolve o gerador pelo formato pedido.
type ExportService struct {
	pdf  Generator
	xlsx Generator
}

// NewExportService constrói o serviço com os dois geradores.
func NewExportService(pdf, xlsx Generator) *ExportService {
	return &ExportService{pdf: pdf, xlsx: xlsx}
}

// Render gera os bytes do relatório no formato pedido ("pdf" ou "xlsx").
func (s *ExportService) Render(ctx context.Context, report *Report, format string) ([]byte, string, error) {
	switch format {
	case FormatPDF:
		b, err := s.pdf.Generate(ctx, report)
		return b, "application/pdf", err
	case FormatXLSX:
		b, err := s.xlsx.Generate(ctx, report)
		return b, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	}
	return nil, "", domain.ErrInvalidInput
}
