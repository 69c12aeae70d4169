// Package pdf renderiza relatórios tabulares em PDF com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO do relatório + data de geração                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CABEÇALHO: uma célula por coluna da especificação          │
//	│  LINHAS: valores formatados (zebrado)                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/medstock/medstock-pro/internal/application/export"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ export.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa export.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, report *export.Report) ([]byte, error) {
	if len(report.Columns) == 0 {
		return nil, fmt.Errorf("pdf: relatório sem colunas")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(report.Title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(report.HeaderRow()))
	for i, cells := range report.CellRows() {
		m.AddRows(dataRow(cells, i%2 == 1))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func titleRow(title string) core.Row {
	generated := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+generated, props.Text{
				Size: 8, Top: 4, Color: colorGray,
			}),
		),
	)
}

func headerRow(headers []string) core.Row {
	widths := columnWidths(len(headers))
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(h, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
		))
	}
	return row.New(8).Add(cols...)
}

func dataRow(cells []string, zebra bool) core.Row {
	widths := columnWidths(len(cells))
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(c, props.Text{Size: 8, Top: 1}),
		))
	}
	r := row.New(6).Add(cols...)
	if zebra {
		r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
	}
	return r
}

// columnWidths distribui as 12 colunas do grid do Maroto entre as colunas do
// relatório; o resto vai para a primeira.
func columnWidths(n int) []int {
	widths := make([]int, n)
	base := 12 / n
	rest := 12 % n
	for i := range widths {
		widths[i] = base
	}
	widths[0] += rest
	return widths
}
