package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock-pro/internal/application/export"
	"github.com/medstock/medstock-pro/internal/domain"
)

func sampleReport() *export.Report {
	return &export.Report{
		Title: "Movimentações de Estoque",
		Columns: []export.Column{
			{Header: "Data", Accessor: "date", Format: func(v any) string {
				t, _ := v.(time.Time)
				return t.Format("02/01/2006")
			}},
			{Header: "Entradas", Accessor: "entries"},
			{Header: "Saídas", Accessor: "exits"},
		},
		Rows: []map[string]any{
			{"date": time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), "entries": int64(5), "exits": int64(3)},
			{"date": time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), "entries": int64(0)},
		},
	}
}

func TestHeaderRow(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, []string{"Data", "Entradas", "Saídas"}, r.HeaderRow())
}

func TestCellRows_AplicaFormatEValorAusente(t *testing.T) {
	rows := sampleReport().CellRows()
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"01/08/2026", "5", "3"}, rows[0], "coluna com Format usa o formatador")
	assert.Equal(t, []string{"02/08/2026", "0", ""}, rows[1], "acessor ausente vira célula vazia")
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportService
// ──────────────────────────────────────────────────────────────────────────────

type stubGenerator struct {
	out []byte
	err error
}

func (g *stubGenerator) Generate(context.Context, *export.Report) ([]byte, error) {
	return g.out, g.err
}

func TestRender_SelecionaGeradorPorFormato(t *testing.T) {
	svc := export.NewExportService(
		&stubGenerator{out: []byte("pdf-bytes")},
		&stubGenerator{out: []byte("xlsx-bytes")},
	)

	b, ct, err := svc.Render(context.Background(), sampleReport(), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, []byte("pdf-bytes"), b)

	b, ct, err = svc.Render(context.Background(), sampleReport(), export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ct)
	assert.Equal(t, []byte("xlsx-bytes"), b)
}

func TestRender_FormatoDesconhecidoRejeitado(t *testing.T) {
	svc := export.NewExportService(&stubGenerator{}, &stubGenerator{})
	_, _, err := svc.Render(context.Background(), sampleReport(), "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRender_PropagaErroDoGerador(t *testing.T) {
	boom := errors.New("falha de renderização")
	svc := export.NewExportService(&stubGenerator{err: boom}, &stubGenerator{})
	_, _, err := svc.Render(context.Background(), sampleReport(), export.FormatPDF)
	assert.ErrorIs(t, err, boom)
}
