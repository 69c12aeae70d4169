package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock-pro/internal/application/analytics"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeAggRepo struct {
	totalValue decimal.Decimal
	rows       []repository.PeriodMovementRow
}

func (f *fakeAggRepo) CalculateTotalStockValue(context.Context) (decimal.Decimal, error) {
	return f.totalValue, nil
}

func (f *fakeAggRepo) GetMovementsByPeriod(_ context.Context, _, _ time.Time) ([]repository.PeriodMovementRow, error) {
	return f.rows, nil
}

type fakeProductRepo struct {
	products []*entity.Product
	lowStock int
}

func (f *fakeProductRepo) Create(*entity.Product) error            { return nil }
func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error            { return nil }
func (f *fakeProductRepo) UpdateStock(string, int64, int64) error  { return nil }
func (f *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return f.products, len(f.products), nil
}
func (f *fakeProductRepo) ListAll() ([]*entity.Product, error)    { return f.products, nil }
func (f *fakeProductRepo) Delete(string) error                    { return nil }
func (f *fakeProductRepo) CountBelowStock(int64) (int, error)     { return f.lowStock, nil }

type fakeMovementRepo struct {
	count int
}

func (f *fakeMovementRepo) Create(*entity.StockMovement) error { return nil }
func (f *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (f *fakeMovementRepo) CountSince(time.Time) (int, error) { return f.count, nil }

// ──────────────────────────────────────────────────────────────────────────────
// GetSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary_AgregaKPIsDoPeriodo(t *testing.T) {
	aggRepo := &fakeAggRepo{totalValue: decimal.RequireFromString("1234.56")}
	productRepo := &fakeProductRepo{
		products: []*entity.Product{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		lowStock: 1,
	}
	movementRepo := &fakeMovementRepo{count: 42}
	uc := analytics.NewDashboardUseCase(aggRepo, productRepo, movementRepo)

	out, err := uc.GetSummary(context.Background(), 30)
	require.NoError(t, err)

	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.234,56", out.TotalValueFormatted)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 42, out.TotalMovements)
	assert.Equal(t, 1, out.LowStockCount)
	assert.Equal(t, 30, out.PeriodDays)
}

func TestGetSummary_PeriodoInvalidoRejeitado(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAggRepo{}, &fakeProductRepo{}, &fakeMovementRepo{})

	for _, days := range []int{0, -7, 15, 365} {
		_, err := uc.GetSummary(context.Background(), days)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "days=%d", days)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Série de movimentação
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildMovementSeries_RecalculaSaldo(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.PeriodMovementRow{
		{Date: day, TotalEntries: 5, TotalExits: 3},
		{Date: day.AddDate(0, 0, 1), TotalEntries: 1, TotalExits: 3},
	}

	series := analytics.BuildMovementSeries(rows)
	require.Len(t, series, 2)
	assert.Equal(t, int64(2), series[0].NetMovement, "saldo = entradas - saídas")
	assert.Equal(t, int64(-2), series[1].NetMovement, "saldo pode ser negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Valor por marca
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupStockValueByBrand_SomaPorMarcaOrdenada(t *testing.T) {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	products := []*entity.Product{
		{Brand: "Roche", Stock: 2, SellingPrice: price("10.00")},
		{Brand: "Abbott", Stock: 1, SellingPrice: price("5.50")},
		{Brand: "Roche", Stock: 3, SellingPrice: price("1.00")},
	}

	out := analytics.GroupStockValueByBrand(products)
	require.Len(t, out, 2)

	assert.Equal(t, "Abbott", out[0].Brand, "marcas em ordem ascendente")
	assert.True(t, out[0].Value.Equal(price("5.50")))
	assert.Equal(t, "Roche", out[1].Brand)
	assert.True(t, out[1].Value.Equal(price("23.00")), "2×10 + 3×1")

	// A soma das fatias é igual à soma sobre todos os produtos
	total := decimal.Zero
	for _, v := range out {
		total = total.Add(v.Value)
	}
	assert.True(t, total.Equal(price("28.50")))
}

func TestGroupStockValueByBrand_Vazio(t *testing.T) {
	out := analytics.GroupStockValueByBrand(nil)
	assert.Empty(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formatação monetária
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":          "R$ 0,00",
		"1234.56":    "R$ 1.234,56",
		"1000000":    "R$ 1.000.000,00",
		"9.9":        "R$ 9,90",
	}
	for in, want := range cases {
		got := analytics.FormatBRL(decimal.RequireFromString(in))
		assert.Equal(t, want, got, "entrada %s", in)
	}
}
