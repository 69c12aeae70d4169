package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO resposta de GET /api/dashboard/summary.
// KPIs do período selecionado (7/30/90 dias).
type DashboardSummaryDTO struct {
	TotalValue          decimal.Decimal `json:"total_value"`           // valor total em estoque (procedure remota)
	TotalValueFormatted string          `json:"total_value_formatted"` // "R$ 1.234,56"
	TotalProducts       int             `json:"total_products"`
	TotalMovements      int             `json:"total_movements"` // movimentos no período
	LowStockCount       int             `json:"low_stock_count"` // produtos com estoque abaixo do limite
	PeriodDays          int             `json:"period_days"`
}

// PeriodMovementDTO ponto da série de movimentação por dia.
type PeriodMovementDTO struct {
	Date         time.Time `json:"date"`
	TotalEntries int64     `json:"total_entries"`
	TotalExits   int64     `json:"total_exits"`
	NetMovement  int64     `json:"net_movement"` // entradas - saídas
}

// BrandValueDTO valor em estoque agregado por marca.
type BrandValueDTO struct {
	Brand string          `json:"brand"`
	Value decimal.Decimal `json:"value"` // soma de stock × selling_price
}
