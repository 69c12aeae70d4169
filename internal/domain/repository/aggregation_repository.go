package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodMovementRow linha devolvida pela procedure get_movements_by_period:
// totais de entradas e saídas agregados por dia.
type PeriodMovementRow struct {
	Date         time.Time
	TotalEntries int64
	TotalExits   int64
	NetMovement  int64
}

// AggregationRepository consultas de somente leitura delegadas às procedures
// remotas de agregação.
type AggregationRepository interface {
	// CalculateTotalStockValue invoca calculate_total_stock_value() e devolve
	// o valor total do estoque (soma de stock × selling_price).
	CalculateTotalStockValue(ctx context.Context) (decimal.Decimal, error)
	// GetMovementsByPeriod invoca get_movements_by_period(start, end).
	GetMovementsByPeriod(ctx context.Context, start, end time.Time) ([]PeriodMovementRow, error)
}
