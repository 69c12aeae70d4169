package postgres

import (
	"context"
	"fmt"

	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

var _ repository.AggregationRepository = (*AggregationRepo)(nil)

// AggregationRepo invoca as procedures remotas de agregação (somente leitura).
type AggregationRepo struct {
	pool *pgxpool.Pool
}

// NewAggregationRepository constrói o adaptador de agregação.
func NewAggregationRepository(pool *pgxpool.Pool) *AggregationRepo {
	return &AggregationRepo{pool: pool}
}

// CalculateTotalStockValue invoca calculate_total_stock_value().
// A procedure devolve uma única linha {total_value}; COALESCE garante zero
// quando não há produtos.
func (r *AggregationRepo) CalculateTotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(total_value, 0) FROM calculate_total_stock_value()`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregation.CalculateTotalStockValue: %w", err)
	}
	return total, nil
}

// GetMovementsByPeriod invoca get_movements_by_period(start, end): totais de
// entradas e saídas agregados por dia dentro do intervalo.
func (r *AggregationRepo) GetMovementsByPeriod(
	ctx context.Context,
	start, end time.Time,
) ([]repository.PeriodMovementRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date, total_entries, total_exits, net_movement
		 FROM get_movements_by_period($1, $2)
		 ORDER BY date`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregation.GetMovementsByPeriod: %w", err)
	}
	defer rows.Close()

	var results []repository.PeriodMovementRow
	for rows.Next() {
		var row repository.PeriodMovementRow
		if err := rows.Scan(&row.Date, &row.TotalEntries, &row.TotalExits, &row.NetMovement); err != nil {
			return nil, fmt.Errorf("aggregation.GetMovementsByPeriod scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
