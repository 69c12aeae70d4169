// Package analytics contém os casos de uso de leitura do dashboard:
// KPIs do período, série de movimentação por dia e valor em estoque por marca.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"github.com/medstock/medstock-pro/internal/application/dto"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// períodos aceitos pelo dashboard, em dias.
var validPeriods = map[int]bool{7: true, 30: true, 90: true}

// DashboardUseCase agrega as estatísticas exibidas no dashboard.
//
// Fonte de dados: AggregationRepository (procedures remotas de agregação) mais
// ProductRepository e StockMovementRepository para contagens. O agrupamento
// por marca é feito localmente sobre as linhas de produto.
type DashboardUseCase struct {
	aggRepo      repository.AggregationRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(
	aggRepo repository.AggregationRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		aggRepo:      aggRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// GetSummary constrói o DashboardSummaryDTO para o período em dias (7/30/90).
//
// Quatro consultas em paralelo:
//  1. calculate_total_stock_value()      → TotalValue
//  2. produtos (todas as linhas)         → TotalProducts
//  3. movimentos desde o início do prazo → TotalMovements
//  4. produtos com estoque < 10          → LowStockCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context, periodDays int) (*dto.DashboardSummaryDTO, error) {
	if !validPeriods[periodDays] {
		return nil, domain.ErrInvalidInput
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type countResult struct {
		n   int
		err error
	}

	valueCh := make(chan valueResult, 1)
	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)

	go func() {
		v, err := uc.aggRepo.CalculateTotalStockValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		products, err := uc.productRepo.ListAll()
		productsCh <- productsResult{products, err}
	}()
	go func() {
		n, err := uc.movementRepo.CountSince(since)
		movementsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.productRepo.CountBelowStock(entity.LowStockThreshold)
		lowStockCh <- countResult{n, err}
	}()

	value := <-valueCh
	products := <-productsCh
	movements := <-movementsCh
	lowStock := <-lowStockCh

	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor total em estoque: %w", value.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: produtos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimentos do período: %w", movements.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: estoque baixo: %w", lowStock.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalValue:          value.value.Round(2),
		TotalValueFormatted: FormatBRL(value.value),
		TotalProducts:       len(products.products),
		TotalMovements:      movements.n,
		LowStockCount:       lowStock.n,
		PeriodDays:          periodDays,
	}, nil
}

// GetMovementSeries devolve a série de movimentação por dia do período,
// delegada à procedure get_movements_by_period. O saldo (net_movement) é
// recalculado localmente como entradas - saídas.
func (uc *DashboardUseCase) GetMovementSeries(ctx context.Context, periodDays int) ([]dto.PeriodMovementDTO, error) {
	if !validPeriods[periodDays] {
		return nil, domain.ErrInvalidInput
	}
	end := time.Now()
	start := end.AddDate(0, 0, -periodDays)

	rows, err := uc.aggRepo.GetMovementsByPeriod(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: movimentação por período: %w", err)
	}
	return BuildMovementSeries(rows), nil
}

// GetStockValueByBrand agrupa, em memória, o valor em estoque por marca:
// marca → soma de stock × selling_price sobre todos os produtos.
func (uc *DashboardUseCase) GetStockValueByBrand(ctx context.Context) ([]dto.BrandValueDTO, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("dashboard: valor por marca: %w", err)
	}
	return GroupStockValueByBrand(products), nil
}

// BuildMovementSeries converte as linhas da procedure no DTO da série,
// recalculando o saldo de cada dia.
func BuildMovementSeries(rows []repository.PeriodMovementRow) []dto.PeriodMovementDTO {
	series := make([]dto.PeriodMovementDTO, 0, len(rows))
	for _, row := range rows {
		series = append(series, dto.PeriodMovementDTO{
			Date:         row.Date,
			TotalEntries: row.TotalEntries,
			TotalExits:   row.TotalExits,
			NetMovement:  row.TotalEntries - row.TotalExits,
		})
	}
	return series
}

// GroupStockValueByBrand soma stock × selling_price por marca e devolve as
// marcas em ordem ascendente. A soma dos valores exibidos é igual à soma sobre
// todos os produtos recebidos.
func GroupStockValueByBrand(products []*entity.Product) []dto.BrandValueDTO {
	byBrand := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		value := p.SellingPrice.Mul(decimal.NewFromInt(p.Stock))
		byBrand[p.Brand] = byBrand[p.Brand].Add(value)
	}

	result := make([]dto.BrandValueDTO, 0, len(byBrand))
	for brand, value := range byBrand {
		result = append(result, dto.BrandValueDTO{Brand: brand, Value: value.Round(2)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Brand < result[j].Brand })
	return result
}

// brlPrinter formata números no locale pt-BR (separador de milhar "." e decimal ",").
var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata um valor monetário como "R$ 1.234,56".
func FormatBRL(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return brlPrinter.Sprintf("R$ %.2f", f)
}
