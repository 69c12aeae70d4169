package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medstock/medstock-pro/internal/application/analytics"
	"github.com/medstock/medstock-pro/internal/application/dto"
	"github.com/medstock/medstock-pro/internal/application/export"
	"github.com/medstock/medstock-pro/internal/domain"
)

// DashboardHandler trata os KPIs, as séries de movimentação e a exportação (protegido).
type DashboardHandler struct {
	uc       *analytics.DashboardUseCase
	exporter *export.ExportService
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, exporter *export.ExportService) *DashboardHandler {
	return &DashboardHandler{uc: uc, exporter: exporter}
}

func parseDays(c *fiber.Ctx) int {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil {
		return 30
	}
	return days
}

// Summary godoc
// @Summary      KPIs do painel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Período em dias (7, 30 ou 90; default 30)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), parseDays(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days deve ser 7, 30 ou 90"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MovementSeries godoc
// @Summary      Série diária de entradas e saídas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Período em dias (7, 30 ou 90; default 30)"
// @Success      200  {array}  dto.PeriodMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movements [get]
func (h *DashboardHandler) MovementSeries(c *fiber.Ctx) error {
	series, err := h.uc.GetMovementSeries(c.UserContext(), parseDays(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days deve ser 7, 30 ou 90"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(series)
}

// StockValueByBrand godoc
// @Summary      Valor em estoque agregado por marca
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrandValueDTO
// @Router       /api/dashboard/stock-value-by-brand [get]
func (h *DashboardHandler) StockValueByBrand(c *fiber.Ctx) error {
	values, err := h.uc.GetStockValueByBrand(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(values)
}

// ExportMovements godoc
// @Summary      Exportar a série de movimentações em PDF ou XLSX
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        days    query  int     false  "Período em dias (7, 30 ou 90; default 30)"
// @Param        format  query  string  false  "pdf ou xlsx (default pdf)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/movements/export [get]
func (h *DashboardHandler) ExportMovements(c *fiber.Ctx) error {
	days := parseDays(c)
	format := c.Query("format", export.FormatPDF)

	series, err := h.uc.GetMovementSeries(c.UserContext(), days)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days deve ser 7, 30 ou 90"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	report := buildMovementReport(days, series)
	content, contentType, err := h.exporter.Render(c.UserContext(), report, format)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format deve ser pdf ou xlsx"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimentacoes.%s"`, format))
	return c.Send(content)
}

// buildMovementReport monta o relatório tabular da série diária.
func buildMovementReport(days int, series []dto.PeriodMovementDTO) *export.Report {
	rows := make([]map[string]any, 0, len(series))
	for _, p := range series {
		rows = append(rows, map[string]any{
			"date":    p.Date,
			"entries": p.TotalEntries,
			"exits":   p.TotalExits,
			"net":     p.NetMovement,
		})
	}
	formatInt := func(v any) string {
		n, _ := v.(int64)
		return strconv.FormatInt(n, 10)
	}
	return &export.Report{
		Title: fmt.Sprintf("Movimentações de Estoque - últimos %d dias", days),
		Columns: []export.Column{
			{Header: "Data", Accessor: "date", Format: func(v any) string {
				t, _ := v.(time.Time)
				return t.Format("02/01/2006")
			}},
			{Header: "Entradas", Accessor: "entries", Format: formatInt},
			{Header: "Saídas", Accessor: "exits", Format: formatInt},
			{Header: "Saldo", Accessor: "net", Format: formatInt},
		},
		Rows: rows,
	}
}
