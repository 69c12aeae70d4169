package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=100"`
	Description  string          `json:"description" validate:"required,min=1,max=200"`
	Brand        string          `json:"brand" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int64           `json:"stock"`
}

// UpdateProductRequest entrada para atualizar um produto (sem Stock:
// o estoque só muda via movimentos).
type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" validate:"omitempty,min=1,max=200"`
	Brand        *string          `json:"brand"`
	Unit         *string          `json:"unit"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

// ProductResponse saída de um produto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	Unit         string          `json:"unit"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        int64           `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListFilter filtros da listagem (query string), espelha os filtros
// avançados da UI: busca livre, marca e faixas de preço/estoque.
type ProductListFilter struct {
	Search     string   `query:"search"`
	Brand      string   `query:"brand"`
	MinPrice   *float64 `query:"min_price"`
	MaxPrice   *float64 `query:"max_price"`
	MinStock   *int64   `query:"min_stock"`
	MaxStock   *int64   `query:"max_stock"`
	LowStock   bool     `query:"low_stock"`
	OutOfStock bool     `query:"out_of_stock"`
}
