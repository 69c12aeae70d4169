package repository

import "github.com/medstock/medstock-pro/internal/domain/entity"

// ProductFilter critérios opcionais para listagem de produtos.
type ProductFilter struct {
	Search     string // busca livre em descrição e marca
	Brand      string // igualdade exata
	MinPrice   *float64
	MaxPrice   *float64
	MinStock   *int64
	MaxStock   *int64
	LowStock   bool // apenas produtos com estoque abaixo de entity.LowStockThreshold
	OutOfStock bool // apenas produtos com estoque zerado
}

// ProductRepository porta de persistência para produtos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock aplica uma atualização condicional do estoque:
	// só escreve se o estoque atual ainda for expectedStock.
	// Retorna domain.ErrStockConflict se outra sessão alterou o valor.
	UpdateStock(productID string, expectedStock, newStock int64) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
	CountBelowStock(threshold int64) (int, error)
}
