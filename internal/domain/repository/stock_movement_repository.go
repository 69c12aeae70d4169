package repository

import (
	"time"

	"github.com/medstock/medstock-pro/internal/domain/entity"
)

// StockMovementRepository porta de persistência para movimentos de estoque.
// Não há remoção: o histórico é um ledger de auditoria e movimentos de
// produtos excluídos são retidos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devolve os movimentos de um produto, mais recente primeiro.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	CountSince(since time.Time) (int, error)
}
