// Package ledger contém a aritmética pura da consistência do estoque:
// o estoque de um produto deve sempre igualar o efeito acumulado do seu
// histórico de movimentos.
package ledger

import (
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
)

// Apply calcula o estoque resultante de aplicar um movimento sobre o estoque atual.
// Valida quantidade e tipo antes de qualquer efeito; um resultado negativo é
// rejeitado com ErrInsufficientStock. Saída igual ao estoque atual é permitida
// (estoque resultante zero).
func Apply(currentStock int64, movementType string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	if !entity.ValidMovementType(movementType) {
		return 0, domain.ErrInvalidInput
	}

	delta := quantity
	if movementType == entity.MovementTypeSaida {
		delta = -quantity
	}

	newStock := currentStock + delta
	if newStock < 0 {
		return 0, domain.ErrInsufficientStock
	}
	return newStock, nil
}

// Consistent verifica o invariante de um movimento já registrado.
func Consistent(m *entity.StockMovement) bool {
	expected, err := Apply(m.PreviousStock, m.Type, m.Quantity)
	return err == nil && expected == m.NewStock
}
