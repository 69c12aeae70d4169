package entity

import "time"

// Tipos de movimento de estoque.
const (
	MovementTypeEntrada = "entrada" // recebimento
	MovementTypeSaida   = "saida"   // baixa
)

// ValidMovementType informa se o tipo de movimento é aceito.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida
}

// StockMovement registra uma alteração no estoque de um produto, com os
// snapshots do estoque no momento do registro.
// Invariante: NewStock = PreviousStock + Quantity (entrada) ou
// PreviousStock - Quantity (saida), e NewStock >= 0.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // entrada | saida
	Quantity      int64  // sempre positiva
	Description   string // motivo do movimento
	PreviousStock int64
	NewStock      int64
	CreatedAt     time.Time
}
