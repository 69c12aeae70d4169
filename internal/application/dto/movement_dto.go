package dto

import (
	"time"

	"github.com/medstock/medstock-pro/internal/domain/entity"
)

// RegisterMovementRequest entrada para registrar um movimento de estoque.
type RegisterMovementRequest struct {
	Type        string `json:"type" validate:"required,oneof=entrada saida"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

// MovementResponse saída de um movimento registrado.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Description   string    `json:"description"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToMovementResponse converte a entidade em DTO de resposta.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Description:   m.Description,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		CreatedAt:     m.CreatedAt,
	}
}

// MovementListResponse histórico de movimentos de um produto (mais recente primeiro).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
