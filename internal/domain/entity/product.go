package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida aceitas para produtos.
const (
	UnitUN  = "UN"  // unidade
	UnitCX  = "CX"  // caixa
	UnitPCT = "PCT" // pacote
	UnitKG  = "KG"  // quilograma
	UnitL   = "L"   // litro
)

// LowStockThreshold estoque abaixo deste valor conta como "estoque baixo",
// tanto no painel quanto no filtro da listagem.
const LowStockThreshold = 10

// ValidUnit informa se a unidade de medida é uma das aceitas.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitUN, UnitCX, UnitPCT, UnitKG, UnitL:
		return true
	}
	return false
}

// Product representa um produto de suprimento médico.
// Stock é um valor denormalizado: deve sempre igualar o efeito acumulado do
// histórico de movimentos (ver ledger.Apply). Nunca fica negativo após uma
// operação concluída.
type Product struct {
	ID           string
	Code         string // identificador livre, sem garantia de unicidade global
	Description  string
	Brand        string // vinda do registro de marcas ou texto livre
	Unit         string // UN, CX, PCT, KG, L
	SellingPrice decimal.Decimal
	Stock        int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
