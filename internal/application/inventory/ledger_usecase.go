// Package inventory implementa o serviço de ledger de estoque: a regra de que
// o estoque de um produto e seu histórico de movimentos permaneçam consistentes.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/ledger"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// maxStockRetries limite de tentativas quando outra sessão altera o estoque
// entre a leitura e a escrita condicional.
const maxStockRetries = 3

// ProductUpdateError falha na primeira escrita (atualização do estoque do
// produto). Nenhum movimento foi criado: o ledger segue consistente.
type ProductUpdateError struct {
	ProductID string
	Err       error
}

func (e *ProductUpdateError) Error() string {
	return fmt.Sprintf("atualização de estoque do produto %s falhou: %v", e.ProductID, e.Err)
}

func (e *ProductUpdateError) Unwrap() error { return e.Err }

// LedgerInconsistencyError falha na segunda escrita (inserção do movimento)
// depois do estoque do produto já ter avançado. É o único modo de falha que
// deixa estado persistente inconsistente; carrega os valores necessários para
// reconciliação manual e nunca é re-tentado automaticamente, pois repetir um
// insert remoto não idempotente pode duplicar o movimento se o primeiro insert
// tiver sido aplicado apesar do erro de transporte.
type LedgerInconsistencyError struct {
	ProductID     string
	PreviousStock int64
	NewStock      int64
	Err           error
}

func (e *LedgerInconsistencyError) Error() string {
	return fmt.Sprintf(
		"inconsistência de ledger no produto %s: estoque avançou de %d para %d sem movimento registrado: %v",
		e.ProductID, e.PreviousStock, e.NewStock, e.Err,
	)
}

func (e *LedgerInconsistencyError) Unwrap() error { return e.Err }

// StockLedgerService registra movimentos de estoque em duas escritas
// sequenciais sem atomicidade (o backend expõe só CRUD de tabelas):
// primeiro o novo estoque no produto, depois o movimento com snapshots.
// A validação acontece antes de qualquer escrita.
type StockLedgerService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	log          zerolog.Logger
}

// NewStockLedgerService constrói o serviço.
func NewStockLedgerService(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	log zerolog.Logger,
) *StockLedgerService {
	return &StockLedgerService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// RecordMovement valida o movimento, calcula o estoque resultante e persiste o
// par produto+movimento, reportando o ponto exato de falha.
//
// A escrita do estoque é condicional (WHERE stock = valor lido): se outra
// sessão alterou o estoque no meio, o produto é relido e a operação re-tentada
// um número limitado de vezes, fechando a anomalia de lost update.
func (s *StockLedgerService) RecordMovement(
	ctx context.Context,
	productID, movementType string,
	quantity int64,
	description string,
) (*entity.StockMovement, error) {
	// Validação barata antes de qualquer I/O de escrita
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}

	for attempt := 0; attempt < maxStockRetries; attempt++ {
		product, err := s.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}

		newStock, err := ledger.Apply(product.Stock, movementType, quantity)
		if err != nil {
			// Sem efeitos colaterais: nada foi escrito ainda
			return nil, err
		}

		// Passo 1: atualização condicional do estoque do produto
		err = s.productRepo.UpdateStock(product.ID, product.Stock, newStock)
		if errors.Is(err, domain.ErrStockConflict) {
			s.log.Warn().
				Str("product_id", product.ID).
				Int("attempt", attempt+1).
				Msg("conflito de estoque concorrente, relendo produto")
			continue
		}
		if err != nil {
			return nil, &ProductUpdateError{ProductID: product.ID, Err: err}
		}

		// Passo 2: inserção do movimento com snapshots do estoque
		movement := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          movementType,
			Quantity:      quantity,
			Description:   description,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			CreatedAt:     time.Now(),
		}
		if err := s.movementRepo.Create(movement); err != nil {
			incons := &LedgerInconsistencyError{
				ProductID:     product.ID,
				PreviousStock: product.Stock,
				NewStock:      newStock,
				Err:           err,
			}
			s.log.Error().
				Str("product_id", incons.ProductID).
				Int64("previous_stock", incons.PreviousStock).
				Int64("new_stock", incons.NewStock).
				Err(err).
				Msg("estoque atualizado sem movimento correspondente; reconciliação manual necessária")
			return nil, incons
		}

		return movement, nil
	}

	return nil, domain.ErrStockConflict
}

// ListMovements devolve o histórico de um produto, mais recente primeiro.
func (s *StockLedgerService) ListMovements(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.movementRepo.ListByProduct(productID, limit, offset)
}
