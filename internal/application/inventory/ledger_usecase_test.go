package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock-pro/internal/application/inventory"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositório
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo simula a tabela de produtos com controle de falhas e
// contagem de chamadas de escrita.
type fakeProductRepo struct {
	products map[string]*entity.Product

	updateStockErr   error
	conflictsBefore  int // quantos UpdateStock devem falhar com ErrStockConflict
	updateStockCalls int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) UpdateStock(productID string, expectedStock, newStock int64) error {
	f.updateStockCalls++
	if f.conflictsBefore > 0 {
		f.conflictsBefore--
		// Simula outra sessão: o estoque real mudou desde a leitura
		f.products[productID].Stock = expectedStock + 1
		return domain.ErrStockConflict
	}
	if f.updateStockErr != nil {
		return f.updateStockErr
	}
	p, ok := f.products[productID]
	if !ok || p.Stock != expectedStock {
		return domain.ErrStockConflict
	}
	p.Stock = newStock
	return nil
}

func (f *fakeProductRepo) List(_ repository.ProductFilter, _, _ int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ListAll() ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(id string) error              { delete(f.products, id); return nil }
func (f *fakeProductRepo) CountBelowStock(int64) (int, error)  { return 0, nil }

// fakeMovementRepo simula a tabela de movimentos.
type fakeMovementRepo struct {
	movements   []*entity.StockMovement
	createErr   error
	createCalls int
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(f.movements) - 1; i >= 0; i-- {
		if f.movements[i].ProductID == productID {
			out = append(out, f.movements[i])
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) CountSince(time.Time) (int, error) { return len(f.movements), nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "00000000-0000-0000-0000-0000000000aa"

func buildService(productRepo *fakeProductRepo, movementRepo *fakeMovementRepo) *inventory.StockLedgerService {
	return inventory.NewStockLedgerService(productRepo, movementRepo, zerolog.Nop())
}

func productWithStock(stock int64) *entity.Product {
	return &entity.Product{
		ID:          testProductID,
		Code:        "MED-001",
		Description: "Seringa descartável 10ml",
		Brand:       "BD (Becton Dickinson)",
		Unit:        entity.UnitCX,
		Stock:       stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Caminho feliz
// ──────────────────────────────────────────────────────────────────────────────

// Entrada de 20 sobre estoque 50 → estoque 70 e movimento com snapshots 50/70.
func TestRecordMovement_EntradaAtualizaEstoqueEHistorico(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra mensal")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, int64(50), m.PreviousStock, "snapshot do estoque anterior")
	assert.Equal(t, int64(70), m.NewStock, "snapshot do estoque resultante")
	assert.Equal(t, int64(70), productRepo.products[testProductID].Stock, "estoque persistido")
	assert.Len(t, movementRepo.movements, 1, "exatamente um movimento gravado")
	assert.NotEmpty(t, m.ID, "movimento deve receber ID")
	assert.False(t, m.CreatedAt.IsZero(), "movimento deve receber timestamp")
}

// Saída de 30 sobre estoque 50 → estoque 20.
func TestRecordMovement_SaidaReduzEstoque(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeSaida, 30, "dispensação ala B")
	require.NoError(t, err)

	assert.Equal(t, int64(20), m.NewStock)
	assert.Equal(t, int64(20), productRepo.products[testProductID].Stock)
}

// Saída igual ao estoque atual é permitida: o estoque chega exatamente a zero.
func TestRecordMovement_SaidaZeraEstoque(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(10))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeSaida, 10, "esvaziando lote vencido")
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.NewStock)
	assert.Equal(t, int64(0), productRepo.products[testProductID].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rejeições sem efeitos colaterais
// ──────────────────────────────────────────────────────────────────────────────

// Saída de 10 sobre estoque 5 → rejeitada; nenhuma escrita acontece.
func TestRecordMovement_SaidaMaiorQueEstoqueRejeitada(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(5))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeSaida, 10, "saída inválida")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, m)

	assert.Equal(t, int64(5), productRepo.products[testProductID].Stock, "estoque não pode mudar")
	assert.Zero(t, productRepo.updateStockCalls, "nenhuma escrita de estoque")
	assert.Zero(t, movementRepo.createCalls, "nenhum movimento criado")
}

// Quantidade zero e negativa são rejeitadas antes de qualquer I/O.
func TestRecordMovement_QuantidadeInvalidaRejeitadaAntesDeIO(t *testing.T) {
	for _, qty := range []int64{0, -5} {
		productRepo := newFakeProductRepo(productWithStock(50))
		movementRepo := &fakeMovementRepo{}
		svc := buildService(productRepo, movementRepo)

		_, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, qty, "qty inválida")
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "quantity=%d", qty)
		assert.Zero(t, productRepo.updateStockCalls)
		assert.Zero(t, movementRepo.createCalls)
	}
}

// Tipo de movimento desconhecido é rejeitado.
func TestRecordMovement_TipoInvalidoRejeitado(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	_, err := svc.RecordMovement(context.Background(), testProductID, "transferencia", 5, "tipo inválido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, movementRepo.createCalls)
}

// Produto inexistente → ErrNotFound.
func TestRecordMovement_ProdutoInexistente(t *testing.T) {
	svc := buildService(newFakeProductRepo(), &fakeMovementRepo{})

	_, err := svc.RecordMovement(context.Background(), "nao-existe", entity.MovementTypeEntrada, 5, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Modos de falha das escritas
// ──────────────────────────────────────────────────────────────────────────────

// Falha na atualização do produto: nenhum movimento pode ser inserido e o erro
// identifica o passo. Repetir a operação após a falha não duplica nada.
func TestRecordMovement_FalhaNoUpdateNaoInsereMovimento(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	productRepo.updateStockErr = errors.New("conexão recusada")
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	_, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra")
	require.Error(t, err)

	var updateErr *inventory.ProductUpdateError
	require.ErrorAs(t, err, &updateErr, "erro deve identificar a falha no passo do produto")
	assert.Equal(t, testProductID, updateErr.ProductID)
	assert.Zero(t, movementRepo.createCalls, "movimento não pode ser inserido após falha no produto")

	// A repetição é segura: o estoque nunca avançou
	productRepo.updateStockErr = nil
	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra")
	require.NoError(t, err)
	assert.Equal(t, int64(50), m.PreviousStock)
	assert.Equal(t, int64(70), m.NewStock)
	assert.Len(t, movementRepo.movements, 1, "repetição não duplica movimentos")
}

// Falha na inserção do movimento depois do estoque já ter avançado:
// LedgerInconsistencyError com os valores de reconciliação, sem retry.
func TestRecordMovement_FalhaNoInsertReportaInconsistencia(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	movementRepo := &fakeMovementRepo{createErr: errors.New("timeout no insert")}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra")
	require.Error(t, err)
	assert.Nil(t, m)

	var incons *inventory.LedgerInconsistencyError
	require.ErrorAs(t, err, &incons, "erro deve sinalizar inconsistência de ledger")
	assert.Equal(t, testProductID, incons.ProductID)
	assert.Equal(t, int64(50), incons.PreviousStock)
	assert.Equal(t, int64(70), incons.NewStock)

	assert.Equal(t, int64(70), productRepo.products[testProductID].Stock,
		"o estoque já avançou e permanece avançado (estado inconsistente real)")
	assert.Equal(t, 1, movementRepo.createCalls, "o insert do movimento nunca é re-tentado")
	assert.Equal(t, 1, productRepo.updateStockCalls, "a operação inteira não é re-tentada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concorrência: escrita condicional com releitura
// ──────────────────────────────────────────────────────────────────────────────

// Conflito de estoque em duas tentativas seguidas: o serviço relê o produto e
// completa na terceira, calculando o novo estoque sobre o valor relido.
func TestRecordMovement_ConflitoConcorrenteRele(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	productRepo.conflictsBefore = 2
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	m, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra")
	require.NoError(t, err)

	assert.Equal(t, 3, productRepo.updateStockCalls, "duas tentativas conflitam, a terceira escreve")
	// O fake avança o estoque em +1 a cada conflito simulado: 50 → 51 → 52
	assert.Equal(t, int64(52), m.PreviousStock, "o estoque é relido após cada conflito")
	assert.Equal(t, int64(72), m.NewStock)
	assert.Len(t, movementRepo.movements, 1)
}

// Conflito persistente além do limite de tentativas → ErrStockConflict sem
// nenhum movimento gravado.
func TestRecordMovement_ConflitoPersistenteEsgotaTentativas(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(50))
	productRepo.conflictsBefore = 10
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	_, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 20, "compra")
	assert.ErrorIs(t, err, domain.ErrStockConflict)
	assert.Equal(t, 3, productRepo.updateStockCalls, "tentativas limitadas")
	assert.Zero(t, movementRepo.createCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_MaisRecentePrimeiro(t *testing.T) {
	productRepo := newFakeProductRepo(productWithStock(100))
	movementRepo := &fakeMovementRepo{}
	svc := buildService(productRepo, movementRepo)

	_, err := svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeEntrada, 10, "primeiro")
	require.NoError(t, err)
	_, err = svc.RecordMovement(context.Background(), testProductID, entity.MovementTypeSaida, 5, "segundo")
	require.NoError(t, err)

	movements, err := svc.ListMovements(testProductID, 20, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, "segundo", movements[0].Description, "ordem decrescente por criação")
	assert.Equal(t, "primeiro", movements[1].Description)
}

func TestListMovements_ProdutoVazioRejeitado(t *testing.T) {
	svc := buildService(newFakeProductRepo(), &fakeMovementRepo{})
	_, err := svc.ListMovements("", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
