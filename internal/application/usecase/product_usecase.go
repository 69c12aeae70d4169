package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/medstock/medstock-pro/internal/application/dto"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para produtos. O estoque só muda via
// movimentos (StockLedgerService); Update não toca em Stock.
type ProductUseCase struct {
	repo   repository.ProductRepository
	brands repository.BrandRegistry
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, brands repository.BrandRegistry) *ProductUseCase {
	return &ProductUseCase{repo: repo, brands: brands}
}

// Create cria um novo produto com o estoque inicial informado.
// Marcas novas digitadas livremente entram no registro de marcas.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Description == "" || in.Brand == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Description:  in.Description,
		Brand:        in.Brand,
		Unit:         in.Unit,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	// Registro de marcas é metadado não crítico: falha não aborta a criação
	_ = uc.brands.Add(in.Brand)
	return toProductResponse(product), nil
}

// GetByID obtém um produto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update atualiza um produto. Não permite modificar Stock (via movimentos).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Code != nil {
		if *in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Code = *in.Code
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Description = *in.Description
	}
	if in.Brand != nil {
		if *in.Brand == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Brand = *in.Brand
		_ = uc.brands.Add(*in.Brand)
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista produtos com filtros e paginação, mais recente primeiro.
func (uc *ProductUseCase) List(filter dto.ProductListFilter, limit, offset int) (*dto.ProductListResponse, error) {
	repoFilter := repository.ProductFilter{
		Search:     filter.Search,
		Brand:      filter.Brand,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		MinStock:   filter.MinStock,
		MaxStock:   filter.MaxStock,
		LowStock:   filter.LowStock,
		OutOfStock: filter.OutOfStock,
	}
	list, total, err := uc.repo.List(repoFilter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete exclui um produto por ID. Os movimentos do produto são retidos como
// histórico de auditoria.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Description:  p.Description,
		Brand:        p.Brand,
		Unit:         p.Unit,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
