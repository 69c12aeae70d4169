package usecase

import (
	"strings"

	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// BrandUseCase expõe o registro de marcas para os formulários de produto.
type BrandUseCase struct {
	registry repository.BrandRegistry
}

// NewBrandUseCase constrói o caso de uso.
func NewBrandUseCase(registry repository.BrandRegistry) *BrandUseCase {
	return &BrandUseCase{registry: registry}
}

// List devolve as marcas: sentinela "Personalizado" primeiro, restante em
// ordem ascendente.
func (uc *BrandUseCase) List() ([]string, error) {
	return uc.registry.List()
}

// Add insere uma marca nova no registro. Nome vazio é rejeitado; duplicadas e
// a sentinela são no-op no próprio registro.
func (uc *BrandUseCase) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	return uc.registry.Add(name)
}
