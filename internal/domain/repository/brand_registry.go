package repository

// BrandRegistry porta do registro local de marcas usadas nos formulários de produto.
// A lista é deduplicada e ordenada; a sentinela "Personalizado" fica sempre no início.
type BrandRegistry interface {
	List() ([]string, error)
	// Add insere a marca se ainda não existir; duplicadas e a sentinela são no-op.
	Add(name string) error
}
