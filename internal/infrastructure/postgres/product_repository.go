package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/medstock/medstock-pro/internal/domain"
	"github.com/medstock/medstock-pro/internal/domain/entity"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação da porta ProductRepository sobre PostgreSQL (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de persistência para produtos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, description, brand, unit, selling_price, stock, created_at, updated_at`

// Create persiste um novo produto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, description, brand, unit, selling_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Description, product.Brand, product.Unit,
		product.SellingPrice, product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.Description, &p.Brand, &p.Unit,
		&p.SellingPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update atualiza um produto existente. Não modifica Stock (via UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, description = $3, brand = $4, unit = $5, selling_price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Description, product.Brand,
		product.Unit, product.SellingPrice, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock atualização condicional do estoque: só escreve se o valor atual
// ainda for expectedStock. Zero linhas afetadas indica que outra sessão mudou
// o estoque no meio (domain.ErrStockConflict).
func (r *ProductRepo) UpdateStock(productID string, expectedStock, newStock int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $3, updated_at = now() WHERE id = $1 AND stock = $2`,
		productID, expectedStock, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockConflict
	}
	return nil
}

// List lista produtos com filtros opcionais e paginação, mais recente primeiro.
// Devolve também o total de linhas que casam com o filtro.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (description ILIKE $%d OR brand ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.Brand != "" {
		where += fmt.Sprintf(" AND brand = $%d", pos)
		args = append(args, filter.Brand)
		pos++
	}
	if filter.MinPrice != nil {
		where += fmt.Sprintf(" AND selling_price >= $%d", pos)
		args = append(args, *filter.MinPrice)
		pos++
	}
	if filter.MaxPrice != nil {
		where += fmt.Sprintf(" AND selling_price <= $%d", pos)
		args = append(args, *filter.MaxPrice)
		pos++
	}
	if filter.MinStock != nil {
		where += fmt.Sprintf(" AND stock >= $%d", pos)
		args = append(args, *filter.MinStock)
		pos++
	}
	if filter.MaxStock != nil {
		where += fmt.Sprintf(" AND stock <= $%d", pos)
		args = append(args, *filter.MaxStock)
		pos++
	}
	if filter.LowStock {
		where += fmt.Sprintf(" AND stock < $%d", pos)
		args = append(args, entity.LowStockThreshold)
		pos++
	}
	if filter.OutOfStock {
		where += " AND stock = 0"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Brand, &p.Unit,
			&p.SellingPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// ListAll devolve todos os produtos (usado pelo agrupamento por marca do dashboard).
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Brand, &p.Unit,
			&p.SellingPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete exclui um produto por ID. Os movimentos do produto não são removidos.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CountBelowStock conta produtos com estoque abaixo do limite informado.
func (r *ProductRepo) CountBelowStock(threshold int64) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE stock < $1`, threshold,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
