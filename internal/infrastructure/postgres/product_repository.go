package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.category_id, c.name, p.image, p.is_inventoried, p.stock, p.pvp, p.created_at, p.updated_at`

const productFrom = `FROM products p JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Image, &p.IsInventoried,
		&p.Stock, &p.Pvp, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	out := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, category_id, image, is_inventoried, stock, pvp)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.CategoryID, product.Image, product.IsInventoried, product.Pvp,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NewValidationError("category", "no existe")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.Stock = 0
	return nil
}

// GetByID obtiene un producto por ID con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` `+productFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` `+productFrom+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, image = $4, is_inventoried = $5, pvp = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.CategoryID, product.Image, product.IsInventoried, product.Pvp,
	).Scan(&product.UpdatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return domain.ErrNotFound
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NewValidationError("category", "no existe")
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock materializado (usado por el libro de stock dentro de la tx).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` `+productFrom+` ORDER BY p.id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListInventoried lista todos los productos inventariados.
func (r *ProductRepo) ListInventoried(ctx context.Context) ([]*entity.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` `+productFrom+` WHERE p.is_inventoried ORDER BY p.id`)
}

// ListLowStock lista productos inventariados con stock <= threshold, los de menor stock primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` `+productFrom+`
		WHERE p.is_inventoried AND p.stock <= $1
		ORDER BY p.stock, p.id LIMIT $2`, threshold, limit)
}

// Search busca productos disponibles (stock > 0 o no inventariados) por nombre, excluyendo IDs.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductSearch) ([]*entity.Product, error) {
	exclude := f.ExcludeIDs
	if exclude == nil {
		exclude = []int64{} // NULL haría que ANY no coincida con nada
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	return r.queryProducts(ctx, `SELECT `+productColumns+` `+productFrom+`
		WHERE (p.stock > 0 OR NOT p.is_inventoried)
		  AND p.name ILIKE $1
		  AND NOT (p.id = ANY($2))
		ORDER BY p.name, p.id
		LIMIT $3`, likePattern(f.Term), exclude, limit)
}

// Delete elimina un producto. ErrConflict si está referenciado por entradas o movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
