package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
// La tabla company tiene una sola fila (columna singleton única).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para la empresa.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get obtiene la empresa; nil, nil si aún no existe.
func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `
		SELECT id, name, ruc, address, mobile, phone, website, image, updated_at
		FROM company WHERE singleton`,
	).Scan(&c.ID, &c.Name, &c.RUC, &c.Address, &c.Mobile, &c.Phone, &c.Website, &c.Image, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Save crea la fila o la actualiza si ya existe.
func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO company (singleton, name, ruc, address, mobile, phone, website, image)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name, ruc = EXCLUDED.ruc, address = EXCLUDED.address,
			mobile = EXCLUDED.mobile, phone = EXCLUDED.phone, website = EXCLUDED.website,
			image = EXCLUDED.image, updated_at = now()
		RETURNING id, updated_at`,
		c.Name, c.RUC, c.Address, c.Mobile, c.Phone, c.Website, c.Image,
	).Scan(&c.ID, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}
