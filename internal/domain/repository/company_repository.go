package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CompanyRepository persiste la única fila de datos de la empresa.
type CompanyRepository interface {
	// Get devuelve nil, nil si la empresa aún no fue configurada.
	Get(ctx context.Context) (*entity.Company, error)
	Save(ctx context.Context, company *entity.Company) error
}
