package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CompanyUseCase lee y guarda los datos de la empresa (una sola fila).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve la empresa configurada o nil, nil.
func (uc *CompanyUseCase) Get(ctx context.Context) (*dto.CompanyResponse, error) {
	c, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	out := dto.NewCompanyResponse(c)
	return &out, nil
}

// Exists indica si la empresa ya fue configurada.
func (uc *CompanyUseCase) Exists(ctx context.Context) (bool, error) {
	c, err := uc.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// Save crea o actualiza la empresa.
func (uc *CompanyUseCase) Save(ctx context.Context, in dto.SaveCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	ruc := strings.TrimSpace(in.RUC)
	if len(ruc) != 13 || strings.Trim(ruc, "0123456789") != "" {
		return nil, domain.NewValidationError("ruc", "debe tener 13 dígitos")
	}
	c := &entity.Company{
		Name:    name,
		RUC:     ruc,
		Address: strings.TrimSpace(in.Address),
		Mobile:  strings.TrimSpace(in.Mobile),
		Phone:   strings.TrimSpace(in.Phone),
		Website: strings.TrimSpace(in.Website),
		Image:   strings.TrimSpace(in.Image),
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCompanyResponse(c)
	return &out, nil
}
