package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja solo vía el libro de stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto. Stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Image:         in.Image,
		IsInventoried: in.IsInventoried,
		Stock:         0,
		Pvp:           in.Pvp,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update actualiza un producto. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}
	if product.IsInventoried && !in.IsInventoried && product.Stock != 0 {
		return nil, domain.NewValidationError("is_inventoried", "el producto tiene stock; no puede dejar de ser inventariado")
	}
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.Image = in.Image
	product.IsInventoried = in.IsInventoried
	product.Pvp = in.Pvp
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID. Falla con ErrConflict si tiene entradas o movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) validate(ctx context.Context, in *dto.SaveProductRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.NewValidationError("name", "es obligatorio")
	}
	if in.Pvp.IsNegative() {
		return domain.NewValidationError("pvp", "el precio no puede ser negativo")
	}
	if in.CategoryID <= 0 {
		return domain.NewValidationError("category", "es obligatoria")
	}
	cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.NewValidationError("category", "no existe")
	}
	in.Pvp = in.Pvp.Round(2)
	return nil
}
