package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// LookupLimit máximo de resultados de los buscadores.
const LookupLimit = 10

// LookupUseCase buscadores (typeahead) de las pantallas de entradas.
type LookupUseCase struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(productRepo repository.ProductRepository, clientRepo repository.ClientRepository) *LookupUseCase {
	return &LookupUseCase{productRepo: productRepo, clientRepo: clientRepo}
}

// SearchProducts devuelve hasta 10 productos disponibles (stock > 0 o no inventariados) cuyo nombre
// contiene term, excluyendo los IDs ya agregados. Un term vacío no filtra por nombre.
func (uc *LookupUseCase) SearchProducts(ctx context.Context, term string, excludeIDs []int64) ([]dto.ProductOption, error) {
	list, err := uc.productRepo.Search(ctx, repository.ProductSearch{
		Term:       strings.TrimSpace(term),
		ExcludeIDs: excludeIDs,
		Limit:      LookupLimit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductOption, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductOption{ProductResponse: dto.NewProductResponse(p), Value: p.String()})
	}
	return out, nil
}

// SearchProductsSelect2 igual que SearchProducts pero con formato select2: el primer elemento
// es el término escrito ({id: term, text: term}) y cada producto lleva text.
func (uc *LookupUseCase) SearchProductsSelect2(ctx context.Context, term string, excludeIDs []int64) ([]any, error) {
	term = strings.TrimSpace(term)
	list, err := uc.productRepo.Search(ctx, repository.ProductSearch{
		Term:       term,
		ExcludeIDs: excludeIDs,
		Limit:      LookupLimit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(list)+1)
	out = append(out, dto.Select2TermOption{ID: term, Text: term})
	for _, p := range list {
		out = append(out, dto.ProductOption{ProductResponse: dto.NewProductResponse(p), Text: p.String()})
	}
	return out, nil
}

// SearchClients devuelve hasta 10 clientes por nombres, apellidos o cédula.
func (uc *LookupUseCase) SearchClients(ctx context.Context, term string) ([]dto.ClientOption, error) {
	list, err := uc.clientRepo.Search(ctx, strings.TrimSpace(term), LookupLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientOption, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ClientOption{ClientResponse: dto.NewClientResponse(c), Text: c.FullName()})
	}
	return out, nil
}
