package entrada

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante PDF de una entrada.
type PDFUseCase struct {
	entradaRepo repository.EntradaRepository
	companyRepo repository.CompanyRepository
	generator   EntradaPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	entradaRepo repository.EntradaRepository,
	companyRepo repository.CompanyRepository,
	generator EntradaPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		entradaRepo: entradaRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// DownloadPDF carga entrada, líneas y empresa y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)     si todo sale bien.
//   - domain.ErrNotFound            si la entrada no existe.
//   - domain.ErrCompanyRequired     si la empresa no está configurada.
func (uc *PDFUseCase) DownloadPDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	e, err := uc.entradaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener entrada: %w", err)
	}
	if e == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.entradaRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalle: %w", err)
	}

	company, err := uc.companyRepo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrCompanyRequired
	}

	pdfBytes, err = uc.generator.Generate(company, e, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return pdfBytes, fmt.Sprintf("entrada_%d.pdf", id), nil
}
