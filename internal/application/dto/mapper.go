package dto

import (
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// DateLayout formato de fechas en requests y respuestas.
const DateLayout = "2006-01-02"

// NewProductResponse convierte la entidad a su salida JSON.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      CategoryResponse{ID: p.CategoryID, Name: p.CategoryName},
		Image:         p.Image,
		IsInventoried: p.IsInventoried,
		Stock:         p.Stock,
		Pvp:           p.Pvp,
	}
}

// NewCategoryResponse convierte la entidad a su salida JSON.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Desc: c.Desc}
}

// NewClientResponse convierte la entidad a su salida JSON.
func NewClientResponse(c *entity.Client) ClientResponse {
	out := ClientResponse{
		ID:       c.ID,
		Names:    c.Names,
		Surnames: c.Surnames,
		Dni:      c.Dni,
		Address:  c.Address,
		Gender:   c.Gender,
	}
	if c.Birthdate != nil {
		out.Birthdate = c.Birthdate.Format(DateLayout)
	}
	return out
}

// NewEntradaResponse convierte la cabecera a su salida JSON.
func NewEntradaResponse(e *entity.Entrada) EntradaResponse {
	return EntradaResponse{
		ID:           e.ID,
		FechaEntrada: e.FechaEntrada.Format(DateLayout),
		Total:        e.Total,
	}
}

// NewEntradaInsumoResponse convierte una línea (con producto cargado) a su salida JSON.
func NewEntradaInsumoResponse(d *entity.EntradaInsumo) EntradaInsumoResponse {
	out := EntradaInsumoResponse{
		ID:        d.ID,
		EntradaID: d.EntradaID,
		Cant:      d.Cant,
		Price:     d.Price,
		Subtotal:  d.Subtotal,
	}
	if d.Product != nil {
		out.Product = NewProductResponse(d.Product)
	} else {
		out.Product = ProductResponse{ID: d.ProductID}
	}
	return out
}

// NewCompanyResponse convierte la entidad a su salida JSON.
func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		RUC:     c.RUC,
		Address: c.Address,
		Mobile:  c.Mobile,
		Phone:   c.Phone,
		Website: c.Website,
		Image:   c.Image,
	}
}
