package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y tope de Limit.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP: {"error": "...", "code": "..."}.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
}

// IDResponse respuesta de las acciones de escritura.
type IDResponse struct {
	ID int64 `json:"id"`
}
