package http

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
)

// payload cuerpo de una petición de acción. Las pantallas envían formularios
// (products e ids como strings JSON); los clientes de la API envían JSON con las mismas claves.
type payload struct {
	c      *fiber.Ctx
	fields map[string]json.RawMessage // nil si el cuerpo es un formulario
}

func newPayload(c *fiber.Ctx) (*payload, error) {
	p := &payload{c: c}
	if !isJSON(c) {
		return p, nil
	}
	p.fields = map[string]json.RawMessage{}
	if len(c.Body()) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(c.Body(), &p.fields); err != nil {
		return nil, domain.NewValidationError("body", "JSON inválido")
	}
	return p, nil
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func (p *payload) action() Action {
	return Action(p.str("action"))
}

// raw devuelve el valor crudo de la clave. Si el valor JSON es un string, devuelve su contenido.
func (p *payload) raw(key string) string {
	if p.fields == nil {
		return p.c.FormValue(key)
	}
	v, ok := p.fields[key]
	if !ok || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// str valor de texto sin espacios alrededor.
func (p *payload) str(key string) string {
	return strings.TrimSpace(p.raw(key))
}

// decode interpreta la clave como JSON (embebido en un string o directo). Clave ausente = sin cambios.
func (p *payload) decode(key string, v any) error {
	raw := strings.TrimSpace(p.raw(key))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return domain.NewValidationError(key, "formato inválido")
	}
	return nil
}

// ids lista de ids a excluir de los buscadores.
func (p *payload) ids() ([]int64, error) {
	var nums []json.Number
	if err := p.decode("ids", &nums); err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(nums))
	for _, n := range nums {
		id, err := n.Int64()
		if err != nil {
			return nil, domain.NewValidationError("ids", "id inválido: "+n.String())
		}
		out = append(out, id)
	}
	return out, nil
}

// bind llena v con el cuerpo completo (JSON o formulario).
func (p *payload) bind(v any) error {
	if p.fields != nil {
		if len(p.c.Body()) == 0 {
			return nil
		}
		if err := json.Unmarshal(p.c.Body(), v); err != nil {
			return domain.NewValidationError("body", "cuerpo inválido")
		}
		return nil
	}
	if err := p.c.BodyParser(v); err != nil {
		return domain.NewValidationError("body", "cuerpo inválido")
	}
	return nil
}

// page paginación opcional de las acciones searchdata.
func (p *payload) page() dto.PageRequest {
	var page dto.PageRequest
	_ = p.decode("limit", &page.Limit)
	_ = p.decode("offset", &page.Offset)
	page.DefaultPage()
	return page
}

// entrada cabecera y líneas de las acciones add/edit de entradas.
func (p *payload) entrada() (dto.SaveEntradaRequest, error) {
	in := dto.SaveEntradaRequest{FechaEntrada: p.str("fecha_entrada")}
	if err := p.decode("products", &in.Products); err != nil {
		return in, err
	}
	return in, nil
}
