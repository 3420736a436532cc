package entrada

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// lineInput línea ya validada.
type lineInput struct {
	ProductID int64
	Cant      int
	Price     decimal.Decimal
}

// parseRequest valida fecha y líneas antes de abrir la transacción.
func parseRequest(in dto.SaveEntradaRequest) (time.Time, []lineInput, error) {
	raw := strings.TrimSpace(in.FechaEntrada)
	if raw == "" {
		return time.Time{}, nil, domain.NewValidationError("fecha_entrada", "es obligatoria")
	}
	fecha, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, nil, domain.NewValidationError("fecha_entrada", "formato esperado YYYY-MM-DD")
	}
	if len(in.Products) == 0 {
		return time.Time{}, nil, domain.NewValidationError("products", "debe agregar al menos un producto")
	}
	lines := make([]lineInput, 0, len(in.Products))
	for i, p := range in.Products {
		id, err := wholeNumber(p.ID)
		if err != nil || id <= 0 {
			return time.Time{}, nil, domain.NewValidationError(fmt.Sprintf("products[%d].id", i), "identificador inválido")
		}
		cant, err := wholeNumber(p.Cant)
		if err != nil || cant <= 0 || cant > math.MaxInt32 {
			return time.Time{}, nil, domain.NewValidationError(fmt.Sprintf("products[%d].cant", i), "la cantidad debe ser un entero mayor a cero")
		}
		if p.Pvp.IsNegative() {
			return time.Time{}, nil, domain.NewValidationError(fmt.Sprintf("products[%d].pvp", i), "el precio no puede ser negativo")
		}
		lines = append(lines, lineInput{ProductID: id, Cant: int(cant), Price: p.Pvp.Round(2)})
	}
	return fecha, lines, nil
}

// wholeNumber acepta "5" y "5.0"; rechaza fracciones.
func wholeNumber(n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("vacío")
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt64/2 {
		return 0, fmt.Errorf("no es entero: %s", n)
	}
	return int64(f), nil
}

func buildDetails(entradaID int64, lines []lineInput) []*entity.EntradaInsumo {
	out := make([]*entity.EntradaInsumo, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.NewEntradaInsumo(entradaID, l.ProductID, l.Cant, l.Price))
	}
	return out
}
