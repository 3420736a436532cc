package inventory

import (
	"sort"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Política de stock al editar o eliminar una entrada.
const (
	// PolicyReconcile lleva lo que la entrada aportó según el libro hasta sus líneas vigentes.
	PolicyReconcile = "reconcile"
	// PolicyIncrementOnly nunca descuenta: editar vuelve a sumar y eliminar no revierte.
	PolicyIncrementOnly = "increment_only"
)

// ValidPolicy valida el nombre de la política.
func ValidPolicy(p string) bool {
	return p == PolicyReconcile || p == PolicyIncrementOnly
}

// Deltas calcula el cambio neto de stock por producto entre las líneas previas y las nuevas.
// Los productos con delta cero no aparecen en el resultado.
func Deltas(previous, current []*entity.EntradaInsumo) map[int64]int {
	out := make(map[int64]int)
	for _, it := range previous {
		out[it.ProductID] -= it.Cant
	}
	for _, it := range current {
		out[it.ProductID] += it.Cant
	}
	for id, d := range out {
		if d == 0 {
			delete(out, id)
		}
	}
	return out
}

// Applied suma por producto las cantidades que el libro registró para una entrada.
// Es lo que la entrada aportó realmente al stock, independiente de sus líneas actuales.
func Applied(movements []*entity.StockMovement) map[int64]int {
	out := make(map[int64]int)
	for _, m := range movements {
		out[m.ProductID] += m.Quantity
	}
	for id, q := range out {
		if q == 0 {
			delete(out, id)
		}
	}
	return out
}

// Reconcile devuelve el delta por producto que lleva lo ya aplicado hasta target.
func Reconcile(target, applied map[int64]int) map[int64]int {
	out := make(map[int64]int, len(target)+len(applied))
	for id, q := range target {
		out[id] += q
	}
	for id, q := range applied {
		out[id] -= q
	}
	for id, d := range out {
		if d == 0 {
			delete(out, id)
		}
	}
	return out
}

// Keys devuelve los IDs de producto del mapa, ordenados ascendentemente.
func Keys(m map[int64]int) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ProductIDs devuelve los IDs distintos de las líneas, ordenados ascendentemente.
// Bloquear filas siempre en este orden evita interbloqueos entre transacciones concurrentes.
func ProductIDs(groups ...[]*entity.EntradaInsumo) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, g := range groups {
		for _, it := range g {
			if _, ok := seen[it.ProductID]; ok {
				continue
			}
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ApplyDelta devuelve el stock resultante. Un resultado negativo es ErrInsufficientStock.
func ApplyDelta(stock, delta int) (int, error) {
	next := stock + delta
	if next < 0 {
		return stock, domain.ErrInsufficientStock
	}
	return next, nil
}
