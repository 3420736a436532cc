package entrada

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// UseCase registra, edita y elimina entradas de insumos. Cada operación corre en una sola
// transacción: cabecera, líneas, stock (SELECT FOR UPDATE + libro) y total.
type UseCase struct {
	txRunner    TxRunner
	entradaRepo repository.EntradaRepository
	policy      string
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. policy es inventory.PolicyReconcile o inventory.PolicyIncrementOnly;
// un valor desconocido se trata como reconcile.
func NewUseCase(txRunner TxRunner, entradaRepo repository.EntradaRepository, policy string, log *logger.Logger) *UseCase {
	if !inventory.ValidPolicy(policy) {
		policy = inventory.PolicyReconcile
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:    txRunner,
		entradaRepo: entradaRepo,
		policy:      policy,
		log:         log.Named("entrada"),
		now:         time.Now,
	}
}

// Policy devuelve la política de stock activa.
func (uc *UseCase) Policy() string { return uc.policy }

// Create registra la entrada con sus líneas, suma stock a los productos inventariados
// y recalcula el total. Devuelve el ID de la entrada.
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.SaveEntradaRequest) (int64, error) {
	fecha, lines, err := parseRequest(in)
	if err != nil {
		return 0, err
	}
	batchID := uuid.New().String()
	var id int64

	err = uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		e := &entity.Entrada{FechaEntrada: fecha, CreatedBy: userID}
		if err := entradaRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("crear entrada: %w", err)
		}
		current := buildDetails(e.ID, lines)
		products, err := lockProducts(ctx, productRepo, inventory.ProductIDs(current), nil)
		if err != nil {
			return err
		}
		for _, d := range current {
			if err := entradaRepo.CreateDetail(ctx, d); err != nil {
				return fmt.Errorf("crear detalle: %w", err)
			}
		}
		l := ledger{productRepo: productRepo, movRepo: movRepo, batchID: batchID, entradaID: e.ID, userID: userID, at: uc.now()}
		if err := l.apply(ctx, products, inventory.Deltas(nil, current), entity.MovementTypeEntrada); err != nil {
			return err
		}
		if _, err := entradaRepo.CalculateInvoice(ctx, e.ID); err != nil {
			return fmt.Errorf("calcular total: %w", err)
		}
		id = e.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("entrada_id", id).Int("lineas", len(lines)).Str("batch_id", batchID).Msg("entrada creada")
	return id, nil
}

// Update reemplaza la fecha y todas las líneas de la entrada (borra y vuelve a insertar).
// Con reconcile se aplica la diferencia entre las líneas nuevas y lo que el libro ya registró
// para la entrada; con increment_only las líneas nuevas se suman sin revertir las anteriores.
func (uc *UseCase) Update(ctx context.Context, userID, id int64, in dto.SaveEntradaRequest) error {
	fecha, lines, err := parseRequest(in)
	if err != nil {
		return err
	}
	batchID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		e, err := entradaRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener entrada: %w", err)
		}
		if e == nil {
			return domain.ErrNotFound
		}
		var applied map[int64]int
		if uc.policy == inventory.PolicyReconcile {
			if applied, err = appliedStock(ctx, movRepo, id); err != nil {
				return err
			}
		}
		current := buildDetails(id, lines)
		products, err := lockProducts(ctx, productRepo, inventory.ProductIDs(current), inventory.Keys(applied))
		if err != nil {
			return err
		}

		e.FechaEntrada = fecha
		if err := entradaRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("actualizar entrada: %w", err)
		}
		if err := entradaRepo.DeleteDetails(ctx, id); err != nil {
			return fmt.Errorf("eliminar detalle: %w", err)
		}
		for _, d := range current {
			if err := entradaRepo.CreateDetail(ctx, d); err != nil {
				return fmt.Errorf("crear detalle: %w", err)
			}
		}

		deltas := inventory.Deltas(nil, current)
		movType := entity.MovementTypeEntrada
		if uc.policy == inventory.PolicyReconcile {
			deltas = inventory.Reconcile(deltas, applied)
			movType = entity.MovementTypeEntradaAjuste
		}
		l := ledger{productRepo: productRepo, movRepo: movRepo, batchID: batchID, entradaID: id, userID: userID, at: uc.now()}
		if err := l.apply(ctx, products, deltas, movType); err != nil {
			return err
		}
		if _, err := entradaRepo.CalculateInvoice(ctx, id); err != nil {
			return fmt.Errorf("calcular total: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("entrada_id", id).Int("lineas", len(lines)).Str("policy", uc.policy).Str("batch_id", batchID).Msg("entrada actualizada")
	return nil
}

// Delete elimina la entrada y sus líneas. Con reconcile revierte el stock que el libro registró para ella;
// si algún producto quedaría en negativo la operación falla con ErrInsufficientStock.
func (uc *UseCase) Delete(ctx context.Context, userID, id int64) error {
	batchID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		entradaRepo repository.EntradaRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		e, err := entradaRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener entrada: %w", err)
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if uc.policy == inventory.PolicyReconcile {
			applied, err := appliedStock(ctx, movRepo, id)
			if err != nil {
				return err
			}
			products, err := lockProducts(ctx, productRepo, nil, inventory.Keys(applied))
			if err != nil {
				return err
			}
			l := ledger{productRepo: productRepo, movRepo: movRepo, batchID: batchID, entradaID: id, userID: userID, at: uc.now()}
			if err := l.apply(ctx, products, inventory.Reconcile(nil, applied), entity.MovementTypeEntradaReverso); err != nil {
				return err
			}
		}
		if err := entradaRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar entrada: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("entrada_id", id).Str("policy", uc.policy).Msg("entrada eliminada")
	return nil
}

// List devuelve las entradas, opcionalmente filtradas por rango de fecha_entrada (ambas fechas o ninguna).
func (uc *UseCase) List(ctx context.Context, in dto.EntradaSearchRequest) ([]dto.EntradaResponse, error) {
	var f repository.EntradaFilter
	start, end := strings.TrimSpace(in.StartDate), strings.TrimSpace(in.EndDate)
	if start != "" && end != "" {
		from, err := time.Parse(dto.DateLayout, start)
		if err != nil {
			return nil, domain.NewValidationError("start_date", "formato esperado YYYY-MM-DD")
		}
		to, err := time.Parse(dto.DateLayout, end)
		if err != nil {
			return nil, domain.NewValidationError("end_date", "formato esperado YYYY-MM-DD")
		}
		if to.Before(from) {
			return nil, domain.NewValidationError("end_date", "debe ser posterior a start_date")
		}
		f.From, f.To = &from, &to
	}
	list, err := uc.entradaRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntradaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewEntradaResponse(e))
	}
	return out, nil
}

// Details devuelve las líneas de la entrada con su producto.
func (uc *UseCase) Details(ctx context.Context, id int64) ([]dto.EntradaInsumoResponse, error) {
	items, err := uc.entradaRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntradaInsumoResponse, 0, len(items))
	for _, d := range items {
		out = append(out, dto.NewEntradaInsumoResponse(d))
	}
	return out, nil
}

// EditContext devuelve la cabecera y los productos precargados para la pantalla de edición.
func (uc *UseCase) EditContext(ctx context.Context, id int64) (*dto.EntradaEditResponse, error) {
	e, err := uc.entradaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.entradaRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	products := make([]dto.EntradaEditItem, 0, len(items))
	for _, d := range items {
		p := dto.ProductResponse{ID: d.ProductID}
		if d.Product != nil {
			p = dto.NewProductResponse(d.Product)
		}
		p.Pvp = d.Price
		products = append(products, dto.EntradaEditItem{ProductResponse: p, Cant: d.Cant, Subtotal: d.Subtotal})
	}
	return &dto.EntradaEditResponse{
		Action:   "edit",
		Entrada:  dto.NewEntradaResponse(e),
		Products: products,
	}, nil
}

// appliedStock devuelve, por producto, el stock que la entrada aportó según el libro.
func appliedStock(ctx context.Context, movRepo repository.StockMovementRepository, entradaID int64) (map[int64]int, error) {
	movs, err := movRepo.ListByEntrada(ctx, entradaID)
	if err != nil {
		return nil, fmt.Errorf("obtener movimientos: %w", err)
	}
	return inventory.Applied(movs), nil
}

// lockProducts bloquea (SELECT FOR UPDATE) en orden ascendente de ID los productos de las líneas.
// required debe existir; un ID de previous ausente se ignora.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, required, previous []int64) (map[int64]*entity.Product, error) {
	need := make(map[int64]bool, len(required))
	for _, id := range required {
		need[id] = true
	}
	ids := append(append([]int64{}, required...), previous...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[int64]*entity.Product, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bloquear producto %d: %w", id, err)
		}
		if p == nil {
			if need[id] {
				return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
			}
			continue
		}
		out[id] = p
	}
	return out, nil
}

// ledger aplica deltas de stock y deja una fila en el libro por cada producto inventariado.
type ledger struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	batchID     string
	entradaID   int64
	userID      int64
	at          time.Time
}

func (l ledger) apply(ctx context.Context, products map[int64]*entity.Product, deltas map[int64]int, movType string) error {
	ids := make([]int64, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		p, ok := products[id]
		if !ok || !p.IsInventoried {
			continue
		}
		delta := deltas[id]
		next, err := inventory.ApplyDelta(p.Stock, delta)
		if err != nil {
			return fmt.Errorf("producto %s: %w", p.Name, err)
		}
		if err := l.productRepo.UpdateStock(ctx, id, next); err != nil {
			return fmt.Errorf("actualizar stock: %w", err)
		}
		mov := &entity.StockMovement{
			BatchID:     l.batchID,
			ProductID:   id,
			EntradaID:   l.entradaID,
			Type:        movType,
			Quantity:    delta,
			StockBefore: p.Stock,
			StockAfter:  next,
			CreatedAt:   l.at,
			CreatedBy:   l.userID,
		}
		if err := l.movRepo.Create(ctx, mov); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		p.Stock = next
	}
	return nil
}
