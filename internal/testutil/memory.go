// Package testutil contiene dobles de prueba compartidos por los tests de aplicación y HTTP.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Store es una base de datos en memoria que implementa todos los puertos de repositorio.
// Run emula una transacción: si fn falla se restaura el estado previo.
type Store struct {
	mu     sync.Mutex
	nextID int64

	products   map[int64]entity.Product
	categories map[int64]entity.Category
	clients    map[int64]entity.Client
	company    *entity.Company
	entradas   map[int64]entity.Entrada
	details    map[int64]entity.EntradaInsumo
	movements  []entity.StockMovement
	users      map[int64]entity.User

	// Fail fuerza un error en la operación con ese nombre (p. ej. "CalculateInvoice").
	Fail map[string]error
	// Locked registra los IDs bloqueados con GetForUpdate, en orden.
	Locked []int64
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		products:   map[int64]entity.Product{},
		categories: map[int64]entity.Category{},
		clients:    map[int64]entity.Client{},
		entradas:   map[int64]entity.Entrada{},
		details:    map[int64]entity.EntradaInsumo{},
		users:      map[int64]entity.User{},
		Fail:       map[string]error{},
	}
}

type snapshot struct {
	nextID     int64
	products   map[int64]entity.Product
	categories map[int64]entity.Category
	clients    map[int64]entity.Client
	company    *entity.Company
	entradas   map[int64]entity.Entrada
	details    map[int64]entity.EntradaInsumo
	movements  []entity.StockMovement
	users      map[int64]entity.User
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		nextID:     s.nextID,
		products:   copyMap(s.products),
		categories: copyMap(s.categories),
		clients:    copyMap(s.clients),
		entradas:   copyMap(s.entradas),
		details:    copyMap(s.details),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		users:      copyMap(s.users),
	}
	if s.company != nil {
		c := *s.company
		snap.company = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.products = snap.products
	s.categories = snap.categories
	s.clients = snap.clients
	s.company = snap.company
	s.entradas = snap.entradas
	s.details = snap.details
	s.movements = snap.movements
	s.users = snap.users
}

// Run implementa el TxRunner de entradas sobre el Store.
func (s *Store) Run(ctx context.Context, fn func(
	entradaRepo repository.EntradaRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := s.snapshot()
	if err := fn(s.Entradas(), s.Products(), s.Movements()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) fail(op string) error {
	return s.Fail[op]
}

// ── Fixtures ───────────────────────────────────────────────────────────────

// AddCategory inserta una categoría y devuelve su ID.
func (s *Store) AddCategory(name string) int64 {
	c := &entity.Category{Name: name}
	_ = s.Categories().Create(context.Background(), c)
	return c.ID
}

// AddProduct inserta un producto con stock inicial (sin movimiento en el libro).
func (s *Store) AddProduct(name string, categoryID int64, inventoried bool, stock int, pvp string) int64 {
	p := &entity.Product{
		Name:          name,
		CategoryID:    categoryID,
		IsInventoried: inventoried,
		Stock:         stock,
		Pvp:           decimal.RequireFromString(pvp),
	}
	_ = s.Products().Create(context.Background(), p)
	return p.ID
}

// SetCompany configura la empresa.
func (s *Store) SetCompany(name string) {
	_ = s.Company().Save(context.Background(), &entity.Company{Name: name, RUC: "1790012345001"})
}

// Stock devuelve el stock materializado de un producto.
func (s *Store) Stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

// AllMovements devuelve una copia del libro de stock.
func (s *Store) AllMovements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.movements...)
}

// EntradaCount devuelve cuántas entradas existen.
func (s *Store) EntradaCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entradas)
}

// DetailCount devuelve cuántas líneas existen en total.
func (s *Store) DetailCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.details)
}

func matches(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Products ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) withCategory(p entity.Product) *entity.Product {
	if c, ok := r.s.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p
}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ProductCreate"); err != nil {
		return err
	}
	for _, o := range r.s.products {
		if strings.EqualFold(o.Name, p.Name) {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.categories[p.CategoryID]; !ok {
		return domain.ErrConflict
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(p), nil
}

func (r productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	r.s.Locked = append(r.s.Locked, id)
	r.s.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.products {
		if o.ID != p.ID && strings.EqualFold(o.Name, p.Name) {
			return domain.ErrDuplicate
		}
	}
	cur.Name = p.Name
	cur.CategoryID = p.CategoryID
	cur.Image = p.Image
	cur.IsInventoried = p.IsInventoried
	cur.Pvp = p.Pvp
	cur.UpdatedAt = time.Now()
	r.s.products[p.ID] = cur
	return nil
}

func (r productRepo) UpdateStock(_ context.Context, id int64, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("UpdateStock"); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

func (r productRepo) sorted(filter func(entity.Product) bool, less func(a, b *entity.Product) bool) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range r.s.products {
		if filter(p) {
			out = append(out, r.withCategory(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byID(a, b *entity.Product) bool { return a.ID < b.ID }

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted(func(entity.Product) bool { return true }, byID)
	return page(all, limit, offset), nil
}

func (r productRepo) ListInventoried(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(p entity.Product) bool { return p.IsInventoried }, byID), nil
}

func (r productRepo) ListLowStock(_ context.Context, threshold, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.sorted(
		func(p entity.Product) bool { return p.IsInventoried && p.Stock <= threshold },
		func(a, b *entity.Product) bool {
			if a.Stock != b.Stock {
				return a.Stock < b.Stock
			}
			return a.ID < b.ID
		},
	)
	return page(out, limit, 0), nil
}

func (r productRepo) Search(_ context.Context, f repository.ProductSearch) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	excluded := make(map[int64]bool, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		excluded[id] = true
	}
	term := strings.TrimSpace(f.Term)
	out := r.sorted(
		func(p entity.Product) bool {
			return !excluded[p.ID] && p.Available() && (term == "" || matches(p.Name, term))
		},
		func(a, b *entity.Product) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		},
	)
	return page(out, f.Limit, 0), nil
}

func (r productRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.s.details {
		if d.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

// ── Categories ─────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.categories {
		if strings.EqualFold(o.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.categories {
		if o.ID != c.ID && strings.EqualFold(o.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	c.UpdatedAt = time.Now()
	r.s.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r categoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ── Clients ────────────────────────────────────────────────────────────────

type clientRepo struct{ s *Store }

// Clients devuelve el repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return clientRepo{s} }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.clients {
		if o.Dni == c.Dni {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.clients[c.ID] = *c
	return nil
}

func (r clientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r clientRepo) GetByDni(_ context.Context, dni string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if c.Dni == dni {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r clientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.clients {
		if o.ID != c.ID && o.Dni == c.Dni {
			return domain.ErrDuplicate
		}
	}
	c.UpdatedAt = time.Now()
	r.s.clients[c.ID] = *c
	return nil
}

func (r clientRepo) all(filter func(entity.Client) bool) []*entity.Client {
	out := []*entity.Client{}
	for _, c := range r.s.clients {
		if filter(c) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r clientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.all(func(entity.Client) bool { return true }), limit, offset), nil
}

func (r clientRepo) Search(_ context.Context, term string, limit int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	term = strings.TrimSpace(term)
	out := r.all(func(c entity.Client) bool {
		return matches(c.Names, term) || matches(c.Surnames, term) || matches(c.Dni, term)
	})
	return page(out, limit, 0), nil
}

func (r clientRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}

// ── Company ────────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

// Company devuelve el repositorio de la empresa.
func (s *Store) Company() repository.CompanyRepository { return companyRepo{s} }

func (r companyRepo) Get(_ context.Context) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.company == nil {
		return nil, nil
	}
	c := *r.s.company
	return &c, nil
}

func (r companyRepo) Save(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.company == nil {
		c.ID = r.s.id()
	} else {
		c.ID = r.s.company.ID
	}
	c.UpdatedAt = time.Now()
	saved := *c
	r.s.company = &saved
	return nil
}

// ── Entradas ───────────────────────────────────────────────────────────────

type entradaRepo struct{ s *Store }

// Entradas devuelve el repositorio de entradas.
func (s *Store) Entradas() repository.EntradaRepository { return entradaRepo{s} }

func (r entradaRepo) Create(_ context.Context, e *entity.Entrada) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.s.entradas[e.ID] = *e
	return nil
}

func (r entradaRepo) GetByID(_ context.Context, id int64) (*entity.Entrada, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entradas[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r entradaRepo) Update(_ context.Context, e *entity.Entrada) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.entradas[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.FechaEntrada = e.FechaEntrada
	cur.UpdatedAt = time.Now()
	r.s.entradas[e.ID] = cur
	return nil
}

func (r entradaRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entradas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.entradas, id)
	for did, d := range r.s.details {
		if d.EntradaID == id {
			delete(r.s.details, did)
		}
	}
	return nil
}

func (r entradaRepo) List(_ context.Context, f repository.EntradaFilter) ([]*entity.Entrada, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Entrada{}
	for _, e := range r.s.entradas {
		if f.From != nil && e.FechaEntrada.Before(*f.From) {
			continue
		}
		if f.To != nil && e.FechaEntrada.After(*f.To) {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r entradaRepo) CreateDetail(_ context.Context, d *entity.EntradaInsumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateDetail"); err != nil {
		return err
	}
	if _, ok := r.s.entradas[d.EntradaID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.products[d.ProductID]; !ok {
		return domain.ErrConflict
	}
	d.ID = r.s.id()
	stored := *d
	stored.Product = nil
	r.s.details[d.ID] = stored
	return nil
}

func (r entradaRepo) DeleteDetails(_ context.Context, entradaID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, d := range r.s.details {
		if d.EntradaID == entradaID {
			delete(r.s.details, id)
		}
	}
	return nil
}

func (r entradaRepo) GetDetails(_ context.Context, entradaID int64) ([]*entity.EntradaInsumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.EntradaInsumo{}
	for _, d := range r.s.details {
		if d.EntradaID != entradaID {
			continue
		}
		d := d
		if p, ok := r.s.products[d.ProductID]; ok {
			d.Product = productRepo{r.s}.withCategory(p)
		}
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r entradaRepo) CalculateInvoice(_ context.Context, entradaID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CalculateInvoice"); err != nil {
		return decimal.Zero, err
	}
	e, ok := r.s.entradas[entradaID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	total := decimal.Zero
	for _, d := range r.s.details {
		if d.EntradaID == entradaID {
			total = total.Add(d.Subtotal)
		}
	}
	e.Total = total
	r.s.entradas[entradaID] = e
	return total, nil
}

func (r entradaRepo) MonthlyTotals(_ context.Context, year int) ([12]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out [12]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}
	for _, e := range r.s.entradas {
		if e.FechaEntrada.Year() == year {
			m := int(e.FechaEntrada.Month()) - 1
			out[m] = out[m].Add(e.Total)
		}
	}
	return out, nil
}

// ── Stock movements ────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

// Movements devuelve el repositorio del libro de stock.
func (s *Store) Movements() repository.StockMovementRepository { return movementRepo{s} }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("MovementCreate"); err != nil {
		return err
	}
	m.ID = r.s.id()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r movementRepo) ListByEntrada(_ context.Context, entradaID int64) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.StockMovement{}
	for _, m := range r.s.movements {
		if m.EntradaID == entradaID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r movementRepo) SumByProduct(_ context.Context) (map[int64]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[int64]int{}
	for _, m := range r.s.movements {
		out[m.ProductID] += m.Quantity
	}
	return out, nil
}

// ── Users ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.users {
		if o.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
