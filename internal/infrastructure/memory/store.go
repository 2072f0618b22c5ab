// Package memory implementa los puertos de persistencia en memoria.
// Una transacción toma el candado global del Store y trabaja sobre el estado vivo;
// si la función falla se restaura la instantánea tomada al inicio.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner       = (*Store)(nil)
	_ repository.HealthChecker = (*Store)(nil)
)

type state struct {
	unitTypes    map[string]entity.UnitType
	styles       map[string]entity.Style
	ingredients  map[string]entity.Ingredient
	additions    map[string]entity.IngredientInventoryAddition
	subtractions []entity.IngredientInventorySubtraction
	recipes      map[string]entity.Recipe
	batches      map[string]entity.Batch
	products     map[string]entity.Product
	transactions []entity.InventoryTransaction
}

func newState() *state {
	return &state{
		unitTypes:   make(map[string]entity.UnitType),
		styles:      make(map[string]entity.Style),
		ingredients: make(map[string]entity.Ingredient),
		additions:   make(map[string]entity.IngredientInventoryAddition),
		recipes:     make(map[string]entity.Recipe),
		batches:     make(map[string]entity.Batch),
		products:    make(map[string]entity.Product),
	}
}

// clone copia superficial de cada entidad; las líneas de receta se copian aparte.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.unitTypes {
		c.unitTypes[k] = v
	}
	for k, v := range s.styles {
		c.styles[k] = v
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.additions {
		c.additions[k] = v
	}
	c.subtractions = append([]entity.IngredientInventorySubtraction(nil), s.subtractions...)
	for k, v := range s.recipes {
		v.Ingredients = append([]entity.RecipeIngredient(nil), v.Ingredients...)
		c.recipes[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.transactions = append([]entity.InventoryTransaction(nil), s.transactions...)
	return c
}

// Store almacenamiento en memoria; implementa inventory.TxRunner y repository.HealthChecker.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn en exclusión mutua; si fn devuelve error o entra en pánico el estado
// vuelve a la instantánea. El pánico se relanza.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
	}()
	if err := fn(s.repositories()); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		Ingredients:  &ingredientRepo{s: s},
		Ledger:       &ledgerRepo{s: s},
		Recipes:      &recipeRepo{s: s},
		Batches:      &batchRepo{s: s},
		Products:     &productRepo{s: s},
		Transactions: &transactionRepo{s: s},
		Catalog:      &catalogRepo{s: s},
	}
}

// CanConnect siempre verdadero en memoria.
func (s *Store) CanConnect(context.Context) bool { return true }

// CanQuery verdadero si el candado puede tomarse.
func (s *Store) CanQuery(ctx context.Context) bool {
	return s.Run(ctx, func(repository.Repositories) error { return nil }) == nil
}

// ── Ingredientes ────────────────────────────────────────────────────────────

type ingredientRepo struct{ s *Store }

func (r *ingredientRepo) Create(_ context.Context, ing *entity.Ingredient) error {
	st := r.s.st
	if _, ok := st.ingredients[ing.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range st.ingredients {
		if strings.EqualFold(other.Name, ing.Name) {
			return domain.ErrDuplicate
		}
	}
	st.ingredients[ing.ID] = *ing
	return nil
}

func (r *ingredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	ing, ok := r.s.st.ingredients[id]
	if !ok {
		return nil, nil
	}
	ing.UnitName = r.s.st.unitTypes[ing.UnitTypeID].Name
	return &ing, nil
}

func (r *ingredientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingredient, error) {
	// El candado global de la transacción ya serializa el acceso.
	return r.GetByID(ctx, id)
}

func (r *ingredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	list := make([]*entity.Ingredient, 0, len(r.s.st.ingredients))
	for id := range r.s.st.ingredients {
		ing, _ := r.GetByID(ctx, id)
		list = append(list, ing)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ingredientRepo) UpdateUnitCost(_ context.Context, id string, unitCost decimal.Decimal) error {
	ing, ok := r.s.st.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.UnitCost = unitCost
	r.s.st.ingredients[id] = ing
	return nil
}

func (r *ingredientRepo) Delete(_ context.Context, id string) error {
	delete(r.s.st.ingredients, id)
	return nil
}

func (r *ingredientRepo) HasReferences(_ context.Context, id string) (bool, error) {
	st := r.s.st
	for _, a := range st.additions {
		if a.IngredientID == id {
			return true, nil
		}
	}
	for _, sub := range st.subtractions {
		if sub.IngredientID == id {
			return true, nil
		}
	}
	for _, rec := range st.recipes {
		for _, l := range rec.Ingredients {
			if l.IngredientID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

// ── Libro de inventario ─────────────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) CreateAddition(_ context.Context, a *entity.IngredientInventoryAddition) error {
	if _, ok := r.s.st.ingredients[a.IngredientID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.additions[a.ID] = *a
	return nil
}

func (r *ledgerRepo) ListAdditions(_ context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.lots(ingredientID, false), nil
}

func (r *ledgerRepo) ListOpenLots(_ context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.lots(ingredientID, true), nil
}

// LockOpenLots igual que ListOpenLots: el candado global de Run ya serializa.
func (r *ledgerRepo) LockOpenLots(ctx context.Context, ingredientID string) ([]*entity.IngredientInventoryAddition, error) {
	return r.ListOpenLots(ctx, ingredientID)
}

func (r *ledgerRepo) lots(ingredientID string, openOnly bool) []*entity.IngredientInventoryAddition {
	list := make([]*entity.IngredientInventoryAddition, 0)
	for _, a := range r.s.st.additions {
		if a.IngredientID != ingredientID || (openOnly && !a.IsOpen()) {
			continue
		}
		lot := a
		list = append(list, &lot)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.Before(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (r *ledgerRepo) UpdateRemaining(_ context.Context, lotID string, expected, remaining decimal.Decimal) error {
	lot, ok := r.s.st.additions[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	if !lot.QuantityRemaining.Equal(expected) {
		return domain.ErrConcurrencyConflict
	}
	if remaining.LessThan(decimal.Zero) || remaining.GreaterThan(lot.Quantity) {
		return domain.ErrLedgerInconsistent
	}
	lot.QuantityRemaining = remaining
	r.s.st.additions[lotID] = lot
	return nil
}

func (r *ledgerRepo) CreateSubtraction(_ context.Context, sub *entity.IngredientInventorySubtraction) error {
	if _, ok := r.s.st.ingredients[sub.IngredientID]; !ok {
		return domain.ErrNotFound
	}
	if sub.BatchID != "" {
		if _, ok := r.s.st.batches[sub.BatchID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.st.subtractions = append(r.s.st.subtractions, *sub)
	return nil
}

func (r *ledgerRepo) ListSubtractions(_ context.Context, ingredientID string) ([]*entity.IngredientInventorySubtraction, error) {
	list := make([]*entity.IngredientInventorySubtraction, 0)
	for _, sub := range r.s.st.subtractions {
		if sub.IngredientID == ingredientID {
			s := sub
			list = append(list, &s)
		}
	}
	return list, nil
}

func (r *ledgerRepo) CountSubtractionsByBatch(_ context.Context, batchID string) (int, error) {
	n := 0
	for _, sub := range r.s.st.subtractions {
		if sub.BatchID == batchID {
			n++
		}
	}
	return n, nil
}

func (r *ledgerRepo) Totals(_ context.Context, ingredientID string) (entity.LedgerTotals, error) {
	t := entity.LedgerTotals{Added: decimal.Zero, Subtracted: decimal.Zero, Remaining: decimal.Zero}
	for _, a := range r.s.st.additions {
		if a.IngredientID == ingredientID {
			t.Added = t.Added.Add(a.Quantity)
			t.Remaining = t.Remaining.Add(a.QuantityRemaining)
		}
	}
	for _, sub := range r.s.st.subtractions {
		if sub.IngredientID == ingredientID {
			t.Subtracted = t.Subtracted.Add(sub.Quantity)
		}
	}
	return t, nil
}

// ── Recetas ─────────────────────────────────────────────────────────────────

type recipeRepo struct{ s *Store }

func (r *recipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	for _, other := range r.s.st.recipes {
		if other.Name == rec.Name {
			return domain.ErrDuplicate
		}
	}
	c := *rec
	c.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
	r.s.st.recipes[rec.ID] = c
	return nil
}

func (r *recipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	rec, ok := r.s.st.recipes[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(rec, true), nil
}

func (r *recipeRepo) hydrate(rec entity.Recipe, withLines bool) *entity.Recipe {
	st := r.s.st
	rec.StyleName = st.styles[rec.StyleID].Name
	if !withLines {
		rec.Ingredients = nil
		return &rec
	}
	lines := make([]entity.RecipeIngredient, 0, len(rec.Ingredients))
	for _, l := range rec.Ingredients {
		ing := st.ingredients[l.IngredientID]
		l.IngredientName = ing.Name
		l.UnitName = st.unitTypes[ing.UnitTypeID].Name
		lines = append(lines, l)
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	rec.Ingredients = lines
	return &rec
}

func (r *recipeRepo) Update(_ context.Context, rec *entity.Recipe) error {
	cur, ok := r.s.st.recipes[rec.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.RowVersion != rec.RowVersion {
		return domain.ErrConcurrencyConflict
	}
	for id, other := range r.s.st.recipes {
		if id != rec.ID && other.Name == rec.Name {
			return domain.ErrDuplicate
		}
	}
	rec.RowVersion++
	c := *rec
	c.Ingredients = append([]entity.RecipeIngredient(nil), rec.Ingredients...)
	r.s.st.recipes[rec.ID] = c
	return nil
}

func (r *recipeRepo) Delete(_ context.Context, id string) error {
	for _, b := range r.s.st.batches {
		if b.RecipeID == id {
			return domain.ErrReferentialConflict
		}
	}
	delete(r.s.st.recipes, id)
	return nil
}

func (r *recipeRepo) List(_ context.Context) ([]*entity.Recipe, error) {
	list := make([]*entity.Recipe, 0, len(r.s.st.recipes))
	for _, rec := range r.s.st.recipes {
		list = append(list, r.hydrate(rec, false))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// ── Batches ─────────────────────────────────────────────────────────────────

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(_ context.Context, b *entity.Batch) error {
	if _, ok := r.s.st.recipes[b.RecipeID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.s.st.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *batchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *batchRepo) Update(_ context.Context, b *entity.Batch) error {
	if _, ok := r.s.st.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.batches[b.ID] = *b
	return nil
}

func (r *batchRepo) Delete(_ context.Context, id string) error {
	st := r.s.st
	for _, sub := range st.subtractions {
		if sub.BatchID == id {
			return domain.ErrReferentialConflict
		}
	}
	for pid, p := range st.products {
		if p.BatchID == id {
			delete(st.products, pid)
		}
	}
	kept := st.transactions[:0]
	for _, t := range st.transactions {
		if t.BatchID != id {
			kept = append(kept, t)
		}
	}
	st.transactions = kept
	delete(st.batches, id)
	return nil
}

func (r *batchRepo) ListAll(_ context.Context) ([]*entity.Batch, error) {
	return r.filter(func(entity.Batch) bool { return true }), nil
}

func (r *batchRepo) ListByRecipe(_ context.Context, recipeID string) ([]*entity.Batch, error) {
	return r.filter(func(b entity.Batch) bool { return b.RecipeID == recipeID }), nil
}

func (r *batchRepo) filter(keep func(entity.Batch) bool) []*entity.Batch {
	list := make([]*entity.Batch, 0)
	for _, b := range r.s.st.batches {
		if keep(b) {
			c := b
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (r *batchRepo) ListWithRecipe(ctx context.Context) ([]*entity.BatchWithRecipe, error) {
	st := r.s.st
	batches, _ := r.ListAll(ctx)
	out := make([]*entity.BatchWithRecipe, 0, len(batches))
	for _, b := range batches {
		rec := st.recipes[b.RecipeID]
		out = append(out, &entity.BatchWithRecipe{
			Batch:         *b,
			RecipeName:    rec.Name,
			RecipeVersion: rec.Version,
			StyleName:     st.styles[rec.StyleID].Name,
		})
	}
	return out, nil
}

func (r *batchRepo) CountByRecipe(_ context.Context, recipeID string) (int, error) {
	n := 0
	for _, b := range r.s.st.batches {
		if b.RecipeID == recipeID {
			n++
		}
	}
	return n, nil
}

// ── Productos y auditoría ───────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.st.batches[p.BatchID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) UpdateRemaining(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.QuantityRemaining = p.QuantityRemaining
	r.s.st.products[p.ID] = cur
	return nil
}

func (r *productRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	for _, p := range r.s.st.products {
		if p.BatchID == batchID {
			c := p
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].RackedDate.Equal(list[j].RackedDate) {
			return list[i].RackedDate.Before(list[j].RackedDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, t *entity.InventoryTransaction) error {
	r.s.st.transactions = append(r.s.st.transactions, *t)
	return nil
}

func (r *transactionRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.InventoryTransaction, error) {
	list := make([]*entity.InventoryTransaction, 0)
	for _, t := range r.s.st.transactions {
		if t.BatchID == batchID {
			c := t
			list = append(list, &c)
		}
	}
	return list, nil
}

// ── Catálogos ───────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r *catalogRepo) UpsertUnitType(_ context.Context, u entity.UnitType) error {
	r.s.st.unitTypes[u.ID] = u
	return nil
}

func (r *catalogRepo) UpsertStyle(_ context.Context, st entity.Style) error {
	r.s.st.styles[st.ID] = st
	return nil
}

func (r *catalogRepo) ListUnitTypes(_ context.Context) ([]entity.UnitType, error) {
	list := make([]entity.UnitType, 0, len(r.s.st.unitTypes))
	for _, u := range r.s.st.unitTypes {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *catalogRepo) ListStyles(_ context.Context) ([]entity.Style, error) {
	list := make([]entity.Style, 0, len(r.s.st.styles))
	for _, st := range r.s.st.styles {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
