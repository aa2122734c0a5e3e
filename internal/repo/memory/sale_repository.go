// Пакет memory — хранилище продаж в памяти процесса: юнит-тесты,
// локальная разработка и демонстрация поллера без Postgres.
// Семантика атомарности та же, что у боевой реализации.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	stockmem "github.com/Gunvolt24/tienda_sales/internal/stock/memory"
)

var _ ports.SaleRepository = (*SaleRepository)(nil)

// SaleRepository — map под мьютексом. Хранит и отдаёт только копии:
// наружу не утекает ни один внутренний указатель.
type SaleRepository struct {
	mu     sync.Mutex
	sales  map[string]*domain.Sale
	ledger *stockmem.Ledger
}

func NewSaleRepository(ledger *stockmem.Ledger) *SaleRepository {
	return &SaleRepository{
		sales:  make(map[string]*domain.Sale),
		ledger: ledger,
	}
}

// Create — резерв остатка и сохранение как одно целое: при нехватке
// товара продажа не появляется вовсе.
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sales[sale.ID]; exists {
		return &domain.ValidationError{Field: "id", Reason: "sale already exists"}
	}
	if err := r.ledger.Reserve(ctx, sale.Lines); err != nil {
		return err
	}
	r.sales[sale.ID] = sale.Clone()
	return nil
}

func (r *SaleRepository) GetByID(_ context.Context, id string) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

// Transition — переход под блокировкой хранилища: apply видит актуальное
// состояние и не может затереть конкурентный переход. Проверка версии —
// страховка на случай нарушения дисциплины вызова.
func (r *SaleRepository) Transition(ctx context.Context, id string, apply func(*domain.Sale) error) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := cur.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}
	if next.Version != cur.Version {
		return nil, domain.ErrConcurrencyConflict
	}
	next.Version++

	if domain.ReleasesStock(next.Status) && !domain.ReleasesStock(cur.Status) {
		if err := r.ledger.Release(ctx, next.Lines); err != nil {
			return nil, err
		}
	}

	r.sales[id] = next
	return next.Clone(), nil
}

func (r *SaleRepository) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*domain.Sale
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			all = append(all, s)
		}
	}
	return page(all, limit, offset), nil
}

func (r *SaleRepository) ListReview(_ context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*domain.Sale
	for _, s := range r.sales {
		if f.Matches(s) {
			all = append(all, s)
		}
	}
	return page(all, limit, offset), nil
}

func (r *SaleRepository) LastN(_ context.Context, n int) ([]*domain.Sale, error) {
	if n <= 0 {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		all = append(all, s)
	}
	sortByCreatedDesc(all)
	if len(all) > n {
		all = all[:n]
	}
	out := make([]*domain.Sale, 0, len(all))
	for _, s := range all {
		out = append(out, s.Clone())
	}
	return out, nil
}

// page — стабильная сортировка по дате (новые первыми) + пагинация копий.
func page(all []*domain.Sale, limit, offset int) []*domain.Sale {
	sortByCreatedDesc(all)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.Sale{}
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	out := make([]*domain.Sale, 0, len(all))
	for _, s := range all {
		out = append(out, s.Clone())
	}
	return out
}

func sortByCreatedDesc(sales []*domain.Sale) {
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].ID > sales[j].ID
		}
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
}
