package ports

import (
	"context"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
)

// SaleRepository — хранилище продаж. Контракт атомарности:
//   - Create резервирует остаток по всем строкам и сохраняет продажу в
//     одной транзакции; при нехватке хотя бы одного товара не происходит
//     ничего (возвращается InsufficientStockError);
//   - Transition читает актуальное состояние под блокировкой, применяет
//     apply к нему и фиксирует результат; при переходе в REJECTED/CANCELLED
//     в той же транзакции возвращает резерв. Проигравший гонку получает
//     ошибку от apply по свежему состоянию, а не затирает победителя.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error

	// GetByID — возвращает ErrNotFound, если продажи нет.
	GetByID(ctx context.Context, id string) (*domain.Sale, error)

	// Transition — атомарный переход: apply мутирует продажу или
	// возвращает ошибку (тогда ничего не фиксируется).
	Transition(ctx context.Context, id string, apply func(*domain.Sale) error) (*domain.Sale, error)

	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error)

	// ListReview — выборка для админской очереди. Только чтение.
	ListReview(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error)

	// LastN — последние продажи (прогрев кэша).
	LastN(ctx context.Context, n int) ([]*domain.Sale, error)
}
