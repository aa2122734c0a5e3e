package ports

import (
	"context"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
)

// SaleCache — кэш чтения продаж. Требования: потокобезопасность, доступ по
// ключу не хуже O(1), возврат копий. Кэш обслуживает только чтение:
// переходы всегда валидируются по авторитетному состоянию в хранилище,
// кэш лишь дописывается после успешной фиксации.
type SaleCache interface {
	Get(ctx context.Context, id string) (*domain.Sale, bool)
	Set(ctx context.Context, sale *domain.Sale) error
	WarmUp(ctx context.Context, sales []*domain.Sale) error
}
