package ports

import (
	"context"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
)

// StockLedger — учёт остатков. Единственная разделяемая между продажами
// мутируемая сущность; любое изменение счётчиков проходит только через
// Reserve/Release.
type StockLedger interface {
	// Reserve — групповое резервирование "всё или ничего": если хотя бы
	// по одной строке не хватает остатка, ни одна не списывается
	// (InsufficientStockError с указанием товара). Товары с
	// неограниченным остатком (domain.UnlimitedStock) пропускаются.
	Reserve(ctx context.Context, lines []domain.Line) error

	// Release — возврат остатка по всем строкам. Вызывается ровно один
	// раз на продажу: только из переходов в REJECTED/CANCELLED, каждый из
	// которых достижим однократно.
	Release(ctx context.Context, lines []domain.Line) error
}
