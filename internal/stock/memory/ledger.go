// Пакет memory — учёт остатков в памяти процесса. Используется юнит-тестами
// и in-memory хранилищем; боевая реализация живёт в repo/postgres и
// выполняет те же операции внутри транзакций БД.
package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
)

// Проверка соответствия порту.
var _ ports.StockLedger = (*Ledger)(nil)

// Ledger — потокобезопасный счётчик остатков по товарам.
// Значение domain.UnlimitedStock означает услугу без учёта остатка.
type Ledger struct {
	mu    sync.Mutex
	stock map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{stock: make(map[string]int)}
}

// SetStock — начальный остаток товара (заведение каталога — вне ядра,
// поэтому метода нет в порте).
func (l *Ledger) SetStock(productID string, qty int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock[productID] = qty
}

// Stock — текущий остаток; (0, false), если товар неизвестен.
func (l *Ledger) Stock(productID string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	q, ok := l.stock[productID]
	return q, ok
}

// Reserve — групповое резервирование под одной блокировкой:
// сначала проверяем все строки, затем списываем. Два конкурентных вызова
// за последнюю единицу не могут пройти оба — проверка и списание
// неразделимы.
func (l *Ledger) Reserve(_ context.Context, lines []domain.Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		cur, ok := l.stock[line.ProductID]
		if !ok {
			metrics.StockReservations.WithLabelValues("insufficient").Inc()
			return &domain.InsufficientStockError{ProductID: line.ProductID}
		}
		if cur == domain.UnlimitedStock {
			continue
		}
		if cur < line.Quantity {
			metrics.StockReservations.WithLabelValues("insufficient").Inc()
			return &domain.InsufficientStockError{ProductID: line.ProductID}
		}
	}

	for _, line := range lines {
		if l.stock[line.ProductID] == domain.UnlimitedStock {
			continue
		}
		l.stock[line.ProductID] -= line.Quantity
	}
	metrics.StockReservations.WithLabelValues("reserved").Inc()
	return nil
}

// Release — возврат остатка. Дисциплина "ровно один раз на продажу"
// обеспечивается машиной состояний: возврат происходит только на переходах
// в REJECTED/CANCELLED, каждый из которых достижим однократно.
func (l *Ledger) Release(_ context.Context, lines []domain.Line) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		if l.stock[line.ProductID] == domain.UnlimitedStock {
			continue
		}
		l.stock[line.ProductID] += line.Quantity
	}
	metrics.StockReservations.WithLabelValues("released").Inc()
	return nil
}
