package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — продажа с таким id не существует.
	ErrNotFound = errors.New("sale not found")

	// ErrConcurrencyConflict — оптимистическая блокировка: продажу успели
	// изменить параллельно. Вызывающий перечитывает состояние и повторяет.
	ErrConcurrencyConflict = errors.New("sale was modified concurrently")
)

// InvalidTransitionError — запрошенный переход недопустим из текущего
// статуса. Продажа при этом не меняется; ошибка всегда восстановима —
// достаточно перечитать актуальное состояние.
type InvalidTransitionError struct {
	From      Status
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s is not allowed from %s", e.Attempted, e.From)
}

func newInvalidTransition(from Status, attempted string) error {
	return &InvalidTransitionError{From: from, Attempted: attempted}
}

// ValidationError — нарушение предусловия перехода или некорректные
// входные данные (недопустимое сочетание метод/доставка, пустой код
// трекинга, отсутствующее подтверждение и т.п.).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// InsufficientStockError — не хватает остатка по товару. Возникает только
// на шаге резервирования при создании; создание откатывается целиком.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// IsInvalidTransition / IsValidation / IsInsufficientStock — помощники для
// транспортного слоя (маппинг в HTTP-статусы) и консьюмера
// (бизнес-ошибка → скип, временная → повтор).

func IsInvalidTransition(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsInsufficientStock(err error) bool {
	var e *InsufficientStockError
	return errors.As(err, &e)
}

// IsBusiness — ошибка бизнес-правила (не временная): повторная попытка с
// теми же данными даст тот же результат.
func IsBusiness(err error) bool {
	return IsInvalidTransition(err) || IsValidation(err) || IsInsufficientStock(err) ||
		errors.Is(err, ErrNotFound)
}
