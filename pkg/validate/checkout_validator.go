package validate

import (
	"context"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
)

// Проверка соответствия порту.
var _ ports.CheckoutValidator = (*CheckoutValidator)(nil)

// CheckoutValidator — валидация входа чекаута до создания агрегата.
// Возвращает domain.ValidationError с указанием поля — транспорт отдаёт
// её пользователю дословно.
type CheckoutValidator struct{}

func NewCheckoutValidator() *CheckoutValidator { return &CheckoutValidator{} }

func (v *CheckoutValidator) Validate(_ context.Context, in *ports.CheckoutInput) error {
	if in == nil {
		return &domain.ValidationError{Field: "body", Reason: "checkout input is required"}
	}
	if err := v.validateCore(in); err != nil {
		return err
	}
	return v.validateLines(in.Lines)
}

func (v *CheckoutValidator) validateCore(in *ports.CheckoutInput) error {
	if in.CustomerID == "" {
		return &domain.ValidationError{Field: "customer_id", Reason: "required"}
	}
	if !in.DeliveryType.Valid() {
		return &domain.ValidationError{Field: "delivery_type", Reason: "must be SHIP or PICKUP"}
	}
	if !in.PaymentMethod.Valid() {
		return &domain.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	// Правило сочетания метод×доставка живёт в domain; здесь только
	// ранний отказ с тем же текстом, что увидит покупатель.
	if !in.PaymentMethod.LegalFor(in.DeliveryType) {
		return &domain.ValidationError{Field: "payment_method", Reason: "cash is not allowed for shipped sales"}
	}
	return nil
}

func (v *CheckoutValidator) validateLines(lines []domain.Line) error {
	if len(lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == "" {
			return &domain.ValidationError{Field: "lines.product_id", Reason: "required"}
		}
		if _, dup := seen[l.ProductID]; dup {
			return &domain.ValidationError{Field: "lines.product_id", Reason: "duplicate product " + l.ProductID}
		}
		seen[l.ProductID] = struct{}{}

		if l.Quantity <= 0 {
			return &domain.ValidationError{Field: "lines.quantity", Reason: "must be positive"}
		}
		if l.UnitPrice.IsZero() || l.UnitPrice.IsNegative() {
			return &domain.ValidationError{Field: "lines.unit_price", Reason: "must be positive"}
		}
	}
	return nil
}
