package ports

import "context"

// CheckoutValidator — валидация входа чекаута до создания агрегата.
type CheckoutValidator interface {
	Validate(ctx context.Context, in *CheckoutInput) error
}
