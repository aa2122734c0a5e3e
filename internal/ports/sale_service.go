package ports

import (
	"context"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/payment"
)

// CheckoutInput — входные данные создания продажи. Цены строк приходят от
// витрины (каталог — внешний коллаборатор); подытоги и итог сервис
// считает сам и клиентской арифметике не доверяет.
type CheckoutInput struct {
	CustomerID    string
	PaymentMethod domain.PaymentMethod
	DeliveryType  domain.DeliveryType
	Lines         []domain.Line
}

// PaymentInfo — данные экрана оплаты: сумма в валюте канала и реквизиты.
type PaymentInfo struct {
	Method         domain.PaymentMethod `json:"method"`
	Amount         payment.Amount       `json:"amount"`
	ManualEvidence bool                 `json:"manual_evidence"`
	Details        map[string]string    `json:"details"`
}

// SaleService — прикладная поверхность ядра для транспорта (HTTP, Kafka).
type SaleService interface {
	CreateSale(ctx context.Context, in CheckoutInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	PaymentInfo(ctx context.Context, id string) (*PaymentInfo, error)

	SubmitPayment(ctx context.Context, id string, role domain.ActorRole, reference string) (*domain.Sale, error)
	ConfirmGatewayPayment(ctx context.Context, id, transactionRef string) (*domain.Sale, error)
	ChangePaymentMethod(ctx context.Context, id string, role domain.ActorRole, method domain.PaymentMethod) (*domain.Sale, error)
	Approve(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error)
	Reject(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error)
	Dispatch(ctx context.Context, id string, role domain.ActorRole, trackingCode string, pickupConfirmed bool) (*domain.Sale, error)
	MarkDelivered(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error)
	Cancel(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error)

	SalesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error)
	ReviewQueue(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error)
}
