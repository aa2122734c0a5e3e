//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// SaleParams — входные данные фабрики до вызова domain.NewSale.
type SaleParams struct {
	ID       string
	Customer string
	Method   domain.PaymentMethod
	Delivery domain.DeliveryType
	Lines    []domain.Line
}

// Мини-генератор валидной продажи. Паникует при невалидной комбинации —
// фабрика предназначена для конструирования корректных фикстур.
func MakeSale(opts ...func(*SaleParams)) *domain.Sale {
	params := SaleParams{
		ID:       "sale-" + UniqSuffix(),
		Customer: "cust-" + UniqSuffix(),
		Method:   domain.MethodTransfer,
		Delivery: domain.DeliveryShip,
		Lines: []domain.Line{
			{
				ProductID: "prod-" + UniqSuffix(),
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("1500.00"),
			},
		},
	}
	for _, fn := range opts {
		fn(&params)
	}

	sale, err := domain.NewSale(params.ID, params.Customer, params.Method, params.Delivery, params.Lines)
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid sale fixture: %v", err))
	}
	return sale
}

func WithSaleID(id string) func(*SaleParams) {
	return func(s *SaleParams) { s.ID = id }
}

func WithCustomer(cust string) func(*SaleParams) {
	return func(s *SaleParams) { s.Customer = cust }
}

func WithMethod(m domain.PaymentMethod) func(*SaleParams) {
	return func(s *SaleParams) { s.Method = m }
}

func WithDelivery(d domain.DeliveryType) func(*SaleParams) {
	return func(s *SaleParams) { s.Delivery = d }
}

// WithLines — n строк с разными товарами и возрастающей ценой.
func WithLines(n int) func(*SaleParams) {
	return func(s *SaleParams) {
		s.Lines = make([]domain.Line, 0, n)
		for i := 0; i < n; i++ {
			s.Lines = append(s.Lines, domain.Line{
				ProductID: fmt.Sprintf("prod-%s-%d", UniqSuffix(), i),
				Quantity:  i + 1,
				UnitPrice: decimal.NewFromInt(int64(100 * (i + 1))),
			})
		}
	}
}

// WithProductLine — одна строка по конкретному товару (для тестов остатков).
func WithProductLine(productID string, qty int, price string) func(*SaleParams) {
	return func(s *SaleParams) {
		s.Lines = []domain.Line{
			{
				ProductID: productID,
				Quantity:  qty,
				UnitPrice: decimal.RequireFromString(price),
			},
		}
	}
}
