package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status — статус продажи. Закрытое множество из семи значений;
// любое другое значение считается повреждёнными данными.
type Status string

const (
	StatusPendingPayment  Status = "PENDING_PAYMENT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusShipped         Status = "SHIPPED"
	StatusDelivered       Status = "DELIVERED"
	StatusRejected        Status = "REJECTED"
	StatusCancelled       Status = "CANCELLED"
)

// Valid — проверка, что значение принадлежит закрытому множеству.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusPendingApproval, StatusApproved,
		StatusShipped, StatusDelivered, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal — терминальные статусы: дальнейшие переходы запрещены.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod — способ оплаты (один из четырёх каналов).
type PaymentMethod string

const (
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCrypto   PaymentMethod = "CRYPTO"
	MethodGateway  PaymentMethod = "GATEWAY"
	MethodCash     PaymentMethod = "CASH"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodTransfer, MethodCrypto, MethodGateway, MethodCash:
		return true
	}
	return false
}

// LegalFor — допустимость способа оплаты для типа доставки.
// Единственное запрещённое сочетание: наличные при курьерской доставке.
func (m PaymentMethod) LegalFor(d DeliveryType) bool {
	if m == MethodCash && d == DeliveryShip {
		return false
	}
	return m.Valid() && d.Valid()
}

// DeliveryType — канал выдачи. Неизменен после создания продажи.
type DeliveryType string

const (
	DeliveryShip   DeliveryType = "SHIP"
	DeliveryPickup DeliveryType = "PICKUP"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryShip || d == DeliveryPickup
}

// ActorRole — роль инициатора перехода. Ядро доверяет переданной роли,
// проверка учётных данных — забота внешнего сервиса аутентификации.
type ActorRole string

const (
	RoleCustomer ActorRole = "CUSTOMER"
	RoleAdmin    ActorRole = "ADMIN"
)

// EvidenceKind — происхождение подтверждения оплаты.
type EvidenceKind string

const (
	EvidenceReceipt EvidenceKind = "RECEIPT" // загруженная квитанция
	EvidenceGateway EvidenceKind = "GATEWAY" // ссылка на транзакцию шлюза
)

// Evidence — подтверждение оплаты.
type Evidence struct {
	Kind      EvidenceKind `json:"kind"`
	Reference string       `json:"reference"`
	AddedAt   time.Time    `json:"added_at"`
}

// Line — строка продажи. После создания не меняется.
type Line struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PickupMarker — маркер трекинга для самовывоза: у выдачи в магазине
// нет перевозчика, но инвариант "код присутствует у завершённой выдачи"
// сохраняется за счёт этого значения.
const PickupMarker = "PICKUP"

// UnlimitedStock — значение остатка "неограниченно" (услуги):
// резервирование и возврат для таких товаров — no-op.
const UnlimitedStock = -1

// Sale — агрегат продажи. Все изменения после создания проходят только
// через методы переходов (transitions.go); прямые присваивания статуса
// снаружи пакета недопустимы.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	Status        Status          `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	DeliveryType  DeliveryType    `json:"delivery_type"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Lines         []Line          `json:"lines"`
	Evidence      *Evidence       `json:"evidence,omitempty"`
	TrackingCode  string          `json:"tracking_code,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewSale — создание агрегата. Суммы строк и итог считаются здесь один раз
// и далее не пересчитываются: изменение цен в каталоге не задевает
// открытые продажи.
func NewSale(id, customerID string, method PaymentMethod, delivery DeliveryType, lines []Line) (*Sale, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "required"}
	}
	if customerID == "" {
		return nil, &ValidationError{Field: "customer_id", Reason: "required"}
	}
	if !delivery.Valid() {
		return nil, &ValidationError{Field: "delivery_type", Reason: "unknown delivery type"}
	}
	if !method.Valid() {
		return nil, &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if !method.LegalFor(delivery) {
		return nil, &ValidationError{Field: "payment_method", Reason: "cash is not allowed for shipped sales"}
	}
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "lines", Reason: "at least one line is required"}
	}

	now := time.Now().UTC()
	total := decimal.Zero
	copied := make([]Line, 0, len(lines))
	for i := range lines {
		l := lines[i]
		if l.ProductID == "" {
			return nil, &ValidationError{Field: "lines.product_id", Reason: "required"}
		}
		if l.Quantity <= 0 {
			return nil, &ValidationError{Field: "lines.quantity", Reason: "must be positive"}
		}
		if l.UnitPrice.IsNegative() || l.UnitPrice.IsZero() {
			return nil, &ValidationError{Field: "lines.unit_price", Reason: "must be positive"}
		}
		// Подытог не берём из запроса — считаем сами.
		l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(l.Subtotal)
		copied = append(copied, l)
	}

	return &Sale{
		ID:            id,
		CustomerID:    customerID,
		Status:        StatusPendingPayment,
		PaymentMethod: method,
		DeliveryType:  delivery,
		TotalAmount:   total,
		Lines:         copied,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Clone — глубокая копия (для кэша и in-memory хранилища:
// наружу никогда не отдаём внутренние указатели).
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.Lines = append([]Line(nil), s.Lines...)
	if s.Evidence != nil {
		ev := *s.Evidence
		c.Evidence = &ev
	}
	return &c
}

// ReleasesStock — переход в эти статусы возвращает зарезервированный
// остаток. Каждый из них достижим не более одного раза за жизнь продажи,
// поэтому двойного возврата не бывает.
func ReleasesStock(to Status) bool {
	return to == StatusRejected || to == StatusCancelled
}
