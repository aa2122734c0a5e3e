// Пакет payment — стратегии способов оплаты. Правило "нужно ли ручное
// подтверждение" и представление суммы для покупателя живут здесь,
// а не в разбросанных условиях по хендлерам.
package payment

import (
	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/shopspring/decimal"
)

// Config — платёжные реквизиты магазина. Источник значений — внешний
// конфигурационный сервис (у нас — переменные окружения); ядро их не
// вычисляет и не проверяет на актуальность.
type Config struct {
	BankName   string
	BankCBU    string
	BankAlias  string
	BankHolder string

	// USDTRate — курс ARS за 1 USDT, поставляется извне.
	USDTRate decimal.Decimal

	StoreAddress string
	StoreHours   string
}

// Amount — сумма к оплате в валюте канала.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// Strategy — общая поверхность четырёх способов оплаты.
type Strategy interface {
	Method() domain.PaymentMethod

	// RequiresManualEvidence — нужна ли загрузка квитанции покупателем.
	RequiresManualEvidence() bool

	// ValidateDelivery — допустим ли способ для данного типа доставки.
	ValidateDelivery(d domain.DeliveryType) error

	// DisplayAmount — сумма, которую видит покупатель (для CRYPTO —
	// пересчёт в USDT по курсу из конфигурации).
	DisplayAmount(total decimal.Decimal, cfg Config) (Amount, error)

	// Details — реквизиты для экрана оплаты (банк/кошелёк/адрес магазина).
	Details(cfg Config) map[string]string
}

// ForMethod — стратегия по способу оплаты.
func ForMethod(m domain.PaymentMethod) (Strategy, error) {
	switch m {
	case domain.MethodTransfer:
		return transferStrategy{}, nil
	case domain.MethodCrypto:
		return cryptoStrategy{}, nil
	case domain.MethodGateway:
		return gatewayStrategy{}, nil
	case domain.MethodCash:
		return cashStrategy{}, nil
	default:
		return nil, &domain.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
}

func validateCombination(m domain.PaymentMethod, d domain.DeliveryType) error {
	if !m.LegalFor(d) {
		return &domain.ValidationError{Field: "payment_method", Reason: "cash is not allowed for shipped sales"}
	}
	return nil
}

// --- TRANSFER: банковский перевод, квитанция обязательна ---

type transferStrategy struct{}

func (transferStrategy) Method() domain.PaymentMethod { return domain.MethodTransfer }
func (transferStrategy) RequiresManualEvidence() bool { return true }

func (transferStrategy) ValidateDelivery(d domain.DeliveryType) error {
	return validateCombination(domain.MethodTransfer, d)
}

func (transferStrategy) DisplayAmount(total decimal.Decimal, _ Config) (Amount, error) {
	return Amount{Value: total, Currency: "ARS"}, nil
}

func (transferStrategy) Details(cfg Config) map[string]string {
	return map[string]string{
		"bank":   cfg.BankName,
		"cbu":    cfg.BankCBU,
		"alias":  cfg.BankAlias,
		"holder": cfg.BankHolder,
	}
}

// --- CRYPTO: USDT по привязанному курсу ---

type cryptoStrategy struct{}

func (cryptoStrategy) Method() domain.PaymentMethod { return domain.MethodCrypto }
func (cryptoStrategy) RequiresManualEvidence() bool { return true }

func (cryptoStrategy) ValidateDelivery(d domain.DeliveryType) error {
	return validateCombination(domain.MethodCrypto, d)
}

// DisplayAmount — total / usdtRate, округление до 2 знаков.
// Деление десятичное, не двоичное: дрейфа копеек при пересчёте нет.
func (cryptoStrategy) DisplayAmount(total decimal.Decimal, cfg Config) (Amount, error) {
	if cfg.USDTRate.IsZero() || cfg.USDTRate.IsNegative() {
		return Amount{}, &domain.ValidationError{Field: "usdt_rate", Reason: "rate must be positive"}
	}
	return Amount{Value: total.Div(cfg.USDTRate).Round(2), Currency: "USDT"}, nil
}

func (cryptoStrategy) Details(cfg Config) map[string]string {
	return map[string]string{
		"network": "TRC20",
		"rate":    cfg.USDTRate.String(),
	}
}

// --- GATEWAY: hosted checkout, подтверждение приходит асинхронно ---

type gatewayStrategy struct{}

func (gatewayStrategy) Method() domain.PaymentMethod { return domain.MethodGateway }
func (gatewayStrategy) RequiresManualEvidence() bool { return false }

func (gatewayStrategy) ValidateDelivery(d domain.DeliveryType) error {
	return validateCombination(domain.MethodGateway, d)
}

func (gatewayStrategy) DisplayAmount(total decimal.Decimal, _ Config) (Amount, error) {
	return Amount{Value: total, Currency: "ARS"}, nil
}

func (gatewayStrategy) Details(_ Config) map[string]string {
	return map[string]string{"confirmation": "async"}
}

// --- CASH: только самовывоз, без подтверждения ---

type cashStrategy struct{}

func (cashStrategy) Method() domain.PaymentMethod { return domain.MethodCash }
func (cashStrategy) RequiresManualEvidence() bool { return false }

func (cashStrategy) ValidateDelivery(d domain.DeliveryType) error {
	return validateCombination(domain.MethodCash, d)
}

func (cashStrategy) DisplayAmount(total decimal.Decimal, _ Config) (Amount, error) {
	return Amount{Value: total, Currency: "ARS"}, nil
}

func (cashStrategy) Details(cfg Config) map[string]string {
	return map[string]string{
		"address": cfg.StoreAddress,
		"hours":   cfg.StoreHours,
	}
}
