package payment_test

import (
	"testing"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func cfg() payment.Config {
	return payment.Config{
		BankName:     "Banco Prueba",
		BankCBU:      "0000003100010000000001",
		BankAlias:    "tienda.ventas",
		BankHolder:   "Tienda SRL",
		USDTRate:     decimal.RequireFromString("1185.50"),
		StoreAddress: "Av. Siempre Viva 123",
		StoreHours:   "10-19",
	}
}

func TestForMethod_AllVariants(t *testing.T) {
	for _, m := range []domain.PaymentMethod{
		domain.MethodTransfer, domain.MethodCrypto, domain.MethodGateway, domain.MethodCash,
	} {
		st, err := payment.ForMethod(m)
		require.NoError(t, err)
		require.Equal(t, m, st.Method())
	}

	_, err := payment.ForMethod(domain.PaymentMethod("PAYPAL"))
	require.True(t, domain.IsValidation(err))
}

func TestManualEvidenceFlags(t *testing.T) {
	want := map[domain.PaymentMethod]bool{
		domain.MethodTransfer: true,
		domain.MethodCrypto:   true,
		domain.MethodGateway:  false,
		domain.MethodCash:     false,
	}
	for m, manual := range want {
		st, err := payment.ForMethod(m)
		require.NoError(t, err)
		require.Equal(t, manual, st.RequiresManualEvidence(), "method=%s", m)
	}
}

func TestCashIllegalForShip(t *testing.T) {
	st, err := payment.ForMethod(domain.MethodCash)
	require.NoError(t, err)

	require.True(t, domain.IsValidation(st.ValidateDelivery(domain.DeliveryShip)))
	require.NoError(t, st.ValidateDelivery(domain.DeliveryPickup))

	// остальные способы легальны для обоих каналов
	for _, m := range []domain.PaymentMethod{domain.MethodTransfer, domain.MethodCrypto, domain.MethodGateway} {
		s, err := payment.ForMethod(m)
		require.NoError(t, err)
		require.NoError(t, s.ValidateDelivery(domain.DeliveryShip))
		require.NoError(t, s.ValidateDelivery(domain.DeliveryPickup))
	}
}

func TestCryptoDisplayAmount(t *testing.T) {
	st, err := payment.ForMethod(domain.MethodCrypto)
	require.NoError(t, err)

	// 25000 / 1185.50 = 21.0881... → 21.09
	amt, err := st.DisplayAmount(decimal.NewFromInt(25000), cfg())
	require.NoError(t, err)
	require.Equal(t, "USDT", amt.Currency)
	require.True(t, amt.Value.Equal(decimal.RequireFromString("21.09")), "got %s", amt.Value)
}

func TestCryptoDisplayAmount_BadRate(t *testing.T) {
	st, _ := payment.ForMethod(domain.MethodCrypto)

	bad := cfg()
	bad.USDTRate = decimal.Zero
	_, err := st.DisplayAmount(decimal.NewFromInt(100), bad)
	require.True(t, domain.IsValidation(err))
}

func TestTransferDetails(t *testing.T) {
	st, _ := payment.ForMethod(domain.MethodTransfer)

	amt, err := st.DisplayAmount(decimal.NewFromInt(2000), cfg())
	require.NoError(t, err)
	require.Equal(t, "ARS", amt.Currency)
	require.True(t, amt.Value.Equal(decimal.NewFromInt(2000)))

	d := st.Details(cfg())
	require.Equal(t, "0000003100010000000001", d["cbu"])
	require.Equal(t, "tienda.ventas", d["alias"])
}

func TestCashDetails_StoreInfo(t *testing.T) {
	st, _ := payment.ForMethod(domain.MethodCash)
	d := st.Details(cfg())
	require.Equal(t, "Av. Siempre Viva 123", d["address"])
	require.Equal(t, "10-19", d["hours"])
}
