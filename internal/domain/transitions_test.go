package domain_test

import (
	"testing"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func makeSale(t *testing.T, method domain.PaymentMethod, delivery domain.DeliveryType) *domain.Sale {
	t.Helper()
	s, err := domain.NewSale("sale-1", "cust-1", method, delivery, []domain.Line{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	return s
}

func TestNewSale_TotalFrozenFromLines(t *testing.T) {
	s, err := domain.NewSale("sale-1", "cust-1", domain.MethodTransfer, domain.DeliveryShip, []domain.Line{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1000)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.RequireFromString("499.50")},
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusPendingPayment, s.Status)
	require.True(t, s.TotalAmount.Equal(decimal.RequireFromString("2499.50")), "total=%s", s.TotalAmount)
	require.True(t, s.Lines[0].Subtotal.Equal(decimal.NewFromInt(2000)))
}

func TestNewSale_CashWithShipIsIllegal(t *testing.T) {
	_, err := domain.NewSale("sale-1", "cust-1", domain.MethodCash, domain.DeliveryShip, []domain.Line{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
	})
	require.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
}

func TestNewSale_RejectsBadLines(t *testing.T) {
	cases := []struct {
		name  string
		lines []domain.Line
	}{
		{"empty", nil},
		{"zero quantity", []domain.Line{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}}},
		{"zero price", []domain.Line{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.Zero}}},
		{"no product", []domain.Line{{Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewSale("sale-1", "cust-1", domain.MethodTransfer, domain.DeliveryShip, tc.lines)
			require.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
		})
	}
}

// Полный счастливый путь SHIP: оплата переводом, квитанция, одобрение,
// отгрузка с кодом, доставка.
func TestShipLifecycle(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)

	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, "receipt-001"))
	require.Equal(t, domain.StatusPendingApproval, s.Status)
	require.Equal(t, domain.EvidenceReceipt, s.Evidence.Kind)

	require.NoError(t, s.Approve(domain.RoleAdmin))
	require.Equal(t, domain.StatusApproved, s.Status)

	require.NoError(t, s.Dispatch(domain.RoleAdmin, "TRACK123", false))
	require.Equal(t, domain.StatusShipped, s.Status)
	require.Equal(t, "TRACK123", s.TrackingCode)

	require.NoError(t, s.MarkDelivered(domain.RoleAdmin))
	require.Equal(t, domain.StatusDelivered, s.Status)
	require.True(t, s.Status.Terminal())
}

// PICKUP: наличные без подтверждения, выдача минует SHIPPED.
func TestPickupLifecycle_SkipsShipped(t *testing.T) {
	s := makeSale(t, domain.MethodCash, domain.DeliveryPickup)

	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, ""))
	require.Equal(t, domain.StatusPendingApproval, s.Status)
	require.Nil(t, s.Evidence, "cash sales carry no evidence")

	require.NoError(t, s.Approve(domain.RoleAdmin))

	require.NoError(t, s.Dispatch(domain.RoleAdmin, "", true))
	require.Equal(t, domain.StatusDelivered, s.Status)
	require.Equal(t, domain.PickupMarker, s.TrackingCode)
}

func TestSubmitPayment_EvidenceRequired(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	err := s.SubmitPayment(domain.RoleCustomer, "")
	require.True(t, domain.IsValidation(err))
	require.Equal(t, domain.StatusPendingPayment, s.Status, "failed transition must not mutate")
}

func TestConfirmGatewayPayment(t *testing.T) {
	s := makeSale(t, domain.MethodGateway, domain.DeliveryShip)

	require.NoError(t, s.ConfirmGatewayPayment("txn-42"))
	require.Equal(t, domain.StatusPendingApproval, s.Status)
	require.Equal(t, domain.EvidenceGateway, s.Evidence.Kind)

	// повторное подтверждение — уже не из PENDING_PAYMENT
	err := s.ConfirmGatewayPayment("txn-43")
	require.True(t, domain.IsInvalidTransition(err))
}

func TestConfirmGatewayPayment_WrongMethod(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	err := s.ConfirmGatewayPayment("txn-42")
	require.True(t, domain.IsValidation(err))
}

func TestChangePaymentMethod(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)

	require.NoError(t, s.ChangePaymentMethod(domain.RoleCustomer, domain.MethodCrypto))
	require.Equal(t, domain.MethodCrypto, s.PaymentMethod)
	require.Equal(t, domain.StatusPendingPayment, s.Status)

	// переключение на CASH при доставке курьером запрещено
	err := s.ChangePaymentMethod(domain.RoleCustomer, domain.MethodCash)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, domain.MethodCrypto, s.PaymentMethod)

	// после ухода из PENDING_PAYMENT метод заморожен
	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, "r-1"))
	err = s.ChangePaymentMethod(domain.RoleCustomer, domain.MethodTransfer)
	require.True(t, domain.IsInvalidTransition(err))
}

func TestChangePaymentMethod_DropsDanglingEvidence(t *testing.T) {
	s := makeSale(t, domain.MethodGateway, domain.DeliveryPickup)
	require.NoError(t, s.ChangePaymentMethod(domain.RoleCustomer, domain.MethodCash))
	require.Nil(t, s.Evidence)
}

func TestCancel_OnlyFromEarlyStates(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s.Cancel(domain.RoleCustomer))
	require.Equal(t, domain.StatusCancelled, s.Status)

	// повторная отмена — InvalidTransition, не идемпотентный успех
	err := s.Cancel(domain.RoleCustomer)
	require.True(t, domain.IsInvalidTransition(err))

	s2 := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s2.SubmitPayment(domain.RoleCustomer, "r-1"))
	require.NoError(t, s2.Cancel(domain.RoleAdmin))
	require.Equal(t, domain.StatusCancelled, s2.Status)

	s3 := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s3.SubmitPayment(domain.RoleCustomer, "r-1"))
	require.NoError(t, s3.Approve(domain.RoleAdmin))
	err = s3.Cancel(domain.RoleCustomer)
	require.True(t, domain.IsInvalidTransition(err), "cancel after approve must fail")
}

func TestRoleChecks(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, "r-1"))

	require.True(t, domain.IsValidation(s.Approve(domain.RoleCustomer)))
	require.True(t, domain.IsValidation(s.Reject(domain.RoleCustomer)))
	require.NoError(t, s.Approve(domain.RoleAdmin))
	require.True(t, domain.IsValidation(s.Dispatch(domain.RoleCustomer, "T1", false)))
}

func TestDispatch_EmptyTrackingCode(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, "r-1"))
	require.NoError(t, s.Approve(domain.RoleAdmin))

	err := s.Dispatch(domain.RoleAdmin, "", false)
	require.True(t, domain.IsValidation(err))
	require.Equal(t, domain.StatusApproved, s.Status)
	require.Empty(t, s.TrackingCode)
}

func TestReject_FlagsStockRelease(t *testing.T) {
	s := makeSale(t, domain.MethodTransfer, domain.DeliveryShip)
	require.NoError(t, s.SubmitPayment(domain.RoleCustomer, "r-1"))
	require.NoError(t, s.Reject(domain.RoleAdmin))

	require.Equal(t, domain.StatusRejected, s.Status)
	require.True(t, domain.ReleasesStock(s.Status))
	require.False(t, domain.ReleasesStock(domain.StatusDelivered))
}

func TestStatusSets(t *testing.T) {
	all := []domain.Status{
		domain.StatusPendingPayment, domain.StatusPendingApproval, domain.StatusApproved,
		domain.StatusShipped, domain.StatusDelivered, domain.StatusRejected, domain.StatusCancelled,
	}
	for _, st := range all {
		require.True(t, st.Valid())
	}
	require.False(t, domain.Status("PAID").Valid())
}
