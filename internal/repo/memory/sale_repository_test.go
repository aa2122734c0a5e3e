package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	repomem "github.com/Gunvolt24/tienda_sales/internal/repo/memory"
	stockmem "github.com/Gunvolt24/tienda_sales/internal/stock/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, stock int) (*repomem.SaleRepository, *stockmem.Ledger) {
	t.Helper()
	l := stockmem.NewLedger()
	l.SetStock("p1", stock)
	return repomem.NewSaleRepository(l), l
}

func newSale(t *testing.T, id string, qty int) *domain.Sale {
	t.Helper()
	s, err := domain.NewSale(id, "cust-1", domain.MethodTransfer, domain.DeliveryShip, []domain.Line{
		{ProductID: "p1", Quantity: qty, UnitPrice: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	return s
}

func TestCreate_ReservesStock(t *testing.T) {
	repo, ledger := newRepo(t, 5)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSale(t, "s1", 2)))

	q, _ := ledger.Stock("p1")
	require.Equal(t, 3, q)

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingPayment, got.Status)
}

func TestCreate_InsufficientStock_NothingPersisted(t *testing.T) {
	repo, ledger := newRepo(t, 1)
	ctx := context.Background()

	err := repo.Create(ctx, newSale(t, "s1", 2))
	require.True(t, domain.IsInsufficientStock(err))

	_, err = repo.GetByID(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	q, _ := ledger.Stock("p1")
	require.Equal(t, 1, q)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _ := newRepo(t, 1)
	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_RejectReleasesStockOnce(t *testing.T) {
	repo, ledger := newRepo(t, 5)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSale(t, "s1", 2)))

	_, err := repo.Transition(ctx, "s1", func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "r-1")
	})
	require.NoError(t, err)

	got, err := repo.Transition(ctx, "s1", func(s *domain.Sale) error {
		return s.Reject(domain.RoleAdmin)
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status)

	q, _ := ledger.Stock("p1")
	require.Equal(t, 5, q, "stock must be restored to the pre-reservation value")

	// повторный reject невозможен — значит и повторного возврата нет
	_, err = repo.Transition(ctx, "s1", func(s *domain.Sale) error {
		return s.Reject(domain.RoleAdmin)
	})
	require.True(t, domain.IsInvalidTransition(err))
	q, _ = ledger.Stock("p1")
	require.Equal(t, 5, q)
}

func TestTransition_FailedApplyKeepsState(t *testing.T) {
	repo, _ := newRepo(t, 5)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newSale(t, "s1", 1)))

	_, err := repo.Transition(ctx, "s1", func(s *domain.Sale) error {
		return s.Approve(domain.RoleAdmin) // из PENDING_PAYMENT нельзя
	})
	require.True(t, domain.IsInvalidTransition(err))

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingPayment, got.Status)
	require.Equal(t, 1, got.Version)
}

// Гонка "покупатель отменяет / админ одобряет": оба применяются к
// актуальному состоянию, проигравший получает InvalidTransition.
func TestTransition_CancelVsApproveRace(t *testing.T) {
	repo, _ := newRepo(t, 5)
	ctx := context.Background()

	sale := newSale(t, "s1", 1)
	require.NoError(t, repo.Create(ctx, sale))
	_, err := repo.Transition(ctx, "s1", func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "r-1")
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var cancelErr, approveErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, cancelErr = repo.Transition(ctx, "s1", func(s *domain.Sale) error {
			return s.Cancel(domain.RoleCustomer)
		})
	}()
	go func() {
		defer wg.Done()
		_, approveErr = repo.Transition(ctx, "s1", func(s *domain.Sale) error {
			return s.Approve(domain.RoleAdmin)
		})
	}()
	wg.Wait()

	if cancelErr == nil {
		require.True(t, domain.IsInvalidTransition(approveErr), "approve must lose: %v", approveErr)
	} else {
		require.NoError(t, approveErr)
		require.True(t, domain.IsInvalidTransition(cancelErr), "cancel must lose: %v", cancelErr)
	}

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Contains(t, []domain.Status{domain.StatusCancelled, domain.StatusApproved}, got.Status)
}

func TestListReview_Queues(t *testing.T) {
	repo, _ := newRepo(t, 100)
	ctx := context.Background()

	s1 := newSale(t, "s1", 1) // останется PENDING_PAYMENT
	s2 := newSale(t, "s2", 1) // PENDING_APPROVAL
	s3 := newSale(t, "s3", 1) // APPROVED
	for _, s := range []*domain.Sale{s1, s2, s3} {
		require.NoError(t, repo.Create(ctx, s))
	}
	_, err := repo.Transition(ctx, "s2", func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "r-2")
	})
	require.NoError(t, err)
	for _, step := range []func(*domain.Sale) error{
		func(s *domain.Sale) error { return s.SubmitPayment(domain.RoleCustomer, "r-3") },
		func(s *domain.Sale) error { return s.Approve(domain.RoleAdmin) },
	} {
		_, err = repo.Transition(ctx, "s3", step)
		require.NoError(t, err)
	}

	verification, err := repo.ListReview(ctx, domain.ReviewFilter{Queue: domain.QueueVerification}, 10, 0)
	require.NoError(t, err)
	require.Len(t, verification, 1)
	require.Equal(t, "s2", verification[0].ID)

	toShip, err := repo.ListReview(ctx, domain.ReviewFilter{Queue: domain.QueueToShip}, 10, 0)
	require.NoError(t, err)
	require.Len(t, toShip, 1)
	require.Equal(t, "s3", toShip[0].ID)

	all, err := repo.ListReview(ctx, domain.ReviewFilter{Queue: domain.QueueAll}, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byMethod, err := repo.ListReview(ctx, domain.ReviewFilter{Queue: domain.QueueAll, Method: domain.MethodCrypto}, 10, 0)
	require.NoError(t, err)
	require.Empty(t, byMethod)
}

func TestListByCustomer_Pagination(t *testing.T) {
	repo, _ := newRepo(t, 100)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, repo.Create(ctx, newSale(t, id, 1)))
	}

	first, err := repo.ListByCustomer(ctx, "cust-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)

	rest, err := repo.ListByCustomer(ctx, "cust-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	none, err := repo.ListByCustomer(ctx, "somebody-else", 10, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}
