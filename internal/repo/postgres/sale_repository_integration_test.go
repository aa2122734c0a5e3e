//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	pgrepo "github.com/Gunvolt24/tienda_sales/internal/repo/postgres"
	"github.com/Gunvolt24/tienda_sales/internal/testutil"
)

func seedProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, id string, stock int) {
	t.Helper()
	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, stock) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET stock = EXCLUDED.stock
	`, id, "product "+id, stock)
	require.NoError(t, err)
}

func productStock(ctx context.Context, t *testing.T, pool *pgxpool.Pool, id string) int {
	t.Helper()
	var stock int
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock))
	return stock
}

// 1) Создание резервирует остаток, GetByID возвращает продажу со строками
func TestRepo_CreateAndGet_TC(t *testing.T) {
	t.Parallel()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	// миграции
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	// короткий контекст — на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	productID := "prod-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, productID, 10)

	sale := testutil.MakeSale(testutil.WithProductLine(productID, 3, "1500.00"))
	require.NoError(t, repo.Create(ctx, sale))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sale.ID, got.ID)
	require.Equal(t, domain.StatusPendingPayment, got.Status)
	require.Len(t, got.Lines, 1)
	require.Equal(t, productID, got.Lines[0].ProductID)
	require.True(t, got.TotalAmount.Equal(sale.TotalAmount),
		"total: want %s, got %s", sale.TotalAmount, got.TotalAmount)

	require.Equal(t, 7, productStock(ctx, t, pool, productID))
}

// 2) Нехватка остатка: продажа не создаётся вовсе, списаний нет
func TestRepo_Create_InsufficientStock_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	okID := "prod-ok-" + testutil.UniqSuffix()
	lowID := "prod-low-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, okID, 10)
	seedProduct(ctx, t, pool, lowID, 1)

	sale := testutil.MakeSale()
	sale.Lines[0].ProductID = okID
	sale.Lines = append(sale.Lines, domain.Line{
		ProductID: lowID,
		Quantity:  2,
		UnitPrice: sale.Lines[0].UnitPrice,
		Subtotal:  sale.Lines[0].Subtotal,
	})

	err = repo.Create(ctx, sale)
	require.Error(t, err)
	require.True(t, domain.IsInsufficientStock(err), "want insufficient stock, got %v", err)

	// транзакция откатилась целиком
	_, err = repo.GetByID(ctx, sale.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, 10, productStock(ctx, t, pool, okID))
	require.Equal(t, 1, productStock(ctx, t, pool, lowID))
}

// 3) Неограниченный остаток (-1): резерв и возврат — no-op
func TestRepo_Create_UnlimitedStock_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	serviceID := "svc-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, serviceID, domain.UnlimitedStock)

	sale := testutil.MakeSale(testutil.WithProductLine(serviceID, 100, "50.00"))
	require.NoError(t, repo.Create(ctx, sale))
	require.Equal(t, domain.UnlimitedStock, productStock(ctx, t, pool, serviceID))
}

// 4) Полный жизненный цикл через Transition: версия растёт, эффекты
// переходов (квитанция, трекинг) доезжают до БД
func TestRepo_Transition_Lifecycle_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	productID := "prod-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, productID, 5)

	sale := testutil.MakeSale(testutil.WithProductLine(productID, 1, "2500.00"))
	require.NoError(t, repo.Create(ctx, sale))

	got, err := repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "receipt-001")
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingApproval, got.Status)
	require.Equal(t, 2, got.Version)
	require.NotNil(t, got.Evidence)
	require.Equal(t, "receipt-001", got.Evidence.Reference)

	got, err = repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.Approve(domain.RoleAdmin)
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, got.Status)

	got, err = repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.Dispatch(domain.RoleAdmin, "TRK-42", false)
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, got.Status)

	got, err = repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.MarkDelivered(domain.RoleAdmin)
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, got.Status)
	require.Equal(t, "TRK-42", got.TrackingCode)
	require.Equal(t, 5, got.Version)

	// повторный переход по завершённой продаже — доменная ошибка,
	// состояние в БД не меняется
	_, err = repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.Approve(domain.RoleAdmin)
	})
	require.True(t, domain.IsInvalidTransition(err), "want invalid transition, got %v", err)

	final, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, final.Status)
	require.Equal(t, 5, final.Version)
}

// 5) Reject возвращает резерв на склад в той же транзакции
func TestRepo_Transition_RejectReleasesStock_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	productID := "prod-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, productID, 4)

	sale := testutil.MakeSale(testutil.WithProductLine(productID, 3, "900.00"))
	require.NoError(t, repo.Create(ctx, sale))
	require.Equal(t, 1, productStock(ctx, t, pool, productID))

	_, err = repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "receipt-x")
	})
	require.NoError(t, err)

	got, err := repo.Transition(ctx, sale.ID, func(s *domain.Sale) error {
		return s.Reject(domain.RoleAdmin)
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status)
	require.Equal(t, 4, productStock(ctx, t, pool, productID))
}

// 6) Списки: страница клиента и админская очередь с фильтрами
func TestRepo_Lists_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgrepo.NewSaleRepository(pool)

	productID := "prod-" + testutil.UniqSuffix()
	seedProduct(ctx, t, pool, productID, 100)
	customer := "cust-" + testutil.UniqSuffix()

	var pending *domain.Sale
	for i := 0; i < 3; i++ {
		s := testutil.MakeSale(
			testutil.WithCustomer(customer),
			testutil.WithProductLine(productID, 1, "100.00"),
		)
		require.NoError(t, repo.Create(ctx, s))
		pending = s
	}

	// одна продажа — в PENDING_APPROVAL: попадёт в очередь проверки
	_, err = repo.Transition(ctx, pending.ID, func(s *domain.Sale) error {
		return s.SubmitPayment(domain.RoleCustomer, "receipt-l")
	})
	require.NoError(t, err)

	mine, err := repo.ListByCustomer(ctx, customer, 10, 0)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for _, s := range mine {
		require.Equal(t, customer, s.CustomerID)
		require.NotEmpty(t, s.Lines)
	}

	verification, err := repo.ListReview(ctx, domain.ReviewFilter{Queue: domain.QueueVerification}, 50, 0)
	require.NoError(t, err)
	found := false
	for _, s := range verification {
		require.Equal(t, domain.StatusPendingApproval, s.Status)
		if s.ID == pending.ID {
			found = true
		}
	}
	require.True(t, found, "submitted sale must be in the verification queue")

	// фильтр по способу оплаты, которого нет у этого клиента
	none, err := repo.ListReview(ctx, domain.ReviewFilter{
		Queue:  domain.QueueVerification,
		Method: domain.MethodCash,
	}, 50, 0)
	require.NoError(t, err)
	for _, s := range none {
		require.Equal(t, domain.MethodCash, s.PaymentMethod)
	}
}
