package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/payment"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
)

// Проверка реализации интерфейса на этапе компиляции.
var _ ports.SaleService = (*SaleService)(nil)

// SaleService — прикладная логика жизненного цикла продаж (без знаний о транспорте).
type SaleService struct {
	repo      ports.SaleRepository    // прямой доступ к хранилищу
	cache     ports.SaleCache         // прямой доступ к кэшу
	log       ports.Logger            // прямой доступ к логгеру
	validator ports.CheckoutValidator // прямой доступ к валидатору
	payCfg    payment.Config          // реквизиты магазина для экрана оплаты
}

// NewSaleService — DI-конструктор.
func NewSaleService(
	repo ports.SaleRepository,
	cache ports.SaleCache,
	log ports.Logger,
	validator ports.CheckoutValidator,
	payCfg payment.Config,
) *SaleService {
	return &SaleService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
		payCfg:    payCfg,
	}
}

// CreateSale — чекаут. Шаги:
//  1. валидация входа (поля, сочетание оплата/доставка, строки);
//  2. сборка агрегата (подытоги и итог считаются заново, не с клиента);
//  3. транзакционное сохранение: резерв остатков + запись продажи;
//  4. запись в кэш (ошибки кэша не фатальны).
func (s *SaleService) CreateSale(ctx context.Context, in ports.CheckoutInput) (*domain.Sale, error) {
	if err := s.validator.Validate(ctx, &in); err != nil {
		s.log.Warnf(ctx, "checkout validation failed customer=%s err=%v", in.CustomerID, err)
		return nil, err
	}

	// Сочетание оплаты и доставки проверяет стратегия канала.
	strat, err := payment.ForMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := strat.ValidateDelivery(in.DeliveryType); err != nil {
		return nil, err
	}

	sale, err := domain.NewSale(uuid.NewString(), in.CustomerID, in.PaymentMethod, in.DeliveryType, in.Lines)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.repo.Create(ctx, sale); err != nil {
		s.log.Errorf(ctx, "repo.Create failed sale=%s err=%v", sale.ID, err)
		return nil, err
	}
	metrics.SalesCreated.WithLabelValues(string(sale.PaymentMethod)).Inc()

	if setErr := s.cache.Set(ctx, sale); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed sale=%s err=%v", sale.ID, setErr)
	}

	s.log.Infof(ctx, "sale created id=%s customer=%s total=%s took=%s",
		sale.ID, sale.CustomerID, sale.TotalAmount, time.Since(start))
	return sale, nil
}

// GetSale — получить продажу: сначала из кэша, при промахе — из БД с записью в кэш.
func (s *SaleService) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	if sale, found := s.cache.Get(ctx, id); found {
		s.log.Infof(ctx, "cache hit for sale=%s", id)
		return sale, nil
	}
	s.log.Infof(ctx, "cache miss for sale=%s", id)

	start := time.Now()
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, sale); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed sale=%s err=%v", id, setErr)
	}

	s.log.Infof(ctx, "db fetch sale=%s took=%s", id, time.Since(start))
	return sale, nil
}

// PaymentInfo — данные экрана оплаты по актуальному состоянию продажи.
func (s *SaleService) PaymentInfo(ctx context.Context, id string) (*ports.PaymentInfo, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	strat, err := payment.ForMethod(sale.PaymentMethod)
	if err != nil {
		return nil, err
	}
	amount, err := strat.DisplayAmount(sale.TotalAmount, s.payCfg)
	if err != nil {
		s.log.Errorf(ctx, "display amount failed sale=%s err=%v", id, err)
		return nil, fmt.Errorf("payment info: %w", err)
	}

	return &ports.PaymentInfo{
		Method:         sale.PaymentMethod,
		Amount:         amount,
		ManualEvidence: strat.RequiresManualEvidence(),
		Details:        strat.Details(s.payCfg),
	}, nil
}

// SubmitPayment — покупатель подтверждает оплату.
func (s *SaleService) SubmitPayment(ctx context.Context, id string, role domain.ActorRole, reference string) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrSubmitPayment, func(sale *domain.Sale) error {
		return sale.SubmitPayment(role, reference)
	})
}

// ConfirmGatewayPayment — подтверждение от платёжного шлюза (HTTP-return или
// событие из брокера). Идемпотентность обеспечивает машина состояний:
// повторное событие по уже подтверждённой продаже даст InvalidTransition.
func (s *SaleService) ConfirmGatewayPayment(ctx context.Context, id, transactionRef string) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrConfirmGateway, func(sale *domain.Sale) error {
		return sale.ConfirmGatewayPayment(transactionRef)
	})
}

// ChangePaymentMethod — смена способа оплаты до подтверждения.
func (s *SaleService) ChangePaymentMethod(ctx context.Context, id string, role domain.ActorRole, method domain.PaymentMethod) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrChangeMethod, func(sale *domain.Sale) error {
		return sale.ChangePaymentMethod(role, method)
	})
}

// Approve — админ подтверждает оплату.
func (s *SaleService) Approve(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrApprove, func(sale *domain.Sale) error {
		return sale.Approve(role)
	})
}

// Reject — админ отклоняет оплату (резерв вернёт хранилище).
func (s *SaleService) Reject(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrReject, func(sale *domain.Sale) error {
		return sale.Reject(role)
	})
}

// Dispatch — отгрузка: SHIP → SHIPPED с кодом трекинга, PICKUP → DELIVERED.
func (s *SaleService) Dispatch(ctx context.Context, id string, role domain.ActorRole, trackingCode string, pickupConfirmed bool) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrDispatch, func(sale *domain.Sale) error {
		return sale.Dispatch(role, trackingCode, pickupConfirmed)
	})
}

// MarkDelivered — подтверждение доставки.
func (s *SaleService) MarkDelivered(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrMarkDelivered, func(sale *domain.Sale) error {
		return sale.MarkDelivered(role)
	})
}

// Cancel — отмена покупателем или админом.
func (s *SaleService) Cancel(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	return s.transition(ctx, id, domain.TrCancel, func(sale *domain.Sale) error {
		return sale.Cancel(role)
	})
}

// SalesByCustomer — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *SaleService) SalesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error) {
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}

// ReviewQueue — админская выборка продаж по очереди проверки.
func (s *SaleService) ReviewQueue(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error) {
	return s.repo.ListReview(ctx, f, limit, offset)
}

// WarmUpCache — прогрев кэша последними N продажами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *SaleService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d sales in %s", len(list), time.Since(start))
	return nil
}

// transition — общий каркас перехода: атомарное применение в хранилище,
// метрика по имени перехода и запись результата в кэш.
func (s *SaleService) transition(ctx context.Context, id, name string, apply func(*domain.Sale) error) (*domain.Sale, error) {
	start := time.Now()
	sale, err := s.repo.Transition(ctx, id, apply)
	if err != nil {
		result := "error"
		if domain.IsBusiness(err) {
			result = "rejected"
		}
		metrics.SaleTransitions.WithLabelValues(name, result).Inc()
		s.log.Warnf(ctx, "transition %s failed sale=%s err=%v", name, id, err)
		return nil, err
	}
	metrics.SaleTransitions.WithLabelValues(name, "ok").Inc()

	if setErr := s.cache.Set(ctx, sale); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed sale=%s err=%v", id, setErr)
	}

	s.log.Infof(ctx, "transition %s sale=%s status=%s took=%s", name, id, sale.Status, time.Since(start))
	return sale, nil
}
