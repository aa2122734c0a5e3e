package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.SaleRepository = (*SaleRepository)(nil)

// SaleRepository — хранилище продаж на Postgres (pgxpool).
// Остатки товаров и продажи изменяются в одной транзакции: резерв при
// создании, возврат при переходе в REJECTED/CANCELLED.
type SaleRepository struct {
	pool *pgxpool.Pool
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository { return &SaleRepository{pool: pool} }

// Create — транзакционно: резерв остатка по всем строкам, затем вставка
// продажи и строк (COPY). Любая ошибка откатывает всё целиком.
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if sale == nil || sale.ID == "" {
		return errors.New("sale is empty or id is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	if err := reserveStock(ctx, tx, sale.Lines); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO sales (
			id, customer_id, status, payment_method, delivery_type,
			total_amount, tracking_code, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		sale.ID, sale.CustomerID, string(sale.Status), string(sale.PaymentMethod), string(sale.DeliveryType),
		sale.TotalAmount, sale.TrackingCode, sale.Version, sale.CreatedAt, sale.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	if err := copyLines(ctx, tx, sale.ID, sale.Lines); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByID — продажа со строками; domain.ErrNotFound, если записи нет.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	return getSale(ctx, r.pool, id, false)
}

// Transition — атомарный переход:
//  1. SELECT ... FOR UPDATE — сериализация конкурентов на строке продажи;
//  2. apply по актуальному состоянию (проигравший гонку получает ошибку
//     доменного правила, а не затирает победителя);
//  3. UPDATE с предикатом по version — страховка оптимистической блокировки;
//  4. возврат остатка в той же транзакции при уходе в REJECTED/CANCELLED.
func (r *SaleRepository) Transition(ctx context.Context, id string, apply func(*domain.Sale) error) (*domain.Sale, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, tx)

	sale, err := getSale(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	prevStatus := sale.Status
	prevVersion := sale.Version

	if err := apply(sale); err != nil {
		return nil, err
	}
	sale.Version++

	tag, err := tx.Exec(ctx, `
		UPDATE sales SET
			status = $2, payment_method = $3, total_amount = $4,
			evidence_kind = $5, evidence_ref = $6, evidence_at = $7,
			tracking_code = $8, version = $9, updated_at = $10
		WHERE id = $1 AND version = $11
	`,
		sale.ID, string(sale.Status), string(sale.PaymentMethod), sale.TotalAmount,
		evidenceKind(sale.Evidence), evidenceRef(sale.Evidence), evidenceAt(sale.Evidence),
		sale.TrackingCode, sale.Version, sale.UpdatedAt, prevVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrConcurrencyConflict
	}

	if domain.ReleasesStock(sale.Status) && !domain.ReleasesStock(prevStatus) {
		if err := releaseStock(ctx, tx, sale.Lines); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return sale, nil
}

// ListByCustomer — постраничный список продаж клиента, новые первыми.
func (r *SaleRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.listSales(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
}

// ListReview — админская очередь: статусы очереди + вторичные фильтры.
// Только SELECT — очередь не мутирует продажи.
func (r *SaleRepository) ListReview(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if sts := f.Queue.Statuses(); sts != nil {
		vals := make([]string, 0, len(sts))
		for _, st := range sts {
			vals = append(vals, string(st))
		}
		where = append(where, "status = ANY("+arg(vals)+"::text[])")
	}
	if f.Method != "" {
		where = append(where, "payment_method = "+arg(string(f.Method)))
	}
	if f.Month != 0 {
		where = append(where, "EXTRACT(MONTH FROM created_at) = "+arg(f.Month))
	}
	if f.Year != 0 {
		where = append(where, "EXTRACT(YEAR FROM created_at) = "+arg(f.Year))
	}

	q := "SELECT " + saleColumns + " FROM sales"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	return r.listSales(ctx, q, args...)
}

// LastN — последние N продаж (прогрев кэша).
func (r *SaleRepository) LastN(ctx context.Context, n int) ([]*domain.Sale, error) {
	if n <= 0 {
		return nil, nil
	}
	return r.listSales(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, n)
}

// ---- чтение ----

const saleColumns = `id, customer_id, status, payment_method, delivery_type,
	total_amount, evidence_kind, evidence_ref, evidence_at, tracking_code,
	version, created_at, updated_at`

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getSale(ctx context.Context, q queryer, id string, forUpdate bool) (*domain.Sale, error) {
	query := "SELECT " + saleColumns + " FROM sales WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	sale, err := scanSale(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select sale: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT product_id, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1
		ORDER BY line_no
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		sale.Lines = append(sale.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lines rows: %w", err)
	}
	return sale, nil
}

// listSales — страница продаж + дочитывание строк одним запросом
// (ANY по id страницы), склейка в памяти с сохранением порядка.
func (r *SaleRepository) listSales(ctx context.Context, query string, args ...any) ([]*domain.Sale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer rows.Close()

	var (
		sales []*domain.Sale
		byID  = map[string]*domain.Sale{}
		ids   []string
	)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
		byID[sale.ID] = sale
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales rows: %w", err)
	}
	if len(sales) == 0 {
		return []*domain.Sale{}, nil
	}

	lRows, err := r.pool.Query(ctx, `
		SELECT sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_lines
		WHERE sale_id = ANY($1::text[])
		ORDER BY sale_id, line_no
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}
	defer lRows.Close()

	for lRows.Next() {
		var (
			saleID string
			l      domain.Line
		)
		if err := lRows.Scan(&saleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if s := byID[saleID]; s != nil {
			s.Lines = append(s.Lines, l)
		}
	}
	if err := lRows.Err(); err != nil {
		return nil, fmt.Errorf("lines rows: %w", err)
	}
	return sales, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		s                      domain.Sale
		status, method, dlv    string
		evKind, evRef          *string
		evAt                   *time.Time
		tracking               *string
	)
	if err := row.Scan(
		&s.ID, &s.CustomerID, &status, &method, &dlv,
		&s.TotalAmount, &evKind, &evRef, &evAt, &tracking,
		&s.Version, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Status = domain.Status(status)
	s.PaymentMethod = domain.PaymentMethod(method)
	s.DeliveryType = domain.DeliveryType(dlv)
	if tracking != nil {
		s.TrackingCode = *tracking
	}
	if evKind != nil && evRef != nil {
		ev := domain.Evidence{Kind: domain.EvidenceKind(*evKind), Reference: *evRef}
		if evAt != nil {
			ev.AddedAt = *evAt
		}
		s.Evidence = &ev
	}
	return &s, nil
}

// ---- запись ----

// copyLines — вставка строк через COPY; быстрее, чем INSERT в цикле.
func copyLines(ctx context.Context, tx pgx.Tx, saleID string, lines []domain.Line) error {
	rows := make([][]any, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []any{saleID, i, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"sale_lines"},
		[]string{"sale_id", "line_no", "product_id", "quantity", "unit_price", "subtotal"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy lines: %w", err)
	}
	return nil
}

func evidenceKind(ev *domain.Evidence) *string {
	if ev == nil {
		return nil
	}
	k := string(ev.Kind)
	return &k
}

func evidenceRef(ev *domain.Evidence) *string {
	if ev == nil {
		return nil
	}
	return &ev.Reference
}

func evidenceAt(ev *domain.Evidence) *time.Time {
	if ev == nil {
		return nil
	}
	return &ev.AddedAt
}

func rollback(ctx context.Context, tx pgx.Tx) {
	// У завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
	if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		_ = rbErr
	}
}

// ---- остатки ----

// reserveStock — групповое резервирование "всё или ничего" внутри
// транзакции. Строки обрабатываются в порядке product_id — фиксированный
// порядок блокировок исключает взаимные дедлоки двух чекаутов.
// UPDATE с предикатом по остатку атомарен: два конкурентных чекаута за
// последнюю единицу не пройдут оба.
func reserveStock(ctx context.Context, tx pgx.Tx, lines []domain.Line) error {
	ordered := append([]domain.Line(nil), lines...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	for _, line := range ordered {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $2
			WHERE id = $1 AND stock <> $3 AND stock >= $2
		`, line.ProductID, line.Quantity, domain.UnlimitedStock)
		if err != nil {
			return fmt.Errorf("reserve %s: %w", line.ProductID, err)
		}
		if tag.RowsAffected() > 0 {
			continue
		}

		// Не списали: либо товара нет, либо остаток неограничен (no-op),
		// либо не хватает.
		var stock int
		err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, line.ProductID).Scan(&stock)
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.StockReservations.WithLabelValues("insufficient").Inc()
			return &domain.InsufficientStockError{ProductID: line.ProductID}
		}
		if err != nil {
			return fmt.Errorf("check stock %s: %w", line.ProductID, err)
		}
		if stock != domain.UnlimitedStock {
			metrics.StockReservations.WithLabelValues("insufficient").Inc()
			return &domain.InsufficientStockError{ProductID: line.ProductID}
		}
	}
	metrics.StockReservations.WithLabelValues("reserved").Inc()
	return nil
}

// releaseStock — возврат остатка; товары с неограниченным остатком
// не трогаем.
func releaseStock(ctx context.Context, tx pgx.Tx, lines []domain.Line) error {
	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock + $2
			WHERE id = $1 AND stock <> $3
		`, line.ProductID, line.Quantity, domain.UnlimitedStock); err != nil {
			return fmt.Errorf("release %s: %w", line.ProductID, err)
		}
	}
	metrics.StockReservations.WithLabelValues("released").Inc()
	return nil
}
