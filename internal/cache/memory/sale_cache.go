package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
)

var _ ports.SaleCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        string
	sale      *domain.Sale
	expiresAt time.Time
}

// LRUCacheTTL — кэш чтения продаж: LRU-вытеснение + TTL.
// Обслуживает только GET-путь; переходы всегда идут в хранилище и после
// фиксации дописывают кэш свежим состоянием, поэтому наблюдатель
// (поллер) быстро сходится к авторитетному статусу.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id string) (*domain.Sale, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.sale.Clone(), true
}

func (c *LRUCacheTTL) Set(_ context.Context, sale *domain.Sale) error {
	if sale == nil || sale.ID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[sale.ID]; ok {
		ent := elem.Value.(*entry)
		ent.sale = sale.Clone()
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        sale.ID,
		sale:      sale.Clone(),
		expiresAt: c.expiryFrom(now),
	})
	c.index[sale.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *LRUCacheTTL) WarmUp(ctx context.Context, sales []*domain.Sale) error {
	for _, sale := range sales {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.Set(ctx, sale); err != nil {
			return err
		}
	}
	return nil
}
