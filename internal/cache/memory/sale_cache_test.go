package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/shopspring/decimal"
)

func newSale(id string) *domain.Sale {
	return &domain.Sale{
		ID:     id,
		Status: domain.StatusPendingPayment,
		Lines:  []domain.Line{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewLRUCacheTTL(2, 5*time.Minute)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, "id-1"); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	_ = c.Set(ctx, newSale("id-1"))
	got, ok := c.Get(ctx, "id-1")
	if !ok || got.ID != "id-1" {
		t.Fatalf("expected hit for id-1")
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewLRUCacheTTL(2, 100*time.Millisecond)
	ctx := context.Background()

	_ = c.Set(ctx, newSale("ttl"))
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	time.Sleep(150 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCacheTTL(2, 0) // 0 = без TTL
	ctx := context.Background()

	_ = c.Set(ctx, newSale("A"))
	_ = c.Set(ctx, newSale("B"))
	// A сделать «свежим»
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// Добавляем C — вытеснит B (самый старый)
	_ = c.Set(ctx, newSale("C"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.ll.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewLRUCacheTTL(1, 0)
	ctx := context.Background()
	_ = c.Set(ctx, newSale("Z"))

	// меняем то, что вернул Get — не должно влиять на кэш
	s1, _ := c.Get(ctx, "Z")
	s1.Status = domain.StatusCancelled
	s1.Lines[0].Quantity = 99

	s2, _ := c.Get(ctx, "Z")
	if s2.Status != domain.StatusPendingPayment || s2.Lines[0].Quantity != 1 {
		t.Fatalf("cache should return clones, not pointers to internal value")
	}
}

func TestWarmUp_RespectsContext(t *testing.T) {
	c := NewLRUCacheTTL(10, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.WarmUp(ctx, []*domain.Sale{newSale("W")})
	if err == nil {
		t.Fatalf("expected context error")
	}
}
