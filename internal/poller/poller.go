package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
)

// Config — параметры поллера сверки.
type Config struct {
	BaseURL      string        // адрес API ядра продаж
	Interval     time.Duration // период опроса; по умолчанию 5s
	RetryInitial time.Duration // стартовая пауза после временной ошибки
	RetryMax     time.Duration // потолок backoff
}

// Poller — клиент сверки для витрины: периодически перечитывает продажу
// через GET /sales/:id, пока она не достигнет терминального статуса.
// Источник истины — ядро; поллер никогда ничего не мутирует. Интервал
// фиксированный: продажи завершаются за минуты и часы, push-уведомления
// здесь не оправдывают своей сложности.
type Poller struct {
	client       *resty.Client
	log          ports.Logger
	interval     time.Duration
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
}

func New(cfg Config, log ports.Logger) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Poller{
		client:       resty.New().SetBaseURL(cfg.BaseURL),
		log:          log,
		interval:     interval,
		retryInitial: rInit,
		retryMax:     rMax,
		jitterRand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// saleEnvelope — ответ API в едином конверте.
type saleEnvelope struct {
	Success bool         `json:"success"`
	Data    *domain.Sale `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Watch — опрашивает продажу до терминального статуса и возвращает её
// финальное состояние. Временные ошибки (сеть, 5xx) ретраятся с
// equal-jitter backoff; 404 означает, что продажи нет, и опрос прекращается.
func (p *Poller) Watch(ctx context.Context, saleID string) (*domain.Sale, error) {
	retry := p.retryInitial

	for {
		sale, err := p.fetch(ctx, saleID)
		switch {
		case err == nil && sale.Status.Terminal():
			p.log.Infof(ctx, "sale reached terminal status id=%s status=%s", saleID, sale.Status)
			return sale, nil
		case err == nil:
			p.log.Infof(ctx, "sale still open id=%s status=%s", saleID, sale.Status)
			retry = p.retryInitial
			if !p.sleep(ctx, p.interval) {
				return nil, ctx.Err()
			}
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, domain.ErrNotFound):
			return nil, err
		default:
			sleep := p.withJitterEqual(retry)
			p.log.Warnf(ctx, "poll failed id=%s: %v (will retry in %s)", saleID, err, sleep)
			if !p.sleep(ctx, sleep) {
				return nil, ctx.Err()
			}
			retry = p.nextBackoff(retry)
		}
	}
}

func (p *Poller) fetch(ctx context.Context, saleID string) (*domain.Sale, error) {
	resp, err := p.client.R().SetContext(ctx).Get("/sales/" + saleID)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var env saleEnvelope
		if uErr := json.Unmarshal(resp.Body(), &env); uErr != nil {
			return nil, fmt.Errorf("decode response: %w", uErr)
		}
		if !env.Success || env.Data == nil {
			return nil, fmt.Errorf("unexpected envelope: success=%v", env.Success)
		}
		return env.Data, nil
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		return nil, fmt.Errorf("poll request status: %d", resp.StatusCode())
	}
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (p *Poller) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > p.retryMax {
		return p.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая — случайная.
func (p *Poller) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(p.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
