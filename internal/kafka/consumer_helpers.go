package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/pkg/metrics"
)

// gatewayEvent — событие вебхук-приёмника платёжного шлюза.
type gatewayEvent struct {
	SaleID      string `json:"sale_id"`
	Transaction string `json:"transaction"`
	Status      string `json:"status"`
}

// eventStatusApproved — единственный статус, который переводит продажу;
// отказные события шлюза фиксируются в логе и пропускаются: продажа
// остаётся в PENDING_PAYMENT и покупатель может сменить способ оплаты.
const eventStatusApproved = "APPROVED"

// handleEvent обрабатывает одно событие и определяет нужно ли коммитить оффсет.
func (c *Consumer) handleEvent(ctx context.Context, topic string, msg *kafka.Message) bool {
	var ev gatewayEvent
	dec := json.NewDecoder(bytes.NewReader(msg.Value))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		metrics.GatewayEventsFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid event offset=%d: %v (skipped)", msg.Offset, err)
		return true
	}

	if ev.Status != eventStatusApproved {
		c.log.Infof(ctx, "gateway event skipped sale=%s status=%s offset=%d", ev.SaleID, ev.Status, msg.Offset)
		return true
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	_, err := c.service.ConfirmGatewayPayment(ctxTimeout, ev.SaleID, ev.Transaction)
	cancel()

	switch {
	case err == nil:
		// Успешная обработка: фиксируем метрику и коммитим оффсет
		metrics.GatewayEventsProcessed.WithLabelValues(topic).Inc()
		return true
	case domain.IsBusiness(err):
		// Бизнес-отказ (дубликат, не та продажа, не тот способ оплаты):
		// логируем и коммитим, чтобы не обрабатывать повторно
		metrics.GatewayEventsFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "event rejected sale=%s offset=%d: %v (skipped)", ev.SaleID, msg.Offset, err)
		return true
	default:
		// Временная ошибка (БД/сеть/таймаут): НЕ коммитим - будем обрабатывать повторно
		metrics.GatewayEventsFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "event process failed sale=%s offset=%d: %v (will retry without commit)", ev.SaleID, msg.Offset, err)
		return false
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная. Баланс между стабильностью и случайностью.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

// minDuration возвращает минимальное время из двух.
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
