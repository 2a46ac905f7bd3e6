package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CouponUsageQueue receives one event per coupon-usage recording attempt.
// Usage bookkeeping is best-effort relative to the invoice write; these
// events are how consumers observe drift when a recording fails.
const CouponUsageQueue = "coupon_usage_events"

// CouponUsageEvent describes one attempt to record coupon usage after an
// invoice write. Recorded=false means the usage append failed and the
// coupon's log is now behind the invoice.
type CouponUsageEvent struct {
	OrgID           int       `json:"org_id"`
	CouponID        uuid.UUID `json:"coupon_id"`
	InvoiceID       uuid.UUID `json:"invoice_id"`
	DiscountApplied float64   `json:"discount_applied"`
	Recorded        bool      `json:"recorded"`
	Error           string    `json:"error,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// CouponUsagePublisher publishes coupon usage events to RabbitMQ.
type CouponUsagePublisher struct {
	conn *RabbitMQConnection
}

func NewCouponUsagePublisher(conn *RabbitMQConnection) *CouponUsagePublisher {
	return &CouponUsagePublisher{conn: conn}
}

// Publish sends a coupon usage event to the coupon_usage_events queue.
func (p *CouponUsagePublisher) Publish(ctx context.Context, evt CouponUsageEvent) error {
	_, err := p.conn.Channel.QueueDeclare(
		CouponUsageQueue, // queue name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal coupon usage event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",               // exchange
		CouponUsageQueue, // routing key (queue name)
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish coupon usage event: %w", err)
	}

	slog.Info("coupon usage event published",
		"queue", CouponUsageQueue,
		"coupon_id", evt.CouponID,
		"invoice_id", evt.InvoiceID,
		"recorded", evt.Recorded,
	)

	return nil
}
