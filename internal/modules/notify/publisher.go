// README: RabbitMQ notification publisher for order events.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tiffin/internal/infra"
	"tiffin/internal/modules/order"
)

const (
	ordersExchange    = "tiffin.orders"
	createdRoutingKey = "order.created"
	statusRoutingKey  = "order.status"
)

// Publisher pushes order events onto a topic exchange for the email and
// push-notification workers. It implements order.Notifier; callers treat
// every publish as best-effort.
type Publisher struct {
	conn *infra.AMQPConn
	log  *slog.Logger
}

func NewPublisher(conn *infra.AMQPConn, log *slog.Logger) (*Publisher, error) {
	p := &Publisher{conn: conn, log: log}
	if err := p.declareExchange(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) declareExchange() error {
	err := p.conn.Channel().ExchangeDeclare(
		ordersExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare %s exchange: %w", ordersExchange, err)
	}
	return nil
}

func (p *Publisher) OrderCreated(ctx context.Context, o *order.Order, items []order.OrderItem, hotelEmail string) error {
	lines := make([]orderLine, len(items))
	for i, it := range items {
		lines[i] = orderLine{
			MenuItemID: string(it.MenuItemID),
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.Amount,
			Subtotal:   it.Subtotal.Amount,
		}
	}
	return p.publish(ctx, createdRoutingKey, orderCreatedMessage{
		OrderNumber:     o.Number,
		UserID:          string(o.UserID),
		HotelID:         string(o.HotelID),
		HotelEmail:      hotelEmail,
		DeliveryAddress: o.DeliveryAddress,
		TotalAmount:     o.TotalAmount.Amount,
		Currency:        o.TotalAmount.Currency,
		PaymentMethod:   string(o.PaymentMethod),
		Items:           lines,
		CreatedAt:       o.CreatedAt,
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, statusRoutingKey, statusChangedMessage{
		OrderNumber:   o.Number,
		UserID:        string(o.UserID),
		HotelID:       string(o.HotelID),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		ChangedAt:     o.UpdatedAt,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, message any) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
		if err := p.declareExchange(); err != nil {
			return err
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		ordersExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("notification published", "routing_key", routingKey, "size", len(body))
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
