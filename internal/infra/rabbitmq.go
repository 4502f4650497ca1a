// README: RabbitMQ connection with retry, used by the notification publisher.
package infra

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPConn wraps a RabbitMQ connection and channel with reconnect support.
type AMQPConn struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQP dials RabbitMQ with a short retry loop and opens a channel.
func NewAMQP(url string) (*AMQPConn, error) {
	c := &AMQPConn{url: url}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *AMQPConn) connect() error {
	const maxRetries = 5
	var err error
	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				return nil
			}
			_ = c.conn.Close()
		}
		if i < maxRetries-1 {
			time.Sleep(time.Duration(i+1) * 2 * time.Second)
		}
	}
	return fmt.Errorf("connect rabbitmq after %d attempts: %w", maxRetries, err)
}

func (c *AMQPConn) Channel() *amqp.Channel {
	return c.channel
}

func (c *AMQPConn) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

func (c *AMQPConn) Reconnect() error {
	_ = c.Close()
	return c.connect()
}

func (c *AMQPConn) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
