package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const (
	// NotificationsExchange is the topic exchange all push events go
	// through. Client apps bind a private queue per user/restaurant id.
	NotificationsExchange = "notifications"
	// EventAuditQueue receives a copy of every pushed event for the
	// backend's own audit consumer.
	EventAuditQueue = "notification_events"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client. It connects, sets up a channel,
// declares the notifications exchange and binds the audit queue to it.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		NotificationsExchange, // name
		"topic",               // kind
		true,                  // durable
		false,                 // auto-delete
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", NotificationsExchange, err)
	}

	if _, err := ch.QueueDeclare(
		EventAuditQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", EventAuditQueue, err)
	}

	// The audit queue sees every event regardless of channel.
	if err := ch.QueueBind(EventAuditQueue, "notify.#", NotificationsExchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind %s: %w", EventAuditQueue, err)
	}

	log.Println("RabbitMQ client connected, notifications exchange ready.")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Notify pushes an event to one channel (a user or restaurant id) via the
// notifications exchange. Delivery is best-effort: there is no retry and
// no acknowledgment contract, callers just log the returned error.
func (c *Client) Notify(channelID, event string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	envelope := map[string]interface{}{
		"channel":   channelID,
		"event":     event,
		"data":      payload,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	err = c.channel.Publish(
		NotificationsExchange, // exchange
		"notify."+channelID,   // routing key: one channel per recipient
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s to channel %s: %w", event, channelID, err)
	}
	return nil
}

// ConsumeAuditEvents starts a consumer on the audit queue and hands every
// delivery to messageHandler. Handler errors nack the message back onto
// the queue.
func (c *Client) ConsumeAuditEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		EventAuditQueue, // queue
		"",              // consumer tag
		false,           // auto-ack: set to false to manually acknowledge messages
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
				}
			} else {
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
				}
			}
		}
	}()

	return nil
}
