package queue

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers enrollment events.
type Publisher interface {
	Publish(ctx context.Context, ev EnrollmentEvent) error
}

// AMQPPublisher publishes each event over a short-lived connection to
// RabbitMQ. Messages are persistent and the queue is declared durable.
type AMQPPublisher struct {
	url   string
	queue string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: QueueEnrollmentEvents}
}

// Publish delivers ev. The whole exchange with the broker, dial and
// handshake included, is bounded by ctx.
func (p *AMQPPublisher) Publish(ctx context.Context, ev EnrollmentEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      contextDialer(ctx),
	})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	// closing the connection unblocks channel and declare RPCs
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         string(ev.Type),
			Body:         body,
		})
}

// contextDialer dials under ctx and carries its deadline into the AMQP
// handshake. The library clears the deadline once the connection is open.
func contextDialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		conn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

// Noop discards events. Used when EVENTS_ENABLED=false.
type Noop struct{}

func (Noop) Publish(context.Context, EnrollmentEvent) error { return nil }

// Recorder keeps published events in memory for tests.
type Recorder struct {
	mu     sync.Mutex
	events []EnrollmentEvent
	Err    error
}

func (r *Recorder) Publish(_ context.Context, ev EnrollmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []EnrollmentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EnrollmentEvent(nil), r.events...)
}
