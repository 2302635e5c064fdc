package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Publisher is the slice of *amqp.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes each notification as a JSON message on a queue.
// Publish errors are logged and dropped.
type AMQPNotifier struct {
	mu    sync.Mutex
	pub   Publisher
	queue string
	log   *zap.Logger
}

// NewAMQPNotifier declares a durable queue on ch and publishes to it.
func NewAMQPNotifier(ch *amqp.Channel, queue string, log *zap.Logger) (*AMQPNotifier, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return NewAMQPNotifierWith(ch, q.Name, log), nil
}

func NewAMQPNotifierWith(pub Publisher, queue string, log *zap.Logger) *AMQPNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPNotifier{pub: pub, queue: queue, log: log}
}

func (a *AMQPNotifier) Notify(ctx context.Context, n Notification) {
	body, err := json.Marshal(n)
	if err != nil {
		a.log.Error("marshal notification", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	a.mu.Lock()
	defer a.mu.Unlock()

	err = a.pub.PublishWithContext(ctx, "", a.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   n.At,
		Type:        string(n.Kind),
		Body:        body,
	})
	if err != nil {
		a.log.Warn("publish notification failed", zap.Error(err), zap.String("queue", a.queue))
	}
}
