package service

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/model"
    "github.com/iliyamo/tutor-marketplace/internal/queue"
)

// AMQPPublisher publishes notifications to a durable RabbitMQ queue. The
// connection is opened lazily and re-dialled after the broker closes it.
type AMQPPublisher struct {
    url       string
    queueName string
    log       *zap.Logger

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

func NewAMQPPublisher(url, queueName string, log *zap.Logger) *AMQPPublisher {
    return &AMQPPublisher{url: url, queueName: queueName, log: log}
}

// Notify publishes n as a persistent JSON message.
func (p *AMQPPublisher) Notify(ctx context.Context, n model.Notification) error {
    body, err := json.Marshal(queue.NewNotificationEvent(n))
    if err != nil {
        return fmt.Errorf("marshal notification: %w", err)
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    ch, err := p.channelLocked()
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, pub); err != nil {
        p.resetLocked()
        return fmt.Errorf("publish: %w", err)
    }
    return nil
}

func (p *AMQPPublisher) channelLocked() (*amqp.Channel, error) {
    if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.resetLocked()
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, fmt.Errorf("dial rabbitmq: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("open channel: %w", err)
    }
    if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, fmt.Errorf("declare queue: %w", err)
    }
    p.conn, p.ch = conn, ch
    p.log.Debug("rabbitmq publisher connected", zap.String("queue", p.queueName))
    return ch, nil
}

func (p *AMQPPublisher) resetLocked() {
    if p.ch != nil {
        _ = p.ch.Close()
    }
    if p.conn != nil {
        _ = p.conn.Close()
    }
    p.ch, p.conn = nil, nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.resetLocked()
    return nil
}
