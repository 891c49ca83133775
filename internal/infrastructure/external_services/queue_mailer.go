package external_services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
)

// EmailJob is the message carried on the mail queue. Either Template+Data or
// Subject+Text is set.
type EmailJob struct {
	To       string                    `json:"to"`
	Subject  string                    `json:"subject,omitempty"`
	Text     string                    `json:"text,omitempty"`
	Template contract.NotificationKind `json:"template,omitempty"`
	Data     map[string]any            `json:"data,omitempty"`
}

// Resolve returns the final subject and body of the job.
func (j EmailJob) Resolve() (string, string, error) {
	if j.Template == "" {
		if j.Subject == "" && j.Text == "" {
			return "", "", fmt.Errorf("email job for %s has neither template nor content", j.To)
		}
		return j.Subject, j.Text, nil
	}
	return Render(j.Template, j.Data)
}

// JSONPublisher publishes a JSON body on a queue.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RabbitPublisher wraps an AMQP channel bound to a single durable queue.
type RabbitPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := DeclareEmailQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, Queue: queue}, nil
}

// DeclareEmailQueue declares the durable mail queue. Shared with the worker.
func DeclareEmailQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return q, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}

// QueueNotifier defers rendering and delivery to cmd/email_worker.
type QueueNotifier struct {
	publisher JSONPublisher
}

func NewQueueNotifier(publisher JSONPublisher) *QueueNotifier {
	return &QueueNotifier{publisher: publisher}
}

var _ contract.INotifier = (*QueueNotifier)(nil)

func (n *QueueNotifier) Send(ctx context.Context, to string, kind contract.NotificationKind, data map[string]any) error {
	if _, ok := templates[kind]; !ok {
		return fmt.Errorf("unknown notification kind %q", kind)
	}
	job := EmailJob{To: to, Template: kind, Data: data}
	if err := n.publisher.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue %s email for %s: %w", kind, to, err)
	}
	return nil
}
