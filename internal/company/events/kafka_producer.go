// Package events publishes company lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/bizmetrics/internal/company/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyAdded EventType = "company_added"
)

// queueSize bounds the number of events waiting to be written.
const queueSize = 1000

type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	Company    *models.Company `json:"company"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// NewProducer returns a producer writing to topic. Brokers are contacted
// lazily on the first write.
func NewProducer(brokers []string, logger *zap.Logger, topic string) *Producer {
	p := newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Topic:                  topic,
		AllowAutoTopicCreation: true,
	}, logger)
	go p.eventLoop()
	return p
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	return &Producer{
		writer:    writer,
		events:    make(chan Event, queueSize),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// EnsureTopic creates topic on the first reachable broker, retrying with
// exponential backoff until ctx is done or attempts run out. A topic that
// already exists is not an error.
func EnsureTopic(ctx context.Context, brokers []string, topic string, logger *zap.Logger) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	return backoff.Retry(func() error {
		conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			logger.Warn("kafka not reachable yet", zap.String("broker", brokers[0]), zap.Error(err))
			return err
		}
		defer conn.Close()

		err = conn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		})
		if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
			return err
		}
		return nil
	}, policy)
}

// Produce queues an event without blocking. Events are dropped with a
// warning when the queue is full.
func (p *Producer) Produce(eventType EventType, company *models.Company) {
	event := Event{
		ID:         uuid.New(),
		Type:       eventType,
		Company:    company,
		OccurredAt: time.Now().UTC(),
	}
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.Int("company_id", company.ID),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

// drain writes the events still queued at close time.
func (p *Producer) drain() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		default:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.Int("company_id", event.Company.ID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.Company.ID)),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.Int("company_id", event.Company.ID),
		)
		return
	}
}

// Close stops the event loop after writing the queued events, then closes
// the writer. Produce must not be called after Close.
func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NopProducer discards events. It stands in for Kafka when no brokers are
// configured.
type NopProducer struct {
	Logger *zap.Logger
}

func (n NopProducer) Produce(eventType EventType, company *models.Company) {
	if n.Logger != nil {
		n.Logger.Debug("event discarded",
			zap.String("event_type", string(eventType)),
			zap.Int("company_id", company.ID),
		)
	}
}
