package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("event producer closed")

type KafkaProducer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

func NewKafkaProducer(brokers []string, topic string, buf int) *KafkaProducer {
	return &KafkaProducer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func ParseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Start drains the inbox in the background until Close is called.
func (p *KafkaProducer) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				log.Errorf("kafka publish %s failed: %v", string(m.Key), err)
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			log.Errorf("kafka writer close: %v", err)
		}
	}()
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, eventType string, payload any) error {
	env, err := NewEnvelope(eventType, key, payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits for buffered ones to be flushed.
func (p *KafkaProducer) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()
	})
	<-p.closeCh
}
