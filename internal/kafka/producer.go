package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
)

const publishTimeout = 10 * time.Second

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

// Producer writes JSON records to a single topic.
type Producer struct {
	topic  string
	client *kgo.Client
	log    *logrus.Entry

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewProducer(brokers []string, topic string, log *logrus.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka: empty topic")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	entry := log.WithField("topic", topic)
	entry.Info("kafka producer initialized")
	return &Producer{topic: topic, client: client, log: entry}, nil
}

// Close waits for in-flight async publishes and closes the client. Async
// publishes requested after Close are dropped.
func (p *Producer) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	p.client.Close()
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	p.log.WithField("key", string(key)).Debug("published")
	return nil
}

// PublishObjectAsync marshals obj to JSON and publishes it in the
// background. Failures are logged and otherwise ignored.
func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	value, err := json.Marshal(obj)
	if err != nil {
		p.log.WithError(err).Error("marshal kafka record")
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.WithField("key", string(key)).Warn("producer closed, record dropped")
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if err := p.Publish(context.Background(), key, value); err != nil {
			p.log.WithError(err).WithField("key", string(key)).Warn("kafka async publish failed")
		}
	}()
}
