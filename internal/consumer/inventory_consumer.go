package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/service"
	"github.com/festapass/pricing-service/pkg/kafka"
	"github.com/festapass/pricing-service/pkg/logger"
	"github.com/festapass/pricing-service/pkg/retry"
)

// recordSource is the consumer-group surface the inventory consumer needs
type recordSource interface {
	Poll(ctx context.Context) ([]*kafka.Record, error)
	CommitRecords(ctx context.Context, records ...*kafka.Record) error
	Close()
}

// InventoryConsumer consumes inventory events from Kafka and keeps the
// availability signals current so quotes clamp against fresh stock.
type InventoryConsumer struct {
	consumer     recordSource
	availService service.AvailabilityService
	logger       *logger.Logger
	config       *InventoryConsumerConfig
	retryCfg     *retry.Config
	wg           sync.WaitGroup
	stopCh       chan struct{}
	mu           sync.RWMutex
	running      bool
}

// InventoryConsumerConfig contains configuration for the inventory consumer
type InventoryConsumerConfig struct {
	Brokers       []string
	GroupID       string
	Topic         string
	ClientID      string
	MaxRetries    int
	RetryInterval time.Duration
	WorkerCount   int
}

// DefaultInventoryConsumerConfig returns default configuration
func DefaultInventoryConsumerConfig() *InventoryConsumerConfig {
	return &InventoryConsumerConfig{
		Brokers:       []string{"localhost:9092"},
		GroupID:       "pricing-service",
		Topic:         "inventory-events",
		ClientID:      "pricing-service-consumer",
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		WorkerCount:   4,
	}
}

// NewInventoryConsumer creates a new inventory consumer
func NewInventoryConsumer(
	ctx context.Context,
	cfg *InventoryConsumerConfig,
	availService service.AvailabilityService,
	log *logger.Logger,
) (*InventoryConsumer, error) {
	if cfg == nil {
		cfg = DefaultInventoryConsumerConfig()
	}

	consumer, err := kafka.NewConsumer(ctx, &kafka.ConsumerConfig{
		Brokers:       cfg.Brokers,
		GroupID:       cfg.GroupID,
		Topics:        []string{cfg.Topic},
		ClientID:      cfg.ClientID,
		MaxRetries:    cfg.MaxRetries,
		RetryInterval: cfg.RetryInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	retryCfg.InitialInterval = cfg.RetryInterval

	return &InventoryConsumer{
		consumer:     consumer,
		availService: availService,
		logger:       log,
		config:       cfg,
		retryCfg:     retryCfg,
		stopCh:       make(chan struct{}),
	}, nil
}

// Start starts the consumer loop and its workers
func (c *InventoryConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("consumer is already running")
	}
	c.running = true
	c.mu.Unlock()

	c.logger.Info("Starting inventory consumer",
		zap.String("topic", c.config.Topic),
		zap.String("group", c.config.GroupID))

	recordsCh := make(chan *kafka.Record, c.config.WorkerCount*10)

	for i := 0; i < c.config.WorkerCount; i++ {
		c.wg.Add(1)
		go c.worker(ctx, i, recordsCh)
	}

	c.wg.Add(1)
	go c.poll(ctx, recordsCh)

	return nil
}

// poll continuously polls for new records and hands them to the workers.
// Offsets are committed per record after processing, not here.
func (c *InventoryConsumer) poll(ctx context.Context, recordsCh chan<- *kafka.Record) {
	defer c.wg.Done()
	defer close(recordsCh)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Consumer context cancelled, stopping poll")
			return
		case <-c.stopCh:
			c.logger.Info("Consumer stop signal received, stopping poll")
			return
		default:
			records, err := c.consumer.Poll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Failed to poll records", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			for _, record := range records {
				select {
				case recordsCh <- record:
				case <-ctx.Done():
					return
				case <-c.stopCh:
					return
				}
			}
		}
	}
}

// worker processes records from the channel
func (c *InventoryConsumer) worker(ctx context.Context, id int, recordsCh <-chan *kafka.Record) {
	defer c.wg.Done()

	c.logger.Debug("Worker started", zap.Int("worker", id))

	for record := range recordsCh {
		if err := c.processRecord(ctx, record); err != nil {
			c.logger.Error("Failed to process record",
				zap.Int("worker", id),
				zap.Int64("offset", record.Offset),
				zap.Error(err))
		}
	}

	c.logger.Debug("Worker stopped", zap.Int("worker", id))
}

// processRecord applies one inventory event and commits its offset once it
// has been handled. Malformed and invalid messages are dropped (and
// committed); transient store failures retry with backoff and leave the
// offset uncommitted so the record is redelivered on restart.
func (c *InventoryConsumer) processRecord(ctx context.Context, record *kafka.Record) error {
	var event dto.InventoryEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		c.logger.Warn("Dropping malformed inventory event",
			zap.Int64("offset", record.Offset),
			zap.Error(err))
		return c.commitRecord(ctx, record)
	}

	c.logger.Debug("Received inventory event",
		zap.String("type", event.Type),
		zap.String("event_id", event.EventID))

	err := retry.Do(ctx, c.retryCfg, func(ctx context.Context) error {
		err := c.availService.ApplyInventoryEvent(ctx, &event)
		if errors.Is(err, service.ErrValidation) {
			return retry.Permanent(err)
		}
		return err
	})
	if errors.Is(err, service.ErrValidation) {
		c.logger.Warn("Dropping invalid inventory event",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return c.commitRecord(ctx, record)
	}
	if err != nil {
		return err
	}
	return c.commitRecord(ctx, record)
}

func (c *InventoryConsumer) commitRecord(ctx context.Context, record *kafka.Record) error {
	if err := c.consumer.CommitRecords(ctx, record); err != nil {
		return fmt.Errorf("failed to commit offset %d: %w", record.Offset, err)
	}
	return nil
}

// Stop stops the consumer and waits for in-flight records to drain
func (c *InventoryConsumer) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	c.mu.Unlock()

	c.logger.Info("Stopping inventory consumer")

	close(c.stopCh)
	c.wg.Wait()
	c.consumer.Close()

	c.logger.Info("Inventory consumer stopped")
	return nil
}

// IsRunning returns whether the consumer is running
func (c *InventoryConsumer) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}
