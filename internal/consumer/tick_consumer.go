package consumer

import (
	"context"
	"strconv"
	"time"

	v9 "github.com/redis/go-redis/v9"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	tickDomain "github.com/quantlabs/quant-analytics/internal/domain/tick"
	tickInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/redis"
)

const consumerName = "tick_consumer"

// TickConsumer drains the tick stream in batches. Each batch is persisted
// through the tick usecase and folded into the aggregator, then the stream
// entries are acked. Acks happen only after a successful flush, so a crash
// mid-batch redelivers; the tick upsert makes redelivery harmless.
type TickConsumer struct {
	redisClient redis.Client
	tickUsecase tickDomain.Usecase
	agg         *aggregator.Aggregator
	cfg         config.StreamConfig
	logger      logger.Interface

	buffer  []*tickInfra.Tick
	pending []string
}

// NewTickConsumer creates a new TickConsumer.
func NewTickConsumer(redisClient redis.Client, tickUsecase tickDomain.Usecase, agg *aggregator.Aggregator, cfg config.StreamConfig, log logger.Interface) *TickConsumer {
	return &TickConsumer{
		redisClient: redisClient,
		tickUsecase: tickUsecase,
		agg:         agg,
		cfg:         cfg,
		logger:      log,
		buffer:      make([]*tickInfra.Tick, 0, cfg.BatchSize),
	}
}

// Start runs the read loop until the context is cancelled. The consumer
// group is created on first start; rejoining an existing group is a no-op.
func (c *TickConsumer) Start(ctx context.Context) error {
	if err := c.redisClient.XGroupCreateMkStream(ctx, c.cfg.TickStream, c.cfg.ConsumerGroup, "0"); err != nil {
		return errors.TracerFromError(err)
	}

	c.logger.Info("tick consumer started", logger.Field{
		Key:   "stream",
		Value: c.cfg.TickStream,
	}, logger.Field{
		Key:   "group",
		Value: c.cfg.ConsumerGroup,
	})

	flushTimer := time.NewTimer(c.cfg.BatchTimeout)
	defer flushTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			// Drain what is buffered so a clean shutdown loses nothing.
			c.flush(context.Background())
			c.logger.Info("tick consumer stopped")
			return nil
		case <-flushTimer.C:
			c.flush(ctx)
			flushTimer.Reset(c.cfg.BatchTimeout)
		default:
			streams, err := c.redisClient.XReadGroup(ctx, &v9.XReadGroupArgs{
				Group:    c.cfg.ConsumerGroup,
				Consumer: consumerName,
				Streams:  []string{c.cfg.TickStream, ">"},
				Count:    c.cfg.ReadCount,
				Block:    c.cfg.ReadBlock,
			})
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				c.logger.Error(errors.TracerFromError(err), logger.Field{
					Key:   "action",
					Value: "read_stream",
				})
				time.Sleep(c.cfg.ReadBlock)
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					c.accept(ctx, msg)
				}
			}

			if len(c.buffer) >= c.cfg.BatchSize {
				c.flush(ctx)
				flushTimer.Reset(c.cfg.BatchTimeout)
			}
		}
	}
}

// accept parses one stream entry into the buffer. A malformed entry is
// acked immediately so it never blocks the group's pending list.
func (c *TickConsumer) accept(ctx context.Context, msg v9.XMessage) {
	t, err := parseTick(msg.Values)
	if err != nil {
		c.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "action",
			Value: "parse_tick",
		}, logger.Field{
			Key:   "message_id",
			Value: msg.ID,
		})
		if _, ackErr := c.redisClient.XAck(ctx, c.cfg.TickStream, c.cfg.ConsumerGroup, msg.ID); ackErr != nil {
			c.logger.Error(errors.TracerFromError(ackErr))
		}
		return
	}

	c.buffer = append(c.buffer, t)
	c.pending = append(c.pending, msg.ID)
}

// flush persists the buffered ticks, folds them into the aggregator and
// acks the stream entries. A batch rejected by validation is retried one
// tick at a time so a single invalid tick cannot wedge the batch; on
// transient storage failure the buffer is kept and the next flush retries.
func (c *TickConsumer) flush(ctx context.Context) {
	if len(c.buffer) == 0 {
		return
	}

	if err := c.tickUsecase.SubmitTicks(ctx, c.buffer); err != nil {
		if errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)) {
			c.flushPerTick(ctx)
			return
		}
		c.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "action",
			Value: "store_ticks",
		}, logger.Field{
			Key:   "count",
			Value: len(c.buffer),
		})
		return
	}

	for _, t := range c.buffer {
		c.fold(t)
	}

	c.ack(ctx, c.pending)

	c.logger.Debug("flushed tick batch", logger.Field{
		Key:   "count",
		Value: len(c.buffer),
	})

	c.buffer = c.buffer[:0]
	c.pending = c.pending[:0]
}

// flushPerTick salvages a batch the usecase rejected: each tick is submitted
// on its own, invalid ticks are dropped and acked with a warning, and only
// ticks hitting a transient storage failure stay buffered for the next
// flush. The drop path is explicit; an invalid tick is never stored and
// never blocks the ticks behind it.
func (c *TickConsumer) flushPerTick(ctx context.Context) {
	keptTicks := c.buffer[:0]
	keptIDs := c.pending[:0]
	ackIDs := make([]string, 0, len(c.pending))

	for i, t := range c.buffer {
		err := c.tickUsecase.SubmitTick(ctx, t)
		if err == nil {
			c.fold(t)
			ackIDs = append(ackIDs, c.pending[i])
			continue
		}

		if errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)) {
			c.logger.Warn("dropping invalid tick", logger.Field{
				Key:   "symbol",
				Value: t.Symbol,
			}, logger.Field{
				Key:   "message_id",
				Value: c.pending[i],
			}, logger.Field{
				Key:   "reason",
				Value: err.Error(),
			})
			ackIDs = append(ackIDs, c.pending[i])
			continue
		}

		c.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "action",
			Value: "store_tick",
		})
		keptTicks = append(keptTicks, t)
		keptIDs = append(keptIDs, c.pending[i])
	}

	c.ack(ctx, ackIDs)

	c.buffer = keptTicks
	c.pending = keptIDs
}

func (c *TickConsumer) fold(t *tickInfra.Tick) {
	if err := c.agg.Ingest(t); err != nil {
		// Beyond the lookback horizon. The raw tick is already stored;
		// only the bucket fold is skipped.
		c.logger.Warn("tick not folded", logger.Field{
			Key:   "symbol",
			Value: t.Symbol,
		}, logger.Field{
			Key:   "reason",
			Value: err.Error(),
		})
	}
}

func (c *TickConsumer) ack(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	if _, err := c.redisClient.XAck(ctx, c.cfg.TickStream, c.cfg.ConsumerGroup, ids...); err != nil {
		c.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "action",
			Value: "ack_ticks",
		})
	}
}

// parseTick converts one stream entry's field map into a tick. Time is unix
// milliseconds, matching what the ingester publishes.
func parseTick(values map[string]interface{}) (*tickInfra.Tick, error) {
	symbol, err := stringField(values, "symbol")
	if err != nil {
		return nil, err
	}
	ms, err := floatField(values, "time")
	if err != nil {
		return nil, err
	}
	price, err := floatField(values, "price")
	if err != nil {
		return nil, err
	}
	size, err := floatField(values, "size")
	if err != nil {
		return nil, err
	}

	return &tickInfra.Tick{
		Time:   time.UnixMilli(int64(ms)).UTC(),
		Symbol: symbol,
		Price:  price,
		Size:   size,
	}, nil
}

func stringField(values map[string]interface{}, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", errors.NewErrorDetails("missing field: "+key, string(errors.ErrTickValidation), key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.NewErrorDetails("empty field: "+key, string(errors.ErrTickValidation), key)
	}
	return s, nil
}

func floatField(values map[string]interface{}, key string) (float64, error) {
	s, err := stringField(values, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewErrorDetails("invalid field "+key+": "+s, string(errors.ErrTickValidation), key)
	}
	return f, nil
}
