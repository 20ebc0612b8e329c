package consumer

import (
	"context"
	"testing"
	"time"

	v9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	tickMock "github.com/quantlabs/quant-analytics/internal/domain/tick/mock"
	tickInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/interval"
	loggerMock "github.com/quantlabs/quant-analytics/pkg/logger/mock"
	redisMock "github.com/quantlabs/quant-analytics/pkg/redis/mock"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func testStreamConfig() config.StreamConfig {
	return config.StreamConfig{
		TickStream:    "ticks_stream",
		AlertStream:   "alerts_stream",
		ConsumerGroup: "ingestor_group",
		BatchSize:     2,
		BatchTimeout:  time.Second,
		ReadCount:     100,
		ReadBlock:     time.Millisecond,
	}
}

func newLoggerMock(ctrl *gomock.Controller) *loggerMock.MockInterface {
	log := loggerMock.NewMockInterface(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func newTestAggregator(t *testing.T, ctrl *gomock.Controller) *aggregator.Aggregator {
	agg, err := aggregator.New(interval.Config{
		EnabledIntervals: []string{"1s", "1m"},
		StartOffset:      2 * time.Hour,
		ShardCount:       4,
	}, newLoggerMock(ctrl))
	require.NoError(t, err)
	return agg
}

func TestParseTick(t *testing.T) {
	testCases := []struct {
		name     string
		values   map[string]interface{}
		assertFn func(t *testing.T, tick *tickInfra.Tick, err error)
	}{
		{
			name: "success",
			values: map[string]interface{}{
				"symbol": "BTCUSDT",
				"time":   "1748874600000",
				"price":  "100.5",
				"size":   "0.25",
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				require.NoError(t, err)
				assert.Equal(t, "BTCUSDT", tick.Symbol)
				assert.Equal(t, time.UnixMilli(1748874600000).UTC(), tick.Time)
				assert.Equal(t, 100.5, tick.Price)
				assert.Equal(t, 0.25, tick.Size)
			},
		},
		{
			name: "missing symbol",
			values: map[string]interface{}{
				"time":  "1748874600000",
				"price": "100.5",
				"size":  "0.25",
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "empty price",
			values: map[string]interface{}{
				"symbol": "BTCUSDT",
				"time":   "1748874600000",
				"price":  "",
				"size":   "0.25",
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "non-numeric time",
			values: map[string]interface{}{
				"symbol": "BTCUSDT",
				"time":   "yesterday",
				"price":  "100.5",
				"size":   "0.25",
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrTickValidation)))
			},
		},
		{
			name: "non-string field value",
			values: map[string]interface{}{
				"symbol": 42,
				"time":   "1748874600000",
				"price":  "100.5",
				"size":   "0.25",
			},
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick, err := parseTick(tc.values)
			tc.assertFn(t, tick, err)
		})
	}
}

func TestTickConsumer_Flush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisClient := redisMock.NewMockClient(ctrl)
	tickUc := tickMock.NewMockUsecase(ctrl)

	c := NewTickConsumer(redisClient, tickUc, newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	c.accept(context.Background(), v9.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600000",
			"price":  "100.5",
			"size":   "0.25",
		},
	})
	require.Len(t, c.buffer, 1)
	require.Len(t, c.pending, 1)

	tickUc.EXPECT().SubmitTicks(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ticks []*tickInfra.Tick) error {
			require.Len(t, ticks, 1)
			assert.Equal(t, "BTCUSDT", ticks[0].Symbol)
			return nil
		})
	redisClient.EXPECT().XAck(gomock.Any(), "ticks_stream", "ingestor_group", "1-0").Return(int64(1), nil)

	c.flush(context.Background())
	assert.Empty(t, c.buffer)
	assert.Empty(t, c.pending)
}

func TestTickConsumer_Flush_KeepsBatchOnStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisClient := redisMock.NewMockClient(ctrl)
	tickUc := tickMock.NewMockUsecase(ctrl)

	c := NewTickConsumer(redisClient, tickUc, newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	c.accept(context.Background(), v9.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600000",
			"price":  "100.5",
			"size":   "0.25",
		},
	})

	tickUc.EXPECT().SubmitTicks(gomock.Any(), gomock.Any()).Return(errors.NewTracer("connection refused"))

	// No ack on failure: the batch stays buffered for the next attempt.
	c.flush(context.Background())
	assert.Len(t, c.buffer, 1)
	assert.Len(t, c.pending, 1)
}

func TestTickConsumer_Flush_DropsInvalidTickAndStoresRest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisClient := redisMock.NewMockClient(ctrl)
	tickUc := tickMock.NewMockUsecase(ctrl)

	c := NewTickConsumer(redisClient, tickUc, newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	c.accept(context.Background(), v9.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600000",
			"price":  "100.5",
			"size":   "0.25",
		},
	})
	c.accept(context.Background(), v9.XMessage{
		ID: "2-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600100",
			"price":  "-5",
			"size":   "0.25",
		},
	})
	require.Len(t, c.buffer, 2)

	validationErr := errors.NewErrorDetails("tick has negative price",
		string(errors.ErrTickValidation), "price")

	tickUc.EXPECT().SubmitTicks(gomock.Any(), gomock.Any()).Return(validationErr)
	tickUc.EXPECT().SubmitTick(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk *tickInfra.Tick) error {
			if tk.Price < 0 {
				return validationErr
			}
			return nil
		}).Times(2)
	redisClient.EXPECT().XAck(gomock.Any(), "ticks_stream", "ingestor_group", "1-0", "2-0").Return(int64(2), nil)

	// The invalid tick is dropped and acked; the valid one is stored and
	// acked. Nothing stays behind the poison entry.
	c.flush(context.Background())
	assert.Empty(t, c.buffer)
	assert.Empty(t, c.pending)
}

func TestTickConsumer_Flush_KeepsTransientFailuresDuringSalvage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisClient := redisMock.NewMockClient(ctrl)
	tickUc := tickMock.NewMockUsecase(ctrl)

	c := NewTickConsumer(redisClient, tickUc, newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	c.accept(context.Background(), v9.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600000",
			"price":  "100.5",
			"size":   "0.25",
		},
	})
	c.accept(context.Background(), v9.XMessage{
		ID: "2-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"time":   "1748874600100",
			"price":  "-5",
			"size":   "0.25",
		},
	})

	validationErr := errors.NewErrorDetails("tick has negative price",
		string(errors.ErrTickValidation), "price")

	tickUc.EXPECT().SubmitTicks(gomock.Any(), gomock.Any()).Return(validationErr)
	tickUc.EXPECT().SubmitTick(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tk *tickInfra.Tick) error {
			if tk.Price < 0 {
				return validationErr
			}
			return errors.NewTracer("connection refused")
		}).Times(2)
	redisClient.EXPECT().XAck(gomock.Any(), "ticks_stream", "ingestor_group", "2-0").Return(int64(1), nil)

	// The invalid tick is dropped and acked; the tick that hit a transient
	// storage failure stays buffered for the next flush.
	c.flush(context.Background())
	require.Len(t, c.buffer, 1)
	assert.Equal(t, 100.5, c.buffer[0].Price)
	assert.Equal(t, []string{"1-0"}, c.pending)
}

func TestTickConsumer_Accept_AcksMalformedEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisClient := redisMock.NewMockClient(ctrl)
	tickUc := tickMock.NewMockUsecase(ctrl)

	c := NewTickConsumer(redisClient, tickUc, newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	redisClient.EXPECT().XAck(gomock.Any(), "ticks_stream", "ingestor_group", "2-0").Return(int64(1), nil)

	c.accept(context.Background(), v9.XMessage{
		ID: "2-0",
		Values: map[string]interface{}{
			"symbol": "BTCUSDT",
			"price":  "not-a-number",
		},
	})
	assert.Empty(t, c.buffer)
	assert.Empty(t, c.pending)
}

func TestTickConsumer_FlushEmptyBufferIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := NewTickConsumer(redisMock.NewMockClient(ctrl), tickMock.NewMockUsecase(ctrl),
		newTestAggregator(t, ctrl), testStreamConfig(), newLoggerMock(ctrl))

	c.flush(context.Background())
}
