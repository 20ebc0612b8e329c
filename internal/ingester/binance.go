package ingester

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	v9 "github.com/redis/go-redis/v9"

	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/redis"
)

const statsInterval = 30 * time.Second

// tradeEvent is the Binance futures trade stream payload.
type tradeEvent struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// Ingester connects one websocket per symbol to the exchange trade stream,
// normalizes trade events and publishes them to the tick stream. Connections
// reconnect with a fixed delay; the stream is capped so a stalled consumer
// cannot grow it without bound.
type Ingester struct {
	redisClient redis.Client
	cfg         config.IngesterConfig
	stream      config.StreamConfig
	logger      logger.Interface

	wg   sync.WaitGroup
	stop context.CancelFunc

	received  atomic.Int64
	published atomic.Int64
	errs      atomic.Int64

	// dial is swappable for tests.
	dial func(url string) (*websocket.Conn, error)
}

// New creates a new Ingester.
func New(redisClient redis.Client, cfg config.IngesterConfig, stream config.StreamConfig, log logger.Interface) *Ingester {
	return &Ingester{
		redisClient: redisClient,
		cfg:         cfg,
		stream:      stream,
		logger:      log,
		dial: func(url string) (*websocket.Conn, error) {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			return conn, err
		},
	}
}

// Start launches one reader per configured symbol plus a stats reporter.
// It returns immediately.
func (i *Ingester) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	i.stop = cancel

	for _, symbol := range i.cfg.Symbols {
		i.wg.Add(1)
		go i.ingestSymbol(ctx, strings.ToLower(symbol))
	}

	i.wg.Add(1)
	go i.reportStats(ctx)

	i.logger.Info("ingester started", logger.Field{
		Key:   "symbols",
		Value: i.cfg.Symbols,
	})
}

// Stop halts all readers and waits for them to finish.
func (i *Ingester) Stop() {
	if i.stop != nil {
		i.stop()
	}
	i.wg.Wait()
	i.logger.Info("ingester stopped")
}

// ingestSymbol runs the connect/read/reconnect loop for one symbol.
func (i *Ingester) ingestSymbol(ctx context.Context, symbol string) {
	defer i.wg.Done()

	url := fmt.Sprintf("%s/%s@trade", i.cfg.WSBaseURL, symbol)

	for ctx.Err() == nil {
		conn, err := i.dial(url)
		if err != nil {
			i.errs.Add(1)
			i.logger.Error(errors.TracerFromError(err), logger.Field{
				Key:   "symbol",
				Value: symbol,
			}, logger.Field{
				Key:   "action",
				Value: "dial",
			})
			i.wait(ctx)
			continue
		}

		i.logger.Info("connected to trade stream", logger.Field{
			Key:   "symbol",
			Value: symbol,
		})

		i.readLoop(ctx, conn, symbol)
		conn.Close()

		if ctx.Err() == nil {
			i.logger.Warn("connection closed, reconnecting", logger.Field{
				Key:   "symbol",
				Value: symbol,
			})
			i.wait(ctx)
		}
	}
}

// readLoop reads trade events until the connection breaks or the context is
// cancelled. A read deadline doubles as the keepalive: the exchange pings
// periodically, so a silent connection is a dead one.
func (i *Ingester) readLoop(ctx context.Context, conn *websocket.Conn, symbol string) {
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(i.cfg.ReadTimeout)); err != nil {
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				i.errs.Add(1)
			}
			return
		}

		if err := i.process(ctx, payload); err != nil {
			i.errs.Add(1)
			i.logger.Error(errors.TracerFromError(err), logger.Field{
				Key:   "symbol",
				Value: symbol,
			}, logger.Field{
				Key:   "action",
				Value: "process_message",
			})
		}
	}
}

// process normalizes one trade event and publishes it to the tick stream.
// Non-trade events are ignored.
func (i *Ingester) process(ctx context.Context, payload []byte) error {
	var event tradeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	if event.EventType != "trade" {
		return nil
	}
	i.received.Add(1)

	_, err := i.redisClient.XAdd(ctx, &v9.XAddArgs{
		Stream: i.stream.TickStream,
		MaxLen: i.stream.MaxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"symbol": strings.ToUpper(event.Symbol),
			"time":   strconv.FormatInt(event.TradeTime, 10),
			"price":  event.Price,
			"size":   event.Quantity,
		},
	})
	if err != nil {
		return err
	}
	i.published.Add(1)
	return nil
}

func (i *Ingester) wait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(i.cfg.ReconnectDelay):
	}
}

func (i *Ingester) reportStats(ctx context.Context) {
	defer i.wg.Done()

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			streamLen, err := i.redisClient.XLen(ctx, i.stream.TickStream)
			if err != nil {
				i.logger.Error(errors.TracerFromError(err), logger.Field{
					Key:   "action",
					Value: "stream_len",
				})
				streamLen = -1
			}
			i.logger.Info("ingester stats", logger.Field{
				Key:   "received",
				Value: i.received.Load(),
			}, logger.Field{
				Key:   "published",
				Value: i.published.Load(),
			}, logger.Field{
				Key:   "errors",
				Value: i.errs.Load(),
			}, logger.Field{
				Key:   "stream_len",
				Value: streamLen,
			})
		}
	}
}
