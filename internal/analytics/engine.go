package analytics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/quantlabs/quant-analytics/internal/alerting"
	analyticsDomain "github.com/quantlabs/quant-analytics/internal/domain/analytics"
	ohlcvDomain "github.com/quantlabs/quant-analytics/internal/domain/ohlcv"
	analyticsInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/analytics"
	ohlcvInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

// Pair is a configured symbol pair for pairwise metrics.
type Pair struct {
	Symbol1 string
	Symbol2 string
}

// Engine periodically derives analytics from recent OHLCV closes: rolling
// volatility and z-score per symbol, Pearson correlation and spread per
// configured pair. Results are persisted as analytics records and forwarded
// to the alert engine.
type Engine struct {
	ohlcvUc     ohlcvDomain.Usecase
	analyticsUc analyticsDomain.Usecase
	alerts      *alerting.Engine
	cfg         config.AnalyticsConfig
	symbols     []string
	pairs       []Pair
	logger      logger.Interface

	wg   sync.WaitGroup
	stop context.CancelFunc
}

// NewEngine creates an analytics engine for the given symbols. alerts may be
// nil; metrics are then only persisted.
func NewEngine(ohlcvUc ohlcvDomain.Usecase, analyticsUc analyticsDomain.Usecase, alerts *alerting.Engine, cfg config.AnalyticsConfig, symbols []string, log logger.Interface) *Engine {
	return &Engine{
		ohlcvUc:     ohlcvUc,
		analyticsUc: analyticsUc,
		alerts:      alerts,
		cfg:         cfg,
		symbols:     symbols,
		pairs:       parsePairs(cfg.Pairs),
		logger:      log,
	}
}

// parsePairs parses "SYM1:SYM2" entries; malformed entries are skipped.
func parsePairs(raw []string) []Pair {
	var pairs []Pair
	for _, entry := range raw {
		parts := strings.Split(entry, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		pairs = append(pairs, Pair{
			Symbol1: strings.ToUpper(parts[0]),
			Symbol2: strings.ToUpper(parts[1]),
		})
	}
	return pairs
}

// Start launches the computation loop.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.stop = cancel

	e.wg.Add(1)
	go e.run(ctx)

	e.logger.Info("analytics engine started", logger.Field{
		Key:   "symbols",
		Value: len(e.symbols),
	}, logger.Field{
		Key:   "pairs",
		Value: len(e.pairs),
	})
}

// Stop halts the computation loop, letting an in-flight cycle finish.
func (e *Engine) Stop() {
	if e.stop != nil {
		e.stop()
	}
	e.wg.Wait()
	e.logger.Info("analytics engine stopped")
}

func (e *Engine) run(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Compute(ctx)
		}
	}
}

// Compute runs one analytics cycle. A symbol without enough bars yet is
// skipped silently; storage errors are logged and do not stop the cycle.
func (e *Engine) Compute(ctx context.Context) {
	now := time.Now().UTC()

	for _, symbol := range e.symbols {
		bars := e.recentBars(ctx, symbol)
		if len(bars) < 2 {
			continue
		}
		e.computeSymbol(ctx, now, symbol, closesOf(bars))
	}

	for _, pair := range e.pairs {
		xs, ys := alignCloses(e.recentBars(ctx, pair.Symbol1), e.recentBars(ctx, pair.Symbol2))
		if len(xs) < 2 {
			continue
		}
		e.computePair(ctx, now, pair, xs, ys)
	}
}

// alignCloses intersects two bar series on bucket time, oldest first, so
// pairwise metrics compare the same windows even when one symbol has gaps.
func alignCloses(x, y []*ohlcvInfra.Bar) (xs, ys []float64) {
	yByTime := make(map[int64]float64, len(y))
	for _, bar := range y {
		yByTime[bar.Time.UnixNano()] = bar.Close
	}
	for _, bar := range x {
		if c, ok := yByTime[bar.Time.UnixNano()]; ok {
			xs = append(xs, bar.Close)
			ys = append(ys, c)
		}
	}
	return xs, ys
}

func closesOf(bars []*ohlcvInfra.Bar) []float64 {
	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, bar.Close)
	}
	return closes
}

func (e *Engine) computeSymbol(ctx context.Context, now time.Time, symbol string, closes []float64) {
	returns := logReturns(closes)
	_, volatility := meanStd(returns)

	mean, std := meanStd(closes)
	score := zScore(closes[len(closes)-1], mean, std)

	e.store(ctx, &analyticsInfra.Record{
		Time:       now,
		Symbol1:    symbol,
		Symbol2:    "",
		MetricType: analyticsInfra.MetricVolatility,
		Value:      volatility,
		Metadata:   map[string]any{"window": len(closes)},
	})
	e.store(ctx, &analyticsInfra.Record{
		Time:       now,
		Symbol1:    symbol,
		Symbol2:    "",
		MetricType: analyticsInfra.MetricZScore,
		Value:      score,
		Metadata:   map[string]any{"window": len(closes), "mean": mean, "std": std},
	})
}

// computePair derives pairwise metrics from two time-aligned close series.
func (e *Engine) computePair(ctx context.Context, now time.Time, pair Pair, x, y []float64) {
	n := len(x)
	corr := correlation(x, y)
	spread := x[n-1] - y[n-1]

	e.store(ctx, &analyticsInfra.Record{
		Time:       now,
		Symbol1:    pair.Symbol1,
		Symbol2:    pair.Symbol2,
		MetricType: analyticsInfra.MetricCorrelation,
		Value:      corr,
		Metadata:   map[string]any{"window": n},
	})
	e.store(ctx, &analyticsInfra.Record{
		Time:       now,
		Symbol1:    pair.Symbol1,
		Symbol2:    pair.Symbol2,
		MetricType: analyticsInfra.MetricSpread,
		Value:      spread,
		Metadata:   map[string]any{"window": n},
	})
}

func (e *Engine) store(ctx context.Context, record *analyticsInfra.Record) {
	if err := e.analyticsUc.StoreMetric(ctx, record); err != nil {
		e.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "metric",
			Value: record.MetricType,
		}, logger.Field{
			Key:   "symbol",
			Value: record.Symbol1,
		})
		return
	}

	if e.alerts != nil {
		e.alerts.Publish(alerting.Update{
			Time:       record.Time,
			Symbol1:    record.Symbol1,
			Symbol2:    record.Symbol2,
			MetricType: record.MetricType,
			Value:      record.Value,
		})
	}
}

// recentBars fetches the last RollingWindow bars for the configured bar
// interval, oldest first. Returns nil when the query fails; the cycle
// carries on with the other symbols.
func (e *Engine) recentBars(ctx context.Context, symbol string) []*ohlcvInfra.Bar {
	bars, err := e.ohlcvUc.GetRecent(ctx, symbol, e.cfg.BarInterval, e.cfg.RollingWindow)
	if err != nil {
		e.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "symbol",
			Value: symbol,
		}, logger.Field{
			Key:   "action",
			Value: "fetch_bars",
		})
		return nil
	}
	return bars
}
