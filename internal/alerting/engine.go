package alerting

import (
	"context"
	"math"
	"sync"
	"time"

	v9 "github.com/redis/go-redis/v9"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	alertDomain "github.com/quantlabs/quant-analytics/internal/domain/alert"
	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert"
	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/redis"
)

// Update is one new qualifying value write: an OHLCV close published by the
// scheduler or a derived metric stored by the analytics engine.
type Update struct {
	Time       time.Time
	Symbol1    string
	Symbol2    string
	MetricType string // alert.TypePrice for bar closes, otherwise the metric name
	Value      float64
}

// Engine evaluates active alert rules against incoming value updates.
// Rules are cached and reloaded periodically; evaluation runs concurrently
// across rules but per-rule state transitions are serialized, so two
// near-simultaneous qualifying writes can never double-trigger one rule.
type Engine struct {
	alertUc     alertDomain.Usecase
	redisClient redis.Client
	cfg         config.AlertConfig
	alertStream string
	logger      logger.Interface

	mu     sync.RWMutex
	rules  map[int64]*alert.Rule
	states map[int64]*ruleState

	updates chan Update
	wg      sync.WaitGroup
	stop    context.CancelFunc

	// now is swappable for tests.
	now func() time.Time
}

// ruleState is the run-time state the engine owns for one rule: the
// previously evaluated value (needed by crosses_* conditions) and the last
// trigger time (needed by the cooldown). The persisted active/triggered_at
// fields stay the durable source of truth.
type ruleState struct {
	mu            sync.Mutex
	prev          float64
	hasPrev       bool
	lastTriggered time.Time
}

// NewEngine creates an alert engine. redisClient may be nil; trigger events
// are then only persisted, not published to the alert stream.
func NewEngine(alertUc alertDomain.Usecase, redisClient redis.Client, cfg config.AlertConfig, alertStream string, log logger.Interface) *Engine {
	return &Engine{
		alertUc:     alertUc,
		redisClient: redisClient,
		cfg:         cfg,
		alertStream: alertStream,
		logger:      log,
		rules:       make(map[int64]*alert.Rule),
		states:      make(map[int64]*ruleState),
		updates:     make(chan Update, cfg.UpdateBuffer),
		now:         time.Now,
	}
}

// Start loads the active rule set and launches the evaluation workers and
// the rule reload loop.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.ReloadRules(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	e.stop = cancel

	for i := 0; i < e.cfg.WorkerCount; i++ {
		e.wg.Add(1)
		go e.worker(ctx)
	}

	e.wg.Add(1)
	go e.reloadLoop(ctx)

	e.logger.Info("alert engine started", logger.Field{
		Key:   "rules",
		Value: len(e.rules),
	}, logger.Field{
		Key:   "workers",
		Value: e.cfg.WorkerCount,
	})
	return nil
}

// Stop halts the workers. An in-flight evaluation completes before this
// returns.
func (e *Engine) Stop() {
	if e.stop != nil {
		e.stop()
	}
	e.wg.Wait()
	e.logger.Info("alert engine stopped")
}

// Publish hands a value update to the evaluation workers. It never blocks:
// when the buffer is full the update is dropped with a warning, and the rule
// simply evaluates against the next write.
func (e *Engine) Publish(update Update) {
	select {
	case e.updates <- update:
	default:
		e.logger.Warn("alert update buffer full, dropping update", logger.Field{
			Key:   "symbol",
			Value: update.Symbol1,
		}, logger.Field{
			Key:   "metric",
			Value: update.MetricType,
		})
	}
}

// OnBars implements scheduler.BarListener: every published bar close is a
// qualifying price write.
func (e *Engine) OnBars(snapshots []aggregator.Snapshot) {
	for _, snap := range snapshots {
		e.Publish(Update{
			Time:       snap.Bar.Time,
			Symbol1:    snap.Bar.Symbol,
			MetricType: alert.TypePrice,
			Value:      snap.Bar.Close,
		})
	}
}

// ReloadRules replaces the cached rule set with the currently active rules.
// Run-time state of rules that stay active is preserved.
func (e *Engine) ReloadRules(ctx context.Context) error {
	rules, err := e.alertUc.ListActiveRules(ctx, "")
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fresh := make(map[int64]*alert.Rule, len(rules))
	for _, rule := range rules {
		fresh[rule.ID] = rule
		if _, ok := e.states[rule.ID]; !ok {
			e.states[rule.ID] = &ruleState{}
		}
	}
	for id := range e.states {
		if _, ok := fresh[id]; !ok {
			delete(e.states, id)
		}
	}
	e.rules = fresh

	return nil
}

func (e *Engine) reloadLoop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.RuleReload)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.ReloadRules(ctx); err != nil {
				e.logger.Error(errors.TracerFromError(err), logger.Field{
					Key:   "action",
					Value: "reload_rules",
				})
			}
		}
	}
}

func (e *Engine) worker(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-e.updates:
			e.Evaluate(ctx, update)
		}
	}
}

// Evaluate runs one update against every matching active rule.
func (e *Engine) Evaluate(ctx context.Context, update Update) {
	if math.IsNaN(update.Value) || math.IsInf(update.Value, 0) {
		// A missing or unusable input is a no-op for this cycle, not an
		// error; the rules stay active.
		e.logger.Warn("skipping unusable alert input", logger.Field{
			Key:   "code",
			Value: string(errors.ErrRuleEvaluation),
		}, logger.Field{
			Key:   "symbol",
			Value: update.Symbol1,
		}, logger.Field{
			Key:   "metric",
			Value: update.MetricType,
		})
		return
	}

	e.mu.RLock()
	var matched []*alert.Rule
	for _, rule := range e.rules {
		if e.matches(rule, update) {
			matched = append(matched, rule)
		}
	}
	e.mu.RUnlock()

	for _, rule := range matched {
		e.evaluateRule(ctx, rule, update)
	}
}

func (e *Engine) matches(rule *alert.Rule, update Update) bool {
	if rule.Symbol1 != update.Symbol1 {
		return false
	}
	if rule.AlertType == alert.TypePrice {
		return update.MetricType == alert.TypePrice
	}
	// Analytics rules name the metric they watch; pairwise metrics also pin
	// symbol2 (the empty string is the single-symbol sentinel on both sides).
	return rule.AlertType == update.MetricType && rule.Symbol2 == update.Symbol2
}

func (e *Engine) evaluateRule(ctx context.Context, rule *alert.Rule, update Update) {
	e.mu.RLock()
	state, ok := e.states[rule.ID]
	e.mu.RUnlock()
	if !ok {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	satisfied := satisfies(rule.Condition, rule.Threshold, update.Value, state.prev, state.hasPrev)

	// The previous value advances whether or not the rule fires, so a
	// crossing observed during cooldown is not re-detected afterwards.
	state.prev = update.Value
	state.hasPrev = true

	if !satisfied {
		return
	}

	now := e.now().UTC()
	if !state.lastTriggered.IsZero() && now.Sub(state.lastTriggered) < e.cfg.Cooldown {
		e.logger.Debug("trigger suppressed by cooldown", logger.Field{
			Key:   "rule_id",
			Value: rule.ID,
		})
		return
	}

	metadata := map[string]any{
		"condition": rule.Condition,
		"threshold": rule.Threshold,
		"metric":    update.MetricType,
	}
	if err := e.alertUc.Trigger(ctx, rule.ID, now, update.Value, metadata); err != nil {
		e.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "rule_id",
			Value: rule.ID,
		})
		return
	}

	state.lastTriggered = now

	e.logger.Info("alert triggered", logger.Field{
		Key:   "rule_id",
		Value: rule.ID,
	}, logger.Field{
		Key:   "value",
		Value: update.Value,
	}, logger.Field{
		Key:   "threshold",
		Value: rule.Threshold,
	})

	e.publishEvent(ctx, rule, update, now)
}

// satisfies applies the rule condition. crosses_* conditions need the
// previously evaluated value and never fire on the first observation.
func satisfies(condition string, threshold, value, prev float64, hasPrev bool) bool {
	switch condition {
	case alert.ConditionGreaterThan:
		return value > threshold
	case alert.ConditionLessThan:
		return value < threshold
	case alert.ConditionGreaterEqual:
		return value >= threshold
	case alert.ConditionLessEqual:
		return value <= threshold
	case alert.ConditionCrossesAbove:
		return hasPrev && prev <= threshold && value > threshold
	case alert.ConditionCrossesBelow:
		return hasPrev && prev >= threshold && value < threshold
	}
	return false
}

func (e *Engine) publishEvent(ctx context.Context, rule *alert.Rule, update Update, at time.Time) {
	if e.redisClient == nil || !e.cfg.PublishStream {
		return
	}

	_, err := e.redisClient.XAdd(ctx, &v9.XAddArgs{
		Stream: e.alertStream,
		Values: map[string]interface{}{
			"alert_id":  rule.ID,
			"symbol1":   rule.Symbol1,
			"symbol2":   rule.Symbol2,
			"condition": rule.Condition,
			"threshold": rule.Threshold,
			"value":     update.Value,
			"time":      at.Format(time.RFC3339Nano),
		},
	})
	if err != nil {
		e.logger.Error(errors.TracerFromError(err), logger.Field{
			Key:   "rule_id",
			Value: rule.ID,
		}, logger.Field{
			Key:   "action",
			Value: "publish_alert_event",
		})
	}
}
