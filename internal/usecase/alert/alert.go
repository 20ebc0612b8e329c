package alert

import (
	"context"
	"time"

	domain "github.com/quantlabs/quant-analytics/internal/domain/alert"
	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

// Usecase is the usecase for alert rules and history.
type Usecase struct {
	alertRepository alert.AlertRepository
	timescaleClient timescale.Client
	logger          logger.Interface
}

// NewUsecase creates a new alert usecase.
func NewUsecase(alertRepository alert.AlertRepository, timescaleClient timescale.Client, logger logger.Interface) *Usecase {
	return &Usecase{
		alertRepository: alertRepository,
		timescaleClient: timescaleClient,
		logger:          logger,
	}
}

// CreateRule validates and persists a new rule. New rules start active.
func (u *Usecase) CreateRule(ctx context.Context, params domain.CreateRuleParams) (int64, error) {
	if !alert.ValidCondition(params.Condition) {
		return 0, errors.NewErrorDetails(
			"unsupported rule condition: "+params.Condition,
			string(errors.ErrInvalidCondition), "condition")
	}
	if params.Symbol1 == "" {
		return 0, errors.NewErrorDetails(
			"rule requires symbol1",
			string(errors.ErrInvalidCondition), "symbol1")
	}

	rule := &alert.Rule{
		AlertType: params.AlertType,
		Symbol1:   params.Symbol1,
		Symbol2:   params.Symbol2,
		Condition: params.Condition,
		Threshold: params.Threshold,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	id, err := u.alertRepository.CreateRule(ctx, rule)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	u.logger.Info("alert rule created", logger.Field{
		Key:   "rule_id",
		Value: id,
	}, logger.Field{
		Key:   "condition",
		Value: params.Condition,
	})

	return id, nil
}

// DeactivateRule disables a rule; disabled rules are excluded from the
// evaluation set.
func (u *Usecase) DeactivateRule(ctx context.Context, id int64) error {
	rule, err := u.alertRepository.GetRule(ctx, id)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if rule == nil {
		return errors.NewErrorDetails(
			"alert rule not found",
			string(errors.ErrRuleNotFound), "id")
	}

	if err := u.alertRepository.SetActive(ctx, id, false); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// ListActiveRules lists active rules, optionally filtered by symbol1.
func (u *Usecase) ListActiveRules(ctx context.Context, symbol string) ([]*alert.Rule, error) {
	rules, err := u.alertRepository.ListActive(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return rules, nil
}

// Trigger records one trigger occurrence: sets triggered_at on the rule and
// appends an alert_history event with the triggering value. Both writes run
// in one transaction, so triggered_at never advances without a matching
// history row.
func (u *Usecase) Trigger(ctx context.Context, id int64, at time.Time, value float64, metadata map[string]any) error {
	txCtx, err := timescale.Begin(ctx, u.timescaleClient)
	if err != nil {
		return errors.TracerFromError(err)
	}

	if err := u.trigger(txCtx, id, at, value, metadata); err != nil {
		if rbErr := timescale.Rollback(txCtx); rbErr != nil {
			u.logger.Error(errors.TracerFromError(rbErr), logger.Field{
				Key:   "rule_id",
				Value: id,
			})
		}
		return err
	}

	if err := timescale.Commit(txCtx); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

func (u *Usecase) trigger(ctx context.Context, id int64, at time.Time, value float64, metadata map[string]any) error {
	if err := u.alertRepository.MarkTriggered(ctx, id, at); err != nil {
		return errors.TracerFromError(err)
	}

	event := &alert.Event{
		Time:     at,
		AlertID:  id,
		Value:    value,
		Metadata: metadata,
	}
	if err := u.alertRepository.RecordEvent(ctx, event); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// GetHistory retrieves trigger events, ordered by time.
func (u *Usecase) GetHistory(ctx context.Context, filter alert.EventFilter) ([]*alert.Event, error) {
	events, err := u.alertRepository.GetHistory(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return events, nil
}
