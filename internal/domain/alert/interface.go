package alert

import (
	"context"
	"time"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// CreateRuleParams are the immutable fields of a new alert rule.
type CreateRuleParams struct {
	AlertType string
	Symbol1   string
	Symbol2   string
	Condition string
	Threshold float64
}

// Usecase is the interface for the alert usecase.
type Usecase interface {
	CreateRule(ctx context.Context, params CreateRuleParams) (int64, error)
	DeactivateRule(ctx context.Context, id int64) error
	ListActiveRules(ctx context.Context, symbol string) ([]*alert.Rule, error)
	Trigger(ctx context.Context, id int64, at time.Time, value float64, metadata map[string]any) error
	GetHistory(ctx context.Context, filter alert.EventFilter) ([]*alert.Event, error)
}
