package alert

import (
	"context"
	"time"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// AlertRepository represents the repository interface for alert rules and
// their trigger history.
type AlertRepository interface {
	CreateRule(ctx context.Context, rule *Rule) (int64, error)
	GetRule(ctx context.Context, id int64) (*Rule, error)
	ListActive(ctx context.Context, symbol string) ([]*Rule, error)
	SetActive(ctx context.Context, id int64, active bool) error
	MarkTriggered(ctx context.Context, id int64, at time.Time) error

	RecordEvent(ctx context.Context, event *Event) error
	GetHistory(ctx context.Context, filter EventFilter) ([]*Event, error)
}
