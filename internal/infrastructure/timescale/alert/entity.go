package alert

import (
	"time"
)

// Rule conditions. crosses_above and crosses_below need the previously
// evaluated value, so the alert engine keeps per-rule state for them.
const (
	ConditionGreaterThan  = ">"
	ConditionLessThan     = "<"
	ConditionGreaterEqual = ">="
	ConditionLessEqual    = "<="
	ConditionCrossesAbove = "crosses_above"
	ConditionCrossesBelow = "crosses_below"
)

// TypePrice is the alert type of rules evaluated against bar closes. Rules
// watching a derived metric carry the metric name as their alert type.
const TypePrice = "price"

// Rule represents an alert rule. Active and TriggeredAt are mutable over the
// rule's lifetime; all other fields are set at creation.
type Rule struct {
	ID          int64
	AlertType   string
	Symbol1     string
	Symbol2     string
	Condition   string
	Threshold   float64
	Active      bool
	CreatedAt   time.Time
	TriggeredAt *time.Time
}

// Event represents a single trigger occurrence, append-only.
type Event struct {
	Time     time.Time
	AlertID  int64
	Value    float64
	Metadata map[string]any
}

// EventFilter represents the filter criteria for alert history.
type EventFilter struct {
	AlertID int64
	From    *time.Time
	To      *time.Time
	Limit   int
}

// ValidCondition reports whether condition is one of the supported operators.
func ValidCondition(condition string) bool {
	switch condition {
	case ConditionGreaterThan, ConditionLessThan,
		ConditionGreaterEqual, ConditionLessEqual,
		ConditionCrossesAbove, ConditionCrossesBelow:
		return true
	}
	return false
}
