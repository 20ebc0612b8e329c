package bootstrap

import (
	alertInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert"
	analyticsInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/analytics"
	ohlcvInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/ohlcv"
	tickInfra "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
)

// Repository holds the storage repositories.
type Repository struct {
	TickRepository      tickInfra.TickRepository
	BarRepository       ohlcvInfra.BarRepository
	AnalyticsRepository analyticsInfra.AnalyticsRepository
	AlertRepository     alertInfra.AlertRepository
}

// registerRepository registers the repositories.
func (b *Bootstrap) registerRepository() {
	b.Repository.TickRepository = tickInfra.NewRepository(b.Timescale)
	b.Repository.BarRepository = ohlcvInfra.NewRepository(b.Timescale)
	b.Repository.AnalyticsRepository = analyticsInfra.NewRepository(b.Timescale)
	b.Repository.AlertRepository = alertInfra.NewRepository(b.Timescale)
}
