package bootstrap

import (
	alertDomain "github.com/quantlabs/quant-analytics/internal/domain/alert"
	analyticsDomain "github.com/quantlabs/quant-analytics/internal/domain/analytics"
	ohlcvDomain "github.com/quantlabs/quant-analytics/internal/domain/ohlcv"
	tickDomain "github.com/quantlabs/quant-analytics/internal/domain/tick"
	alertUc "github.com/quantlabs/quant-analytics/internal/usecase/alert"
	analyticsUc "github.com/quantlabs/quant-analytics/internal/usecase/analytics"
	ohlcvUc "github.com/quantlabs/quant-analytics/internal/usecase/ohlcv"
	tickUc "github.com/quantlabs/quant-analytics/internal/usecase/tick"
)

// Usecase holds the domain usecases.
type Usecase struct {
	TickUsecase      tickDomain.Usecase
	OhlcvUsecase     ohlcvDomain.Usecase
	AnalyticsUsecase analyticsDomain.Usecase
	AlertUsecase     alertDomain.Usecase
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.TickUsecase = tickUc.NewUsecase(b.Repository.TickRepository, b.Logger)
	b.Usecase.OhlcvUsecase = ohlcvUc.NewUsecase(b.Repository.BarRepository, b.Logger)
	b.Usecase.AnalyticsUsecase = analyticsUc.NewUsecase(b.Repository.AnalyticsRepository, b.Logger)
	b.Usecase.AlertUsecase = alertUc.NewUsecase(b.Repository.AlertRepository, b.Timescale, b.Logger)
}
