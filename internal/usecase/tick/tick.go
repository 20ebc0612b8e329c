package tick

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/tick"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	"github.com/quantlabs/quant-analytics/pkg/logger"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,32}$`)

// Usecase is the usecase for the tick.
type Usecase struct {
	tickRepository tick.TickRepository
	logger         logger.Interface
}

// NewUsecase creates a new tick usecase.
func NewUsecase(tickRepository tick.TickRepository, logger logger.Interface) *Usecase {
	return &Usecase{tickRepository: tickRepository, logger: logger}
}

// SubmitTick validates and stores a single tick. Symbols are normalized to
// upper case; rejected ticks never reach the repository.
func (u *Usecase) SubmitTick(ctx context.Context, t *tick.Tick) error {
	if err := validate(t); err != nil {
		return err
	}

	if err := u.tickRepository.Store(ctx, t); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// SubmitTicks validates and stores a batch of ticks. The whole batch is
// rejected if any tick fails validation, so a partial batch is never stored.
func (u *Usecase) SubmitTicks(ctx context.Context, ticks []*tick.Tick) error {
	for _, t := range ticks {
		if err := validate(t); err != nil {
			return err
		}
	}

	if err := u.tickRepository.StoreBatch(ctx, ticks); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// GetTicks gets ticks for a given filter.
func (u *Usecase) GetTicks(ctx context.Context, filter tick.Filter) ([]*tick.Tick, error) {
	ticks, err := u.tickRepository.GetByFilter(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return ticks, nil
}

// GetLatestTick gets the latest tick for a given symbol.
func (u *Usecase) GetLatestTick(ctx context.Context, symbol string) (*tick.Tick, error) {
	latest, err := u.tickRepository.GetLatestBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return latest, nil
}

// GetTickVolume gets the traded volume for a given symbol and time range.
func (u *Usecase) GetTickVolume(ctx context.Context, symbol string, from, to time.Time) (float64, error) {
	volume, err := u.tickRepository.GetVolumeBySymbol(ctx, symbol, from, to)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}
	return volume, nil
}

func validate(t *tick.Tick) error {
	if t.Price < 0 {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick has negative price: %f", t.Price),
			string(errors.ErrTickValidation), "price", t)
	}
	if t.Size < 0 {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick has negative size: %f", t.Size),
			string(errors.ErrTickValidation), "size", t)
	}
	if !symbolPattern.MatchString(t.Symbol) {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick has malformed symbol: %q", t.Symbol),
			string(errors.ErrTickValidation), "symbol", t)
	}
	if t.Time.IsZero() {
		return errors.NewErrorDetailsWithObject(
			"tick has zero time",
			string(errors.ErrTickValidation), "time", t)
	}

	t.Symbol = strings.ToUpper(t.Symbol)
	return nil
}
