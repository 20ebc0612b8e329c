package ohlcv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock "github.com/quantlabs/quant-analytics/pkg/timescale/mock"
)

var t0 = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func sampleBar() *Bar {
	return &Bar{
		Time:       t0,
		Symbol:     "AAPL",
		Interval:   "1m",
		Open:       100,
		High:       102,
		Low:        99,
		Close:      99,
		Volume:     35,
		TradeCount: 3,
	}
}

func TestBarRepository_Upsert(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(bar *Bar, mock *mock.MockClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(bar *Bar, mock *mock.MockClient) {
				mock.EXPECT().Exec(gomock.Any(), upsertQuery,
					bar.Time, bar.Symbol, bar.Interval, bar.Open, bar.High,
					bar.Low, bar.Close, bar.Volume, bar.TradeCount,
				).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(bar *Bar, mock *mock.MockClient) {
				mock.EXPECT().Exec(gomock.Any(), upsertQuery,
					bar.Time, bar.Symbol, bar.Interval, bar.Open, bar.High,
					bar.Low, bar.Close, bar.Volume, bar.TradeCount,
				).Return(errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := mock.NewMockClient(ctrl)
			bar := sampleBar()
			tc.mockFn(bar, mock)

			repo := NewRepository(mock)
			err := repo.Upsert(context.Background(), bar)
			tc.assertFn(t, err)
		})
	}
}

func TestBarRepository_UpsertBatch(t *testing.T) {
	testCases := []struct {
		name     string
		bars     []*Bar
		mockFn   func(bars []*Bar, mock *mock.MockClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			bars: []*Bar{sampleBar()},
			mockFn: func(bars []*Bar, mock *mock.MockClient) {
				mock.EXPECT().Exec(gomock.Any(), gomock.Any(),
					bars[0].Time, bars[0].Symbol, bars[0].Interval, bars[0].Open, bars[0].High,
					bars[0].Low, bars[0].Close, bars[0].Volume, bars[0].TradeCount,
				).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "empty batch is a no-op",
			bars: nil,
			mockFn: func(bars []*Bar, mock *mock.MockClient) {
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			bars: []*Bar{sampleBar()},
			mockFn: func(bars []*Bar, mock *mock.MockClient) {
				mock.EXPECT().Exec(gomock.Any(), gomock.Any(),
					bars[0].Time, bars[0].Symbol, bars[0].Interval, bars[0].Open, bars[0].High,
					bars[0].Low, bars[0].Close, bars[0].Volume, bars[0].TradeCount,
				).Return(errors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := mock.NewMockClient(ctrl)
			tc.mockFn(tc.bars, mock)

			repo := NewRepository(mock)
			err := repo.UpsertBatch(context.Background(), tc.bars)
			tc.assertFn(t, err)
		})
	}
}

func TestBarRepository_GetRecent(t *testing.T) {
	query := `SELECT time, symbol, interval, open, high, low, close, volume, trade_count
			  FROM ohlcv
			  WHERE symbol = $1 AND interval = $2
			  ORDER BY time DESC
			  LIMIT $3`

	testCases := []struct {
		name     string
		mockFn   func(mockClient *mock.MockClient, rows *mock.MockRowsInterface)
		assertFn func(t *testing.T, bars []*Bar, err error)
	}{
		{
			name: "returns bars oldest first",
			mockFn: func(mockClient *mock.MockClient, rows *mock.MockRowsInterface) {
				mockClient.EXPECT().Query(gomock.Any(), query, "AAPL", "1m", 2).Return(rows, nil)

				// The query yields newest first; the repository flips them.
				times := []time.Time{t0.Add(time.Minute), t0}
				closes := []float64{101, 99}
				call := 0
				rows.EXPECT().Next().Return(true).Times(2)
				rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
					gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(dest ...any) error {
						*dest[0].(*time.Time) = times[call]
						*dest[1].(*string) = "AAPL"
						*dest[2].(*string) = "1m"
						*dest[6].(*float64) = closes[call]
						call++
						return nil
					}).Times(2)
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, bars []*Bar, err error) {
				assert.NoError(t, err)
				assert.Len(t, bars, 2)
				assert.Equal(t, t0, bars[0].Time)
				assert.Equal(t, float64(99), bars[0].Close)
				assert.Equal(t, t0.Add(time.Minute), bars[1].Time)
				assert.Equal(t, float64(101), bars[1].Close)
			},
		},
		{
			name: "query error",
			mockFn: func(mockClient *mock.MockClient, rows *mock.MockRowsInterface) {
				mockClient.EXPECT().Query(gomock.Any(), query, "AAPL", "1m", 2).Return(nil, errors.New("error"))
			},
			assertFn: func(t *testing.T, bars []*Bar, err error) {
				assert.Error(t, err)
				assert.Nil(t, bars)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mock.NewMockClient(ctrl)
			rows := mock.NewMockRowsInterface(ctrl)
			tc.mockFn(mockClient, rows)

			repo := NewRepository(mockClient)
			bars, err := repo.GetRecent(context.Background(), "AAPL", "1m", 2)
			tc.assertFn(t, bars, err)
		})
	}
}
