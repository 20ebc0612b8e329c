package alert

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domain "github.com/quantlabs/quant-analytics/internal/domain/alert"
	"github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert"
	repoMock "github.com/quantlabs/quant-analytics/internal/infrastructure/timescale/alert/mock"
	"github.com/quantlabs/quant-analytics/pkg/errors"
	loggerMock "github.com/quantlabs/quant-analytics/pkg/logger/mock"
	tsMock "github.com/quantlabs/quant-analytics/pkg/timescale/mock"
)

func TestUsecase_CreateRule(t *testing.T) {
	testCases := []struct {
		name     string
		params   domain.CreateRuleParams
		mockFn   func(repo *repoMock.MockAlertRepository, log *loggerMock.MockInterface)
		assertFn func(t *testing.T, id int64, err error)
	}{
		{
			name: "success",
			params: domain.CreateRuleParams{
				AlertType: alert.TypePrice,
				Symbol1:   "AAPL",
				Condition: alert.ConditionCrossesAbove,
				Threshold: 150,
			},
			mockFn: func(repo *repoMock.MockAlertRepository, log *loggerMock.MockInterface) {
				repo.EXPECT().CreateRule(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, rule *alert.Rule) (int64, error) {
						assert.True(t, rule.Active)
						assert.Equal(t, alert.ConditionCrossesAbove, rule.Condition)
						return int64(42), nil
					})
				log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
			},
			assertFn: func(t *testing.T, id int64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), id)
			},
		},
		{
			name: "invalid condition",
			params: domain.CreateRuleParams{
				AlertType: alert.TypePrice,
				Symbol1:   "AAPL",
				Condition: "between",
				Threshold: 150,
			},
			mockFn: func(repo *repoMock.MockAlertRepository, log *loggerMock.MockInterface) {
			},
			assertFn: func(t *testing.T, id int64, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrInvalidCondition)))
			},
		},
		{
			name: "missing symbol",
			params: domain.CreateRuleParams{
				AlertType: alert.TypePrice,
				Condition: alert.ConditionGreaterThan,
				Threshold: 150,
			},
			mockFn: func(repo *repoMock.MockAlertRepository, log *loggerMock.MockInterface) {
			},
			assertFn: func(t *testing.T, id int64, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrInvalidCondition)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := repoMock.NewMockAlertRepository(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(repo, log)

			id, err := NewUsecase(repo, tsMock.NewMockClient(ctrl), log).CreateRule(context.Background(), tc.params)
			tc.assertFn(t, id, err)
		})
	}
}

func TestUsecase_DeactivateRule(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(repo *repoMock.MockAlertRepository)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(repo *repoMock.MockAlertRepository) {
				repo.EXPECT().GetRule(gomock.Any(), int64(1)).Return(&alert.Rule{ID: 1, Active: true}, nil)
				repo.EXPECT().SetActive(gomock.Any(), int64(1), false).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "rule not found",
			mockFn: func(repo *repoMock.MockAlertRepository) {
				repo.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.ErrRuleNotFound)))
			},
		},
		{
			name: "repository error",
			mockFn: func(repo *repoMock.MockAlertRepository) {
				repo.EXPECT().GetRule(gomock.Any(), int64(1)).Return(nil, stderrors.New("error"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := repoMock.NewMockAlertRepository(ctrl)
			tc.mockFn(repo)

			err := NewUsecase(repo, tsMock.NewMockClient(ctrl), loggerMock.NewMockInterface(ctrl)).DeactivateRule(context.Background(), 1)
			tc.assertFn(t, err)
		})
	}
}

func TestUsecase_Trigger(t *testing.T) {
	at := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(repo *repoMock.MockAlertRepository, client *tsMock.MockClient, tx *tsMock.MockTx)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "both writes commit together",
			mockFn: func(repo *repoMock.MockAlertRepository, client *tsMock.MockClient, tx *tsMock.MockTx) {
				client.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				repo.EXPECT().MarkTriggered(gomock.Any(), int64(7), at).Return(nil)
				repo.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, event *alert.Event) error {
						assert.Equal(t, int64(7), event.AlertID)
						assert.Equal(t, float64(151.5), event.Value)
						assert.Equal(t, at, event.Time)
						return nil
					})
				tx.EXPECT().Commit(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "event write failure rolls back the triggered_at update",
			mockFn: func(repo *repoMock.MockAlertRepository, client *tsMock.MockClient, tx *tsMock.MockTx) {
				client.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				repo.EXPECT().MarkTriggered(gomock.Any(), int64(7), at).Return(nil)
				repo.EXPECT().RecordEvent(gomock.Any(), gomock.Any()).Return(stderrors.New("connection refused"))
				tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "mark failure rolls back",
			mockFn: func(repo *repoMock.MockAlertRepository, client *tsMock.MockClient, tx *tsMock.MockTx) {
				client.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				repo.EXPECT().MarkTriggered(gomock.Any(), int64(7), at).Return(stderrors.New("error"))
				tx.EXPECT().Rollback(gomock.Any()).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "begin failure",
			mockFn: func(repo *repoMock.MockAlertRepository, client *tsMock.MockClient, tx *tsMock.MockTx) {
				client.EXPECT().Begin(gomock.Any()).Return(nil, stderrors.New("error"))
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

			repo := repoMock.NewMockAlertRepository(ctrl)
			client := tsMock.NewMockClient(ctrl)
			tx := tsMock.NewMockTx(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			log.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
			tc.mockFn(repo, client, tx)

			err := NewUsecase(repo, client, log).Trigger(context.Background(), 7, at, 151.5, map[string]any{"condition": ">"})
			tc.assertFn(t, err)
		})
	}
}
