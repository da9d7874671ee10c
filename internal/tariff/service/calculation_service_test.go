package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/model"
	"github.com/opentariff/tariff/internal/tariff/repository"
)

// MockClassificationReader is a mock implementation of ClassificationReader
type MockClassificationReader struct {
	mock.Mock
}

func (m *MockClassificationReader) GetByCode(ctx context.Context, code string) (*model.ClassificationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassificationCode), args.Error(1)
}

func (m *MockClassificationReader) Children(ctx context.Context, parentCode string) ([]model.ClassificationCode, error) {
	args := m.Called(ctx, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ClassificationCode), args.Error(1)
}

func (m *MockClassificationReader) List(ctx context.Context, filter model.ClassificationFilter) (*model.ClassificationListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassificationListResult), args.Error(1)
}

// MockDutyCalculator is a mock implementation of DutyCalculator
type MockDutyCalculator struct {
	mock.Mock
}

func (m *MockDutyCalculator) Calculate(ctx context.Context, in engine.Input) (*engine.Result, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Result), args.Error(1)
}

func testInput() engine.Input {
	return engine.Input{
		ClassificationCode: "8471.30.00",
		OriginCountryCode:  "USA",
		CustomsValue:       decimal.NewFromInt(1000),
		Quantity:           decimal.NewFromInt(1),
		CalculationDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculationService_Calculate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code aborts with not found", func(t *testing.T) {
		codes := new(MockClassificationReader)
		calc := new(MockDutyCalculator)
		codes.On("GetByCode", mock.Anything, "8471.30.00").Return(nil, repository.ErrClassificationNotFound)

		svc := NewCalculationService(codes, calc)
		res, err := svc.Calculate(ctx, testInput())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, engine.ErrCodeNotFound)
		calc.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything)
	})

	t.Run("known code delegated to engine", func(t *testing.T) {
		codes := new(MockClassificationReader)
		calc := new(MockDutyCalculator)
		entry := &model.ClassificationCode{Code: "8471.30.00", Level: model.LevelStatisticalLine, Active: true}
		codes.On("GetByCode", mock.Anything, "8471.30.00").Return(entry, nil)
		expected := &engine.Result{ClassificationCode: "8471.30.00"}
		calc.On("Calculate", mock.Anything, testInput()).Return(expected, nil)

		svc := NewCalculationService(codes, calc)
		res, err := svc.Calculate(ctx, testInput())
		assert.NoError(t, err)
		assert.Equal(t, expected, res)
		calc.AssertExpectations(t)
	})
}
