package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/model"
	"github.com/opentariff/tariff/internal/tariff/repository"
)

// ClassificationReader is the read surface over the tariff hierarchy
// that the services consume.
type ClassificationReader interface {
	GetByCode(ctx context.Context, code string) (*model.ClassificationCode, error)
	Children(ctx context.Context, parentCode string) ([]model.ClassificationCode, error)
	List(ctx context.Context, filter model.ClassificationFilter) (*model.ClassificationListResult, error)
}

// DutyCalculator is the calculation engine as the service sees it.
type DutyCalculator interface {
	Calculate(ctx context.Context, in engine.Input) (*engine.Result, error)
}

// CalculationService fronts the duty calculation engine. Its one added
// responsibility is validating that the classification code exists —
// the engine treats an unknown code as the caller's problem.
type CalculationService struct {
	codes ClassificationReader
	calc  DutyCalculator
}

func NewCalculationService(codes ClassificationReader, calc DutyCalculator) *CalculationService {
	return &CalculationService{codes: codes, calc: calc}
}

// Calculate runs one duty calculation. An unknown classification code
// aborts with engine.ErrCodeNotFound and no partial result.
func (s *CalculationService) Calculate(ctx context.Context, in engine.Input) (*engine.Result, error) {
	if _, err := s.codes.GetByCode(ctx, in.ClassificationCode); err != nil {
		if errors.Is(err, repository.ErrClassificationNotFound) {
			return nil, fmt.Errorf("%w: %s", engine.ErrCodeNotFound, in.ClassificationCode)
		}
		return nil, fmt.Errorf("failed to validate classification code: %w", err)
	}

	return s.calc.Calculate(ctx, in)
}
