package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/model"
)

// RateStore is the gorm-backed implementation of engine.RateRepository.
// Queries return every candidate record unfiltered by date; all
// eligibility filtering is the engine's job.
type RateStore struct {
	db *gorm.DB
}

func NewRateStore(db *gorm.DB) *RateStore {
	return &RateStore{db: db}
}

// compile-time check that RateStore satisfies the engine contract.
var _ engine.RateRepository = (*RateStore)(nil)

func (s *RateStore) GeneralRates(ctx context.Context, code string) ([]model.GeneralDutyRate, error) {
	rates := []model.GeneralDutyRate{}
	if err := s.db.WithContext(ctx).
		Where("classification_code = ?", code).
		Order("effective_from").
		Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to query general duty rates for %s: %w", code, err)
	}
	return rates, nil
}

func (s *RateStore) PreferentialRates(ctx context.Context, code, country string) ([]model.PreferentialRate, error) {
	rates := []model.PreferentialRate{}
	if err := s.db.WithContext(ctx).
		Where("classification_code = ? AND origin_country = ?", code, engine.NormalizeCountry(country)).
		Order("agreement_code, effective_from").
		Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to query preferential rates for %s/%s: %w", code, country, err)
	}
	return rates, nil
}

func (s *RateStore) AntiDumpingMeasures(ctx context.Context, code, country string) ([]model.AntiDumpingMeasure, error) {
	measures := []model.AntiDumpingMeasure{}
	if err := s.db.WithContext(ctx).
		Where("classification_code = ? AND origin_country = ?", code, engine.NormalizeCountry(country)).
		Order("case_reference").
		Find(&measures).Error; err != nil {
		return nil, fmt.Errorf("failed to query anti-dumping measures for %s/%s: %w", code, country, err)
	}
	return measures, nil
}

func (s *RateStore) ConcessionOrders(ctx context.Context, code string) ([]model.ConcessionOrder, error) {
	orders := []model.ConcessionOrder{}
	if err := s.db.WithContext(ctx).
		Where("classification_code = ?", code).
		Order("order_number").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to query concession orders for %s: %w", code, err)
	}
	return orders, nil
}

func (s *RateStore) GstProvision(ctx context.Context, code string) (*model.GstExemptionProvision, error) {
	var provision model.GstExemptionProvision
	err := s.db.WithContext(ctx).
		Where("classification_code = ?", code).
		First(&provision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query gst provision for %s: %w", code, err)
	}
	return &provision, nil
}
