package service

import (
	"context"
	"fmt"

	"github.com/opentariff/tariff/internal/tariff/engine"
	"github.com/opentariff/tariff/internal/tariff/model"
)

// CodeDetail is the browse view of one classification code: the entry
// itself plus the rate records attached to it.
type CodeDetail struct {
	Code             model.ClassificationCode      `json:"code"`
	GeneralRates     []model.GeneralDutyRate       `json:"generalRates"`
	ConcessionOrders []model.ConcessionOrder       `json:"concessionOrders"`
	GstProvision     *model.GstExemptionProvision  `json:"gstProvision,omitempty"`
}

// TariffService serves hierarchical browsing and search over the
// tariff classification tree.
type TariffService struct {
	codes ClassificationReader
	rates engine.RateRepository
}

func NewTariffService(codes ClassificationReader, rates engine.RateRepository) *TariffService {
	return &TariffService{codes: codes, rates: rates}
}

// GetCodeDetail returns one code with its general rates, concession
// orders and GST provision.
func (s *TariffService) GetCodeDetail(ctx context.Context, code string) (*CodeDetail, error) {
	entry, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	general, err := s.rates.GeneralRates(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load general rates for %s: %w", code, err)
	}
	orders, err := s.rates.ConcessionOrders(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load concession orders for %s: %w", code, err)
	}
	provision, err := s.rates.GstProvision(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load gst provision for %s: %w", code, err)
	}

	return &CodeDetail{
		Code:             *entry,
		GeneralRates:     general,
		ConcessionOrders: orders,
		GstProvision:     provision,
	}, nil
}

// Children returns the direct children of a code for hierarchy browsing.
func (s *TariffService) Children(ctx context.Context, parentCode string) ([]model.ClassificationCode, error) {
	if _, err := s.codes.GetByCode(ctx, parentCode); err != nil {
		return nil, err
	}
	return s.codes.Children(ctx, parentCode)
}

// Search lists codes matching a filter with pagination.
func (s *TariffService) Search(ctx context.Context, filter model.ClassificationFilter) (*model.ClassificationListResult, error) {
	return s.codes.List(ctx, filter)
}
