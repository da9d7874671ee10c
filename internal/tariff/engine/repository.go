package engine

import (
	"context"

	"github.com/opentariff/tariff/internal/tariff/model"
)

// RateRepository is the read-only query surface the engine consumes.
// Implementations return every candidate record for a classification
// code (and origin country where relevant) unfiltered by date; the
// engine performs all eligibility filtering itself. An empty slice,
// never an error, is the answer when no records exist. Validating that
// the classification code itself exists is the caller's responsibility.
type RateRepository interface {
	// GeneralRates returns all general (MFN) duty rates for a code.
	GeneralRates(ctx context.Context, code string) ([]model.GeneralDutyRate, error)

	// PreferentialRates returns all preferential (FTA) rates for a code
	// and origin country.
	PreferentialRates(ctx context.Context, code, country string) ([]model.PreferentialRate, error)

	// AntiDumpingMeasures returns all trade remedy measures for a code
	// and origin country.
	AntiDumpingMeasures(ctx context.Context, code, country string) ([]model.AntiDumpingMeasure, error)

	// ConcessionOrders returns all tariff concession orders for a code.
	ConcessionOrders(ctx context.Context, code string) ([]model.ConcessionOrder, error)

	// GstProvision returns the GST exemption provision for a code, or
	// nil when none exists.
	GstProvision(ctx context.Context, code string) (*model.GstExemptionProvision, error)
}
