package engine

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/opentariff/tariff/internal/tariff/model"
)

// Calculator is the duty calculation orchestrator. It is stateless and
// side-effect-free per calculation: each invocation is a pure function
// of its input and the rate snapshot returned by the repository, so
// concurrent calculations need no locking inside the engine.
type Calculator struct {
	repo RateRepository
	cfg  Config
}

// New creates a Calculator over a rate repository with explicit
// calculation parameters.
func New(repo RateRepository, cfg Config) *Calculator {
	return &Calculator{repo: repo, cfg: cfg}
}

// Calculate determines the total import duty and tax liability for one
// request. Invalid input is rejected before any repository call; a
// failed lookup aborts the calculation with a DependencyFailureError;
// every non-fatal anomaly surfaces as a warning on an otherwise
// complete result.
func (c *Calculator) Calculate(ctx context.Context, in Input) (*Result, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	in.OriginCountryCode = NormalizeCountry(in.OriginCountryCode)

	var (
		generalRates []model.GeneralDutyRate
		prefRates    []model.PreferentialRate
		measures     []model.AntiDumpingMeasure
		orders       []model.ConcessionOrder
		provision    *model.GstExemptionProvision
	)

	// The five lookups are independent; run them concurrently. All pure
	// computation happens afterwards against the snapshot they return.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		generalRates, err = c.repo.GeneralRates(gctx, in.ClassificationCode)
		if err != nil {
			return &DependencyFailureError{Lookup: "general_rates", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		prefRates, err = c.repo.PreferentialRates(gctx, in.ClassificationCode, in.OriginCountryCode)
		if err != nil {
			return &DependencyFailureError{Lookup: "preferential_rates", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		measures, err = c.repo.AntiDumpingMeasures(gctx, in.ClassificationCode, in.OriginCountryCode)
		if err != nil {
			return &DependencyFailureError{Lookup: "anti_dumping_measures", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		orders, err = c.repo.ConcessionOrders(gctx, in.ClassificationCode)
		if err != nil {
			return &DependencyFailureError{Lookup: "concession_orders", Err: err}
		}
		return nil
	})
	g.Go(func() (err error) {
		provision, err = c.repo.GstProvision(gctx, in.ClassificationCode)
		if err != nil {
			return &DependencyFailureError{Lookup: "gst_provision", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mfn := c.calculateMFN(in, generalRates)
	fta := c.calculateFTA(in, prefRates)
	remedy := c.calculateAntiDumping(in, measures)
	concession := c.findConcession(in, orders)

	resolver := newPrecedenceResolver()

	var ftaAmount *decimal.Decimal
	if fta.selected != nil {
		ftaAmount = &fta.amount
	}
	if _, err := resolver.DetermineBaseDuty(mfn.amount, ftaAmount, concession.applied); err != nil {
		return nil, err
	}

	totalDuty, err := resolver.AddTradeRemedy(remedy)
	if err != nil {
		return nil, err
	}

	gstAmount, gstExempt := c.calculateGST(in, provision, totalDuty)
	if err := resolver.ApplyTax(gstAmount); err != nil {
		return nil, err
	}

	totalPayable, err := resolver.TotalPayable()
	if err != nil {
		return nil, err
	}

	warnings := make([]string, 0, len(mfn.warnings)+len(fta.warnings))
	warnings = append(warnings, mfn.warnings...)
	warnings = append(warnings, fta.warnings...)

	return &Result{
		ClassificationCode: in.ClassificationCode,
		OriginCountryCode:  in.OriginCountryCode,
		CustomsValue:       in.CustomsValue,
		MFNAmount:          mfn.amount,
		SelectedFTA:        fta.selected,
		FTAAmount:          fta.amount,
		AntiDumpingAmount:  remedy,
		TCOApplied:         concession.applied,
		TotalDuty:          totalDuty,
		GSTAmount:          gstAmount,
		GSTExempt:          gstExempt,
		TotalPayable:       totalPayable,
		Warnings:           warnings,
	}, nil
}

// validateInput rejects malformed requests before any repository call.
func validateInput(in Input) error {
	if strings.TrimSpace(in.ClassificationCode) == "" {
		return &InvalidInputError{Field: "classification_code", Reason: "must not be empty"}
	}
	country := NormalizeCountry(in.OriginCountryCode)
	if len(country) < 2 || len(country) > 3 {
		return &InvalidInputError{Field: "origin_country_code", Reason: "must be a 2 or 3 letter country code"}
	}
	if in.CustomsValue.IsNegative() {
		return &InvalidInputError{Field: "customs_value", Reason: "must not be negative"}
	}
	if in.Quantity.IsNegative() {
		return &InvalidInputError{Field: "quantity", Reason: "must not be negative"}
	}
	if in.CalculationDate.IsZero() {
		return &InvalidInputError{Field: "calculation_date", Reason: "must be set"}
	}
	return nil
}
