package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input is one calculation request. It is constructed per request and
// never mutated by the engine.
type Input struct {
	ClassificationCode string          `json:"classification_code"`
	OriginCountryCode  string          `json:"origin_country_code"`
	CustomsValue       decimal.Decimal `json:"customs_value"`
	Quantity           decimal.Decimal `json:"quantity"`
	CalculationDate    time.Time       `json:"calculation_date"`
}

// SelectedPreference describes the preferential rate record that won
// selection, carried on the result so the answer is explainable.
type SelectedPreference struct {
	AgreementCode   string          `json:"agreement_code"`
	Rate            decimal.Decimal `json:"rate"`
	StagingCategory string          `json:"staging_category"`
}

// Result is one calculation response: the full per-component breakdown
// plus the warnings accumulated along the way. It is constructed once
// and never mutated after return.
type Result struct {
	ClassificationCode string              `json:"classification_code"`
	OriginCountryCode  string              `json:"origin_country_code"`
	CustomsValue       decimal.Decimal     `json:"customs_value"`
	MFNAmount          decimal.Decimal     `json:"mfn_amount"`
	SelectedFTA        *SelectedPreference `json:"selected_fta"`
	FTAAmount          decimal.Decimal     `json:"fta_amount"`
	AntiDumpingAmount  decimal.Decimal     `json:"antidumping_amount"`
	TCOApplied         bool                `json:"tco_applied"`
	TotalDuty          decimal.Decimal     `json:"total_duty"`
	GSTAmount          decimal.Decimal     `json:"gst_amount"`
	GSTExempt          bool                `json:"gst_exempt"`
	TotalPayable       decimal.Decimal     `json:"total_payable"`
	Warnings           []string            `json:"warnings"`
}

// SafeguardFunc reports whether an active safeguard measure is in
// force for an agreement and classification code. Safeguard status is
// an external fact; the engine never computes it.
type SafeguardFunc func(agreementCode, classificationCode string) bool

// Config carries the calculation parameters the engine needs beyond
// its input. It is passed at construction; the engine reads no ambient
// process state.
type Config struct {
	// GSTRatePercent is the goods-and-services tax rate as a percent
	// (10 means 10%).
	GSTRatePercent decimal.Decimal

	// RoundPlaces is the number of decimal places each monetary amount
	// is rounded to.
	RoundPlaces int32

	// SafeguardActive, when non-nil, suppresses preferential rates whose
	// safeguard flag is set and for which it returns true.
	SafeguardActive SafeguardFunc
}
