package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateKind discriminates how a duty rate is expressed.
type RateKind string

const (
	RateKindAdValorem RateKind = "AD_VALOREM" // percentage of customs value, Rate is a percent (5.00 = 5%)
	RateKindSpecific  RateKind = "SPECIFIC"   // fixed amount per unit quantity
	RateKindFree      RateKind = "FREE"       // duty free
)

// MeasureKind discriminates trade remedy measures.
type MeasureKind string

const (
	MeasureKindDumping        MeasureKind = "DUMPING"
	MeasureKindCountervailing MeasureKind = "COUNTERVAILING"
)

// Date-window convention for every rate record in this package:
// EffectiveFrom is inclusive; a nil EffectiveTo means open-ended
// (currently in force); a non-nil EffectiveTo is inclusive, so a record
// is current on a date d when EffectiveFrom <= d and (EffectiveTo is
// nil or d <= EffectiveTo).

// GeneralDutyRate is the default (most-favoured-nation) duty rate for a
// classification code. One record is expected to be in force per code
// at any given date; overlapping windows are ambiguous input data.
// Rate is a percent for AD_VALOREM rates and an amount per unit of
// quantity (Unit) for SPECIFIC rates.
type GeneralDutyRate struct {
	BaseModel
	ClassificationCode string          `gorm:"type:varchar(20);column:classification_code;not null;index" json:"classificationCode"`
	Kind               RateKind        `gorm:"type:varchar(20);column:kind;not null" json:"kind"`
	Rate               decimal.Decimal `gorm:"type:decimal(12,4);column:rate;not null" json:"rate"`
	Unit               string          `gorm:"type:varchar(20);column:unit" json:"unit,omitempty"`
	EffectiveFrom      time.Time       `gorm:"type:date;column:effective_from;not null;index" json:"effectiveFrom"`
	EffectiveTo        *time.Time      `gorm:"type:date;column:effective_to;index" json:"effectiveTo,omitempty"`
}

func (r *GeneralDutyRate) TableName() string {
	return "general_duty_rates"
}

// PreferentialRate is a reduced rate available under a named trade
// agreement for goods originating in a partner country. Many records
// may exist per code, one per agreement and country. Rate is a percent;
// zero means duty free.
type PreferentialRate struct {
	BaseModel
	ClassificationCode  string          `gorm:"type:varchar(20);column:classification_code;not null;index" json:"classificationCode"`
	AgreementCode       string          `gorm:"type:varchar(20);column:agreement_code;not null" json:"agreementCode"`
	OriginCountry       string          `gorm:"type:varchar(3);column:origin_country;not null;index" json:"originCountry"`
	Rate                decimal.Decimal `gorm:"type:decimal(12,4);column:rate;not null" json:"rate"`
	StagingCategory     string          `gorm:"type:varchar(5);column:staging_category;not null" json:"stagingCategory"`
	RuleOfOrigin        string          `gorm:"type:text;column:rule_of_origin" json:"ruleOfOrigin,omitempty"`
	SafeguardApplicable bool            `gorm:"column:safeguard_applicable;not null;default:false" json:"safeguardApplicable"`
	EffectiveFrom       time.Time       `gorm:"type:date;column:effective_from;not null;index" json:"effectiveFrom"`
	EffectiveTo         *time.Time      `gorm:"type:date;column:effective_to;index" json:"effectiveTo,omitempty"`
}

func (r *PreferentialRate) TableName() string {
	return "preferential_rates"
}

// AntiDumpingMeasure is an additional duty imposed on goods from a
// specific country under a trade remedy case. Measures stack
// additively and are independent of general and preferential rates.
type AntiDumpingMeasure struct {
	BaseModel
	ClassificationCode string          `gorm:"type:varchar(20);column:classification_code;not null;index" json:"classificationCode"`
	OriginCountry      string          `gorm:"type:varchar(3);column:origin_country;not null;index" json:"originCountry"`
	Kind               MeasureKind     `gorm:"type:varchar(20);column:kind;not null" json:"kind"`
	RateKind           RateKind        `gorm:"type:varchar(20);column:rate_kind;not null" json:"rateKind"`
	Rate               decimal.Decimal `gorm:"type:decimal(12,4);column:rate;not null" json:"rate"`
	CaseReference      string          `gorm:"type:varchar(50);column:case_reference" json:"caseReference,omitempty"`
	Active             bool            `gorm:"column:active;not null;default:true" json:"active"`
	EffectiveFrom      time.Time       `gorm:"type:date;column:effective_from;not null" json:"effectiveFrom"`
	EffectiveTo        *time.Time      `gorm:"type:date;column:effective_to" json:"effectiveTo,omitempty"`
}

func (m *AntiDumpingMeasure) TableName() string {
	return "anti_dumping_measures"
}

// ConcessionOrder is a standing, gazetted exemption from duty for goods
// matching a description, independent of origin. A current order
// overrides general and preferential duty but never trade remedies.
type ConcessionOrder struct {
	BaseModel
	ClassificationCode string     `gorm:"type:varchar(20);column:classification_code;not null;index" json:"classificationCode"`
	OrderNumber        string     `gorm:"type:varchar(30);column:order_number;not null" json:"orderNumber"`
	Description        string     `gorm:"type:text;column:description" json:"description,omitempty"`
	Current            bool       `gorm:"column:current;not null;default:true" json:"current"`
	EffectiveFrom      time.Time  `gorm:"type:date;column:effective_from;not null" json:"effectiveFrom"`
	EffectiveTo        *time.Time `gorm:"type:date;column:effective_to" json:"effectiveTo,omitempty"`
}

func (o *ConcessionOrder) TableName() string {
	return "concession_orders"
}

// GstExemptionProvision exempts imports under a classification code
// from goods-and-services tax under a named category. Applied after
// duty is computed, to the duty-inclusive value.
type GstExemptionProvision struct {
	BaseModel
	ClassificationCode string `gorm:"type:varchar(20);column:classification_code;not null;uniqueIndex" json:"classificationCode"`
	Category           string `gorm:"type:varchar(50);column:category" json:"category,omitempty"`
	ExemptionType      string `gorm:"type:varchar(50);column:exemption_type;not null" json:"exemptionType"`
	Active             bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (p *GstExemptionProvision) TableName() string {
	return "gst_exemption_provisions"
}
