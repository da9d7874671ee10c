package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/opentariff/tariff/internal/tariff/model"
)

// WarnNoGeneralRate is attached when a valid classification code has no
// general rate on file; the calculation proceeds with a zero MFN amount
// rather than failing silently.
const WarnNoGeneralRate = "no general rate on file"

var hundred = decimal.NewFromInt(100)

// rateAmount computes the duty a single rate yields for the input.
func (c *Calculator) rateAmount(kind model.RateKind, rate decimal.Decimal, in Input) decimal.Decimal {
	switch kind {
	case model.RateKindAdValorem:
		return in.CustomsValue.Mul(rate).Div(hundred).Round(c.cfg.RoundPlaces)
	case model.RateKindSpecific:
		return in.Quantity.Mul(rate).Round(c.cfg.RoundPlaces)
	default:
		return decimal.Zero
	}
}

type mfnOutcome struct {
	amount   decimal.Decimal
	selected *model.GeneralDutyRate
	warnings []string
}

// calculateMFN selects the single general rate in force on the
// calculation date. No rate on file degrades to a zero amount with a
// warning; overlapping windows degrade to the most recently effective
// record with a warning.
func (c *Calculator) calculateMFN(in Input, rates []model.GeneralDutyRate) mfnOutcome {
	current := make([]model.GeneralDutyRate, 0, len(rates))
	for _, r := range rates {
		if windowContains(r.EffectiveFrom, r.EffectiveTo, in.CalculationDate) {
			current = append(current, r)
		}
	}

	if len(current) == 0 {
		return mfnOutcome{amount: decimal.Zero, warnings: []string{WarnNoGeneralRate}}
	}

	out := mfnOutcome{}
	if len(current) > 1 {
		sort.Slice(current, func(i, j int) bool {
			if !current[i].EffectiveFrom.Equal(current[j].EffectiveFrom) {
				return current[i].EffectiveFrom.After(current[j].EffectiveFrom)
			}
			return current[i].ID.String() < current[j].ID.String()
		})
		out.warnings = append(out.warnings, fmt.Sprintf(
			"multiple general rates in force on %s; most recently effective used",
			in.CalculationDate.Format("2006-01-02")))
	}

	selected := current[0]
	out.selected = &selected
	out.amount = c.rateAmount(selected.Kind, selected.Rate, in)
	return out
}

type ftaOutcome struct {
	amount   decimal.Decimal
	selected *SelectedPreference
	warnings []string
}

type ftaCandidate struct {
	record model.PreferentialRate
	amount decimal.Decimal
}

// calculateFTA filters the preferential records down to those eligible
// on the calculation date and selects the one yielding the lowest duty.
// Ties prefer a free (zero) rate over a numerically equal non-zero
// rate, then the agreement code that sorts first lexicographically, so
// selection is reproducible.
func (c *Calculator) calculateFTA(in Input, records []model.PreferentialRate) ftaOutcome {
	out := ftaOutcome{amount: decimal.Zero}

	eligible := make([]ftaCandidate, 0, len(records))
	for _, r := range records {
		if NormalizeCountry(r.OriginCountry) != in.OriginCountryCode {
			continue
		}
		if !windowContains(r.EffectiveFrom, r.EffectiveTo, in.CalculationDate) {
			continue
		}
		if r.SafeguardApplicable && c.cfg.SafeguardActive != nil &&
			c.cfg.SafeguardActive(r.AgreementCode, r.ClassificationCode) {
			continue
		}
		ok, warning := resolveStaging(r.StagingCategory, r.EffectiveFrom, in.CalculationDate, r.AgreementCode)
		if !ok {
			out.warnings = append(out.warnings, warning)
			continue
		}
		eligible = append(eligible, ftaCandidate{
			record: r,
			amount: c.rateAmount(model.RateKindAdValorem, r.Rate, in),
		})
	}

	eligible = c.dedupeByAgreement(in, eligible, &out)
	if len(eligible) == 0 {
		return out
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if cmp := a.amount.Cmp(b.amount); cmp != 0 {
			return cmp < 0
		}
		if a.record.Rate.IsZero() != b.record.Rate.IsZero() {
			return a.record.Rate.IsZero()
		}
		return a.record.AgreementCode < b.record.AgreementCode
	})

	best := eligible[0]
	out.amount = best.amount
	out.selected = &SelectedPreference{
		AgreementCode:   best.record.AgreementCode,
		Rate:            best.record.Rate,
		StagingCategory: best.record.StagingCategory,
	}
	return out
}

// dedupeByAgreement collapses overlapping eligible records within the
// same agreement to the most recently effective one, attaching a
// warning for the ambiguity.
func (c *Calculator) dedupeByAgreement(in Input, eligible []ftaCandidate, out *ftaOutcome) []ftaCandidate {
	byAgreement := make(map[string][]ftaCandidate)
	for _, cand := range eligible {
		byAgreement[cand.record.AgreementCode] = append(byAgreement[cand.record.AgreementCode], cand)
	}

	agreements := make([]string, 0, len(byAgreement))
	for code := range byAgreement {
		agreements = append(agreements, code)
	}
	sort.Strings(agreements)

	deduped := make([]ftaCandidate, 0, len(agreements))
	for _, code := range agreements {
		cands := byAgreement[code]
		if len(cands) > 1 {
			sort.Slice(cands, func(i, j int) bool {
				if !cands[i].record.EffectiveFrom.Equal(cands[j].record.EffectiveFrom) {
					return cands[i].record.EffectiveFrom.After(cands[j].record.EffectiveFrom)
				}
				return cands[i].record.ID.String() < cands[j].record.ID.String()
			})
			out.warnings = append(out.warnings, fmt.Sprintf(
				"overlapping preferential rates under %s on %s; most recently effective used",
				code, in.CalculationDate.Format("2006-01-02")))
		}
		deduped = append(deduped, cands[0])
	}
	return deduped
}

// calculateAntiDumping sums all currently active trade remedy measures
// matching the origin country. Dumping and countervailing measures can
// coexist, so they stack additively.
func (c *Calculator) calculateAntiDumping(in Input, measures []model.AntiDumpingMeasure) decimal.Decimal {
	total := decimal.Zero
	for _, m := range measures {
		if !m.Active {
			continue
		}
		if NormalizeCountry(m.OriginCountry) != in.OriginCountryCode {
			continue
		}
		if !windowContains(m.EffectiveFrom, m.EffectiveTo, in.CalculationDate) {
			continue
		}
		total = total.Add(c.rateAmount(m.RateKind, m.Rate, in))
	}
	return total
}

type concessionOutcome struct {
	applied bool
	order   *model.ConcessionOrder
}

// findConcession returns an override instruction when a current
// concession order covers the calculation date. The override zeroes
// general and preferential duty but never anti-dumping measures.
func (c *Calculator) findConcession(in Input, orders []model.ConcessionOrder) concessionOutcome {
	for _, o := range orders {
		if !o.Current {
			continue
		}
		if !windowContains(o.EffectiveFrom, o.EffectiveTo, in.CalculationDate) {
			continue
		}
		order := o
		return concessionOutcome{applied: true, order: &order}
	}
	return concessionOutcome{}
}

// calculateGST computes goods-and-services tax on the duty-inclusive
// customs value, or reports exemption when an active provision matches.
func (c *Calculator) calculateGST(in Input, provision *model.GstExemptionProvision, totalDuty decimal.Decimal) (decimal.Decimal, bool) {
	if provision != nil && provision.Active {
		return decimal.Zero, true
	}
	base := in.CustomsValue.Add(totalDuty)
	return base.Mul(c.cfg.GSTRatePercent).Div(hundred).Round(c.cfg.RoundPlaces), false
}
