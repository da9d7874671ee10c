package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// resolutionState tracks the fixed evaluation order of the precedence
// rules. Each state admits exactly one transition; calling the steps
// out of order is a programming error and is reported as such.
type resolutionState string

const (
	stateDutyPending    resolutionState = "DUTY_PENDING"
	stateDutyDetermined resolutionState = "DUTY_DETERMINED"
	stateTaxPending     resolutionState = "TAX_PENDING"
	stateComplete       resolutionState = "COMPLETE"
)

// precedenceResolver combines the component outcomes into the binding
// duty determination. The transition order is the central contract of
// the engine:
//
//  1. A concession override zeroes base duty; otherwise base duty is
//     min(MFN, FTA), with MFN retained as the fallback so that "no
//     preferential rate" never silently produces a zero duty.
//  2. Anti-dumping stacks on top of base duty and is never suppressed
//     by a concession order.
//  3. GST is computed on customs value plus total duty, minus any
//     exemption.
//  4. Total payable = total duty + GST.
type precedenceResolver struct {
	state        resolutionState
	baseDuty     decimal.Decimal
	totalDuty    decimal.Decimal
	gstAmount    decimal.Decimal
	totalPayable decimal.Decimal
}

func newPrecedenceResolver() *precedenceResolver {
	return &precedenceResolver{state: stateDutyPending}
}

// DetermineBaseDuty fixes the MFN/FTA portion of the duty. A nil fta
// means no preferential rate was eligible and the MFN amount stands
// alone. Transitions DUTY_PENDING -> DUTY_DETERMINED.
func (r *precedenceResolver) DetermineBaseDuty(mfn decimal.Decimal, fta *decimal.Decimal, concessionApplied bool) (decimal.Decimal, error) {
	if r.state != stateDutyPending {
		return decimal.Zero, fmt.Errorf("cannot determine base duty in state %s", r.state)
	}

	switch {
	case concessionApplied:
		r.baseDuty = decimal.Zero
	case fta != nil:
		r.baseDuty = decimal.Min(mfn, *fta)
	default:
		r.baseDuty = mfn
	}

	r.state = stateDutyDetermined
	return r.baseDuty, nil
}

// AddTradeRemedy stacks the anti-dumping/countervailing amount onto the
// base duty. Transitions DUTY_DETERMINED -> TAX_PENDING.
func (r *precedenceResolver) AddTradeRemedy(amount decimal.Decimal) (decimal.Decimal, error) {
	if r.state != stateDutyDetermined {
		return decimal.Zero, fmt.Errorf("cannot add trade remedy in state %s", r.state)
	}

	r.totalDuty = r.baseDuty.Add(amount)
	r.state = stateTaxPending
	return r.totalDuty, nil
}

// ApplyTax records the GST amount (zero when exempt) and completes the
// resolution. Transitions TAX_PENDING -> COMPLETE.
func (r *precedenceResolver) ApplyTax(gst decimal.Decimal) error {
	if r.state != stateTaxPending {
		return fmt.Errorf("cannot apply tax in state %s", r.state)
	}

	r.gstAmount = gst
	r.totalPayable = r.totalDuty.Add(gst)
	r.state = stateComplete
	return nil
}

// TotalPayable returns the final liability. Valid only once COMPLETE.
func (r *precedenceResolver) TotalPayable() (decimal.Decimal, error) {
	if r.state != stateComplete {
		return decimal.Zero, fmt.Errorf("resolution not complete, state is %s", r.state)
	}
	return r.totalPayable, nil
}
