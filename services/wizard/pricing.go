package wizard

import "edupath/models"

// Pricing constants, in whole currency units. The gateway multiplier is
// applied later by the submitter.
const (
	ServiceUnitPrice  = 2000
	PlanBasicsPrice   = 30000
	PlanAdvancedPrice = 50000

	// defaultQuote is shown before any plan is selected. It is never
	// submittable: the validator blocks step 3 without a plan selection on
	// the choose_plan sub-step.
	defaultQuote = 2000
)

// Quote returns the current price for the draft. On the select_service
// sub-step pricing is linear in the number of chosen services; otherwise the
// selected plan's fixed price applies.
func Quote(d models.BookingDraft) int64 {
	if d.SubStep == models.SubStepSelectService {
		return int64(len(d.Services)) * ServiceUnitPrice
	}
	switch d.Plan {
	case models.PlanBasics:
		return PlanBasicsPrice
	case models.PlanAdvanced:
		return PlanAdvancedPrice
	}
	return defaultQuote
}

// AuthoritativeAmount is the price actually charged at submission time.
// The service path only wins when at least one service is chosen; otherwise
// the selected plan's price applies even if the user is parked on the
// select_service sub-step.
func AuthoritativeAmount(d models.BookingDraft) int64 {
	if d.SubStep == models.SubStepSelectService && len(d.Services) == 0 {
		d.SubStep = models.SubStepChoosePlan
	}
	return Quote(d)
}
