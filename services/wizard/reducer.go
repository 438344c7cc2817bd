package wizard

import (
	"strings"
	"time"
	"unicode"

	"edupath/models"
)

// Reduce applies a single event to the draft and returns the next draft.
// It is pure: validation, persistence and notifications are the caller's job.
func Reduce(d models.BookingDraft, ev Event) models.BookingDraft {
	switch e := ev.(type) {
	case SetIdentityEvent:
		d.FirstName = strings.TrimSpace(e.FirstName)
		d.LastName = strings.TrimSpace(e.LastName)
		d.AddressLine1 = strings.TrimSpace(e.AddressLine1)
		d.AddressLine2 = strings.TrimSpace(e.AddressLine2)
		d.City = strings.TrimSpace(e.City)
		d.State = strings.TrimSpace(e.State)
		d.Pincode = digitsOnly(e.Pincode)

	case SetContactEvent:
		email := strings.TrimSpace(e.Email)
		if email != d.Email {
			// Editing the email invalidates any prior verification.
			d.EmailVerified = false
			d.OTPSent = false
			d.OTP = ""
		}
		d.Email = email
		d.Mobile = digitsOnly(e.Mobile)
		if e.CountryCode != "" {
			d.CountryCode = e.CountryCode
		}

	case SetOTPEvent:
		otp := digitsOnly(e.OTP)
		if len(otp) > 6 {
			otp = otp[:6]
		}
		d.OTP = otp

	case OTPSentEvent:
		d.OTPSent = true

	case EmailVerifiedEvent:
		d.EmailVerified = true

	case ChoosePlanEvent:
		d.Plan = e.Plan

	case ToggleServiceEvent:
		if e.Service == "" {
			break
		}
		if d.HasService(e.Service) {
			kept := d.Services[:0:0]
			for _, s := range d.Services {
				if s != e.Service {
					kept = append(kept, s)
				}
			}
			d.Services = kept
		} else {
			d.Services = append(append([]string(nil), d.Services...), e.Service)
		}

	case SetSubStepEvent:
		if e.SubStep == models.SubStepChoosePlan || e.SubStep == models.SubStepSelectService {
			d.SubStep = e.SubStep
		}

	case SelectDateEvent:
		d.SelectedDate = e.Date

	case SelectTimeEvent:
		if IsKnownSlot(e.Slot) {
			d.SelectedTime = e.Slot
		}

	case AdvanceEvent:
		d = advance(d)

	case BackEvent:
		d = back(d)

	case BookingConfirmedEvent:
		d.CurrentStep = models.StepDone
	}

	d.UpdatedAt = time.Now()
	return d
}

// advance walks the forward edge of the step machine. Validation happens
// before the event is applied, so this only encodes the topology.
func advance(d models.BookingDraft) models.BookingDraft {
	switch d.CurrentStep {
	case models.StepIdentity:
		d.CurrentStep = models.StepContact
	case models.StepContact:
		d.CurrentStep = models.StepSelection
		d.SubStep = models.SubStepChoosePlan
	case models.StepSelection:
		if d.SubStep == models.SubStepChoosePlan {
			d.SubStep = models.SubStepSelectService
		} else {
			d.CurrentStep = models.StepSchedule
		}
	}
	// Step 4 exits through submission, step 5 is terminal.
	return d
}

// back walks the reverse edge. Schedule fields survive leaving step 4.
func back(d models.BookingDraft) models.BookingDraft {
	switch d.CurrentStep {
	case models.StepContact:
		d.CurrentStep = models.StepIdentity
	case models.StepSelection:
		if d.SubStep == models.SubStepSelectService {
			d.SubStep = models.SubStepChoosePlan
		} else {
			d.CurrentStep = models.StepContact
		}
	case models.StepSchedule:
		d.CurrentStep = models.StepSelection
		d.SubStep = models.SubStepSelectService
	}
	return d
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
