package wizard

import (
	"fmt"
	"regexp"

	"edupath/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator gates forward navigation. Validate is pure; the caller surfaces
// the returned error as a transient notice.
type Validator struct {
	Avail *Availability
}

// NewValidator returns a validator checking slot staleness against the
// given availability calculator.
func NewValidator(avail *Availability) *Validator {
	return &Validator{Avail: avail}
}

// Validate checks whether the draft may leave the given step. A nil error
// means the step passes.
func (v *Validator) Validate(step int, d models.BookingDraft) error {
	switch step {
	case models.StepIdentity:
		return validateIdentity(d)
	case models.StepContact:
		return validateContact(d)
	case models.StepSelection:
		return validateSelection(d)
	case models.StepSchedule:
		return v.validateSchedule(d)
	case models.StepDone:
		return nil
	default:
		return fmt.Errorf("unknown step %d", step)
	}
}

func validateIdentity(d models.BookingDraft) error {
	if d.FirstName == "" {
		return fmt.Errorf("please enter your first name")
	}
	if d.AddressLine1 == "" {
		return fmt.Errorf("please enter your address")
	}
	if d.City == "" {
		return fmt.Errorf("please enter your city")
	}
	if d.State == "" {
		return fmt.Errorf("please enter your state")
	}
	if len(d.Pincode) != 6 {
		return fmt.Errorf("pincode must be exactly 6 digits")
	}
	return nil
}

func validateContact(d models.BookingDraft) error {
	if d.Email == "" {
		return fmt.Errorf("please enter your email")
	}
	if !emailPattern.MatchString(d.Email) {
		return fmt.Errorf("please enter a valid email address")
	}
	if d.Mobile == "" {
		return fmt.Errorf("please enter your mobile number")
	}
	if len(d.Mobile) != 10 {
		return fmt.Errorf("mobile number must be exactly 10 digits")
	}
	if !d.EmailVerified {
		return fmt.Errorf("please verify your email before continuing")
	}
	return nil
}

func validateSelection(d models.BookingDraft) error {
	// The select_service sub-step always passes; zero services is a valid
	// selection there.
	if d.SubStep == models.SubStepSelectService {
		return nil
	}
	if d.Plan == "" {
		return fmt.Errorf("please select a plan to continue")
	}
	return nil
}

func (v *Validator) validateSchedule(d models.BookingDraft) error {
	if d.SelectedDate == "" {
		return fmt.Errorf("please select a date for your session")
	}
	if d.SelectedTime == "" {
		return fmt.Errorf("please select a time slot")
	}
	if v.Avail.IsTimeSlotPast(d.SelectedTime, d.SelectedDate) {
		return fmt.Errorf("the selected time slot has already passed, please pick another")
	}
	return nil
}
