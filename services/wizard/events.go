package wizard

import (
	"encoding/json"
	"fmt"
)

// Event is a wizard state transition input. The reducer consumes events one
// at a time; handlers decode them from the PATCH body.
type Event interface {
	isEvent()
}

// SetIdentityEvent replaces the identity fields of the draft.
type SetIdentityEvent struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// SetContactEvent replaces the contact fields. Changing the email resets the
// verification flags and any typed OTP.
type SetContactEvent struct {
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	CountryCode string `json:"countryCode"`
}

// SetOTPEvent records the OTP the user typed; digits only, at most six.
type SetOTPEvent struct {
	OTP string `json:"otp"`
}

// OTPSentEvent marks that an OTP email went out for the current address.
type OTPSentEvent struct{}

// EmailVerifiedEvent marks the current email as verified.
type EmailVerifiedEvent struct{}

// ChoosePlanEvent selects a counselling plan tier.
type ChoosePlanEvent struct {
	Plan string `json:"plan"`
}

// ToggleServiceEvent adds or removes a named service from the selection.
type ToggleServiceEvent struct {
	Service string `json:"service"`
}

// SetSubStepEvent moves between the choose_plan and select_service sub-steps.
type SetSubStepEvent struct {
	SubStep string `json:"subStep"`
}

// SelectDateEvent picks a calendar date for the session.
type SelectDateEvent struct {
	Date string `json:"date"`
}

// SelectTimeEvent picks one of the fixed time slots.
type SelectTimeEvent struct {
	Slot string `json:"slot"`
}

// AdvanceEvent moves one step forward. The session service validates the
// current step before applying it.
type AdvanceEvent struct{}

// BackEvent moves one step backward. Always permitted except from the
// terminal step.
type BackEvent struct{}

// BookingConfirmedEvent moves the wizard to the terminal step after a
// successful payment.
type BookingConfirmedEvent struct{}

func (SetIdentityEvent) isEvent()      {}
func (SetContactEvent) isEvent()       {}
func (SetOTPEvent) isEvent()           {}
func (OTPSentEvent) isEvent()          {}
func (EmailVerifiedEvent) isEvent()    {}
func (ChoosePlanEvent) isEvent()       {}
func (ToggleServiceEvent) isEvent()    {}
func (SetSubStepEvent) isEvent()       {}
func (SelectDateEvent) isEvent()       {}
func (SelectTimeEvent) isEvent()       {}
func (AdvanceEvent) isEvent()          {}
func (BackEvent) isEvent()             {}
func (BookingConfirmedEvent) isEvent() {}

// DecodeEvent parses a single wire event into its typed form.
func DecodeEvent(raw json.RawMessage) (Event, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	switch envelope.Type {
	case "set_identity":
		var ev SetIdentityEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid set_identity event: %w", err)
		}
		return ev, nil
	case "set_contact":
		var ev SetContactEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid set_contact event: %w", err)
		}
		return ev, nil
	case "set_otp":
		var ev SetOTPEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid set_otp event: %w", err)
		}
		return ev, nil
	case "choose_plan":
		var ev ChoosePlanEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid choose_plan event: %w", err)
		}
		return ev, nil
	case "toggle_service":
		var ev ToggleServiceEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid toggle_service event: %w", err)
		}
		return ev, nil
	case "set_sub_step":
		var ev SetSubStepEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid set_sub_step event: %w", err)
		}
		return ev, nil
	case "select_date":
		var ev SelectDateEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid select_date event: %w", err)
		}
		return ev, nil
	case "select_time":
		var ev SelectTimeEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("invalid select_time event: %w", err)
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", envelope.Type)
	}
}
