package models

import "time"

// Wizard steps. Step 5 is the terminal "booked" display; it has no outgoing
// transitions other than abandoning the session.
const (
	StepIdentity  = 1
	StepContact   = 2
	StepSelection = 3
	StepSchedule  = 4
	StepDone      = 5
)

// Sub-steps of the selection step. Exactly one pricing path is authoritative
// at submission time, decided by which sub-step the draft is on.
const (
	SubStepChoosePlan    = "choose_plan"
	SubStepSelectService = "select_service"
)

// Counselling plan tiers.
const (
	PlanBasics   = "basics"
	PlanAdvanced = "advanced"
)

// DefaultCountryCode is the only dialing code the wizard currently offers.
const DefaultCountryCode = "+91"

// BookingDraft holds everything the wizard collects before submission.
// It lives in the session cache for the lifetime of the wizard and is never
// written to a durable store; the final submit call sends a snapshot upstream.
type BookingDraft struct {
	SessionID string `json:"sessionId"`

	// Identity.
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`

	// Contact.
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	CountryCode string `json:"countryCode"`

	// Verification.
	EmailVerified bool   `json:"emailVerified"`
	OTPSent       bool   `json:"otpSent"`
	OTP           string `json:"otp,omitempty"`

	// Selection.
	Plan     string   `json:"plan,omitempty"`
	Services []string `json:"services,omitempty"`
	SubStep  string   `json:"subStep"`

	// Schedule.
	SelectedDate string `json:"selectedDate,omitempty"`
	SelectedTime string `json:"selectedTime,omitempty"`

	CurrentStep int `json:"currentStep"`

	// User-facing notices accumulated while the session is alive.
	Notices []Notice `json:"notices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBookingDraft returns an empty draft positioned on the first step.
func NewBookingDraft(sessionID string) BookingDraft {
	now := time.Now()
	return BookingDraft{
		SessionID:   sessionID,
		CountryCode: DefaultCountryCode,
		SubStep:     SubStepChoosePlan,
		CurrentStep: StepIdentity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasService reports whether the named service is currently selected.
func (d BookingDraft) HasService(name string) bool {
	for _, s := range d.Services {
		if s == name {
			return true
		}
	}
	return false
}
