package booking

import (
	"context"
	"fmt"
	"strings"

	"edupath/models"
	"edupath/services/checkout"
	"edupath/services/enquiry"
	"edupath/services/wizard"

	"go.uber.org/zap"
)

// SubmitResult carries everything the client needs to hand the user to the
// hosted checkout.
type SubmitResult struct {
	Order       models.BookingOrder   `json:"order"`
	Checkout    models.CheckoutConfig `json:"checkout"`
	CheckoutURL string                `json:"checkoutUrl"`
}

// Submitter performs the create-order call and builds the checkout handoff.
// On any failure the caller must not advance the step pointer; the draft is
// untouched and the user retries by resubmitting.
type Submitter struct {
	API         enquiry.API
	Gateway     checkout.Gateway
	Validator   *wizard.Validator
	Key         string
	Currency    string
	DisplayName string
	Logger      *zap.Logger
}

// Submit revalidates every step, posts the enquiry snapshot upstream, and
// opens the checkout session for the returned order.
func (s *Submitter) Submit(ctx context.Context, draft models.BookingDraft) (*SubmitResult, error) {
	for _, step := range []int{models.StepIdentity, models.StepContact, models.StepSelection, models.StepSchedule} {
		if err := s.Validator.Validate(step, draft); err != nil {
			return nil, fmt.Errorf("booking is not ready to submit: %w", err)
		}
	}

	enq := models.CareerEnquiry{
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Email:        draft.Email,
		Mobile:       draft.Mobile,
		SelectedDate: draft.SelectedDate,
		SelectedTime: draft.SelectedTime,
	}
	// Exactly one pricing path is authoritative at submission time.
	if draft.SubStep == models.SubStepSelectService && len(draft.Services) > 0 {
		enq.Service = strings.Join(draft.Services, ", ")
	} else {
		enq.Plan = draft.Plan
	}

	order, err := s.API.CreateCareerEnquiry(ctx, enq)
	if err != nil {
		return nil, err
	}

	cfg := models.CheckoutConfig{
		Key:         s.Key,
		OrderID:     order.OrderID,
		Amount:      order.Amount * 100,
		Currency:    s.Currency,
		Name:        s.DisplayName,
		Description: fmt.Sprintf("Career counselling session on %s at %s", draft.SelectedDate, draft.SelectedTime),
		Prefill: models.CheckoutPrefill{
			Name:    strings.TrimSpace(draft.FirstName + " " + draft.LastName),
			Email:   draft.Email,
			Contact: draft.CountryCode + draft.Mobile,
		},
	}

	url, err := s.Gateway.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("booking submitted",
		zap.String("orderID", order.OrderID),
		zap.Int64("amount", order.Amount))

	return &SubmitResult{Order: *order, Checkout: cfg, CheckoutURL: url}, nil
}
