package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"edupath/models"
	"edupath/services/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	enquiry models.CareerEnquiry
	order   *models.BookingOrder
	err     error
}

func (f *fakeAPI) SendOTP(ctx context.Context, email, institutionName, mobile string) (string, error) {
	return "", nil
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	return nil
}

func (f *fakeAPI) CreateCareerEnquiry(ctx context.Context, enq models.CareerEnquiry) (*models.BookingOrder, error) {
	f.enquiry = enq
	return f.order, f.err
}

func (f *fakeAPI) SendCounselingConfirmation(ctx context.Context, mail models.ConfirmationEmail) error {
	return nil
}

type fakeGateway struct {
	cfg models.CheckoutConfig
	url string
	err error
}

func (f *fakeGateway) Open(ctx context.Context, cfg models.CheckoutConfig) (string, error) {
	f.cfg = cfg
	return f.url, f.err
}

func submittableDraft() models.BookingDraft {
	d := models.NewBookingDraft("s1")
	d.FirstName = "Asha"
	d.LastName = "Rao"
	d.AddressLine1 = "12 MG Road"
	d.City = "Bengaluru"
	d.State = "Karnataka"
	d.Pincode = "560001"
	d.Email = "asha@example.com"
	d.Mobile = "9876543210"
	d.EmailVerified = true
	d.Plan = models.PlanBasics
	d.SubStep = models.SubStepChoosePlan
	d.SelectedDate = "2026-03-13"
	d.SelectedTime = "11:30 AM"
	return d
}

func newSubmitter(api *fakeAPI, gw *fakeGateway) *Submitter {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	avail := &wizard.Availability{Now: func() time.Time { return now }}
	return &Submitter{
		API:         api,
		Gateway:     gw,
		Validator:   wizard.NewValidator(avail),
		Key:         "key_test",
		Currency:    "INR",
		DisplayName: "EduPath",
		Logger:      zap.NewNop(),
	}
}

func TestSubmit_HappyPathPlan(t *testing.T) {
	api := &fakeAPI{order: &models.BookingOrder{OrderID: "ord_1", Amount: 30000}}
	gw := &fakeGateway{url: "https://pay.example/s/1"}
	s := newSubmitter(api, gw)

	result, err := s.Submit(context.Background(), submittableDraft())
	require.NoError(t, err)

	assert.Equal(t, models.PlanBasics, api.enquiry.Plan)
	assert.Empty(t, api.enquiry.Service)
	assert.Equal(t, "2026-03-13", api.enquiry.SelectedDate)
	assert.Equal(t, "11:30 AM", api.enquiry.SelectedTime)

	assert.Equal(t, "ord_1", result.Order.OrderID)
	assert.EqualValues(t, 30000, result.Order.Amount)
	assert.EqualValues(t, 3000000, result.Checkout.Amount, "gateway amount is order amount x100")
	assert.Equal(t, "INR", result.Checkout.Currency)
	assert.Equal(t, "key_test", result.Checkout.Key)
	assert.Equal(t, "Asha Rao", result.Checkout.Prefill.Name)
	assert.Equal(t, "+919876543210", result.Checkout.Prefill.Contact)
	assert.Equal(t, "https://pay.example/s/1", result.CheckoutURL)
}

func TestSubmit_ServicePath(t *testing.T) {
	api := &fakeAPI{order: &models.BookingOrder{OrderID: "ord_2", Amount: 4000}}
	gw := &fakeGateway{url: "https://pay.example/s/2"}
	s := newSubmitter(api, gw)

	d := submittableDraft()
	d.SubStep = models.SubStepSelectService
	d.Services = []string{"resume review", "mock interview"}

	_, err := s.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "resume review, mock interview", api.enquiry.Service)
	assert.Empty(t, api.enquiry.Plan, "only one pricing path is authoritative")
}

func TestSubmit_RevalidatesEveryStep(t *testing.T) {
	api := &fakeAPI{order: &models.BookingOrder{OrderID: "ord_3", Amount: 30000}}
	s := newSubmitter(api, &fakeGateway{})

	d := submittableDraft()
	d.EmailVerified = false

	_, err := s.Submit(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready to submit")
	assert.Empty(t, api.enquiry.Email, "upstream call must not happen on validation failure")
}

func TestSubmit_StaleSlotBlocked(t *testing.T) {
	api := &fakeAPI{order: &models.BookingOrder{OrderID: "ord_4", Amount: 30000}}

	// 17:10 on the selected day puts the 5:30 PM slot inside the buffer.
	now := time.Date(2026, 3, 10, 17, 10, 0, 0, time.UTC)
	avail := &wizard.Availability{Now: func() time.Time { return now }}
	s := newSubmitter(api, &fakeGateway{})
	s.Validator = wizard.NewValidator(avail)

	d := submittableDraft()
	d.SelectedDate = "2026-03-10"
	d.SelectedTime = "5:30 PM"

	_, err := s.Submit(context.Background(), d)
	assert.Error(t, err)
}

func TestSubmit_UpstreamFailurePropagates(t *testing.T) {
	api := &fakeAPI{err: errors.New("upstream down")}
	s := newSubmitter(api, &fakeGateway{})

	_, err := s.Submit(context.Background(), submittableDraft())
	assert.Error(t, err)
}

func TestSubmit_GatewayFailurePropagates(t *testing.T) {
	api := &fakeAPI{order: &models.BookingOrder{OrderID: "ord_5", Amount: 30000}}
	gw := &fakeGateway{err: errors.New("gateway down")}
	s := newSubmitter(api, gw)

	_, err := s.Submit(context.Background(), submittableDraft())
	assert.Error(t, err)
}
