package wizard

import (
	"testing"
	"time"

	"edupath/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIdentityDraft() models.BookingDraft {
	d := models.NewBookingDraft("s1")
	d.FirstName = "Asha"
	d.LastName = "Rao"
	d.AddressLine1 = "12 MG Road"
	d.City = "Bengaluru"
	d.State = "Karnataka"
	d.Pincode = "560001"
	return d
}

func testValidator(now time.Time) *Validator {
	return NewValidator(fixedAvailability(now))
}

func TestValidate_IdentityStep(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testValidator(now)

	d := validIdentityDraft()
	assert.NoError(t, v.Validate(models.StepIdentity, d))

	short := d
	short.Pincode = "5600"
	assert.Error(t, v.Validate(models.StepIdentity, short))

	noName := d
	noName.FirstName = ""
	assert.Error(t, v.Validate(models.StepIdentity, noName))

	// Last name is optional.
	noLast := d
	noLast.LastName = ""
	assert.NoError(t, v.Validate(models.StepIdentity, noLast))
}

func TestValidate_ContactStep(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testValidator(now)

	d := validIdentityDraft()
	d.Email = "asha@example.com"
	d.Mobile = "9876543210"
	d.EmailVerified = true
	assert.NoError(t, v.Validate(models.StepContact, d))

	shortMobile := d
	shortMobile.Mobile = "98765"
	assert.Error(t, v.Validate(models.StepContact, shortMobile))

	unverified := d
	unverified.EmailVerified = false
	assert.Error(t, v.Validate(models.StepContact, unverified))

	badEmail := d
	badEmail.Email = "not-an-email"
	assert.Error(t, v.Validate(models.StepContact, badEmail))
}

func TestValidate_SelectionStep(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testValidator(now)

	d := models.NewBookingDraft("s1")
	d.SubStep = models.SubStepChoosePlan
	assert.Error(t, v.Validate(models.StepSelection, d), "no plan selected")

	d.Plan = models.PlanBasics
	assert.NoError(t, v.Validate(models.StepSelection, d))

	// The select_service sub-step passes even with zero services chosen.
	empty := models.NewBookingDraft("s2")
	empty.SubStep = models.SubStepSelectService
	assert.NoError(t, v.Validate(models.StepSelection, empty))
}

func TestValidate_ScheduleStep(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testValidator(now)

	d := models.NewBookingDraft("s1")
	assert.Error(t, v.Validate(models.StepSchedule, d), "no date")

	d.SelectedDate = "2026-03-13"
	assert.Error(t, v.Validate(models.StepSchedule, d), "no time")

	d.SelectedTime = "11:30 AM"
	assert.NoError(t, v.Validate(models.StepSchedule, d))
}

func TestValidate_ScheduleStep_StaleSlot(t *testing.T) {
	// At 17:10 the 5:30 PM slot is inside the 30-minute buffer.
	now := time.Date(2026, 3, 10, 17, 10, 0, 0, time.UTC)
	v := testValidator(now)

	d := models.NewBookingDraft("s1")
	d.SelectedDate = "2026-03-10"
	d.SelectedTime = "5:30 PM"

	err := v.Validate(models.StepSchedule, d)
	require.Error(t, err)

	// The same slot tomorrow is fine.
	d.SelectedDate = "2026-03-11"
	assert.NoError(t, v.Validate(models.StepSchedule, d))
}

func TestValidate_HappyPathAllSteps(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	v := testValidator(now)

	d := validIdentityDraft()
	d.Email = "asha@example.com"
	d.Mobile = "9876543210"
	d.EmailVerified = true
	d.Plan = models.PlanBasics
	d.SubStep = models.SubStepChoosePlan
	d.SelectedDate = "2026-03-13"
	d.SelectedTime = "11:30 AM"

	for _, step := range []int{models.StepIdentity, models.StepContact, models.StepSelection, models.StepSchedule} {
		assert.NoError(t, v.Validate(step, d), "step %d", step)
	}
	assert.EqualValues(t, 30000, Quote(d))
}
