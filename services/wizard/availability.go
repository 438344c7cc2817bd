package wizard

import (
	"time"

	"edupath/models"
)

// TimeSlots is the fixed roster of bookable counselling slots, in day order.
var TimeSlots = []string{
	"10:30 AM",
	"11:30 AM",
	"12:30 PM",
	"3:30 PM",
	"4:30 PM",
	"5:30 PM",
}

// slotStarts maps each slot label to its start time as minutes since midnight.
var slotStarts = map[string]int{
	"10:30 AM": 10*60 + 30,
	"11:30 AM": 11*60 + 30,
	"12:30 PM": 12*60 + 30,
	"3:30 PM":  15*60 + 30,
	"4:30 PM":  16*60 + 30,
	"5:30 PM":  17*60 + 30,
}

// pastSlotBuffer is the lead time required before a same-day slot starts.
const pastSlotBuffer = 30 * time.Minute

const dateLayout = "2006-01-02"

// Availability computes selectable dates and time slots. The clock is a field
// so tests can pin "now"; results are recomputed on every call since the
// reference point moves.
type Availability struct {
	Now func() time.Time
}

// NewAvailability returns a calculator on the wall clock.
func NewAvailability() *Availability {
	return &Availability{Now: time.Now}
}

// AvailableDates returns every calendar day from today through exactly one
// month later, inclusive, in chronological order.
func (a *Availability) AvailableDates() []models.DateOption {
	now := a.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := day.AddDate(0, 1, 0)

	var dates []models.DateOption
	for d := day; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, models.DateOption{
			Value: d.Format(dateLayout),
			Label: d.Format("Mon, 02 Jan 2006"),
		})
	}
	return dates
}

// IsTimeSlotPast reports whether the slot has already started, or starts
// within the buffer, for the selected date. Only today's slots can be past;
// any other date always returns false.
func (a *Availability) IsTimeSlotPast(slot, selectedDate string) bool {
	start, ok := slotStarts[slot]
	if !ok {
		return false
	}
	day, err := time.ParseInLocation(dateLayout, selectedDate, a.Now().Location())
	if err != nil {
		return false
	}

	now := a.Now()
	if day.Year() != now.Year() || day.Month() != now.Month() || day.Day() != now.Day() {
		return false
	}

	slotStart := time.Date(day.Year(), day.Month(), day.Day(), start/60, start%60, 0, 0, now.Location())
	return !slotStart.After(now.Add(pastSlotBuffer))
}

// SlotOptions returns the full slot roster with past flags computed for the
// selected date.
func (a *Availability) SlotOptions(selectedDate string) []models.SlotOption {
	slots := make([]models.SlotOption, 0, len(TimeSlots))
	for _, s := range TimeSlots {
		slots = append(slots, models.SlotOption{
			Label: s,
			Past:  a.IsTimeSlotPast(s, selectedDate),
		})
	}
	return slots
}

// IsKnownSlot reports whether the label belongs to the fixed roster.
func IsKnownSlot(slot string) bool {
	_, ok := slotStarts[slot]
	return ok
}
