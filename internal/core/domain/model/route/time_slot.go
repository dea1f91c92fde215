package route

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSlotIsNotConstructed = errors.New("Slot must be created via SlotFor or NewSlot")

// TimeSlot is one of the four daily delivery windows.
type TimeSlot int

const (
	UnknownTimeSlot TimeSlot = iota
	Morning                  // 9am-12pm
	Midday                   // 12pm-3pm
	Afternoon                // 3pm-6pm
	Evening                  // 6pm-9pm
)

func getTimeSlotStrings() map[TimeSlot]string {
	return map[TimeSlot]string{
		UnknownTimeSlot: "unknown",
		Morning:         "9am-12pm",
		Midday:          "12pm-3pm",
		Afternoon:       "3pm-6pm",
		Evening:         "6pm-9pm",
	}
}

func ParseTimeSlot(s string) (TimeSlot, error) {
	for ts, name := range getTimeSlotStrings() {
		if ts != UnknownTimeSlot && name == s {
			return ts, nil
		}
	}
	return UnknownTimeSlot, errs.NewValueIsInvalidErrorWithCause("time slot", fmt.Errorf("%q is not a valid slot", s))
}

func (t TimeSlot) String() string {
	if str, ok := getTimeSlotStrings()[t]; ok {
		return str
	}
	return "unknown"
}

func (t TimeSlot) Validate() error {
	if t < Morning || t > Evening {
		return errs.NewValueIsInvalidErrorWithCause("time slot", fmt.Errorf("%d is not a valid slot", t))
	}
	return nil
}

// Slot is a delivery window on a calendar day.
type Slot struct {
	date   time.Time
	window TimeSlot
	guard  guard.ConstructorGuard
}

// SlotFor picks the window for a route opened at now: the next window that
// has not started yet. After 6pm it wraps to 9am-12pm on the following day.
// The result depends on nothing but now.
func SlotFor(now time.Time) Slot {
	day := midnight(now)
	var window TimeSlot
	switch h := now.Hour(); {
	case h < 9:
		window = Morning
	case h < 12:
		window = Midday
	case h < 15:
		window = Afternoon
	case h < 18:
		window = Evening
	default:
		window = Morning
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
	}
	return Slot{date: day, window: window, guard: guard.NewConstructorGuard()}
}

// NewSlot rebuilds a slot from its parts. The time of day of date is dropped.
func NewSlot(date time.Time, window TimeSlot) (Slot, error) {
	if err := window.Validate(); err != nil {
		return Slot{}, err
	}
	if date.IsZero() {
		return Slot{}, errs.NewValueIsRequiredError("slot date")
	}
	return Slot{date: midnight(date), window: window, guard: guard.NewConstructorGuard()}, nil
}

// Date is midnight of the slot's day in the clock's location.
func (s Slot) Date() time.Time  { return s.date }
func (s Slot) Window() TimeSlot { return s.window }

func (s Slot) Validate() error {
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

func (s Slot) IsEqual(other Slot) bool {
	return s.window == other.window && s.date.Equal(other.date)
}

// String renders as "2026-10-16 9am-12pm".
func (s Slot) String() string {
	return s.date.Format(time.DateOnly) + " " + s.window.String()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
