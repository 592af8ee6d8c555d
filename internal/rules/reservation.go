package rules

import (
	"regexp"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

var (
	dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeFormat = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidateReservation checks the shape of a reservation payload: required
// text fields, date and time patterns and a positive party size.  It also
// rejects payloads that try to start a booking in a state other than
// "booked" – a new or edited reservation cannot arrive already seated,
// finished or cancelled.
func ValidateReservation(res *model.Reservation) error {
	var v Violations

	if strings.TrimSpace(res.FirstName) == "" {
		v.Add("first_name")
	}
	if strings.TrimSpace(res.LastName) == "" {
		v.Add("last_name")
	}
	if strings.TrimSpace(res.MobileNumber) == "" {
		v.Add("mobile_number")
	}
	if !dateFormat.MatchString(res.Date) {
		v.Add("reservation_date")
	}
	if !timeFormat.MatchString(res.Time) {
		v.Add("reservation_time")
	}
	if res.People < 1 {
		v.Add("people")
	}

	switch res.Status {
	case model.StatusSeated:
		v.Add("this reservation has already been seated")
	case model.StatusFinished:
		v.Add("this reservation has already finished")
	case model.StatusCancelled:
		v.Add("this reservation has been cancelled")
	}

	return v.Err("One or more inputs are invalid")
}

// ValidateFutureDate rejects reservation dates in the past and dates falling
// on the restaurant's closed weekday.  The comparison walks the date
// components: an earlier year is rejected, an earlier month within the
// current year is rejected, and an earlier day is rejected only when the
// reservation month equals the current month.  The returned flag is true
// when the reservation falls on today's month and day; callers feed it into
// ValidateOpenHours so same-day bookings are also checked against the
// current time.
//
// TODO: a date in a later month whose day number is smaller than today's is
// never caught by the day-level branch below; confirm the intended cutoff
// with the booking team before tightening the comparison.
func ValidateFutureDate(res *model.Reservation, now time.Time, hours Hours) (bool, error) {
	var v Violations

	day, err := time.Parse("2006-01-02", res.Date)
	if err != nil {
		v.Add("reservation_date")
		return false, v.Err("One or more date inputs are invalid")
	}

	if day.Weekday() == hours.ClosedDay {
		v.Addf("the restaurant is closed on %ss", hours.ClosedDay)
	}

	curYear, curMonth, curDay := now.Date()
	resYear, resMonth, resDay := day.Date()

	isToday := false
	switch {
	case resYear < curYear:
		v.Addf("the reservation must be made for the current year (%d) or a year in the future", curYear)
	case resYear == curYear && resMonth < curMonth:
		v.Add("the reservation must be made during the current month or a month in the future")
	case resMonth == curMonth && resDay < curDay:
		v.Add("the reservation must be made on the current day or a day in the future")
	case resMonth == curMonth && resDay == curDay:
		isToday = true
	}

	return isToday, v.Err("One or more date inputs are invalid")
}

// ValidateOpenHours checks the reservation time against the restaurant's
// opening hours.  Both bounds are inclusive.  When isToday is set (the
// reservation is for today's date) the time must also not have passed
// already relative to now.
func ValidateOpenHours(res *model.Reservation, isToday bool, now time.Time, hours Hours) error {
	var v Violations

	mins, err := minutesOfDay(res.Time)
	if err != nil {
		v.Add("reservation_time")
		return v.Err("A time input is invalid")
	}

	switch {
	case mins < hours.Open:
		v.Addf("the restaurant does not accept reservations before %s", Clock(hours.Open))
	case mins > hours.Close:
		v.Addf("no reservations after %s", Clock(hours.Close))
	case isToday && mins < now.Hour()*60+now.Minute():
		v.Add("the selected time has already passed, please pick a time in the future")
	}

	return v.Err("A time input is invalid")
}

// ValidateStatusChange guards status-only updates.  A finished reservation
// is terminal and can never change again; otherwise the requested status
// must be one of the four known values.
func ValidateStatusChange(current, requested string) error {
	var v Violations

	if current == model.StatusFinished {
		v.Add("a finished reservation cannot be updated")
	} else if !model.ValidStatus(requested) {
		v.Addf("unknown status: %q", requested)
	}

	return v.Err("A status input is invalid")
}

// minutesOfDay converts an "HH:MM" string to minutes since midnight.
func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
