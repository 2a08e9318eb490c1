package domain

import "time"

// Appointments is an immutable snapshot of an appointment collection.
// Every "mutating" method returns a new slice; the receiver is never modified.
type Appointments []Appointment

// With returns a new snapshot where the appointment with the same ID is replaced,
// or the appointment is appended when no such ID exists.
func (s Appointments) With(a Appointment) Appointments {
	out := make(Appointments, 0, len(s)+1)
	replaced := false
	for _, existing := range s {
		if existing.ID == a.ID {
			out = append(out, a.Clone())
			replaced = true
			continue
		}
		out = append(out, existing.Clone())
	}
	if !replaced {
		out = append(out, a.Clone())
	}
	return out
}

// ForProfessionalOn returns the appointments of a professional whose start is on the given local date
func (s Appointments) ForProfessionalOn(username string, day time.Time) Appointments {
	out := make(Appointments, 0)
	for _, a := range s {
		if a.ProfessionalUsername != username {
			continue
		}
		if !SameDay(a.DateTime.In(day.Location()), day) {
			continue
		}
		out = append(out, a.Clone())
	}
	return out
}

// SameDay returns true if both instants share the calendar date (compared as given)
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay returns local midnight of t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayIn returns midnight of t's calendar date in loc (the date is taken as given, not converted)
func DayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
