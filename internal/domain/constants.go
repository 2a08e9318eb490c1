package domain

// Time grid defaults
const (
	DefaultGridOpen        = "07:00"
	DefaultGridClose       = "20:00"
	DefaultGridStepMinutes = 30
)

// Session package constants
const (
	PackageSessions     = 4
	PackageIntervalDays = 7
)

// Business validation constants
const (
	MaxObservationsLength = 1000
	MaxClientNameLength   = 200
	MinPhoneDigits        = 8
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04"
)

// CalendarStatuses statuses of appointments that occupy the calendar
var CalendarStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusDelayed,
	StatusCompleted,
}
