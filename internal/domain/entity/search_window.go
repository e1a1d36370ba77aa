package entity

// Sunday and Saturday are the first and last week days; slots use 0-6.
const (
	Sunday   = 0
	Saturday = 6
)

// ValidWeekDay reports whether d names a day of the week.
func ValidWeekDay(d int) bool {
	return d >= Sunday && d <= Saturday
}

// LessonLength is the fixed length of a bookable lesson, in minutes.
const LessonLength Minutes = 60

// SearchWindow is the weekly hour a student wants to book.
// A slot matches only if it covers the whole window.
type SearchWindow struct {
	WeekDay int
	From    Minutes
	To      Minutes
}

// NewSearchWindow builds the one-hour window starting at start on weekDay.
func NewSearchWindow(weekDay int, start Minutes) SearchWindow {
	return SearchWindow{WeekDay: weekDay, From: start, To: start + LessonLength}
}

// CoveredBy reports whether slot spans the whole window.
func (w SearchWindow) CoveredBy(slot ScheduleSlot) bool {
	return slot.WeekDay == w.WeekDay && slot.From <= w.From && slot.To >= w.To
}
