package entity

// Class is a subject taught by a single User.
type Class struct {
	ID      int64
	Subject string
	Cost    float64
	UserID  int64
}

// ScheduleSlot is one weekly recurring window of a Class.
// From and To are minutes since midnight; From < To is assumed, not enforced.
type ScheduleSlot struct {
	ID      int64
	WeekDay int
	From    Minutes
	To      Minutes
	ClassID int64
}

// ClassListing is a Class joined with its owning User, as returned by search.
type ClassListing struct {
	Class
	User User
}
