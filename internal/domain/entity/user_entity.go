package entity

// User is the tutor who owns a class.
// Rows are created once during enrollment and never updated here.
type User struct {
	ID       int64
	Name     string
	Avatar   string
	Whatsapp string
	Bio      string
}
