package dt

import "time"

// Contact represents one directory entry. The ID is assigned by the store at
// creation and never changes afterward. Name is the natural key as seen by
// users: it may change, but no two contacts share a Name at any quiescent
// moment.
type Contact struct {
	ID        uint64
	Name      string
	Email     string
	Phone     string
	CreatedAt *time.Time `db:"createdat"`
	UpdatedAt *time.Time `db:"updatedat"`
}

// FieldError reports a single field failing validation. Field names the
// offending form field ("Email", "Phone") and Msg is a user-facing message.
type FieldError struct {
	Field string
	Msg   string
}
