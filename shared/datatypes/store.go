package dt

import "errors"

// ErrNotFound is returned by store lookups when no contact matches.
var ErrNotFound = errors.New("contact not found")

// ErrDuplicateName is returned when a write collides with the unique index
// on the contact name. The directory service performs its own pre-check for
// a friendlier error, but the store's rejection is the authoritative one.
var ErrDuplicateName = errors.New("contact name already in use")

// ErrStoreUnavailable wraps any store failure that isn't a lookup miss or a
// uniqueness conflict. Callers should treat it as fatal to the request and
// retry later; no partial mutation is assumed committed.
var ErrStoreUnavailable = errors.New("contact store unavailable")

// ContactStore is the persistence capability the directory service runs
// against. Implementations own durability and must serialize conflicting
// writes to the same record; they do not provide cross-record locking.
//
// Lookups return ErrNotFound for a missing contact. Writes return
// ErrDuplicateName on a name conflict and an error wrapping
// ErrStoreUnavailable for anything else that goes wrong.
type ContactStore interface {
	// FindByName returns the contact with the given name.
	FindByName(name string) (*Contact, error)

	// FindByID returns the contact with the given id.
	FindByID(id uint64) (*Contact, error)

	// Insert stores a new contact and returns the assigned id.
	Insert(c *Contact) (uint64, error)

	// UpdateByID replaces name, email and phone on the contact with the
	// given id. The id itself is never reassigned.
	UpdateByID(id uint64, name, email, phone string) error

	// DeleteByName removes the contact with the given name, reporting how
	// many records were removed. Deleting a missing name is not an error.
	DeleteByName(name string) (int64, error)

	// All returns every contact in store order.
	All() ([]Contact, error)
}
