package core

import (
	"errors"

	"github.com/itskontak/kontak/core/log"
	"github.com/itskontak/kontak/shared/datatypes"
)

// Flash messages reported after each successful mutation.
const (
	msgAdded   = "Record added"
	msgUpdated = "Record updated"
	msgDeleted = "Record deleted"
)

// ValidationError reports one or more fields failing format checks. It's an
// expected, recoverable outcome: the caller re-presents the form with the
// field messages.
type ValidationError struct {
	Fields []dt.FieldError
}

func (e *ValidationError) Error() string {
	s := "invalid contact:"
	for _, f := range e.Fields {
		s += " " + f.Field + ": " + f.Msg + ";"
	}
	return s[:len(s)-1]
}

// Directory orchestrates validation, the uniqueness pre-check and store
// mutation for every contact operation, and reports each mutation's outcome
// through the per-session flash slot.
type Directory struct {
	store dt.ContactStore
	check *Checker
	flash dt.AtomicFlashMap
}

// NewDirectory builds a Directory over the given store, validating phone
// numbers for the given region.
func NewDirectory(store dt.ContactStore, region string) *Directory {
	return &Directory{
		store: store,
		check: NewChecker(region),
		flash: dt.NewAtomicFlashMap(),
	}
}

// Add validates the record, rejects a name already in use, and inserts it.
// The store assigns the returned id.
//
// The pre-check and the insert are not atomic across concurrent calls: two
// callers may both pass the check before either inserts. The store's unique
// index on name is the authoritative rejection for that race; the pre-check
// exists only so the common case gets a clean error without a failed write.
func (d *Directory) Add(sid string, c dt.Contact) (uint64, error) {
	if ferrs := d.check.Check(c); len(ferrs) > 0 {
		return 0, &ValidationError{Fields: ferrs}
	}
	_, err := d.store.FindByName(c.Name)
	if err == nil {
		return 0, dt.ErrDuplicateName
	}
	if !errors.Is(err, dt.ErrNotFound) {
		return 0, err
	}
	id, err := d.store.Insert(&c)
	if err != nil {
		return 0, err
	}
	log.Debug("added contact", c.Name)
	d.flash.Set(sid, msgAdded)
	return id, nil
}

// Edit validates the record and replaces name, email and phone on the
// contact with the given id. Renaming a contact to its own current name is
// allowed; only a collision with a different record is a duplicate. The
// comparison is by the found record's id, not by old and new name strings,
// so case-only renames behave correctly.
//
// oldName is carried for form round-tripping by callers and is not used to
// decide collisions.
func (d *Directory) Edit(sid string, id uint64, oldName string, c dt.Contact) error {
	if ferrs := d.check.Check(c); len(ferrs) > 0 {
		return &ValidationError{Fields: ferrs}
	}
	found, err := d.store.FindByName(c.Name)
	if err != nil && !errors.Is(err, dt.ErrNotFound) {
		return err
	}
	if found != nil && found.ID != id {
		return dt.ErrDuplicateName
	}
	if err = d.store.UpdateByID(id, c.Name, c.Email, c.Phone); err != nil {
		return err
	}
	log.Debug("updated contact", id, oldName, "->", c.Name)
	d.flash.Set(sid, msgUpdated)
	return nil
}

// Delete removes the contact with the given name. Deleting a name that's
// already gone still reports success; the caller can't tell "already gone"
// from "just removed".
func (d *Directory) Delete(sid, name string) error {
	n, err := d.store.DeleteByName(name)
	if err != nil {
		return err
	}
	log.Debug("deleted", n, "contact(s) named", name)
	d.flash.Set(sid, msgDeleted)
	return nil
}

// Get returns the contact with the given name, or dt.ErrNotFound. Reads
// never touch the flash slot.
func (d *Directory) Get(name string) (*dt.Contact, error) {
	return d.store.FindByName(name)
}

// List returns every contact in store order.
func (d *Directory) List() ([]dt.Contact, error) {
	return d.store.All()
}

// Notify stores a message for the session, replacing any pending one.
func (d *Directory) Notify(sid, msg string) {
	d.flash.Set(sid, msg)
}

// DrainNotice returns and clears the session's pending flash message. The
// listing endpoints call this so each mutation's outcome is shown exactly
// once and never resurfaces on a refresh.
func (d *Directory) DrainNotice(sid string) (string, bool) {
	return d.flash.TakeOnce(sid)
}
