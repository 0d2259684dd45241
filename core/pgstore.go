package core

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/itskontak/kontak/shared/datatypes"
)

// uniqueViolation is the Postgres error code for a unique index conflict.
const uniqueViolation = "23505"

const contactSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	createdat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// PGStore persists contacts in Postgres. The unique index on name is the
// authoritative enforcement of the uniqueness invariant; the directory
// service's pre-check is best-effort UX on top of it.
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore ensures the contacts schema exists and returns a store backed
// by the given database.
func NewPGStore(db *sqlx.DB) (*PGStore, error) {
	if _, err := db.Exec(contactSchema); err != nil {
		return nil, storeErr(err)
	}
	return &PGStore{db: db}, nil
}

// FindByName returns the contact with the given name.
func (s *PGStore) FindByName(name string) (*dt.Contact, error) {
	var c dt.Contact
	q := `SELECT id, name, email, phone, createdat, updatedat
	      FROM contacts WHERE name=$1`
	err := s.db.Get(&c, q, name)
	if err == sql.ErrNoRows {
		return nil, dt.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &c, nil
}

// FindByID returns the contact with the given id.
func (s *PGStore) FindByID(id uint64) (*dt.Contact, error) {
	var c dt.Contact
	q := `SELECT id, name, email, phone, createdat, updatedat
	      FROM contacts WHERE id=$1`
	err := s.db.Get(&c, q, id)
	if err == sql.ErrNoRows {
		return nil, dt.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &c, nil
}

// Insert stores a new contact and returns the assigned id.
func (s *PGStore) Insert(c *dt.Contact) (uint64, error) {
	q := `INSERT INTO contacts (name, email, phone)
	      VALUES ($1, $2, $3)
	      RETURNING id`
	var id uint64
	err := s.db.QueryRowx(q, c.Name, c.Email, c.Phone).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok &&
			pqErr.Code == uniqueViolation {
			return 0, dt.ErrDuplicateName
		}
		return 0, storeErr(err)
	}
	c.ID = id
	return id, nil
}

// UpdateByID replaces name, email and phone on the contact with the given
// id.
func (s *PGStore) UpdateByID(id uint64, name, email, phone string) error {
	q := `UPDATE contacts
	      SET name=$1, email=$2, phone=$3, updatedat=CURRENT_TIMESTAMP
	      WHERE id=$4`
	res, err := s.db.Exec(q, name, email, phone, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok &&
			pqErr.Code == uniqueViolation {
			return dt.ErrDuplicateName
		}
		return storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		return dt.ErrNotFound
	}
	return nil
}

// DeleteByName removes the contact with the given name. Zero rows affected
// is not an error.
func (s *PGStore) DeleteByName(name string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM contacts WHERE name=$1`, name)
	if err != nil {
		return 0, storeErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

// All returns every contact ordered by insertion.
func (s *PGStore) All() ([]dt.Contact, error) {
	contacts := []dt.Contact{}
	q := `SELECT id, name, email, phone, createdat, updatedat
	      FROM contacts ORDER BY id`
	if err := s.db.Select(&contacts, q); err != nil {
		return nil, storeErr(err)
	}
	return contacts, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", dt.ErrStoreUnavailable, err)
}
