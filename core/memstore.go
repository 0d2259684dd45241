package core

import (
	"sort"
	"sync"
	"time"

	"github.com/itskontak/kontak/shared/datatypes"
)

// MemStore keeps contacts in memory behind a mutex. It backs the test
// environment and carries the same contract as PGStore, including the
// authoritative uniqueness rejection on writes.
type MemStore struct {
	mutex    sync.Mutex
	contacts map[uint64]dt.Contact
	nextID   uint64
}

// NewMemStore returns an empty in-memory contact store.
func NewMemStore() *MemStore {
	return &MemStore{contacts: map[uint64]dt.Contact{}, nextID: 1}
}

// FindByName returns the contact with the given name.
func (s *MemStore) FindByName(name string) (*dt.Contact, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, c := range s.contacts {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, dt.ErrNotFound
}

// FindByID returns the contact with the given id.
func (s *MemStore) FindByID(id uint64) (*dt.Contact, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, dt.ErrNotFound
	}
	return &c, nil
}

// Insert stores a new contact and returns the assigned id.
func (s *MemStore) Insert(c *dt.Contact) (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, cur := range s.contacts {
		if cur.Name == c.Name {
			return 0, dt.ErrDuplicateName
		}
	}
	now := time.Now()
	c.ID = s.nextID
	c.CreatedAt = &now
	c.UpdatedAt = &now
	s.nextID++
	s.contacts[c.ID] = *c
	return c.ID, nil
}

// UpdateByID replaces name, email and phone on the contact with the given
// id.
func (s *MemStore) UpdateByID(id uint64, name, email, phone string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return dt.ErrNotFound
	}
	for _, cur := range s.contacts {
		if cur.Name == name && cur.ID != id {
			return dt.ErrDuplicateName
		}
	}
	now := time.Now()
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = &now
	s.contacts[id] = c
	return nil
}

// DeleteByName removes the contact with the given name. Zero removals is
// not an error.
func (s *MemStore) DeleteByName(name string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var n int64
	for id, c := range s.contacts {
		if c.Name == name {
			delete(s.contacts, id)
			n++
		}
	}
	return n, nil
}

// All returns every contact ordered by insertion.
func (s *MemStore) All() ([]dt.Contact, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	contacts := make([]dt.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].ID < contacts[j].ID
	})
	return contacts, nil
}

// Reset drops every contact. Tests use it in place of TRUNCATE.
func (s *MemStore) Reset() {
	s.mutex.Lock()
	s.contacts = map[uint64]dt.Contact{}
	s.nextID = 1
	s.mutex.Unlock()
}
