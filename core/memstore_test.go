package core

import (
	"errors"
	"testing"

	"github.com/itskontak/kontak/shared/datatypes"
)

// The store's own uniqueness rejection is authoritative: it must hold even
// when the directory's pre-check is bypassed, which is what happens when two
// concurrent adds both pass the check before either inserts.
func TestMemStoreInsertDuplicate(t *testing.T) {
	s := NewMemStore()
	c := validContact("Budi")
	if _, err := s.Insert(&c); err != nil {
		t.Fatal(err)
	}
	c2 := validContact("Budi")
	_, err := s.Insert(&c2)
	if !errors.Is(err, dt.ErrDuplicateName) {
		t.Fatal("expected ErrDuplicateName, got", err)
	}
}

func TestMemStoreUpdateCollision(t *testing.T) {
	s := NewMemStore()
	budi := validContact("Budi")
	erik := validContact("Erik")
	idBudi, err := s.Insert(&budi)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = s.Insert(&erik); err != nil {
		t.Fatal(err)
	}
	err = s.UpdateByID(idBudi, "Erik", "e@e.com", "081234567890")
	if !errors.Is(err, dt.ErrDuplicateName) {
		t.Fatal("expected ErrDuplicateName, got", err)
	}
}

func TestMemStoreUpdateMissing(t *testing.T) {
	s := NewMemStore()
	err := s.UpdateByID(42, "Budi", "b@e.com", "081234567890")
	if !errors.Is(err, dt.ErrNotFound) {
		t.Fatal("expected ErrNotFound, got", err)
	}
}

func TestMemStoreDeleteCount(t *testing.T) {
	s := NewMemStore()
	c := validContact("Budi")
	if _, err := s.Insert(&c); err != nil {
		t.Fatal(err)
	}
	n, err := s.DeleteByName("Budi")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("expected 1 removal, got", n)
	}
	n, err = s.DeleteByName("Budi")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("expected 0 removals, got", n)
	}
}
