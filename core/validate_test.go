package core

import (
	"testing"

	"github.com/itskontak/kontak/shared/datatypes"
)

func TestCheckValid(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "budi@example.com",
		Phone: "081234567890",
	})
	if len(errs) != 0 {
		t.Fatal("expected no errors, got", errs)
	}
}

func TestCheckValidInternationalFormat(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "budi@example.com",
		Phone: "+6281234567890",
	})
	if len(errs) != 0 {
		t.Fatal("expected no errors, got", errs)
	}
}

func TestCheckBadEmail(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "not-an-email",
		Phone: "081234567890",
	})
	if len(errs) != 1 {
		t.Fatal("expected 1 error, got", len(errs))
	}
	if errs[0].Field != "Email" {
		t.Fatal("expected Email error, got", errs[0].Field)
	}
}

func TestCheckBadPhone(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "budi@example.com",
		Phone: "123",
	})
	if len(errs) != 1 {
		t.Fatal("expected 1 error, got", len(errs))
	}
	if errs[0].Field != "Phone" {
		t.Fatal("expected Phone error, got", errs[0].Field)
	}
}

func TestCheckWrongRegionPhone(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "budi@example.com",
		Phone: "+12025550123",
	})
	if len(errs) != 1 {
		t.Fatal("expected 1 error, got", len(errs))
	}
	if errs[0].Field != "Phone" {
		t.Fatal("expected Phone error, got", errs[0].Field)
	}
}

func TestCheckErrorOrder(t *testing.T) {
	ck := NewChecker("ID")
	errs := ck.Check(dt.Contact{
		Name:  "Budi",
		Email: "not-an-email",
		Phone: "123",
	})
	if len(errs) != 2 {
		t.Fatal("expected 2 errors, got", len(errs))
	}
	if errs[0].Field != "Email" || errs[1].Field != "Phone" {
		t.Fatal("expected Email then Phone, got", errs)
	}
}
