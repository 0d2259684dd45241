package core

import (
	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"

	"github.com/itskontak/kontak/shared/datatypes"
)

// Checker validates candidate contact records before they reach the store.
// The phone region is fixed at deployment time (KONTAK_PHONE_REGION), not
// per-call. Checks are pure: no store access, no side effects.
type Checker struct {
	region string
}

// NewChecker returns a Checker validating phone numbers for the given ISO
// 3166-1 region, e.g. "ID".
func NewChecker(region string) *Checker {
	return &Checker{region: region}
}

// Check returns an ordered list of field errors for the candidate record. An
// empty list means the record is valid. Name uniqueness is not checked here;
// that requires a store lookup and belongs to the directory service.
func (ck *Checker) Check(c dt.Contact) []dt.FieldError {
	var errs []dt.FieldError
	if !govalidator.IsEmail(c.Email) {
		errs = append(errs, dt.FieldError{
			Field: "Email",
			Msg:   "invalid email address",
		})
	}
	if !ck.validMobile(c.Phone) {
		errs = append(errs, dt.FieldError{
			Field: "Phone",
			Msg:   "invalid mobile number",
		})
	}
	return errs
}

// validMobile reports whether s is a valid mobile number for the configured
// region. Fixed-line-or-mobile classifications are accepted because several
// regions, Indonesia included, do not always distinguish the two.
func (ck *Checker) validMobile(s string) bool {
	num, err := phonenumbers.Parse(s, ck.region)
	if err != nil {
		return false
	}
	if !phonenumbers.IsValidNumberForRegion(num, ck.region) {
		return false
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return true
	}
	return false
}
