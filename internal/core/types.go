package core

import (
	"context"
	"strconv"
)

// DefaultCountry is the address country of every fresh draft.
const DefaultCountry = "Nepal"

// ProvinceCount is the number of administrative provinces offered by the form.
const ProvinceCount = 7

// Field names accepted by the form. They double as Error Map keys.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhoneNumber    = "phoneNumber"
	FieldDOB            = "dob"
	FieldCity           = "city"
	FieldDistrict       = "district"
	FieldProvince       = "province"
	FieldCountry        = "country"
	FieldProfilePicture = "profilePicture"
)

// recordFields are the top-level draft fields settable with Form.ChangeField.
var recordFields = []string{FieldName, FieldEmail, FieldPhoneNumber, FieldDOB}

// addressFields are the draft fields settable with Form.ChangeAddressField.
var addressFields = []string{FieldCity, FieldDistrict, FieldProvince, FieldCountry}

// Address is the postal part of a profile.
type Address struct {
	City     string `json:"city"`
	District string `json:"district"`
	Province string `json:"province"` // "" or "1".."7"
	Country  string `json:"country"`
}

// Profile is the shape shared by drafts and committed records.
type Profile struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phoneNumber"`
	DOB            string  `json:"dob"` // YYYY-MM-DD
	Address        Address `json:"address"`
	ProfilePicture *Image  `json:"profilePicture,omitempty"`
}

// EmptyProfile returns the default draft: every field blank and the country
// preset to DefaultCountry.
func EmptyProfile() Profile {
	return Profile{Address: Address{Country: DefaultCountry}}
}

// Record is a committed profile. ID is assigned by the store on append.
type Record struct {
	ID string `json:"id"`
	Profile
}

// Provinces returns the selectable province codes in display order.
func Provinces() []string {
	out := make([]string, ProvinceCount)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

// IsProvince reports whether code is an empty selection or a known province.
func IsProvince(code string) bool {
	if code == "" {
		return true
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= 1 && n <= ProvinceCount && strconv.Itoa(n) == code
}

// CountryProvider supplies the selectable country names.
type CountryProvider interface {
	FetchCountries(ctx context.Context) ([]string, error)
}
