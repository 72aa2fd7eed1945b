package core

// validation.go provides the field-level checks run on every form event and
// again, for the whole draft, on submit.
//
// Each rule is a custom validator/v10 tag evaluated with Validate.Var, so a
// field maps to exactly one tag and one message. Fields without a rule
// always pass.

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation messages shown next to the offending input.
const (
	MsgNameRequired  = "Name is required"
	MsgInvalidEmail  = "Invalid email format"
	MsgPhoneTooShort = "Phone number must be at least 7 digits"
	MsgPictureNotPNG = "Profile picture must be in PNG format"
)

const (
	requiredPictureExt = ".png"

	tagNameRequired   = "name_required"
	tagLooseEmail     = "loose_email"
	tagMinSevenDigits = "min7digits"
)

var (
	looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern      = regexp.MustCompile(`^\d{7,}$`)
)

// fieldRule pairs a validator tag with the message reported when it fails.
type fieldRule struct {
	tag     string
	message string
}

var fieldRules = map[string]fieldRule{
	FieldName:        {tag: tagNameRequired, message: MsgNameRequired},
	FieldEmail:       {tag: tagLooseEmail, message: MsgInvalidEmail},
	FieldPhoneNumber: {tag: tagMinSevenDigits, message: MsgPhoneTooShort},
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, tagNameRequired, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, tagLooseEmail, func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, tagMinSevenDigits, func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}

// ValidateField checks a single field value.
// Returns "" when the value passes or the field has no rule.
func ValidateField(field, value string) string {
	rule, ok := fieldRules[field]
	if !ok {
		return ""
	}
	if err := fieldValidator.Var(value, rule.tag); err != nil {
		return rule.message
	}
	return ""
}

// ValidateFile checks the profile picture. Only the file name suffix is
// inspected: a PNG named ".jpg" fails and any file named ".png" passes.
// A missing picture passes.
func ValidateFile(img *Image) string {
	if img != nil && !strings.HasSuffix(img.Name, requiredPictureExt) {
		return MsgPictureNotPNG
	}
	return ""
}

// ErrorMap holds one message per validated field; "" means the field passed.
type ErrorMap map[string]string

// Valid reports whether every entry is empty.
func (m ErrorMap) Valid() bool {
	for _, msg := range m {
		if msg != "" {
			return false
		}
	}
	return true
}

// Failed returns the names of fields with a non-empty message.
func (m ErrorMap) Failed() []string {
	var out []string
	for field, msg := range m {
		if msg != "" {
			out = append(out, field)
		}
	}
	return out
}

// Clone returns an independent copy.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValidateProfile computes a complete Error Map for p from scratch.
func ValidateProfile(p Profile) ErrorMap {
	errs := ErrorMap{
		FieldName:        ValidateField(FieldName, p.Name),
		FieldEmail:       ValidateField(FieldEmail, p.Email),
		FieldPhoneNumber: ValidateField(FieldPhoneNumber, p.PhoneNumber),
		FieldDOB:         ValidateField(FieldDOB, p.DOB),
		FieldCity:        ValidateField(FieldCity, p.Address.City),
		FieldDistrict:    ValidateField(FieldDistrict, p.Address.District),
		FieldProvince:    ValidateField(FieldProvince, p.Address.Province),
		FieldCountry:     ValidateField(FieldCountry, p.Address.Country),
	}
	errs[FieldProfilePicture] = ValidateFile(p.ProfilePicture)
	return errs
}
