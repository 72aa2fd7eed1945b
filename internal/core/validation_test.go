package core

import (
	"sort"
	"testing"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		// name
		{name: "name present", field: FieldName, value: "Sita", want: ""},
		{name: "name with spaces around", field: FieldName, value: "  Ram  ", want: ""},
		{name: "name empty", field: FieldName, value: "", want: MsgNameRequired},
		{name: "name only whitespace", field: FieldName, value: " \t\n", want: MsgNameRequired},

		// email
		{name: "email basic", field: FieldEmail, value: "a@b.c", want: ""},
		{name: "email realistic", field: FieldEmail, value: "sita.sharma@example.com.np", want: ""},
		{name: "email missing at", field: FieldEmail, value: "sita.example.com", want: MsgInvalidEmail},
		{name: "email missing dot after at", field: FieldEmail, value: "sita@example", want: MsgInvalidEmail},
		{name: "email empty", field: FieldEmail, value: "", want: MsgInvalidEmail},
		{name: "email unanchored match", field: FieldEmail, value: "say hi to a@b.c today", want: ""},

		// phone
		{name: "phone six digits", field: FieldPhoneNumber, value: "123456", want: MsgPhoneTooShort},
		{name: "phone seven digits", field: FieldPhoneNumber, value: "1234567", want: ""},
		{name: "phone ten digits", field: FieldPhoneNumber, value: "9841000000", want: ""},
		{name: "phone with letter", field: FieldPhoneNumber, value: "12a4567", want: MsgPhoneTooShort},
		{name: "phone with plus", field: FieldPhoneNumber, value: "+9779841000000", want: MsgPhoneTooShort},
		{name: "phone empty", field: FieldPhoneNumber, value: "", want: MsgPhoneTooShort},

		// fields without rules
		{name: "dob empty passes", field: FieldDOB, value: "", want: ""},
		{name: "city empty passes", field: FieldCity, value: "", want: ""},
		{name: "province passes", field: FieldProvince, value: "3", want: ""},
		{name: "picture via field path passes", field: FieldProfilePicture, value: "x.jpg", want: ""},
		{name: "unknown field passes", field: "nickname", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateField(tt.field, tt.value); got != tt.want {
				t.Errorf("ValidateField(%q, %q) = %q, want %q", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	pngBytes := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name string
		img  *Image
		want string
	}{
		{name: "absent", img: nil, want: ""},
		{name: "png name", img: NewImage("photo.png", pngBytes), want: ""},
		{name: "jpg name", img: NewImage("photo.jpg", []byte{0xff, 0xd8, 0xff}), want: MsgPictureNotPNG},
		{name: "png content misnamed jpg", img: NewImage("photo.jpg", pngBytes), want: MsgPictureNotPNG},
		{name: "non-png content named png", img: NewImage("notes.png", []byte("plain text")), want: ""},
		{name: "upper-case extension", img: NewImage("PHOTO.PNG", pngBytes), want: MsgPictureNotPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateFile(tt.img); got != tt.want {
				t.Errorf("ValidateFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	t.Run("valid profile has only empty entries", func(t *testing.T) {
		errs := ValidateProfile(validProfile())
		if !errs.Valid() {
			t.Fatalf("expected valid, failed fields: %v", errs.Failed())
		}
		for _, field := range []string{FieldName, FieldEmail, FieldPhoneNumber, FieldProfilePicture} {
			if _, ok := errs[field]; !ok {
				t.Errorf("missing entry for %q", field)
			}
		}
	})

	t.Run("every rule reported", func(t *testing.T) {
		p := EmptyProfile()
		p.ProfilePicture = NewImage("me.gif", []byte("GIF89a"))

		errs := ValidateProfile(p)
		got := errs.Failed()
		sort.Strings(got)
		want := []string{FieldEmail, FieldName, FieldPhoneNumber, FieldProfilePicture}
		sort.Strings(want)

		if len(got) != len(want) {
			t.Fatalf("Failed() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Failed()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})
}

func TestErrorMap_CloneIsIndependent(t *testing.T) {
	m := ErrorMap{FieldName: MsgNameRequired}
	c := m.Clone()
	c[FieldName] = ""

	if m[FieldName] != MsgNameRequired {
		t.Errorf("original mutated through clone")
	}
	if !c.Valid() || m.Valid() {
		t.Errorf("Valid() mismatch: clone=%v original=%v", c.Valid(), m.Valid())
	}
}

func validProfile() Profile {
	p := EmptyProfile()
	p.Name = "Sita Sharma"
	p.Email = "sita@example.com"
	p.PhoneNumber = "9841000000"
	p.DOB = "1995-04-12"
	p.Address.City = "Lalitpur"
	p.Address.District = "Lalitpur"
	p.Address.Province = "3"
	return p
}
