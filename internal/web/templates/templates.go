// Package templates renders the HTML pages and HTMX fragments of the
// profile service as templ components.
//
// Components live in the .templ files; run `templ generate` after editing
// them to refresh the *_templ.go files.
package templates

import (
	"strconv"

	"github.com/JonMunkholm/profiles/internal/core"
)

// HTMXScriptURL is the HTMX bundle the layout loads.
const HTMXScriptURL = "https://unpkg.com/htmx.org@1.9.12"

// EmptyProfilesMessage is shown when the profile view has nothing to list.
const EmptyProfilesMessage = "No records available"

// Validation scopes sent with each field event.
const (
	ScopeRecord  = "record"
	ScopeAddress = "address"
	ScopeFile    = "file"
)

var recordColumns = []string{
	"Name", "Email", "Phone Number", "City", "District",
	"Province", "Date of Birth", "Profile Photo", "Country",
}

// FieldErrorID is the element id of a field's inline message.
func FieldErrorID(field string) string {
	return "error-" + field
}

type option struct {
	value string
	label string
}

func provinceOptions() []option {
	out := make([]option, 0, core.ProvinceCount+1)
	out = append(out, option{value: "", label: "Select Province"})
	for _, p := range core.Provinces() {
		out = append(out, option{value: p, label: "Province " + p})
	}
	return out
}

// countryOptions lists the fetched countries. The draft's country stays
// selectable until the list arrives.
func countryOptions(countries []string, current string) []option {
	out := make([]option, 0, len(countries)+2)
	out = append(out, option{value: "", label: "Select Country"})
	listed := false
	for _, c := range countries {
		out = append(out, option{value: c, label: c})
		listed = listed || c == current
	}
	if !listed && current != "" {
		out = append(out, option{value: current, label: current})
	}
	return out
}

// validateVals is the hx-vals payload naming the field and its scope.
func validateVals(field, scope string) string {
	return `{"field":` + strconv.Quote(field) + `,"scope":` + strconv.Quote(scope) + `}`
}

func inputTrigger(typ string) string {
	if typ == "date" {
		return "change"
	}
	return "input changed delay:250ms"
}
