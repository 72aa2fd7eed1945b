package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestFieldError(t *testing.T) {
	got := render(t, FieldError(core.FieldEmail, core.MsgInvalidEmail))
	want := `<span class="text-danger" id="error-email">Invalid email format</span>`
	if got != want {
		t.Errorf("FieldError() = %q, want %q", got, want)
	}

	empty := render(t, FieldError(core.FieldName, ""))
	if !strings.Contains(empty, `id="error-name"></span>`) {
		t.Errorf("empty FieldError() = %q, want an empty slot", empty)
	}
}

func TestFormPage_NewRecord(t *testing.T) {
	out := render(t, FormPage(FormView{
		Draft:       core.EmptyProfile(),
		Errors:      core.ErrorMap{},
		SubmitLabel: core.LabelSubmit,
	}))

	for _, want := range []string{
		`<title>Profile Form</title>`,
		`name="name"`,
		`name="phoneNumber"`,
		`<option value="" selected>Select Province</option>`,
		`<option value="7">Province 7</option>`,
		`<option value="Nepal" selected>Nepal</option>`,
		`accept=".png"`,
		`>Submit</button>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormPage() missing %q", want)
		}
	}
	if strings.Contains(out, "/form/cancel") {
		t.Error("cancel action rendered outside edit mode")
	}
	if strings.Contains(out, `class="table-container"`) {
		t.Error("table rendered without a TableView")
	}
}

func TestFormPage_EditingWithErrors(t *testing.T) {
	draft := core.EmptyProfile()
	draft.Name = `<script>alert(1)</script>`
	draft.Address.Province = "3"
	draft.Address.Country = "India"

	out := render(t, FormPage(FormView{
		Draft:       draft,
		Errors:      core.ErrorMap{core.FieldPhoneNumber: core.MsgPhoneTooShort},
		SubmitLabel: core.LabelUpdate,
		Editing:     true,
		Countries:   []string{"India", "Nepal"},
	}))

	if strings.Contains(out, "<script>alert") {
		t.Error("draft value not escaped")
	}
	for _, want := range []string{
		`<option value="3" selected>Province 3</option>`,
		`<option value="India" selected>India</option>`,
		`<option value="Nepal">Nepal</option>`,
		core.MsgPhoneTooShort,
		`>Update</button>`,
		`action="/form/cancel"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormPage() missing %q", want)
		}
	}
}

func TestRecordTable(t *testing.T) {
	rec := core.Record{ID: "r1", Profile: core.EmptyProfile()}
	rec.Name = "Asha"
	other := core.Record{ID: "r2", Profile: core.EmptyProfile()}

	out := render(t, RecordTable(TableView{
		Rows: []Row{
			{Record: rec, PictureURL: "/images/h1"},
			{Record: other},
		},
		Page:       1,
		TotalPages: 2,
		HasNext:    true,
		EditingID:  "r2",
	}))

	for _, want := range []string{
		`<th>Profile Photo</th>`,
		`<th>Actions</th>`,
		`<td>Asha</td>`,
		`src="/images/h1"`,
		`action="/records/r1/edit"`,
		`action="/records/r2/delete"`,
		`<span class="page-number">1</span>`,
		`action="/profiles"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RecordTable() missing %q", want)
		}
	}
	if strings.Count(out, "<img") != 1 {
		t.Errorf("img tags = %d, want 1 (rows without a picture render none)", strings.Count(out, "<img"))
	}
	if strings.Contains(out, `action="/records/r2/edit"`) {
		t.Error("edit action rendered for the record under edit")
	}
	if !strings.Contains(out, `action="/table/prev"><button type="submit" disabled>`) {
		t.Error("previous button should be disabled on page 1")
	}
	if strings.Contains(out, `action="/table/next"><button type="submit" disabled>`) {
		t.Error("next button should be enabled before the last page")
	}
}

func TestProfilesPage(t *testing.T) {
	empty := render(t, ProfilesPage(ProfilesView{}))
	if !strings.Contains(empty, EmptyProfilesMessage) {
		t.Errorf("empty ProfilesPage() = %q", empty)
	}
	if strings.Contains(empty, "<h1>Profiles</h1>") {
		t.Error("heading rendered for empty view")
	}

	a := core.Record{ID: "a", Profile: core.EmptyProfile()}
	a.Name = "First"
	b := core.Record{ID: "b", Profile: core.EmptyProfile()}
	b.Name = "Second"

	out := render(t, ProfilesPage(ProfilesView{Rows: []Row{{Record: a}, {Record: b}}}))
	if !strings.Contains(out, "<h1>Profiles</h1>") {
		t.Error("missing heading")
	}
	if strings.Contains(out, "Actions") {
		t.Error("profile view must not render actions")
	}
	if strings.Count(out, "<tr>") != 3 {
		t.Errorf("rows = %d, want header + 2", strings.Count(out, "<tr>"))
	}
	if strings.Index(out, "First") > strings.Index(out, "Second") {
		t.Error("rows out of input order")
	}
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Record not found", "Reload the page", "REC001"))
	for _, want := range []string{"Record not found", "Reload the page", "(REC001)", `role="alert"`} {
		if !strings.Contains(out, want) {
			t.Errorf("ErrorAlert() missing %q", want)
		}
	}
}
