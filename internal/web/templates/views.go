package templates

import "github.com/JonMunkholm/profiles/internal/core"

// Row is one record as rendered in the table and the profile grid.
type Row struct {
	Record     core.Record
	PictureURL string // "" when the record has no picture
}

// TableView is one page of the record table.
type TableView struct {
	Rows       []Row
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	EditingID  string
}

// FormView is everything the form page needs.
type FormView struct {
	Draft       core.Profile
	Errors      core.ErrorMap
	SubmitLabel string
	Editing     bool
	Countries   []string
	PictureURL  string
	Table       *TableView // nil hides the table
}

// ProfilesView is the read-only profile grid.
type ProfilesView struct {
	Rows []Row
}
