package core

// form.go implements the Form Controller.
//
// A Form owns the draft, its Error Map and the editing marker. Field events
// update the draft and recompute only that field's entry. Submit recomputes
// the whole map from the current draft in the same critical section that
// commits it, so validity is never judged from an older map.

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownField is returned for a field name the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// ErrInvalidProvince is returned for a province outside the offered options.
var ErrInvalidProvince = errors.New("invalid province")

// Button labels for the submit action.
const (
	LabelSubmit = "Submit"
	LabelUpdate = "Update"
)

// SubmitResult describes the outcome of Form.Submit.
type SubmitResult struct {
	Valid   bool     // Draft passed validation and was committed
	Updated bool     // An existing record was overwritten (edit mode)
	Record  Record   // The committed record (zero if !Valid)
	Errors  ErrorMap // Recomputed Error Map (all empty if Valid)
}

// Form is safe for concurrent use; events are applied one at a time.
type Form struct {
	mu sync.Mutex

	store  *RecordStore
	images *ImageRegistry

	draft     Profile
	errors    ErrorMap
	editingID string
	submitted bool

	countries []string
	closed    bool
}

// NewForm creates a form committing into store. images may be nil when
// display handles are not tracked.
func NewForm(store *RecordStore, images *ImageRegistry) *Form {
	return &Form{
		store:  store,
		images: images,
		draft:  EmptyProfile(),
		errors: ErrorMap{},
	}
}

// ChangeField sets a top-level draft field and revalidates it.
// Returns the field's new message.
func (f *Form) ChangeField(name, value string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldName:
		f.draft.Name = value
	case FieldEmail:
		f.draft.Email = value
	case FieldPhoneNumber:
		f.draft.PhoneNumber = value
	case FieldDOB:
		f.draft.DOB = value
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	msg := ValidateField(name, value)
	f.errors[name] = msg
	return msg, nil
}

// ChangeAddressField sets an address field and revalidates it.
func (f *Form) ChangeAddressField(name, value string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldCity:
		f.draft.Address.City = value
	case FieldDistrict:
		f.draft.Address.District = value
	case FieldProvince:
		if !IsProvince(value) {
			return "", fmt.Errorf("%w: %q", ErrInvalidProvince, value)
		}
		f.draft.Address.Province = value
	case FieldCountry:
		f.draft.Address.Country = value
	default:
		return "", fmt.Errorf("%w: address.%q", ErrUnknownField, name)
	}

	msg := ValidateField(name, value)
	f.errors[name] = msg
	return msg, nil
}

// ChangeFile sets the draft's profile picture and revalidates it.
// A nil image clears the picture.
func (f *Form) ChangeFile(img *Image) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	old := f.draft.ProfilePicture
	f.draft.ProfilePicture = img
	if old != img {
		f.dropUncommittedLocked(old)
	}
	msg := ValidateFile(img)
	f.errors[FieldProfilePicture] = msg
	return msg
}

// Submit validates the whole draft and, if valid, commits it: an edit
// overwrites the record under edit in place, otherwise the draft is appended.
// A committed draft resets the form to EmptyProfile.
//
// An invalid draft leaves the store and draft untouched and keeps the
// recomputed errors visible. If the record under edit was removed by other
// means, the edit is cancelled, the draft is kept, and ErrRecordNotFound is
// returned.
func (f *Form) Submit() (SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := ValidateProfile(f.draft)
	f.errors = errs
	if !errs.Valid() {
		return SubmitResult{Errors: errs.Clone()}, nil
	}

	rec := Record{Profile: f.draft}
	updated := false
	if f.editingID != "" {
		prev, err := f.store.ReplaceByID(f.editingID, rec)
		if err != nil {
			f.editingID = ""
			return SubmitResult{Errors: errs.Clone()}, err
		}
		if prev.ProfilePicture != rec.ProfilePicture {
			f.release(prev.ProfilePicture)
		}
		rec.ID = f.editingID
		updated = true
	} else {
		rec = f.store.Append(rec)
	}

	f.resetLocked()
	f.submitted = true
	return SubmitResult{Valid: true, Updated: updated, Record: rec, Errors: ErrorMap{}}, nil
}

// StartEdit loads the record at index into the draft and enters edit mode.
func (f *Form) StartEdit(index int) error {
	rec, err := f.store.Get(index)
	if err != nil {
		return err
	}
	f.beginEdit(rec)
	return nil
}

// StartEditByID loads the record with id into the draft and enters edit mode.
func (f *Form) StartEditByID(id string) error {
	rec, err := f.store.GetByID(id)
	if err != nil {
		return err
	}
	f.beginEdit(rec)
	return nil
}

func (f *Form) beginEdit(rec Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.draft.ProfilePicture != rec.ProfilePicture {
		f.dropUncommittedLocked(f.draft.ProfilePicture)
	}
	f.draft = rec.Profile
	f.errors = ErrorMap{}
	f.editingID = rec.ID
}

// CancelEdit discards the draft and returns to "new record" mode.
func (f *Form) CancelEdit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropUncommittedLocked(f.draft.ProfilePicture)
	f.resetLocked()
}

// Delete removes the record with id. Deleting the record under edit cancels
// the edit and resets the draft.
func (f *Form) Delete(id string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := f.store.RemoveByID(id)
	if err != nil {
		return Record{}, err
	}
	f.afterDeleteLocked(rec)
	return rec, nil
}

// DeleteAt removes the record at index, with the same edit policy as Delete.
func (f *Form) DeleteAt(index int) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, err := f.store.RemoveAt(index)
	if err != nil {
		return Record{}, err
	}
	f.afterDeleteLocked(rec)
	return rec, nil
}

func (f *Form) afterDeleteLocked(rec Record) {
	if f.editingID == rec.ID {
		if f.draft.ProfilePicture != rec.ProfilePicture {
			f.dropUncommittedLocked(f.draft.ProfilePicture)
		}
		f.resetLocked()
	}
	f.release(rec.ProfilePicture)
}

// dropUncommittedLocked releases the handle of a draft picture that no
// record references.
func (f *Form) dropUncommittedLocked(img *Image) {
	if img != nil && !f.store.References(img) {
		f.release(img)
	}
}

func (f *Form) resetLocked() {
	f.draft = EmptyProfile()
	f.errors = ErrorMap{}
	f.editingID = ""
}

func (f *Form) release(img *Image) {
	if f.images != nil {
		f.images.Release(img)
	}
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the current Error Map.
func (f *Form) Errors() ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Editing returns the ID of the record under edit.
func (f *Form) Editing() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID, f.editingID != ""
}

// EditingIndex returns the current store index of the record under edit,
// or -1 in "new record" mode.
func (f *Form) EditingIndex() int {
	id, ok := f.Editing()
	if !ok {
		return -1
	}
	return f.store.IndexOf(id)
}

// SubmitLabel returns the submit button label for the current mode.
func (f *Form) SubmitLabel() string {
	if _, ok := f.Editing(); ok {
		return LabelUpdate
	}
	return LabelSubmit
}

// ShowTable reports whether the record table should be rendered: at least
// one submit happened and the store is not empty.
func (f *Form) ShowTable() bool {
	f.mu.Lock()
	submitted := f.submitted
	f.mu.Unlock()
	return submitted && f.store.Len() > 0
}

// Store returns the store the form commits into.
func (f *Form) Store() *RecordStore {
	return f.store
}

// Countries returns the selectable country names.
func (f *Form) Countries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.countries)
}

// SetCountries replaces the selectable country names. It is a no-op on a
// closed form and reports whether the list was applied.
func (f *Form) SetCountries(names []string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.countries = slices.Clone(names)
	return true
}

// Close marks the form as torn down. Late country results are discarded.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Closed reports whether Close was called.
func (f *Form) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
