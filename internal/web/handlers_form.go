package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/logging"
	"github.com/JonMunkholm/profiles/internal/web/templates"
)

// Draft fields applied by a full submit, in form order.
var (
	submitRecordFields  = []string{core.FieldName, core.FieldEmail, core.FieldPhoneNumber, core.FieldDOB}
	submitAddressFields = []string{core.FieldCity, core.FieldDistrict, core.FieldProvince, core.FieldCountry}
)

// handleFormPage renders the form, and the table once it is shown.
// ?page=N selects the table page.
func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if page := parseIntParam(r, "page", 0); page > 0 {
		sess.SetPage(page)
	}
	s.renderForm(w, r, sess, http.StatusOK)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, sess *core.Session, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.FormPage(formView(sess)).Render(r.Context(), w); err != nil {
		logging.WithSession(r.Context(), sess.ID).Error("render form page", "error", err)
	}
}

// handleValidateField applies one field event and returns the field's
// message slot.
//
// Form values: field, scope (record, address or file) and the field's own
// input; an explicit value overrides the input.
func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.parseRequestForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}

	field := r.FormValue("field")
	value, ok := formValue(r, "value")
	if !ok {
		value, _ = formValue(r, field)
	}

	var msg string
	var err error
	switch r.FormValue("scope") {
	case templates.ScopeFile:
		var img *core.Image
		if img, err = s.readPicture(r); err == nil {
			msg = sess.Form.ChangeFile(img)
		}
	case templates.ScopeAddress:
		msg, err = sess.Form.ChangeAddressField(field, value)
	default:
		msg, err = sess.Form.ChangeField(field, value)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.FieldError(field, msg).Render(r.Context(), w)
}

// handleSubmit applies every posted field, then submits the draft.
// An invalid draft re-renders the form with 422; a commit redirects home.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	logger := logging.WithSession(r.Context(), sess.ID)

	if err := s.parseRequestForm(w, r); err != nil {
		s.fail(w, r, err)
		return
	}

	// Reject the request before touching the draft.
	if province, ok := formValue(r, core.FieldProvince); ok && !core.IsProvince(province) {
		s.fail(w, r, fmt.Errorf("%w: %q", core.ErrInvalidProvince, province))
		return
	}
	// No file part keeps the current picture.
	img, err := s.readPicture(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	for _, field := range submitRecordFields {
		if value, ok := formValue(r, field); ok {
			if _, err := sess.Form.ChangeField(field, value); err != nil {
				s.fail(w, r, err)
				return
			}
		}
	}
	for _, field := range submitAddressFields {
		if value, ok := formValue(r, field); ok {
			if _, err := sess.Form.ChangeAddressField(field, value); err != nil {
				s.fail(w, r, err)
				return
			}
		}
	}
	if img != nil {
		sess.Form.ChangeFile(img)
	}

	res, err := sess.Form.Submit()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.ObserveSubmit(res)

	if !res.Valid {
		logger.Info("submit rejected", "fields", res.Errors.Failed())
		s.renderForm(w, r, sess, http.StatusUnprocessableEntity)
		return
	}

	logger.Info("record committed",
		"record_id", res.Record.ID,
		"updated", res.Updated,
		"records", sess.Store.Len(),
	)
	redirectHome(w, r)
}

// handleCancelEdit leaves edit mode and discards the draft.
func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.Form.CancelEdit()
	redirectHome(w, r)
}
