package web

import (
	"net/http"
	"net/url"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/logging"
	"github.com/JonMunkholm/profiles/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleEditRecord loads a record into the form.
func (s *Server) handleEditRecord(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := sess.Form.StartEditByID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	logging.WithSession(r.Context(), sess.ID).Debug("editing record", "record_id", id)
	redirectHome(w, r)
}

// handleDeleteRecord removes a record from the table.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := sess.Form.Delete(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.IncrementRecordsDeleted()
	logging.WithSession(r.Context(), sess.ID).Info("record deleted",
		"record_id", id,
		"records", sess.Store.Len(),
	)
	redirectHome(w, r)
}

func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).NextPage()
	redirectHome(w, r)
}

func (s *Server) handlePrevPage(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).PrevPage()
	redirectHome(w, r)
}

// handleViewProfiles hands the current records to the profile view.
func (s *Server) handleViewProfiles(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	token := sess.Nav.Stash(sess.Store.Snapshot())
	http.Redirect(w, r, "/profiles?nav="+url.QueryEscape(token), http.StatusSeeOther)
}

// handleProfiles renders the records carried by the nav token. A missing,
// used or unknown token, or a caller without a session, renders the empty
// state.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var view templates.ProfilesView
	if token := r.URL.Query().Get("nav"); sess != nil && token != "" {
		records, err := sess.Nav.Take(token)
		if err != nil {
			logging.WithSession(r.Context(), sess.ID).Debug("profile view without navigation state", "error", err)
		}
		view.Rows = profileRows(sess, records)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ProfilesPage(view).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render profiles page", "error", err)
	}
}

// handleImage serves a profile picture by display handle. Content that is
// not a raster image is sent as a download.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess == nil {
		s.fail(w, r, core.ErrImageNotFound)
		return
	}
	img, ok := sess.Images.Lookup(chi.URLParam(r, "handle"))
	if !ok {
		s.fail(w, r, core.ErrImageNotFound)
		return
	}

	if img.Displayable() {
		w.Header().Set("Content-Type", img.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", "attachment")
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(img.Data)
}
