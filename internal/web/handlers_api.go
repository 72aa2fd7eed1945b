package web

import (
	"net/http"

	"github.com/JonMunkholm/profiles/internal/core"
)

type apiRecord struct {
	core.Record
	PictureURL string `json:"pictureUrl,omitempty"`
}

type recordsResponse struct {
	Records    []apiRecord `json:"records"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	PageSize   int         `json:"pageSize"`
}

// handleListRecords returns every record of the session in store order,
// with the table's current page. A caller without a session gets an empty
// list.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, recordsResponse{
			Records:    []apiRecord{},
			Page:       1,
			TotalPages: 1,
			PageSize:   core.PageSize,
		})
		return
	}
	page := sess.CurrentPage()

	snapshot := sess.Store.Snapshot()
	records := make([]apiRecord, len(snapshot))
	for i, rec := range snapshot {
		records[i] = apiRecord{Record: rec, PictureURL: pictureURL(sess, rec.ProfilePicture)}
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Records:    records,
		Total:      len(records),
		Page:       page.Number,
		TotalPages: page.TotalPages,
		PageSize:   core.PageSize,
	})
}

// handleListCountries returns the session's selectable countries. The list
// is empty until the fetch completes, stays empty if it failed, and is empty
// for a caller without a session.
func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	countries := []string{}
	if sess := sessionFrom(r.Context()); sess != nil {
		if names := sess.Form.Countries(); names != nil {
			countries = names
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"countries": countries})
}

// handleHealth reports liveness, the live session count and upload slots.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"sessions":       s.sessions.Len(),
		"uploads_active": s.uploads.Active(),
		"uploads_free":   s.uploads.Available(),
	})
}
