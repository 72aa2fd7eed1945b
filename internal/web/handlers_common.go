package web

// handlers_common.go holds request parsing and view building shared by the
// handlers.

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/web/templates"
)

// formOverhead is the body allowance for the text fields of a multipart
// submit on top of the picture itself.
const formOverhead = 1 << 20

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseRequestForm parses a urlencoded or multipart body, bounded by the
// configured picture size.
func (s *Server) parseRequestForm(w http.ResponseWriter, r *http.Request) error {
	maxImage := s.cfg.Upload.MaxImageSize
	r.Body = http.MaxBytesReader(w, r.Body, maxImage+formOverhead)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxImage + formOverhead)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("profile picture: %w (max %d bytes)", errFileTooLarge, maxImage)
	}
	return fmt.Errorf("%w: %v", errInvalidForm, err)
}

// readPicture returns the uploaded profile picture, or nil when the request
// carries none. Call after parseRequestForm.
func (s *Server) readPicture(r *http.Request) (*core.Image, error) {
	file, header, err := r.FormFile(core.FieldProfilePicture)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	defer file.Close()

	maxImage := s.cfg.Upload.MaxImageSize
	data, err := io.ReadAll(io.LimitReader(file, maxImage+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read picture: %v", errInvalidForm, err)
	}
	if int64(len(data)) > maxImage {
		return nil, fmt.Errorf("profile picture: %w (max %d bytes)", errFileTooLarge, maxImage)
	}
	if header.Filename == "" {
		return nil, nil
	}
	return core.NewImage(header.Filename, data), nil
}

// formValue returns the posted value of name and whether it was present.
func formValue(r *http.Request, name string) (string, bool) {
	vals, ok := r.Form[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// pictureURL issues the display URL of img in sess, or "" for no picture.
func pictureURL(sess *core.Session, img *core.Image) string {
	if img == nil {
		return ""
	}
	return "/images/" + sess.Images.Acquire(img)
}

// inlinePictureURL embeds img as a data URL, or "" when it is not a
// displayable image.
func inlinePictureURL(img *core.Image) string {
	if !img.Displayable() {
		return ""
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// profileRows builds rows for a navigation snapshot. Pictures of records
// still in the store get a display handle; pictures of records deleted since
// the snapshot are inlined so no handle outlives its record.
func profileRows(sess *core.Session, records []core.Record) []templates.Row {
	out := make([]templates.Row, len(records))
	for i, rec := range records {
		row := templates.Row{Record: rec}
		if img := rec.ProfilePicture; img != nil {
			if sess.Store.References(img) {
				row.PictureURL = pictureURL(sess, img)
			} else {
				row.PictureURL = inlinePictureURL(img)
			}
		}
		out[i] = row
	}
	return out
}

func rows(sess *core.Session, records []core.Record) []templates.Row {
	out := make([]templates.Row, len(records))
	for i, rec := range records {
		out[i] = templates.Row{Record: rec, PictureURL: pictureURL(sess, rec.ProfilePicture)}
	}
	return out
}

// formView snapshots the form, and the table when it is shown.
func formView(sess *core.Session) templates.FormView {
	f := sess.Form
	draft := f.Draft()
	editingID, editing := f.Editing()

	v := templates.FormView{
		Draft:       draft,
		Errors:      f.Errors(),
		SubmitLabel: f.SubmitLabel(),
		Editing:     editing,
		Countries:   f.Countries(),
		PictureURL:  pictureURL(sess, draft.ProfilePicture),
	}

	if f.ShowTable() {
		page := sess.CurrentPage()
		v.Table = &templates.TableView{
			Rows:       rows(sess, page.Records),
			Page:       page.Number,
			TotalPages: page.TotalPages,
			HasPrev:    page.HasPrev(),
			HasNext:    page.HasNext(),
			EditingID:  editingID,
		}
	}
	return v
}

// redirectHome finishes a form post with a 303 back to the form page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
