package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/JonMunkholm/profiles/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrRecordNotFound, http.StatusNotFound},
		{core.ErrImageNotFound, http.StatusNotFound},
		{core.ErrSessionNotFound, http.StatusGone},
		{core.ErrInvalidProvince, http.StatusBadRequest},
		{errFileTooLarge, http.StatusRequestEntityTooLarge},
		{core.ErrTooManyUploads, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRespondError_LogLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logging.NewHandler(&buf, "debug", "text")))
	defer slog.SetDefault(prev)

	s := &Server{cfg: testConfig()}
	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	req.Header.Set("Accept", "application/json")

	tests := []struct {
		name   string
		err    error
		status int
		level  string
	}{
		{"known client error", core.ErrRecordNotFound, http.StatusNotFound, "level=WARN"},
		{"unmapped client error", errors.New("odd input"), http.StatusBadRequest, "level=ERROR"},
		{"server error", core.ErrTooManyUploads, http.StatusServiceUnavailable, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			rec := httptest.NewRecorder()
			s.respondError(rec, req, tt.err, tt.status)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "request error")
		})
	}
}
