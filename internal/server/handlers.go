package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/gearshift/internal/gcal"
	"github.com/jonathan/gearshift/internal/ics"
	"github.com/jonathan/gearshift/internal/pipeline"
	"github.com/jonathan/gearshift/internal/reconcile"
	"github.com/jonathan/gearshift/internal/types"
)

const (
	// maxUploadBytes caps one upload batch; schedule screenshots are small.
	maxUploadBytes = 32 << 20
	// maxImages caps screenshots per session.
	maxImages = 12
)

// handleCreateSession accepts a multipart batch of screenshots under the
// "images" field, runs the full pipeline, and returns the finished session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart request: "+err.Error())
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one image is required")
		return
	}
	if len(files) > maxImages {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Too many images (max %d)", maxImages))
		return
	}

	var inputs []pipeline.ImageInput
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename)
			return
		}

		mime := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(mime, "image/") {
			mime = http.DetectContentType(data)
		}
		if !strings.HasPrefix(mime, "image/") {
			s.errorResponse(w, http.StatusBadRequest, fh.Filename+" is not an image")
			return
		}

		inputs = append(inputs, pipeline.ImageInput{Name: fh.Filename, Data: data, MIME: mime})
	}

	result, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Images:     inputs,
		Recognizer: s.recognizer,
		Parser:     s.parser,
		Database:   s.db,
		OnProgress: func(e pipeline.ProgressEvent) {
			log.Printf("[%s] %s", e.Step, e.Message)
		},
	})
	if err != nil {
		if errors.Is(err, reconcile.ErrNothingRecognized) {
			s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, result.Session)
}

// handleGetSession returns one session with shifts, warnings, and per-image
// provenance.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		err := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleUpdateShift edits one shift during the review step.
func (s *Server) handleUpdateShift(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	shiftID, ok := s.pathUUID(w, r, "shift_id")
	if !ok {
		return
	}

	var req types.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	updated, err := s.db.UpdateShift(r.Context(), sessionID, shiftID, req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !updated {
		nferr := &ErrShiftNotFound{ShiftID: shiftID}
		s.errorResponse(w, HTTPStatus(nferr), nferr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleDeleteShift removes one shift during the review step.
func (s *Server) handleDeleteShift(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	shiftID, ok := s.pathUUID(w, r, "shift_id")
	if !ok {
		return
	}

	deleted, err := s.db.DeleteShift(r.Context(), sessionID, shiftID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		nferr := &ErrShiftNotFound{ShiftID: shiftID}
		s.errorResponse(w, HTTPStatus(nferr), nferr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSessionICS serves the session's shifts as a downloadable iCalendar
// file.
func (s *Server) handleSessionICS(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	shifts, err := s.db.ListShifts(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(shifts) == 0 {
		nferr := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(nferr), "no shifts for session "+sessionID.String())
		return
	}

	content, err := ics.Generate(shifts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ics.DefaultFilename))
	if _, err := w.Write([]byte(content)); err != nil {
		log.Printf("Error writing ICS response: %v", err)
	}
}

// handleSync pushes the session's shifts to the user's Google Calendar.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req types.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		verr := &ErrValidation{Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	shifts, err := s.db.ListShifts(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(shifts) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No shifts to sync")
		return
	}

	result, err := gcal.Sync(r.Context(), req.AccessToken, shifts, req.TimeZone)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGoogleAuth redirects the browser to Google's consent screen.
func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	if s.oauthFlow == nil {
		nferr := &ErrSyncNotConfigured{}
		s.errorResponse(w, HTTPStatus(nferr), nferr.Error())
		return
	}

	url, err := s.oauthFlow.AuthURL()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// handleGoogleCallback exchanges the authorization code and hands the
// resulting tokens back to the client.
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthFlow == nil {
		nferr := &ErrSyncNotConfigured{}
		s.errorResponse(w, HTTPStatus(nferr), nferr.Error())
		return
	}

	token, err := s.oauthFlow.Exchange(r.Context(), r.URL.Query().Get("state"), r.URL.Query().Get("code"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
		"expiry":        token.Expiry,
	})
}

// pathUUID parses one UUID path segment, answering 400 itself on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
