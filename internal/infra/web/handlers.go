package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/infra/audio"
	"gradscout/internal/infra/pdf"
	"gradscout/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type credentialsRequest struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := s.auth.Register(r.Context(), req.FullName, req.Username, req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, usecase.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, "Passwords do not match.")
		return
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already exists.")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("register failed")
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	s.setUserCookie(w, user.Username)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrBadCredentials), errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	s.setUserCookie(w, user.Username)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Detaches the session only; stored favorites, searches and history stay.
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setUserCookie(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    username,
		Path:     "/",
		HttpOnly: true,
	})
}

// handleSearch starts a search and streams slot updates as server-sent
// events. Each event is a usecase.SearchUpdate; the stream closes once all
// three slots have settled (or were superseded).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q model.JobSearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updates, err := s.search.Search(r.Context(), q, username(r))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Career field and location are required.")
			return
		}
		s.log.Error().Err(err).Msg("search failed to start")
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		// No streaming support: drain and return the final snapshot.
		for range updates {
		}
		writeJSON(w, http.StatusOK, s.search.Snapshot())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for u := range updates {
		b, err := json.Marshal(u)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", b)
		flusher.Flush()
	}
}

func (s *Server) handleSearchState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.search.Snapshot())
}

func (s *Server) handleAudioSummary(w http.ResponseWriter, r *http.Request) {
	encoded, err := s.search.AudioSummary(r.Context(), username(r))
	switch {
	case errors.Is(err, domain.ErrNoResults):
		writeError(w, http.StatusConflict, "No jobs to summarize.")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("audio summary failed")
		writeError(w, http.StatusBadGateway, "Could not generate audio summary.")
		return
	}

	raw, err := audio.DecodeBase64(encoded)
	if err != nil {
		s.log.Error().Err(err).Msg("audio payload is not valid base64")
		writeError(w, http.StatusBadGateway, "Could not generate audio summary.")
		return
	}
	samples, err := audio.ToPCM(raw, audio.DefaultSampleRate, audio.DefaultChannels)
	if err != nil {
		s.log.Error().Err(err).Msg("audio payload is not valid s16le PCM")
		writeError(w, http.StatusBadGateway, "Could not generate audio summary.")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("X-Audio-Frames", strconv.Itoa(len(samples)))
	w.Header().Set("X-Audio-Duration", audio.Duration(raw, audio.DefaultSampleRate, audio.DefaultChannels).String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio.WAV(raw, audio.DefaultSampleRate, audio.DefaultChannels))
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var listing model.JobListing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	favorited, err := s.session.ToggleFavorite(r.Context(), username(r), listing)
	if err != nil {
		s.sessionError(w, err, "toggle favorite failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.session.Favorites(r.Context(), username(r))
	if err != nil {
		s.sessionError(w, err, "list favorites failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": favorites})
}

func (s *Server) handleSaveSearch(w http.ResponseWriter, r *http.Request) {
	var q model.JobSearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	saved, err := s.session.SaveSearch(r.Context(), username(r), q)
	if err != nil {
		s.sessionError(w, err, "save search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

func (s *Server) handleSavedSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := s.session.SavedSearches(r.Context(), username(r))
	if err != nil {
		s.sessionError(w, err, "list searches failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": searches})
}

func (s *Server) handleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Search ID is required")
		return
	}
	if err := s.session.DeleteSearch(r.Context(), username(r), id); err != nil {
		s.sessionError(w, err, "delete search failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.history.List(r.Context(), username(r))
	if err != nil {
		s.sessionError(w, err, "list history failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var listing model.JobListing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if listing.JobTitle == "" {
		writeError(w, http.StatusBadRequest, "Listing is required")
		return
	}
	doc, err := pdf.ExportListing(listing)
	if err != nil {
		s.log.Error().Err(err).Msg("pdf export failed")
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(listing)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) sessionError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		writeError(w, http.StatusUnauthorized, "Please sign in first.")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request")
	default:
		s.log.Error().Err(err).Msg(logMsg)
		writeError(w, http.StatusInternalServerError, "Request failed")
	}
}
