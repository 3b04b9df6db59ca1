package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// This file contains the HTTP handlers for the application. The playlist
// handlers share a pattern:
// 1. Check the request method.
// 2. Resolve the caller's session from the session cookie.
// 3. Run the pipeline or the navigation operation against stored state.
// 4. Write the resulting playlist state as JSON.

const sessionCookieName = "session_id"

// sessionFromRequest returns the caller's session ID, minting a new one
// (and setting the cookie) when create is true and no cookie exists.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, create bool) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	if !create {
		return "", false
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, true
}

// handlerPlaylist dispatches the playlist collection route: POST generates
// a new playlist for the session, GET returns the current one.
func (cfg *apiConfig) handlerPlaylist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		cfg.handlerGeneratePlaylist(w, r)
	case http.MethodGet:
		cfg.handlerGetPlaylist(w, r)
	default:
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
	}
}

func (cfg *apiConfig) handlerGeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cfg.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sessionID, _ := sessionFromRequest(w, r, true)
	cfg.logger.Debug("playlist generation request", "city", req.City, "session", sessionID)

	result, err := cfg.generatePlaylist(ctx, sessionID, req)
	switch {
	case errors.Is(err, ErrBlankCity):
		cfg.respondWithError(w, http.StatusBadRequest, "Please enter a city name.", nil)
		return
	case errors.Is(err, ErrCityNotFound):
		cfg.respondWithError(w, http.StatusNotFound, "City not found. Please try again.", nil)
		return
	case errors.Is(err, ErrNoVideosFound):
		cfg.respondWithError(w, http.StatusNotFound, "No videos found.", nil)
		return
	case err != nil:
		cfg.respondWithError(w, http.StatusInternalServerError, "Error generating playlist", err)
		return
	}

	cfg.respondWithJSON(w, http.StatusOK, PlaylistResponse{
		Location:    result.Location,
		Weather:     result.Weather,
		Suggestions: result.Suggestions,
		Notices:     result.Notices,
		Playlist:    result.Playlist.stateJSON(),
	})
}

func (cfg *apiConfig) handlerGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := cfg.loadSessionPlaylist(w, r)
	if !ok {
		return
	}
	cfg.respondWithJSON(w, http.StatusOK, playlist.stateJSON())
}

// handlerNext and handlerPrevious step the session's queue cyclically.
func (cfg *apiConfig) handlerNext(w http.ResponseWriter, r *http.Request) {
	cfg.navigate(w, r, func(p *Playlist) { p.Next() })
}

func (cfg *apiConfig) handlerPrevious(w http.ResponseWriter, r *http.Request) {
	cfg.navigate(w, r, func(p *Playlist) { p.Previous() })
}

// handlerJump sets the cursor to an explicit index. Out-of-bounds indices
// leave the state unchanged.
func (cfg *apiConfig) handlerJump(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if r.Method != http.MethodPost {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cfg.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cfg.applyNavigation(w, r, func(p *Playlist) { p.JumpTo(req.Index) })
}

func (cfg *apiConfig) navigate(w http.ResponseWriter, r *http.Request, op func(*Playlist)) {
	if r.Method != http.MethodPost {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}
	cfg.applyNavigation(w, r, op)
}

func (cfg *apiConfig) applyNavigation(w http.ResponseWriter, r *http.Request, op func(*Playlist)) {
	playlist, ok := cfg.loadSessionPlaylist(w, r)
	if !ok {
		return
	}

	op(playlist)

	sessionID, _ := sessionFromRequest(w, r, false)
	if err := cfg.sessions.Set(r.Context(), sessionID, playlist); err != nil {
		cfg.respondWithError(w, http.StatusInternalServerError, "Error storing playlist state", err)
		return
	}

	cfg.respondWithJSON(w, http.StatusOK, playlist.stateJSON())
}

// loadSessionPlaylist fetches and self-heals the caller's playlist. It
// writes the error response itself and reports success via the bool.
func (cfg *apiConfig) loadSessionPlaylist(w http.ResponseWriter, r *http.Request) (*Playlist, bool) {
	sessionID, ok := sessionFromRequest(w, r, false)
	if !ok {
		cfg.respondWithError(w, http.StatusNotFound, "No playlist for this session.", nil)
		return nil, false
	}

	playlist, err := cfg.sessions.Get(r.Context(), sessionID)
	if errors.Is(err, ErrNoPlaylist) {
		cfg.respondWithError(w, http.StatusNotFound, "No playlist for this session.", nil)
		return nil, false
	}
	if err != nil {
		cfg.respondWithError(w, http.StatusInternalServerError, "Error loading playlist state", err)
		return nil, false
	}
	if len(playlist.Items) == 0 {
		cfg.respondWithError(w, http.StatusNotFound, "No playlist for this session.", nil)
		return nil, false
	}

	playlist.normalize()
	return playlist, true
}

// handlerConfig provides client-side applications with the configuration
// they need to render correctly: dev mode and whether the AI path is
// available (clients show the fallback notice when it isn't).
func (cfg *apiConfig) handlerConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	cfg.respondWithJSON(w, http.StatusOK, ConfigResponse{
		DevMode:   cfg.devMode,
		AIEnabled: cfg.aiEnabled,
	})
}
