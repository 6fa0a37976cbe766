// Package server exposes the read-only HTTP API over the pick store:
// leaderboard, pick feeds and user profiles. It is a thin projection
// layer with no pipeline logic of its own.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pickscout/pickscout/internal/store"
)

// Server provides the HTTP API.
type Server struct {
	store store.Store
	port  int
}

// New creates a new HTTP server over st.
func New(st store.Store, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{store: st, port: port}
}

// Handler returns the API routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/cappers/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/api/picks/today", s.handleTodaysPicks)
	mux.HandleFunc("/api/picks/recent", s.handleRecentPicks)
	mux.HandleFunc("/api/users/profile", s.handleUserProfile)
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("api server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pickscout"})
}

// handleLeaderboard returns cappers sorted by total units won with their
// active picks attached.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.LeaderboardOpts{
		Sport:       r.URL.Query().Get("sport"),
		Credibility: r.URL.Query().Get("credibility"),
		Limit:       intParam(r, "limit", 20),
	}

	entries, err := s.store.Leaderboard(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cappers": entries,
		"count":   len(entries),
	})
}

// handleTodaysPicks returns all pending picks with capper info joined.
func (s *Server) handleTodaysPicks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.FeedOpts{
		Sport:       r.URL.Query().Get("sport"),
		Credibility: r.URL.Query().Get("credibility"),
		Limit:       50,
	}

	picks, err := s.store.PendingPicks(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"picks": picks,
		"count": len(picks),
	})
}

// handleRecentPicks returns graded picks from the last N days.
func (s *Server) handleRecentPicks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	days := intParam(r, "days", 7)
	picks, err := s.store.GradedPicks(r.Context(), days, 100)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"picks": picks,
		"count": len(picks),
	})
}

// handleUserProfile saves a user's bankroll and unit size.
func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var profile store.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile payload"})
		return
	}

	if err := s.store.SaveUserProfile(r.Context(), &profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    profile,
	})
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
