package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pickscout/pickscout/internal/store"
)

type stubStore struct {
	entries []store.CapperEntry
	picks   []store.PickEntry
	err     error

	gotLeaderboard store.LeaderboardOpts
	gotFeed        store.FeedOpts
	gotDays        int
	savedProfile   *store.UserProfile
}

func (s *stubStore) UpsertCapper(ctx context.Context, c *store.Capper) (string, error) {
	return "", nil
}

func (s *stubStore) InsertPick(ctx context.Context, p *store.Pick) (string, error) {
	return "", nil
}

func (s *stubStore) Leaderboard(ctx context.Context, opts store.LeaderboardOpts) ([]store.CapperEntry, error) {
	s.gotLeaderboard = opts
	return s.entries, s.err
}

func (s *stubStore) PendingPicks(ctx context.Context, opts store.FeedOpts) ([]store.PickEntry, error) {
	s.gotFeed = opts
	return s.picks, s.err
}

func (s *stubStore) GradedPicks(ctx context.Context, days, limit int) ([]store.PickEntry, error) {
	s.gotDays = days
	return s.picks, s.err
}

func (s *stubStore) SaveUserProfile(ctx context.Context, u *store.UserProfile) error {
	s.savedProfile = u
	return s.err
}

func (s *stubStore) Close() error { return nil }

func doRequest(t *testing.T, st store.Store, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	New(st, 0).Handler().ServeHTTP(w, r)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(t, &stubStore{}, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	st := &stubStore{entries: []store.CapperEntry{
		{Capper: store.Capper{Username: "picksguy"}, ActivePicks: []store.Pick{}},
	}}

	w := doRequest(t, st, http.MethodGet,
		"/api/cappers/leaderboard?sport=Basketball&credibility=verified&limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if st.gotLeaderboard.Sport != "Basketball" ||
		st.gotLeaderboard.Credibility != "verified" ||
		st.gotLeaderboard.Limit != 5 {
		t.Errorf("opts = %+v", st.gotLeaderboard)
	}

	var body struct {
		Cappers []store.CapperEntry `json:"cappers"`
		Count   int                 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || len(body.Cappers) != 1 {
		t.Errorf("count = %d, cappers = %d", body.Count, len(body.Cappers))
	}
	if body.Cappers[0].Username != "picksguy" {
		t.Errorf("username = %q", body.Cappers[0].Username)
	}
}

func TestLeaderboardMethodNotAllowed(t *testing.T) {
	w := doRequest(t, &stubStore{}, http.MethodPost, "/api/cappers/leaderboard", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestTodaysPicksEndpoint(t *testing.T) {
	st := &stubStore{picks: []store.PickEntry{
		{Pick: store.Pick{PickText: "Lakers ML -110"}, CapperUsername: "picksguy"},
	}}

	w := doRequest(t, st, http.MethodGet, "/api/picks/today?sport=Basketball", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if st.gotFeed.Sport != "Basketball" {
		t.Errorf("feed opts = %+v", st.gotFeed)
	}

	var body struct {
		Picks []store.PickEntry `json:"picks"`
		Count int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Picks[0].CapperUsername != "picksguy" {
		t.Errorf("body = %+v", body)
	}
}

func TestRecentPicksEndpoint(t *testing.T) {
	st := &stubStore{}

	w := doRequest(t, st, http.MethodGet, "/api/picks/recent?days=14", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if st.gotDays != 14 {
		t.Errorf("days = %d, want 14", st.gotDays)
	}

	// Garbage parameter falls back to the default window.
	doRequest(t, st, http.MethodGet, "/api/picks/recent?days=soon", "")
	if st.gotDays != 7 {
		t.Errorf("days = %d, want default 7", st.gotDays)
	}
}

func TestUserProfileEndpoint(t *testing.T) {
	st := &stubStore{}

	w := doRequest(t, st, http.MethodPost, "/api/users/profile",
		`{"email": "bettor@example.com", "bankroll": 1000, "unit_size": 10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if st.savedProfile == nil || st.savedProfile.Email != "bettor@example.com" {
		t.Fatalf("saved profile = %+v", st.savedProfile)
	}

	var body struct {
		Success bool              `json:"success"`
		User    store.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.User.Bankroll != 1000 {
		t.Errorf("body = %+v", body)
	}
}

func TestUserProfileBadPayload(t *testing.T) {
	w := doRequest(t, &stubStore{}, http.MethodPost, "/api/users/profile", "not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestStoreErrorsBecome500(t *testing.T) {
	st := &stubStore{err: errors.New("db locked")}

	for _, target := range []string{
		"/api/cappers/leaderboard",
		"/api/picks/today",
		"/api/picks/recent",
	} {
		w := doRequest(t, st, http.MethodGet, target, "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s status = %d, want 500", target, w.Code)
		}
	}
}
