package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/utakatalp/season-manager/internal/game"
	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
	"github.com/utakatalp/season-manager/internal/seed"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	m, err := game.NewGame(seed.Default(), "kes", "Tester", rand.New(rand.NewSource(3)), game.Options{})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return New(m, opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestReadRoutes(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct {
		name, path string
		want       int
	}{
		{"health", "/health", http.StatusOK},
		{"season", "/api/v1/season", http.StatusOK},
		{"standings", "/api/v1/standings", http.StatusOK},
		{"club", "/api/v1/clubs/kes", http.StatusOK},
		{"unknown club", "/api/v1/clubs/zzz", http.StatusNotFound},
		{"roster", "/api/v1/clubs/kes/roster", http.StatusOK},
		{"lineup", "/api/v1/clubs/kes/lineup", http.StatusOK},
		{"finances", "/api/v1/clubs/kes/finances", http.StatusOK},
		{"fixtures", "/api/v1/clubs/kes/fixtures", http.StatusOK},
		{"player", "/api/v1/players/kes-01", http.StatusOK},
		{"unknown player", "/api/v1/players/nobody", http.StatusNotFound},
		{"unplayed matchday", "/api/v1/matchdays/1", http.StatusNotFound},
		{"market", "/api/v1/market?position=ST&maxAge=30", http.StatusOK},
		{"bad market filter", "/api/v1/market?minOverall=high", http.StatusBadRequest},
		{"forecast", "/api/v1/forecast?runs=20", http.StatusOK},
		{"forecast too many runs", "/api/v1/forecast?runs=1000000", http.StatusBadRequest},
		{"training types", "/api/v1/training/types", http.StatusOK},
		{"wrong method", "/api/v1/advance", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, "GET", tt.path, "")
			if rec.Code != tt.want {
				t.Fatalf("GET %s = %d, want %d: %s", tt.path, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct{ method, path string }{
		{"GET", "/api/v1/formation"},
		{"POST", "/api/v1/lineup/slots/3"},
		{"DELETE", "/api/v1/season"},
		{"PUT", "/api/v1/transfers/buy"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rec := do(t, s, tt.method, tt.path, ""); rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("%s %s = %d, want 405", tt.method, tt.path, rec.Code)
			}
		})
	}
}

func TestSeasonView(t *testing.T) {
	s := newTestServer(t, Options{})
	var view seasonView
	decodeBody(t, do(t, s, "GET", "/api/v1/season", ""), &view)
	if view.UserClubID != "kes" || view.CurrentMatchday != 0 || view.TotalMatchdays != 34 {
		t.Fatalf("view = %+v", view)
	}
	if view.Phase != season.PhasePreSeason || view.TransferWindow != league.WindowSummer {
		t.Fatalf("phase %q window %q", view.Phase, view.TransferWindow)
	}
}

func TestAdvanceThenMatchday(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, "POST", "/api/v1/advance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("advance = %d: %s", rec.Code, rec.Body.String())
	}
	var adv advanceResponse
	decodeBody(t, rec, &adv)
	if !adv.Success || adv.Result == nil || adv.Result.Matchday != 1 {
		t.Fatalf("advance body = %+v", adv)
	}

	rec = do(t, s, "GET", "/api/v1/matchdays/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("matchday 1 = %d", rec.Code)
	}
	var md league.MatchdayResult
	decodeBody(t, rec, &md)
	if len(md.Matches) != 9 {
		t.Fatalf("matchday 1 has %d matches", len(md.Matches))
	}
}

func TestMutations(t *testing.T) {
	s := newTestServer(t, Options{})
	tests := []struct {
		name, method, path, body string
		wantStatus               int
		wantReason               season.Reason
	}{
		{"ticket price", "POST", "/api/v1/stadium/ticket-price", `{"price":50}`, http.StatusOK, ""},
		{"ticket price too high", "POST", "/api/v1/stadium/ticket-price", `{"price":500}`, http.StatusUnprocessableEntity, season.ReasonInvalidPrice},
		{"formation", "POST", "/api/v1/formation", `{"formation":"4-3-3"}`, http.StatusOK, ""},
		{"unknown formation", "POST", "/api/v1/formation", `{"formation":"1-1-8"}`, http.StatusUnprocessableEntity, season.ReasonInvalidFormation},
		{"auto lineup", "POST", "/api/v1/lineup/auto", "", http.StatusOK, ""},
		{"clear slot", "DELETE", "/api/v1/lineup/slots/3", "", http.StatusOK, ""},
		{"slot out of range", "PUT", "/api/v1/lineup/slots/11", `{"playerId":"kes-01"}`, http.StatusUnprocessableEntity, season.ReasonInvalidSlot},
		{"foreign player in slot", "PUT", "/api/v1/lineup/slots/0", `{"playerId":"ald-01"}`, http.StatusUnprocessableEntity, season.ReasonNotOnRoster},
		{"unknown upgrade", "POST", "/api/v1/stadium/upgrades", `{"upgrade":"moat"}`, http.StatusUnprocessableEntity, season.ReasonInvalidType},
		{"unknown training", "POST", "/api/v1/training", `{"playerId":"kes-01","type":"juggling"}`, http.StatusUnprocessableEntity, season.ReasonInvalidType},
		{"buy own player", "POST", "/api/v1/transfers/buy", `{"playerId":"kes-01"}`, http.StatusUnprocessableEntity, season.ReasonAlreadyOwned},
		{"subs before a match", "POST", "/api/v1/substitutions", `{"substitutions":[]}`, http.StatusUnprocessableEntity, season.ReasonInvalidSubstitution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("%s %s = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
			var out season.Outcome
			decodeBody(t, rec, &out)
			if out.Reason != tt.wantReason {
				t.Fatalf("reason %q, want %q", out.Reason, tt.wantReason)
			}
		})
	}
}

func TestBadBody(t *testing.T) {
	s := newTestServer(t, Options{})
	for _, body := range []string{`{"price":`, `{"cost":10}`} {
		rec := do(t, s, "POST", "/api/v1/stadium/ticket-price", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q = %d, want 400", body, rec.Code)
		}
	}
}

func TestSaveWithoutStore(t *testing.T) {
	s := newTestServer(t, Options{DefaultSaveSlot: "main"})
	rec := do(t, s, "POST", "/api/v1/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["slot"] != "main" {
		t.Fatalf("slot = %q", resp["slot"])
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: 2, RateWindow: time.Hour})
	for i := 0; i < 2; i++ {
		if rec := do(t, s, "GET", "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i+1, rec.Code)
		}
	}
	rec := do(t, s, "GET", "/health", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, Options{AllowedOrigins: []string{"http://ui.test"}})

	req := httptest.NewRequest("GET", "/api/v1/season", nil)
	req.Header.Set("Origin", "http://ui.test")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.test" {
		t.Fatalf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest("GET", "/api/v1/season", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin got header %q", got)
	}
}
