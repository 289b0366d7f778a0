package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/utakatalp/season-manager/internal/finance"
	"github.com/utakatalp/season-manager/internal/game"
	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
	"github.com/utakatalp/season-manager/internal/training"
	"github.com/utakatalp/season-manager/internal/transfer"
)

type seasonView struct {
	Label           string                `json:"label"`
	Year            int                   `json:"year"`
	ManagerName     string                `json:"managerName"`
	UserClubID      string                `json:"userClubId"`
	CurrentMatchday int                   `json:"currentMatchday"`
	TotalMatchdays  int                   `json:"totalMatchdays"`
	Phase           season.Phase          `json:"phase"`
	TransferWindow  league.TransferWindow `json:"transferWindow"`
}

func (s *Server) getSeason(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.mgr.State()
	writeJSON(w, http.StatusOK, seasonView{
		Label:           st.Label,
		Year:            st.Year,
		ManagerName:     st.ManagerName,
		UserClubID:      st.UserClubID,
		CurrentMatchday: st.CurrentMatchday,
		TotalMatchdays:  st.TotalMatchdays(),
		Phase:           st.Phase(),
		TransferWindow:  st.TransferWindow,
	})
}

func (s *Server) getStandings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.mgr.State().Standings())
}

// club resolves the {id} path variable or answers 404.
func (s *Server) club(w http.ResponseWriter, r *http.Request) *league.Club {
	id := mux.Vars(r)["id"]
	c := s.mgr.State().Club(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Club "+strconv.Quote(id)+" not found")
	}
	return c
}

func (s *Server) getClub(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.club(w, r); c != nil {
		writeJSON(w, http.StatusOK, c)
	}
}

func (s *Server) getRoster(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.club(w, r)
	if c == nil {
		return
	}
	roster := s.mgr.State().Roster(c.ID)
	if roster == nil {
		roster = []*league.Player{}
	}
	writeJSON(w, http.StatusOK, roster)
}

type lineupSlot struct {
	Slot   int             `json:"slot"`
	Role   league.Position `json:"role"`
	Player *league.Player  `json:"player"`
}

type lineupView struct {
	Formation string       `json:"formation"`
	Strength  int          `json:"effectiveStrength"`
	Slots     []lineupSlot `json:"slots"`
}

func (s *Server) getLineup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.club(w, r)
	if c == nil {
		return
	}
	st := s.mgr.State()
	roles := league.Formations[c.Formation]
	view := lineupView{
		Formation: c.Formation,
		Strength:  s.mgr.EffectiveStrength(c.ID),
		Slots:     make([]lineupSlot, len(roles)),
	}
	for i, role := range roles {
		view.Slots[i] = lineupSlot{Slot: i, Role: role}
		if i < len(c.Lineup) {
			view.Slots[i].Player = st.Player(c.Lineup[i])
		}
	}
	writeJSON(w, http.StatusOK, view)
}

type financesView struct {
	finance.Summary
	Attendance int                     `json:"expectedAttendance"`
	Upgrades   []finance.UpgradeOption `json:"upgrades"`
}

func (s *Server) getFinances(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.club(w, r)
	if c == nil {
		return
	}
	sum, _ := s.mgr.Finances(c.ID)
	writeJSON(w, http.StatusOK, financesView{
		Summary:    sum,
		Attendance: finance.Attendance(c),
		Upgrades:   finance.UpgradeCatalog(c),
	})
}

func (s *Server) getFixtures(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.club(w, r); c != nil {
		writeJSON(w, http.StatusOK, s.mgr.State().ClubFixtures(c.ID))
	}
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := mux.Vars(r)["id"]
	p := s.mgr.State().Player(id)
	if p == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player "+strconv.Quote(id)+" not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getMatchday(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid matchday")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.mgr.State().MatchdayResult(n)
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Matchday "+strconv.Itoa(n)+" has not been played")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) getMarket(w http.ResponseWriter, r *http.Request) {
	f := transfer.Filter{Position: league.Position(r.URL.Query().Get("position"))}
	var err error
	for _, q := range []struct {
		key string
		dst *int
	}{
		{"minOverall", &f.MinOverall},
		{"maxOverall", &f.MaxOverall},
		{"maxAge", &f.MaxAge},
	} {
		if *q.dst, err = queryInt(r, q.key); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid "+q.key)
			return
		}
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		if f.MaxPrice, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid maxPrice")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	listings := s.mgr.Market(f)
	if listings == nil {
		listings = []transfer.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) getForecast(w http.ResponseWriter, r *http.Request) {
	runs, err := queryInt(r, "runs")
	if err != nil || runs < 0 || runs > s.maxRuns {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "runs must be between 1 and "+strconv.Itoa(s.maxRuns))
		return
	}
	if runs == 0 {
		runs = s.defRuns
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.mgr.Forecast(runs))
}

func (s *Server) getTrainingTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, training.Types())
}

type advanceResponse struct {
	season.Outcome
	Result *league.MatchdayResult `json:"result,omitempty"`
}

func (s *Server) postAdvance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, out := s.mgr.AdvanceMatchday(r.Context())
	resp := advanceResponse{Outcome: out}
	if out.Success {
		resp.Result = &res
	}
	writeOutcome(w, out, resp)
}

func (s *Server) postFormation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Formation string `json:"formation"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.SetFormation(req.Formation)
	writeOutcome(w, out, out)
}

func (s *Server) postAutoLineup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.AutoLineup()
	writeOutcome(w, out, out)
}

func slotVar(r *http.Request) int {
	// the route pattern admits digits only
	n, _ := strconv.Atoi(mux.Vars(r)["slot"])
	return n
}

func (s *Server) putLineupSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.SetLineupSlot(slotVar(r), req.PlayerID)
	writeOutcome(w, out, out)
}

func (s *Server) deleteLineupSlot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.ClearLineupSlot(slotVar(r))
	writeOutcome(w, out, out)
}

func (s *Server) postTraining(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
		Type     string `json:"type"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.mgr.Train(req.PlayerID, req.Type)
	writeOutcome(w, res.Outcome, res)
}

type playerRequest struct {
	PlayerID string `json:"playerId"`
}

func (s *Server) postBuy(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.mgr.Buy(req.PlayerID)
	writeOutcome(w, res.Outcome, res)
}

func (s *Server) postSell(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.mgr.Sell(req.PlayerID)
	writeOutcome(w, res.Outcome, res)
}

func (s *Server) postUpgrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Upgrade finance.Upgrade `json:"upgrade"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.UpgradeStadium(req.Upgrade)
	writeOutcome(w, out, out)
}

func (s *Server) postTicketPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price int `json:"price"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.SetTicketPrice(req.Price)
	writeOutcome(w, out, out)
}

func (s *Server) postSubstitutions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Substitutions []game.Substitution `json:"substitutions"`
	}
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.mgr.ApplySubstitutions(req.Substitutions)
	writeOutcome(w, out, out)
}

func (s *Server) postSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slot string `json:"slot"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.Slot == "" {
		req.Slot = s.slot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mgr.Save(r.Context(), req.Slot); err != nil {
		s.logger.Error("Save failed", "slot", req.Slot, "error", err)
		writeError(w, http.StatusInternalServerError, "SAVE_FAILED", "Could not save the season")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"slot": req.Slot})
}
