package web

import (
	"encoding/json"
	"net/http"

	"github.com/pastgame/past-trading/internal/run"
	"github.com/pastgame/past-trading/internal/trading"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeResult(w http.ResponseWriter, res run.ActionResult) {
	status := http.StatusOK
	if !res.OK {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, map[string]any{"ok": res.OK, "message": res.Message})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "message": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.controller.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"state": snap,
		"speed": s.scheduler.Speed(),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.controller.Progression())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.repo.GetRecentRuns(20)
	if err != nil {
		s.logger.Error("load runs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "net_worth"
	}
	entries, err := s.repo.GetLeaderboard(category)
	if err != nil {
		s.logger.Error("load leaderboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.controller.StartRun(req.Mode); err != nil {
		s.writeResult(w, run.ActionResult{Message: err.Error()})
		return
	}
	s.writeResult(w, run.ActionResult{OK: true, Message: "run started"})
}

func (s *Server) handleAbort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.controller.Abort(); err != nil {
		s.writeResult(w, run.ActionResult{Message: err.Error()})
		return
	}
	s.writeResult(w, run.ActionResult{OK: true, Message: "run aborted"})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.controller.SetPaused(req.Paused)
	s.writeResult(w, run.ActionResult{OK: true, Message: "ok"})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.scheduler.SetSpeed(req.Speed); err != nil {
		s.writeResult(w, run.ActionResult{Message: err.Error()})
		return
	}
	s.writeResult(w, run.ActionResult{OK: true, Message: "ok"})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string  `json:"ticker"`
		Amount float64 `json:"amount"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.Buy(req.Ticker, req.Amount))
}

func (s *Server) handleShort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker string  `json:"ticker"`
		Amount float64 `json:"amount"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.Short(req.Ticker, req.Amount))
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticker   string `json:"ticker"`
		Type     string `json:"type"`
		EntryDay int    `json:"entry_day"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.Sell(req.Ticker, trading.Direction(req.Type), req.EntryDay))
}

func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeResult(w, s.controller.Donate())
}

func (s *Server) handleFallGuy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeResult(w, s.controller.UseFallGuy())
}

func (s *Server) handleIllegal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.PerformIllegalAction(req.Action))
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.BuyUnlock(req.ID))
}

func (s *Server) handleBuyMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.BuyMode(req.ID))
}

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeResult(w, s.controller.EquipTitle(req.ID))
}
