package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"
	"scorecard-app/internal/store"

	"github.com/go-chi/chi/v5"
)

func (s *Server) boardFromRequest(w http.ResponseWriter, r *http.Request) (model.Board, bool) {
	board, ok := s.store.GetBoard(chi.URLParam(r, "boardID"))
	if !ok {
		http.NotFound(w, r)
		return model.Board{}, false
	}
	return board, true
}

func (s *Server) handleBoardShow(w http.ResponseWriter, r *http.Request) {
	board, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}
	view := BoardView{
		BaseView: BaseView{
			Title:        board.Title(),
			FlashSuccess: flashMessage(r.URL.Query().Get("notice")),
			IsDev:        isDevMode(),
		},
		Scoreboard: buildScoreboardView(board, isUmpire(r, board)),
	}
	if err := s.templates.Render(w, "board.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	board, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}
	s.renderScoreboard(w, board, isUmpire(r, board))
}

func (s *Server) handleBoardState(w http.ResponseWriter, r *http.Request) {
	board, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stateResponse{
		ID:       board.ID,
		Court:    board.Court,
		Snapshot: board.Match.Snapshot(),
	}); err != nil {
		log.Printf("encode board %s: %v", board.ID, err)
	}
}

func (s *Server) handlePlayerRename(w http.ResponseWriter, r *http.Request) {
	id, ok := playerParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.applyEvent(w, r, scoring.Rename(id, r.FormValue("name")))
}

func (s *Server) handleScoreIncrement(w http.ResponseWriter, r *http.Request) {
	id, ok := playerParam(w, r)
	if !ok {
		return
	}
	s.applyEvent(w, r, scoring.Increment(id))
}

func (s *Server) handleScoreDecrement(w http.ResponseWriter, r *http.Request) {
	id, ok := playerParam(w, r)
	if !ok {
		return
	}
	s.applyEvent(w, r, scoring.Decrement(id))
}

func (s *Server) handleScoreLimit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	limit, err := scoring.ParseScoreLimit(r.FormValue("score_limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.applyEvent(w, r, scoring.ChangeScoreLimit(limit))
}

func (s *Server) handleMatchReset(w http.ResponseWriter, r *http.Request) {
	s.applyEvent(w, r, scoring.ResetMatch())
}

// applyEvent answers HTMX with the refreshed scoreboard and plain form posts
// with a redirect back to the board.
func (s *Server) applyEvent(w http.ResponseWriter, r *http.Request, event scoring.Event) {
	boardID := chi.URLParam(r, "boardID")
	board, err := s.store.ApplyEvent(boardID, event)
	if errors.Is(err, store.ErrBoardNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("apply %s to board %s: %v", event.Kind, boardID, err)
		http.Error(w, "could not update board", http.StatusInternalServerError)
		return
	}
	if isHTMX(r) {
		s.renderScoreboard(w, board, true)
		return
	}
	target := boardPath(board.ID)
	if event.Kind == scoring.EventReset {
		target += "?notice=match_reset"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) renderScoreboard(w http.ResponseWriter, board model.Board, umpire bool) {
	if err := s.templates.RenderPartial(w, "scoreboard.html", buildScoreboardView(board, umpire)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
