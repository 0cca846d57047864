package web

import (
	"log"
	"net/http"
	"os"
	"strings"
)

// handleDevClaimBoard re-keys a board to the caller, which makes seeded
// boards (created without an umpire) playable in dev.
func (s *Server) handleDevClaimBoard(w http.ResponseWriter, r *http.Request) {
	if !isDevMode() {
		http.NotFound(w, r)
		return
	}
	board, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}
	key, hash, err := newUmpireKey()
	if err != nil {
		log.Printf("umpire key: %v", err)
		http.Error(w, "could not claim board", http.StatusInternalServerError)
		return
	}
	board.UmpireKeyHash = hash
	if err := s.store.UpdateBoard(board); err != nil {
		log.Printf("claim board %s: %v", board.ID, err)
		http.Error(w, "could not claim board", http.StatusInternalServerError)
		return
	}
	setUmpireCookie(w, board.ID, key, s.boardTTL)
	http.Redirect(w, r, boardPath(board.ID)+"?notice=board_claimed", http.StatusSeeOther)
}

func isDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("APP")), "dev")
}
