package web

import (
	"log"
	"net/http"
	"strings"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"

	petname "github.com/dustinkirkland/golang-petname"
)

const homeBoardLimit = 20

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	boards := s.store.ListBoards()
	if len(boards) > homeBoardLimit {
		boards = boards[:homeBoardLimit]
	}
	summaries := make([]BoardSummaryView, 0, len(boards))
	for _, b := range boards {
		summaries = append(summaries, boardSummary(b, now))
	}
	view := HomeView{
		BaseView: BaseView{
			Title:        "Badminton ScoreCard",
			FlashSuccess: flashMessage(r.URL.Query().Get("notice")),
			IsDev:        isDevMode(),
		},
		Boards: summaries,
		Limits: limitOptions(scoring.DefaultScoreLimit),
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleBoardCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	limit, err := formScoreLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	match := scoring.NewMatch()
	if name := strings.TrimSpace(r.FormValue("player1")); name != "" {
		match.RenamePlayer(scoring.Player1, name)
	}
	if name := strings.TrimSpace(r.FormValue("player2")); name != "" {
		match.RenamePlayer(scoring.Player2, name)
	}
	match.SetScoreLimit(limit)

	court := strings.TrimSpace(r.FormValue("court"))
	if court == "" {
		court = petname.Generate(2, "-")
	}
	key, hash, err := newUmpireKey()
	if err != nil {
		log.Printf("umpire key: %v", err)
		http.Error(w, "could not create board", http.StatusInternalServerError)
		return
	}

	s.purgeStaleBoards()
	board, err := s.store.CreateBoard(model.Board{
		Court:         court,
		UmpireKeyHash: hash,
		Match:         match,
	})
	if err != nil {
		log.Printf("create board: %v", err)
		http.Error(w, "could not create board", http.StatusInternalServerError)
		return
	}
	log.Printf("board %s created on court %s", board.ID, board.Court)
	setUmpireCookie(w, board.ID, key, s.boardTTL)
	http.Redirect(w, r, boardPath(board.ID)+"?notice=board_created", http.StatusSeeOther)
}

// purgeStaleBoards keeps the store to matches still being played.
func (s *Server) purgeStaleBoards() {
	deleted, err := s.store.DeleteBoardsBefore(time.Now().Add(-s.boardTTL))
	if err != nil {
		log.Printf("purge boards: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("purged %d stale boards", deleted)
	}
}
