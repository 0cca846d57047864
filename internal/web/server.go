package web

import (
	"net/http"
	"time"

	"scorecard-app/internal/store"

	"github.com/go-chi/chi/v5"
)

const defaultBoardTTL = 24 * time.Hour

type Options struct {
	// BoardTTL is how long an untouched board is kept before it is purged.
	BoardTTL time.Duration
}

type Server struct {
	store     store.Store
	templates *Templates
	boardTTL  time.Duration
}

func NewServer(store store.Store, templates *Templates, opts Options) *Server {
	ttl := opts.BoardTTL
	if ttl <= 0 {
		ttl = defaultBoardTTL
	}
	return &Server{store: store, templates: templates, boardTTL: ttl}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleHome)
	r.Post("/boards", s.handleBoardCreate)
	r.Route("/boards/{boardID}", func(r chi.Router) {
		r.Get("/", s.handleBoardShow)
		r.Get("/scoreboard", s.handleScoreboard)
		r.Get("/state", s.handleBoardState)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUmpire)
			r.Post("/players/{player}/name", s.handlePlayerRename)
			r.Post("/players/{player}/increment", s.handleScoreIncrement)
			r.Post("/players/{player}/decrement", s.handleScoreDecrement)
			r.Post("/score-limit", s.handleScoreLimit)
			r.Post("/reset", s.handleMatchReset)
		})
	})
	r.Post("/dev/boards/{boardID}/claim", s.handleDevClaimBoard)

	return r
}
