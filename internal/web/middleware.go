package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) requireUmpire(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		board, ok := s.store.GetBoard(chi.URLParam(r, "boardID"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		if !isUmpire(r, board) {
			http.Error(w, "only the umpire can change this board", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
