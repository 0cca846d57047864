package web

import (
	"net/http"
	"strings"

	"scorecard-app/internal/scoring"

	"github.com/go-chi/chi/v5"
)

func playerParam(w http.ResponseWriter, r *http.Request) (scoring.PlayerID, bool) {
	id, err := scoring.ParsePlayerID(chi.URLParam(r, "player"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// formScoreLimit falls back to the default when the field is absent.
func formScoreLimit(r *http.Request) (scoring.ScoreLimit, error) {
	raw := strings.TrimSpace(r.FormValue("score_limit"))
	if raw == "" {
		return scoring.DefaultScoreLimit, nil
	}
	return scoring.ParseScoreLimit(raw)
}
