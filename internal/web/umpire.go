package web

import (
	"net/http"
	"time"

	"scorecard-app/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const umpireCookieName = "scorecard_umpire"

var umpireKeyCost = bcrypt.DefaultCost

// newUmpireKey returns a fresh key and its bcrypt hash. Only the hash is
// stored; the key lives in the umpire's cookie.
func newUmpireKey() (string, string, error) {
	key := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), umpireKeyCost)
	if err != nil {
		return "", "", err
	}
	return key, string(hash), nil
}

func checkUmpireKey(hash string, key string) bool {
	if hash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

func isUmpire(r *http.Request, board model.Board) bool {
	cookie, err := r.Cookie(umpireCookieName)
	if err != nil {
		return false
	}
	return checkUmpireKey(board.UmpireKeyHash, cookie.Value)
}

func setUmpireCookie(w http.ResponseWriter, boardID string, key string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     umpireCookieName,
		Value:    key,
		Path:     boardPath(boardID),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func boardPath(boardID string) string {
	return "/boards/" + boardID
}
