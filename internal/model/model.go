package model

import (
	"fmt"
	"strings"
	"time"

	"scorecard-app/internal/scoring"
)

// Board is a live scoreboard for one match. Whoever holds the umpire key
// may change the score; everyone else only watches.
type Board struct {
	ID            string
	Court         string
	UmpireKeyHash string
	Match         scoring.Match
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b Board) Title() string {
	p1 := strings.TrimSpace(b.Match.Player1.Name)
	p2 := strings.TrimSpace(b.Match.Player2.Name)
	if p1 == "" {
		p1 = scoring.DefaultPlayer1Name
	}
	if p2 == "" {
		p2 = scoring.DefaultPlayer2Name
	}
	return p1 + " vs " + p2
}

// ScoreLine is the running score, e.g. "1-0 (12-9)".
func (b Board) ScoreLine() string {
	m := b.Match
	sets := fmt.Sprintf("%d-%d", m.Player1.SetsWon, m.Player2.SetsWon)
	if m.Over {
		return sets
	}
	return fmt.Sprintf("%s (%d-%d)", sets, m.Player1.Score, m.Player2.Score)
}
