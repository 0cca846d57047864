package scoring

// Snapshot is everything a caller needs to render a match.
type Snapshot struct {
	Player1    Player       `json:"player1"`
	Player2    Player       `json:"player2"`
	CurrentSet int          `json:"current_set"`
	ScoreLimit ScoreLimit   `json:"score_limit"`
	MatchOver  bool         `json:"match_over"`
	Winner     PlayerID     `json:"winner,omitempty"`
	WinnerName string       `json:"winner_name,omitempty"`
	Sets       []SetSummary `json:"sets"`
}

type SetSummary struct {
	Number       int      `json:"number"`
	Player1Score int      `json:"player1_score"`
	Player2Score int      `json:"player2_score"`
	Winner       PlayerID `json:"winner"`
	WinnerName   string   `json:"winner_name"`
}

// Snapshot names set winners with the players' current names.
func (m Match) Snapshot() Snapshot {
	snap := Snapshot{
		Player1:    m.Player1,
		Player2:    m.Player2,
		CurrentSet: m.CurrentSet,
		ScoreLimit: m.ScoreLimit,
		MatchOver:  m.Over,
		Sets:       make([]SetSummary, 0, len(m.History)),
	}
	if winner, ok := m.Winner(); ok {
		snap.Winner = winner
		snap.WinnerName = m.Player(winner).Name
	}
	for i, set := range m.History {
		snap.Sets = append(snap.Sets, SetSummary{
			Number:       i + 1,
			Player1Score: set.Player1Score,
			Player2Score: set.Player2Score,
			Winner:       set.Winner,
			WinnerName:   m.Player(set.Winner).Name,
		})
	}
	return snap
}
