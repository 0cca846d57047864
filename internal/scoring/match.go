// Package scoring keeps the score of a best-of-three badminton match.
//
// A Match is a plain value owned by a single writer. Every operation is
// total: inputs outside the closed player and score-limit enumerations are
// ignored, as are point events once the match is over.
package scoring

import (
	"errors"
	"strconv"
	"strings"
)

type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

func (id PlayerID) Valid() bool {
	return id == Player1 || id == Player2
}

func (id PlayerID) Opponent() PlayerID {
	switch id {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return 0
}

type ScoreLimit int

const (
	Limit15 ScoreLimit = 15
	Limit21 ScoreLimit = 21
)

func (l ScoreLimit) Valid() bool {
	return l == Limit15 || l == Limit21
}

const (
	DefaultScoreLimit  = Limit21
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"

	// SetsToWin decides a best-of-three match.
	SetsToWin = 2
	// WinningMargin is the lead a player needs at or above the score limit.
	WinningMargin = 2
)

var (
	ErrUnknownPlayer     = errors.New("player must be 1 or 2")
	ErrInvalidScoreLimit = errors.New("score limit must be 15 or 21")
)

// ScoreLimits lists the limits offered to the umpire, in display order.
func ScoreLimits() []ScoreLimit {
	return []ScoreLimit{Limit15, Limit21}
}

func ParsePlayerID(value string) (PlayerID, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !PlayerID(parsed).Valid() {
		return 0, ErrUnknownPlayer
	}
	return PlayerID(parsed), nil
}

func ParseScoreLimit(value string) (ScoreLimit, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !ScoreLimit(parsed).Valid() {
		return 0, ErrInvalidScoreLimit
	}
	return ScoreLimit(parsed), nil
}

type Player struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	SetsWon int    `json:"sets_won"`
}

type CompletedSet struct {
	Player1Score int      `json:"player1_score"`
	Player2Score int      `json:"player2_score"`
	Winner       PlayerID `json:"winner"`
}

type Match struct {
	Player1    Player         `json:"player1"`
	Player2    Player         `json:"player2"`
	CurrentSet int            `json:"current_set"`
	Over       bool           `json:"match_over"`
	History    []CompletedSet `json:"sets_history"`
	ScoreLimit ScoreLimit     `json:"score_limit"`
}

func NewMatch() Match {
	return Match{
		Player1:    Player{Name: DefaultPlayer1Name},
		Player2:    Player{Name: DefaultPlayer2Name},
		CurrentSet: 1,
		History:    []CompletedSet{},
		ScoreLimit: DefaultScoreLimit,
	}
}

func (m *Match) player(id PlayerID) *Player {
	switch id {
	case Player1:
		return &m.Player1
	case Player2:
		return &m.Player2
	}
	return nil
}

// Player returns a copy of the given player, or the zero Player for an
// unknown id.
func (m Match) Player(id PlayerID) Player {
	if p := m.player(id); p != nil {
		return *p
	}
	return Player{}
}

func (m *Match) RenamePlayer(id PlayerID, name string) {
	if p := m.player(id); p != nil {
		p.Name = name
	}
}

func (m *Match) IncrementScore(id PlayerID) {
	if m.Over {
		return
	}
	p := m.player(id)
	if p == nil {
		return
	}
	p.Score++
	if winner, ok := m.setWinner(); ok {
		m.completeSet(winner)
		m.checkMatchOver()
	}
}

func (m *Match) DecrementScore(id PlayerID) {
	if m.Over {
		return
	}
	p := m.player(id)
	if p == nil || p.Score == 0 {
		return
	}
	p.Score--
}

// SetScoreLimit discards the points of the set in progress. Set history and
// sets won are kept.
func (m *Match) SetScoreLimit(limit ScoreLimit) {
	if !limit.Valid() {
		return
	}
	m.ScoreLimit = limit
	m.resetScores()
}

func (m *Match) Reset() {
	*m = NewMatch()
}

// Winner reports the match winner once the match is over.
func (m Match) Winner() (PlayerID, bool) {
	if !m.Over {
		return 0, false
	}
	if m.Player1.SetsWon > m.Player2.SetsWon {
		return Player1, true
	}
	return Player2, true
}

// setWinner has no upper score cap: a tie above the limit carries on until
// one player leads by WinningMargin.
func (m *Match) setWinner() (PlayerID, bool) {
	limit := int(m.ScoreLimit)
	for _, id := range []PlayerID{Player1, Player2} {
		p, o := m.player(id), m.player(id.Opponent())
		if p.Score >= limit && p.Score-o.Score >= WinningMargin {
			return id, true
		}
	}
	return 0, false
}

func (m *Match) completeSet(winner PlayerID) {
	m.player(winner).SetsWon++
	m.History = append(m.History, CompletedSet{
		Player1Score: m.Player1.Score,
		Player2Score: m.Player2.Score,
		Winner:       winner,
	})
	m.CurrentSet++
	m.resetScores()
}

// checkMatchOver runs after the set is already in History so the deciding
// set is always recorded.
func (m *Match) checkMatchOver() {
	if m.Player1.SetsWon >= SetsToWin || m.Player2.SetsWon >= SetsToWin {
		m.Over = true
	}
}

func (m *Match) resetScores() {
	m.Player1.Score = 0
	m.Player2.Score = 0
}

// Clone returns a copy that shares no history with m.
func (m Match) Clone() Match {
	clone := m
	clone.History = append([]CompletedSet{}, m.History...)
	return clone
}
