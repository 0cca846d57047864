package web

import "scorecard-app/internal/scoring"

type BaseView struct {
	Title        string
	FlashSuccess string
	IsDev        bool
}

type HomeView struct {
	BaseView
	Boards []BoardSummaryView
	Limits []LimitOption
}

type BoardSummaryView struct {
	ID           string
	Court        string
	Title        string
	ScoreLine    string
	StatusText   string
	UpdatedLabel string
}

type BoardView struct {
	BaseView
	Scoreboard ScoreboardView
}

type ScoreboardView struct {
	BoardID    string
	Court      string
	IsUmpire   bool
	IsDev      bool
	Players    []PlayerPanelView
	CurrentSet int
	MatchOver  bool
	WinnerText string
	Limits     []LimitOption
	Sets       []SetLineView
}

type PlayerPanelView struct {
	Number       int
	Name         string
	Score        int
	SetsWon      int
	CanIncrement bool
	CanDecrement bool
}

type LimitOption struct {
	Value    int
	Selected bool
}

type SetLineView struct {
	Number     int
	Line       string
	WinnerName string
}

type stateResponse struct {
	ID       string           `json:"id"`
	Court    string           `json:"court"`
	Snapshot scoring.Snapshot `json:"state"`
}
