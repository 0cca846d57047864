package web

import (
	"fmt"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"
)

func buildScoreboardView(board model.Board, umpire bool) ScoreboardView {
	snap := board.Match.Snapshot()
	view := ScoreboardView{
		BoardID:  board.ID,
		Court:    board.Court,
		IsUmpire: umpire,
		IsDev:    isDevMode(),
		Players: []PlayerPanelView{
			playerPanel(scoring.Player1, snap.Player1, snap.MatchOver),
			playerPanel(scoring.Player2, snap.Player2, snap.MatchOver),
		},
		CurrentSet: snap.CurrentSet,
		MatchOver:  snap.MatchOver,
		Limits:     limitOptions(snap.ScoreLimit),
		Sets:       setLines(snap),
	}
	if snap.MatchOver {
		view.WinnerText = snap.WinnerName + " wins!"
	}
	return view
}

func playerPanel(id scoring.PlayerID, p scoring.Player, over bool) PlayerPanelView {
	return PlayerPanelView{
		Number:       int(id),
		Name:         p.Name,
		Score:        p.Score,
		SetsWon:      p.SetsWon,
		CanIncrement: !over,
		CanDecrement: !over && p.Score > 0,
	}
}

func limitOptions(current scoring.ScoreLimit) []LimitOption {
	limits := scoring.ScoreLimits()
	options := make([]LimitOption, 0, len(limits))
	for _, l := range limits {
		options = append(options, LimitOption{Value: int(l), Selected: l == current})
	}
	return options
}

func setLines(snap scoring.Snapshot) []SetLineView {
	lines := make([]SetLineView, 0, len(snap.Sets))
	for _, set := range snap.Sets {
		lines = append(lines, SetLineView{
			Number: set.Number,
			Line: fmt.Sprintf("Set %d: %s %d - %d %s",
				set.Number, snap.Player1.Name, set.Player1Score, set.Player2Score, snap.Player2.Name),
			WinnerName: set.WinnerName,
		})
	}
	return lines
}

func boardSummary(board model.Board, now time.Time) BoardSummaryView {
	status := fmt.Sprintf("Set %d", board.Match.CurrentSet)
	if winner, ok := board.Match.Winner(); ok {
		status = board.Match.Player(winner).Name + " wins"
	}
	return BoardSummaryView{
		ID:           board.ID,
		Court:        board.Court,
		Title:        board.Title(),
		ScoreLine:    board.ScoreLine(),
		StatusText:   status,
		UpdatedLabel: sinceLabel(board.UpdatedAt, now),
	}
}

func sinceLabel(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	}
}
