package store

import (
	"errors"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"
)

var ErrBoardNotFound = errors.New("board not found")

// Store holds live boards. ApplyEvent is the only way a match changes, and
// every implementation runs it as one atomic load-apply-save. UpdateBoard
// only writes the court and the umpire key hash.
type Store interface {
	ListBoards() []model.Board
	GetBoard(id string) (model.Board, bool)
	CreateBoard(board model.Board) (model.Board, error)
	UpdateBoard(board model.Board) error
	ApplyEvent(id string, event scoring.Event) (model.Board, error)
	DeleteBoardsBefore(cutoff time.Time) (int, error)
}

func prepareNewBoard(board model.Board, newID func() string, now time.Time) model.Board {
	if board.ID == "" {
		board.ID = newID()
	}
	if board.CreatedAt.IsZero() {
		board.CreatedAt = now
	}
	if board.UpdatedAt.IsZero() {
		board.UpdatedAt = board.CreatedAt
	}
	if board.Match.CurrentSet == 0 {
		board.Match = scoring.NewMatch()
	}
	return board
}
