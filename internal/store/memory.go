package store

import (
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]model.Board
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		boards: make(map[string]model.Board),
		now:    time.Now,
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) == "dev" {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) ListBoards() []model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, copyBoard(b))
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].UpdatedAt.After(boards[j].UpdatedAt) })
	return boards
}

func (s *MemoryStore) GetBoard(id string) (model.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[id]
	if !ok {
		return model.Board{}, false
	}
	return copyBoard(b), true
}

func (s *MemoryStore) CreateBoard(board model.Board) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board = prepareNewBoard(board, uuid.NewString, s.now())
	s.boards[board.ID] = copyBoard(board)
	return board, nil
}

func (s *MemoryStore) UpdateBoard(board model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.boards[board.ID]
	if !ok {
		return ErrBoardNotFound
	}
	stored.Court = board.Court
	stored.UmpireKeyHash = board.UmpireKeyHash
	stored.UpdatedAt = s.now()
	s.boards[board.ID] = stored
	return nil
}

func (s *MemoryStore) ApplyEvent(id string, event scoring.Event) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[id]
	if !ok {
		return model.Board{}, ErrBoardNotFound
	}
	board.Match = scoring.Next(board.Match, event)
	board.UpdatedAt = s.now()
	s.boards[id] = board
	return copyBoard(board), nil
}

func (s *MemoryStore) DeleteBoardsBefore(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, b := range s.boards {
		if b.UpdatedAt.Before(cutoff) {
			delete(s.boards, id)
			deleted++
		}
	}
	return deleted, nil
}

func copyBoard(b model.Board) model.Board {
	b.Match = b.Match.Clone()
	return b
}

// seedData adds a few boards without an umpire key; in dev mode they can be
// claimed through /dev/boards/{id}/claim.
func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	names := [][2]string{
		{"Viktor", "Anders"},
		{"Carolina", "Akane"},
		{"Lee", "Kento"},
	}
	now := s.now()
	for i, pair := range names {
		match := scoring.NewMatch()
		match.RenamePlayer(scoring.Player1, pair[0])
		match.RenamePlayer(scoring.Player2, pair[1])
		if i == 1 {
			match.SetScoreLimit(scoring.Limit15)
		}
		for range 20 + rng.Intn(60) {
			match.IncrementScore(scoring.PlayerID(1 + rng.Intn(2)))
		}
		board := model.Board{
			ID:        uuid.NewString(),
			Court:     "court-" + string(rune('a'+i)),
			Match:     match,
			CreatedAt: now.Add(-time.Duration(i+1) * time.Hour),
			UpdatedAt: now.Add(-time.Duration(i+1) * time.Minute),
		}
		s.boards[board.ID] = board
	}
}
