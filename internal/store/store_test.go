package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scorecard.db")
	s, err := NewSQLiteStore(path, SQLiteOptions{
		MigrationsDir: filepath.Join("..", "..", "migrations", "sqlite"),
	})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storesUnderTest(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteTestStore(t),
	}
}

func TestCreateAndGetBoard(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			created, err := s.CreateBoard(model.Board{Court: "court-1", UmpireKeyHash: "hash"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created.ID == "" || created.CreatedAt.IsZero() {
				t.Fatal("board was not given an id and creation time")
			}
			if created.Match.CurrentSet != 1 || created.Match.ScoreLimit != scoring.Limit21 {
				t.Fatal("board was not given a fresh match")
			}

			got, ok := s.GetBoard(created.ID)
			if !ok {
				t.Fatal("created board not found")
			}
			if got.Court != "court-1" || got.UmpireKeyHash != "hash" || got.Match.Player1.Name != "Player 1" {
				t.Fatalf("stored board is %+v", got)
			}

			if _, ok := s.GetBoard("missing"); ok {
				t.Fatal("unknown board was found")
			}
		})
	}
}

func TestApplyEvent(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			board, err := s.CreateBoard(model.Board{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var last model.Board
			for range 21 {
				last, err = s.ApplyEvent(board.ID, scoring.Increment(scoring.Player2))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if last.Match.Player2.SetsWon != 1 || len(last.Match.History) != 1 {
				t.Fatalf("set not recorded: %+v", last.Match)
			}

			if _, err := s.ApplyEvent(board.ID, scoring.Rename(scoring.Player1, "Ginting")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := s.GetBoard(board.ID)
			if got.Match.Player1.Name != "Ginting" || got.Match.CurrentSet != 2 {
				t.Fatalf("stored match is %+v", got.Match)
			}
			if got.Match.History[0] != (scoring.CompletedSet{Player1Score: 0, Player2Score: 21, Winner: scoring.Player2}) {
				t.Fatalf("stored history is %+v", got.Match.History)
			}

			_, err = s.ApplyEvent("missing", scoring.ResetMatch())
			if !errors.Is(err, ErrBoardNotFound) {
				t.Fatalf("expected ErrBoardNotFound, got %v", err)
			}
		})
	}
}

func TestApplyEventConcurrent(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			board, err := s.CreateBoard(model.Board{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := s.ApplyEvent(board.ID, scoring.Increment(scoring.Player1)); err != nil {
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()
			got, _ := s.GetBoard(board.ID)
			if got.Match.Player1.Score != 10 {
				t.Fatalf("score is %d after 10 concurrent points", got.Match.Player1.Score)
			}
		})
	}
}

func TestUpdateBoard(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			board, _ := s.CreateBoard(model.Board{Court: "old"})
			board.Court = "new"
			board.UmpireKeyHash = "rotated"
			if err := s.UpdateBoard(board); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := s.GetBoard(board.ID)
			if got.Court != "new" || got.UmpireKeyHash != "rotated" {
				t.Fatalf("board was not updated: %+v", got)
			}

			if err := s.UpdateBoard(model.Board{ID: "missing"}); !errors.Is(err, ErrBoardNotFound) {
				t.Fatalf("expected ErrBoardNotFound, got %v", err)
			}
		})
	}
}

func TestListAndPurgeBoards(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			stale, _ := s.CreateBoard(model.Board{
				Court:     "stale",
				CreatedAt: now.Add(-72 * time.Hour),
			})
			fresh, _ := s.CreateBoard(model.Board{Court: "fresh"})

			boards := s.ListBoards()
			if len(boards) != 2 || boards[0].ID != fresh.ID {
				t.Fatalf("boards are not listed newest first: %+v", boards)
			}

			deleted, err := s.DeleteBoardsBefore(now.Add(-24 * time.Hour))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deleted != 1 {
				t.Fatalf("deleted %d boards, want 1", deleted)
			}
			if _, ok := s.GetBoard(stale.ID); ok {
				t.Fatal("stale board survived the purge")
			}
			if _, ok := s.GetBoard(fresh.ID); !ok {
				t.Fatal("fresh board was purged")
			}
		})
	}
}

func TestMigrationsAreAppliedOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scorecard.db")
	opts := SQLiteOptions{MigrationsDir: filepath.Join("..", "..", "migrations", "sqlite")}

	first, err := NewSQLiteStore(path, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	board, _ := first.CreateBoard(model.Board{Court: "kept"})
	_ = first.Close()

	second, err := NewSQLiteStore(path, opts)
	if err != nil {
		t.Fatalf("reopening re-ran migrations: %v", err)
	}
	defer second.Close()
	if _, ok := second.GetBoard(board.ID); !ok {
		t.Fatal("board lost after reopening")
	}
}
