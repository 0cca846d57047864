package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"scorecard-app/internal/model"
	"scorecard-app/internal/scoring"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

const sqliteBoardColumns = `id, court, umpire_key_hash, match_state, created_at, updated_at`

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serialises writers; ApplyEvent relies on it.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/sqlite"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListBoards() []model.Board {
	rows, err := s.db.Query(`SELECT ` + sqliteBoardColumns + ` FROM boards ORDER BY updated_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	boards := []model.Board{}
	for rows.Next() {
		board, err := scanSQLiteBoardRow(rows)
		if err != nil {
			continue
		}
		boards = append(boards, board)
	}
	return boards
}

func (s *SQLiteStore) GetBoard(id string) (model.Board, bool) {
	row := s.db.QueryRow(`SELECT `+sqliteBoardColumns+` FROM boards WHERE id = ?`, id)
	board, err := scanSQLiteBoardRow(row)
	if err != nil {
		return model.Board{}, false
	}
	return board, true
}

func (s *SQLiteStore) CreateBoard(board model.Board) (model.Board, error) {
	board = prepareNewBoard(board, uuid.NewString, time.Now())
	matchJSON, err := json.Marshal(board.Match)
	if err != nil {
		return model.Board{}, fmt.Errorf("encode match: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO boards (`+sqliteBoardColumns+`) VALUES (?,?,?,?,?,?)`,
		board.ID, board.Court, board.UmpireKeyHash, string(matchJSON), timeValueString(board.CreatedAt), timeValueString(board.UpdatedAt),
	)
	if err != nil {
		return model.Board{}, fmt.Errorf("insert board: %w", err)
	}
	return board, nil
}

func (s *SQLiteStore) UpdateBoard(board model.Board) error {
	res, err := s.db.Exec(`UPDATE boards SET court = ?, umpire_key_hash = ?, updated_at = ? WHERE id = ?`,
		board.Court, board.UmpireKeyHash, timeValueString(time.Now()), board.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (s *SQLiteStore) ApplyEvent(id string, event scoring.Event) (model.Board, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return model.Board{}, fmt.Errorf("begin event tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	board, err := scanSQLiteBoardRow(tx.QueryRow(`SELECT `+sqliteBoardColumns+` FROM boards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, ErrBoardNotFound
	}
	if err != nil {
		return model.Board{}, fmt.Errorf("load board: %w", err)
	}
	board.Match.Apply(event)
	board.UpdatedAt = time.Now()
	matchJSON, err := json.Marshal(board.Match)
	if err != nil {
		return model.Board{}, fmt.Errorf("encode match: %w", err)
	}
	if _, err := tx.Exec(`UPDATE boards SET match_state = ?, updated_at = ? WHERE id = ?`,
		string(matchJSON), timeValueString(board.UpdatedAt), id,
	); err != nil {
		return model.Board{}, fmt.Errorf("save board: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Board{}, fmt.Errorf("commit event tx: %w", err)
	}
	return board, nil
}

func (s *SQLiteStore) DeleteBoardsBefore(cutoff time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM boards WHERE updated_at < ?`, timeValueString(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete boards: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func scanSQLiteBoardRow(scanner interface{ Scan(dest ...any) error }) (model.Board, error) {
	var board model.Board
	var matchJSON sql.NullString
	var createdAt, updatedAt sql.NullString
	if err := scanner.Scan(
		&board.ID,
		&board.Court,
		&board.UmpireKeyHash,
		&matchJSON,
		&createdAt,
		&updatedAt,
	); err != nil {
		return model.Board{}, err
	}
	if createdAt.Valid {
		if parsed, ok := parseTimeString(createdAt.String); ok {
			board.CreatedAt = parsed
		}
	}
	if updatedAt.Valid {
		if parsed, ok := parseTimeString(updatedAt.String); ok {
			board.UpdatedAt = parsed
		}
	}
	board.Match = scoring.NewMatch()
	if matchJSON.Valid && strings.TrimSpace(matchJSON.String) != "" {
		if err := json.Unmarshal([]byte(matchJSON.String), &board.Match); err != nil {
			return model.Board{}, fmt.Errorf("decode match %s: %w", board.ID, err)
		}
	}
	return board, nil
}

// Timestamps are stored as fixed-width UTC strings so they sort and compare
// as text.
func timeValueString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
