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
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

const boardColumns = `id, court, umpire_key_hash, match_state, created_at, updated_at`

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ListBoards() []model.Board {
	rows, err := s.db.Query(`SELECT ` + boardColumns + ` FROM boards ORDER BY updated_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	boards := []model.Board{}
	for rows.Next() {
		board, err := scanBoardRow(rows)
		if err != nil {
			continue
		}
		boards = append(boards, board)
	}
	return boards
}

func (s *PostgresStore) GetBoard(id string) (model.Board, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Board{}, false
	}
	board, err := scanBoardRow(s.db.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE id = $1`, id))
	if err != nil {
		return model.Board{}, false
	}
	return board, true
}

func (s *PostgresStore) CreateBoard(board model.Board) (model.Board, error) {
	board = prepareNewBoard(board, uuid.NewString, time.Now())
	matchJSON, err := json.Marshal(board.Match)
	if err != nil {
		return model.Board{}, fmt.Errorf("encode match: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO boards (`+boardColumns+`) VALUES ($1,$2,$3,$4,$5,$6)`,
		board.ID, board.Court, board.UmpireKeyHash, matchJSON, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		return model.Board{}, fmt.Errorf("insert board: %w", err)
	}
	return board, nil
}

func (s *PostgresStore) UpdateBoard(board model.Board) error {
	if _, err := uuid.Parse(board.ID); err != nil {
		return ErrBoardNotFound
	}
	res, err := s.db.Exec(`UPDATE boards SET court = $1, umpire_key_hash = $2, updated_at = now() WHERE id = $3`,
		board.Court, board.UmpireKeyHash, board.ID,
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

// ApplyEvent locks the board row for the duration of the transaction so
// concurrent events on one board are applied one after another.
func (s *PostgresStore) ApplyEvent(id string, event scoring.Event) (model.Board, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Board{}, ErrBoardNotFound
	}
	tx, err := s.db.Begin()
	if err != nil {
		return model.Board{}, fmt.Errorf("begin event tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	board, err := scanBoardRow(tx.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Board{}, ErrBoardNotFound
	}
	if err != nil {
		return model.Board{}, fmt.Errorf("load board: %w", err)
	}
	board.Match.Apply(event)
	matchJSON, err := json.Marshal(board.Match)
	if err != nil {
		return model.Board{}, fmt.Errorf("encode match: %w", err)
	}
	if err := tx.QueryRow(`UPDATE boards SET match_state = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
		matchJSON, id,
	).Scan(&board.UpdatedAt); err != nil {
		return model.Board{}, fmt.Errorf("save board: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Board{}, fmt.Errorf("commit event tx: %w", err)
	}
	return board, nil
}

func (s *PostgresStore) DeleteBoardsBefore(cutoff time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM boards WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete boards: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func scanBoardRow(scanner interface{ Scan(dest ...any) error }) (model.Board, error) {
	var board model.Board
	var matchJSON []byte
	var createdAt, updatedAt sql.NullTime
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
		board.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		board.UpdatedAt = updatedAt.Time
	}
	board.Match = scoring.NewMatch()
	if len(matchJSON) > 0 {
		if err := json.Unmarshal(matchJSON, &board.Match); err != nil {
			return model.Board{}, fmt.Errorf("decode match %s: %w", board.ID, err)
		}
	}
	return board, nil
}
