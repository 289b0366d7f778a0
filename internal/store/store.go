// Package store persists season snapshots in named save slots over
// database/sql. SQLite is the local default; Postgres is reachable through
// lib/pq or pgx.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/season"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
)

// ErrSlotNotFound is returned when a slot holds no snapshot.
var ErrSlotNotFound = errors.New("save slot not found")

// Store wraps a database connection holding save slots.
type Store struct {
	DB     *sql.DB
	driver string
	logger *slog.Logger
}

// SlotInfo describes a stored snapshot without decoding it.
type SlotInfo struct {
	Slot       string    `json:"slot"`
	Version    int       `json:"version"`
	UserClubID string    `json:"userClubId"`
	Label      string    `json:"label"`
	Matchday   int       `json:"matchday"`
	SavedAt    time.Time `json:"savedAt"`
}

// Open connects to dsn with driver and verifies the connection.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres, DriverPGX:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; also keeps an in-memory database alive across calls
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logger.Debug("Database connected", "driver", driver)
	return &Store{DB: db, driver: driver, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// rebind rewrites $N placeholders for SQLite, which spells them ?N.
func (s *Store) rebind(q string) string {
	if s.driver != DriverSQLite {
		return q
	}
	return strings.ReplaceAll(q, "$", "?")
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Migrate creates the necessary tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS save_slots (
			slot      TEXT    PRIMARY KEY,
			version   INTEGER NOT NULL,
			user_club TEXT    NOT NULL,
			label     TEXT    NOT NULL,
			matchday  INTEGER NOT NULL,
			snapshot  TEXT    NOT NULL,
			saved_at  BIGINT  NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS slot_results (
			slot       TEXT    NOT NULL REFERENCES save_slots(slot) ON DELETE CASCADE,
			matchday   INTEGER NOT NULL,
			home_club  TEXT    NOT NULL,
			away_club  TEXT    NOT NULL,
			home_goals INTEGER NOT NULL,
			away_goals INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS slot_results_slot_matchday ON slot_results (slot, matchday)`,
	}
	for _, q := range queries {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// SaveState writes st to slot, replacing what was there, together with a
// flat copy of its results.
func (s *Store) SaveState(ctx context.Context, slot string, st *season.State) error {
	data, err := st.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO save_slots (slot, version, user_club, label, matchday, snapshot, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slot) DO UPDATE SET
			version   = excluded.version,
			user_club = excluded.user_club,
			label     = excluded.label,
			matchday  = excluded.matchday,
			snapshot  = excluded.snapshot,
			saved_at  = excluded.saved_at
	`
	if _, err := tx.ExecContext(ctx, s.rebind(upsert),
		slot, st.Version, st.UserClubID, st.Label, st.CurrentMatchday, string(data), toMillis(st.LastSaved),
	); err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM slot_results WHERE slot = $1`), slot); err != nil {
		return fmt.Errorf("clearing results of slot %q: %w", slot, err)
	}
	const insert = `
		INSERT INTO slot_results (slot, matchday, home_club, away_club, home_goals, away_goals)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	stmt, err := tx.PrepareContext(ctx, s.rebind(insert))
	if err != nil {
		return fmt.Errorf("preparing results insert: %w", err)
	}
	defer stmt.Close()
	for _, md := range st.Results {
		for _, m := range md.Matches {
			if _, err := stmt.ExecContext(ctx, slot, md.Matchday, m.Home, m.Away, m.HomeGoals, m.AwayGoals); err != nil {
				return fmt.Errorf("saving result %s-%s of slot %q: %w", m.Home, m.Away, slot, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	s.logger.Debug("Slot saved", "slot", slot, "matchday", st.CurrentMatchday, "bytes", len(data))
	return nil
}

// Load returns the raw snapshot stored in slot.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	var data string
	err := s.DB.QueryRowContext(ctx, s.rebind(`SELECT snapshot FROM save_slots WHERE slot = $1`), slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loading slot %q: %w", slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return []byte(data), nil
}

// LoadState decodes the snapshot in slot. A snapshot with a missing or
// incompatible version is deleted and reported as
// season.ErrIncompatibleSnapshot.
func (s *Store) LoadState(ctx context.Context, slot string) (*season.State, error) {
	data, err := s.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	st, err := season.UnmarshalSnapshot(data)
	if errors.Is(err, season.ErrIncompatibleSnapshot) {
		s.logger.Warn("Discarding incompatible snapshot", "slot", slot, "error", err)
		if derr := s.Delete(ctx, slot); derr != nil {
			return nil, errors.Join(fmt.Errorf("loading slot %q: %w", slot, err), derr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return st, nil
}

// List returns every slot, most recently saved first.
func (s *Store) List(ctx context.Context) ([]SlotInfo, error) {
	const q = `
		SELECT slot, version, user_club, label, matchday, saved_at
		FROM save_slots
		ORDER BY saved_at DESC, slot ASC
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var slots []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var savedAt int64
		if err := rows.Scan(&info.Slot, &info.Version, &info.UserClubID, &info.Label, &info.Matchday, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		info.SavedAt = fromMillis(savedAt)
		slots = append(slots, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}
	return slots, nil
}

// Delete removes a slot and its results.
func (s *Store) Delete(ctx context.Context, slot string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM slot_results WHERE slot = $1`), slot); err != nil {
		return fmt.Errorf("deleting results of slot %q: %w", slot, err)
	}
	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM save_slots WHERE slot = $1`), slot)
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("deleting slot %q: %w", slot, ErrSlotNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

// Results returns the stored results of slot up to and including matchday
// upto, in play order.
func (s *Store) Results(ctx context.Context, slot string, upto int) ([]league.MatchdayResult, error) {
	const q = `
		SELECT matchday, home_club, away_club, home_goals, away_goals
		FROM slot_results
		WHERE slot = $1 AND matchday <= $2
		ORDER BY matchday
	`
	rows, err := s.DB.QueryContext(ctx, s.rebind(q), slot, upto)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []league.MatchdayResult
	for rows.Next() {
		var md int
		var m league.MatchResult
		if err := rows.Scan(&md, &m.Home, &m.Away, &m.HomeGoals, &m.AwayGoals); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].Matchday != md {
			out = append(out, league.MatchdayResult{Matchday: md})
		}
		out[len(out)-1].Matches = append(out[len(out)-1].Matches, m)
	}
	return out, rows.Err()
}

// HeadToHead counts wins for each side across stored meetings of a and b.
func (s *Store) HeadToHead(ctx context.Context, slot, a, b string) (map[string]int, error) {
	const q = `
		SELECT home_club, away_club, home_goals, away_goals
		FROM slot_results
		WHERE slot = $1 AND ((home_club = $2 AND away_club = $3) OR (home_club = $3 AND away_club = $2))
	`
	rows, err := s.DB.QueryContext(ctx, s.rebind(q), slot, a, b)
	if err != nil {
		return nil, fmt.Errorf("querying head to head: %w", err)
	}
	defer rows.Close()

	wins := map[string]int{a: 0, b: 0}
	for rows.Next() {
		var home, away string
		var hg, ag int
		if err := rows.Scan(&home, &away, &hg, &ag); err != nil {
			return nil, fmt.Errorf("scanning head to head: %w", err)
		}
		switch {
		case hg > ag:
			wins[home]++
		case ag > hg:
			wins[away]++
		}
	}
	return wins, rows.Err()
}
