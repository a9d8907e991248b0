package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RoundRecord is one finished round on a lane.
type RoundRecord struct {
	ID        int64
	GameID    string
	Player    string
	Round     int
	PinsDown  int
	Steps     int
	SimTime   float64 // simulated seconds from launch to round end
	EndedBy   string  // "settled" or "reset"
	CreatedAt time.Time
}

// LaneStats holds aggregated round statistics for a lane.
type LaneStats struct {
	GameID     string
	Rounds     int
	Strikes    int
	BestPins   int
	AvgPins    float64
	TotalPins  int64
	LastPlayed time.Time
}

// Strike is the pin count of a round that cleared the whole formation.
const Strike = 10

// SaveRound records a finished round. Settled rounds also count as a score.
// Returns the ID of the inserted round.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: round without game id")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO rounds (game_id, player, round, pins_down, steps, sim_time, ended_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Round, r.PinsDown, r.Steps, r.SimTime, r.EndedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if r.EndedBy == "settled" {
		if _, err := tx.Exec(
			"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
			r.GameID, r.Player, r.PinsDown,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return id, nil
}

const roundColumns = `id, game_id, player, round, pins_down, steps, sim_time, ended_by, created_at`

// RecentRounds returns the latest rounds on a lane, newest first.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// TopRounds returns the best rounds on a lane: most pins first, then the
// quickest to settle.
func (s *Store) TopRounds(gameID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY pins_down DESC, sim_time ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// PlayerRounds returns a player's rounds across all lanes, newest first.
func (s *Store) PlayerRounds(player string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player rounds: %w", err)
	}
	return scanRounds(rows)
}

func scanRounds(rows *sql.Rows) ([]RoundRecord, error) {
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Round, &r.PinsDown,
			&r.Steps, &r.SimTime, &r.EndedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan round: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// GetLaneStats retrieves aggregated round statistics for a lane.
func (s *Store) GetLaneStats(gameID string) (*LaneStats, error) {
	stats := &LaneStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN pins_down >= ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(pins_down), 0),
		        COALESCE(AVG(pins_down), 0),
		        COALESCE(SUM(pins_down), 0),
		        MAX(created_at)
		 FROM rounds WHERE game_id = ?`,
		Strike, gameID,
	).Scan(&stats.Rounds, &stats.Strikes, &stats.BestPins, &stats.AvgPins, &stats.TotalPins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get lane stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLaneStats retrieves statistics for every lane that has rounds.
func (s *Store) GetAllLaneStats() (map[string]*LaneStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*),
		        SUM(CASE WHEN pins_down >= ? THEN 1 ELSE 0 END),
		        MAX(pins_down), AVG(pins_down), SUM(pins_down), MAX(created_at)
		 FROM rounds
		 GROUP BY game_id`,
		Strike,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all lane stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LaneStats)
	for rows.Next() {
		var ls LaneStats
		var lastPlayed any
		if err := rows.Scan(&ls.GameID, &ls.Rounds, &ls.Strikes, &ls.BestPins,
			&ls.AvgPins, &ls.TotalPins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.GameID] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
