package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deeplook/vbbvg/model"
)

// SQLite implementation of Storage. The database lives in memory and
// disappears with the process.
type SQLiteStorage struct {
	db         *sql.DB
	insertStop *sql.Stmt
}

func NewSQLiteStorage() (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS stop (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    stop_id INTEGER NOT NULL,
    stop_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS stop_id_idx ON stop (stop_id);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating stop table: %w", err)
	}

	insertStop, err := db.Prepare(`INSERT INTO stop (stop_id, stop_name) VALUES (?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing stop insert: %w", err)
	}

	return &SQLiteStorage{
		db:         db,
		insertStop: insertStop,
	}, nil
}

func (s *SQLiteStorage) WriteStop(stop model.Stop) error {
	_, err := s.insertStop.Exec(stop.ID, stop.Name)
	if err != nil {
		return fmt.Errorf("inserting stop: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) ListStops(filter ListStopsFilter) ([]model.Stop, error) {
	query := `
SELECT
    stop_id,
    stop_name
FROM stop`

	conditions := []string{}
	params := []interface{}{}
	if len(filter.IDs) > 0 {
		placeholders := make([]string, len(filter.IDs))
		for i, id := range filter.IDs {
			placeholders[i] = "?"
			params = append(params, id)
		}
		conditions = append(conditions, "stop_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	for _, sub := range filter.NameContains {
		// instr() is case-sensitive, unlike LIKE.
		conditions = append(conditions, "instr(stop_name, ?) > 0")
		params = append(params, sub)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY seq"

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("listing stops: %w", err)
	}
	defer rows.Close()

	stops := []model.Stop{}
	for rows.Next() {
		var stop model.Stop
		err := rows.Scan(&stop.ID, &stop.Name)
		if err != nil {
			return nil, fmt.Errorf("scanning stop: %w", err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stops: %w", err)
	}

	return stops, nil
}

func (s *SQLiteStorage) Close() error {
	s.insertStop.Close()
	return s.db.Close()
}
