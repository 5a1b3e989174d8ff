package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
)

const schema = `
CREATE TABLE session (
	id TEXT PRIMARY KEY
);
CREATE TABLE steps (
	seq INTEGER PRIMARY KEY,
	sync_time REAL,
	last_sync_time REAL,
	kind TEXT,
	fired INTEGER,
	subject INTEGER,
	is_default INTEGER,
	next_event_time REAL
);
CREATE TABLE insertions (
	seq INTEGER PRIMARY KEY,
	sync_time REAL,
	time REAL,
	subject INTEGER,
	output TEXT,
	is_default INTEGER,
	accepted INTEGER,
	preempted INTEGER,
	reason TEXT
);
`

// WriteSQLite exports the trace into a new SQLite database file and returns the
// file name. An empty path generates a unique name in the working directory.
// An existing file is never overwritten.
func WriteSQLite(st *SimulationTrace, path string) (string, error) {
	if st == nil {
		return "", fmt.Errorf("nil trace")
	}
	if path == "" {
		path = "cosim_trace_" + xid.New().String() + ".sqlite3"
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return "", fmt.Errorf("opening trace database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return "", fmt.Errorf("creating trace tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	if err := insertAll(tx, st); err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing trace: %w", err)
	}
	return path, nil
}

func insertAll(tx *sql.Tx, st *SimulationTrace) error {
	if _, err := tx.Exec(`INSERT INTO session (id) VALUES (?)`, st.SessionID); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	stepStmt, err := tx.Prepare(`INSERT INTO steps
		(seq, sync_time, last_sync_time, kind, fired, subject, is_default, next_event_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stepStmt.Close()
	for i, s := range st.Steps {
		_, err := stepStmt.Exec(i, s.SyncTime, s.LastSyncTime, string(s.Kind),
			s.Fired, s.Subject, s.Default, s.NextEventTime)
		if err != nil {
			return fmt.Errorf("writing step %d: %w", i, err)
		}
	}

	insStmt, err := tx.Prepare(`INSERT INTO insertions
		(seq, sync_time, time, subject, output, is_default, accepted, preempted, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insStmt.Close()
	for i, in := range st.Insertions {
		_, err := insStmt.Exec(i, in.SyncTime, in.Time, in.Subject, in.Output,
			in.Default, in.Accepted, in.Preempted, in.Reason)
		if err != nil {
			return fmt.Errorf("writing insertion %d: %w", i, err)
		}
	}
	return nil
}
