// Package diag records per-parse diagnostics: one row per ParseSentence
// call, so MAX_WORDS/MAX_SUPERCATS skips and skimmer fallbacks
// leave a queryable trail instead of vanishing when the process exits.
// Grounded on cognicore-io-korel's pkg/korel/store/sqlite package for the
// database/sql + modernc.org/sqlite + WAL idiom, and its pkg/korel/cards
// package for monotonic ULID run identifiers.
package diag

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Record is one parseSentence call's diagnostic row.
type Record struct {
	SentenceLen   int
	Outcome       string
	ElapsedMillis float64
	SuperCatCount int

	// SkimCoverStart/SkimCoverEnd bound the span the skimmer attempted to
	// cover; both are -1 when the skimmer did not fire (outcome != exhausted).
	SkimCoverStart int
	SkimCoverEnd   int
}

// Sink records parse diagnostics. A nil Sink is never invoked; callers that
// don't want diagnostics simply leave the driver's Diag field unset.
type Sink interface {
	Record(rec Record) error
}

// SQLiteSink persists Records to a SQLite database in WAL mode, one row per
// call, stamped with a monotonic ULID so rows from the same process
// lifetime sort in insertion order even within the same millisecond.
type SQLiteSink struct {
	db      *sql.DB
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// OpenSQLiteSink opens (creating if absent) a diagnostics database at path.
func OpenSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("diag: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("diag: enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("diag: init schema: %w", err)
	}
	return &SQLiteSink{db: db, entropy: ulid.Monotonic(rand.Reader, 0)}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS parses (
	run_id TEXT PRIMARY KEY,
	sentence_len INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	elapsed_millis REAL NOT NULL,
	supercat_count INTEGER NOT NULL,
	skim_cover_start INTEGER NOT NULL,
	skim_cover_end INTEGER NOT NULL,
	recorded_at TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// Record inserts one diagnostic row, stamped with a freshly minted ULID.
func (s *SQLiteSink) Record(rec Record) error {
	s.mu.Lock()
	runID := ulid.MustNew(ulid.Now(), s.entropy).String()
	s.mu.Unlock()

	_, err := s.db.ExecContext(context.Background(), `
INSERT INTO parses (run_id, sentence_len, outcome, elapsed_millis, supercat_count, skim_cover_start, skim_cover_end, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`, runID, rec.SentenceLen, rec.Outcome, rec.ElapsedMillis, rec.SuperCatCount, rec.SkimCoverStart, rec.SkimCoverEnd, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("diag: insert record: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
