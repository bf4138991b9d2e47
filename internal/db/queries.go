package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"cvforge/internal/cv"
)

// Revision is one saved snapshot of the document. Ids are ULIDs, so
// lexicographic order is creation order.
type Revision struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`
}

// LoadState reads the persisted document from the slot. Absent or
// corrupt data returns (nil, nil): both degrade to "no saved state" and
// the caller falls back to the sample document. Corrupt rows are logged.
func LoadState(database *sql.DB) (*cv.BuilderState, error) {
	var body string
	err := database.QueryRow(
		"SELECT body FROM documents WHERE slot = ?", StateSlot,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	state, err := cv.Decode([]byte(body))
	if err != nil {
		log.Printf("persisted document is corrupt, falling back to sample: %v", err)
		return nil, nil
	}
	return &state, nil
}

// SaveState upserts the document into the slot and appends a revision.
// historyLimit caps retained revisions; zero or negative disables the
// history entirely.
func SaveState(database *sql.DB, state cv.BuilderState, historyLimit int) error {
	body, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	now := time.Now().Unix()

	_, err = database.Exec(`
		INSERT INTO documents (slot, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		StateSlot, string(body), now,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	if historyLimit <= 0 {
		return nil
	}

	id, err := newRevisionID()
	if err != nil {
		return err
	}
	if _, err := database.Exec(
		"INSERT INTO revisions (id, slot, body, created_at) VALUES (?, ?, ?, ?)",
		id, StateSlot, string(body), now,
	); err != nil {
		return fmt.Errorf("failed to append revision: %w", err)
	}

	// Prune to the newest historyLimit revisions.
	_, err = database.Exec(`
		DELETE FROM revisions WHERE slot = ? AND id NOT IN (
			SELECT id FROM revisions WHERE slot = ? ORDER BY id DESC LIMIT ?
		)`, StateSlot, StateSlot, historyLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to prune revisions: %w", err)
	}
	return nil
}

// ListRevisions returns revision metadata, newest first.
func ListRevisions(database *sql.DB) ([]Revision, error) {
	rows, err := database.Query(
		"SELECT id, created_at FROM revisions WHERE slot = ? ORDER BY id DESC", StateSlot,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]Revision, 0)
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// GetRevision loads one revision body as a normalized state. Returns
// (nil, nil) when the id does not exist.
func GetRevision(database *sql.DB, id string) (*cv.BuilderState, error) {
	var body string
	err := database.QueryRow(
		"SELECT body FROM revisions WHERE slot = ? AND id = ?", StateSlot, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load revision: %w", err)
	}

	state, err := cv.Decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("revision %s is corrupt: %w", id, err)
	}
	return &state, nil
}

// revisionEntropy is shared so ids stay strictly increasing even for
// saves landing in the same millisecond.
var revisionEntropy = &ulid.LockedMonotonicReader{
	MonotonicReader: ulid.Monotonic(rand.Reader, 0),
}

// newRevisionID generates a new ULID.
func newRevisionID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), revisionEntropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate revision id: %w", err)
	}
	return id.String(), nil
}
