package cv

import (
	"encoding/hex"
	mrand "math/rand/v2"

	"github.com/google/uuid"
)

// NewID generates a collision-resistant opaque identifier for an entry.
// Prefers a cryptographically random UUID; if UUID generation fails it
// falls back to a pseudo-random hex string rather than erroring, since id
// generation must never block an add intent.
func NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = byte(mrand.IntN(256))
	}
	return hex.EncodeToString(buf)
}

// NewExperience returns a blank experience entry with a fresh id. The
// bullet list starts with a single empty string, never empty.
func NewExperience() Experience {
	return Experience{
		ID:      NewID(),
		Bullets: []string{""},
	}
}

// NewEducation returns a blank education entry with a fresh id.
func NewEducation() Education {
	return Education{ID: NewID()}
}

// NewProject returns a blank project entry with a fresh id.
func NewProject() Project {
	return Project{ID: NewID()}
}
