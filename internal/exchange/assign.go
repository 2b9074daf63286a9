package exchange

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Link is one giver→receiver edge of a completed draw.
type Link struct {
	GiverID    uuid.UUID
	ReceiverID uuid.UUID
}

// Assign shuffles ids uniformly and links each one to its successor in the
// shuffled order, closing the ring. The result is a single cycle covering
// every id, so nobody draws themselves as long as len(ids) >= 2.
func Assign(ids []uuid.UUID) ([]Link, error) {
	if len(ids) < 2 {
		return nil, ErrInsufficientParticipants
	}
	ring := make([]uuid.UUID, len(ids))
	copy(ring, ids)
	rand.Shuffle(len(ring), func(i, j int) {
		ring[i], ring[j] = ring[j], ring[i]
	})

	links := make([]Link, len(ring))
	for i, giver := range ring {
		links[i] = Link{
			GiverID:    giver,
			ReceiverID: ring[(i+1)%len(ring)],
		}
	}
	return links, nil
}
