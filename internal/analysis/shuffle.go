package analysis

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler reorders quiz options in place. Option order is presentation only.
type Shuffler interface {
	Shuffle(items []string)
}

// randShuffler is a Fisher-Yates shuffler over a mutex-guarded source
type randShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededShuffler returns a shuffler whose output is fully determined by seed
func NewSeededShuffler(seed int64) Shuffler {
	return &randShuffler{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomShuffler returns a shuffler seeded from the clock
func NewRandomShuffler() Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

func (s *randShuffler) Shuffle(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// IdentityShuffler leaves options in construction order (answer first, then distractors)
type IdentityShuffler struct{}

// Shuffle is a no-op
func (IdentityShuffler) Shuffle([]string) {}
