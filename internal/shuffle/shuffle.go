package shuffle

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/rajamantri/internal/shuffle Source

// Source supplies uniformly distributed integers
type Source interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// Random is a Source backed by math/rand
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a value in [0, n). It is safe for concurrent use since
// rooms shuffle from their own goroutines.
func (r *Random) Intn(n int) int {
	if n <= 1 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// Shuffle permutes items in place with Fisher-Yates: walking from the last
// index down, each element is swapped with one chosen uniformly from
// [0, i].
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
