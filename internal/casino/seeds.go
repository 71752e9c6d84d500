package casino

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// SeedManager holds the current server seed and its published hash. The seed
// rotates daily; only the hash is shown to clients until rotation.
type SeedManager struct {
	mu        sync.Mutex
	seed      string
	hash      string
	rotatedAt time.Time
}

func NewSeedManager() *SeedManager {
	s := &SeedManager{}
	s.rotate()
	return s
}

func (s *SeedManager) rotate() {
	seed := generateSeed()
	sum := sha256.Sum256([]byte(seed))

	s.seed = seed
	s.hash = hex.EncodeToString(sum[:])
	s.rotatedAt = time.Now()
}

// MaybeRotate swaps the seed once it is a day old.
func (s *SeedManager) MaybeRotate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.rotatedAt) > 24*time.Hour {
		s.rotate()
	}
}

// Current returns the active seed and its public hash.
func (s *SeedManager) Current() (seed, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed, s.hash
}

func generateSeed() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
