package casino

import "sync"

// Stats tracks aggregate wagered and paid-out chips. Paytables are fixed, so
// this is advisory observability, not an edge controller.
type Stats struct {
	mu          sync.Mutex
	totalBet    int64
	totalPayout int64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Record(bet, payout int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalBet += bet
	s.totalPayout += payout
}

type StatsSnapshot struct {
	TotalBet    int64   `json:"totalBet"`
	TotalPayout int64   `json:"totalPayout"`
	ReturnRatio float64 `json:"returnRatio"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{TotalBet: s.totalBet, TotalPayout: s.totalPayout}
	if s.totalBet > 0 {
		snap.ReturnRatio = float64(s.totalPayout) / float64(s.totalBet)
	}
	return snap
}
