package casino

import (
	"sort"
	"sync"
)

type LeaderboardEntry struct {
	UID    string `json:"uid"`
	Profit int64  `json:"profit"`
}

// Leaderboard ranks users by net chip profit across all games. In-memory
// and advisory; resets with the process.
type Leaderboard struct {
	data map[string]int64
	mu   sync.Mutex
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		data: make(map[string]int64),
	}
}

func (l *Leaderboard) Record(uid string, profit int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data[uid] += profit
}

func (l *Leaderboard) Top(n int) []LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []LeaderboardEntry
	for uid, profit := range l.data {
		entries = append(entries, LeaderboardEntry{UID: uid, Profit: profit})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Profit > entries[j].Profit
	})

	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
