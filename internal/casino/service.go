package casino

import (
	"database/sql"

	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/ledger"
	"github.com/22kyasue/adlottery/internal/monitoring"
)

// Service settles every mini-game wager. Each settlement is one atomic
// read-check-write transaction against the ledger; the only in-process state
// is the seed manager and the advisory stats/leaderboard.
type Service struct {
	db     *sql.DB
	ledger *ledger.Service
	seeds  *SeedManager
	bus    *event.Bus
	stats  *Stats
	board  *Leaderboard
}

func NewService(db *sql.DB, lg *ledger.Service, bus *event.Bus) *Service {
	return &Service{
		db:     db,
		ledger: lg,
		seeds:  NewSeedManager(),
		bus:    bus,
		stats:  NewStats(),
		board:  NewLeaderboard(),
	}
}

// Seeds exposes the seed manager for the rotation job.
func (s *Service) Seeds() *SeedManager {
	return s.seeds
}

// settled records a terminal outcome in the advisory trackers and publishes
// it. Called after commit; never touches balances.
func (s *Service) settled(uid, game, outcome string, bet, payout int64) {
	monitoring.Wagers.WithLabelValues(game, outcome).Inc()
	s.stats.Record(bet, payout)
	s.board.Record(uid, payout-bet)
	s.bus.Publish(event.EventCasinoSettled, &Settled{
		UID:     uid,
		Game:    game,
		Outcome: outcome,
		Bet:     bet,
		Payout:  payout,
	})
}
