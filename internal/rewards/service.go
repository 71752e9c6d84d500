// Package rewards implements ad-view verification: the anti-fraud speed
// check, diminishing-returns ticket awards, booster scaling and the
// best-effort prize pool contribution.
package rewards

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/22kyasue/adlottery/internal/booster"
	"github.com/22kyasue/adlottery/internal/cache"
	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/ledger"
	"github.com/22kyasue/adlottery/internal/logger"
	"github.com/22kyasue/adlottery/internal/monitoring"
	"github.com/22kyasue/adlottery/internal/tier"
	"github.com/22kyasue/adlottery/internal/week"
)

// SpeedCheckWindow is the minimum gap between watches. Anything faster is
// automation, and the user is silently shadowbanned.
const SpeedCheckWindow = 30 * time.Second

// Per-view prize pool contribution, doubled while a booster is active.
const (
	poolPerView        = 1
	boostedPoolPerView = 2
)

type Service struct {
	db     *sql.DB
	ledger *ledger.Service
	bus    *event.Bus
}

func New(db *sql.DB, lg *ledger.Service, bus *event.Bus) *Service {
	return &Service{db: db, ledger: lg, bus: bus}
}

// VerifyResult mirrors what the client sees. A shadowbanned call carries
// only the generic success fields, indistinguishable from a reward of zero.
type VerifyResult struct {
	Success              bool    `json:"success"`
	Message              string  `json:"message,omitempty"`
	TicketEarned         bool    `json:"ticketEarned,omitempty"`
	NewTicketCount       float64 `json:"newTicketCount,omitempty"`
	NewPoolTotal         int64   `json:"newPoolTotal,omitempty"`
	DailyViews           int     `json:"dailyViews,omitempty"`
	CurrentTier          int     `json:"currentTier,omitempty"`
	AdsPerTicket         int     `json:"adsPerTicket,omitempty"`
	ViewsUntilNextTicket int     `json:"viewsUntilNextTicket,omitempty"`
	IsBoosterActive      bool    `json:"isBoosterActive,omitempty"`
}

// genericSuccess is what the fraud paths return. Never an error: automation
// must not learn it was caught.
func genericSuccess() *VerifyResult {
	return &VerifyResult{Success: true, Message: "Ad verified"}
}

// VerifyAd processes one verified ad view. The ticket award commits
// atomically; the pool increment afterwards is best-effort and can only
// degrade the displayed total, never the award.
func (s *Service) VerifyAd(uid string) (*VerifyResult, error) {
	now := time.Now()
	weekID := week.ID(now)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Ensure(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}

	// Speed check against the most recent attempt of any status.
	last, seen, err := s.ledger.LastWatch(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if seen && now.Sub(last) < SpeedCheckWindow {
		if err := s.ledger.SetShadowbanned(tx, uid); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.ledger.LogWatch(tx, uid, ledger.WatchSpeedFail, "speed_check_failed", now); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		monitoring.Shadowbans.Inc()
		monitoring.AdViews.WithLabelValues("speed_check_failed").Inc()
		return genericSuccess(), nil
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if eco.Shadowbanned {
		if err := s.ledger.LogWatch(tx, uid, ledger.WatchShadowbanned, "shadowbanned", now); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		monitoring.AdViews.WithLabelValues("shadowbanned").Inc()
		return genericSuccess(), nil
	}

	boosted := booster.Active(eco.BoosterExpiresAt, now)

	// 1 ad = 1 view; the booster scales the payout, never the view count.
	prev, err := s.ledger.CountValidSince(tx, uid, week.DayStart(now))
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	views := prev + 1

	res := &VerifyResult{
		Success:         true,
		DailyViews:      views,
		IsBoosterActive: boosted,
	}

	if tier.NewlyEarned(views) {
		award := 1.0
		if boosted {
			award = booster.Multiplier
		}
		total, err := s.ledger.AwardTickets(tx, uid, weekID, award)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		res.TicketEarned = true
		res.NewTicketCount = total
		monitoring.TicketsAwarded.Inc()
	}

	detail := fmt.Sprintf("week=%s boosted=%t", weekID, boosted)
	if err := s.ledger.LogWatch(tx, uid, ledger.WatchValid, detail, now); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	monitoring.AdViews.WithLabelValues("valid").Inc()
	if res.TicketEarned {
		s.bus.Publish(event.EventTicketAwarded, map[string]interface{}{
			"uid": uid, "weekId": weekID, "total": res.NewTicketCount,
		})
	}
	res.NewPoolTotal = s.addToPool(weekID, boosted)

	meta := tier.MetaFor(views)
	res.CurrentTier = meta.Band
	res.AdsPerTicket = meta.AdsPerTicket
	res.ViewsUntilNextTicket = meta.ViewsUntilNextTicket

	s.bus.Publish(event.EventAdVerified, map[string]interface{}{
		"uid": uid, "weekId": weekID, "poolTotal": res.NewPoolTotal,
	})
	return res, nil
}

// addToPool applies the per-view pool contribution. Failure is logged and
// the last-known total returned; the ticket award is already committed.
func (s *Service) addToPool(weekID string, boosted bool) int64 {
	inc := int64(poolPerView)
	if boosted {
		inc = boostedPoolPerView
	}

	total, err := s.ledger.IncrementPool(weekID, inc)
	if err != nil {
		logger.Log.Warn("prize pool increment failed",
			zap.String("week", weekID), zap.Error(err))
		if cached, ok := cache.PoolTotal(weekID); ok {
			return cached
		}
		return ledger.BasePoolAmount
	}

	cache.SetPoolTotal(weekID, total)
	return total
}

// PoolTotal is the advisory display read of this week's prize pool.
func (s *Service) PoolTotal() (string, int64) {
	weekID := week.ID(time.Now())
	total, err := s.ledger.PoolTotal(weekID)
	if err != nil {
		if cached, ok := cache.PoolTotal(weekID); ok {
			return weekID, cached
		}
		return weekID, ledger.BasePoolAmount
	}
	return weekID, total
}
