// Package booster manages the time-boxed 1.5x ticket multiplier. Activation
// is either evidence-based (a browsing-history export proving a real user)
// or paid; both set the same 24h expiry on the user's economy row.
package booster

import (
	"database/sql"
	"time"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/ledger"
)

const Duration = 24 * time.Hour

// Multiplier applied to the marginal ticket award while active.
const Multiplier = 1.5

// Payments is the external payment collaborator for the paid path.
type Payments interface {
	Collect(uid string) error
}

// AcceptAll is the default payment collaborator; the real processor lives
// outside the core and the paid path always succeeds.
type AcceptAll struct{}

func (AcceptAll) Collect(string) error { return nil }

type Service struct {
	db       *sql.DB
	ledger   *ledger.Service
	payments Payments
	bus      *event.Bus
}

func New(db *sql.DB, lg *ledger.Service, payments Payments, bus *event.Bus) *Service {
	return &Service{db: db, ledger: lg, payments: payments, bus: bus}
}

// Active reports whether a booster expiry is set and still in the future.
func Active(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && expiresAt.After(now)
}

// Activation is returned by both activation paths.
type Activation struct {
	ExpiresAt     time.Time `json:"expiresAt"`
	UniqueEntries int       `json:"uniqueEntries,omitempty"`
	RecentEntries int       `json:"recentEntries,omitempty"`
}

// ActivateWithEvidence validates an uploaded history export and activates
// the booster. The raw evidence is gone once the two counts are derived;
// nothing of it is persisted.
func (s *Service) ActivateWithEvidence(uid string, raw []byte, filename string) (*Activation, error) {
	now := time.Now()

	counts, err := ParseEvidence(raw, filename, now)
	if err != nil {
		return nil, err
	}
	if counts.Unique < MinEntries {
		return nil, apperr.Newf(apperr.InvalidInput, "not_enough_entries",
			"Not enough unique entries. Found %d, need at least %d.", counts.Unique, MinEntries).
			With("uniqueEntries", counts.Unique).With("required", MinEntries)
	}
	if counts.Recent < MinEntries {
		return nil, apperr.Newf(apperr.InvalidInput, "not_enough_recent",
			"Not enough recent entries (last %d days). Found %d, need at least %d.",
			MaxAgeDays, counts.Recent, MinEntries).
			With("recentEntries", counts.Recent).With("required", MinEntries)
	}

	return s.activate(uid, now, &Activation{
		UniqueEntries: counts.Unique,
		RecentEntries: counts.Recent,
	})
}

// ActivateWithPayment collects payment through the external collaborator and
// activates the booster.
func (s *Service) ActivateWithPayment(uid string) (*Activation, error) {
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	tx.Rollback()

	if Active(eco.BoosterExpiresAt, now) {
		return nil, alreadyActive(eco.BoosterExpiresAt)
	}
	if err := s.payments.Collect(uid); err != nil {
		return nil, err
	}
	return s.activate(uid, now, &Activation{})
}

func (s *Service) activate(uid string, now time.Time, act *Activation) (*Activation, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if Active(eco.BoosterExpiresAt, now) {
		tx.Rollback()
		return nil, alreadyActive(eco.BoosterExpiresAt)
	}

	expires := now.Add(Duration)
	if err := s.ledger.SetBoosterExpiry(tx, uid, expires); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	act.ExpiresAt = expires
	s.bus.Publish(event.EventBoosterActivated, map[string]interface{}{
		"uid": uid, "expiresAt": expires,
	})
	return act, nil
}

func alreadyActive(expiresAt *time.Time) error {
	return apperr.New(apperr.Conflict, "booster_active", "Booster is already active.").
		With("expiresAt", expiresAt)
}
