// Package convert exchanges chips into weekly lottery tickets, bounded by
// the global conversion cap: converted tickets may never exceed 30% of the
// week's organic tickets.
package convert

import (
	"database/sql"
	"math"
	"time"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/ledger"
	"github.com/22kyasue/adlottery/internal/monitoring"
	"github.com/22kyasue/adlottery/internal/week"
)

const (
	// CapRatio limits converted tickets relative to organic ones.
	CapRatio = 0.30
	// MaxPerConversion caps a single request.
	MaxPerConversion = 1000
)

type Service struct {
	db     *sql.DB
	ledger *ledger.Service
	bus    *event.Bus
}

func New(db *sql.DB, lg *ledger.Service, bus *event.Bus) *Service {
	return &Service{db: db, ledger: lg, bus: bus}
}

type Result struct {
	ChipsSpent      int64 `json:"chipsSpent"`
	NewChips        int64 `json:"newChips"`
	NewConverted    int64 `json:"newConverted"`
	RemainingCap    int64 `json:"remainingCap"`
	GlobalOrganic   int64 `json:"globalOrganic"`
	GlobalConverted int64 `json:"globalConverted"`
	CapLimit        int64 `json:"capLimit"`
}

// Convert debits amount chips and credits the same number of converted
// tickets, all inside one transaction so concurrent conversions cannot
// overshoot the cap.
func (s *Service) Convert(uid string, amount int64) (*Result, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "invalid_amount",
			"Invalid amount. Must be a positive integer.")
	}
	if amount > MaxPerConversion {
		return nil, apperr.Newf(apperr.LimitExceeded, "amount_too_high",
			"Cannot convert more than %d chips at once.", MaxPerConversion)
	}

	weekID := week.ID(time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	organic, converted, err := s.ledger.WeeklyTotals(tx, weekID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	capLimit := int64(math.Floor(organic * CapRatio))
	remaining := capLimit - converted
	if remaining < 0 {
		remaining = 0
	}

	if remaining == 0 {
		tx.Rollback()
		return nil, apperr.ErrCapReached
	}
	if amount > remaining {
		tx.Rollback()
		return nil, apperr.ExceedsCap(remaining)
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if eco.Chips < amount {
		tx.Rollback()
		return nil, apperr.InsufficientChips(eco.Chips, amount)
	}
	if err := s.ledger.DebitChips(tx, uid, amount); err != nil {
		tx.Rollback()
		return nil, err
	}

	newConverted, err := s.ledger.AddConverted(tx, uid, weekID, amount)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	monitoring.ChipsConverted.Add(float64(amount))
	s.bus.Publish(event.EventChipsConverted, map[string]interface{}{
		"uid": uid, "weekId": weekID, "amount": amount,
	})

	return &Result{
		ChipsSpent:      amount,
		NewChips:        eco.Chips - amount,
		NewConverted:    newConverted,
		RemainingCap:    remaining - amount,
		GlobalOrganic:   int64(math.Floor(organic)),
		GlobalConverted: converted + amount,
		CapLimit:        capLimit,
	}, nil
}

type CapStatus struct {
	WeekID          string `json:"weekId"`
	GlobalOrganic   int64  `json:"globalOrganic"`
	GlobalConverted int64  `json:"globalConverted"`
	CapLimit        int64  `json:"capLimit"`
	RemainingCap    int64  `json:"remainingCap"`
	CapPercent      int    `json:"capPercent"`
}

// CapStatus is the read-only view of this week's conversion headroom.
func (s *Service) CapStatus() (*CapStatus, error) {
	weekID := week.ID(time.Now())

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	organic, converted, err := s.ledger.WeeklyTotals(tx, weekID)
	if err != nil {
		return nil, err
	}

	capLimit := int64(math.Floor(organic * CapRatio))
	remaining := capLimit - converted
	if remaining < 0 {
		remaining = 0
	}

	st := &CapStatus{
		WeekID:          weekID,
		GlobalOrganic:   int64(math.Floor(organic)),
		GlobalConverted: converted,
		CapLimit:        capLimit,
		RemainingCap:    remaining,
	}
	if organic > 0 {
		st.CapPercent = int(math.Round(float64(converted) / organic * 100))
	}
	return st, nil
}
