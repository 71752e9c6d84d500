package casino

import "github.com/22kyasue/adlottery/internal/apperr"

// ScratchCost is the fixed chip price of a scratch card.
const ScratchCost = 10

type scratchPrize struct {
	Outcome string
	Chips   int64
	Coins   int64
	Weight  float64 // percent
}

// Weights sum to exactly 100.
var scratchTable = []scratchPrize{
	{Outcome: "no_prize", Weight: 60},
	{Outcome: "coins_5", Coins: 5, Weight: 20},
	{Outcome: "chips_15", Chips: 15, Weight: 10},
	{Outcome: "coins_25", Coins: 25, Weight: 7},
	{Outcome: "chips_50", Chips: 50, Weight: 2.5},
	{Outcome: "coins_200", Coins: 200, Weight: 0.5},
}

// scratchOutcome maps one roll in [0,100) onto the weighted prize table.
func scratchOutcome(roll float64) scratchPrize {
	acc := 0.0
	for _, p := range scratchTable {
		acc += p.Weight
		if roll < acc {
			return p
		}
	}
	return scratchTable[len(scratchTable)-1]
}

// Scratch settles a fixed-cost scratch card in one transaction.
func (s *Service) Scratch(uid string) (*ScratchResult, error) {
	s.seeds.MaybeRotate()
	seed, _ := s.seeds.Current()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if eco.Chips < ScratchCost {
		tx.Rollback()
		return nil, apperr.InsufficientChips(eco.Chips, ScratchCost)
	}
	if err := s.ledger.DebitChips(tx, uid, ScratchCost); err != nil {
		tx.Rollback()
		return nil, err
	}

	nonce, err := s.ledger.NextNonce(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	roll, _ := Roll(seed, uid, nonce)
	prize := scratchOutcome(roll)

	if prize.Chips > 0 {
		if err := s.ledger.CreditChips(tx, uid, prize.Chips); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if prize.Coins > 0 {
		if err := s.ledger.CreditCoins(tx, uid, prize.Coins); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	after, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.settled(uid, "scratch", prize.Outcome, ScratchCost, prize.Chips)
	return &ScratchResult{
		Outcome:     prize.Outcome,
		RewardChips: prize.Chips,
		RewardCoins: prize.Coins,
		Cost:        ScratchCost,
		NewChips:    after.Chips,
		NewCoins:    after.Coins,
	}, nil
}
