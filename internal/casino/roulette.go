package casino

import "github.com/22kyasue/adlottery/internal/apperr"

// Wheel colors and their payout multipliers.
var spinMultipliers = map[string]int64{
	"black": 2,
	"red":   3,
	"gold":  10,
}

// houseOnly is the outcome no player bet can match.
const houseOnly = "house"

// spinOutcome maps one roll to the fixed wheel distribution:
// black 45%, red 30%, gold 5%, house-only 20%.
func spinOutcome(roll float64) string {
	switch {
	case roll < 45:
		return "black"
	case roll < 75:
		return "red"
	case roll < 80:
		return "gold"
	default:
		return houseOnly
	}
}

// settleSpin resolves each bet against the winning color. Pure.
func settleSpin(bets []SpinBet, outcome string) *SpinResult {
	res := &SpinResult{ResultColor: outcome}
	for _, b := range bets {
		br := SpinBetResult{Color: b.Color, Bet: b.Bet, Net: -b.Bet}
		if b.Color == outcome {
			br.Won = true
			br.Multiplier = spinMultipliers[b.Color]
			br.Payout = b.Bet * br.Multiplier
			br.Net = br.Payout - b.Bet
			res.AnyWon = true
		}
		res.TotalBet += b.Bet
		res.TotalPayout += br.Payout
		res.Bets = append(res.Bets, br)
	}
	res.Net = res.TotalPayout - res.TotalBet
	return res
}

// Spin settles a multi-color wheel wager in one transaction.
func (s *Service) Spin(uid string, bets []SpinBet) (*SpinResult, error) {
	if err := ValidateSpinBets(bets); err != nil {
		return nil, err
	}
	s.seeds.MaybeRotate()
	seed, _ := s.seeds.Current()

	var total int64
	for _, b := range bets {
		total += b.Bet
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if eco.Chips < total {
		tx.Rollback()
		return nil, apperr.InsufficientChips(eco.Chips, total)
	}
	if err := s.ledger.DebitChips(tx, uid, total); err != nil {
		tx.Rollback()
		return nil, err
	}

	nonce, err := s.ledger.NextNonce(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	roll, _ := Roll(seed, uid, nonce)

	res := settleSpin(bets, spinOutcome(roll))
	if res.TotalPayout > 0 {
		if err := s.ledger.CreditChips(tx, uid, res.TotalPayout); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	outcome := ResultLose
	if res.AnyWon {
		outcome = ResultWin
	}
	s.settled(uid, "roulette", outcome, res.TotalBet, res.TotalPayout)
	return res, nil
}
