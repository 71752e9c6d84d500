package casino

import "github.com/22kyasue/adlottery/internal/apperr"

const (
	GuessHigher = "higher"
	GuessLower  = "lower"
)

// hiloMultiplier is inversely proportional to the true odds of the guess,
// clamped to [1.2, 12.0]. Zero favorable outcomes clamp to the top rather
// than divide; that wager can only push on a tie.
func hiloMultiplier(firstRank int, guess string) float64 {
	favorable := firstRank - 1
	if guess == GuessHigher {
		favorable = 13 - firstRank
	}
	if favorable <= 0 {
		return 12.0
	}
	m := 13.0 / float64(favorable)
	if m < 1.2 {
		m = 1.2
	}
	if m > 12.0 {
		m = 12.0
	}
	return m
}

// hiloOutcome settles a guess against the two ranks: tie pushes, otherwise
// win or lose on correctness.
func hiloOutcome(first, second int, guess string) string {
	if second == first {
		return ResultPush
	}
	higher := second > first
	if (guess == GuessHigher) == higher {
		return ResultWin
	}
	return ResultLose
}

// HiLo draws a card, applies the caller's higher/lower guess to a second
// draw and settles in one transaction.
func (s *Service) HiLo(uid string, bet int64, guess string) (*HiLoResult, error) {
	if err := ValidateBet(bet); err != nil {
		return nil, err
	}
	if guess != GuessHigher && guess != GuessLower {
		return nil, apperr.New(apperr.InvalidInput, "invalid_guess",
			`Guess must be "higher" or "lower".`)
	}
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
	if eco.Chips < bet {
		tx.Rollback()
		return nil, apperr.InsufficientChips(eco.Chips, bet)
	}
	if err := s.ledger.DebitChips(tx, uid, bet); err != nil {
		tx.Rollback()
		return nil, err
	}

	draw, drawErr := s.drawer(tx, uid, seed)
	first := draw().Rank
	second := draw().Rank
	if *drawErr != nil {
		tx.Rollback()
		return nil, *drawErr
	}

	mult := hiloMultiplier(first, guess)
	outcome := hiloOutcome(first, second, guess)

	var payout int64
	switch outcome {
	case ResultWin:
		payout = int64(float64(bet) * mult)
	case ResultPush:
		payout = bet
	}
	if payout > 0 {
		if err := s.ledger.CreditChips(tx, uid, payout); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	res := &HiLoResult{
		Outcome:    outcome,
		Card:       first,
		DrawnCard:  second,
		Bet:        bet,
		Multiplier: mult,
		Payout:     payout,
		Net:        payout - bet,
	}
	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.settled(uid, "hilo", outcome, bet, payout)
	return res, nil
}
