package casino

import "github.com/22kyasue/adlottery/internal/apperr"

// ValidateBet enforces the shared single-wager shape: a positive integer no
// larger than the bet cap. Shape checks always run before any funds check.
func ValidateBet(bet int64) error {
	if bet <= 0 {
		return apperr.ErrInvalidBet
	}
	if bet > apperr.MaxBet {
		return apperr.ErrBetTooHigh
	}
	return nil
}

// ValidateSpinBets enforces the multi-selection contract: 1-3 bets, each on
// a distinct valid color, each individually shape-valid.
func ValidateSpinBets(bets []SpinBet) error {
	if len(bets) < 1 || len(bets) > 3 {
		return apperr.ErrInvalidBets
	}

	seen := make(map[string]bool, len(bets))
	for _, b := range bets {
		if _, ok := spinMultipliers[b.Color]; !ok {
			return apperr.Newf(apperr.InvalidInput, "invalid_color",
				`Color must be "black", "red", or "gold".`)
		}
		if seen[b.Color] {
			return apperr.ErrInvalidBets
		}
		seen[b.Color] = true

		if err := ValidateBet(b.Bet); err != nil {
			return err
		}
	}
	return nil
}
