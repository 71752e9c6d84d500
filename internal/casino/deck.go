package casino

// HandValue scores a blackjack hand: faces count 10, aces count 11 unless
// that would bust, then 1.
func HandValue(h Hand) int {
	total, aces := 0, 0
	for _, c := range h {
		switch {
		case c.Rank == 1:
			aces++
			total += 11
		case c.Rank >= 10:
			total += 10
		default:
			total += c.Rank
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNatural reports a two-card 21 (ace plus a ten-value card).
func IsNatural(h Hand) bool {
	return len(h) == 2 && HandValue(h) == 21
}

// Blackjack payout table. Payout is the total credited back; the stake is
// included for win and push.
func blackjackPayout(result string, bet int64) int64 {
	switch result {
	case ResultBlackjack:
		return bet * 5 / 2
	case ResultWin:
		return bet * 2
	case ResultPush:
		return bet
	default:
		return 0
	}
}

// dealerPlay draws onto the dealer hand until it reaches 17, using the
// supplied draw function. Pure given the draws.
func dealerPlay(dealer Hand, draw func() Card) Hand {
	for HandValue(dealer) < 17 {
		dealer = append(dealer, draw())
	}
	return dealer
}

// standResult settles a non-busted player hand against a finished dealer
// hand.
func standResult(player, dealer Hand) string {
	pv, dv := HandValue(player), HandValue(dealer)
	switch {
	case dv > 21:
		return ResultWin
	case pv > dv:
		return ResultWin
	case pv == dv:
		return ResultPush
	default:
		return ResultLose
	}
}
