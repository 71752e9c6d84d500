package casino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22kyasue/adlottery/internal/apperr"
)

func TestSpinConservesChips(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 500)

	res, err := s.Spin("u1", []SpinBet{
		{Color: "black", Bet: 30},
		{Color: "gold", Bet: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), res.TotalBet)
	assert.Equal(t, res.TotalPayout-res.TotalBet, res.Net)
	assert.Equal(t, int64(500)+res.Net, res.NewChips)
	assert.Equal(t, res.NewChips, userChips(t, database, "u1"))
	require.Len(t, res.Bets, 2)
}

func TestSpinInsufficientForTotal(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 50)

	// Each bet fits the cap but the combined stake exceeds the balance.
	_, err := s.Spin("u1", []SpinBet{
		{Color: "black", Bet: 30},
		{Color: "red", Bet: 30},
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.InsufficientFunds, appErr.Kind)
	assert.Equal(t, int64(50), userChips(t, database, "u1"))
}

func TestHiLoConservesChips(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 500)

	res, err := s.HiLo("u1", 50, GuessHigher)
	require.NoError(t, err)

	assert.Contains(t, []string{ResultWin, ResultLose, ResultPush}, res.Outcome)
	switch res.Outcome {
	case ResultWin:
		assert.Equal(t, int64(float64(50)*res.Multiplier), res.Payout)
	case ResultPush:
		assert.Equal(t, int64(50), res.Payout)
	default:
		assert.Equal(t, int64(0), res.Payout)
	}
	assert.Equal(t, res.Payout-50, res.Net)
	assert.Equal(t, int64(500)+res.Net, res.NewChips)
	assert.Equal(t, res.NewChips, userChips(t, database, "u1"))
}

func TestHiLoRejectsBadGuess(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 500)

	_, err := s.HiLo("u1", 50, "sideways")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_guess", appErr.Code)
	assert.Equal(t, int64(500), userChips(t, database, "u1"))
}

func TestScratchConservesBalances(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 100)

	res, err := s.Scratch("u1")
	require.NoError(t, err)

	assert.Equal(t, int64(ScratchCost), res.Cost)
	assert.Equal(t, int64(100)-ScratchCost+res.RewardChips, res.NewChips)
	assert.Equal(t, res.RewardCoins, res.NewCoins)
	assert.Equal(t, res.NewChips, userChips(t, database, "u1"))
}

func TestScratchInsufficientChips(t *testing.T) {
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", ScratchCost-1)

	_, err := s.Scratch("u1")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.InsufficientFunds, appErr.Kind)
	assert.Equal(t, int64(ScratchCost-1), userChips(t, database, "u1"))
}
