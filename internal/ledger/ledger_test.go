package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/db"
)

func newTestLedger(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	database := db.Init(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { database.Close() })
	return New(database), database
}

func inTx(t *testing.T, s *Service, fn func(tx *sql.Tx)) {
	t.Helper()
	tx, err := s.Begin()
	require.NoError(t, err)
	fn(tx)
	require.NoError(t, tx.Commit())
}

func TestEnsureAndEconomy(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		require.NoError(t, s.Ensure(tx, "u1"))
		// Second ensure is a no-op.
		require.NoError(t, s.Ensure(tx, "u1"))

		eco, err := s.Economy(tx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(StarterChips), eco.Chips)
		assert.Equal(t, int64(0), eco.Coins)
		assert.False(t, eco.Shadowbanned)
		assert.Nil(t, eco.BoosterExpiresAt)
	})
}

func TestEconomyUnknownUser(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		_, err := s.Economy(tx, "ghost")
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	})
}

func TestDebitNeverGoesNegative(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		require.NoError(t, s.Ensure(tx, "u1"))
		require.NoError(t, s.DebitChips(tx, "u1", StarterChips))

		err := s.DebitChips(tx, "u1", 1)
		require.Error(t, err)

		eco, err := s.Economy(tx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), eco.Chips)
	})
}

func TestCreditAndJournal(t *testing.T) {
	s, database := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		require.NoError(t, s.Ensure(tx, "u1"))
		require.NoError(t, s.CreditChips(tx, "u1", 40))
		require.NoError(t, s.CreditCoins(tx, "u1", 5))
	})

	var rows int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM journal WHERE user_id='u1'`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestAwardTicketsAccumulatesFractions(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		total, err := s.AwardTickets(tx, "u1", "2026-W10", 1)
		require.NoError(t, err)
		assert.Equal(t, 1.0, total)

		total, err = s.AwardTickets(tx, "u1", "2026-W10", 1.5)
		require.NoError(t, err)
		assert.Equal(t, 2.5, total)
	})
}

func TestWeeklyTotalsAggregateAcrossUsers(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		_, err := s.AwardTickets(tx, "a", "2026-W10", 600)
		require.NoError(t, err)
		_, err = s.AwardTickets(tx, "b", "2026-W10", 400)
		require.NoError(t, err)
		_, err = s.AddConverted(tx, "a", "2026-W10", 250)
		require.NoError(t, err)
		// A different week stays out of the aggregate.
		_, err = s.AwardTickets(tx, "a", "2026-W11", 99)
		require.NoError(t, err)

		organic, converted, err := s.WeeklyTotals(tx, "2026-W10")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, organic)
		assert.Equal(t, int64(250), converted)
	})
}

func TestPoolIncrementAndTotal(t *testing.T) {
	s, _ := newTestLedger(t)

	total, err := s.PoolTotal("2026-W10")
	require.NoError(t, err)
	assert.Equal(t, int64(BasePoolAmount), total)

	total, err = s.IncrementPool("2026-W10", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(BasePoolAmount+2), total)

	total, err = s.IncrementPool("2026-W10", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(BasePoolAmount+3), total)
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestLedger(t)

	inTx(t, s, func(tx *sql.Tx) {
		got, err := s.GetSession(tx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)

		sess := &Session{
			UserID:     "u1",
			SessionID:  "sess-1",
			Bet:        50,
			PlayerHand: `[{"rank":10,"suit":0}]`,
			DealerHand: `[{"rank":5,"suit":1}]`,
			Status:     "in_progress",
			CreatedAt:  time.Now(),
		}
		require.NoError(t, s.SaveSession(tx, sess))

		got, err = s.GetSession(tx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sess-1", got.SessionID)
		assert.Equal(t, int64(50), got.Bet)

		// Upsert replaces, it does not duplicate.
		sess.PlayerHand = `[{"rank":10,"suit":0},{"rank":9,"suit":2}]`
		require.NoError(t, s.SaveSession(tx, sess))

		require.NoError(t, s.DeleteSession(tx, "u1"))
		got, err = s.GetSession(tx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestWatchLog(t *testing.T) {
	s, _ := newTestLedger(t)
	base := time.Now().Add(-time.Hour)

	inTx(t, s, func(tx *sql.Tx) {
		_, seen, err := s.LastWatch(tx, "u1")
		require.NoError(t, err)
		assert.False(t, seen)

		require.NoError(t, s.LogWatch(tx, "u1", WatchValid, "", base))
		require.NoError(t, s.LogWatch(tx, "u1", WatchSpeedFail, "", base.Add(time.Minute)))

		last, seen, err := s.LastWatch(tx, "u1")
		require.NoError(t, err)
		assert.True(t, seen)
		assert.Equal(t, base.Add(time.Minute).Unix(), last.Unix())

		// Only valid watches count toward the daily view total.
		n, err := s.CountValidSince(tx, "u1", base.Add(-time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
