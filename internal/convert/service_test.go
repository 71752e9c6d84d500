package convert

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/db"
	"github.com/22kyasue/adlottery/internal/event"
	"github.com/22kyasue/adlottery/internal/ledger"
	"github.com/22kyasue/adlottery/internal/week"
)

func newTestConvert(t *testing.T) (*Service, *ledger.Service, *sql.DB) {
	t.Helper()
	database := db.Init(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { database.Close() })
	lg := ledger.New(database)
	return New(database, lg, event.NewBus()), lg, database
}

// seedWeek plants this week's global organic/converted totals on a synthetic
// user so cap math has something to work against.
func seedWeek(t *testing.T, lg *ledger.Service, organic float64, converted int64) {
	t.Helper()
	weekID := week.ID(time.Now())
	tx, err := lg.Begin()
	require.NoError(t, err)
	if organic > 0 {
		_, err = lg.AwardTickets(tx, "seed-user", weekID, organic)
		require.NoError(t, err)
	}
	if converted > 0 {
		_, err = lg.AddConverted(tx, "seed-user", weekID, converted)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())
}

func seedChips(t *testing.T, database *sql.DB, uid string, chips int64) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO users(id, chips) VALUES (?, ?)`, uid, chips)
	require.NoError(t, err)
}

func TestConvertRejectsBadAmounts(t *testing.T) {
	svc, _, _ := newTestConvert(t)

	var appErr *apperr.Error
	_, err := svc.Convert("u1", 0)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_amount", appErr.Code)

	_, err = svc.Convert("u1", -10)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_amount", appErr.Code)

	_, err = svc.Convert("u1", MaxPerConversion+1)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "amount_too_high", appErr.Code)
}

func TestConvertCapMath(t *testing.T) {
	svc, lg, database := newTestConvert(t)
	seedWeek(t, lg, 1000, 250)
	seedChips(t, database, "u1", 100)

	// Cap is floor(0.30 * 1000) = 300; 250 used leaves 50.
	_, err := svc.Convert("u1", 51)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "exceeds_cap", appErr.Code)
	assert.Equal(t, int64(50), appErr.Fields["remaining_cap"])

	res, err := svc.Convert("u1", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.ChipsSpent)
	assert.Equal(t, int64(50), res.NewChips)
	assert.Equal(t, int64(50), res.NewConverted)
	assert.Equal(t, int64(0), res.RemainingCap)
	assert.Equal(t, int64(1000), res.GlobalOrganic)
	assert.Equal(t, int64(300), res.GlobalConverted)
	assert.Equal(t, int64(300), res.CapLimit)

	// Cap exhausted entirely.
	_, err = svc.Convert("u1", 1)
	assert.ErrorIs(t, err, apperr.ErrCapReached)
}

func TestConvertZeroOrganicCapReached(t *testing.T) {
	svc, _, database := newTestConvert(t)
	seedChips(t, database, "u1", 100)

	_, err := svc.Convert("u1", 10)
	assert.ErrorIs(t, err, apperr.ErrCapReached)
}

func TestConvertInsufficientChips(t *testing.T) {
	svc, lg, database := newTestConvert(t)
	seedWeek(t, lg, 1000, 0)
	seedChips(t, database, "u1", 10)

	_, err := svc.Convert("u1", 20)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.InsufficientFunds, appErr.Kind)

	// Nothing moved.
	var chips int64
	require.NoError(t, database.QueryRow(`SELECT chips FROM users WHERE id='u1'`).Scan(&chips))
	assert.Equal(t, int64(10), chips)
}

func TestConvertFractionalOrganicFloors(t *testing.T) {
	svc, lg, database := newTestConvert(t)
	// floor(0.30 * 10.5) = 3.
	seedWeek(t, lg, 10.5, 0)
	seedChips(t, database, "u1", 100)

	_, err := svc.Convert("u1", 4)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "exceeds_cap", appErr.Code)

	res, err := svc.Convert("u1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.CapLimit)
	assert.Equal(t, int64(10), res.GlobalOrganic)
}

func TestCapStatus(t *testing.T) {
	svc, lg, _ := newTestConvert(t)
	seedWeek(t, lg, 1000, 250)

	st, err := svc.CapStatus()
	require.NoError(t, err)
	assert.Equal(t, week.ID(time.Now()), st.WeekID)
	assert.Equal(t, int64(1000), st.GlobalOrganic)
	assert.Equal(t, int64(250), st.GlobalConverted)
	assert.Equal(t, int64(300), st.CapLimit)
	assert.Equal(t, int64(50), st.RemainingCap)
	assert.Equal(t, 25, st.CapPercent)
}

func TestCapStatusEmptyWeek(t *testing.T) {
	svc, _, _ := newTestConvert(t)

	st, err := svc.CapStatus()
	require.NoError(t, err)
	assert.Zero(t, st.GlobalOrganic)
	assert.Zero(t, st.CapLimit)
	assert.Zero(t, st.RemainingCap)
	assert.Zero(t, st.CapPercent)
}
