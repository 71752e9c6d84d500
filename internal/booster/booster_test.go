package booster

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
)

func newTestBooster(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	database := db.Init(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { database.Close() })
	svc := New(database, ledger.New(database), AcceptAll{}, event.NewBus())

	_, err := database.Exec(`INSERT INTO users(id, chips) VALUES ('u1', 100)`)
	require.NoError(t, err)
	return svc, database
}

func TestActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, Active(nil, now))
	assert.False(t, Active(&past, now))
	assert.True(t, Active(&future, now))
}

func TestActivateWithPayment(t *testing.T) {
	svc, database := newTestBooster(t)

	act, err := svc.ActivateWithPayment("u1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(Duration), act.ExpiresAt, 5*time.Second)

	var expires sql.NullInt64
	require.NoError(t, database.QueryRow(
		`SELECT booster_expires_at FROM users WHERE id='u1'`).Scan(&expires))
	require.True(t, expires.Valid)
	assert.Equal(t, act.ExpiresAt.Unix(), expires.Int64)

	// A second activation conflicts until the first expires.
	_, err = svc.ActivateWithPayment("u1")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "booster_active", appErr.Code)
	assert.Equal(t, apperr.Conflict, appErr.Kind)
}

func TestActivateWithPaymentUnknownUser(t *testing.T) {
	svc, _ := newTestBooster(t)

	_, err := svc.ActivateWithPayment("ghost")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestActivateWithEvidenceThresholds(t *testing.T) {
	svc, _ := newTestBooster(t)
	now := time.Now()

	// Too few unique entries.
	_, err := svc.ActivateWithEvidence("u1", historyJSON(t, MinEntries-1, now.Unix()), "history.json")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "not_enough_entries", appErr.Code)

	// Enough entries, but all stale.
	stale := historyJSON(t, MinEntries, now.Add(-90*24*time.Hour).Unix())
	_, err = svc.ActivateWithEvidence("u1", stale, "history.json")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "not_enough_recent", appErr.Code)

	// Valid export activates.
	act, err := svc.ActivateWithEvidence("u1", historyJSON(t, MinEntries, now.Unix()), "history.json")
	require.NoError(t, err)
	assert.Equal(t, MinEntries, act.UniqueEntries)
	assert.Equal(t, MinEntries, act.RecentEntries)
	assert.WithinDuration(t, now.Add(Duration), act.ExpiresAt, 5*time.Second)

	// Evidence path also refuses while active.
	_, err = svc.ActivateWithEvidence("u1", historyJSON(t, MinEntries, now.Unix()), "history.json")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "booster_active", appErr.Code)
}
