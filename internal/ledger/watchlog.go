package ledger

import (
	"database/sql"
	"time"
)

// Watch log statuses.
const (
	WatchValid        = "valid"
	WatchSpeedFail    = "speed_check_failed"
	WatchShadowbanned = "shadowbanned_attempt"
)

// LastWatch returns the timestamp of the user's most recent watch attempt of
// any status. ok is false when the user has never watched.
func (s *Service) LastWatch(tx *sql.Tx, uid string) (time.Time, bool, error) {
	var ts int64
	err := tx.QueryRow(`
	SELECT watched_at FROM ad_watch_logs
	WHERE user_id = ? ORDER BY watched_at DESC, id DESC LIMIT 1
	`, uid).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(ts, 0), true, nil
}

// LogWatch records a watch attempt. Every call to the verification endpoint
// leaves a row, whatever the outcome.
func (s *Service) LogWatch(tx *sql.Tx, uid, status, detail string, at time.Time) error {
	_, err := tx.Exec(`
	INSERT INTO ad_watch_logs(user_id, status, detail, watched_at)
	VALUES (?,?,?,?)
	`, uid, status, detail, at.Unix())
	return err
}

// CountValidSince counts the user's verified watches at or after the given
// boundary (midnight of the reference timezone).
func (s *Service) CountValidSince(tx *sql.Tx, uid string, boundary time.Time) (int, error) {
	var n int
	err := tx.QueryRow(`
	SELECT COUNT(*) FROM ad_watch_logs
	WHERE user_id = ? AND status = ? AND watched_at >= ?
	`, uid, WatchValid, boundary.Unix()).Scan(&n)
	return n, err
}
