package ledger

import "database/sql"

// AwardTickets adds organic tickets to the user's weekly record and returns
// the new organic total. Fractional amounts accumulate (boosted awards are
// 1.5 per boundary); display and cap math floor later.
func (s *Service) AwardTickets(tx *sql.Tx, uid, weekID string, amount float64) (float64, error) {
	_, err := tx.Exec(`
	INSERT INTO weekly_tickets(user_id, week_id, organic)
	VALUES (?,?,?)
	ON CONFLICT(user_id, week_id) DO UPDATE SET organic = organic + excluded.organic
	`, uid, weekID, amount)
	if err != nil {
		return 0, err
	}
	var total float64
	err = tx.QueryRow(`
	SELECT organic FROM weekly_tickets WHERE user_id = ? AND week_id = ?
	`, uid, weekID).Scan(&total)
	return total, err
}

// AddConverted moves already-debited chips into converted tickets 1:1 and
// returns the user's new converted total for the week.
func (s *Service) AddConverted(tx *sql.Tx, uid, weekID string, amount int64) (int64, error) {
	_, err := tx.Exec(`
	INSERT INTO weekly_tickets(user_id, week_id, converted)
	VALUES (?,?,?)
	ON CONFLICT(user_id, week_id) DO UPDATE SET converted = converted + excluded.converted
	`, uid, weekID, amount)
	if err != nil {
		return 0, err
	}
	var total int64
	err = tx.QueryRow(`
	SELECT converted FROM weekly_tickets WHERE user_id = ? AND week_id = ?
	`, uid, weekID).Scan(&total)
	return total, err
}

// WeeklyTotals aggregates organic and converted tickets across all users
// for one week. Used by the conversion cap.
func (s *Service) WeeklyTotals(tx *sql.Tx, weekID string) (organic float64, converted int64, err error) {
	err = tx.QueryRow(`
	SELECT COALESCE(SUM(organic), 0), COALESCE(SUM(converted), 0)
	FROM weekly_tickets WHERE week_id = ?
	`, weekID).Scan(&organic, &converted)
	return organic, converted, err
}
