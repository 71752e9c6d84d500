package ledger

import "database/sql"

// BasePoolAmount is the weekly prize pool floor before ad revenue.
const BasePoolAmount = 1250000

// IncrementPool adds ad revenue to the week's prize pool and returns the new
// total. Runs in its own short transaction: the increment is a single atomic
// UPDATE, and callers treat the whole thing as best-effort.
func (s *Service) IncrementPool(weekID string, amount int64) (int64, error) {
	_, err := s.db.Exec(`
	INSERT INTO weekly_prize_pool(week_id, ad_revenue_added)
	VALUES (?, ?)
	ON CONFLICT(week_id) DO UPDATE SET ad_revenue_added = ad_revenue_added + excluded.ad_revenue_added
	`, weekID, amount)
	if err != nil {
		return 0, err
	}
	return s.PoolTotal(weekID)
}

// PoolTotal returns base + added for the week. A missing row is the base.
func (s *Service) PoolTotal(weekID string) (int64, error) {
	var base, added int64
	err := s.db.QueryRow(`
	SELECT base_amount, ad_revenue_added FROM weekly_prize_pool WHERE week_id = ?
	`, weekID).Scan(&base, &added)
	if err == sql.ErrNoRows {
		return BasePoolAmount, nil
	}
	if err != nil {
		return BasePoolAmount, err
	}
	return base + added, nil
}
