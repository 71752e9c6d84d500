package ledger

import (
	"database/sql"
	"time"
)

// Session is a persisted blackjack hand. The user_id primary key enforces at
// most one active session per user; hands are opaque JSON owned by the game.
type Session struct {
	UserID     string
	SessionID  string
	Bet        int64
	PlayerHand string
	DealerHand string
	Status     string
	CreatedAt  time.Time
}

func (s *Service) GetSession(tx *sql.Tx, uid string) (*Session, error) {
	var (
		sess Session
		ts   int64
	)
	err := tx.QueryRow(`
	SELECT user_id, session_id, bet, player_hand, dealer_hand, status, created_at
	FROM blackjack_sessions WHERE user_id = ?
	`, uid).Scan(&sess.UserID, &sess.SessionID, &sess.Bet, &sess.PlayerHand,
		&sess.DealerHand, &sess.Status, &ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess.CreatedAt = time.Unix(ts, 0)
	return &sess, nil
}

func (s *Service) SaveSession(tx *sql.Tx, sess *Session) error {
	_, err := tx.Exec(`
	INSERT INTO blackjack_sessions(user_id, session_id, bet, player_hand, dealer_hand, status, created_at)
	VALUES (?,?,?,?,?,?,?)
	ON CONFLICT(user_id) DO UPDATE SET
		session_id = excluded.session_id,
		bet = excluded.bet,
		player_hand = excluded.player_hand,
		dealer_hand = excluded.dealer_hand,
		status = excluded.status
	`, sess.UserID, sess.SessionID, sess.Bet, sess.PlayerHand, sess.DealerHand,
		sess.Status, sess.CreatedAt.Unix())
	return err
}

func (s *Service) DeleteSession(tx *sql.Tx, uid string) error {
	_, err := tx.Exec(`DELETE FROM blackjack_sessions WHERE user_id = ?`, uid)
	return err
}
