package ledger

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/22kyasue/adlottery/internal/apperr"
)

// Service is the transactional ledger. Every balance-affecting operation in
// the core runs inside a single *sql.Tx held by the caller; the ledger never
// commits on its own.
type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// Economy is a user's durable balances. Never cached across requests.
type Economy struct {
	UserID           string
	Chips            int64
	Coins            int64
	Shadowbanned     bool
	BoosterExpiresAt *time.Time
	Nonce            int64
}

// StarterChips is granted when a user's economy row is first created.
const StarterChips = 100

// Ensure creates the economy row on first touch.
func (s *Service) Ensure(tx *sql.Tx, uid string) error {
	_, err := tx.Exec(`
	INSERT OR IGNORE INTO users(id, chips) VALUES (?, ?)
	`, uid, StarterChips)
	return err
}

func (s *Service) Economy(tx *sql.Tx, uid string) (*Economy, error) {
	var (
		eco     Economy
		banned  int
		expires sql.NullInt64
	)
	err := tx.QueryRow(`
	SELECT id, chips, coins, shadowbanned, booster_expires_at, nonce
	FROM users WHERE id = ?
	`, uid).Scan(&eco.UserID, &eco.Chips, &eco.Coins, &banned, &expires, &eco.Nonce)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	eco.Shadowbanned = banned != 0
	if expires.Valid {
		t := time.Unix(expires.Int64, 0)
		eco.BoosterExpiresAt = &t
	}
	return &eco, nil
}

// DebitChips removes chips, refusing to let the balance go negative even if
// the caller's funds check raced with another request.
func (s *Service) DebitChips(tx *sql.Tx, uid string, amount int64) error {
	res, err := tx.Exec(`
	UPDATE users SET chips = chips - ? WHERE id = ? AND chips >= ?
	`, amount, uid, amount)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.InsufficientChips(0, amount)
	}
	return s.record(tx, uid, "chips", amount, 0)
}

func (s *Service) CreditChips(tx *sql.Tx, uid string, amount int64) error {
	if _, err := tx.Exec(`UPDATE users SET chips = chips + ? WHERE id = ?`, amount, uid); err != nil {
		return err
	}
	return s.record(tx, uid, "chips", 0, amount)
}

func (s *Service) CreditCoins(tx *sql.Tx, uid string, amount int64) error {
	if _, err := tx.Exec(`UPDATE users SET coins = coins + ? WHERE id = ?`, amount, uid); err != nil {
		return err
	}
	return s.record(tx, uid, "coins", 0, amount)
}

func (s *Service) SetShadowbanned(tx *sql.Tx, uid string) error {
	_, err := tx.Exec(`UPDATE users SET shadowbanned = 1 WHERE id = ?`, uid)
	return err
}

func (s *Service) SetBoosterExpiry(tx *sql.Tx, uid string, expiresAt time.Time) error {
	_, err := tx.Exec(`UPDATE users SET booster_expires_at = ? WHERE id = ?`, expiresAt.Unix(), uid)
	return err
}

// NextNonce atomically advances and returns the user's roll nonce.
func (s *Service) NextNonce(tx *sql.Tx, uid string) (int64, error) {
	if _, err := tx.Exec(`UPDATE users SET nonce = nonce + 1 WHERE id = ?`, uid); err != nil {
		return 0, err
	}
	var n int64
	err := tx.QueryRow(`SELECT nonce FROM users WHERE id = ?`, uid).Scan(&n)
	return n, err
}

// record writes a journal row. One row per balance mutation.
func (s *Service) record(tx *sql.Tx, uid, kind string, debit, credit int64) error {
	_, err := tx.Exec(`
	INSERT INTO journal(ref, user_id, kind, debit, credit, ts)
	VALUES (?,?,?,?,?,?)
	`, uuid.New().String(), uid, kind, debit, credit, time.Now().Unix())
	return err
}
