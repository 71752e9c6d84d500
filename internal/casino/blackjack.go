package casino

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/22kyasue/adlottery/internal/apperr"
	"github.com/22kyasue/adlottery/internal/ledger"
)

// Deal opens a new hand: debits the bet, deals two cards each way and either
// settles a natural immediately or persists the session for Hit/Stand.
func (s *Service) Deal(uid string, bet int64) (*BlackjackResult, error) {
	if err := ValidateBet(bet); err != nil {
		return nil, err
	}
	s.seeds.MaybeRotate()
	seed, _ := s.seeds.Current()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	sess, err := s.ledger.GetSession(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if sess != nil {
		tx.Rollback()
		return nil, apperr.ErrSessionOpen
	}

	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if eco.Chips < bet {
		tx.Rollback()
		return nil, apperr.InsufficientChips(eco.Chips, bet)
	}
	if err := s.ledger.DebitChips(tx, uid, bet); err != nil {
		tx.Rollback()
		return nil, err
	}

	draw, drawErr := s.drawer(tx, uid, seed)
	player := Hand{draw(), draw()}
	dealer := Hand{draw(), draw()}
	if *drawErr != nil {
		tx.Rollback()
		return nil, *drawErr
	}

	res := &BlackjackResult{
		SessionID:     uuid.New().String(),
		Bet:           bet,
		PlayerHand:    player,
		PlayerValue:   HandValue(player),
		DealerVisible: dealer[:1],
	}

	if IsNatural(player) {
		payout := blackjackPayout(ResultBlackjack, bet)
		if err := s.ledger.CreditChips(tx, uid, payout); err != nil {
			tx.Rollback()
			return nil, err
		}
		res.Status = StatusComplete
		res.Result = ResultBlackjack
		res.Payout = payout
		res.DealerHand = dealer
		res.DealerValue = HandValue(dealer)
	} else {
		res.Status = StatusInProgress
		if err := s.saveHand(tx, uid, res.SessionID, bet, player, dealer); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if res.Status == StatusComplete {
		s.settled(uid, "blackjack", res.Result, bet, res.Payout)
	}
	return res, nil
}

// Hit adds one player card. A bust settles immediately; 21 does not, a
// further hit stays legal even though it cannot help.
func (s *Service) Hit(uid string) (*BlackjackResult, error) {
	s.seeds.MaybeRotate()
	seed, _ := s.seeds.Current()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	sess, player, dealer, err := s.loadHand(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	draw, drawErr := s.drawer(tx, uid, seed)
	player = append(player, draw())
	if *drawErr != nil {
		tx.Rollback()
		return nil, *drawErr
	}

	res := &BlackjackResult{
		SessionID:     sess.SessionID,
		Bet:           sess.Bet,
		PlayerHand:    player,
		PlayerValue:   HandValue(player),
		DealerVisible: dealer[:1],
	}

	if res.PlayerValue > 21 {
		if err := s.ledger.DeleteSession(tx, uid); err != nil {
			tx.Rollback()
			return nil, err
		}
		res.Status = StatusComplete
		res.Result = ResultLose
		res.DealerHand = dealer
		res.DealerValue = HandValue(dealer)
		res.DealerVisible = dealer
	} else {
		res.Status = StatusInProgress
		if err := s.saveHand(tx, uid, sess.SessionID, sess.Bet, player, dealer); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if res.Status == StatusComplete {
		s.settled(uid, "blackjack", res.Result, sess.Bet, 0)
	}
	return res, nil
}

// Stand reveals the hidden card, runs the dealer to 17 and settles.
func (s *Service) Stand(uid string) (*BlackjackResult, error) {
	s.seeds.MaybeRotate()
	seed, _ := s.seeds.Current()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	sess, player, dealer, err := s.loadHand(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	draw, drawErr := s.drawer(tx, uid, seed)
	dealer = dealerPlay(dealer, draw)
	if *drawErr != nil {
		tx.Rollback()
		return nil, *drawErr
	}

	result := standResult(player, dealer)
	payout := blackjackPayout(result, sess.Bet)
	if payout > 0 {
		if err := s.ledger.CreditChips(tx, uid, payout); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := s.ledger.DeleteSession(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}

	res := &BlackjackResult{
		SessionID:     sess.SessionID,
		Bet:           sess.Bet,
		PlayerHand:    player,
		PlayerValue:   HandValue(player),
		DealerHand:    dealer,
		DealerVisible: dealer,
		DealerValue:   HandValue(dealer),
		Status:        StatusComplete,
		Result:        result,
		Payout:        payout,
	}
	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.settled(uid, "blackjack", result, sess.Bet, payout)
	return res, nil
}

// Forfeit ends an active hand as an immediate loss. No refund; the original
// bet is echoed back for display.
func (s *Service) Forfeit(uid string) (*BlackjackResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	sess, player, _, err := s.loadHand(tx, uid)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.ledger.DeleteSession(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}

	res := &BlackjackResult{
		SessionID:   sess.SessionID,
		Bet:         sess.Bet,
		PlayerHand:  player,
		PlayerValue: HandValue(player),
		Status:      StatusComplete,
		Result:      ResultForfeit,
	}
	if res.NewChips, err = s.chips(tx, uid); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.settled(uid, "blackjack", ResultForfeit, sess.Bet, 0)
	return res, nil
}

// State is the idempotent reconnection read. The hidden dealer card stays
// withheld while the hand is in progress.
func (s *Service) State(uid string) (*BlackjackState, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sess, err := s.ledger.GetSession(tx, uid)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return &BlackjackState{Active: false}, nil
	}

	player, dealer, err := decodeHands(sess)
	if err != nil {
		return nil, err
	}
	return &BlackjackState{
		Active:        true,
		SessionID:     sess.SessionID,
		Bet:           sess.Bet,
		PlayerHand:    player,
		DealerVisible: dealer[:1],
		PlayerValue:   HandValue(player),
		Status:        sess.Status,
	}, nil
}

// drawer returns a card-drawing closure bound to the tx-scoped nonce
// sequence, plus a pointer to the first error it hit.
func (s *Service) drawer(tx *sql.Tx, uid, seed string) (func() Card, *error) {
	var firstErr error
	return func() Card {
		n, err := s.ledger.NextNonce(tx, uid)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return DrawCard(seed, uid, n)
	}, &firstErr
}

func (s *Service) loadHand(tx *sql.Tx, uid string) (*ledger.Session, Hand, Hand, error) {
	sess, err := s.ledger.GetSession(tx, uid)
	if err != nil {
		return nil, nil, nil, err
	}
	if sess == nil {
		return nil, nil, nil, apperr.ErrNoSession
	}
	player, dealer, err := decodeHands(sess)
	if err != nil {
		return nil, nil, nil, err
	}
	return sess, player, dealer, nil
}

func (s *Service) saveHand(tx *sql.Tx, uid, sessionID string, bet int64, player, dealer Hand) error {
	pj, _ := json.Marshal(player)
	dj, _ := json.Marshal(dealer)
	return s.ledger.SaveSession(tx, &ledger.Session{
		UserID:     uid,
		SessionID:  sessionID,
		Bet:        bet,
		PlayerHand: string(pj),
		DealerHand: string(dj),
		Status:     StatusInProgress,
		CreatedAt:  time.Now(),
	})
}

func (s *Service) chips(tx *sql.Tx, uid string) (int64, error) {
	eco, err := s.ledger.Economy(tx, uid)
	if err != nil {
		return 0, err
	}
	return eco.Chips, nil
}

func decodeHands(sess *ledger.Session) (Hand, Hand, error) {
	var player, dealer Hand
	if err := json.Unmarshal([]byte(sess.PlayerHand), &player); err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal([]byte(sess.DealerHand), &dealer); err != nil {
		return nil, nil, err
	}
	return player, dealer, nil
}
