package casino

// Card ranks run 1 (ace) to 13 (king); suits 0-3 are display-only.
type Card struct {
	Rank int `json:"rank"`
	Suit int `json:"suit"`
}

type Hand []Card

// Session status values persisted with a blackjack hand.
const (
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
)

// Terminal results shared by the settlement responses.
const (
	ResultBlackjack = "blackjack"
	ResultWin       = "win"
	ResultLose      = "lose"
	ResultPush      = "push"
	ResultForfeit   = "forfeit"
)

// BlackjackResult is the settlement/state view returned by every hand
// operation. The dealer's full hand appears only once it is revealed.
type BlackjackResult struct {
	SessionID     string `json:"sessionId,omitempty"`
	Bet           int64  `json:"bet"`
	PlayerHand    Hand   `json:"playerHand"`
	DealerHand    Hand   `json:"dealerHand,omitempty"`
	DealerVisible Hand   `json:"dealerVisible"`
	PlayerValue   int    `json:"playerValue"`
	DealerValue   int    `json:"dealerValue,omitempty"`
	Status        string `json:"status"`
	Result        string `json:"result,omitempty"`
	Payout        int64  `json:"payout"`
	NewChips      int64  `json:"newChips"`
}

// BlackjackState is the idempotent reconnection view.
type BlackjackState struct {
	Active        bool   `json:"active"`
	SessionID     string `json:"sessionId,omitempty"`
	Bet           int64  `json:"bet,omitempty"`
	PlayerHand    Hand   `json:"playerHand,omitempty"`
	DealerVisible Hand   `json:"dealerVisible,omitempty"`
	PlayerValue   int    `json:"playerValue,omitempty"`
	Status        string `json:"status,omitempty"`
}

// SpinBet is one color wager on the wheel.
type SpinBet struct {
	Color string `json:"color"`
	Bet   int64  `json:"bet"`
}

type SpinBetResult struct {
	Color      string `json:"color"`
	Bet        int64  `json:"bet"`
	Won        bool   `json:"won"`
	Multiplier int64  `json:"multiplier"`
	Payout     int64  `json:"payout"`
	Net        int64  `json:"net"`
}

type SpinResult struct {
	ResultColor string          `json:"resultColor"`
	AnyWon      bool            `json:"anyWon"`
	TotalBet    int64           `json:"totalBet"`
	TotalPayout int64           `json:"totalPayout"`
	Net         int64           `json:"net"`
	Bets        []SpinBetResult `json:"bets"`
	NewChips    int64           `json:"newChips"`
}

type HiLoResult struct {
	Outcome    string  `json:"outcome"`
	Card       int     `json:"card"`
	DrawnCard  int     `json:"drawnCard"`
	Bet        int64   `json:"bet"`
	Multiplier float64 `json:"multiplier"`
	Payout     int64   `json:"payout"`
	Net        int64   `json:"net"`
	NewChips   int64   `json:"newChips"`
}

type ScratchResult struct {
	Outcome     string `json:"outcome"`
	RewardChips int64  `json:"rewardChips"`
	RewardCoins int64  `json:"rewardCoins"`
	Cost        int64  `json:"cost"`
	NewChips    int64  `json:"newChips"`
	NewCoins    int64  `json:"newCoins"`
}

// Settled is the payload published on the event bus after any game settles.
type Settled struct {
	UID     string `json:"uid"`
	Game    string `json:"game"`
	Outcome string `json:"outcome"`
	Bet     int64  `json:"bet"`
	Payout  int64  `json:"payout"`
}
