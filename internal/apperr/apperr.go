package apperr

import "fmt"

// Kind is the closed set of error categories that may cross the API boundary.
type Kind int

const (
	Unauthorized Kind = iota
	InvalidInput
	InsufficientFunds
	LimitExceeded
	Conflict
	NotFound
	Internal
)

// Error carries a kind, a stable machine code and optional detail fields.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]interface{}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Newf(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// With attaches a detail field and returns the error for chaining.
func (e *Error) With(key string, value interface{}) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

var (
	ErrUnauthorized = New(Unauthorized, "unauthorized", "Unauthorized.")
	ErrInternal     = New(Internal, "internal", "Internal Server Error.")

	ErrInvalidBet   = New(InvalidInput, "invalid_bet", "Invalid bet. Must be a positive integer.")
	ErrBetTooHigh   = Newf(LimitExceeded, "bet_too_high", "Maximum bet is %d chips.", MaxBet)
	ErrInvalidBets  = New(InvalidInput, "invalid_bets", "Between 1 and 3 bets are required, one per category.")
	ErrNoSession    = New(NotFound, "no_active_session", "No active blackjack session.")
	ErrSessionOpen  = New(Conflict, "active_session_exists", "You already have an active blackjack game.")
	ErrCapReached   = New(LimitExceeded, "cap_reached", "Conversion cap reached. Please wait for more organic ad views.")
	ErrUserNotFound = New(NotFound, "user_not_found", "User not found.")
)

// MaxBet is the per-wager chip ceiling shared by every game.
const MaxBet = 500

// InsufficientChips reports a funds failure with the have/need pair.
func InsufficientChips(have, need int64) *Error {
	return Newf(InsufficientFunds, "insufficient_chips",
		"Not enough chips. You have %d, need %d.", have, need).
		With("have", have).With("need", need)
}

// ExceedsCap reports a conversion request above the remaining weekly cap.
func ExceedsCap(remaining int64) *Error {
	return Newf(LimitExceeded, "exceeds_cap",
		"Amount exceeds remaining cap. You can convert at most %d chips.", remaining).
		With("remaining_cap", remaining)
}
