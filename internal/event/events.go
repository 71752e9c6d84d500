package event

const (
	EventAdVerified       = "ads.verified"
	EventTicketAwarded    = "tickets.awarded"
	EventCasinoSettled    = "casino.settled"
	EventChipsConverted   = "chips.converted"
	EventBoosterActivated = "booster.activated"
)
