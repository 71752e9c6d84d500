package casino

import (
	"fmt"

	"github.com/22kyasue/adlottery/internal/event"
)

type Audit interface {
	Log(uid string, action string, metadata string)
}

type Broadcaster interface {
	BroadcastJSON(v interface{})
}

// RegisterConsumers wires the observers of settlement events. Consumers are
// read-only: balances were already settled inside the game transaction.
func RegisterConsumers(bus *event.Bus, audit Audit, ws Broadcaster) {
	bus.Subscribe(event.EventCasinoSettled, func(payload interface{}) {
		res, ok := payload.(*Settled)
		if !ok {
			return
		}

		audit.Log(res.UID, "casino_"+res.Game,
			fmt.Sprintf("outcome=%s bet=%d payout=%d", res.Outcome, res.Bet, res.Payout))

		ws.BroadcastJSON(res)
	})
}
