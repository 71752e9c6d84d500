package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	AdViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_views_total",
			Help: "Ad view verification calls by outcome",
		},
		[]string{"outcome"},
	)

	TicketsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_awarded_total",
			Help: "Organic lottery tickets awarded (booster-scaled)",
		},
	)

	Shadowbans = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shadowbans_total",
			Help: "Users shadowbanned by the speed check",
		},
	)

	Wagers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_wagers_total",
			Help: "Settled wagers by game and outcome",
		},
		[]string{"game", "outcome"},
	)

	ChipsConverted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chips_converted_total",
			Help: "Chips converted into weekly tickets",
		},
	)
)

func Init() {
	prometheus.MustRegister(AdViews)
	prometheus.MustRegister(TicketsAwarded)
	prometheus.MustRegister(Shadowbans)
	prometheus.MustRegister(Wagers)
	prometheus.MustRegister(ChipsConverted)
}
