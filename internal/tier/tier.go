// Package tier implements the diminishing-returns ticket accrual math.
// Everything here is pure: the same view count always yields the same
// ticket total, and boosters never change which band a view falls in.
package tier

// band is a contiguous range of daily views sharing an ads-per-ticket ratio.
type band struct {
	from  int // first view in the band, 1-based
	to    int // last view, 0 = unbounded
	ratio int // ads per ticket
}

var bands = []band{
	{from: 1, to: 10, ratio: 1},
	{from: 11, to: 30, ratio: 2},
	{from: 31, to: 70, ratio: 4},
	{from: 71, to: 0, ratio: 10},
}

// worstRatio bounds the forward probe in Meta.
const worstRatio = 10

// TicketsEarned returns the cumulative tickets for a daily view count.
// Monotone non-decreasing; each additional view adds 0 or 1.
func TicketsEarned(views int) int {
	if views <= 0 {
		return 0
	}
	total := 0
	for _, b := range bands {
		if views < b.from {
			break
		}
		in := views - b.from + 1
		if b.to != 0 && views > b.to {
			in = b.to - b.from + 1
		}
		total += in / b.ratio
	}
	return total
}

// NewlyEarned reports whether view number n crossed a ticket boundary.
func NewlyEarned(n int) bool {
	return TicketsEarned(n) > TicketsEarned(n-1)
}

// Meta describes where a view count sits in the band structure.
type Meta struct {
	Band                 int `json:"currentTier"`
	AdsPerTicket         int `json:"adsPerTicket"`
	ViewsUntilNextTicket int `json:"viewsUntilNextTicket"`
}

// MetaFor returns band metadata for a view count. The next-ticket distance is
// found by probing forward, bounded by the worst-case ratio.
func MetaFor(views int) Meta {
	if views < 0 {
		views = 0
	}

	idx := len(bands) - 1
	for i, b := range bands {
		if b.to == 0 || views <= b.to {
			idx = i
			break
		}
	}
	// A count of zero still reports band 1.
	if views == 0 {
		idx = 0
	}

	m := Meta{Band: idx + 1, AdsPerTicket: bands[idx].ratio}
	base := TicketsEarned(views)
	for step := 1; step <= worstRatio; step++ {
		if TicketsEarned(views+step) > base {
			m.ViewsUntilNextTicket = step
			break
		}
	}
	return m
}
