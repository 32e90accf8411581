package analytics

import (
	"math"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

// UserShare is one sender's share of the conversation.
type UserShare struct {
	Sender   string  `json:"sender"`
	Messages int     `json:"messages"`
	Percent  float64 `json:"percent"`
}

// ActiveUsers ranks senders by message count.
type ActiveUsers struct {
	Top    []LabelCount `json:"top"`
	Shares []UserShare  `json:"shares"`
}

// MostActiveUsers ranks senders by message count, notifications excluded.
// Top holds the busiest Options.TopUsers senders; Shares covers every sender
// with its percentage rounded to two decimals. The ranking is meant for the
// Overall view; a single-sender filter yields that sender at 100%.
func (e *Engine) MostActiveUsers(f Filter, rs chatlog.RecordSet) ActiveUsers {
	c := newCounter()
	total := 0
	f.narrow(rs).Each(func(r chatlog.Record) {
		if r.IsNotification() {
			return
		}
		c.add(r.Sender, 1)
		total++
	})

	ranked := c.ranked(0)
	shares := make([]UserShare, len(ranked))
	for i, lc := range ranked {
		shares[i] = UserShare{
			Sender:   lc.Label,
			Messages: lc.Count,
			Percent:  round2(float64(lc.Count) / float64(total) * 100),
		}
	}

	return ActiveUsers{
		Top:    c.ranked(e.opts.TopUsers),
		Shares: shares,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
