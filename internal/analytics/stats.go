package analytics

import (
	"strings"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
	"mvdan.cc/xurls/v2"
)

// linkRe finds URL candidates; countLinks keeps only those that look like
// links a person shared, so "main.py" or "ok.so" are not counted.
var linkRe = xurls.Relaxed()

func countLinks(body string) int {
	n := 0
	for _, m := range linkRe.FindAllString(body, -1) {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "://") || strings.HasPrefix(lower, "www.") {
			n++
		}
	}
	return n
}

// Stats are the top-line counters for a filter.
type Stats struct {
	// Messages counts every record in the filtered set, notifications included.
	Messages int `json:"messages"`
	// Notifications is the part of Messages written by no one; Messages-Notifications
	// equals the sum of the per-sender counts from MostActiveUsers.
	Notifications int `json:"notifications"`
	// Words counts whitespace-separated tokens in non-notification, non-media bodies.
	Words int `json:"words"`
	Media int `json:"media"`
	// Links counts URLs with a scheme or a www. prefix in every body; a body may hold several.
	Links int `json:"links"`
}

// FetchStats returns the summary counters.
func (e *Engine) FetchStats(f Filter, rs chatlog.RecordSet) Stats {
	var s Stats
	f.narrow(rs).Each(func(r chatlog.Record) {
		s.Messages++
		s.Links += countLinks(r.Body)

		switch {
		case r.IsNotification():
			s.Notifications++
		case r.IsMedia():
			s.Media++
		default:
			s.Words += len(strings.Fields(r.Body))
		}
	})
	return s
}
