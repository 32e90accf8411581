package analytics

import (
	"time"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

// SensitiveMessage is a message that matched a sensitive-topic category.
type SensitiveMessage struct {
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
}

// SensitiveMessages returns the messages matching the lexicon's sensitive
// categories, in export order, or nil when none match. Notifications are
// skipped; each message is reported once under its first matching category.
func (e *Engine) SensitiveMessages(f Filter, rs chatlog.RecordSet) []SensitiveMessage {
	var out []SensitiveMessage
	f.narrow(rs).Each(func(r chatlog.Record) {
		if !textual(r) {
			return
		}
		if cat, ok := e.lex.MatchSensitive(r.Body); ok {
			out = append(out, SensitiveMessage{
				Sender:    r.Sender,
				Timestamp: r.Timestamp,
				Body:      r.Body,
				Category:  cat,
			})
		}
	})
	return out
}
