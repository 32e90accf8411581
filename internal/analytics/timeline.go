package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

// MonthPoint is one month of the monthly timeline.
type MonthPoint struct {
	Year      int    `json:"year"`
	MonthNum  int    `json:"month_num"`
	MonthName string `json:"month_name"`
	Label     string `json:"label"` // "January-2023"
	Messages  int    `json:"messages"`
}

// DayPoint is one calendar day of the daily timeline.
type DayPoint struct {
	Date     time.Time `json:"date"`
	Label    string    `json:"label"` // "2023-01-02"
	Messages int       `json:"messages"`
}

// MonthlyTimeline counts messages per calendar month in chronological order.
// Notifications are included.
func (e *Engine) MonthlyTimeline(f Filter, rs chatlog.RecordSet) []MonthPoint {
	byMonth := make(map[int]*MonthPoint)
	f.narrow(rs).Each(func(r chatlog.Record) {
		key := r.Year*12 + r.MonthNum
		p, ok := byMonth[key]
		if !ok {
			p = &MonthPoint{
				Year:      r.Year,
				MonthNum:  r.MonthNum,
				MonthName: r.MonthName,
				Label:     fmt.Sprintf("%s-%d", r.MonthName, r.Year),
			}
			byMonth[key] = p
		}
		p.Messages++
	})

	keys := make([]int, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]MonthPoint, len(keys))
	for i, k := range keys {
		out[i] = *byMonth[k]
	}
	return out
}

// DailyTimeline counts messages per calendar date in chronological order.
// Notifications are included.
func (e *Engine) DailyTimeline(f Filter, rs chatlog.RecordSet) []DayPoint {
	byDay := make(map[string]*DayPoint)
	f.narrow(rs).Each(func(r chatlog.Record) {
		label := r.Date.Format("2006-01-02")
		p, ok := byDay[label]
		if !ok {
			p = &DayPoint{Date: r.Date, Label: label}
			byDay[label] = p
		}
		p.Messages++
	})

	out := make([]DayPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
