package analytics

import (
	"time"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

// WeekActivity counts messages per weekday name, busiest first.
// Notifications are included.
func (e *Engine) WeekActivity(f Filter, rs chatlog.RecordSet) []LabelCount {
	c := newCounter()
	f.narrow(rs).Each(func(r chatlog.Record) {
		c.add(r.Weekday, 1)
	})
	return c.ranked(0)
}

// MonthActivity counts messages per month name across all years, busiest first.
// Notifications are included.
func (e *Engine) MonthActivity(f Filter, rs chatlog.RecordSet) []LabelCount {
	c := newCounter()
	f.narrow(rs).Each(func(r chatlog.Record) {
		c.add(r.MonthName, 1)
	})
	return c.ranked(0)
}

// Heatmap is a weekday by hour-bucket grid of message counts.
// Cells[i][j] is the count for Rows[i] and Columns[j].
type Heatmap struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

var heatmapRows = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
	time.Sunday.String(),
}

// ActivityHeatmap builds the full 7x24 grid; combinations with no messages are zero.
// Notifications are included.
func (e *Engine) ActivityHeatmap(f Filter, rs chatlog.RecordSet) Heatmap {
	hm := Heatmap{
		Rows:    append([]string(nil), heatmapRows...),
		Columns: make([]string, 24),
		Cells:   make([][]int, len(heatmapRows)),
	}
	for h := range hm.Columns {
		hm.Columns[h] = chatlog.PeriodLabel(h)
	}
	for i := range hm.Cells {
		hm.Cells[i] = make([]int, 24)
	}

	f.narrow(rs).Each(func(r chatlog.Record) {
		row := (int(r.Timestamp.Weekday()) + 6) % 7 // Monday first
		hm.Cells[row][r.Hour]++
	})
	return hm
}
