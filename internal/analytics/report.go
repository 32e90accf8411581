package analytics

import "github.com/MikeSquared-Agency/chatlens/internal/chatlog"

// Report bundles every query for one filter, in dashboard order.
type Report struct {
	Filter          Filter             `json:"filter"`
	Stats           Stats              `json:"stats"`
	MonthlyTimeline []MonthPoint       `json:"monthly_timeline"`
	DailyTimeline   []DayPoint         `json:"daily_timeline"`
	WeekActivity    []LabelCount       `json:"week_activity"`
	MonthActivity   []LabelCount       `json:"month_activity"`
	Heatmap         Heatmap            `json:"heatmap"`
	ActiveUsers     *ActiveUsers       `json:"active_users,omitempty"` // Overall only
	WordCloud       []CloudTag         `json:"word_cloud"`
	Words           WordInsights       `json:"words"`
	Sensitive       []SensitiveMessage `json:"sensitive"`
}

// BuildReport runs each query in turn for f.
func (e *Engine) BuildReport(f Filter, rs chatlog.RecordSet) Report {
	if f == "" {
		f = Overall
	}
	r := Report{
		Filter:          f,
		Stats:           e.FetchStats(f, rs),
		MonthlyTimeline: e.MonthlyTimeline(f, rs),
		DailyTimeline:   e.DailyTimeline(f, rs),
		WeekActivity:    e.WeekActivity(f, rs),
		MonthActivity:   e.MonthActivity(f, rs),
		Heatmap:         e.ActivityHeatmap(f, rs),
		WordCloud:       e.WordCloud(f, rs),
		Words:           e.CommonWordsEmojisProfanity(f, rs),
		Sensitive:       e.SensitiveMessages(f, rs),
	}
	if f.IsOverall() {
		au := e.MostActiveUsers(f, rs)
		r.ActiveUsers = &au
	}
	return r
}
