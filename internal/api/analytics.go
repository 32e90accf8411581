package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/chatlens/internal/analytics"
	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
	"github.com/MikeSquared-Agency/chatlens/internal/events"
)

// filterFrom reads ?sender=, defaulting to Overall. Unknown senders are not
// rejected; they simply select nothing.
func filterFrom(r *http.Request) analytics.Filter {
	if v := r.URL.Query().Get("sender"); v != "" {
		return analytics.Filter(v)
	}
	return analytics.Overall
}

// maxQueryLimit bounds ?top= and ?limit=.
const maxQueryLimit = 1000

// positiveParam parses an optional integer query parameter in 1..maxQueryLimit.
// Zero means unset.
func positiveParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxQueryLimit {
		return 0, fmt.Errorf("%s must be an integer between 1 and %d", name, maxQueryLimit)
	}
	return n, nil
}

// query adapts an engine query to a handler.
func query[T any](fn func(analytics.Filter, chatlog.RecordSet) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fn(filterFrom(r), sessionFrom(r).Records))
	}
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	query(s.engine.FetchStats)(w, r)
}

func (s *Server) monthlyTimeline(w http.ResponseWriter, r *http.Request) {
	query(s.engine.MonthlyTimeline)(w, r)
}

func (s *Server) dailyTimeline(w http.ResponseWriter, r *http.Request) {
	query(s.engine.DailyTimeline)(w, r)
}

func (s *Server) weekActivity(w http.ResponseWriter, r *http.Request) {
	query(s.engine.WeekActivity)(w, r)
}

func (s *Server) monthActivity(w http.ResponseWriter, r *http.Request) {
	query(s.engine.MonthActivity)(w, r)
}

func (s *Server) activityHeatmap(w http.ResponseWriter, r *http.Request) {
	query(s.engine.ActivityHeatmap)(w, r)
}

func (s *Server) words(w http.ResponseWriter, r *http.Request) {
	query(s.engine.CommonWordsEmojisProfanity)(w, r)
}

// sensitive answers null, not an empty list, when nothing matched.
func (s *Server) sensitive(w http.ResponseWriter, r *http.Request) {
	query(s.engine.SensitiveMessages)(w, r)
}

// activeUsers handles GET .../users/active. The ranking only makes sense
// across every sender, so a narrowed filter is rejected.
func (s *Server) activeUsers(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	if !f.IsOverall() {
		writeError(w, http.StatusBadRequest, "most active users is only available for "+string(analytics.Overall))
		return
	}
	top, err := positiveParam(r, "top")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	au := s.engine.WithLimits(analytics.Options{TopUsers: top}).MostActiveUsers(f, sessionFrom(r).Records)
	writeJSON(w, http.StatusOK, au)
}

func (s *Server) wordCloud(w http.ResponseWriter, r *http.Request) {
	limit, err := positiveParam(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tags := s.engine.WithLimits(analytics.Options{CloudWords: limit}).WordCloud(filterFrom(r), sessionFrom(r).Records)
	writeJSON(w, http.StatusOK, tags)
}

// report handles GET .../report and announces the generated report.
func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	rep := s.engine.BuildReport(filterFrom(r), sess.Records)
	s.publish(events.SubjectReportGenerated, events.NewReportGenerated(sess.ID, rep, s.now()))
	writeJSON(w, http.StatusOK, rep)
}
