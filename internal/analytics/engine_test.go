package analytics

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
	"github.com/MikeSquared-Agency/chatlens/internal/lexicon"
)

const fixture = `01/02/23, 09:00 - Group created
01/02/23, 09:01 - Alice joined using this group's invite link
01/02/23, 10:00 - Alice: hello world 😂😂
01/02/23, 10:05 - Bob: hi https://go.dev
01/02/23, 23:30 - Alice: <Media omitted>
02/15/23, 08:00 - Bob: what the hell is this shit 👍🏽
02/15/23, 08:10 - Carol: hello again, world!
03/01/24, 12:00 - Alice: I will kill you for eating my pizza
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	lx, err := lexicon.Default()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return New(lx, DefaultOptions())
}

func TestNew_DefaultsLimits(t *testing.T) {
	e := New(nil, Options{TopUsers: 3})
	opts := e.Options()
	if opts.TopUsers != 3 {
		t.Errorf("expected TopUsers 3, got %d", opts.TopUsers)
	}
	if opts.TopWords != 20 || opts.CloudWords != 100 {
		t.Errorf("expected defaults for unset limits, got %+v", opts)
	}
}

func TestWithLimits(t *testing.T) {
	base := New(nil, Options{TopUsers: 1, TopWords: 2, CloudWords: 3})
	e := base.WithLimits(Options{TopUsers: 10})

	if got := e.Options(); got != (Options{TopUsers: 10, TopWords: 2, CloudWords: 3}) {
		t.Errorf("unexpected limits %+v", got)
	}
	if base.Options().TopUsers != 1 {
		t.Error("expected the original engine to keep its limits")
	}
}

func TestFilter_IsOverall(t *testing.T) {
	if !Overall.IsOverall() || !Filter("").IsOverall() {
		t.Error("expected Overall and empty filter to select everyone")
	}
	if Filter("Alice").IsOverall() {
		t.Error("expected named filter not to be Overall")
	}
}

func TestFetchStats_Scenario(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 10:00 - Alice: hello world\n01/02/23, 10:05 - Bob: hi\n")

	got := e.FetchStats(Overall, rs)
	want := Stats{Messages: 2, Words: 3}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFetchStats_NotificationOnly(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 09:00 - Group created\n")

	stats := e.FetchStats(Overall, rs)
	if stats.Messages != 1 || stats.Notifications != 1 {
		t.Errorf("expected notification counted in messages, got %+v", stats)
	}
	if stats.Words != 0 {
		t.Errorf("expected notification words excluded, got %d", stats.Words)
	}

	users := e.MostActiveUsers(Overall, rs)
	if len(users.Top) != 0 || len(users.Shares) != 0 {
		t.Errorf("expected no active users, got %+v", users)
	}
	words := e.CommonWordsEmojisProfanity(Overall, rs)
	if len(words.Words) != 0 {
		t.Errorf("expected no common words, got %v", words.Words)
	}
}

func TestFetchStats_MediaScenario(t *testing.T) {
	e := newTestEngine(t)
	base := chatlog.Parse("01/02/23, 10:00 - Alice: hello world\n")
	withMedia := chatlog.Parse("01/02/23, 10:00 - Alice: hello world\n01/02/23, 10:01 - Alice: <Media omitted>\n")

	a, b := e.FetchStats(Overall, base), e.FetchStats(Overall, withMedia)
	if b.Media-a.Media != 1 {
		t.Errorf("expected media to increase by 1, got %d -> %d", a.Media, b.Media)
	}
	if b.Words != a.Words {
		t.Errorf("expected media to add no words, got %d -> %d", a.Words, b.Words)
	}
}

func TestFetchStats_Fixture(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)

	tests := []struct {
		filter Filter
		want   Stats
	}{
		{Overall, Stats{Messages: 8, Notifications: 2, Words: 23, Media: 1, Links: 1}},
		{"Alice", Stats{Messages: 3, Words: 11, Media: 1}},
		{"Bob", Stats{Messages: 2, Words: 9, Links: 1}},
		{"Zed", Stats{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			if got := e.FetchStats(tt.filter, rs); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFetchStats_MultipleLinksInOneBody(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 10:00 - Alice: see https://go.dev and www.example.com/docs\n")

	if got := e.FetchStats(Overall, rs).Links; got != 2 {
		t.Errorf("expected 2 links, got %d", got)
	}
}

func TestFetchStats_FileNamesAreNotLinks(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 10:00 - Alice: see main.py notes.md ok.so and www.example.org\n")

	if got := e.FetchStats(Overall, rs).Links; got != 1 {
		t.Errorf("expected 1 link, got %d", got)
	}
}

func TestMonthlyTimeline(t *testing.T) {
	e := newTestEngine(t)
	got := e.MonthlyTimeline(Overall, chatlog.Parse(fixture))

	want := []MonthPoint{
		{Year: 2023, MonthNum: 1, MonthName: "January", Label: "January-2023", Messages: 5},
		{Year: 2023, MonthNum: 2, MonthName: "February", Label: "February-2023", Messages: 2},
		{Year: 2024, MonthNum: 3, MonthName: "March", Label: "March-2024", Messages: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestMonthlyTimeline_ChronologicalNotAlphabetical(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(strings.Join([]string{
		"12/01/22, 10:00 - Alice: december",
		"04/01/23, 10:00 - Alice: april",
		"01/01/23, 10:00 - Alice: january, out of order",
	}, "\n"))

	got := e.MonthlyTimeline(Overall, rs)
	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Label
	}
	want := []string{"December-2022", "January-2023", "April-2023"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("expected %v, got %v", want, labels)
	}
}

func TestDailyTimeline(t *testing.T) {
	e := newTestEngine(t)
	got := e.DailyTimeline(Overall, chatlog.Parse(fixture))

	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	wantLabels := []string{"2023-01-02", "2023-02-15", "2024-03-01"}
	wantCounts := []int{5, 2, 1}
	for i, p := range got {
		if p.Label != wantLabels[i] || p.Messages != wantCounts[i] {
			t.Errorf("day[%d] = %s/%d, want %s/%d", i, p.Label, p.Messages, wantLabels[i], wantCounts[i])
		}
		if i > 0 && p.Date.Before(got[i-1].Date) {
			t.Errorf("day[%d] out of order", i)
		}
	}
}

func TestWeekAndMonthActivity(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)

	week := e.WeekActivity(Overall, rs)
	wantWeek := []LabelCount{{"Monday", 5}, {"Wednesday", 2}, {"Friday", 1}}
	if !reflect.DeepEqual(week, wantWeek) {
		t.Errorf("expected %v, got %v", wantWeek, week)
	}

	month := e.MonthActivity(Overall, rs)
	wantMonth := []LabelCount{{"January", 5}, {"February", 2}, {"March", 1}}
	if !reflect.DeepEqual(month, wantMonth) {
		t.Errorf("expected %v, got %v", wantMonth, month)
	}
}

func TestMonthActivity_AggregatesAcrossYears(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(strings.Join([]string{
		"03/01/22, 10:00 - Alice: a",
		"03/01/23, 10:00 - Alice: b",
		"05/01/23, 10:00 - Alice: c",
	}, "\n"))

	got := e.MonthActivity(Overall, rs)
	want := []LabelCount{{"March", 2}, {"May", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestActivityHeatmap(t *testing.T) {
	e := newTestEngine(t)
	hm := e.ActivityHeatmap(Overall, chatlog.Parse(fixture))

	if len(hm.Rows) != 7 || len(hm.Columns) != 24 || len(hm.Cells) != 7 {
		t.Fatalf("expected 7x24 grid, got %dx%d", len(hm.Rows), len(hm.Columns))
	}
	if hm.Rows[0] != "Monday" || hm.Rows[6] != "Sunday" {
		t.Errorf("unexpected row order %v", hm.Rows)
	}
	if hm.Columns[0] != "00-01" || hm.Columns[23] != "23-00" {
		t.Errorf("unexpected column labels %v", hm.Columns)
	}

	checks := []struct {
		row, col, want int
	}{
		{0, 9, 2},  // Monday 09-10
		{0, 10, 2}, // Monday 10-11
		{0, 23, 1}, // Monday 23-00
		{2, 8, 2},  // Wednesday 08-09
		{4, 12, 1}, // Friday 12-13
		{6, 0, 0},
	}
	for _, c := range checks {
		if got := hm.Cells[c.row][c.col]; got != c.want {
			t.Errorf("cell[%s][%s] = %d, want %d", hm.Rows[c.row], hm.Columns[c.col], got, c.want)
		}
	}

	total := 0
	for _, row := range hm.Cells {
		if len(row) != 24 {
			t.Fatalf("expected 24 columns, got %d", len(row))
		}
		for _, n := range row {
			total += n
		}
	}
	if total != 8 {
		t.Errorf("expected heatmap to sum to 8, got %d", total)
	}
}

func TestActivityHeatmap_Empty(t *testing.T) {
	e := newTestEngine(t)
	hm := e.ActivityHeatmap(Overall, chatlog.RecordSet{})
	for _, row := range hm.Cells {
		for _, n := range row {
			if n != 0 {
				t.Fatal("expected zero-filled grid")
			}
		}
	}
}

func TestMostActiveUsers(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)
	got := e.MostActiveUsers(Overall, rs)

	wantTop := []LabelCount{{"Alice", 3}, {"Bob", 2}, {"Carol", 1}}
	if !reflect.DeepEqual(got.Top, wantTop) {
		t.Errorf("expected top %v, got %v", wantTop, got.Top)
	}

	wantShares := []UserShare{
		{Sender: "Alice", Messages: 3, Percent: 50},
		{Sender: "Bob", Messages: 2, Percent: 33.33},
		{Sender: "Carol", Messages: 1, Percent: 16.67},
	}
	if !reflect.DeepEqual(got.Shares, wantShares) {
		t.Errorf("expected shares %v, got %v", wantShares, got.Shares)
	}
}

func TestMostActiveUsers_TopLimit(t *testing.T) {
	lx, _ := lexicon.Default()
	e := New(lx, Options{TopUsers: 2})
	got := e.MostActiveUsers(Overall, chatlog.Parse(fixture))

	if len(got.Top) != 2 {
		t.Errorf("expected top limited to 2, got %d", len(got.Top))
	}
	if len(got.Shares) != 3 {
		t.Errorf("expected shares for every sender, got %d", len(got.Shares))
	}
}

func TestMostActiveUsers_SingleSender(t *testing.T) {
	e := newTestEngine(t)
	got := e.MostActiveUsers("Bob", chatlog.Parse(fixture))

	if len(got.Shares) != 1 || got.Shares[0].Percent != 100 {
		t.Errorf("expected Bob at 100%%, got %+v", got.Shares)
	}
}

func TestCountConservation(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)

	stats := e.FetchStats(Overall, rs)
	sum := 0
	for _, s := range e.MostActiveUsers(Overall, rs).Shares {
		sum += s.Messages
	}
	if sum != stats.Messages-stats.Notifications {
		t.Errorf("expected per-sender sum %d to equal %d", sum, stats.Messages-stats.Notifications)
	}
}

func TestPercentageSum(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(strings.Join([]string{
		"01/02/23, 10:00 - Alice: a",
		"01/02/23, 10:00 - Bob: b",
		"01/02/23, 10:00 - Carol: c",
		"01/02/23, 10:00 - Dave: d",
		"01/02/23, 10:00 - Dave: d",
		"01/02/23, 10:00 - Erin: e",
		"01/02/23, 10:00 - Erin: e",
	}, "\n"))

	total := 0.0
	for _, s := range e.MostActiveUsers(Overall, rs).Shares {
		total += s.Percent
	}
	if math.Abs(total-100) > 0.5 {
		t.Errorf("expected percentages to sum to ~100, got %.2f", total)
	}
}

func TestCommonWordsEmojisProfanity(t *testing.T) {
	e := newTestEngine(t)
	got := e.CommonWordsEmojisProfanity(Overall, chatlog.Parse(fixture))

	if len(got.Words) < 2 {
		t.Fatalf("expected common words, got %v", got.Words)
	}
	if got.Words[0] != (LabelCount{"hello", 2}) || got.Words[1] != (LabelCount{"world", 2}) {
		t.Errorf("expected hello/world first in first-seen order, got %v", got.Words[:2])
	}
	for _, w := range got.Words {
		if w.Label == "the" || w.Label == "omitted" || w.Label == "created" {
			t.Errorf("unexpected word %q in common words", w.Label)
		}
	}

	wantEmojis := []LabelCount{{"\U0001F602", 2}, {"\U0001F44D\U0001F3FD", 1}}
	if !reflect.DeepEqual(got.Emojis, wantEmojis) {
		t.Errorf("expected emojis %v, got %v", wantEmojis, got.Emojis)
	}

	wantProfanity := []LabelCount{{"hell", 1}, {"shit", 1}}
	if !reflect.DeepEqual(got.Profanity, wantProfanity) {
		t.Errorf("expected profanity %v, got %v", wantProfanity, got.Profanity)
	}
}

func TestCommonWordsEmojisProfanity_NullCategories(t *testing.T) {
	e := newTestEngine(t)
	got := e.CommonWordsEmojisProfanity("Carol", chatlog.Parse(fixture))

	if got.Emojis != nil {
		t.Errorf("expected nil emojis, got %v", got.Emojis)
	}
	if got.Profanity != nil {
		t.Errorf("expected nil profanity, got %v", got.Profanity)
	}
	// "again" is a stopword.
	want := []LabelCount{{"hello", 1}, {"world", 1}}
	if !reflect.DeepEqual(got.Words, want) {
		t.Errorf("expected %v for Carol, got %v", want, got.Words)
	}
}

func TestCommonWords_TopLimit(t *testing.T) {
	lx, _ := lexicon.Default()
	e := New(lx, Options{TopWords: 3})
	got := e.CommonWordsEmojisProfanity(Overall, chatlog.Parse(fixture))
	if len(got.Words) != 3 {
		t.Errorf("expected 3 words, got %d", len(got.Words))
	}
}

func TestEmojis(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"no emoji here", nil},
		{"ok \U0001F44D", []string{"\U0001F44D"}},
		{"skin tone \U0001F44D\U0001F3FD", []string{"\U0001F44D\U0001F3FD"}},
		{"family \U0001F468\u200d\U0001F469\u200d\U0001F467 flag \U0001F1EE\U0001F1F3",
			[]string{"\U0001F468\u200d\U0001F469\u200d\U0001F467", "\U0001F1EE\U0001F1F3"}},
		{"love \u2764\ufe0f and \u2615", []string{"\u2764\ufe0f", "\u2615"}},
		{"keycap 1\ufe0f\u20e3", []string{"1\ufe0f\u20e3"}},
		{"done \u2713 \u2192 \u2605 \u2714 \u2318", []string{"\u2714"}},
		{"plain digits 123 #", nil},
	}
	for _, tt := range tests {
		if got := emojis(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("emojis(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenizer(t *testing.T) {
	tok := newTokenizer()
	got := tok.words("Hello, WORLD!! don't 😂 ... Straße")
	want := []string{"hello", "world", "don't", "strasse"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_TypographicApostrophe(t *testing.T) {
	got := newTokenizer().words("I\u2019m sure don\u2019t")
	want := []string{"i'm", "sure", "don't"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCommonWords_TypographicApostropheStopwords(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 10:00 - Alice: I\u2019m sure don\u2019t I'm\n")

	got := e.CommonWordsEmojisProfanity(Overall, rs).Words
	want := []LabelCount{{Label: "sure", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCommonWordsEmojisProfanity_SymbolsAreNotEmojis(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse("01/02/23, 10:00 - Alice: done \u2713 \u2192 \u2605 \u2714 \u2318\n")

	got := e.CommonWordsEmojisProfanity(Overall, rs).Emojis
	want := []LabelCount{{Label: "\u2714", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWordCloud(t *testing.T) {
	e := newTestEngine(t)
	tags := e.WordCloud(Overall, chatlog.Parse(fixture))

	if len(tags) == 0 {
		t.Fatal("expected cloud tags")
	}
	if tags[0].Word != "hello" || tags[0].Weight != 1 || tags[0].FontSize != 100 {
		t.Errorf("unexpected first tag %+v", tags[0])
	}
	last := tags[len(tags)-1]
	if last.Count != 1 || last.Weight != 0.5 || last.FontSize != 55 {
		t.Errorf("unexpected last tag %+v", last)
	}
	for _, tag := range tags {
		if e.lex.IsStopword(tag.Word) {
			t.Errorf("stopword %q in cloud", tag.Word)
		}
	}
}

func TestWordCloud_Empty(t *testing.T) {
	e := newTestEngine(t)
	tags := e.WordCloud(Overall, chatlog.Parse("01/02/23, 10:00 - Alice: <Media omitted>\n"))
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty non-nil tags, got %v", tags)
	}
}

func TestSensitiveMessages(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)

	got := e.SensitiveMessages(Overall, rs)
	if len(got) != 1 {
		t.Fatalf("expected 1 sensitive message, got %d", len(got))
	}
	if got[0].Sender != "Alice" || got[0].Category != "violence" {
		t.Errorf("unexpected match %+v", got[0])
	}
	if got[0].Timestamp.Year() != 2024 {
		t.Errorf("expected timestamp carried, got %v", got[0].Timestamp)
	}

	if e.SensitiveMessages("Bob", rs) != nil {
		t.Error("expected nil for sender without sensitive messages")
	}
}

func TestUnknownSender_ZeroResults(t *testing.T) {
	e := newTestEngine(t)
	rep := e.BuildReport("Zed", chatlog.Parse(fixture))

	if rep.Stats != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", rep.Stats)
	}
	if len(rep.MonthlyTimeline) != 0 || len(rep.DailyTimeline) != 0 || len(rep.WeekActivity) != 0 {
		t.Error("expected empty timelines")
	}
	if rep.Words.Emojis != nil || rep.Words.Profanity != nil || rep.Sensitive != nil {
		t.Error("expected null categories")
	}
	if rep.ActiveUsers != nil {
		t.Error("expected no active users section for a single sender")
	}
}

func TestEmptyRecordSet(t *testing.T) {
	e := newTestEngine(t)
	rep := e.BuildReport(Overall, chatlog.RecordSet{})

	if rep.Stats != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", rep.Stats)
	}
	if rep.ActiveUsers == nil || len(rep.ActiveUsers.Shares) != 0 {
		t.Errorf("expected empty active users, got %+v", rep.ActiveUsers)
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	rs := chatlog.Parse(fixture)

	first := e.BuildReport(Overall, rs)
	second := e.BuildReport(Overall, rs)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical reports for identical input")
	}
	if rs.Len() != 8 {
		t.Errorf("expected record set untouched, got %d records", rs.Len())
	}
}
