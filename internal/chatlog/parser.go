package chatlog

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// stampRe matches the header that opens every message in an export, e.g.
// "01/02/23, 10:00 - " or "1/2/2023, 9:05 pm - ".
var stampRe = regexp.MustCompile(`(?m)^(\d{1,2})/(\d{1,2})/(\d{4}|\d{2}), (\d{1,2}):(\d{2})(?: ?([AaPp])\.?[Mm]\.?)? - `)

// senderSep separates the author from the body. Notifications have none.
const senderSep = ": "

type parseOptions struct {
	dayFirst bool
	loc      *time.Location
}

// Option configures Parse.
type Option func(*parseOptions)

// WithDayFirst reads stamps as DD/MM/YY instead of MM/DD/YY.
func WithDayFirst() Option {
	return func(o *parseOptions) { o.dayFirst = true }
}

// WithLocation sets the location attached to parsed timestamps. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *parseOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// ParseReader reads an export and parses it. Invalid UTF-8 is repaired rather than rejected.
func ParseReader(r io.Reader, opts ...Option) (RecordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RecordSet{}, fmt.Errorf("read export: %w", err)
	}
	raw := string(data)
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, "\ufffd")
	}
	return Parse(raw, opts...), nil
}

// Parse converts raw export text into a RecordSet. Units whose stamp does not form a
// valid date are dropped; text before the first stamp is ignored. Parse never fails:
// empty or unrecognised input yields an empty set.
func Parse(raw string, opts ...Option) RecordSet {
	o := parseOptions{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	text := normalize(raw)
	matches := stampRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return RecordSet{}
	}

	records := make([]Record, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		ts, ok := parseStamp(text, m, o)
		if !ok {
			continue // malformed stamp
		}

		sender, body := splitSender(text[m[1]:end])
		records = append(records, newRecord(ts, sender, body))
	}

	return RecordSet{records: records}
}

func normalize(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = norm.NFC.String(raw)
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	// Newer exports put narrow no-break spaces before am/pm.
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(raw)
}

// parseStamp builds a timestamp from the submatch indexes of stampRe.
func parseStamp(text string, m []int, o parseOptions) (time.Time, bool) {
	group := func(n int) string {
		if m[2*n] < 0 {
			return ""
		}
		return text[m[2*n]:m[2*n+1]]
	}

	first, _ := strconv.Atoi(group(1))
	second, _ := strconv.Atoi(group(2))
	year, _ := strconv.Atoi(group(3))
	hour, _ := strconv.Atoi(group(4))
	minute, _ := strconv.Atoi(group(5))
	meridiem := strings.ToLower(group(6))

	month, day := first, second
	if o.dayFirst {
		month, day = second, first
	}
	if len(group(3)) == 2 {
		year += 2000
	}

	switch meridiem {
	case "":
		if hour > 23 {
			return time.Time{}, false
		}
	case "a", "p":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		hour %= 12
		if meridiem == "p" {
			hour += 12
		}
	}
	if minute > 59 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, o.loc)
	// time.Date normalises overflow (Feb 30 -> Mar 2); reject instead.
	if ts.Month() != time.Month(month) || ts.Day() != day {
		return time.Time{}, false
	}
	return ts, true
}

func splitSender(rest string) (sender, body string) {
	rest = strings.TrimRight(rest, "\n")
	if idx := strings.Index(rest, senderSep); idx >= 0 {
		return rest[:idx], rest[idx+len(senderSep):]
	}
	return NotificationSender, rest
}
