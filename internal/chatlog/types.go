package chatlog

import "time"

const (
	// NotificationSender marks entries with no human author (joins, renames, encryption notices).
	NotificationSender = "group_notification"

	// MediaOmitted is the body WhatsApp writes when an export excludes attachments.
	MediaOmitted = "<Media omitted>"

	// OverallOption is prepended to the sender list to select every sender.
	OverallOption = "Overall"
)

// Record is a single message parsed from an export.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`

	Year      int       `json:"year"`
	MonthName string    `json:"month_name"`
	MonthNum  int       `json:"month_num"`
	Day       int       `json:"day"`
	Weekday   string    `json:"weekday"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	Period    string    `json:"period"` // "13-14", "23-00"
	Date      time.Time `json:"date"`
}

// IsNotification reports whether the record is a system entry.
func (r Record) IsNotification() bool {
	return r.Sender == NotificationSender
}

// IsMedia reports whether the body is the omitted-media placeholder.
func (r Record) IsMedia() bool {
	return r.Body == MediaOmitted
}

func newRecord(ts time.Time, sender, body string) Record {
	h := ts.Hour()
	return Record{
		Timestamp: ts,
		Sender:    sender,
		Body:      body,
		Year:      ts.Year(),
		MonthName: ts.Month().String(),
		MonthNum:  int(ts.Month()),
		Day:       ts.Day(),
		Weekday:   ts.Weekday().String(),
		Hour:      h,
		Minute:    ts.Minute(),
		Period:    PeriodLabel(h),
		Date:      time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
	}
}
