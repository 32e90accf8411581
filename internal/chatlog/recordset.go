package chatlog

import (
	"fmt"
	"sort"
)

// RecordSet is the ordered, read-only result of parsing one export.
// The zero value is an empty set.
type RecordSet struct {
	records []Record
}

// Len returns the number of records, notifications included.
func (rs RecordSet) Len() int {
	return len(rs.records)
}

// Records returns a copy of the records in export order.
func (rs RecordSet) Records() []Record {
	out := make([]Record, len(rs.records))
	copy(out, rs.records)
	return out
}

// Each calls fn for every record in export order without copying the set.
func (rs RecordSet) Each(fn func(Record)) {
	for _, r := range rs.records {
		fn(r)
	}
}

// BySender returns the records written by sender, in order.
func (rs RecordSet) BySender(sender string) RecordSet {
	var out []Record
	for _, r := range rs.records {
		if r.Sender == sender {
			out = append(out, r)
		}
	}
	return RecordSet{records: out}
}

// Senders returns the distinct human senders sorted ascending.
func (rs RecordSet) Senders() []string {
	seen := make(map[string]bool)
	var senders []string
	for _, r := range rs.records {
		if r.IsNotification() || seen[r.Sender] {
			continue
		}
		seen[r.Sender] = true
		senders = append(senders, r.Sender)
	}
	sort.Strings(senders)
	return senders
}

// SenderOptions returns Senders with OverallOption prepended.
func (rs RecordSet) SenderOptions() []string {
	return append([]string{OverallOption}, rs.Senders()...)
}

// HasSender reports whether any record was written by sender.
func (rs RecordSet) HasSender(sender string) bool {
	for _, r := range rs.records {
		if r.Sender == sender {
			return true
		}
	}
	return false
}

// Span returns the first and last record, ok is false for an empty set.
func (rs RecordSet) Span() (first, last Record, ok bool) {
	if len(rs.records) == 0 {
		return Record{}, Record{}, false
	}
	return rs.records[0], rs.records[len(rs.records)-1], true
}

// PeriodLabel returns the heatmap bucket for an hour of the day, e.g. 13 -> "13-14", 23 -> "23-00".
func PeriodLabel(hour int) string {
	return fmt.Sprintf("%02d-%02d", hour, (hour+1)%24)
}
