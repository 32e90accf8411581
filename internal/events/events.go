// Package events announces upload and report activity on NATS. Payloads
// carry counts and identifiers only, never message bodies or sender names.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/chatlens/internal/analytics"
	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

const (
	SubjectUploadParsed    = "chatlens.upload.parsed"
	SubjectReportGenerated = "chatlens.report.generated"
)

// Publisher is the subset of Client the API depends on.
type Publisher interface {
	Publish(subject string, data any) error
}

// UploadParsed is emitted once per accepted upload.
type UploadParsed struct {
	SessionID    string     `json:"session_id"`
	Records      int        `json:"records"`
	Senders      int        `json:"senders"`
	FirstMessage *time.Time `json:"first_message,omitempty"`
	LastMessage  *time.Time `json:"last_message,omitempty"`
	Timestamp    string     `json:"timestamp"`
}

// ReportGenerated is emitted whenever a full report is built.
type ReportGenerated struct {
	SessionID      string          `json:"session_id"`
	Overall        bool            `json:"overall"`
	Stats          analytics.Stats `json:"stats"`
	SensitiveCount int             `json:"sensitive_count"`
	Timestamp      string          `json:"timestamp"`
}

// NewUploadParsed summarises a freshly parsed record set.
func NewUploadParsed(id uuid.UUID, rs chatlog.RecordSet, now time.Time) UploadParsed {
	evt := UploadParsed{
		SessionID: id.String(),
		Records:   rs.Len(),
		Senders:   len(rs.Senders()),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	if first, last, ok := rs.Span(); ok {
		evt.FirstMessage = &first.Timestamp
		evt.LastMessage = &last.Timestamp
	}
	return evt
}

// NewReportGenerated summarises a report without exposing who it was filtered to.
func NewReportGenerated(id uuid.UUID, rep analytics.Report, now time.Time) ReportGenerated {
	return ReportGenerated{
		SessionID:      id.String(),
		Overall:        rep.Filter.IsOverall(),
		Stats:          rep.Stats,
		SensitiveCount: len(rep.Sensitive),
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
}
