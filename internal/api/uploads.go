package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
	"github.com/MikeSquared-Agency/chatlens/internal/events"
)

const uploadField = "file"

// UploadResponse describes a stored upload.
type UploadResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Records   int        `json:"records"`
	Senders   []string   `json:"senders"`
	CreatedAt time.Time  `json:"created_at"`
	First     *time.Time `json:"first_message,omitempty"`
	Last      *time.Time `json:"last_message,omitempty"`
}

// createUpload handles POST /api/v1/uploads. The export is read from the
// multipart field "file" or, for any other content type, the raw body.
func (s *Server) createUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	dayFirst := s.opts.DayFirst
	if v := r.URL.Query().Get("day_first"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid day_first: %v", err))
			return
		}
		dayFirst = b
	}

	name, data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty upload")
		return
	}

	opts := []chatlog.Option{chatlog.WithLocation(s.opts.Location)}
	if dayFirst {
		opts = append(opts, chatlog.WithDayFirst())
	}
	rs, err := chatlog.ParseReader(bytes.NewReader(data), opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := s.sessions.Create(name, rs)
	s.logger.Info("upload parsed",
		"session_id", sess.ID,
		"bytes", len(data),
		"records", rs.Len(),
		"day_first", dayFirst,
	)
	s.publish(events.SubjectUploadParsed, events.NewUploadParsed(sess.ID, rs, s.now()))

	writeJSON(w, http.StatusCreated, uploadResponse(sess.ID.String(), sess.Name, rs, sess.CreatedAt))
}

func readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, fmt.Errorf("read body: %w", err)
		}
		return "", data, nil
	}

	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("missing %q form file: %w", uploadField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read form file: %w", err)
	}
	return hdr.Filename, data, nil
}

func uploadResponse(id, name string, rs chatlog.RecordSet, created time.Time) UploadResponse {
	resp := UploadResponse{
		ID:        id,
		Name:      name,
		Records:   rs.Len(),
		Senders:   rs.SenderOptions(),
		CreatedAt: created,
	}
	if first, last, ok := rs.Span(); ok {
		resp.First = &first.Timestamp
		resp.Last = &last.Timestamp
	}
	return resp
}

// getUpload handles GET /api/v1/uploads/{id}.
func (s *Server) getUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, http.StatusOK, uploadResponse(sess.ID.String(), sess.Name, sess.Records, sess.CreatedAt))
}

// deleteUpload handles DELETE /api/v1/uploads/{id}.
func (s *Server) deleteUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Delete(sess.ID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Info("upload discarded", "session_id", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// senders handles GET /api/v1/uploads/{id}/senders.
func (s *Server) senders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Records.SenderOptions())
}
