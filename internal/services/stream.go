package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// Progress record statuses emitted by the analysis endpoint.
const (
	StatusProgress = "progress"
	StatusComplete = "complete"
	StatusError    = "error"
)

// ProgressRecord is one unit of a streamed status update, delivered as
// a newline-delimited JSON object.
type ProgressRecord struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Percent float64         `json:"percent"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Terminal reports whether this is the final record of a stream.
func (r *ProgressRecord) Terminal() bool {
	return r.Status == StatusComplete
}

// ProgressStream consumes newline-delimited JSON progress records from
// a response body. Records may be split arbitrarily across read chunks;
// the buffered reader reassembles complete lines before parsing.
// Malformed lines are logged and skipped so isolated corrupt records do
// not kill the stream.
type ProgressStream struct {
	body   io.ReadCloser
	r      *bufio.Reader
	logger *log.Logger
	done   bool
	closed bool
}

// NewProgressStream wraps a response body in a progress stream.
func NewProgressStream(body io.ReadCloser, logger *log.Logger) *ProgressStream {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ProgressStream{
		body:   body,
		r:      bufio.NewReader(body),
		logger: logger,
	}
}

// Next returns the next progress record.
//
// After the terminal record, and when the underlying stream is
// exhausted, Next returns [io.EOF]. A record with status "error"
// closes the stream and yields a [shared.StreamError] carrying the
// record's message.
func (s *ProgressStream) Next() (*ProgressRecord, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		line, err := s.r.ReadString('\n')
		if err != nil && err != io.EOF {
			s.Close()
			return nil, fmt.Errorf("stream read failed: %w", err)
		}

		atEOF := err == io.EOF
		line = strings.TrimSpace(line)

		if line != "" {
			var record ProgressRecord
			if uerr := json.Unmarshal([]byte(line), &record); uerr != nil {
				s.logger.Warn("skipping malformed progress record", "line", line, "err", uerr)
			} else {
				switch record.Status {
				case StatusError:
					s.done = true
					s.Close()
					return nil, &shared.StreamError{Message: record.Message}
				case StatusComplete:
					// Terminal record: stop reading and release the
					// transport rather than draining further bytes.
					s.done = true
					s.Close()
					return &record, nil
				default:
					if atEOF {
						s.done = true
						s.Close()
					}
					return &record, nil
				}
			}
		}

		if atEOF {
			s.done = true
			s.Close()
			return nil, io.EOF
		}
	}
}

// Close releases the underlying response body. Safe to call more than once.
func (s *ProgressStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
