package services

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lilpaoo/jimbo/internal/shared"
	th "github.com/lilpaoo/jimbo/internal/testing"
)

const sampleStream = `{"status": "progress", "message": "Extracting frames...", "percent": 5}
{"status": "progress", "message": "Tracking joints...", "percent": 40}
{"status": "progress", "message": "Scoring...", "percent": 90}
{"status": "complete", "message": "Done", "percent": 100, "data": {"analysis_markdown": "ok"}}
`

func collectRecords(t *testing.T, s *ProgressStream) []*ProgressRecord {
	t.Helper()
	var records []*ProgressRecord
	for {
		record, err := s.Next()
		if err == io.EOF {
			return records
		}
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		records = append(records, record)
		if record.Terminal() {
			return records
		}
	}
}

func TestProgressStream(t *testing.T) {
	t.Run("parses records up to the terminal one", func(t *testing.T) {
		stream := NewProgressStream(io.NopCloser(strings.NewReader(sampleStream)), nil)
		records := collectRecords(t, stream)

		if len(records) != 4 {
			t.Fatalf("expected 4 records, got %d", len(records))
		}
		if records[1].Percent != 40 || records[1].Message != "Tracking joints..." {
			t.Errorf("unexpected record: %+v", records[1])
		}
		if !records[3].Terminal() {
			t.Error("expected last record terminal")
		}
		if len(records[3].Data) == 0 {
			t.Error("expected terminal payload")
		}
	})

	t.Run("record parsing is chunk-size invariant", func(t *testing.T) {
		// Records split at arbitrary byte boundaries must decode the
		// same as a single read.
		for _, chunkSize := range []int{1, 3, 7, 16, 64, 4096} {
			stream := NewProgressStream(th.NewChunkedReadCloser(sampleStream, chunkSize), nil)
			records := collectRecords(t, stream)

			if len(records) != 4 {
				t.Errorf("chunk size %d: expected 4 records, got %d", chunkSize, len(records))
				continue
			}
			if records[2].Percent != 90 {
				t.Errorf("chunk size %d: unexpected record %+v", chunkSize, records[2])
			}
		}
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		input := `{"status": "progress", "message": "a", "percent": 1}
this is not json
{"status": "complete", "message": "Done", "percent": 100}
`
		stream := NewProgressStream(io.NopCloser(strings.NewReader(input)), nil)
		records := collectRecords(t, stream)

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("error record ends the stream with its message", func(t *testing.T) {
		input := `{"status": "progress", "message": "a", "percent": 1}
{"status": "error", "message": "Could not detect a person in the video."}
{"status": "progress", "message": "never seen", "percent": 99}
`
		stream := NewProgressStream(io.NopCloser(strings.NewReader(input)), nil)

		if _, err := stream.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := stream.Next()
		var streamErr *shared.StreamError
		if !errors.As(err, &streamErr) {
			t.Fatalf("expected StreamError, got %v", err)
		}
		if streamErr.Message != "Could not detect a person in the video." {
			t.Errorf("unexpected message: %q", streamErr.Message)
		}

		if _, err := stream.Next(); err != io.EOF {
			t.Errorf("expected EOF after error record, got %v", err)
		}
	})

	t.Run("trailing record without a newline still parses", func(t *testing.T) {
		input := `{"status": "progress", "message": "a", "percent": 1}
{"status": "progress", "message": "b", "percent": 2}`
		stream := NewProgressStream(io.NopCloser(strings.NewReader(input)), nil)

		first, err := stream.Next()
		if err != nil || first.Message != "a" {
			t.Fatalf("unexpected first record: %+v, %v", first, err)
		}
		second, err := stream.Next()
		if err != nil || second.Message != "b" {
			t.Fatalf("unexpected second record: %+v, %v", second, err)
		}
		if _, err := stream.Next(); err != io.EOF {
			t.Errorf("expected EOF, got %v", err)
		}
	})

	t.Run("stream exhausted without terminal record yields EOF", func(t *testing.T) {
		input := `{"status": "progress", "message": "a", "percent": 1}
`
		stream := NewProgressStream(io.NopCloser(strings.NewReader(input)), nil)

		if _, err := stream.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := stream.Next(); err != io.EOF {
			t.Errorf("expected EOF, got %v", err)
		}
	})

	t.Run("Close is idempotent", func(t *testing.T) {
		stream := NewProgressStream(io.NopCloser(strings.NewReader(sampleStream)), nil)
		if err := stream.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := stream.Close(); err != nil {
			t.Fatalf("unexpected error on second close: %v", err)
		}
	})
}
