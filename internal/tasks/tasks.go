// package tasks implements long-running coaching operations with progress reporting.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/services"
	"github.com/lilpaoo/jimbo/internal/shared"
)

// ProgressUpdate is a status update emitted during an operation.
type ProgressUpdate struct {
	Message string  // Human-readable message for display
	Percent float64 // Completion percentage, 0-100
}

// Analyzer is the slice of the backend client the engine needs.
type Analyzer interface {
	AnalyzeForm(ctx context.Context, exerciseName string, video io.Reader, filename string) (*services.ProgressStream, error)
}

// AnalysisEngine runs video form analyses against the backend.
type AnalysisEngine struct {
	client Analyzer
	logger *log.Logger
}

// NewAnalysisEngine creates an AnalysisEngine over the given client.
func NewAnalysisEngine(client Analyzer, logger *log.Logger) *AnalysisEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AnalysisEngine{client: client, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls the analysis.
func (e *AnalysisEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run uploads the video at videoPath and consumes the progress stream
// until the terminal record, forwarding every update to progress. It
// returns the decoded analysis from the terminal record's payload.
//
// A stream that ends without a terminal record is an error: the
// analysis did not finish.
func (e *AnalysisEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, exerciseName, videoPath string) (*models.FormAnalysis, error) {
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name", shared.ErrMissingArgument)
	}
	if videoPath == "" {
		return nil, fmt.Errorf("%w: video file", shared.ErrMissingArgument)
	}

	video, err := os.Open(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	defer video.Close()

	stream, err := e.client.AnalyzeForm(ctx, exerciseName, video, filepath.Base(videoPath))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	e.logger.Debug("analysis started", "exercise", exerciseName, "video", videoPath)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := stream.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("analysis stream ended without a result")
		}
		if err != nil {
			return nil, err
		}

		e.sendProgress(progress, ProgressUpdate{Message: record.Message, Percent: record.Percent})

		if record.Terminal() {
			if len(record.Data) == 0 {
				return nil, fmt.Errorf("analysis completed without a payload")
			}
			var result models.FormAnalysis
			if err := json.Unmarshal(record.Data, &result); err != nil {
				return nil, fmt.Errorf("malformed analysis payload: %w", err)
			}
			return &result, nil
		}
	}
}
