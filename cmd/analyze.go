package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/lilpaoo/jimbo/internal/formatter"
	"github.com/lilpaoo/jimbo/internal/tasks"
	"github.com/lilpaoo/jimbo/internal/ui"
)

// Analyze uploads a video for form analysis, showing either the
// interactive progress view or plain progress lines.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	exercise := cmd.String("exercise")
	videoPath := cmd.String("video")
	engine := tasks.NewAnalysisEngine(r.backend, r.logger)

	if cmd.Bool("plain") {
		return r.analyzePlain(ctx, engine, exercise, videoPath)
	}

	model := ui.NewAnalysisModel(ctx, engine, exercise, videoPath)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running analysis view: %w", err)
	}

	_, err := model.Result()
	return err
}

func (r *Runner) analyzePlain(ctx context.Context, engine *tasks.AnalysisEngine, exercise, videoPath string) error {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		for update := range progressCh {
			r.writePlain("[%3.0f%%] %s\n", update.Percent, update.Message)
		}
		close(done)
	}()

	result, err := engine.Run(ctx, progressCh, exercise, videoPath)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}
	return r.writePlain("\n%s", formatter.FormatFormAnalysis(result))
}
