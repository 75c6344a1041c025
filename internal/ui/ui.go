package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lilpaoo/jimbo/internal/formatter"
	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/tasks"
)

type progressMsg tasks.ProgressUpdate

type analysisCompleteMsg struct {
	result *models.FormAnalysis
	err    error
}

// AnalysisModel drives the analyze view: a progress bar while the
// backend scores the video, then the rendered result.
type AnalysisModel struct {
	ctx          context.Context
	engine       *tasks.AnalysisEngine
	exercise     string
	videoPath    string
	bar          progress.Model
	progressChan chan tasks.ProgressUpdate
	current      tasks.ProgressUpdate
	result       *models.FormAnalysis
	err          error
	done         bool
	width        int
}

// NewAnalysisModel creates the analyze view for one video.
func NewAnalysisModel(ctx context.Context, engine *tasks.AnalysisEngine, exercise, videoPath string) *AnalysisModel {
	return &AnalysisModel{
		ctx:       ctx,
		engine:    engine,
		exercise:  exercise,
		videoPath: videoPath,
		bar:       progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the analysis in the background and begins draining its
// progress channel.
func (m *AnalysisModel) Init() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Run(m.ctx, m.progressChan, m.exercise, m.videoPath)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *AnalysisModel) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return analysisCompleteMsg{result: m.result, err: m.err}
		}
		return progressMsg(update)
	}
}

// Update handles incoming messages and updates the model state.
func (m *AnalysisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.current = tasks.ProgressUpdate(msg)
		cmd := m.bar.SetPercent(m.current.Percent / 100)
		return m, tea.Batch(cmd, m.waitForProgress())

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)
		return m, cmd

	case analysisCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress bar or the final result.
func (m *AnalysisModel) View() string {
	title := styles.title.Render(fmt.Sprintf("Analyzing %s", m.exercise))

	if m.done {
		if m.err != nil {
			return fmt.Sprintf("%s\n%s\n", title, styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		}
		return fmt.Sprintf("%s\n%s\n%s\n", title, styles.ok.Render("Analysis complete"), formatter.FormatFormAnalysis(m.result))
	}

	message := m.current.Message
	if message == "" {
		message = "Uploading video..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n",
		title,
		m.bar.View(),
		message,
		styles.help.Render("q to cancel"),
	)
}

// Result returns the analysis outcome after the program exits.
func (m *AnalysisModel) Result() (*models.FormAnalysis, error) {
	return m.result, m.err
}
