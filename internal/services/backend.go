// Backend API client for the coaching service
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/shared"
)

// Backend provides methods for calling the coaching backend's REST and
// streaming endpoints. All responses, including errors, are expected to
// carry a JSON body.
type Backend struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewBackend creates a backend client. baseURL defaults to the local
// development server, client to [http.DefaultClient].
func NewBackend(baseURL string, client *http.Client, logger *log.Logger) *Backend {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Backend{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// BackendSettings is the payload of GET /config.
type BackendSettings struct {
	GoogleClientID string `json:"google_client_id"`
}

// call performs a JSON request-response round trip. A connection-level
// failure is normalized to [shared.UnreachableError]; a non-2xx status
// to [shared.RemoteError] with the body's "error" field as message.
func (b *Backend) call(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return &shared.UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp.StatusCode, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// remoteError builds a RemoteError from an error response body,
// falling back to a generic status message when the body carries no
// usable "error" field.
func remoteError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := fmt.Sprintf("HTTP error! status: %d", status)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &shared.RemoteError{StatusCode: status, Message: msg}
}

// Settings retrieves backend-published client configuration.
func (b *Backend) Settings(ctx context.Context) (*BackendSettings, error) {
	var settings BackendSettings
	if err := b.call(ctx, http.MethodGet, "/config", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Exercises retrieves the catalog of exercises available for form analysis.
func (b *Backend) Exercises(ctx context.Context) ([]string, error) {
	var exercises []string
	if err := b.call(ctx, http.MethodGet, "/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// GenerateWorkout requests a new training plan.
func (b *Backend) GenerateWorkout(ctx context.Context, req models.WorkoutRequest) (*models.WorkoutPlan, error) {
	var plan models.WorkoutPlan
	if err := b.call(ctx, http.MethodPost, "/generate-workout", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateNutrition requests a new nutrition plan.
func (b *Backend) GenerateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionPlan, error) {
	var plan models.NutritionPlan
	if err := b.call(ctx, http.MethodPost, "/generate-nutrition-plan", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// EvaluatePlan submits the original plan and all check-ins for a
// progress evaluation.
func (b *Backend) EvaluatePlan(ctx context.Context, plan *models.WorkoutPlan, checkIns []models.CheckIn) (*models.Evaluation, error) {
	body := struct {
		OriginalPlan *models.WorkoutPlan `json:"original_plan"`
		CheckIns     []models.CheckIn    `json:"check_ins"`
	}{plan, checkIns}

	var eval models.Evaluation
	if err := b.call(ctx, http.MethodPost, "/evaluate-plan", body, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// ChatWithPlan sends one chat message in the context of a plan and its
// conversation history, returning the assistant's reply.
func (b *Backend) ChatWithPlan(ctx context.Context, contextPlan any, history []models.ChatTurn, message string) (string, error) {
	body := struct {
		ContextPlan any               `json:"context_plan"`
		History     []models.ChatTurn `json:"history"`
		Message     string            `json:"message"`
	}{contextPlan, history, message}

	var reply struct {
		Response string `json:"response"`
	}
	if err := b.call(ctx, http.MethodPost, "/chat-with-plan", body, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}

// AnalyzeForm uploads a video for form analysis and returns the
// progress stream. The multipart content type (including its boundary)
// comes from the multipart writer, never set by hand.
func (b *Backend) AnalyzeForm(ctx context.Context, exerciseName string, video io.Reader, filename string) (*ProgressStream, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("exercise_name", exerciseName); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := writer.CreateFormFile("video", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, fmt.Errorf("failed to buffer video: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/analyze-form", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &shared.UnreachableError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return nil, remoteError(resp.StatusCode, data)
	}

	return NewProgressStream(resp.Body, b.logger), nil
}
