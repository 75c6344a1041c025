package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/shared"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("GenerateWorkout", func(t *testing.T) {
		var gotBody models.WorkoutRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/generate-workout" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(models.WorkoutPlan{Title: "Strength Base"})
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		req := models.WorkoutRequest{Goal: "strength", ExperienceLevel: "beginner", DaysPerWeek: 3, HoursPerDay: 1, AvailableEquipment: "barbell"}

		plan, err := backend.GenerateWorkout(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Title != "Strength Base" {
			t.Errorf("unexpected plan: %+v", plan)
		}
		if gotBody.Goal != "strength" || gotBody.DaysPerWeek != 3 {
			t.Errorf("unexpected request body: %+v", gotBody)
		}
	})

	t.Run("backend error body surfaces verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "db down"}`))
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		_, err := backend.GenerateWorkout(ctx, models.WorkoutRequest{})

		var remote *shared.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		if remote.StatusCode != 500 || remote.Message != "db down" {
			t.Errorf("unexpected error: status=%d message=%q", remote.StatusCode, remote.Message)
		}
	})

	t.Run("error body without an error field falls back to status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		_, err := backend.Exercises(ctx)

		var remote *shared.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		if remote.Message != "HTTP error! status: 502" {
			t.Errorf("unexpected fallback message: %q", remote.Message)
		}
	})

	t.Run("connection failure is an unreachable error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listening anymore

		backend := NewBackend(server.URL, nil, nil)
		_, err := backend.Exercises(ctx)

		var unreachable *shared.UnreachableError
		if !errors.As(err, &unreachable) {
			t.Fatalf("expected UnreachableError, got %v", err)
		}
		if err.Error() != shared.UnreachableMessage {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("ChatWithPlan", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				ContextPlan any               `json:"context_plan"`
				History     []models.ChatTurn `json:"history"`
				Message     string            `json:"message"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Message != "swap day two?" || len(body.History) != 1 {
				t.Errorf("unexpected chat body: %+v", body)
			}
			_, _ = w.Write([]byte(`{"response": "Sure, swap it."}`))
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		history := []models.ChatTurn{{Role: models.RoleUser, Content: "swap day two?"}}

		reply, err := backend.ChatWithPlan(ctx, &models.WorkoutPlan{Title: "t"}, history, "swap day two?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "Sure, swap it." {
			t.Errorf("unexpected reply: %q", reply)
		}
	})

	t.Run("EvaluatePlan sends plan and check-ins", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				OriginalPlan *models.WorkoutPlan `json:"original_plan"`
				CheckIns     []models.CheckIn    `json:"check_ins"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.OriginalPlan == nil || len(body.CheckIns) != 2 {
				t.Errorf("unexpected evaluate body: %+v", body)
			}
			_ = json.NewEncoder(w).Encode(models.Evaluation{Title: "Progress Review"})
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		checkIns := []models.CheckIn{
			{Date: "2026-08-08", Notes: "better sleep"},
			{Date: "2026-08-01", Notes: "steady"},
		}

		eval, err := backend.EvaluatePlan(ctx, &models.WorkoutPlan{Title: "t"}, checkIns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eval.Title != "Progress Review" {
			t.Errorf("unexpected evaluation: %+v", eval)
		}
	})

	t.Run("Settings", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/config" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"google_client_id": "client-123"}`))
		}))
		defer server.Close()

		settings, err := NewBackend(server.URL, nil, nil).Settings(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if settings.GoogleClientID != "client-123" {
			t.Errorf("unexpected settings: %+v", settings)
		}
	})

	t.Run("AnalyzeForm uploads multipart and streams", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("failed to parse multipart form: %v", err)
				return
			}
			if got := r.FormValue("exercise_name"); got != "Squat" {
				t.Errorf("unexpected exercise name: %q", got)
			}
			file, header, err := r.FormFile("video")
			if err != nil {
				t.Errorf("missing video part: %v", err)
				return
			}
			defer file.Close()
			if header.Filename != "squat.mp4" {
				t.Errorf("unexpected filename: %q", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if len(data) == 0 {
				t.Error("expected video bytes")
			}

			w.Header().Set("Content-Type", "application/x-ndjson")
			_, _ = w.Write([]byte(`{"status": "progress", "message": "Extracting frames...", "percent": 5}` + "\n"))
			_, _ = w.Write([]byte(`{"status": "complete", "message": "Done", "percent": 100, "data": {"analysis_markdown": "ok"}}` + "\n"))
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		stream, err := backend.AnalyzeForm(ctx, "Squat", strings.NewReader("fake video bytes"), "squat.mp4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer stream.Close()

		first, err := stream.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Percent != 5 {
			t.Errorf("unexpected first record: %+v", first)
		}

		last, err := stream.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !last.Terminal() {
			t.Errorf("expected terminal record, got %+v", last)
		}
	})

	t.Run("AnalyzeForm rejection before streaming", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "unsupported video format"}`))
		}))
		defer server.Close()

		backend := NewBackend(server.URL, nil, nil)
		_, err := backend.AnalyzeForm(ctx, "Squat", strings.NewReader("x"), "clip.mov")

		var remote *shared.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		if remote.Message != "unsupported video format" {
			t.Errorf("unexpected message: %q", remote.Message)
		}
	})
}
