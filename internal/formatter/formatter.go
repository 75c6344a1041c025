// package formatter renders plans, check-ins, evaluations and analysis
// results as plain text for the terminal.
package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lilpaoo/jimbo/internal/models"
)

// FormatWorkoutPlan renders a workout plan as readable plain text.
func FormatWorkoutPlan(plan *models.WorkoutPlan) string {
	if plan == nil {
		return "No workout plan.\n"
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", plan.Title))
	if plan.Frequency != "" {
		buf.WriteString(fmt.Sprintf("Frequency: %s\n", plan.Frequency))
	}
	buf.WriteString("\n")

	for _, day := range plan.Days {
		buf.WriteString(fmt.Sprintf("%s: %s\n", day.Day, day.Focus))
		if day.WarmUp != "" {
			buf.WriteString(fmt.Sprintf("  Warm-up: %s\n", day.WarmUp))
		}
		for _, ex := range day.Exercises {
			buf.WriteString(fmt.Sprintf("  - %s: %s\n", ex.Name, ex.SetsReps))
		}
		if day.CoolDown != "" {
			buf.WriteString(fmt.Sprintf("  Cool-down: %s\n", day.CoolDown))
		}
		buf.WriteString("\n")
	}

	if plan.MotivationalTip != "" {
		buf.WriteString(fmt.Sprintf("Tip: %s\n", plan.MotivationalTip))
	}

	return buf.String()
}

// FormatNutritionPlan renders a nutrition plan as readable plain text.
func FormatNutritionPlan(plan *models.NutritionPlan) string {
	if plan == nil {
		return "No nutrition plan.\n"
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n\n", plan.Title))

	buf.WriteString("Daily Targets\n")
	buf.WriteString(fmt.Sprintf("  Calories: %s\n", plan.Targets.Calories))
	buf.WriteString(fmt.Sprintf("  Protein:  %s\n", plan.Targets.Protein))
	buf.WriteString(fmt.Sprintf("  Carbs:    %s\n", plan.Targets.Carbs))
	buf.WriteString(fmt.Sprintf("  Fats:     %s\n", plan.Targets.Fats))
	buf.WriteString("\n")

	if len(plan.SamplePlan) > 0 {
		buf.WriteString("Sample Day\n")
		for _, meal := range plan.SamplePlan {
			buf.WriteString(fmt.Sprintf("  %s: %s\n", meal.Meal, meal.Description))
		}
		buf.WriteString("\n")
	}

	if len(plan.KeyTips) > 0 {
		buf.WriteString("Key Tips\n")
		for _, tip := range plan.KeyTips {
			buf.WriteString(fmt.Sprintf("  - %s\n", tip))
		}
	}

	return buf.String()
}

// FormatCheckIns renders check-ins as a plain list, preserving the
// given order (callers pass newest-first).
func FormatCheckIns(checkIns []models.CheckIn) string {
	if len(checkIns) == 0 {
		return "No check-ins yet.\n"
	}

	var buf bytes.Buffer
	for _, c := range checkIns {
		if c.WeightKg != "" {
			buf.WriteString(fmt.Sprintf("%s  %s kg  %s\n", c.Date, c.WeightKg, c.Notes))
		} else {
			buf.WriteString(fmt.Sprintf("%s  %s\n", c.Date, c.Notes))
		}
	}
	return buf.String()
}

// FormatEvaluation renders a progress evaluation as plain text.
func FormatEvaluation(eval *models.Evaluation) string {
	if eval == nil {
		return "No evaluation.\n"
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n\n", eval.Title))
	buf.WriteString(fmt.Sprintf("%s\n", eval.Analysis))

	if len(eval.KeyObservations) > 0 {
		buf.WriteString("\nKey Observations\n")
		for _, o := range eval.KeyObservations {
			buf.WriteString(fmt.Sprintf("  - %s\n", o))
		}
	}
	if len(eval.Recommendations) > 0 {
		buf.WriteString("\nRecommendations\n")
		for _, r := range eval.Recommendations {
			buf.WriteString(fmt.Sprintf("  - %s\n", r))
		}
	}

	return buf.String()
}

// FormatFormAnalysis renders a video analysis result: the score table
// followed by the coach's commentary with its markup stripped.
func FormatFormAnalysis(result *models.FormAnalysis) string {
	if result == nil {
		return "No analysis.\n"
	}

	var buf bytes.Buffer

	buf.WriteString("Form Scores\n")
	buf.WriteString(fmt.Sprintf("  Spine:     %.1f\n", result.Scores.Spine))
	buf.WriteString(fmt.Sprintf("  Stability: %.1f\n", result.Scores.Stability))
	buf.WriteString(fmt.Sprintf("  Joint:     %.1f\n", result.Scores.Joint))
	buf.WriteString(fmt.Sprintf("  Control:   %.1f\n", result.Scores.Control))
	buf.WriteString(fmt.Sprintf("  Final:     %.1f\n", result.Scores.Final))

	if result.AnalysisMarkdown != "" {
		buf.WriteString("\n")
		buf.WriteString(RenderMarkdown(result.AnalysisMarkdown))
		if !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.String()
}
