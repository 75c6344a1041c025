// package models defines the data model for the coaching client
package models

import (
	"fmt"

	"github.com/lilpaoo/jimbo/internal/shared"
)

// WorkoutPlan is a generated training plan. It is replaced wholesale on
// regeneration or load and is either absent or fully well-formed.
type WorkoutPlan struct {
	Title           string       `json:"title"`
	Frequency       string       `json:"frequency"`
	Days            []WorkoutDay `json:"days"`
	MotivationalTip string       `json:"motivational_tip"`
}

// WorkoutDay is a single training day within a plan.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	WarmUp    string     `json:"warm_up"`
	Exercises []Exercise `json:"exercises"`
	CoolDown  string     `json:"cool_down"`
}

// Exercise is one movement with its prescribed volume.
type Exercise struct {
	Name     string `json:"name"`
	SetsReps string `json:"sets_reps"`
}

// NutritionPlan is a generated nutrition plan, independent of the
// workout plan but with the same lifecycle.
type NutritionPlan struct {
	Title      string       `json:"title"`
	Targets    MacroTargets `json:"targets"`
	SamplePlan []Meal       `json:"sample_plan"`
	KeyTips    []string     `json:"key_tips"`
}

// MacroTargets holds daily targets as display strings (the backend
// returns approximations like "~2100 kcal").
type MacroTargets struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fats     string `json:"fats"`
}

// Meal is one sample meal entry.
type Meal struct {
	Meal        string `json:"meal"`
	Description string `json:"description"`
}

// CheckIn is one progress log entry. Check-ins are never mutated after
// creation and are displayed newest-first regardless of storage order.
type CheckIn struct {
	Date     string `json:"date"`
	WeightKg string `json:"weight_kg,omitempty"`
	Notes    string `json:"notes"`
}

// Validate checks the required check-in fields.
func (c CheckIn) Validate() error {
	if c.Date == "" || c.Notes == "" {
		return fmt.Errorf("%w: date and notes are required", shared.ErrInvalidInput)
	}
	return nil
}

// Chat roles as the backend expects them.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ChatTurn is one exchange in a plan-discussion thread. Threads are
// reset whenever their associated plan is regenerated.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Evaluation is the coach's progress assessment over a plan and its
// check-ins.
type Evaluation struct {
	Title           string   `json:"title"`
	Analysis        string   `json:"analysis"`
	KeyObservations []string `json:"key_observations"`
	Recommendations []string `json:"recommendations"`
}

// FormScores holds the per-category scores of a video form analysis.
// JSON keys match the backend's display-oriented naming.
type FormScores struct {
	Spine     float64 `json:"Spine Score"`
	Stability float64 `json:"Stability Score"`
	Joint     float64 `json:"Joint Score"`
	Control   float64 `json:"Control Score"`
	Final     float64 `json:"Final Score"`
}

// FormAnalysis is the terminal payload of the analysis stream.
type FormAnalysis struct {
	Scores           FormScores `json:"scores"`
	AnalysisMarkdown string     `json:"analysis_markdown"`
}

// WorkoutRequest is the payload for plan generation.
type WorkoutRequest struct {
	Goal               string  `json:"goal"`
	ExperienceLevel    string  `json:"experience_level"`
	DaysPerWeek        int     `json:"days_per_week"`
	HoursPerDay        float64 `json:"hours_per_day"`
	AvailableEquipment string  `json:"available_equipment"`
	Notes              string  `json:"notes"`
}

// Validate checks the fields the backend rejects when missing.
func (r WorkoutRequest) Validate() error {
	if r.Goal == "" || r.ExperienceLevel == "" || r.DaysPerWeek <= 0 || r.HoursPerDay <= 0 || r.AvailableEquipment == "" {
		return fmt.Errorf("%w: goal, experience level, days/week, hours/day and equipment are required", shared.ErrInvalidInput)
	}
	return nil
}

// NutritionRequest is the payload for nutrition plan generation.
type NutritionRequest struct {
	Goal          string  `json:"goal"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	ActivityLevel string  `json:"activity_level"`
	Preferences   string  `json:"preferences"`
}

// Validate checks the fields the backend rejects when missing.
func (r NutritionRequest) Validate() error {
	if r.Goal == "" || r.WeightKg <= 0 || r.HeightCm <= 0 || r.Age <= 0 || r.ActivityLevel == "" {
		return fmt.Errorf("%w: goal, weight, height, age and activity level are required", shared.ErrInvalidInput)
	}
	return nil
}
