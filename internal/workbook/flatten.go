package workbook

import (
	"fmt"

	"github.com/lilpaoo/jimbo/internal/models"
)

// FriendlyPlanRows converts a workout plan to a 2D cell array for
// display in a spreadsheet. Pure and total: a nil plan or absent
// fields degrade to empty rows, never an error.
//
// Layout: Title and Frequency summary rows, a Day/Focus/Type/Details
// table where the day name and focus appear only on the first row of
// each day block, and a motivational tip footer.
func FriendlyPlanRows(plan *models.WorkoutPlan) [][]any {
	rows := [][]any{}
	if plan == nil {
		return rows
	}

	rows = append(rows,
		[]any{"Title", plan.Title},
		[]any{"Frequency", plan.Frequency},
		[]any{"", ""},
		[]any{"Day", "Focus", "Type", "Details"},
	)

	for _, day := range plan.Days {
		dayAdded := false

		if day.WarmUp != "" {
			rows = append(rows, []any{day.Day, day.Focus, "Warm-up", day.WarmUp})
			dayAdded = true
		}
		for _, ex := range day.Exercises {
			dayCell, focusCell := "", ""
			if !dayAdded {
				dayCell, focusCell = day.Day, day.Focus
			}
			rows = append(rows, []any{dayCell, focusCell, "Exercise", fmt.Sprintf("%s: %s", ex.Name, ex.SetsReps)})
			dayAdded = true
		}
		if day.CoolDown != "" {
			dayCell, focusCell := "", ""
			if !dayAdded {
				dayCell, focusCell = day.Day, day.Focus
			}
			rows = append(rows, []any{dayCell, focusCell, "Cool-down", day.CoolDown})
		}

		rows = append(rows, []any{"", "", "", ""})
	}

	rows = append(rows,
		[]any{"", "", "", ""},
		[]any{"Motivational Tip", "", "", plan.MotivationalTip},
	)

	return rows
}

// FriendlyNutritionRows converts a nutrition plan to a 2D cell array:
// a Target/Value table, a Meal/Example table, and the key tips. Same
// purity guarantees as [FriendlyPlanRows].
func FriendlyNutritionRows(plan *models.NutritionPlan) [][]any {
	rows := [][]any{}
	if plan == nil {
		return rows
	}

	rows = append(rows,
		[]any{"Title", plan.Title},
		[]any{"", ""},
		[]any{"Target", "Value"},
		[]any{"Calories", plan.Targets.Calories},
		[]any{"Protein", plan.Targets.Protein},
		[]any{"Carbs", plan.Targets.Carbs},
		[]any{"Fats", plan.Targets.Fats},
		[]any{"", ""},
		[]any{"Meal", "Example"},
	)

	for _, meal := range plan.SamplePlan {
		rows = append(rows, []any{meal.Meal, meal.Description})
	}

	rows = append(rows, []any{"", ""}, []any{"Key Tips"})
	for _, tip := range plan.KeyTips {
		rows = append(rows, []any{tip})
	}

	return rows
}
