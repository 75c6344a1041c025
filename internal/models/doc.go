// Package models holds the JSON shapes exchanged with the coaching
// backend and persisted to the user's spreadsheet.
//
// Plans ([WorkoutPlan], [NutritionPlan]) follow a replace-wholesale
// lifecycle: a generation or load swaps the entire value, so the rest
// of the program never observes a partially written plan.
//
// [CheckIn] entries are append-only. Storage order differs between
// backends (cloud sheets append oldest-first, the local workbook stores
// display order), so ordering for display is the session layer's job.
package models
