package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lilpaoo/jimbo/internal/formatter"
	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/session"
	"github.com/lilpaoo/jimbo/internal/shared"
)

// Login signs in and reports what saved data the session found.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	state := sess.State()
	r.writePlain("Signed in as %s (%s mode)\n", state.UserEmail, state.Mode)

	if state.Plan != nil {
		r.writePlain("Workout plan: %s\n", state.Plan.Title)
	}
	if state.Nutrition != nil {
		r.writePlain("Nutrition plan: %s\n", state.Nutrition.Title)
	}
	r.writePlain("Check-ins: %d\n", len(state.CheckIns))

	return nil
}

// PlanGenerate generates a workout plan, optionally persisting it.
func (r *Runner) PlanGenerate(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	req := models.WorkoutRequest{
		Goal:               cmd.String("goal"),
		ExperienceLevel:    cmd.String("level"),
		DaysPerWeek:        int(cmd.Int("days")),
		HoursPerDay:        cmd.Float("hours"),
		AvailableEquipment: cmd.String("equipment"),
		Notes:              cmd.String("notes"),
	}

	plan, err := sess.GenerateWorkout(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(plan, true); err != nil {
			return err
		}
	} else {
		r.writePlain("%s", formatter.FormatWorkoutPlan(plan))
	}

	if cmd.Bool("save") {
		if err := sess.SavePlan(ctx); err != nil {
			return err
		}
		r.writePlain("Plan saved.\n")
	}

	return nil
}

// PlanShow prints the saved workout plan.
func (r *Runner) PlanShow(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	plan := sess.State().Plan
	if plan == nil {
		return shared.ErrNoPlan
	}

	if cmd.Bool("json") {
		return r.writeJSON(plan, true)
	}
	return r.writePlain("%s", formatter.FormatWorkoutPlan(plan))
}

// PlanSave persists the current workout plan.
func (r *Runner) PlanSave(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	if err := sess.SavePlan(ctx); err != nil {
		return err
	}
	return r.writePlain("Plan saved.\n")
}

// NutritionGenerate generates a nutrition plan, optionally persisting it.
func (r *Runner) NutritionGenerate(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	req := models.NutritionRequest{
		Goal:          cmd.String("goal"),
		WeightKg:      cmd.Float("weight"),
		HeightCm:      cmd.Float("height"),
		Age:           int(cmd.Int("age")),
		ActivityLevel: cmd.String("activity"),
		Preferences:   cmd.String("preferences"),
	}

	plan, err := sess.GenerateNutrition(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(plan, true); err != nil {
			return err
		}
	} else {
		r.writePlain("%s", formatter.FormatNutritionPlan(plan))
	}

	if cmd.Bool("save") {
		if err := sess.SaveNutritionPlan(ctx); err != nil {
			return err
		}
		r.writePlain("Nutrition plan saved.\n")
	}

	return nil
}

// NutritionShow prints the saved nutrition plan.
func (r *Runner) NutritionShow(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	plan := sess.State().Nutrition
	if plan == nil {
		return shared.ErrNoNutritionPlan
	}

	if cmd.Bool("json") {
		return r.writeJSON(plan, true)
	}
	return r.writePlain("%s", formatter.FormatNutritionPlan(plan))
}

// NutritionSave persists the current nutrition plan.
func (r *Runner) NutritionSave(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	if err := sess.SaveNutritionPlan(ctx); err != nil {
		return err
	}
	return r.writePlain("Nutrition plan saved.\n")
}

// Chat sends one message about the loaded plan and prints the reply.
func (r *Runner) Chat(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	kind := session.KindWorkout
	if cmd.Bool("nutrition") {
		kind = session.KindNutrition
	}

	reply, err := sess.Chat(ctx, kind, cmd.StringArg("message"))
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", reply)
}

// Evaluate runs a progress evaluation over the loaded plan and check-ins.
func (r *Runner) Evaluate(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	eval, err := sess.Evaluate(ctx)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.FormatEvaluation(eval))
}
