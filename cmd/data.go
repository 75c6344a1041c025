package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lilpaoo/jimbo/internal/formatter"
	"github.com/lilpaoo/jimbo/internal/repositories"
	"github.com/lilpaoo/jimbo/internal/shared"
	"github.com/lilpaoo/jimbo/internal/workbook"
)

// Setup creates the config file if absent and initializes the local
// exercise cache database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.logger.Info("initializing cache database", "path", config.Cache.Path)
	db, err := shared.NewDatabase(config.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := repositories.NewExerciseRepository(db).Migrate(); err != nil {
		return err
	}

	r.logger.Infof("setup complete for cache: %v", config.Cache.Path)
	return nil
}

// Exercises lists the analyzable exercise catalog, refreshing the
// local cache on success and falling back to it when the backend is
// unreachable.
func (r *Runner) Exercises(ctx context.Context, cmd *cli.Command) error {
	names, err := r.backend.Exercises(ctx)
	if err != nil {
		var unreachable *shared.UnreachableError
		if !errors.As(err, &unreachable) {
			return err
		}
		r.logger.Warn("backend unreachable, using cached catalog")
		names, err = r.cachedExercises()
		if err != nil {
			return err
		}
	} else {
		if cacheErr := r.cacheExercises(names); cacheErr != nil {
			r.logger.Warn("could not refresh exercise cache", "err", cacheErr)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(names, false)
	}
	for _, name := range names {
		r.writePlain("%s\n", name)
	}
	return nil
}

func (r *Runner) cacheExercises(names []string) error {
	db, err := shared.NewDatabase(r.config.Cache.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewExerciseRepository(db)
	if err := repo.Migrate(); err != nil {
		return err
	}
	return repo.ReplaceAll(names)
}

func (r *Runner) cachedExercises() ([]string, error) {
	db, err := shared.NewDatabase(r.config.Cache.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := repositories.NewExerciseRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo.List()
}

// DataExport writes the session's plans and check-ins to an xlsx file.
func (r *Runner) DataExport(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		path = r.config.Export.Path
	}

	state := sess.State()
	snap := workbook.Snapshot{
		Plan:      state.Plan,
		Nutrition: state.Nutrition,
		CheckIns:  state.CheckIns,
	}
	if snap.Plan == nil && snap.Nutrition == nil && len(snap.CheckIns) == 0 {
		return shared.ErrNothingToSave
	}

	if err := workbook.ExportFile(snap, path); err != nil {
		return err
	}
	return r.writePlain("Exported to %s\n", path)
}

// DataImport reads an exported xlsx file and reports what it holds.
func (r *Runner) DataImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("input")
	if path == "" {
		path = r.config.Export.Path
	}

	result, err := workbook.ImportFile(path)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Snapshot, true)
	}

	r.writePlain("Loaded %d plan(s) and %d check-in(s) from %s\n", result.PlansLoaded, result.CheckInsLoaded, path)
	if result.Snapshot.Plan != nil {
		r.writePlain("\n%s", formatter.FormatWorkoutPlan(result.Snapshot.Plan))
	}
	if result.Snapshot.Nutrition != nil {
		r.writePlain("\n%s", formatter.FormatNutritionPlan(result.Snapshot.Nutrition))
	}
	if len(result.Snapshot.CheckIns) > 0 {
		r.writePlain("\n%s", formatter.FormatCheckIns(result.Snapshot.CheckIns))
	}
	return nil
}
