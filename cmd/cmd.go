// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// identityFlags are shared by every command that needs a session.
func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "token",
			Usage: "Identity token for a cloud session",
		},
		&cli.BoolFlag{
			Name:  "tester",
			Usage: "Start a local session without cloud sync",
		},
	}
}

// setupCommand initializes configuration and the local cache database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and local cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// loginCommand verifies identity and storage access
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Sign in and show what data is available",
		Flags:  identityFlags(),
		Action: r.Login,
	}
}

// planCommand handles workout plan operations
func planCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Workout plan operations",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a new workout plan",
				Flags: append(identityFlags(),
					&cli.StringFlag{
						Name:     "goal",
						Aliases:  []string{"g"},
						Usage:    "Training goal, e.g. \"build muscle\"",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "level",
						Usage:    "Experience level: beginner, intermediate or advanced",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Training days per week",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "hours",
						Usage: "Hours available per session",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "equipment",
						Usage: "Available equipment",
						Value: "full gym",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Injuries or other constraints",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the plan after generating",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				),
				Action: r.PlanGenerate,
			},
			{
				Name:   "show",
				Usage:  "Show the saved workout plan",
				Flags:  append(identityFlags(), &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}),
				Action: r.PlanShow,
			},
			{
				Name:   "save",
				Usage:  "Persist the current workout plan",
				Flags:  identityFlags(),
				Action: r.PlanSave,
			},
		},
	}
}

// nutritionCommand handles nutrition plan operations
func nutritionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "nutrition",
		Usage: "Nutrition plan operations",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a new nutrition plan",
				Flags: append(identityFlags(),
					&cli.StringFlag{
						Name:     "goal",
						Aliases:  []string{"g"},
						Usage:    "Nutrition goal, e.g. \"lose fat\"",
						Required: true,
					},
					&cli.FloatFlag{
						Name:     "weight",
						Usage:    "Body weight in kg",
						Required: true,
					},
					&cli.FloatFlag{
						Name:     "height",
						Usage:    "Height in cm",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "age",
						Usage:    "Age in years",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "activity",
						Usage: "Activity level, e.g. sedentary, moderate, active",
						Value: "moderate",
					},
					&cli.StringFlag{
						Name:  "preferences",
						Usage: "Dietary preferences or restrictions",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the plan after generating",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				),
				Action: r.NutritionGenerate,
			},
			{
				Name:   "show",
				Usage:  "Show the saved nutrition plan",
				Flags:  append(identityFlags(), &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}),
				Action: r.NutritionShow,
			},
			{
				Name:   "save",
				Usage:  "Persist the current nutrition plan",
				Flags:  identityFlags(),
				Action: r.NutritionSave,
			},
		},
	}
}

// checkinCommand handles progress check-ins
func checkinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "checkin",
		Usage: "Progress check-ins",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Record a progress check-in",
				Flags: append(identityFlags(),
					&cli.StringFlag{
						Name:     "date",
						Usage:    "Check-in date, e.g. 2026-08-30",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "weight",
						Usage: "Body weight in kg",
					},
					&cli.StringFlag{
						Name:     "notes",
						Usage:    "How the week went",
						Required: true,
					},
				),
				Action: r.CheckinAdd,
			},
			{
				Name:   "list",
				Usage:  "List check-ins, newest first",
				Flags:  identityFlags(),
				Action: r.CheckinList,
			},
		},
	}
}

// chatCommand discusses the current plan with the coach
func chatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Ask the coach about your current plan",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "message",
			},
		},
		Flags: append(identityFlags(),
			&cli.BoolFlag{
				Name:  "nutrition",
				Usage: "Discuss the nutrition plan instead of the workout plan",
			},
		),
		Action: r.Chat,
	}
}

// evaluateCommand runs a progress evaluation
func evaluateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "evaluate",
		Usage:  "Evaluate progress against the saved plan and check-ins",
		Flags:  identityFlags(),
		Action: r.Evaluate,
	}
}

// exercisesCommand lists analyzable exercises
func exercisesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "exercises",
		Usage: "List exercises available for form analysis",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Exercises,
	}
}

// analyzeCommand uploads a video for form analysis
func analyzeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze exercise form from a video",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "exercise",
				Aliases:  []string{"e"},
				Usage:    "Exercise being performed",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "video",
				Aliases:  []string{"v"},
				Usage:    "Path to the video file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print progress lines instead of the interactive view",
			},
		},
		Action: r.Analyze,
	}
}

// dataCommand handles local spreadsheet export and import
func dataCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "data",
		Usage: "Local spreadsheet export and import",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export plans and check-ins to an xlsx file",
				Flags: append(identityFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				),
				Action: r.DataExport,
			},
			{
				Name:  "import",
				Usage: "Inspect an exported xlsx file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "File to read",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DataImport,
			},
		},
	}
}
