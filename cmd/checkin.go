package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lilpaoo/jimbo/internal/formatter"
	"github.com/lilpaoo/jimbo/internal/models"
)

// CheckinAdd records one progress check-in.
func (r *Runner) CheckinAdd(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	entry := models.CheckIn{
		Date:     cmd.String("date"),
		WeightKg: cmd.String("weight"),
		Notes:    cmd.String("notes"),
	}

	if err := sess.AddCheckIn(ctx, entry); err != nil {
		return err
	}

	return r.writePlain("Check-in recorded for %s.\n", entry.Date)
}

// CheckinList prints check-ins newest first.
func (r *Runner) CheckinList(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.openSession(ctx, cmd)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.FormatCheckIns(sess.State().CheckIns))
}
