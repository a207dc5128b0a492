package app

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/account"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/report"
	"github.com/ayoisaiah/slumber/syncer"
)

// listAction prints a table of the sessions started within a period.
func listAction(ctx *cli.Context) error {
	f, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	return d.stats().List(config.Stdout, f, d.cfg.Display)
}

// statsAction computes the stats for the specified period and prints them
// or serves them over HTTP.
func statsAction(ctx *cli.Context) error {
	f, err := config.Filter(ctx)
	if err != nil {
		return err
	}

	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	s := d.stats()

	if ctx.Bool("serve") {
		addr := ctx.String("addr")

		report.Info(fmt.Sprintf("Serving statistics at http://%s/api/stats", addr))

		return s.Serve(ctx.Context, addr)
	}

	return s.Show(config.Stdout, f, d.cfg.Display, ctx.Bool("json"))
}

// syncAction uploads everything waiting in the outbox. A signed-in user's
// guest records that were not migrated yet are uploaded first.
func syncAction(ctx *cli.Context) error {
	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	if d.syncer.Guest() {
		report.Info("You are not signed in. Use 'slumber login' to sync your sessions.")
		return nil
	}

	if d.account != nil {
		if err := migrate(ctx, d); err != nil {
			report.Error(err)
		}
	}

	r, err := d.tracker.Sync(ctx.Context)
	if err != nil {
		return err
	}

	return syncReport(r)
}

func syncReport(r syncer.Report) error {
	if r.Synced == 0 && r.Failed == 0 {
		report.Success("Everything is up to date")
		return nil
	}

	if r.Synced > 0 {
		report.Success(fmt.Sprintf("Uploaded %d record(s)", r.Synced))
	}

	if r.Failed == 0 {
		return nil
	}

	for _, err := range r.Errors {
		slog.Warn("upload failed", slog.Any("error", err))
	}

	report.SyncWarning(syncer.ReassuranceMsg)

	return errSyncIncomplete.Fmt(r.Failed).Wrap(r.Errors[len(r.Errors)-1])
}

// migrate moves the records created in guest mode to the signed-in
// account.
func migrate(ctx *cli.Context, d *deps) error {
	pending, err := account.HasGuestData(d.db)
	if err != nil || !pending {
		return err
	}

	r, err := account.MigrateGuest(ctx.Context, d.db, d.remote, d.account.UserID)
	if r.AlreadyDone {
		return nil
	}

	if r.Sessions > 0 || r.Journal > 0 {
		report.Success(fmt.Sprintf(
			"Moved %d session(s) and %d journal entries to your account",
			r.Sessions,
			r.Journal,
		))
	}

	return err
}
