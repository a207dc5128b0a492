package app

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/account"
	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/report"
)

// loginAction signs in to a remote database and moves the records
// created in guest mode to the account.
func loginAction(ctx *cli.Context) error {
	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	dsn := ctx.String("dsn")

	r, err := remote.Open(ctx.Context, dsn)
	if err != nil {
		return err
	}

	d.closers = append(d.closers, r)

	acct, err := account.Login(ctx.Context, d.db, ctx.String("user"), dsn)
	if err != nil {
		return err
	}

	d.account, d.remote = acct, r

	report.Success(fmt.Sprintf("Signed in as %s", acct.UserID))

	return migrate(ctx, d)
}

func logoutAction(ctx *cli.Context) error {
	d, err := build(ctx)
	if err != nil {
		return err
	}

	defer d.Close()

	if d.account == nil {
		report.Info("You are not signed in")
		return nil
	}

	if err := account.Logout(ctx.Context, d.db); err != nil {
		return err
	}

	report.Success("Signed out. New sessions stay on this device.")

	if st := d.syncer.Status(); st.Pending > 0 {
		report.Warn(fmt.Sprintf(
			"%d record(s) were not uploaded yet. Sign in again and run 'slumber sync' to upload them.",
			st.Pending,
		))
	}

	return nil
}
