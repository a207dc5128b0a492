package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/timeutil"
	"github.com/ayoisaiah/slumber/report"
)

// alarmSetAction re-arms the alarm of the active session. The alarm is
// restored when the session screen is opened with 'slumber resume'.
func alarmSetAction(ctx *cli.Context) error {
	arg := strings.Join(ctx.Args().Slice(), " ")
	if arg == "" {
		return errMissingArg.Fmt("wake-up time")
	}

	at, err := timeutil.FromStr(arg, time.Now())
	if err != nil {
		return err
	}

	d, err := build(ctx, withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	cfg, err := d.ctrl.SetAlarm(ctx.Context, at, ctx.Bool("smart"))
	if err != nil {
		return err
	}

	report.Success(fmt.Sprintf(
		"Alarm set for %s",
		cfg.Trigger.Format(timeLayout(d.cfg)),
	))
	report.Info("The alarm goes off while the session screen is open. Use 'slumber resume' to return to it.")

	return nil
}

func alarmCancelAction(ctx *cli.Context) error {
	d, err := build(ctx, withAlarms())
	if err != nil {
		return err
	}

	defer d.Close()

	if err := d.ctrl.CancelAlarm(ctx.Context); err != nil {
		return err
	}

	report.Success("Alarm cancelled")

	return nil
}
