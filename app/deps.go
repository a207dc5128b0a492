package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/account"
	"github.com/ayoisaiah/slumber/alarm"
	"github.com/ayoisaiah/slumber/audio"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/pathutil"
	"github.com/ayoisaiah/slumber/internal/static"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/journal"
	"github.com/ayoisaiah/slumber/remote"
	"github.com/ayoisaiah/slumber/report"
	"github.com/ayoisaiah/slumber/session"
	"github.com/ayoisaiah/slumber/stats"
	"github.com/ayoisaiah/slumber/store"
	"github.com/ayoisaiah/slumber/syncer"
	"github.com/ayoisaiah/slumber/tracker"
)

// deps holds everything a command needs. Fields that a command did not ask
// for are nil.
type deps struct {
	cfg     *config.Config
	db      *store.Client
	remote  remote.Store
	account *account.Account
	syncer  *syncer.Syncer
	tracker *tracker.Tracker
	ctrl    *session.Controller
	catalog *audio.Catalog
	player  *audio.Player
	closers []io.Closer
}

type buildOptions struct {
	prompt bool
	audio  bool
	alarms bool
}

type buildOption func(*buildOptions)

// withPrompt asks for the essential settings on first run.
func withPrompt() buildOption {
	return func(o *buildOptions) {
		o.prompt = true
	}
}

// withAudio sets up the sound player and catalogue.
func withAudio() buildOption {
	return func(o *buildOptions) {
		o.audio = true
	}
}

// withAlarms sets up the alarm scheduler. Implies withAudio since the
// alarm plays its sound through the player.
func withAlarms() buildOption {
	return func(o *buildOptions) {
		o.alarms = true
		o.audio = true
	}
}

// loadConfig reads the config file, the environment and the flags of
// ctx.
func loadConfig(ctx *cli.Context, prompt bool) (*config.Config, error) {
	opts := make([]config.Option, 0, 3)

	if prompt {
		opts = append(opts, config.WithPromptConfig(pathutil.ConfigFilePath()))
	}

	opts = append(
		opts,
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)

	return config.New(opts...)
}

// connect opens the remote database of the signed-in account, or the one
// from the config file. A nil store means guest mode. A database that
// cannot be reached is replaced by one that queues every write.
func connect(
	ctx context.Context,
	db store.DB,
	cfg *config.Config,
) (remote.Store, *account.Account) {
	acct, err := account.Current(db)
	if err != nil {
		// keep working locally until the user signs in again
		slog.WarnContext(ctx, "account unavailable", slog.Any("error", err))
		report.Error(err)

		acct = nil
	}

	dsn := cfg.Remote.DSN
	if acct != nil {
		dsn = acct.DSN
	}

	if dsn == "" {
		return nil, acct
	}

	r, err := remote.Open(ctx, dsn)
	if err != nil {
		slog.WarnContext(ctx, "remote database unavailable", slog.Any("error", err))
		report.SyncWarning(syncer.ReassuranceMsg)

		return remote.Unavailable(err), acct
	}

	return r, acct
}

// build opens the local store and wires the components on top of it.
func build(ctx *cli.Context, opts ...buildOption) (*deps, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := loadConfig(ctx, o.prompt)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	d := &deps{cfg: cfg}

	d.db, err = store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, err
	}

	d.closers = append(d.closers, d.db)

	d.remote, d.account = connect(ctx.Context, d.db, cfg)
	if d.remote != nil {
		d.closers = append(d.closers, d.remote)
	}

	d.syncer = syncer.New(d.db, d.remote)

	trackerOpts := []tracker.Option{}
	if d.account != nil {
		trackerOpts = append(trackerOpts, tracker.WithUserID(d.account.UserID))
	}

	d.tracker = tracker.New(d.db, d.syncer, trackerOpts...)

	if err := d.tracker.Load(ctx.Context); err != nil {
		d.Close()
		return nil, err
	}

	ctrlOpts := []session.Option{
		session.WithStatusFile(pathutil.StatusFilePath()),
	}

	if o.audio {
		if err := d.setupAudio(); err != nil {
			d.Close()
			return nil, err
		}

		ctrlOpts = append(ctrlOpts, session.WithPlayer(
			d.player,
			d.catalog,
			cfg.Sound.BaseURL,
		))
	}

	if o.alarms {
		scheduler, err := d.setupAlarms(ctx.Context)
		if err != nil {
			d.Close()
			return nil, err
		}

		ctrlOpts = append(ctrlOpts, session.WithAlarms(scheduler))
	}

	d.ctrl = session.New(d.tracker, ctrlOpts...)

	return d, nil
}

func (d *deps) setupAudio() error {
	if err := static.Install(pathutil.DataDir()); err != nil {
		slog.Warn("installing bundled files failed", slog.Any("error", err))
	}

	catalog, err := audio.LoadCatalog(
		filepath.Join(pathutil.DataDir(), static.CatalogFile),
		static.Catalog(),
	)
	if err != nil {
		return err
	}

	d.catalog = catalog

	d.player = audio.NewPlayer(
		audio.NewBeepEngine(),
		pathutil.SoundsDir(),
		audio.WithTimeout(d.cfg.Sound.LoadTimeout),
		audio.WithAttempts(d.cfg.Sound.Retries+1),
		audio.WithVolume(d.cfg.Sound.Volume),
		audio.WithHTTPClient(&http.Client{}),
	)

	return nil
}

func (d *deps) setupAlarms(ctx context.Context) (*alarm.Scheduler, error) {
	// the controller is built after the scheduler, so the alarm sound is
	// routed through d.ctrl lazily
	play := func(ctx context.Context, sound string) error {
		if d.ctrl == nil {
			return nil
		}

		return d.ctrl.PlaySound(ctx, sound)
	}

	log := slog.Default().With(slog.String("component", "alarm"))
	localOpts := []alarm.LocalOption{
		alarm.WithPlayFunc(play),
		alarm.WithIcon(filepath.Join(pathutil.DataDir(), "icon.png")),
		alarm.WithLocalLogger(log),
	}

	local, err := alarm.NewLocal(d.cfg.Alarm.Cmd, localOpts...)
	if err != nil {
		// a broken alarm command should not prevent sleeping
		slog.WarnContext(ctx, "alarm command ignored", slog.Any("error", err))
		report.Warn(err.Error())

		local, err = alarm.NewLocal("", localOpts...)
		if err != nil {
			return nil, err
		}
	}

	return alarm.NewScheduler(
		local,
		d.db,
		alarm.WithSmartWindow(d.cfg.Alarm.SmartWindow),
		alarm.WithSound(d.cfg.Alarm.Sound),
		alarm.WithLogger(log),
	), nil
}

// stats returns the stats reporter over the local history.
func (d *deps) stats() *stats.Stats {
	return stats.New(d.db, stats.WithTarget(d.cfg.Sleep.Target))
}

// journal returns the journal of the current user.
func (d *deps) journal() *journal.Book {
	userID := ""
	if d.account != nil {
		userID = d.account.UserID
	}

	return journal.New(d.db, d.syncer, userID)
}

// Close releases the store and the remote connection.
func (d *deps) Close() {
	var errs []error

	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}

	if err := errors.Join(errs...); err != nil {
		slog.Warn("closing resources failed", slog.Any("error", err))
	}
}
