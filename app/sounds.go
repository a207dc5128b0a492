package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/audio"
	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/ui"
	"github.com/ayoisaiah/slumber/report"
)

// soundRows tabulates the catalogue, marking sounds already saved in the
// cache.
func soundRows(
	sounds []audio.Sound,
	baseURL string,
	cached func(id, source string) bool,
) [][]string {
	rows := [][]string{{"ID", "NAME", "CATEGORY", "OFFLINE"}}

	for _, s := range sounds {
		offline := ""
		if cached(s.ID, s.Source(baseURL)) {
			offline = ui.Green("✔")
		}

		rows = append(rows, []string{s.ID, s.Name, s.Category, offline})
	}

	return rows
}

func (d *deps) cached(id, source string) bool {
	_, err := os.Stat(d.player.LocalPath(id, source))

	return !errors.Is(err, fs.ErrNotExist)
}

func soundsListAction(ctx *cli.Context) error {
	d, err := build(ctx, withAudio())
	if err != nil {
		return err
	}

	defer d.Close()

	return ui.PrintTable(
		config.Stdout,
		soundRows(d.catalog.Sorted(), d.cfg.Sound.BaseURL, d.cached),
	)
}

// soundsDownloadAction saves the named sounds, or every sound in the
// catalogue, for offline use.
func soundsDownloadAction(ctx *cli.Context) error {
	d, err := build(ctx, withAudio())
	if err != nil {
		return err
	}

	defer d.Close()

	sounds := d.catalog.Sorted()

	if ids := ctx.Args().Slice(); len(ids) > 0 {
		sounds = slices.DeleteFunc(sounds, func(s audio.Sound) bool {
			return !slices.Contains(ids, s.ID)
		})

		for _, id := range ids {
			if _, err := d.catalog.Find(id); err != nil {
				return err
			}
		}
	}

	bar, _ := pterm.DefaultProgressbar.
		WithTotal(len(sounds)).
		WithTitle("Downloading sounds").
		Start()

	var failed int

	for _, s := range sounds {
		bar.UpdateTitle("Downloading " + s.Name)

		path, err := d.player.Download(ctx.Context, s.ID, s.Source(d.cfg.Sound.BaseURL))
		if err != nil {
			failed++

			slog.WarnContext(ctx.Context, "download failed",
				slog.String("sound", s.ID),
				slog.Any("error", err),
			)
		} else {
			slog.DebugContext(ctx.Context, "sound saved", slog.String("path", path))
		}

		bar.Increment()
	}

	_, _ = bar.Stop()

	if failed > 0 {
		return errDownloads.Fmt(failed)
	}

	report.Success(fmt.Sprintf("%d sound(s) are available offline", len(sounds)))

	return nil
}

// soundsPlayAction previews a sound until the command is interrupted.
// confirmRetry asks whether to try loading a sound again after err.
func confirmRetry(err error) bool {
	report.Error(err)

	ok, _ := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		Show("Try again?")

	return ok
}

func soundsPlayAction(ctx *cli.Context) error {
	ref := strings.Join(ctx.Args().Slice(), " ")
	if ref == "" {
		return errMissingArg.Fmt("sound")
	}

	d, err := build(ctx, withAudio())
	if err != nil {
		return err
	}

	defer d.Close()

	err = d.ctrl.PlaySound(ctx.Context, ref)
	for err != nil && d.player.CanRetry() && confirmRetry(err) {
		err = d.ctrl.RetrySound(ctx.Context)
	}

	if err != nil {
		return err
	}

	report.Info(fmt.Sprintf("Playing %s. Press Ctrl+C to stop.", d.player.State().Name))

	<-ctx.Context.Done()

	return d.player.Stop()
}
