package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/slumber/internal/timeutil"
)

const asciiLogo = `
███████╗██╗     ██╗   ██╗███╗   ███╗██████╗ ███████╗██████╗
██╔════╝██║     ██║   ██║████╗ ████║██╔══██╗██╔════╝██╔══██╗
███████╗██║     ██║   ██║██╔████╔██║██████╔╝█████╗  ██████╔╝
╚════██║██║     ██║   ██║██║╚██╔╝██║██╔══██╗██╔══╝  ██╔══██╗
███████║███████╗╚██████╔╝██║ ╚═╝ ██║██████╔╝███████╗██║  ██║
╚══════╝╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Sound       string
	AlarmTime   string
	TargetHours float64
	SmartAlarm  bool
}

// WithPromptConfig returns an Option that asks for the essential settings
// when the config file does not exist yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func validatePromptAlarm(s string) error {
	if s == "" {
		return nil
	}

	if _, ok := timeutil.ParseClock(s, time.Now()); !ok {
		return errInvalidAlarmTime.Fmt(s)
	}

	return nil
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Slumber for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'slumber edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("How much sleep are you aiming for?").
				Options(
					huh.NewOption("7 hours", 7.0),
					huh.NewOption("7½ hours", 7.5),
					huh.NewOption("8 hours", 8.0).Selected(true),
					huh.NewOption("9 hours", 9.0),
				).
				Value(&opts.TargetHours),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Ambient sound while falling asleep").
				Options(
					huh.NewOption("None", "").Selected(true),
					huh.NewOption("Rain", "rain"),
					huh.NewOption("Ocean waves", "ocean"),
					huh.NewOption("Forest", "forest"),
					huh.NewOption("White noise", "white_noise"),
				).
				Value(&opts.Sound),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default wake-up time").
				Description("e.g. 06:30 or 6:30am. Leave empty for no alarm.").
				Validate(validatePromptAlarm).
				Value(&opts.AlarmTime),
			huh.NewConfirm().
				Title("Wake me up a little earlier (smart alarm)?").
				Value(&opts.SmartAlarm),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Sleep.Target = time.Duration(opts.TargetHours * float64(time.Hour))
	c.Sound.Default = opts.Sound
	c.Alarm.Time = opts.AlarmTime
	c.Alarm.Smart = opts.SmartAlarm
}
