package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "View or change pet settings",
	Long: `View or change pet settings.

Settings are stored in ~/.deskpet/storage.json, or in Redis when
DESKPET_REDIS_URL is set. A running pet picks up changes immediately.

Keys:
  auto-move       on/off   wander around on its own
  move-interval   1-60     seconds between wander checks
  always-on-top   on/off   keep the window above others
  show-on-start   on/off   show the window when the host starts`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsYAML bool

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsYAML, "yaml", false, "Print settings as YAML")

	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// settingKeys maps a CLI key to the function that applies a raw value.
var settingKeys = map[string]func(s *models.PetSettings, value string) error{
	"auto-move": func(s *models.PetSettings, value string) error {
		b, err := parseSwitch(value)
		if err != nil {
			return err
		}
		s.AutoMove = b
		return nil
	},
	"move-interval": func(s *models.PetSettings, value string) error {
		seconds, err := strconv.Atoi(strings.TrimSuffix(value, "s"))
		if err != nil {
			return fmt.Errorf("invalid number of seconds: %s", value)
		}
		lo, hi := models.MinMoveInterval/1000, models.MaxMoveInterval/1000
		if seconds < lo || seconds > hi {
			return fmt.Errorf("move interval must be between %d and %d seconds", lo, hi)
		}
		s.SetMoveIntervalSeconds(seconds)
		return nil
	},
	"always-on-top": func(s *models.PetSettings, value string) error {
		b, err := parseSwitch(value)
		if err != nil {
			return err
		}
		s.AlwaysOnTop = b
		return nil
	},
	"show-on-start": func(s *models.PetSettings, value string) error {
		b, err := parseSwitch(value)
		if err != nil {
			return err
		}
		s.ShowOnStart = b
		return nil
	},
}

// applySetting validates value and stores it in s. s is untouched on error.
func applySetting(s *models.PetSettings, key, value string) error {
	apply, ok := settingKeys[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeyNames(), ", "))
	}
	next := *s
	if err := apply(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*s = next
	return nil
}

func settingKeyNames() []string {
	names := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "y", "1":
		return true, nil
	case "off", "false", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", value)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := config.OpenStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := config.LoadSettings(ctx, store)
	if err != nil {
		return err
	}

	if settingsYAML {
		out, err := config.MarshalYAML(s)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}
	printSettings(s)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := config.OpenStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := config.LoadSettings(ctx, store)
	if err != nil {
		return err
	}
	if err := applySetting(s, args[0], args[1]); err != nil {
		return err
	}
	if err := config.SaveSettings(ctx, store, s); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Settings updated."))
	printSettings(s)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := config.OpenStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	s, err := config.ResetSettings(ctx, store)
	if err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Settings reset to defaults."))
	printSettings(s)
	return nil
}

func printSettings(s *models.PetSettings) {
	printField("auto-move", onOff(s.AutoMove))
	printField("move-interval", fmt.Sprintf("%ds", s.MoveIntervalSeconds()))
	printField("always-on-top", onOff(s.AlwaysOnTop))
	printField("show-on-start", onOff(s.ShowOnStart))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
