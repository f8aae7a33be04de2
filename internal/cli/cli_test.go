package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deskpet-io/deskpet/internal/config"
	"github.com/deskpet-io/deskpet/internal/models"
	"github.com/deskpet-io/deskpet/internal/pet"
	"github.com/deskpet-io/deskpet/internal/storage"
)

func TestApplySetting(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(models.PetSettings) bool
	}{
		{"auto-move", "off", func(s models.PetSettings) bool { return !s.AutoMove }},
		{"AUTO-MOVE", "no", func(s models.PetSettings) bool { return !s.AutoMove }},
		{"move-interval", "12", func(s models.PetSettings) bool { return s.MoveInterval == 12000 }},
		{"move-interval", "60s", func(s models.PetSettings) bool { return s.MoveInterval == 60000 }},
		{"move-interval", "1", func(s models.PetSettings) bool { return s.MoveInterval == 1000 }},
		{"always-on-top", "false", func(s models.PetSettings) bool { return !s.AlwaysOnTop }},
		{"show-on-start", "0", func(s models.PetSettings) bool { return !s.ShowOnStart }},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := models.NewPetSettings()
			if err := applySetting(s, tt.key, tt.value); err != nil {
				t.Fatalf("applySetting() error: %v", err)
			}
			if !tt.check(*s) {
				t.Errorf("applySetting() left %+v", *s)
			}
		})
	}
}

func TestApplySettingRejectsBadInput(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"volume", "11", "unknown setting"},
		{"auto-move", "maybe", "expected on or off"},
		{"move-interval", "soon", "invalid number"},
		{"move-interval", "0", "between 1 and 60"},
		{"move-interval", "61", "between 1 and 60"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := models.NewPetSettings()
			before := *s
			err := applySetting(s, tt.key, tt.value)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("applySetting() error = %v, want %q", err, tt.want)
			}
			if *s != before {
				t.Errorf("settings changed on error: %+v", *s)
			}
		})
	}
}

func TestSettingsCommandsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)
	t.Setenv(storage.RedisURLEnv, "")

	if err := runSettingsSet(settingsSetCmd, []string{"move-interval", "9"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := runSettingsSet(settingsSetCmd, []string{"auto-move", "off"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	store := storage.NewFileStore(filepath.Join(dir, config.StorageFileName))
	s, err := config.LoadSettings(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	if s.MoveInterval != 9000 || s.AutoMove {
		t.Errorf("stored settings = %+v", *s)
	}

	if err := runSettingsSet(settingsSetCmd, []string{"move-interval", "99"}); err == nil {
		t.Error("out-of-range interval accepted")
	}

	if err := runSettingsReset(settingsResetCmd, nil); err != nil {
		t.Fatalf("reset: %v", err)
	}
	s, err = config.LoadSettings(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	if *s != *models.NewPetSettings() {
		t.Errorf("after reset = %+v", *s)
	}
}

func TestParsePosition(t *testing.T) {
	pos, err := parsePosition("120", "45")
	if err != nil || pos != (pet.Position{X: 120, Y: 45}) {
		t.Errorf("parsePosition() = %v, %v", pos, err)
	}
	for _, args := range [][2]string{{"a", "1"}, {"1", "b"}, {"-1", "5"}, {"5", "-2"}} {
		if _, err := parsePosition(args[0], args[1]); err == nil {
			t.Errorf("parsePosition(%q, %q) succeeded", args[0], args[1])
		}
	}
}

func TestConnectWithoutDaemon(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())
	if _, _, err := connectDaemon(); err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("connectDaemon() error = %v", err)
	}
}
